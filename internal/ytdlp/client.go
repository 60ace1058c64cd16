package ytdlp

import (
	"context"
	"strings"
	"time"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/metrics"
)

// Client exposes the typed extractor operations the pipeline needs. Each
// method is a single tool invocation.
type Client struct {
	runner Runner
}

// NewClient creates a Client over the given runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Metadata performs the metadata dump for a URL.
func (c *Client) Metadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	out, err := c.run(ctx, metrics.ToolCommandMetadata,
		"--dump-json", "--no-playlist", "--no-warnings", url)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(out)
}

// Formats performs the format listing dump for a URL. The listing call is
// allowed to interleave warnings with the structured record, so it is parsed
// line-oriented.
func (c *Client) Formats(ctx context.Context, url string) ([]RawFormat, error) {
	out, err := c.run(ctx, metrics.ToolCommandListing,
		"--dump-json", "--no-playlist", "--no-download", url)
	if err != nil {
		return nil, err
	}
	return ParseFormats(out)
}

// DirectURL resolves the final retrievable stream URL for one format ID.
// The listing's embedded URLs are not guaranteed to be retrievable, so this
// is a separate invocation per format tier.
func (c *Client) DirectURL(ctx context.Context, url, formatID string) (string, error) {
	out, err := c.run(ctx, metrics.ToolCommandResolve,
		"--get-url", "-f", formatID, "--no-playlist", "--no-warnings", url)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", &ParseError{Reason: "empty direct URL output"}
}

func (c *Client) run(ctx context.Context, command string, args ...string) (string, error) {
	start := time.Now()
	out, err := c.runner.Run(ctx, args...)
	metrics.ToolInvocationDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())

	status := metrics.ToolStatusOK
	if err != nil {
		status = ErrorKind(err)
	}
	metrics.ToolInvocationsTotal.WithLabelValues(command, status).Inc()

	return out, err
}
