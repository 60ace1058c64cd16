// Package ytdlp wraps invocation of a yt-dlp-compatible extraction tool and
// parsing of its output.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// RunnerConfig holds configuration for the command runner.
type RunnerConfig struct {
	// BinaryPath is the path to the extractor binary.
	// If empty, "yt-dlp" is used (assumes it's in PATH).
	BinaryPath string

	// Timeout bounds a single invocation. An invocation that exceeds it is
	// killed and reported as a ToolError with TimedOut set.
	Timeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with production-ready defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		BinaryPath: "yt-dlp",
		Timeout:    90 * time.Second,
	}
}

// Runner executes the extraction tool and returns its standard output.
// Implementations must pass arguments as a discrete argv, never through a
// shell: URLs are attacker-controlled.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandRunner implements Runner by spawning the extractor as a child
// process. Stdout and stderr are captured independently; stderr is only ever
// attached to failures, never parsed for data.
type CommandRunner struct {
	config RunnerConfig
}

var _ Runner = (*CommandRunner)(nil)

// NewCommandRunner creates a Runner over the configured binary.
func NewCommandRunner(cfg RunnerConfig) *CommandRunner {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "yt-dlp"
	}
	return &CommandRunner{config: cfg}
}

// Run spawns one extractor invocation and waits for it to exit.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.config.BinaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ToolError{
				Stderr:   strings.TrimSpace(stderr.String()),
				TimedOut: true,
				Err:      ctx.Err(),
			}
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ToolError{
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}

		return "", &SpawnError{Binary: r.config.BinaryPath, Err: err}
	}

	return stdout.String(), nil
}
