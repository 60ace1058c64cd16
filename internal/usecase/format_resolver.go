package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
	"github.com/hszk-dev/streamgrab/internal/ytdlp"
)

const (
	// DefaultResolveConcurrency bounds the parallel direct-URL resolution
	// calls per request.
	DefaultResolveConcurrency = 4

	// AudioQualityLabel is the quality label of the single audio tier.
	AudioQualityLabel = "audio"
)

// FormatResolver builds the downloadable format ladder from a raw listing,
// resolving each surviving tier to a direct URL.
type FormatResolver interface {
	// Resolve returns the ordered ladder: video tiers by descending height,
	// then at most one audio tier. Per-tier resolution failures leave the
	// entry without a URL; they never fail the ladder.
	Resolve(ctx context.Context, videoURL string, raw []ytdlp.RawFormat) []model.Format
}

type formatResolver struct {
	extractor   MediaExtractor
	concurrency int
}

// NewFormatResolver creates a FormatResolver that resolves direct URLs
// through the given extractor, at most concurrency invocations in parallel.
func NewFormatResolver(extractor MediaExtractor, concurrency int) FormatResolver {
	if concurrency <= 0 {
		concurrency = DefaultResolveConcurrency
	}
	return &formatResolver{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// candidate pairs a surviving raw format with its quality label.
type candidate struct {
	raw     ytdlp.RawFormat
	quality string
}

func (r *formatResolver) Resolve(ctx context.Context, videoURL string, raw []ytdlp.RawFormat) []model.Format {
	candidates := buildLadder(raw)

	formats := make([]model.Format, len(candidates))

	// Direct-URL resolution is one tool invocation per tier and dominates
	// request latency. Tiers are independent, so fan out with a bound;
	// results land at their original index to preserve ladder order.
	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			directURL, err := r.extractor.DirectURL(ctx, videoURL, c.raw.FormatID)
			if err != nil {
				slog.Warn("direct URL resolution failed",
					slog.String("format_id", c.raw.FormatID),
					slog.String("quality", c.quality),
					slog.Any("error", err),
				)
				directURL = ""
			}

			formats[i] = model.Format{
				Quality: c.quality,
				Ext:     c.raw.Ext,
				URL:     directURL,
				Size:    model.RenderSize(c.raw.SizeBytes()),
				Codecs:  codecLabel(c.raw),
			}
			return nil
		})
	}
	_ = g.Wait()

	return formats
}

// buildLadder partitions and ranks the raw listing: video tiers sorted by
// height descending, deduplicated per height, then the single best-audio
// entry by bitrate.
func buildLadder(raw []ytdlp.RawFormat) []candidate {
	var video, audio []ytdlp.RawFormat
	for _, f := range raw {
		switch {
		case f.HasVideo():
			// Entries without a height cannot be labeled with a quality
			// tier; entries without a source URL are unreachable.
			if f.Height > 0 && f.URL != "" {
				video = append(video, f)
			}
		case f.HasAudio():
			audio = append(audio, f)
		}
	}

	sort.SliceStable(video, func(i, j int) bool {
		if video[i].Height != video[j].Height {
			return video[i].Height > video[j].Height
		}
		return video[i].FPS > video[j].FPS
	})

	candidates := make([]candidate, 0, len(video)+1)
	lastHeight := -1
	for _, f := range video {
		if f.Height == lastHeight {
			continue
		}
		lastHeight = f.Height
		candidates = append(candidates, candidate{
			raw:     f,
			quality: fmt.Sprintf("%dp", f.Height),
		})
	}

	// Multiple audio-only renditions are never exposed; only the
	// highest-bitrate one keeps the ladder unambiguous.
	if len(audio) > 0 {
		best := audio[0]
		for _, f := range audio[1:] {
			if f.ABR > best.ABR {
				best = f
			}
		}
		candidates = append(candidates, candidate{raw: best, quality: AudioQualityLabel})
	}

	return candidates
}

func codecLabel(f ytdlp.RawFormat) string {
	switch {
	case f.HasVideo() && f.HasAudio():
		return f.VCodec + "+" + f.ACodec
	case f.HasVideo():
		return f.VCodec
	case f.HasAudio():
		return f.ACodec
	default:
		return ""
	}
}
