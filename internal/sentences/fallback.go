package sentences

import (
	"context"
	"log/slog"
)

// Fallback serves questions from a primary source and switches to a
// secondary one for any call where the primary fails.
type Fallback struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
}

func NewFallback(primary, secondary Source, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("component", "sentences"),
	}
}

func (f *Fallback) Next(ctx context.Context, in SourceInput) (*Question, error) {
	q, err := f.primary.Next(ctx, in)
	if err == nil {
		return q, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f.logger.Warn("primary question source failed, using fallback", "error", err)
	return f.secondary.Next(ctx, in)
}
