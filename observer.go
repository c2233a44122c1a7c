package faultline

import (
	"context"
	"log/slog"

	"github.com/triage-run/faultline/trend"
)

// SlogObserver emits one structured log record per outcome, at the level
// the classification's severity maps to, plus a warning per spike signal.
// It is the default bridge to the logging collaborator.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer writing to the given logger.
// A nil logger falls back to slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

// ObserveOutcome implements Observer.
func (s *SlogObserver) ObserveOutcome(ctx context.Context, o Outcome) {
	attrs := []slog.Attr{
		slog.String("event_id", o.Event.ID),
		slog.String("category", o.Classification.Category.String()),
		slog.String("severity", o.Classification.Severity.String()),
		slog.Float64("confidence", o.Classification.Confidence),
		slog.Bool("can_recover", o.Classification.CanRecover),
		slog.Bool("should_retry", o.Plan.ShouldRetry),
		slog.Bool("fatal", o.Fatal()),
	}
	if len(o.Classification.Tags) > 0 {
		attrs = append(attrs, slog.Any("tags", o.Classification.Tags))
	}
	if o.Plan.ShouldRetry {
		attrs = append(attrs,
			slog.Duration("retry_delay", o.Plan.RetryDelay),
			slog.Int("max_retries", o.Plan.MaxRetries),
		)
	}

	s.logger.LogAttrs(ctx, o.Classification.Severity.LogLevel(), o.Event.Message, attrs...)
}

// ObserveSpike implements Observer.
func (s *SlogObserver) ObserveSpike(ctx context.Context, sig trend.SpikeSignal) {
	s.logger.LogAttrs(ctx, slog.LevelWarn, "error spike detected",
		slog.String("category", sig.Category.String()),
		slog.Int("count", sig.Count),
		slog.Int("threshold", sig.Threshold),
		slog.Duration("window", sig.Window),
	)
}
