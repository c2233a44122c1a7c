package faultline

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/triage-run/faultline/trend"
)

// OTelObserver records classification metrics through OpenTelemetry:
// a counter of processed events by category and severity, a histogram of
// confidence scores, and a counter of spike signals by category.
//
// Instrument failures surface at construction; recording failures are
// silently dropped so observability never affects the classification path.
type OTelObserver struct {
	processed  metric.Int64Counter
	confidence metric.Float64Histogram
	spikes     metric.Int64Counter
}

// NewOTelObserver creates the metric instruments on the given meter.
func NewOTelObserver(meter metric.Meter) (*OTelObserver, error) {
	o := &OTelObserver{}
	var err error

	o.processed, err = meter.Int64Counter(
		"faultline.events",
		metric.WithDescription("Number of error events classified"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create events counter: %w", err)
	}

	o.confidence, err = meter.Float64Histogram(
		"faultline.confidence",
		metric.WithDescription("Classification confidence from 0.0 to 1.0"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create confidence histogram: %w", err)
	}

	o.spikes, err = meter.Int64Counter(
		"faultline.spikes",
		metric.WithDescription("Number of spike signals raised"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create spikes counter: %w", err)
	}

	return o, nil
}

// ObserveOutcome implements Observer.
func (o *OTelObserver) ObserveOutcome(ctx context.Context, out Outcome) {
	attrs := metric.WithAttributes(
		attribute.String("category", out.Classification.Category.String()),
		attribute.String("severity", out.Classification.Severity.String()),
		attribute.Bool("recovered", out.Classification.CanRecover),
	)
	o.processed.Add(ctx, 1, attrs)
	o.confidence.Record(ctx, out.Classification.Confidence, attrs)
}

// ObserveSpike implements Observer.
func (o *OTelObserver) ObserveSpike(ctx context.Context, sig trend.SpikeSignal) {
	o.spikes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", sig.Category.String()),
	))
}
