package faultline

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/taxonomy"
	"github.com/triage-run/faultline/trend"
)

func TestSlogObserverLogsAtSeverityLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng, err := New(WithObserver(NewSlogObserver(logger)))
	require.NoError(t, err)

	eng.Process(context.Background(), event.New("OutOfMemoryError"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "memory", record["category"])
	assert.Equal(t, "critical", record["severity"])
	assert.Equal(t, true, record["fatal"])
	// Critical maps past slog's named levels; the JSON handler renders it as
	// an offset from ERROR.
	assert.Equal(t, "ERROR+4", record["level"])
}

func TestSlogObserverLowSeverityWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NewSlogObserver(logger).ObserveOutcome(context.Background(), Outcome{
		Event: event.New("minor hiccup"),
		Classification: taxonomy.Classification{
			Category: taxonomy.CategoryValidation,
			Severity: taxonomy.SeverityLow,
		},
	})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
}

func TestSlogObserverSpike(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NewSlogObserver(logger).ObserveSpike(context.Background(), trend.SpikeSignal{
		Category:  taxonomy.CategoryNetwork,
		Count:     11,
		Threshold: 10,
		Window:    time.Hour,
	})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "network", record["category"])
	assert.Equal(t, float64(11), record["count"])
}

func TestOTelObserver(t *testing.T) {
	obs, err := NewOTelObserver(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	eng, err := New(
		WithObserver(obs),
		WithTracer(tracenoop.NewTracerProvider().Tracer("test")),
	)
	require.NoError(t, err)

	// Noop instruments verify only that recording never panics.
	out := eng.Process(context.Background(), event.New("connection refused"))
	assert.Equal(t, taxonomy.CategoryNetwork, out.Classification.Category)

	obs.ObserveSpike(context.Background(), trend.SpikeSignal{
		Category:  taxonomy.CategoryNetwork,
		Count:     11,
		Threshold: 10,
		Window:    time.Hour,
	})
}
