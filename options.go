package faultline

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/signal"
	"github.com/triage-run/faultline/taxonomy"
)

// Option configures an Engine.
type Option func(*engineConfig)

// engineConfig holds configuration collected from options before the
// engine is assembled.
type engineConfig struct {
	floor            float64
	table            *signal.Table
	rules            []rules.Rule
	observers        []Observer
	tracer           trace.Tracer
	window           time.Duration
	capacity         int
	defaultThreshold int
	thresholds       map[taxonomy.Category]int
	recurrenceSize   int
	recurrenceTTL    time.Duration
}

// WithConfidenceFloor sets the minimum winning score required to trust a
// category match. Must be in (0,1); New fails otherwise.
func WithConfidenceFloor(floor float64) Option {
	return func(c *engineConfig) {
		c.floor = floor
	}
}

// WithSignalTable replaces the default evidence table. Start from
// signal.DefaultTable() when only extending it.
func WithSignalTable(t *signal.Table) Option {
	return func(c *engineConfig) {
		c.table = t
	}
}

// WithRules adds custom CEL evidence rules. Rules compile during New, so a
// malformed rule fails construction rather than the classification path.
func WithRules(rs ...rules.Rule) Option {
	return func(c *engineConfig) {
		c.rules = append(c.rules, rs...)
	}
}

// WithObserver registers an observer notified of every outcome and spike.
// Observers run synchronously on the classification path and must not
// block; ship-elsewhere observers (see package dispatch) buffer internally.
func WithObserver(obs Observer) Option {
	return func(c *engineConfig) {
		if obs != nil {
			c.observers = append(c.observers, obs)
		}
	}
}

// WithTracer sets an OpenTelemetry tracer. When set, every Process call is
// wrapped in a span carrying the category, severity and confidence.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}

// WithTrendWindow sets the sliding window length for spike detection.
func WithTrendWindow(d time.Duration) Option {
	return func(c *engineConfig) {
		c.window = d
	}
}

// WithTrendCapacity bounds each category's trend buffer.
func WithTrendCapacity(n int) Option {
	return func(c *engineConfig) {
		c.capacity = n
	}
}

// WithDefaultSpikeThreshold sets the spike threshold for categories without
// an explicit override.
func WithDefaultSpikeThreshold(n int) Option {
	return func(c *engineConfig) {
		c.defaultThreshold = n
	}
}

// WithSpikeThreshold overrides the spike threshold for one category.
func WithSpikeThreshold(cat taxonomy.Category, n int) Option {
	return func(c *engineConfig) {
		if c.thresholds == nil {
			c.thresholds = make(map[taxonomy.Category]int)
		}
		c.thresholds[cat] = n
	}
}

// WithRecurrenceWindow configures the fingerprint recurrence cache: size
// bounds the number of distinct fingerprints tracked, ttl how long a count
// survives without a new occurrence.
func WithRecurrenceWindow(size int, ttl time.Duration) Option {
	return func(c *engineConfig) {
		c.recurrenceSize = size
		c.recurrenceTTL = ttl
	}
}
