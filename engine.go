package faultline

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/triage-run/faultline/classify"
	"github.com/triage-run/faultline/dedupe"
	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/policy"
	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/taxonomy"
	"github.com/triage-run/faultline/trend"
)

// TagRecurring marks classifications whose fingerprint was seen recently.
const TagRecurring = "recurring"

// Outcome is the composed result of processing one error event:
// classification, recovery plan and an optional spike signal.
type Outcome struct {
	// Event is the originating event, unchanged.
	Event event.Event `json:"event"`

	// Classification is the structured verdict for the event.
	Classification taxonomy.Classification `json:"classification"`

	// Plan is the recovery decision attached to the classification.
	Plan policy.Plan `json:"plan"`

	// Spike is set when this event pushed its category past the trend
	// threshold.
	Spike *trend.SpikeSignal `json:"spike,omitempty"`
}

// Fatal reports whether the outcome should be flagged fatal for crash
// reporting.
func (o Outcome) Fatal() bool {
	return o.Classification.Fatal()
}

// Observer receives outcomes and spike signals. Implementations must not
// block: they run synchronously on the classification path. Errors inside
// an observer are the observer's problem; the engine neither sees nor
// propagates them.
type Observer interface {
	// ObserveOutcome is called once per processed event.
	ObserveOutcome(ctx context.Context, o Outcome)

	// ObserveSpike is called when an event triggers a spike signal.
	ObserveSpike(ctx context.Context, s trend.SpikeSignal)
}

// Engine is the classification engine. Construct one with New and share it
// by reference between all reporting sites; all methods are safe for
// concurrent use.
type Engine struct {
	classifier *classify.Classifier
	resolver   *policy.Resolver
	trends     *trend.Analyzer
	recurrence *dedupe.Tracker
	observers  []Observer
	tracer     trace.Tracer
}

// New assembles an engine. It fails on a floor outside (0,1) or a rule
// that does not compile; a zero-option call always succeeds.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.floor != 0 && (cfg.floor <= 0 || cfg.floor >= 1) {
		return nil, configErr("New", "confidence_floor",
			fmt.Errorf("%w: floor %v outside (0,1)", ErrInvalidConfig, cfg.floor))
	}

	classifierOpts := []classify.Option{}
	if cfg.table != nil {
		classifierOpts = append(classifierOpts, classify.WithTable(cfg.table))
	}
	if cfg.floor != 0 {
		classifierOpts = append(classifierOpts, classify.WithConfidenceFloor(cfg.floor))
	}
	if len(cfg.rules) > 0 {
		set, err := rules.Compile(cfg.rules...)
		if err != nil {
			return nil, configErr("New", "rules", fmt.Errorf("%w: %v", ErrInvalidRule, err))
		}
		classifierOpts = append(classifierOpts, classify.WithRules(set))
	}

	trendOpts := []trend.Option{}
	if cfg.window > 0 {
		trendOpts = append(trendOpts, trend.WithWindow(cfg.window))
	}
	if cfg.capacity > 0 {
		trendOpts = append(trendOpts, trend.WithCapacity(cfg.capacity))
	}
	if cfg.defaultThreshold > 0 {
		trendOpts = append(trendOpts, trend.WithDefaultThreshold(cfg.defaultThreshold))
	}
	for cat, n := range cfg.thresholds {
		trendOpts = append(trendOpts, trend.WithThreshold(cat, n))
	}

	return &Engine{
		classifier: classify.New(classifierOpts...),
		resolver:   policy.NewResolver(),
		trends:     trend.NewAnalyzer(trendOpts...),
		recurrence: dedupe.NewTracker(cfg.recurrenceSize, cfg.recurrenceTTL),
		observers:  cfg.observers,
		tracer:     cfg.tracer,
	}, nil
}

// Process classifies one error event and returns the composed outcome. It
// never fails and performs no blocking I/O; the context is used only for
// tracing and observer propagation, not cancellation.
func (e *Engine) Process(ctx context.Context, ev event.Event) Outcome {
	var span trace.Span
	if e.tracer != nil {
		ctx, span = e.tracer.Start(ctx, "faultline.Process")
		defer span.End()
	}

	cls := e.classifier.Classify(ev)

	if occurrences := e.recurrence.Observe(ev.Fingerprint()); occurrences > 1 {
		cls = cls.WithTags(TagRecurring).WithMetadata("occurrences", occurrences)
	}

	plan := e.resolver.Resolve(cls)
	spike := e.trends.Record(cls.Category, ev.OccurredAt)

	out := Outcome{
		Event:          ev,
		Classification: cls,
		Plan:           plan,
		Spike:          spike,
	}

	if span != nil {
		span.SetAttributes(
			attribute.String("faultline.category", cls.Category.String()),
			attribute.String("faultline.severity", cls.Severity.String()),
			attribute.Float64("faultline.confidence", cls.Confidence),
			attribute.Bool("faultline.spike", spike != nil),
		)
	}

	for _, obs := range e.observers {
		obs.ObserveOutcome(ctx, out)
		if spike != nil {
			obs.ObserveSpike(ctx, *spike)
		}
	}
	return out
}

// Classify runs only the classification stage, without policy, trend or
// recurrence bookkeeping. Useful for calibration tooling.
func (e *Engine) Classify(ev event.Event) taxonomy.Classification {
	return e.classifier.Classify(ev)
}

// Resolve returns the recovery plan for an existing classification.
func (e *Engine) Resolve(cls taxonomy.Classification) policy.Plan {
	return e.resolver.Resolve(cls)
}
