package dispatch

import (
	"time"

	"github.com/triage-run/faultline"
	"github.com/triage-run/faultline/trend"
)

// OutcomeReport is the JSON payload published per processed event. It
// carries the full classification and plan but flattens them to primitive
// fields so consumers need no knowledge of the engine's types.
type OutcomeReport struct {
	EventID      string    `json:"event_id"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurred_at"`
	Category     string    `json:"category"`
	Severity     string    `json:"severity"`
	Confidence   float64   `json:"confidence"`
	CanRecover   bool      `json:"can_recover"`
	Tags         []string  `json:"tags,omitempty"`
	Fatal        bool      `json:"fatal"`
	ShouldRetry  bool      `json:"should_retry"`
	RetryDelayMS int64     `json:"retry_delay_ms"`
	MaxRetries   int       `json:"max_retries"`
	NotifyUser   bool      `json:"notify_user"`
	SideEffects  []string  `json:"side_effects,omitempty"`
	Spike        bool      `json:"spike"`
}

// SpikeReport is the JSON payload published per spike signal.
type SpikeReport struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
	WindowMS  int64  `json:"window_ms"`
}

// newOutcomeReport flattens an outcome for publication.
func newOutcomeReport(o faultline.Outcome) OutcomeReport {
	return OutcomeReport{
		EventID:      o.Event.ID,
		Message:      o.Event.Message,
		OccurredAt:   o.Event.OccurredAt,
		Category:     o.Classification.Category.String(),
		Severity:     o.Classification.Severity.String(),
		Confidence:   o.Classification.Confidence,
		CanRecover:   o.Classification.CanRecover,
		Tags:         o.Classification.Tags,
		Fatal:        o.Fatal(),
		ShouldRetry:  o.Plan.ShouldRetry,
		RetryDelayMS: o.Plan.RetryDelay.Milliseconds(),
		MaxRetries:   o.Plan.MaxRetries,
		NotifyUser:   o.Plan.ShouldNotifyUser,
		SideEffects:  o.Plan.SideEffects,
		Spike:        o.Spike != nil,
	}
}

// newSpikeReport flattens a spike signal for publication.
func newSpikeReport(s trend.SpikeSignal) SpikeReport {
	return SpikeReport{
		Category:  s.Category.String(),
		Count:     s.Count,
		Threshold: s.Threshold,
		WindowMS:  s.Window.Milliseconds(),
	}
}
