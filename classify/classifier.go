package classify

import (
	"strings"

	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/signal"
	"github.com/triage-run/faultline/taxonomy"
)

// DefaultConfidenceFloor is the minimum winning score required to trust a
// category match. Chosen empirically; tune against real failure data.
const DefaultConfidenceFloor = 0.3

// FallbackConfidence is the neutral confidence reported when no category
// reaches the floor. It deliberately replaces the losing raw score.
const FallbackConfidence = 0.5

// Classifier maps error events onto the category taxonomy. It is stateless
// and safe for unbounded concurrent use.
type Classifier struct {
	table *signal.Table
	rules *rules.Set
	floor float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTable replaces the default evidence table.
func WithTable(t *signal.Table) Option {
	return func(c *Classifier) {
		if t != nil {
			c.table = t
		}
	}
}

// WithRules attaches compiled custom rules whose matches add evidence on
// top of the table's scores.
func WithRules(s *rules.Set) Option {
	return func(c *Classifier) {
		c.rules = s
	}
}

// WithConfidenceFloor overrides the confidence floor. Values outside (0,1)
// are ignored.
func WithConfidenceFloor(floor float64) Option {
	return func(c *Classifier) {
		if floor > 0 && floor < 1 {
			c.floor = floor
		}
	}
}

// New creates a Classifier with the default table and floor.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		table: signal.DefaultTable(),
		floor: DefaultConfidenceFloor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores the event against every category and returns the
// resulting classification. It never panics and never returns an error.
func (c *Classifier) Classify(ev event.Event) taxonomy.Classification {
	message := strings.ToLower(ev.Message)
	stack := strings.ToLower(ev.StackTrace)

	scores := c.table.Scores(message, stack, ev.Context)
	for cat, extra := range c.rules.Scores(message, stack, ev.Context.Map()) {
		total := scores[cat] + extra
		if total > 1.0 {
			total = 1.0
		}
		scores[cat] = total
	}

	winner, best := pick(scores)
	if best < c.floor {
		return Fallback()
	}
	return build(winner, best, ev)
}

// Scores exposes the raw per-category evidence for an event. Useful for
// calibration tooling and tests; the classification path uses Classify.
func (c *Classifier) Scores(ev event.Event) map[taxonomy.Category]float64 {
	message := strings.ToLower(ev.Message)
	stack := strings.ToLower(ev.StackTrace)

	scores := c.table.Scores(message, stack, ev.Context)
	for cat, extra := range c.rules.Scores(message, stack, ev.Context.Map()) {
		total := scores[cat] + extra
		if total > 1.0 {
			total = 1.0
		}
		scores[cat] = total
	}
	return scores
}

// pick selects the winning category. Iterating in priority order with a
// strict greater-than comparison makes exact ties resolve to the category
// listed earlier, e.g. security over network.
func pick(scores map[taxonomy.Category]float64) (taxonomy.Category, float64) {
	winner := taxonomy.CategoryGeneral
	best := -1.0
	for _, cat := range taxonomy.Priority {
		if score := scores[cat]; score > best {
			winner = cat
			best = score
		}
	}
	if best < 0 {
		best = 0
	}
	return winner, best
}

// Fallback returns the classification used when no category reaches the
// confidence floor: general, neutral confidence, not recoverable.
func Fallback() taxonomy.Classification {
	return taxonomy.Classification{
		Category:   taxonomy.CategoryGeneral,
		Severity:   taxonomy.SeverityLow,
		Confidence: FallbackConfidence,
		CanRecover: false,
		Tags:       []string{"unclassified"},
	}
}
