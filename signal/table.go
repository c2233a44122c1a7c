package signal

import (
	"strings"

	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/taxonomy"
)

// Keyword is a weighted substring tested against the lowercased message and
// stack trace. A keyword that appears in either adds its weight once.
type Keyword struct {
	// Term is the lowercase substring to look for.
	Term string

	// Weight is the evidence added on a match, in (0,1].
	Weight float64
}

// ContextSignal is a weighted predicate over a single context key. Exactly
// one of the matcher fields should be set; a signal with no matcher set
// matches when the key is merely present.
type ContextSignal struct {
	// Key is the context key to inspect.
	Key string

	// Weight is the evidence added on a match, in (0,1].
	Weight float64

	// Bool, when set, matches a boolean context value equal to it.
	Bool *bool

	// Values, when set, matches a string context value equal to any entry
	// (case-insensitive).
	Values []string

	// AtLeast, when set, matches a numeric context value >= the threshold.
	AtLeast *float64
}

// matches reports whether the signal fires for the given context. Missing
// keys and mismatched value types count as no evidence.
func (s ContextSignal) matches(ctx event.Context) bool {
	switch {
	case s.Bool != nil:
		b, ok := ctx.Bool(s.Key)
		return ok && b == *s.Bool
	case len(s.Values) > 0:
		v, ok := ctx.String(s.Key)
		if !ok {
			return false
		}
		v = strings.ToLower(v)
		for _, want := range s.Values {
			if v == strings.ToLower(want) {
				return true
			}
		}
		return false
	case s.AtLeast != nil:
		n, ok := ctx.Number(s.Key)
		return ok && n >= *s.AtLeast
	default:
		_, ok := ctx.Get(s.Key)
		return ok
	}
}

// Table holds the keyword lists and context signals for every category.
// A Table is immutable once handed to an engine; build it fully before use.
type Table struct {
	keywords map[taxonomy.Category][]Keyword
	context  map[taxonomy.Category][]ContextSignal
}

// NewTable returns an empty table with no evidence sources.
func NewTable() *Table {
	return &Table{
		keywords: make(map[taxonomy.Category][]Keyword),
		context:  make(map[taxonomy.Category][]ContextSignal),
	}
}

// AddKeyword appends a weighted keyword for the category. The term is
// lowercased; zero or negative weights are ignored.
func (t *Table) AddKeyword(cat taxonomy.Category, term string, weight float64) *Table {
	if term == "" || weight <= 0 {
		return t
	}
	t.keywords[cat] = append(t.keywords[cat], Keyword{Term: strings.ToLower(term), Weight: weight})
	return t
}

// AddContextSignal appends a context signal for the category.
func (t *Table) AddContextSignal(cat taxonomy.Category, sig ContextSignal) *Table {
	if sig.Key == "" || sig.Weight <= 0 {
		return t
	}
	t.context[cat] = append(t.context[cat], sig)
	return t
}

// Score computes the evidence for a single category from the lowercased
// message, lowercased stack trace and context. The result is clamped to
// [0,1].
func (t *Table) Score(cat taxonomy.Category, message, stack string, ctx event.Context) float64 {
	var score float64
	for _, kw := range t.keywords[cat] {
		if strings.Contains(message, kw.Term) || (stack != "" && strings.Contains(stack, kw.Term)) {
			score += kw.Weight
		}
	}
	for _, sig := range t.context[cat] {
		if sig.matches(ctx) {
			score += sig.Weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Scores computes the evidence for every category. Message and stack must
// already be lowercased by the caller; the classifier does this once per
// event.
func (t *Table) Scores(message, stack string, ctx event.Context) map[taxonomy.Category]float64 {
	scores := make(map[taxonomy.Category]float64, len(taxonomy.Priority))
	for _, cat := range taxonomy.Priority {
		scores[cat] = t.Score(cat, message, stack, ctx)
	}
	return scores
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
