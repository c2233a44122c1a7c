package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/signal"
	"github.com/triage-run/faultline/taxonomy"
)

func TestEmptyEventFallsBackToGeneral(t *testing.T) {
	c := New()
	cls := c.Classify(event.New(""))

	assert.Equal(t, taxonomy.CategoryGeneral, cls.Category)
	assert.Equal(t, FallbackConfidence, cls.Confidence)
	assert.False(t, cls.CanRecover)
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	c := New()
	events := []event.Event{
		event.New(""),
		event.New("socketexception: failed host lookup", event.WithContext("isOnline", false)),
		event.New("outofmemoryerror"),
		event.New("connection refused connection reset no internet network is unreachable"),
		event.New("something entirely unseen"),
	}

	for _, ev := range events {
		cls := c.Classify(ev)
		assert.GreaterOrEqual(t, cls.Confidence, 0.0)
		assert.LessOrEqual(t, cls.Confidence, 1.0)
		assert.True(t, cls.Severity.IsValid())
		assert.True(t, cls.Category.IsValid())
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New()
	ev := event.New("socketexception: failed host lookup",
		event.WithContext("isOnline", false),
		event.WithContext("screen", "feed"),
	)

	first := c.Classify(ev)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Classify(ev))
	}
}

func TestTieBreakPrefersSecurityOverNetwork(t *testing.T) {
	// "ssl" and "network" carry the same default weight (0.5), producing an
	// exact tie that must resolve by priority order.
	c := New()
	ev := event.New("ssl network failure")

	scores := c.Scores(ev)
	require.Equal(t, scores[taxonomy.CategorySecurity], scores[taxonomy.CategoryNetwork])
	require.Positive(t, scores[taxonomy.CategorySecurity])

	assert.Equal(t, taxonomy.CategorySecurity, c.Classify(ev).Category)
}

func TestMemoryAlwaysCritical(t *testing.T) {
	c := New()
	cls := c.Classify(event.New("OutOfMemoryError", event.WithContext("memoryPressure", "high")))

	assert.Equal(t, taxonomy.CategoryMemory, cls.Category)
	assert.Equal(t, taxonomy.SeverityCritical, cls.Severity)
	assert.False(t, cls.CanRecover)
	assert.Equal(t, true, cls.Metadata["requiresRestart"])
	assert.Equal(t, "high", cls.Metadata["memoryPressure"])
}

func TestNetworkScenario(t *testing.T) {
	c := New()
	cls := c.Classify(event.New("SocketException: Failed host lookup",
		event.WithContext("isOnline", false)))

	assert.Equal(t, taxonomy.CategoryNetwork, cls.Category)
	assert.GreaterOrEqual(t, cls.Confidence, 0.8)
	assert.True(t, cls.CanRecover)
	assert.Equal(t, true, cls.Metadata["offline"])
}

func TestAuthenticationScenario(t *testing.T) {
	c := New()
	cls := c.Classify(event.New("401 unauthorized: invalid token",
		event.WithContext("tokenExpired", true)))

	assert.Equal(t, taxonomy.CategoryAuthentication, cls.Category)
	assert.Equal(t, true, cls.Metadata["requiresReauth"])
}

func TestBelowFloorForcesGeneral(t *testing.T) {
	// A custom floor above any single keyword weight forces the fallback.
	c := New(WithConfidenceFloor(0.95))
	cls := c.Classify(event.New("dns hiccup"))

	assert.Equal(t, taxonomy.CategoryGeneral, cls.Category)
	assert.Equal(t, FallbackConfidence, cls.Confidence)
	assert.False(t, cls.CanRecover)
}

func TestUnsupportedContextTypesDegradeGracefully(t *testing.T) {
	c := New()
	cls := c.Classify(event.New("connection refused",
		event.WithContext("isOnline", struct{ weird bool }{true}),
		event.WithContext("junk", []int{1, 2, 3}),
	))

	assert.Equal(t, taxonomy.CategoryNetwork, cls.Category)
}

func TestRulesContributeEvidence(t *testing.T) {
	set, err := rules.Compile(rules.Rule{
		Name:       "checkout-ui",
		Category:   taxonomy.CategoryUI,
		Weight:     0.9,
		Expression: `context["screen"] == "checkout"`,
	})
	require.NoError(t, err)

	c := New(WithRules(set))
	cls := c.Classify(event.New("unexplained failure", event.WithContext("screen", "checkout")))

	assert.Equal(t, taxonomy.CategoryUI, cls.Category)
	assert.InDelta(t, 0.9, cls.Confidence, 1e-9)
}

func TestRulesStackWithTableEvidence(t *testing.T) {
	set, err := rules.Compile(rules.Rule{
		Name:       "payments-network",
		Category:   taxonomy.CategoryNetwork,
		Weight:     0.5,
		Expression: `context["subsystem"] == "payments"`,
	})
	require.NoError(t, err)

	c := New(WithRules(set))
	cls := c.Classify(event.New("dns lookup slow", event.WithContext("subsystem", "payments")))

	assert.Equal(t, taxonomy.CategoryNetwork, cls.Category)
	assert.InDelta(t, 1.0, cls.Confidence, 1e-9)
}

func TestBuildersCoverAllCategories(t *testing.T) {
	for _, cat := range taxonomy.AllCategories() {
		cls := build(cat, 0.9, event.New("synthetic"))
		assert.Equal(t, cat, cls.Category, "builder for %q changed the category", cat)
		assert.True(t, cls.Severity.IsValid(), "builder for %q produced no severity", cat)
	}
}

func TestCustomTableOption(t *testing.T) {
	table := signal.NewTable().AddKeyword(taxonomy.CategoryStorage, "vault sealed", 0.8)
	c := New(WithTable(table))

	cls := c.Classify(event.New("vault sealed"))
	assert.Equal(t, taxonomy.CategoryStorage, cls.Category)
}
