package faultline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/policy"
	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/taxonomy"
	"github.com/triage-run/faultline/trend"
)

// recordingObserver captures everything the engine notifies it about.
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
	spikes   []trend.SpikeSignal
}

func (r *recordingObserver) ObserveOutcome(_ context.Context, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingObserver) ObserveSpike(_ context.Context, s trend.SpikeSignal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spikes = append(r.spikes, s)
}

func TestProcessNetworkFailure(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)

	ev := event.New("SocketException: failed host lookup",
		event.WithContext("isOnline", false),
	)
	out := eng.Process(context.Background(), ev)

	assert.Equal(t, taxonomy.CategoryNetwork, out.Classification.Category)
	assert.Equal(t, taxonomy.SeverityMedium, out.Classification.Severity)
	assert.True(t, out.Classification.CanRecover)
	assert.True(t, out.Plan.ShouldRetry)
	assert.Equal(t, 3*time.Second, out.Plan.RetryDelay)
	assert.Equal(t, 3, out.Plan.MaxRetries)
	assert.False(t, out.Fatal())
}

func TestProcessExpiredToken(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)

	ev := event.New("401 Unauthorized",
		event.WithContext("tokenExpired", true),
	)
	out := eng.Process(context.Background(), ev)

	assert.Equal(t, taxonomy.CategoryAuthentication, out.Classification.Category)
	assert.Equal(t, taxonomy.SeverityHigh, out.Classification.Severity)
	assert.True(t, out.Plan.ShouldRetry)
	assert.Equal(t, time.Second, out.Plan.RetryDelay)
	assert.True(t, out.Plan.HasSideEffect(policy.SideEffectClearTokens))
}

func TestProcessOutOfMemory(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)

	out := eng.Process(context.Background(), event.New("OutOfMemoryError: allocation of 512MB failed"))

	assert.Equal(t, taxonomy.CategoryMemory, out.Classification.Category)
	assert.Equal(t, taxonomy.SeverityCritical, out.Classification.Severity)
	assert.False(t, out.Classification.CanRecover)
	assert.False(t, out.Plan.ShouldRetry)
	assert.True(t, out.Plan.ShouldNotifyUser)
	assert.True(t, out.Plan.HasSideEffect(policy.SideEffectRequiresRestart))
	assert.True(t, out.Fatal())
}

func TestProcessUnrecognizedMessage(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)

	out := eng.Process(context.Background(), event.New("xyzzy frobnicated unexpectedly"))

	assert.Equal(t, taxonomy.CategoryGeneral, out.Classification.Category)
	assert.Equal(t, 0.5, out.Classification.Confidence)
	assert.False(t, out.Classification.CanRecover)
	assert.True(t, out.Classification.HasTag("unclassified"))
	assert.True(t, out.Plan.ShouldRetry)
	assert.Equal(t, 2*time.Second, out.Plan.RetryDelay)
}

func TestProcessTagsRecurringEvents(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	first := eng.Process(ctx, event.New("worker 17 crashed"))
	assert.False(t, first.Classification.HasTag(TagRecurring))

	// A different worker number is the same failure shape.
	second := eng.Process(ctx, event.New("worker 42 crashed"))
	assert.True(t, second.Classification.HasTag(TagRecurring))
	assert.Equal(t, 2, second.Classification.Metadata["occurrences"])
}

func TestProcessNotifiesObservers(t *testing.T) {
	rec := &recordingObserver{}
	eng, err := New(WithObserver(rec))
	require.NoError(t, err)

	eng.Process(context.Background(), event.New("connection timeout after 30s"))

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, taxonomy.CategoryTimeout, rec.outcomes[0].Classification.Category)
	assert.Empty(t, rec.spikes)
}

func TestProcessEmitsSpikeOnce(t *testing.T) {
	rec := &recordingObserver{}
	eng, err := New(WithObserver(rec))
	require.NoError(t, err)
	ctx := context.Background()

	// Security's threshold defaults to 3, so the fourth event in the window
	// crosses it.
	now := time.Now()
	var spikes int
	for i := 0; i < 6; i++ {
		out := eng.Process(ctx, event.New(
			fmt.Sprintf("ssl certificate rejected for host %d", i),
			event.WithOccurredAt(now.Add(time.Duration(i)*time.Second)),
		))
		require.Equal(t, taxonomy.CategorySecurity, out.Classification.Category)
		if out.Spike != nil {
			spikes++
			assert.Equal(t, taxonomy.CategorySecurity, out.Spike.Category)
			assert.Equal(t, 4, out.Spike.Count)
			assert.Equal(t, 3, out.Spike.Threshold)
		}
	}

	assert.Equal(t, 1, spikes)
	assert.Len(t, rec.spikes, 1)
}

func TestProcessWithCustomRule(t *testing.T) {
	eng, err := New(WithRules(rules.Rule{
		Name:       "checkout-screen",
		Category:   taxonomy.CategoryUI,
		Weight:     0.7,
		Expression: `context["screen"] == "checkout"`,
	}))
	require.NoError(t, err)

	out := eng.Process(context.Background(), event.New("widget tree rebuild failed",
		event.WithContext("screen", "checkout"),
	))

	assert.Equal(t, taxonomy.CategoryUI, out.Classification.Category)
	assert.Equal(t, "checkout", out.Classification.Metadata["screen"])
}

func TestNewRejectsBadFloor(t *testing.T) {
	for _, floor := range []float64{-0.1, 1.0, 1.5} {
		_, err := New(WithConfidenceFloor(floor))
		assert.ErrorIs(t, err, ErrInvalidConfig, "floor %v", floor)
	}
}

func TestNewRejectsBadRule(t *testing.T) {
	_, err := New(WithRules(rules.Rule{
		Name:       "broken",
		Category:   taxonomy.CategoryNetwork,
		Weight:     0.5,
		Expression: `message ==`,
	}))
	assert.ErrorIs(t, err, ErrInvalidRule)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestClassifySkipsStatefulStages(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)

	// Classify alone must not feed the recurrence cache.
	eng.Classify(event.New("i/o error on volume 3"))
	cls := eng.Classify(event.New("i/o error on volume 7"))
	assert.False(t, cls.HasTag(TagRecurring))

	plan := eng.Resolve(cls)
	assert.Equal(t, taxonomy.CategoryStorage, cls.Category)
	assert.True(t, plan.ShouldRetry)
}

func TestProcessConcurrent(t *testing.T) {
	eng, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	messages := []string{
		"SocketException: connection refused",
		"401 Unauthorized",
		"OutOfMemoryError",
		"invalid input: field required",
		"deadline exceeded",
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := eng.Process(ctx, event.New(messages[i%len(messages)]))
			assert.True(t, out.Classification.Category.IsValid())
		}(i)
	}
	wg.Wait()
}
