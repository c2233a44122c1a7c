package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-run/faultline/taxonomy"
)

func TestTableIsTotal(t *testing.T) {
	r := NewResolver()
	covered := r.Categories()

	assert.ElementsMatch(t, taxonomy.AllCategories(), covered)
}

func TestResolveNeverFallsThrough(t *testing.T) {
	r := NewResolver()
	plan := r.Resolve(taxonomy.Classification{Category: "not-a-category"})

	// Unknown categories resolve to the general entry.
	assert.Equal(t, r.Resolve(taxonomy.Classification{Category: taxonomy.CategoryGeneral}), plan)
}

func TestNetworkPolicy(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryNetwork,
		Severity: taxonomy.SeverityMedium,
	})

	assert.True(t, plan.ShouldRetry)
	assert.Equal(t, 3*time.Second, plan.RetryDelay)
	assert.Equal(t, 3, plan.MaxRetries)
	assert.True(t, plan.ShouldNotifyUser)
	assert.Empty(t, plan.SideEffects)
}

func TestAuthenticationPolicy(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryAuthentication,
		Severity: taxonomy.SeverityHigh,
	})

	assert.True(t, plan.ShouldRetry)
	assert.Equal(t, time.Second, plan.RetryDelay)
	assert.True(t, plan.HasSideEffect(SideEffectClearTokens))
}

func TestMemoryPolicy(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryMemory,
		Severity: taxonomy.SeverityCritical,
	})

	assert.False(t, plan.ShouldRetry)
	assert.Zero(t, plan.MaxRetries)
	assert.Equal(t, 5*time.Second, plan.RetryDelay)
	assert.True(t, plan.HasSideEffect(SideEffectRequiresRestart))
	assert.True(t, plan.HasSideEffect(SideEffectClearCache))
}

func TestSecurityPolicy(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{
		Category: taxonomy.CategorySecurity,
		Severity: taxonomy.SeverityCritical,
	})

	assert.False(t, plan.ShouldRetry)
	assert.True(t, plan.ShouldNotifyUser)
	assert.True(t, plan.HasSideEffect(SideEffectRequiresReauth))
}

func TestRateLimitBackoff(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryRateLimit,
		Severity: taxonomy.SeverityMedium,
	})

	require.NotNil(t, plan.Backoff)
	assert.Equal(t, 2*time.Second, plan.Backoff.Base)
	assert.Equal(t, 60*time.Second, plan.Backoff.Cap)

	assert.Equal(t, 2*time.Second, plan.DelayFor(1))
	assert.Equal(t, 4*time.Second, plan.DelayFor(2))
	assert.Equal(t, 8*time.Second, plan.DelayFor(3))
	assert.Equal(t, 32*time.Second, plan.DelayFor(5))
	assert.Equal(t, 60*time.Second, plan.DelayFor(6))
	assert.Equal(t, 60*time.Second, plan.DelayFor(20))
}

func TestConstantDelayPlans(t *testing.T) {
	plan := NewResolver().Resolve(taxonomy.Classification{Category: taxonomy.CategoryNetwork})

	assert.Equal(t, 3*time.Second, plan.DelayFor(1))
	assert.Equal(t, 3*time.Second, plan.DelayFor(7))
}

func TestCriticalSeverityForcesNotification(t *testing.T) {
	r := NewResolver()

	// Timeout defaults to silent handling...
	quiet := r.Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryTimeout,
		Severity: taxonomy.SeverityMedium,
	})
	assert.False(t, quiet.ShouldNotifyUser)

	// ...but a critical classification always surfaces.
	loud := r.Resolve(taxonomy.Classification{
		Category: taxonomy.CategoryTimeout,
		Severity: taxonomy.SeverityCritical,
	})
	assert.True(t, loud.ShouldNotifyUser)
}

func TestMaxRetriesFollowsRetryability(t *testing.T) {
	r := NewResolver()
	for _, cat := range taxonomy.AllCategories() {
		plan := r.Resolve(taxonomy.Classification{Category: cat})
		if plan.ShouldRetry {
			assert.Equal(t, 3, plan.MaxRetries, "category %q", cat)
		} else {
			assert.Zero(t, plan.MaxRetries, "category %q", cat)
		}
	}
}

func TestEveryPlanHasUserMessage(t *testing.T) {
	r := NewResolver()
	for _, cat := range taxonomy.AllCategories() {
		plan := r.Resolve(taxonomy.Classification{Category: cat})
		assert.NotEmpty(t, plan.UserMessage, "category %q", cat)
	}
}

func TestResolveCopiesSideEffects(t *testing.T) {
	r := NewResolver()
	plan := r.Resolve(taxonomy.Classification{Category: taxonomy.CategoryMemory})
	plan.SideEffects[0] = "mutated"

	fresh := r.Resolve(taxonomy.Classification{Category: taxonomy.CategoryMemory})
	assert.Equal(t, SideEffectRequiresRestart, fresh.SideEffects[0])
}
