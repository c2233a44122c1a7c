package policy

import (
	"time"

	"github.com/triage-run/faultline/taxonomy"
)

// defaultMaxRetries applies to every retryable category.
const defaultMaxRetries = 3

// Resolver maps classifications to recovery plans via a per-category table.
// Resolution is a pure lookup and safe for concurrent use.
type Resolver struct {
	table map[taxonomy.Category]Plan
}

// NewResolver returns a resolver loaded with the default policy table.
func NewResolver() *Resolver {
	return &Resolver{table: defaultTable()}
}

// Resolve returns the recovery plan for the classification. Severity
// critical forces user notification whatever the category default says.
// Resolution is total: an unknown category (impossible for the closed
// taxonomy) resolves to the general entry rather than falling through.
func (r *Resolver) Resolve(cls taxonomy.Classification) Plan {
	plan, ok := r.table[cls.Category]
	if !ok {
		plan = r.table[taxonomy.CategoryGeneral]
	}
	if cls.Severity == taxonomy.SeverityCritical {
		plan.ShouldNotifyUser = true
	}
	// Copy the slice so callers cannot mutate the table through the plan.
	if len(plan.SideEffects) > 0 {
		plan.SideEffects = append([]string(nil), plan.SideEffects...)
	}
	return plan
}

// Categories returns every category the table covers, in taxonomy priority
// order. Used by the totality test.
func (r *Resolver) Categories() []taxonomy.Category {
	out := make([]taxonomy.Category, 0, len(r.table))
	for _, cat := range taxonomy.Priority {
		if _, ok := r.table[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

func defaultTable() map[taxonomy.Category]Plan {
	return map[taxonomy.Category]Plan{
		taxonomy.CategoryNetwork: {
			ShouldRetry:      true,
			RetryDelay:       3 * time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "Connection problem. Check your network and try again.",
		},
		taxonomy.CategoryAuthentication: {
			ShouldRetry:      true,
			RetryDelay:       time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "Your session has expired. Please sign in again.",
			SideEffects:      []string{SideEffectClearTokens},
		},
		taxonomy.CategoryValidation: {
			ShouldRetry:      true,
			RetryDelay:       0,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "Some fields need attention. Please review and try again.",
			SideEffects:      []string{SideEffectHighlightField},
		},
		taxonomy.CategoryMemory: {
			ShouldRetry:      false,
			RetryDelay:       5 * time.Second,
			MaxRetries:       0,
			ShouldNotifyUser: true,
			UserMessage:      "The app is running low on memory. Please restart it.",
			SideEffects:      []string{SideEffectRequiresRestart, SideEffectClearCache},
		},
		taxonomy.CategoryStorage: {
			ShouldRetry:      true,
			RetryDelay:       2 * time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "A storage problem occurred. Free up space and try again.",
		},
		taxonomy.CategoryTimeout: {
			ShouldRetry:      true,
			RetryDelay:       2 * time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: false,
			UserMessage:      "The operation took too long. Please try again.",
		},
		taxonomy.CategoryPermission: {
			ShouldRetry:      false,
			RetryDelay:       0,
			MaxRetries:       0,
			ShouldNotifyUser: true,
			UserMessage:      "You don't have permission to perform this action.",
		},
		taxonomy.CategoryRateLimit: {
			ShouldRetry:      true,
			RetryDelay:       2 * time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "Too many requests. Please wait a moment and try again.",
			Backoff: &Backoff{
				Base:       2 * time.Second,
				Multiplier: 2,
				Cap:        60 * time.Second,
			},
		},
		taxonomy.CategorySecurity: {
			ShouldRetry:      false,
			RetryDelay:       0,
			MaxRetries:       0,
			ShouldNotifyUser: true,
			UserMessage:      "A security problem was detected. Please sign in again.",
			SideEffects:      []string{SideEffectRequiresReauth},
		},
		taxonomy.CategoryUI: {
			ShouldRetry:      true,
			RetryDelay:       0,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: false,
			UserMessage:      "Something went wrong displaying this screen.",
		},
		taxonomy.CategoryDataCorruption: {
			ShouldRetry:      false,
			RetryDelay:       0,
			MaxRetries:       0,
			ShouldNotifyUser: true,
			UserMessage:      "Stored data could not be read and was reset.",
			SideEffects:      []string{SideEffectClearCache},
		},
		taxonomy.CategoryGeneral: {
			ShouldRetry:      true,
			RetryDelay:       2 * time.Second,
			MaxRetries:       defaultMaxRetries,
			ShouldNotifyUser: true,
			UserMessage:      "Something went wrong. Please try again.",
		},
	}
}
