package policy

import "time"

// Side effects a recovery plan can request from the caller. The engine only
// recommends them; executing them is the caller's responsibility.
const (
	// SideEffectClearTokens asks the caller to drop cached credentials.
	SideEffectClearTokens = "clearTokens"

	// SideEffectClearCache asks the caller to clear local caches.
	SideEffectClearCache = "clearCache"

	// SideEffectRequiresRestart indicates the process should be restarted.
	SideEffectRequiresRestart = "requiresRestart"

	// SideEffectHighlightField asks the UI to highlight the failing input.
	SideEffectHighlightField = "highlightField"

	// SideEffectRequiresReauth asks for a fresh interactive sign-in.
	SideEffectRequiresReauth = "requiresReauth"
)

// Backoff describes exponential retry spacing for categories that need it.
type Backoff struct {
	// Base is the delay before the first retry.
	Base time.Duration `json:"base"`

	// Multiplier scales the delay after each attempt.
	Multiplier float64 `json:"multiplier"`

	// Cap bounds the delay regardless of attempt count.
	Cap time.Duration `json:"cap"`
}

// Plan is the recovery decision attached to a classification. The engine
// decides retry parameters; it never performs the retries itself.
type Plan struct {
	// ShouldRetry reports whether the failed operation is worth retrying.
	ShouldRetry bool `json:"should_retry"`

	// RetryDelay is the wait before the first retry (the base delay when
	// Backoff is set).
	RetryDelay time.Duration `json:"retry_delay"`

	// MaxRetries bounds the caller's retry loop: 3 for retryable
	// categories, 0 otherwise.
	MaxRetries int `json:"max_retries"`

	// ShouldNotifyUser reports whether the failure should surface in the UI.
	ShouldNotifyUser bool `json:"should_notify_user"`

	// UserMessage is the text handed to the user-facing messaging
	// collaborator. Never exposes classification internals.
	UserMessage string `json:"user_message"`

	// SideEffects lists remediation actions the caller should perform.
	SideEffects []string `json:"side_effects,omitempty"`

	// Backoff is set for categories with exponential retry spacing
	// (rate limiting); nil means a constant RetryDelay.
	Backoff *Backoff `json:"backoff,omitempty"`
}

// DelayFor returns the wait before the given retry attempt (1-based).
// Constant-delay plans return RetryDelay for every attempt; plans with a
// Backoff grow geometrically up to the cap.
func (p Plan) DelayFor(attempt int) time.Duration {
	if p.Backoff == nil {
		return p.RetryDelay
	}
	if attempt < 1 {
		attempt = 1
	}
	delay := p.Backoff.Base
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.Backoff.Multiplier)
		if delay >= p.Backoff.Cap {
			return p.Backoff.Cap
		}
	}
	if delay > p.Backoff.Cap {
		return p.Backoff.Cap
	}
	return delay
}

// HasSideEffect reports whether the plan requests the given side effect.
func (p Plan) HasSideEffect(effect string) bool {
	for _, e := range p.SideEffects {
		if e == effect {
			return true
		}
	}
	return false
}
