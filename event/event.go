package event

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Event is a single captured runtime failure. It is built once by the
// error-capture collaborator and treated as immutable by the engine.
type Event struct {
	// ID uniquely identifies this event for log correlation.
	ID string `json:"id"`

	// Message is the error's textual representation.
	Message string `json:"message"`

	// StackTrace is the captured stack trace, when available.
	StackTrace string `json:"stack_trace,omitempty"`

	// Context carries runtime signals collected at the failure site.
	Context Context `json:"-"`

	// OccurredAt is when the failure happened.
	OccurredAt time.Time `json:"occurred_at"`
}

// Option configures an Event during construction.
type Option func(*Event)

// WithStackTrace attaches a captured stack trace to the event.
func WithStackTrace(stack string) Option {
	return func(e *Event) {
		e.StackTrace = stack
	}
}

// WithContext sets a single context key on the event. Options apply in
// order, so insertion order follows call order.
func WithContext(key string, value any) Option {
	return func(e *Event) {
		e.Context = e.Context.Set(key, value)
	}
}

// WithOccurredAt overrides the event timestamp. Without it the event is
// stamped with the current time at construction.
func WithOccurredAt(t time.Time) Option {
	return func(e *Event) {
		e.OccurredAt = t
	}
}

// WithID overrides the generated event ID.
func WithID(id string) Option {
	return func(e *Event) {
		e.ID = id
	}
}

// New builds an Event from an error message. A fresh uuid and the current
// time are assigned unless overridden by options.
func New(message string, opts ...Option) Event {
	e := Event{
		ID:         uuid.NewString(),
		Message:    message,
		Context:    NewContext(),
		OccurredAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// FromError builds an Event from an error value. A nil error yields an
// event with an empty message, which classifies as general.
func FromError(err error, opts ...Option) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return New(msg, opts...)
}

// Fingerprint returns a stable hex digest identifying the failure shape:
// the message with digit runs collapsed, so "worker 17 crashed" and
// "worker 42 crashed" share a fingerprint. Used for recurrence tracking.
func (e Event) Fingerprint() string {
	sum := sha256.Sum256([]byte(normalizeMessage(e.Message)))
	return hex.EncodeToString(sum[:8])
}

// normalizeMessage lowercases the message and collapses runs of digits to a
// single '#', stripping the variance that request IDs, ports and addresses
// introduce between otherwise identical failures.
func normalizeMessage(msg string) string {
	var b strings.Builder
	b.Grow(len(msg))
	inDigits := false
	for _, r := range strings.ToLower(msg) {
		if unicode.IsDigit(r) {
			if !inDigits {
				b.WriteByte('#')
				inDigits = true
			}
			continue
		}
		inDigits = false
		b.WriteRune(r)
	}
	return b.String()
}
