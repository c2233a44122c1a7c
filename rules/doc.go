// Package rules lets deployments contribute classification evidence beyond
// the built-in keyword tables. A rule pairs a CEL predicate over the event's
// message, stack trace and context with a category and a weight; when the
// predicate evaluates to true the weight is added to that category's score.
//
// Expressions are compiled once at engine construction. Evaluation follows
// the engine's totality contract: a rule that errors at runtime, or yields a
// non-boolean, simply contributes no evidence.
//
// Example expression, boosting the ui category for failures captured on the
// checkout screen:
//
//	context["screen"] == "checkout" && message.contains("overflow")
package rules
