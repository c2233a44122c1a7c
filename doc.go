// Package faultline is an error classification and recovery decision engine.
//
// Given a raw runtime failure — an error message, an optional stack trace
// and a bag of contextual signals — the engine produces a structured
// Classification (category, severity, confidence, recoverability) and a
// recovery Plan (whether to retry, how long to wait, whether to surface the
// failure to the user, and which remediation side effects to request). A
// sliding-window trend analyzer additionally flags spikes of same-category
// failures.
//
// # Core Concepts
//
// The engine is organized around a small pipeline:
//
//   - Signal extraction: pure per-category scoring over the lowercased
//     message, stack trace and context (package signal), optionally
//     extended with CEL rules (package rules)
//   - Classification: winner selection with a fixed tie-break priority and
//     a confidence floor (package classify)
//   - Policy resolution: an exhaustive category→plan table (package policy)
//   - Trend analysis: per-category spike detection (package trend)
//   - Recurrence tracking: fingerprint counting for repeated faults
//     (package dedupe)
//
// # Getting Started
//
// Construct an engine once and share it between all reporting sites:
//
//	engine, err := faultline.New(
//		faultline.WithObserver(faultline.NewSlogObserver(logger)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := engine.Process(ctx, event.FromError(err,
//		event.WithContext("isOnline", false),
//	))
//	if outcome.Plan.ShouldNotifyUser {
//		show(outcome.Plan.UserMessage)
//	}
//
// # Totality
//
// Process never fails and never panics: a failure inside the
// failure-handling path would be catastrophic, so malformed input degrades
// to "no evidence" and unclassifiable events fall back to the general
// category. The engine performs no blocking I/O; observers that ship data
// elsewhere (see package dispatch) buffer and drop rather than stall the
// classification path.
//
// # Thread Safety
//
// Classification and policy resolution are stateless and safe for unbounded
// concurrency. The trend analyzer locks per category, so reporting sites
// only contend when they fail the same way at the same time.
package faultline
