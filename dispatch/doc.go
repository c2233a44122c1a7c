// Package dispatch ships classification outcomes and spike signals to
// external consumers over Redis pub/sub. It is an optional adapter for the
// metrics/crash-reporting collaborators; the engine is complete without it.
//
// The publisher implements faultline.Observer. Because observers run on the
// classification path, publishing is fire-and-forget: messages pass through
// a bounded buffer to a single worker goroutine, and when the buffer is
// full the message is dropped rather than blocking Process. Spike consumers
// are advisory by contract, so dropped messages cost visibility, never
// correctness.
package dispatch
