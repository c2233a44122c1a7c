// Package trend watches classified events for per-category spikes. Each
// category owns a bounded sliding window of event timestamps; recording an
// event evicts entries older than the window, appends the new timestamp and
// compares the resulting count against the category's threshold.
//
// A SpikeSignal is emitted exactly once per excursion: on the record that
// pushes the windowed count past the threshold. The detector re-arms when
// the count drops back to or below the threshold.
//
// The analyzer is the engine's only mutable shared state. Every category
// window carries its own lock, so concurrent records for different
// categories proceed in parallel while records for the same category are
// serialized.
package trend
