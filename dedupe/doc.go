// Package dedupe tracks recurring failures by event fingerprint. Crash
// reporters and logs drown when the same fault fires in a loop; the tracker
// counts recent occurrences of each fingerprint so the engine can tag
// repeats instead of treating every instance as novel.
//
// Counts live in a bounded, TTL-expiring LRU: a fingerprint not seen within
// the TTL starts over at one, and cold fingerprints fall out under memory
// pressure.
package dedupe
