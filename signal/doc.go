// Package signal implements the per-category evidence extractors feeding the
// classifier. Extraction is a pure function over the lowercased message, the
// lowercased stack trace and the event context: each matched keyword or
// context signal adds a fixed weight, and the per-category sum is clamped to
// 1.0.
//
// Extractors hold no state and never touch the clock, so identical inputs
// always produce bit-for-bit identical scores. An event with an empty
// message, empty stack trace and empty context scores 0.0 for every
// category.
//
// The default keyword weights were chosen empirically and should be
// calibrated against real failure data; deployments can extend or replace
// the table via Table.AddKeyword and Table.AddContextSignal.
package signal
