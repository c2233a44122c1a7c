// Package event defines the immutable ErrorEvent submitted to the
// classification engine, along with the ordered context map carrying
// runtime signals (network status, memory pressure, auth state, ...)
// collected at the failure site.
//
// Events are built once per failure by the capturing collaborator and never
// mutated. Context values are limited to strings, numbers and booleans;
// anything else is kept but treated as "no evidence" by the extractors.
package event
