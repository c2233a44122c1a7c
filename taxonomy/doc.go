// Package taxonomy defines the closed category and severity enumerations used
// by the classification engine, together with the Classification record that
// the engine produces for every error event.
//
// The category set is closed and exhaustive: every event classifies into
// exactly one category, with CategoryGeneral acting as the fallback when no
// category accumulates enough evidence. Severity is totally ordered from
// SeverityLow to SeverityCritical and maps 1:1 onto log levels for the
// logging collaborator.
package taxonomy
