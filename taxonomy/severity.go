package taxonomy

import (
	"fmt"
	"log/slog"
)

// Severity represents how serious a classified failure is.
type Severity string

const (
	// SeverityLow indicates a cosmetic or easily recoverable failure.
	SeverityLow Severity = "low"

	// SeverityMedium indicates a degraded but usable state.
	SeverityMedium Severity = "medium"

	// SeverityHigh indicates a failure blocking the current operation.
	SeverityHigh Severity = "high"

	// SeverityCritical indicates a failure threatening process stability.
	// Critical classifications are always surfaced to the user and flagged
	// fatal for crash reporting.
	SeverityCritical Severity = "critical"
)

// severityWeights orders severity levels for comparison. Higher weights
// indicate more severe failures.
var severityWeights = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// LevelFatal is the slog level used for critical classifications. slog has
// no fatal level of its own, so the logging collaborator sees error+4.
const LevelFatal = slog.LevelError + 4

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Weight returns the ordering weight of the severity level.
// Returns 0 for invalid levels.
func (s Severity) Weight() int {
	return severityWeights[s]
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// LogLevel maps the severity onto the level the logging collaborator should
// emit at: low logs as a warning, medium and high as errors, critical as
// LevelFatal.
func (s Severity) LogLevel() slog.Level {
	switch s {
	case SeverityLow:
		return slog.LevelWarn
	case SeverityCritical:
		return LevelFatal
	default:
		return slog.LevelError
	}
}

// ParseSeverity parses a string into a Severity value.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}

// CompareSeverity compares two severity levels.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	return s1.Weight() - s2.Weight()
}

// AllSeverities returns all valid severity levels from low to critical.
func AllSeverities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}
