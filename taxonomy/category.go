package taxonomy

import "fmt"

// Category represents the failure category assigned to an error event.
type Category string

const (
	// CategoryNetwork indicates connectivity failures.
	// Examples: socket errors, DNS lookup failures, connection resets
	CategoryNetwork Category = "network"

	// CategoryAuthentication indicates credential or session failures.
	// Examples: 401 responses, expired tokens, failed logins
	CategoryAuthentication Category = "authentication"

	// CategoryValidation indicates rejected or malformed user input.
	// Examples: missing required fields, format violations
	CategoryValidation Category = "validation"

	// CategoryMemory indicates memory exhaustion. Always critical.
	// Examples: out-of-memory errors, failed allocations
	CategoryMemory Category = "memory"

	// CategoryStorage indicates local persistence failures.
	// Examples: disk full, file not found, locked databases
	CategoryStorage Category = "storage"

	// CategoryTimeout indicates an operation exceeding its deadline.
	// Examples: request timeouts, deadline exceeded
	CategoryTimeout Category = "timeout"

	// CategoryPermission indicates denied access to a protected resource.
	// Examples: 403 responses, filesystem permission errors
	CategoryPermission Category = "permission"

	// CategoryRateLimit indicates server-side throttling.
	// Examples: 429 responses, quota exhaustion
	CategoryRateLimit Category = "rate_limit"

	// CategorySecurity indicates integrity or trust failures.
	// Examples: certificate validation errors, signature mismatches
	CategorySecurity Category = "security"

	// CategoryUI indicates rendering or presentation-layer failures.
	// Examples: layout errors, failed view updates
	CategoryUI Category = "ui"

	// CategoryDataCorruption indicates unreadable or inconsistent data.
	// Examples: checksum mismatches, truncated payloads
	CategoryDataCorruption Category = "data_corruption"

	// CategoryGeneral is the fallback when no category reaches the
	// confidence floor.
	CategoryGeneral Category = "general"
)

// Priority is the fixed tie-break order applied when two categories score
// identically. Earlier entries reflect higher operational severity, so a tie
// between security and network evidence resolves to security.
var Priority = []Category{
	CategorySecurity,
	CategoryMemory,
	CategoryAuthentication,
	CategoryDataCorruption,
	CategoryPermission,
	CategoryRateLimit,
	CategoryTimeout,
	CategoryStorage,
	CategoryNetwork,
	CategoryValidation,
	CategoryUI,
	CategoryGeneral,
}

// IsValid returns true if the category is one of the defined constants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNetwork,
		CategoryAuthentication,
		CategoryValidation,
		CategoryMemory,
		CategoryStorage,
		CategoryTimeout,
		CategoryPermission,
		CategoryRateLimit,
		CategorySecurity,
		CategoryUI,
		CategoryDataCorruption,
		CategoryGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human-readable display name for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryNetwork:
		return "Network"
	case CategoryAuthentication:
		return "Authentication"
	case CategoryValidation:
		return "Validation"
	case CategoryMemory:
		return "Memory"
	case CategoryStorage:
		return "Storage"
	case CategoryTimeout:
		return "Timeout"
	case CategoryPermission:
		return "Permission"
	case CategoryRateLimit:
		return "Rate Limit"
	case CategorySecurity:
		return "Security"
	case CategoryUI:
		return "UI"
	case CategoryDataCorruption:
		return "Data Corruption"
	case CategoryGeneral:
		return "General"
	default:
		return string(c)
	}
}

// ParseCategory parses a string into a Category value.
// Returns an error if the string is not a valid category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

// AllCategories returns every valid category in priority order.
func AllCategories() []Category {
	out := make([]Category, len(Priority))
	copy(out, Priority)
	return out
}
