package classify

import (
	"github.com/triage-run/faultline/event"
	"github.com/triage-run/faultline/taxonomy"
)

// build constructs the category-specific classification for a winning
// category. The switch is exhaustive over the closed category set;
// TestBuildersCoverAllCategories enforces totality.
func build(cat taxonomy.Category, confidence float64, ev event.Event) taxonomy.Classification {
	cls := taxonomy.Classification{
		Category:   cat,
		Confidence: confidence,
	}

	switch cat {
	case taxonomy.CategoryNetwork:
		cls.Severity = taxonomy.SeverityMedium
		cls.CanRecover = true
		cls = cls.WithTags("connectivity", "transient").
			WithMetadata("checkConnectivity", true)
		if online, ok := ev.Context.Bool("isOnline"); ok && !online {
			cls = cls.WithMetadata("offline", true)
		}

	case taxonomy.CategoryAuthentication:
		cls.Severity = taxonomy.SeverityHigh
		cls.CanRecover = true
		cls = cls.WithTags("auth").
			WithMetadata("requiresReauth", true)

	case taxonomy.CategoryValidation:
		cls.Severity = taxonomy.SeverityLow
		cls.CanRecover = true
		cls = cls.WithTags("input")
		if field, ok := ev.Context.String("field"); ok {
			cls = cls.WithMetadata("field", field)
		}

	case taxonomy.CategoryMemory:
		// Memory exhaustion is always critical, whatever the evidence.
		cls.Severity = taxonomy.SeverityCritical
		cls.CanRecover = false
		cls = cls.WithTags("resource").
			WithMetadata("requiresRestart", true)
		if pressure, ok := ev.Context.String("memoryPressure"); ok {
			cls = cls.WithMetadata("memoryPressure", pressure)
		}

	case taxonomy.CategoryStorage:
		cls.Severity = taxonomy.SeverityHigh
		cls.CanRecover = true
		cls = cls.WithTags("io")

	case taxonomy.CategoryTimeout:
		cls.Severity = taxonomy.SeverityMedium
		cls.CanRecover = true
		cls = cls.WithTags("transient")

	case taxonomy.CategoryPermission:
		cls.Severity = taxonomy.SeverityHigh
		// Recoverable through user action (granting access), though the
		// policy layer never auto-retries it.
		cls.CanRecover = true
		cls = cls.WithTags("access")

	case taxonomy.CategoryRateLimit:
		cls.Severity = taxonomy.SeverityMedium
		cls.CanRecover = true
		cls = cls.WithTags("throttled", "transient").
			WithMetadata("backoff", "exponential")
		if after, ok := ev.Context.Number("retryAfter"); ok {
			cls = cls.WithMetadata("retryAfter", after)
		}

	case taxonomy.CategorySecurity:
		cls.Severity = taxonomy.SeverityCritical
		cls.CanRecover = false
		cls = cls.WithTags("trust").
			WithMetadata("requiresReauth", true)

	case taxonomy.CategoryUI:
		cls.Severity = taxonomy.SeverityLow
		cls.CanRecover = true
		cls = cls.WithTags("presentation")
		if screen, ok := ev.Context.String("screen"); ok {
			cls = cls.WithMetadata("screen", screen)
		}

	case taxonomy.CategoryDataCorruption:
		cls.Severity = taxonomy.SeverityHigh
		cls.CanRecover = false
		cls = cls.WithTags("integrity")

	case taxonomy.CategoryGeneral:
		cls.Severity = taxonomy.SeverityLow
		cls.CanRecover = false
		cls = cls.WithTags("unclassified")

	default:
		// Unreachable for the closed category set; degrade to the fallback
		// rather than panicking.
		return Fallback()
	}

	return cls
}
