package taxonomy

import (
	"slices"
	"sort"
)

// Classification is the structured verdict for a single error event.
// A Classification is produced fresh per event and must not be mutated once
// returned to the caller.
type Classification struct {
	// Category is the winning failure category.
	Category Category `json:"category"`

	// Severity is the operational severity assigned by the category builder.
	// Memory classifications are always critical.
	Severity Severity `json:"severity"`

	// Confidence is the winning evidence score in [0,1]. Fallback
	// classifications carry the neutral default 0.5 rather than the losing
	// raw score.
	Confidence float64 `json:"confidence"`

	// CanRecover reports whether the failure is considered recoverable.
	CanRecover bool `json:"can_recover"`

	// Tags is a sorted, duplicate-free set of labels attached by the
	// category builder (and by the engine, e.g. "recurring").
	Tags []string `json:"tags,omitempty"`

	// Metadata carries category-specific hints for downstream consumers,
	// e.g. {"requiresReauth": true} for authentication failures.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// WithTags returns a copy of the classification with the given tags added.
// The tag set stays sorted and duplicate-free so classifications remain
// comparable across identical events.
func (c Classification) WithTags(tags ...string) Classification {
	merged := make([]string, 0, len(c.Tags)+len(tags))
	merged = append(merged, c.Tags...)
	for _, t := range tags {
		if !slices.Contains(merged, t) {
			merged = append(merged, t)
		}
	}
	sort.Strings(merged)
	c.Tags = merged
	return c
}

// WithMetadata returns a copy of the classification with the given key set
// in its metadata. The receiver's metadata map is not modified.
func (c Classification) WithMetadata(key string, value any) Classification {
	meta := make(map[string]any, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		meta[k] = v
	}
	meta[key] = value
	c.Metadata = meta
	return c
}

// HasTag reports whether the classification carries the given tag.
func (c Classification) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// Fatal reports whether the classification should be flagged fatal for the
// crash-reporting collaborator.
func (c Classification) Fatal() bool {
	return c.Severity == SeverityCritical
}
