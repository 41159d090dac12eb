// Package slugid derives slugs and opaque identifiers for entities.
package slugid

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// FallbackSlug is used when a name normalizes to nothing.
const FallbackSlug = "untitled"

// Generate normalizes a human name into a URL-safe slug: ASCII-folded,
// lowercased, separators collapsed to single hyphens, everything outside
// [a-z0-9-] dropped. Empty or all-punctuation input yields FallbackSlug so
// slugs are never empty. Collision suffixing is the store's job.
func Generate(name string) string {
	// Underscores count as word separators, not slug characters.
	normalized := strings.ReplaceAll(name, "_", " ")
	out := slug.Make(normalized)
	out = strings.Trim(out, "-")
	if out == "" {
		return FallbackSlug
	}
	return out
}

// NewID returns a new opaque entity identifier.
func NewID() string {
	return uuid.NewString()
}
