package domain

import (
	"regexp"
	"strings"
)

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonWordChars  = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun = regexp.MustCompile(`[\s_]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slug is a URL-safe identifier segment. It is immutable: changing a slug
// means constructing a new one.
type Slug struct {
	value string
}

// NewSlug validates a raw string as a slug.
func NewSlug(raw string) (Slug, error) {
	if raw == "" {
		return Slug{}, ErrEmptySlug
	}
	if !slugPattern.MatchString(raw) {
		return Slug{}, ErrInvalidSlug
	}
	return Slug{value: raw}, nil
}

// SlugFromName derives a slug from a display name: lowercase, non-word
// characters stripped, whitespace collapsed to single hyphens.
func SlugFromName(name string) (Slug, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWordChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return NewSlug(s)
}

// String returns the slug value.
func (s Slug) String() string {
	return s.value
}

// IsZero reports whether the slug is the zero value.
func (s Slug) IsZero() bool {
	return s.value == ""
}

// Equals compares two slugs by value.
func (s Slug) Equals(other Slug) bool {
	return s.value == other.value
}
