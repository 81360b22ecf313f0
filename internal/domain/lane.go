package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var laneSlugPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,31}$`)

// LaneDefinition is a named scheduling category. Items reference lanes by
// slug; a lane cannot be deleted while any item still references it.
type LaneDefinition struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Color       string
	Icon        string
	SortOrder   int
	IsDefault   bool

	// AutoAssign, when non-nil, is the predicate set evaluated by the lane
	// resolver against item attributes.
	AutoAssign *ConditionSet

	Scope   LaneScope
	OwnerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeSlug uppercases and trims a lane slug.
func NormalizeSlug(slug string) string {
	return strings.ToUpper(strings.TrimSpace(slug))
}

// ValidateSlug checks that the slug is a stable uppercase key: 2-32
// characters, uppercase letters, digits, underscores, starting with a letter.
func (l *LaneDefinition) ValidateSlug() error {
	if l.Slug == "" {
		return fmt.Errorf("lane slug is required")
	}
	if !laneSlugPattern.MatchString(l.Slug) {
		return fmt.Errorf("lane slug %q must be 2-32 uppercase letters, digits, or underscores (e.g. PROMO)", l.Slug)
	}
	return nil
}
