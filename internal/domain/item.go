package domain

import (
	"strings"
	"time"
)

// Label keys with special meaning on a timeline item.
const (
	LabelTerritory = "territory"
	LabelCity      = "city"
	LabelLane      = "lane"
	LabelTravel    = "travel"
)

// DefaultItemDuration is the effective duration assumed for items that have
// a start but no recorded end.
const DefaultItemDuration = 2 * time.Hour

type TimelineItem struct {
	ID        string
	ProjectID string
	Type      ItemType
	Lane      string
	Kind      string
	Title     string

	Description string
	StartsAt    *time.Time
	EndsAt      *time.Time
	DueAt       *time.Time
	Timezone    string
	Status      ItemStatus

	PriorityScore      *float64
	PriorityComponents map[string]float64

	Labels map[string]string
	Links  map[string]string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Territory returns the item's territory label, or "" when unset.
func (it *TimelineItem) Territory() string {
	return it.Labels[LabelTerritory]
}

// City returns the item's city label, or "" when unset.
func (it *TimelineItem) City() string {
	return it.Labels[LabelCity]
}

// EffectiveInterval returns the start/end pair used for overlap math.
// Items with no start have no interval (ok = false). When the recorded end
// is missing or not after the start, the item occupies DefaultItemDuration.
func (it *TimelineItem) EffectiveInterval() (start, end time.Time, ok bool) {
	if it.StartsAt == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *it.StartsAt
	if it.EndsAt != nil && it.EndsAt.After(start) {
		return start, *it.EndsAt, true
	}
	return start, start.Add(DefaultItemDuration), true
}

// TravelTagged reports whether the item represents travel, via its lane,
// kind, or a travel label.
func (it *TimelineItem) TravelTagged() bool {
	if strings.EqualFold(it.Lane, "TRAVEL") || strings.EqualFold(it.Kind, "travel") {
		return true
	}
	return it.Labels[LabelTravel] == "true"
}

// DefaultLaneForType returns the lane slug derived from an item type, used
// when neither an explicit lane nor an auto-assign rule applies.
func DefaultLaneForType(t ItemType) string {
	if t == "" {
		return strings.ToUpper(string(ItemOther))
	}
	return strings.ToUpper(string(t))
}
