package schedule

import (
	"sort"
	"time"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// Slot finding constraints.
const (
	ConstraintNotOverlappingTravel = "not_overlapping_travel"
	ConstraintAvoidTimezoneJumps   = "avoid_timezone_jumps"
	ConstraintPreferBusinessHours  = "prefer_business_hours"
)

// Defaults applied when SlotOptions leave them zero.
const (
	DefaultMaxResults         = 5
	DefaultBusinessHoursStart = 9
	DefaultBusinessHoursEnd   = 18
)

// SlotOptions describes a slot search over a project's items.
type SlotOptions struct {
	RangeStart time.Time
	RangeEnd   time.Time
	Duration   time.Duration

	// City/Territory restrict the scanned items to those carrying a
	// matching label.
	City      string
	Territory string

	Constraints []string
	MaxResults  int

	// Business-hours window used by prefer_business_hours, in local hours.
	BusinessHoursStart int
	BusinessHoursEnd   int
}

// Slot is an open interval large enough for the requested duration.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotMeta reports what the search scanned.
type SlotMeta struct {
	ScannedItems      int       `json:"scannedItems"`
	RequestedDuration float64   `json:"requestedDurationHours"`
	RangeStart        time.Time `json:"rangeStart"`
	RangeEnd          time.Time `json:"rangeEnd"`
}

// SlotResult carries slots plus scan metadata.
type SlotResult struct {
	Slots []Slot   `json:"slots"`
	Meta  SlotMeta `json:"meta"`
}

// interval is an occupied span with the item attributes that adjacency
// constraints look at.
type interval struct {
	start, end time.Time
	travel     bool
	timezone   string
}

// FindSlots computes the complement of the occupied intervals within the
// requested range and returns every maximal free gap at least Duration long,
// chronologically, truncated to MaxResults. No sufficiently large gap is not
// an error: the result just carries zero slots.
func FindSlots(items []*domain.TimelineItem, opts SlotOptions) SlotResult {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.BusinessHoursStart == 0 && opts.BusinessHoursEnd == 0 {
		opts.BusinessHoursStart = DefaultBusinessHoursStart
		opts.BusinessHoursEnd = DefaultBusinessHoursEnd
	}

	occupied, scanned := occupiedIntervals(items, opts)
	gaps := freeGaps(occupied, opts.RangeStart, opts.RangeEnd)

	if hasConstraint(opts.Constraints, ConstraintNotOverlappingTravel) {
		gaps = dropAdjacent(gaps, occupied, func(iv interval) bool { return iv.travel })
	}
	if hasConstraint(opts.Constraints, ConstraintAvoidTimezoneJumps) {
		gaps = dropTimezoneJumps(gaps, occupied)
	}

	var candidates []Slot
	for _, g := range gaps {
		if g.End.Sub(g.Start) >= opts.Duration {
			candidates = append(candidates, g)
		}
	}

	if hasConstraint(opts.Constraints, ConstraintPreferBusinessHours) {
		candidates = preferBusinessHours(candidates, opts)
	}

	if len(candidates) > opts.MaxResults {
		candidates = candidates[:opts.MaxResults]
	}

	return SlotResult{
		Slots: candidates,
		Meta: SlotMeta{
			ScannedItems:      scanned,
			RequestedDuration: opts.Duration.Hours(),
			RangeStart:        opts.RangeStart,
			RangeEnd:          opts.RangeEnd,
		},
	}
}

// occupiedIntervals derives the effective intervals of the items whose start
// falls inside the range, applying city/territory scoping.
func occupiedIntervals(items []*domain.TimelineItem, opts SlotOptions) ([]interval, int) {
	var occupied []interval
	scanned := 0
	for _, it := range items {
		start, end, ok := it.EffectiveInterval()
		if !ok {
			continue
		}
		if start.Before(opts.RangeStart) || !start.Before(opts.RangeEnd) {
			continue
		}
		if opts.City != "" && it.City() != opts.City {
			continue
		}
		if opts.Territory != "" && it.Territory() != opts.Territory {
			continue
		}
		scanned++
		occupied = append(occupied, interval{
			start:    start,
			end:      end,
			travel:   it.TravelTagged(),
			timezone: it.Timezone,
		})
	}
	sort.Slice(occupied, func(i, j int) bool { return occupied[i].start.Before(occupied[j].start) })
	return occupied, scanned
}

// freeGaps returns the maximal free gaps between the occupied intervals,
// clipped to [rangeStart, rangeEnd].
func freeGaps(occupied []interval, rangeStart, rangeEnd time.Time) []Slot {
	var gaps []Slot
	cursor := rangeStart
	for _, iv := range occupied {
		if iv.start.After(cursor) {
			end := iv.start
			if end.After(rangeEnd) {
				end = rangeEnd
			}
			if end.After(cursor) {
				gaps = append(gaps, Slot{Start: cursor, End: end})
			}
		}
		if iv.end.After(cursor) {
			cursor = iv.end
		}
		if !cursor.Before(rangeEnd) {
			return gaps
		}
	}
	if rangeEnd.After(cursor) {
		gaps = append(gaps, Slot{Start: cursor, End: rangeEnd})
	}
	return gaps
}

// dropAdjacent removes gaps that share a boundary with an interval matching
// the predicate.
func dropAdjacent(gaps []Slot, occupied []interval, match func(interval) bool) []Slot {
	var kept []Slot
	for _, g := range gaps {
		adjacent := false
		for _, iv := range occupied {
			if !match(iv) {
				continue
			}
			if iv.end.Equal(g.Start) || iv.start.Equal(g.End) {
				adjacent = true
				break
			}
		}
		if !adjacent {
			kept = append(kept, g)
		}
	}
	return kept
}

// dropTimezoneJumps removes gaps whose bounding items sit in different
// non-empty timezones, since filling such a gap forces a zone change.
func dropTimezoneJumps(gaps []Slot, occupied []interval) []Slot {
	var kept []Slot
	for _, g := range gaps {
		var before, after string
		for _, iv := range occupied {
			if iv.end.Equal(g.Start) {
				before = iv.timezone
			}
			if iv.start.Equal(g.End) {
				after = iv.timezone
			}
		}
		if before != "" && after != "" && before != after {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

// preferBusinessHours reorders candidates so sub-slots inside the local
// business window come first; gaps with no business-hours room keep their
// chronological order afterwards as a fallback.
func preferBusinessHours(candidates []Slot, opts SlotOptions) []Slot {
	var business, fallback []Slot
	for _, g := range candidates {
		sub, ok := clipToBusinessHours(g, opts)
		if ok {
			business = append(business, sub...)
		} else {
			fallback = append(fallback, g)
		}
	}
	return append(business, fallback...)
}

// clipToBusinessHours intersects a gap with each day's business window and
// returns the sub-slots still long enough for the requested duration.
func clipToBusinessHours(g Slot, opts SlotOptions) ([]Slot, bool) {
	var subs []Slot
	loc := g.Start.Location()
	day := time.Date(g.Start.Year(), g.Start.Month(), g.Start.Day(), 0, 0, 0, 0, loc)
	for day.Before(g.End) {
		winStart := day.Add(time.Duration(opts.BusinessHoursStart) * time.Hour)
		winEnd := day.Add(time.Duration(opts.BusinessHoursEnd) * time.Hour)
		start, end := winStart, winEnd
		if start.Before(g.Start) {
			start = g.Start
		}
		if end.After(g.End) {
			end = g.End
		}
		if end.Sub(start) >= opts.Duration {
			subs = append(subs, Slot{Start: start, End: end})
		}
		day = day.AddDate(0, 0, 1)
	}
	return subs, len(subs) > 0
}

func hasConstraint(constraints []string, name string) bool {
	for _, c := range constraints {
		if c == name {
			return true
		}
	}
	return false
}
