package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

// A one-day search window keeps the expected gaps easy to read.
var (
	rangeStart = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
)

func slotOpts(duration time.Duration, constraints ...string) SlotOptions {
	return SlotOptions{
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Duration:    duration,
		Constraints: constraints,
	}
}

func TestFindSlots_EmptyProjectYieldsFullRange(t *testing.T) {
	res := FindSlots(nil, slotOpts(2*time.Hour))

	require.Len(t, res.Slots, 1)
	assert.Equal(t, rangeStart, res.Slots[0].Start)
	assert.Equal(t, rangeEnd, res.Slots[0].End)
	assert.Equal(t, 0, res.Meta.ScannedItems)
	assert.InDelta(t, 2.0, res.Meta.RequestedDuration, 0.001)
}

func TestFindSlots_GapsAreComplementOfOccupied(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Morning show",
			testutil.WithWindow(rangeStart.Add(9*time.Hour), rangeStart.Add(11*time.Hour))),
		testutil.NewTestItem("proj-1", "Evening show",
			testutil.WithWindow(rangeStart.Add(18*time.Hour), rangeStart.Add(20*time.Hour))),
	}

	res := FindSlots(items, slotOpts(time.Hour))

	require.Len(t, res.Slots, 3)
	assert.Equal(t, Slot{Start: rangeStart, End: rangeStart.Add(9 * time.Hour)}, res.Slots[0])
	assert.Equal(t, Slot{Start: rangeStart.Add(11 * time.Hour), End: rangeStart.Add(18 * time.Hour)}, res.Slots[1])
	assert.Equal(t, Slot{Start: rangeStart.Add(20 * time.Hour), End: rangeEnd}, res.Slots[2])
	assert.Equal(t, 2, res.Meta.ScannedItems)
}

func TestFindSlots_ShortGapsDropped(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Block A",
			testutil.WithWindow(rangeStart, rangeStart.Add(10*time.Hour))),
		testutil.NewTestItem("proj-1", "Block B",
			testutil.WithWindow(rangeStart.Add(11*time.Hour), rangeEnd)),
	}

	// The only gap is one hour; a three hour request finds nothing.
	res := FindSlots(items, slotOpts(3*time.Hour))
	assert.Empty(t, res.Slots)
}

func TestFindSlots_OverlappingItemsMergeIntoOneBlock(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Soundcheck",
			testutil.WithWindow(rangeStart.Add(8*time.Hour), rangeStart.Add(12*time.Hour))),
		testutil.NewTestItem("proj-1", "Press line",
			testutil.WithWindow(rangeStart.Add(10*time.Hour), rangeStart.Add(14*time.Hour))),
	}

	res := FindSlots(items, slotOpts(time.Hour))

	require.Len(t, res.Slots, 2)
	assert.Equal(t, rangeStart.Add(8*time.Hour), res.Slots[0].End)
	assert.Equal(t, rangeStart.Add(14*time.Hour), res.Slots[1].Start)
}

func TestFindSlots_MaxResultsTruncates(t *testing.T) {
	var items []*domain.TimelineItem
	for i := 0; i < 10; i++ {
		start := rangeStart.Add(time.Duration(2*i+1) * time.Hour)
		items = append(items, testutil.NewTestItem("proj-1", "Busy",
			testutil.WithWindow(start, start.Add(time.Hour))))
	}

	res := FindSlots(items, slotOpts(30*time.Minute))
	assert.Len(t, res.Slots, DefaultMaxResults)

	opts := slotOpts(30 * time.Minute)
	opts.MaxResults = 2
	assert.Len(t, FindSlots(items, opts).Slots, 2)
}

func TestFindSlots_CityAndTerritoryScoping(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Berlin show",
			testutil.WithCity("Berlin"),
			testutil.WithTerritory("DE"),
			testutil.WithWindow(rangeStart.Add(9*time.Hour), rangeStart.Add(11*time.Hour))),
		testutil.NewTestItem("proj-1", "Paris show",
			testutil.WithCity("Paris"),
			testutil.WithTerritory("FR"),
			testutil.WithWindow(rangeStart.Add(14*time.Hour), rangeStart.Add(16*time.Hour))),
	}

	opts := slotOpts(time.Hour)
	opts.City = "Berlin"
	res := FindSlots(items, opts)

	// Only the Berlin item occupies the range.
	assert.Equal(t, 1, res.Meta.ScannedItems)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, rangeStart.Add(9*time.Hour), res.Slots[0].End)

	opts = slotOpts(time.Hour)
	opts.Territory = "FR"
	res = FindSlots(items, opts)
	assert.Equal(t, 1, res.Meta.ScannedItems)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, rangeStart.Add(14*time.Hour), res.Slots[0].End)
}

func TestFindSlots_ItemsStartingOutsideRangeIgnored(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Last week",
			testutil.WithWindow(rangeStart.Add(-24*time.Hour), rangeStart.Add(-22*time.Hour))),
		testutil.NewTestItem("proj-1", "Next week",
			testutil.WithWindow(rangeEnd.Add(24*time.Hour), rangeEnd.Add(26*time.Hour))),
	}

	res := FindSlots(items, slotOpts(time.Hour))
	assert.Equal(t, 0, res.Meta.ScannedItems)
	require.Len(t, res.Slots, 1)
}

func TestFindSlots_NoTravelAdjacencyDropsBoundaryGaps(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Flight to Berlin",
			testutil.WithLane("TRAVEL"),
			testutil.WithWindow(rangeStart.Add(6*time.Hour), rangeStart.Add(9*time.Hour))),
		testutil.NewTestItem("proj-1", "Evening show",
			testutil.WithLane("SHOWS"),
			testutil.WithWindow(rangeStart.Add(18*time.Hour), rangeStart.Add(20*time.Hour))),
	}

	plain := FindSlots(items, slotOpts(time.Hour))
	require.Len(t, plain.Slots, 3)

	res := FindSlots(items, slotOpts(time.Hour, ConstraintNotOverlappingTravel))

	// Both gaps touching the flight disappear; the post-show gap survives.
	require.Len(t, res.Slots, 1)
	assert.Equal(t, rangeStart.Add(20*time.Hour), res.Slots[0].Start)
}

func TestFindSlots_AvoidTimezoneJumps(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "London taping",
			testutil.WithTimezone("Europe/London"),
			testutil.WithWindow(rangeStart.Add(8*time.Hour), rangeStart.Add(10*time.Hour))),
		testutil.NewTestItem("proj-1", "Berlin taping",
			testutil.WithTimezone("Europe/Berlin"),
			testutil.WithWindow(rangeStart.Add(14*time.Hour), rangeStart.Add(16*time.Hour))),
	}

	res := FindSlots(items, slotOpts(time.Hour, ConstraintAvoidTimezoneJumps))

	// The gap between the two tapings spans a zone change and is dropped.
	require.Len(t, res.Slots, 2)
	assert.Equal(t, rangeStart.Add(8*time.Hour), res.Slots[0].End)
	assert.Equal(t, rangeStart.Add(16*time.Hour), res.Slots[1].Start)
}

func TestFindSlots_SameTimezoneGapKept(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Berlin taping",
			testutil.WithTimezone("Europe/Berlin"),
			testutil.WithWindow(rangeStart.Add(8*time.Hour), rangeStart.Add(10*time.Hour))),
		testutil.NewTestItem("proj-1", "Berlin signing",
			testutil.WithTimezone("Europe/Berlin"),
			testutil.WithWindow(rangeStart.Add(14*time.Hour), rangeStart.Add(16*time.Hour))),
	}

	res := FindSlots(items, slotOpts(time.Hour, ConstraintAvoidTimezoneJumps))
	require.Len(t, res.Slots, 3)
}

func TestFindSlots_PreferBusinessHoursClipsAndReorders(t *testing.T) {
	items := []*domain.TimelineItem{
		testutil.NewTestItem("proj-1", "Midday block",
			testutil.WithWindow(rangeStart.Add(11*time.Hour), rangeStart.Add(15*time.Hour))),
	}

	res := FindSlots(items, slotOpts(2*time.Hour, ConstraintPreferBusinessHours))

	require.NotEmpty(t, res.Slots)
	first := res.Slots[0]
	// The leading gap is clipped to the 09:00 business open.
	assert.Equal(t, rangeStart.Add(9*time.Hour), first.Start)
	assert.Equal(t, rangeStart.Add(11*time.Hour), first.End)
	for _, s := range res.Slots[:2] {
		assert.True(t, s.Start.Hour() >= DefaultBusinessHoursStart)
		assert.True(t, s.End.Hour() <= DefaultBusinessHoursEnd)
	}
}
