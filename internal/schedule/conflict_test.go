package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/testutil"
)

var scanBase = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestDetectConflicts_LaneOverlapWarning(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Radio interview",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Podcast taping",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase.Add(time.Hour), scanBase.Add(3*time.Hour)))

	conflicts := DetectConflicts([]*domain.TimelineItem{a, b}, 0)

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
	assert.Equal(t, [2]string{a.ID, b.ID}, conflicts[0].ItemIDs)
	assert.Contains(t, conflicts[0].Message, "PROMO")
}

func TestDetectConflicts_DifferentLanesDoNotCollide(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Radio interview",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Flight to Berlin",
		testutil.WithLane("TRAVEL"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))

	assert.Empty(t, DetectConflicts([]*domain.TimelineItem{a, b}, 0))
}

func TestDetectConflicts_EmptyLaneNeverOverlaps(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Unlaned A",
		testutil.WithLane(""),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Unlaned B",
		testutil.WithLane(""),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))

	assert.Empty(t, DetectConflicts([]*domain.TimelineItem{a, b}, 0))
}

func TestDetectConflicts_TouchingWindowsDoNotOverlap(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Morning slot",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Afternoon slot",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase.Add(2*time.Hour), scanBase.Add(4*time.Hour)))

	assert.Empty(t, DetectConflicts([]*domain.TimelineItem{a, b}, 0))
}

func TestDetectConflicts_TerritoryBufferError(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Berlin show",
		testutil.WithLane("SHOWS"),
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase, scanBase.Add(time.Hour)))
	b := testutil.NewTestItem("proj-1", "Hamburg show",
		testutil.WithLane("PRESS"),
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase.Add(3*time.Hour), scanBase.Add(4*time.Hour)))

	conflicts := DetectConflicts([]*domain.TimelineItem{a, b}, 4)

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Message, "DE")
}

func TestDetectConflicts_TerritoryBufferBoundaryIsExclusive(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Berlin show",
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase, scanBase.Add(time.Hour)))
	b := testutil.NewTestItem("proj-1", "Hamburg show",
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase.Add(4*time.Hour), scanBase.Add(5*time.Hour)))

	// Starts exactly 4h apart: allowed under a 4h buffer.
	assert.Empty(t, DetectConflicts([]*domain.TimelineItem{a, b}, 4))
}

func TestDetectConflicts_TerritoryRuleFiresWithoutOverlap(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Paris signing",
		testutil.WithLane("PROMO"),
		testutil.WithTerritory("FR"),
		testutil.WithWindow(scanBase, scanBase.Add(time.Hour)))
	b := testutil.NewTestItem("proj-1", "Lyon signing",
		testutil.WithLane("SHOWS"),
		testutil.WithTerritory("FR"),
		testutil.WithWindow(scanBase.Add(2*time.Hour), scanBase.Add(3*time.Hour)))

	conflicts := DetectConflicts([]*domain.TimelineItem{a, b}, 4)

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)
}

func TestDetectConflicts_PairCanProduceBothKinds(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Berlin show",
		testutil.WithLane("SHOWS"),
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase, scanBase.Add(3*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Hamburg show",
		testutil.WithLane("SHOWS"),
		testutil.WithTerritory("DE"),
		testutil.WithWindow(scanBase.Add(2*time.Hour), scanBase.Add(5*time.Hour)))

	conflicts := DetectConflicts([]*domain.TimelineItem{a, b}, 4)

	require.Len(t, conflicts, 2)
	severities := map[domain.ConflictSeverity]bool{}
	for _, c := range conflicts {
		severities[c.Severity] = true
	}
	assert.True(t, severities[domain.SeverityWarning])
	assert.True(t, severities[domain.SeverityError])
}

func TestDetectConflicts_DefaultDurationForEndlessItems(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Open-ended call",
		testutil.WithLane("PROMO"),
		testutil.WithStart(scanBase))
	b := testutil.NewTestItem("proj-1", "Follow-up call",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase.Add(90*time.Minute), scanBase.Add(3*time.Hour)))

	// The open-ended item occupies the default two hours, overlapping b.
	conflicts := DetectConflicts([]*domain.TimelineItem{a, b}, 0)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
}

func TestDetectConflicts_ItemsWithoutStartAreSkipped(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "Unscheduled task",
		testutil.WithLane("PROMO"))
	b := testutil.NewTestItem("proj-1", "Radio interview",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))

	assert.Empty(t, DetectConflicts([]*domain.TimelineItem{a, b}, 0))
}

func TestDetectConflicts_DeterministicIDIgnoresOrder(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "First",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Second",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase.Add(time.Hour), scanBase.Add(3*time.Hour)))

	forward := DetectConflicts([]*domain.TimelineItem{a, b}, 0)
	reverse := DetectConflicts([]*domain.TimelineItem{b, a}, 0)

	require.Len(t, forward, 1)
	require.Len(t, reverse, 1)
	assert.Equal(t, forward[0].ID, reverse[0].ID)
}

func TestConflictingItemIDs(t *testing.T) {
	a := testutil.NewTestItem("proj-1", "First",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase, scanBase.Add(2*time.Hour)))
	b := testutil.NewTestItem("proj-1", "Second",
		testutil.WithLane("PROMO"),
		testutil.WithWindow(scanBase.Add(time.Hour), scanBase.Add(3*time.Hour)))
	c := testutil.NewTestItem("proj-1", "Elsewhere",
		testutil.WithLane("TRAVEL"),
		testutil.WithWindow(scanBase, scanBase.Add(time.Hour)))

	ids := ConflictingItemIDs(DetectConflicts([]*domain.TimelineItem{a, b, c}, 0))

	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])
	assert.False(t, ids[c.ID])
}
