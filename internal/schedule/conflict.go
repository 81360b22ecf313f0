package schedule

import (
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// DefaultTerritoryBufferHours is the minimum spacing between same-territory
// engagements when the caller does not supply a buffer.
const DefaultTerritoryBufferHours = 4.0

// Conflict kinds, part of the synthetic conflict ID.
const (
	conflictKindLaneOverlap     = "lane_overlap"
	conflictKindTerritoryBuffer = "territory_buffer"
)

// Conflict is a derived finding between two timeline items. Conflicts are
// recomputed on every detection run and never stored.
type Conflict struct {
	ID       string                  `json:"id"`
	ItemIDs  [2]string               `json:"itemIds"`
	Severity domain.ConflictSeverity `json:"severity"`
	Message  string                  `json:"message"`
}

// DetectConflicts compares every unordered pair of items and reports lane
// overlaps (warning) and territory buffer violations (error). The scan is
// O(n²) over the snapshot, which is fine at per-project item counts.
//
// A pair may produce both conflict kinds: the territory rule fires on start
// proximity alone, without requiring an interval overlap.
func DetectConflicts(items []*domain.TimelineItem, territoryBufferHours float64) []Conflict {
	if territoryBufferHours <= 0 {
		territoryBufferHours = DefaultTerritoryBufferHours
	}
	buffer := time.Duration(territoryBufferHours * float64(time.Hour))

	var conflicts []Conflict
	for i := 0; i < len(items); i++ {
		a := items[i]
		aStart, aEnd, ok := a.EffectiveInterval()
		if !ok {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			b := items[j]
			bStart, bEnd, ok := b.EffectiveInterval()
			if !ok {
				continue
			}

			if a.Lane != "" && a.Lane == b.Lane && aEnd.After(bStart) && bEnd.After(aStart) {
				conflicts = append(conflicts, newConflict(a, b, conflictKindLaneOverlap,
					domain.SeverityWarning,
					fmt.Sprintf("%q and %q overlap in lane %s", a.Title, b.Title, a.Lane)))
			}

			if t := a.Territory(); t != "" && t == b.Territory() {
				gap := aStart.Sub(bStart)
				if gap < 0 {
					gap = -gap
				}
				// Exclusive boundary: items exactly buffer apart are fine.
				if gap < buffer {
					conflicts = append(conflicts, newConflict(a, b, conflictKindTerritoryBuffer,
						domain.SeverityError,
						fmt.Sprintf("%q and %q start %.1fh apart in territory %s (need %.0fh buffer)",
							a.Title, b.Title, gap.Hours(), t, buffer.Hours())))
				}
			}
		}
	}
	return conflicts
}

// ConflictingItemIDs returns the set of item IDs involved in any conflict,
// used downstream as a highlighting signal.
func ConflictingItemIDs(conflicts []Conflict) map[string]bool {
	ids := make(map[string]bool, len(conflicts)*2)
	for _, c := range conflicts {
		ids[c.ItemIDs[0]] = true
		ids[c.ItemIDs[1]] = true
	}
	return ids
}

// newConflict builds a conflict with an ID deterministic in the two item IDs
// and the kind, independent of input order.
func newConflict(a, b *domain.TimelineItem, kind string, severity domain.ConflictSeverity, message string) Conflict {
	lo, hi := a.ID, b.ID
	if hi < lo {
		lo, hi = hi, lo
	}
	return Conflict{
		ID:       lo + "~" + hi + "~" + kind,
		ItemIDs:  [2]string{a.ID, b.ID},
		Severity: severity,
		Message:  message,
	}
}
