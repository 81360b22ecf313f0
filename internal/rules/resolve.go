package rules

import (
	"sort"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// LaneContext carries the candidate item attributes the lane resolver
// matches against.
type LaneContext struct {
	Type        domain.ItemType
	Kind        string
	Title       string
	Description string
	Status      domain.ItemStatus
	Priority    *float64
	Labels      map[string]string
}

// ItemFields builds the field view for lane auto-assignment.
func ItemFields(ctx LaneContext) FieldView {
	f := FieldView{
		Text: map[string]string{
			"type":        string(ctx.Type),
			"kind":        ctx.Kind,
			"title":       ctx.Title,
			"description": ctx.Description,
			"status":      string(ctx.Status),
		},
		Numbers: map[string]float64{},
		Flags:   map[string]bool{},
		Labels:  ctx.Labels,
	}
	if ctx.Priority != nil {
		f.Numbers["priority"] = *ctx.Priority
	}
	return f
}

// ResolveLane evaluates lanes in ascending sort order and returns the first
// whose auto-assign predicate matches the candidate, or nil when none match.
// Lanes without auto-assign rules never match; the caller falls back to the
// type-derived default lane.
func ResolveLane(lanes []*domain.LaneDefinition, ctx LaneContext) *domain.LaneDefinition {
	ordered := make([]*domain.LaneDefinition, len(lanes))
	copy(ordered, lanes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	fields := ItemFields(ctx)
	for _, lane := range ordered {
		if lane.AutoAssign == nil {
			continue
		}
		if matched, _ := EvaluateSet(lane.AutoAssign, fields); matched {
			return lane
		}
	}
	return nil
}
