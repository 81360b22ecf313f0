package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

// ImportedSchedule holds the domain objects produced from a validated import
// file, ready for persistence.
type ImportedSchedule struct {
	ProjectID    string
	Lanes        []*domain.LaneDefinition
	Items        []*domain.TimelineItem
	Dependencies []domain.Dependency
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, ownerID string) (*ImportedSchedule, error) {
	now := time.Now().UTC()

	lanes := make([]*domain.LaneDefinition, 0, len(schema.Lanes))
	for _, l := range schema.Lanes {
		slug := domain.NormalizeSlug(l.Slug)
		lanes = append(lanes, &domain.LaneDefinition{
			ID:         uuid.New().String(),
			Slug:       slug,
			Name:       domain.CoalesceStr(l.Name, slug),
			Color:      l.Color,
			SortOrder:  l.SortOrder,
			AutoAssign: l.AutoAssign,
			Scope:      laneScopeFor(ownerID),
			OwnerID:    ownerID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	refMap := make(map[string]string) // ref -> UUID

	items := make([]*domain.TimelineItem, 0, len(schema.Items))
	for _, it := range schema.Items {
		realID := uuid.New().String()
		refMap[it.Ref] = realID

		// Defaults cascade: item field > file defaults > hardcoded.
		itemType := domain.CoalesceStr(it.Type, defaultType(schema.Defaults), string(domain.ItemOther))
		lane := domain.NormalizeSlug(domain.CoalesceStr(it.Lane, defaultLane(schema.Defaults)))
		tz := domain.CoalesceStr(it.Timezone, defaultTimezone(schema.Defaults))
		status := domain.CoalesceStr(it.Status, string(domain.ItemPlanned))

		items = append(items, &domain.TimelineItem{
			ID:            realID,
			ProjectID:     schema.ProjectID,
			Type:          domain.ItemType(itemType),
			Lane:          lane,
			Kind:          it.Kind,
			Title:         it.Title,
			Description:   it.Description,
			Status:        domain.ItemStatus(status),
			StartsAt:      parseOptionalTime(it.StartsAt),
			EndsAt:        parseOptionalTime(it.EndsAt),
			DueAt:         parseOptionalTime(it.DueAt),
			Timezone:      tz,
			PriorityScore: it.Priority,
			Labels:        it.Labels,
			Links:         it.Links,
			CreatedBy:     ownerID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	var deps []domain.Dependency
	for _, d := range schema.Dependencies {
		fromID, ok := refMap[d.FromRef]
		if !ok {
			return nil, fmt.Errorf("from_ref %q not found", d.FromRef)
		}
		toID, ok := refMap[d.ToRef]
		if !ok {
			return nil, fmt.Errorf("to_ref %q not found", d.ToRef)
		}
		deps = append(deps, domain.Dependency{
			ID:         uuid.New().String(),
			ProjectID:  schema.ProjectID,
			FromItemID: fromID,
			ToItemID:   toID,
			Kind:       domain.NormalizeDependencyKind(d.Kind),
			Note:       d.Note,
			CreatedAt:  now,
		})
	}

	return &ImportedSchedule{
		ProjectID:    schema.ProjectID,
		Lanes:        lanes,
		Items:        items,
		Dependencies: deps,
	}, nil
}

func laneScopeFor(ownerID string) domain.LaneScope {
	if ownerID != "" {
		return domain.LaneScopeUser
	}
	return domain.LaneScopeGlobal
}

func parseOptionalTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func defaultType(d *DefaultsImport) string {
	if d != nil {
		return d.Type
	}
	return ""
}

func defaultLane(d *DefaultsImport) string {
	if d != nil {
		return d.Lane
	}
	return ""
}

func defaultTimezone(d *DefaultsImport) string {
	if d != nil {
		return d.Timezone
	}
	return ""
}
