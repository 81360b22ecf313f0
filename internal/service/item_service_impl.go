package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/rules"
)

type timelineItemService struct {
	items repository.TimelineItemRepo
	lanes repository.LaneRepo
}

func NewTimelineItemService(items repository.TimelineItemRepo, lanes repository.LaneRepo) TimelineItemService {
	return &timelineItemService{items: items, lanes: lanes}
}

func (s *timelineItemService) Create(ctx context.Context, it *domain.TimelineItem) error {
	if it.ProjectID == "" {
		return fmt.Errorf("project ID is required")
	}
	if it.Title == "" {
		return fmt.Errorf("item title is required")
	}
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Type == "" {
		it.Type = domain.ItemOther
	}
	if !domain.ValidItemTypes[string(it.Type)] {
		return fmt.Errorf("invalid item type %q", it.Type)
	}
	if it.Status == "" {
		it.Status = domain.ItemPlanned
	}
	it.Lane = s.assignLane(ctx, it)
	return s.items.Create(ctx, it)
}

// assignLane applies the lane precedence: an explicit lane always wins, then
// a lane label override, then the auto-assign resolver, then the
// type-derived default.
func (s *timelineItemService) assignLane(ctx context.Context, it *domain.TimelineItem) string {
	if it.Lane != "" {
		return domain.NormalizeSlug(it.Lane)
	}
	if override := it.Labels[domain.LabelLane]; override != "" {
		return domain.NormalizeSlug(override)
	}
	if lanes, err := s.lanes.ListVisible(ctx, it.CreatedBy); err == nil {
		resolved := rules.ResolveLane(lanes, rules.LaneContext{
			Type:        it.Type,
			Kind:        it.Kind,
			Title:       it.Title,
			Description: it.Description,
			Status:      it.Status,
			Priority:    it.PriorityScore,
			Labels:      it.Labels,
		})
		if resolved != nil {
			return resolved.Slug
		}
	}
	return domain.DefaultLaneForType(it.Type)
}

func (s *timelineItemService) GetByID(ctx context.Context, id string) (*domain.TimelineItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *timelineItemService) ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineItem, error) {
	return s.items.ListByProject(ctx, projectID)
}

func (s *timelineItemService) Update(ctx context.Context, it *domain.TimelineItem) error {
	if it.Lane != "" {
		it.Lane = domain.NormalizeSlug(it.Lane)
	}
	it.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, it)
}

// Delete removes the item; dependency edges referencing it cascade at the
// store level.
func (s *timelineItemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
