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

type laneService struct {
	lanes    repository.LaneRepo
	items    repository.TimelineItemRepo
	observer UseCaseObserver
}

func NewLaneService(lanes repository.LaneRepo, items repository.TimelineItemRepo, observers ...UseCaseObserver) LaneService {
	return &laneService{
		lanes:    lanes,
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *laneService) Create(ctx context.Context, l *domain.LaneDefinition) error {
	l.Slug = domain.NormalizeSlug(l.Slug)
	if err := l.ValidateSlug(); err != nil {
		return err
	}
	if l.Name == "" {
		l.Name = l.Slug
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Scope == "" {
		if l.OwnerID != "" {
			l.Scope = domain.LaneScopeUser
		} else {
			l.Scope = domain.LaneScopeGlobal
		}
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	return s.lanes.Create(ctx, l)
}

func (s *laneService) GetBySlug(ctx context.Context, slug, ownerID string) (*domain.LaneDefinition, error) {
	return s.lanes.GetBySlug(ctx, domain.NormalizeSlug(slug), ownerID)
}

func (s *laneService) List(ctx context.Context, ownerID string) ([]*domain.LaneDefinition, error) {
	return s.lanes.ListVisible(ctx, ownerID)
}

func (s *laneService) Update(ctx context.Context, l *domain.LaneDefinition) error {
	l.Slug = domain.NormalizeSlug(l.Slug)
	if err := l.ValidateSlug(); err != nil {
		return err
	}
	l.UpdatedAt = time.Now().UTC()
	return s.lanes.Update(ctx, l)
}

// Delete removes a lane. Deletion is blocked while any timeline item still
// references the lane's slug.
func (s *laneService) Delete(ctx context.Context, id string) error {
	lane, err := s.lanes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.items.CountByLane(ctx, lane.Slug)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("lane %s is still referenced by %d item(s)", lane.Slug, count)
	}
	return s.lanes.Delete(ctx, id)
}

// ReapplyRules re-resolves the lane of every project item that is currently
// unassigned or assigned to laneSlug. Single-item write failures are counted
// as skips; the batch never aborts, so a partial run leaves already-updated
// items correctly resolved.
func (s *laneService) ReapplyRules(ctx context.Context, projectID, laneSlug, ownerID string) (*ReapplyReport, error) {
	started := time.Now()
	laneSlug = domain.NormalizeSlug(laneSlug)

	lanes, err := s.lanes.ListVisible(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	report := &ReapplyReport{}
	for _, it := range items {
		if it.Lane != "" && it.Lane != laneSlug {
			continue
		}
		resolved := rules.ResolveLane(lanes, rules.LaneContext{
			Type:        it.Type,
			Kind:        it.Kind,
			Title:       it.Title,
			Description: it.Description,
			Status:      it.Status,
			Priority:    it.PriorityScore,
			Labels:      it.Labels,
		})
		target := domain.DefaultLaneForType(it.Type)
		if resolved != nil {
			target = resolved.Slug
		}
		if target == it.Lane {
			report.Unchanged++
			continue
		}
		it.Lane = target
		it.UpdatedAt = time.Now().UTC()
		if err := s.items.Update(ctx, it); err != nil {
			report.Skipped++
			continue
		}
		report.Updated++
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "lane_reapply",
		Duration:  time.Since(started),
		Success:   true,
		StartedAt: started,
		Fields: map[string]any{
			"project_id": projectID,
			"updated":    report.Updated,
			"unchanged":  report.Unchanged,
			"skipped":    report.Skipped,
		},
	})
	return report, nil
}
