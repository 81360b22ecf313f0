package service

import (
	"context"
	"time"

	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/schedule"
)

type scheduleService struct {
	items    repository.TimelineItemRepo
	observer UseCaseObserver
}

func NewScheduleService(items repository.TimelineItemRepo, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Conflicts loads the project timeline and runs the pairwise conflict scan.
// A non-positive buffer falls back to the default territory buffer.
func (s *scheduleService) Conflicts(ctx context.Context, projectID string, territoryBufferHours float64) ([]schedule.Conflict, error) {
	started := time.Now()

	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	conflicts := schedule.DetectConflicts(items, territoryBufferHours)

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "conflict_scan",
		Duration:  time.Since(started),
		Success:   true,
		StartedAt: started,
		Fields: map[string]any{
			"project_id": projectID,
			"items":      len(items),
			"conflicts":  len(conflicts),
		},
	})
	return conflicts, nil
}

func (s *scheduleService) FindSlots(ctx context.Context, projectID string, opts schedule.SlotOptions) (schedule.SlotResult, error) {
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return schedule.SlotResult{}, err
	}
	return schedule.FindSlots(items, opts), nil
}
