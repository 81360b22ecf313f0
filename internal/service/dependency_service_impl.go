package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
)

type dependencyService struct {
	deps  repository.DependencyRepo
	items repository.TimelineItemRepo
	uow   db.UnitOfWork
}

func NewDependencyService(deps repository.DependencyRepo, items repository.TimelineItemRepo, uow db.UnitOfWork) DependencyService {
	return &dependencyService{deps: deps, items: items, uow: uow}
}

// SetDependencies replaces all incoming edges for toItemID with the given
// set. Both endpoints must belong to projectID, and the replacement must not
// close a cycle in the project's precedence graph. Unrecognized edge kinds
// default to FS.
func (s *dependencyService) SetDependencies(ctx context.Context, projectID, toItemID string, edges []domain.DependencyEdge) error {
	target, err := s.items.GetByID(ctx, toItemID)
	if err != nil {
		return err
	}
	if target.ProjectID != projectID {
		return fmt.Errorf("item %s does not belong to project %s", toItemID, projectID)
	}

	for _, e := range edges {
		if e.FromItemID == toItemID {
			return fmt.Errorf("item %s cannot depend on itself", toItemID)
		}
		from, err := s.items.GetByID(ctx, e.FromItemID)
		if err != nil {
			return fmt.Errorf("dependency source %s: %w", e.FromItemID, err)
		}
		if from.ProjectID != projectID {
			return fmt.Errorf("items %s and %s belong to different projects", e.FromItemID, toItemID)
		}
	}

	existing, err := s.deps.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if cycle := wouldCycle(existing, toItemID, edges); cycle {
		return fmt.Errorf("dependency edges for item %s would close a cycle", toItemID)
	}

	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		if err := txDeps.DeleteIncoming(ctx, toItemID); err != nil {
			return err
		}
		for _, e := range edges {
			d := &domain.Dependency{
				ID:         uuid.New().String(),
				ProjectID:  projectID,
				FromItemID: e.FromItemID,
				ToItemID:   toItemID,
				Kind:       domain.NormalizeDependencyKind(e.Kind),
				Note:       e.Note,
				CreatedAt:  now,
			}
			if err := txDeps.Create(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *dependencyService) ListIncoming(ctx context.Context, toItemID string) ([]domain.Dependency, error) {
	return s.deps.ListIncoming(ctx, toItemID)
}

func (s *dependencyService) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	return s.deps.ListByProject(ctx, projectID)
}

// wouldCycle applies the replacement to the project's edge set in memory and
// runs a DFS coloring cycle check over the result.
func wouldCycle(existing []domain.Dependency, toItemID string, edges []domain.DependencyEdge) bool {
	adjacency := make(map[string][]string)
	for _, d := range existing {
		if d.ToItemID == toItemID {
			continue // replaced below
		}
		adjacency[d.FromItemID] = append(adjacency[d.FromItemID], d.ToItemID)
	}
	for _, e := range edges {
		adjacency[e.FromItemID] = append(adjacency[e.FromItemID], toItemID)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range adjacency[node] {
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range adjacency {
		if color[node] == white && visit(node) {
			return true
		}
	}
	return false
}
