package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/showrunnerhq/showrunner/internal/db"
	"github.com/showrunnerhq/showrunner/internal/importer"
	"github.com/showrunnerhq/showrunner/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path, ownerID string) (*ImportReport, error) {
	started := time.Now()

	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid import file:\n  %s", strings.Join(msgs, "\n  "))
	}
	sched, err := importer.Convert(schema, ownerID)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLanes := repository.NewSQLiteLaneRepo(tx)
		txItems := repository.NewSQLiteTimelineItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		for _, lane := range sched.Lanes {
			_, err := txLanes.GetBySlug(ctx, lane.Slug, ownerID)
			if err == nil {
				report.LanesReused++
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err := txLanes.Create(ctx, lane); err != nil {
				return err
			}
			report.LanesCreated++
		}

		for _, it := range sched.Items {
			if err := txItems.Create(ctx, it); err != nil {
				return err
			}
			report.Items++
		}
		for _, d := range sched.Dependencies {
			dep := d
			if err := txDeps.Create(ctx, &dep); err != nil {
				return err
			}
			report.Dependencies++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "schedule_import",
		Duration:  time.Since(started),
		Success:   true,
		StartedAt: started,
		Fields: map[string]any{
			"project_id":    sched.ProjectID,
			"lanes_created": report.LanesCreated,
			"items":         report.Items,
			"dependencies":  report.Dependencies,
		},
	})
	return report, nil
}
