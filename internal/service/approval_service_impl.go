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

type approvalService struct {
	approvals repository.ApprovalRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewApprovalService(approvals repository.ApprovalRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ApprovalService {
	return &approvalService{
		approvals: approvals,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *approvalService) Create(ctx context.Context, a *domain.Approval) error {
	if !domain.ValidApprovalTypes[string(a.Type)] {
		return fmt.Errorf("unknown approval type %q", a.Type)
	}
	if err := validatePayload(a); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.Status = domain.ApprovalPending
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.approvals.Create(ctx, a)
}

// validatePayload checks the type-specific required fields before anything
// is stored, so a malformed approval can never reach an applier.
func validatePayload(a *domain.Approval) error {
	switch a.Type {
	case domain.ApprovalProjectEmailLink:
		if a.ProjectID == "" {
			return fmt.Errorf("%s approval requires a project ID", a.Type)
		}
		if a.Payload.RecordID == "" {
			return fmt.Errorf("%s approval requires a record ID", a.Type)
		}
	case domain.ApprovalTimelineItemCreate, domain.ApprovalTimelineItemFromEmail:
		if a.ProjectID == "" {
			return fmt.Errorf("%s approval requires a project ID", a.Type)
		}
		if a.Payload.TimelineSeed == nil || a.Payload.TimelineSeed.Title == "" {
			return fmt.Errorf("%s approval requires a timeline seed with a title", a.Type)
		}
	case domain.ApprovalProjectTaskCreate:
		if a.ProjectID == "" {
			return fmt.Errorf("%s approval requires a project ID", a.Type)
		}
		if a.Payload.TaskSeed == nil || a.Payload.TaskSeed.Title == "" {
			return fmt.Errorf("%s approval requires a task seed with a title", a.Type)
		}
	}
	return nil
}

func (s *approvalService) GetByID(ctx context.Context, id string) (*domain.Approval, error) {
	return s.approvals.GetByID(ctx, id)
}

func (s *approvalService) ListPending(ctx context.Context, projectID string) ([]*domain.Approval, error) {
	return s.approvals.ListPending(ctx, projectID)
}

// Decide resolves a pending approval. On approve, the type-specific applier
// and the terminal status write share one transaction: if the applier fails
// the approval stays pending and nothing is written. Deciding an
// already-resolved approval is a no-op that returns the stored approval.
func (s *approvalService) Decide(ctx context.Context, approvalID string, action DecideAction, actorID, note string) (*domain.Approval, error) {
	started := time.Now()

	a, err := s.approvals.GetByID(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if a.Resolved() {
		return a, nil
	}

	now := time.Now().UTC()
	switch action {
	case DecideDecline:
		a.Status = domain.ApprovalDeclined
		a.ApproverID = actorID
		a.DeclinedAt = &now
		a.ResolutionNote = note
		a.UpdatedAt = now
		// Decline writes metadata only; no data mutation.
		if err := s.approvals.UpdateResolution(ctx, a); err != nil {
			return nil, err
		}

	case DecideApprove:
		a.Status = domain.ApprovalApproved
		a.ApproverID = actorID
		a.ApprovedAt = &now
		a.ResolutionNote = note
		a.UpdatedAt = now
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := s.apply(ctx, tx, a); err != nil {
				return err
			}
			return repository.NewSQLiteApprovalRepo(tx).UpdateResolution(ctx, a)
		})
		if err != nil {
			s.observer.ObserveUseCase(ctx, UseCaseEvent{
				Name: "approval_decide", Duration: time.Since(started),
				Success: false, Err: err, StartedAt: started,
				Fields: map[string]any{"approval_id": approvalID, "type": string(a.Type)},
			})
			return nil, fmt.Errorf("applying approval %s: %w", approvalID, err)
		}

	default:
		return nil, fmt.Errorf("unknown decision action %q", action)
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name: "approval_decide", Duration: time.Since(started),
		Success: true, StartedAt: started,
		Fields: map[string]any{
			"approval_id": approvalID,
			"type":        string(a.Type),
			"action":      string(action),
		},
	})
	return a, nil
}

// apply dispatches to the type-specific applier using tx-scoped
// repositories.
func (s *approvalService) apply(ctx context.Context, tx db.DBTX, a *domain.Approval) error {
	switch a.Type {
	case domain.ApprovalProjectEmailLink:
		return applyEmailLink(ctx, tx, a)
	case domain.ApprovalTimelineItemCreate, domain.ApprovalTimelineItemFromEmail:
		_, err := applyTimelineSeed(ctx, tx, a, a.Payload.TimelineSeed)
		return err
	case domain.ApprovalProjectTaskCreate:
		return applyTaskCreate(ctx, tx, a)
	default:
		return fmt.Errorf("no applier for approval type %q", a.Type)
	}
}

// applyEmailLink upserts the (project, record) link row, and optionally
// inserts a seeded timeline item with its dependency edges.
func applyEmailLink(ctx context.Context, tx db.DBTX, a *domain.Approval) error {
	now := time.Now().UTC()
	link := &domain.RecordLink{
		ID:         uuid.New().String(),
		ProjectID:  a.ProjectID,
		RecordID:   a.Payload.RecordID,
		Confidence: a.Payload.Confidence,
		Source:     domain.CoalesceStr(a.Payload.Source, "manual"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repository.NewSQLiteRecordLinkRepo(tx).Upsert(ctx, link); err != nil {
		return err
	}
	if a.Payload.TimelineSeed != nil {
		if _, err := applyTimelineSeed(ctx, tx, a, a.Payload.TimelineSeed); err != nil {
			return err
		}
	}
	return nil
}

// applyTimelineSeed inserts one timeline item from a seed. The lane falls
// back to the type-derived default when unspecified; the auto-assign
// resolver is not consulted here.
func applyTimelineSeed(ctx context.Context, tx db.DBTX, a *domain.Approval, seed *domain.TimelineSeed) (*domain.TimelineItem, error) {
	itemType := domain.ItemType(seed.Type)
	if !domain.ValidItemTypes[seed.Type] {
		itemType = domain.ItemOther
	}
	lane := domain.NormalizeSlug(seed.Lane)
	if lane == "" {
		lane = domain.DefaultLaneForType(itemType)
	}

	links := make(map[string]string, len(seed.Links)+1)
	for k, v := range seed.Links {
		links[k] = v
	}
	if a.Type == domain.ApprovalTimelineItemFromEmail && a.Payload.RecordID != "" {
		if _, exists := links["email"]; !exists {
			links["email"] = a.Payload.RecordID
		}
	}

	now := time.Now().UTC()
	item := &domain.TimelineItem{
		ID:          uuid.New().String(),
		ProjectID:   a.ProjectID,
		Type:        itemType,
		Lane:        lane,
		Kind:        seed.Kind,
		Title:       seed.Title,
		Description: seed.Description,
		StartsAt:    seed.StartsAt,
		EndsAt:      seed.EndsAt,
		DueAt:       seed.DueAt,
		Timezone:    seed.Timezone,
		Status:      domain.ItemPlanned,
		Labels:      seed.Labels,
		Links:       links,
		CreatedBy:   a.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repository.NewSQLiteTimelineItemRepo(tx).Create(ctx, item); err != nil {
		return nil, err
	}

	// A freshly inserted item has no incoming edges and cannot close a
	// cycle, so the seed edges insert directly.
	txDeps := repository.NewSQLiteDependencyRepo(tx)
	for _, e := range seed.Edges {
		d := &domain.Dependency{
			ID:         uuid.New().String(),
			ProjectID:  a.ProjectID,
			FromItemID: e.FromItemID,
			ToItemID:   item.ID,
			Kind:       domain.NormalizeDependencyKind(e.Kind),
			Note:       e.Note,
			CreatedAt:  now,
		}
		if err := txDeps.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seeding dependency from %s: %w", e.FromItemID, err)
		}
	}
	return item, nil
}

// applyTaskCreate inserts one project task, assigned to the requester when
// the seed names no assignee.
func applyTaskCreate(ctx context.Context, tx db.DBTX, a *domain.Approval) error {
	seed := a.Payload.TaskSeed
	now := time.Now().UTC()
	task := &domain.ProjectTask{
		ID:          uuid.New().String(),
		ProjectID:   a.ProjectID,
		Title:       seed.Title,
		Description: seed.Description,
		AssigneeID:  domain.CoalesceStr(seed.AssigneeID, a.RequestedBy),
		Status:      domain.TaskOpen,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return repository.NewSQLiteProjectTaskRepo(tx).Create(ctx, task)
}
