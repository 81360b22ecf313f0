package repository

import (
	"context"
	"errors"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// ErrNotFound is returned (wrapped) when a row lookup matches nothing.
var ErrNotFound = errors.New("not found")

type TimelineItemRepo interface {
	Create(ctx context.Context, it *domain.TimelineItem) error
	GetByID(ctx context.Context, id string) (*domain.TimelineItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineItem, error)
	CountByLane(ctx context.Context, laneSlug string) (int, error)
	Update(ctx context.Context, it *domain.TimelineItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	DeleteIncoming(ctx context.Context, toItemID string) error
	ListIncoming(ctx context.Context, toItemID string) ([]domain.Dependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
}

type LaneRepo interface {
	Create(ctx context.Context, l *domain.LaneDefinition) error
	GetByID(ctx context.Context, id string) (*domain.LaneDefinition, error)
	GetBySlug(ctx context.Context, slug, ownerID string) (*domain.LaneDefinition, error)
	ListVisible(ctx context.Context, ownerID string) ([]*domain.LaneDefinition, error)
	Update(ctx context.Context, l *domain.LaneDefinition) error
	Delete(ctx context.Context, id string) error
}

type ApprovalRepo interface {
	Create(ctx context.Context, a *domain.Approval) error
	GetByID(ctx context.Context, id string) (*domain.Approval, error)
	ListPending(ctx context.Context, projectID string) ([]*domain.Approval, error)
	UpdateResolution(ctx context.Context, a *domain.Approval) error
}

type AssignmentRuleRepo interface {
	Create(ctx context.Context, r *domain.AssignmentRule) error
	GetByID(ctx context.Context, id string) (*domain.AssignmentRule, error)
	ListByOwner(ctx context.Context, ownerID string, enabledOnly bool) ([]*domain.AssignmentRule, error)
	Update(ctx context.Context, r *domain.AssignmentRule) error
	Delete(ctx context.Context, id string) error
}

type RecordLinkRepo interface {
	Upsert(ctx context.Context, l *domain.RecordLink) error
	Get(ctx context.Context, projectID, recordID string) (*domain.RecordLink, error)
	ListByRecord(ctx context.Context, recordID string) ([]*domain.RecordLink, error)
	SetOverride(ctx context.Context, projectID, recordID string, override bool) error
}

type ProjectTaskRepo interface {
	Create(ctx context.Context, t *domain.ProjectTask) error
	GetByID(ctx context.Context, id string) (*domain.ProjectTask, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectTask, error)
}
