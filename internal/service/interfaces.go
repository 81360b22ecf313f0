package service

import (
	"context"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/schedule"
)

type TimelineItemService interface {
	Create(ctx context.Context, it *domain.TimelineItem) error
	GetByID(ctx context.Context, id string) (*domain.TimelineItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineItem, error)
	Update(ctx context.Context, it *domain.TimelineItem) error
	Delete(ctx context.Context, id string) error
}

// ReapplyReport summarizes a bulk lane reapplication run. Skipped counts
// single-item write failures tolerated without aborting the batch.
type ReapplyReport struct {
	Updated   int
	Unchanged int
	Skipped   int
}

type LaneService interface {
	Create(ctx context.Context, l *domain.LaneDefinition) error
	GetBySlug(ctx context.Context, slug, ownerID string) (*domain.LaneDefinition, error)
	List(ctx context.Context, ownerID string) ([]*domain.LaneDefinition, error)
	Update(ctx context.Context, l *domain.LaneDefinition) error
	Delete(ctx context.Context, id string) error
	// ReapplyRules re-resolves every item of the project that is currently
	// unassigned or assigned to laneSlug (when laneSlug is non-empty).
	ReapplyRules(ctx context.Context, projectID, laneSlug, ownerID string) (*ReapplyReport, error)
}

type DependencyService interface {
	// SetDependencies replaces all incoming edges of toItemID with the given
	// set (delete-then-insert, not a diff).
	SetDependencies(ctx context.Context, projectID, toItemID string, edges []domain.DependencyEdge) error
	ListIncoming(ctx context.Context, toItemID string) ([]domain.Dependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
}

// DecideAction is the reviewer's verdict on a pending approval.
type DecideAction string

const (
	DecideApprove DecideAction = "approve"
	DecideDecline DecideAction = "decline"
)

type ApprovalService interface {
	Create(ctx context.Context, a *domain.Approval) error
	GetByID(ctx context.Context, id string) (*domain.Approval, error)
	ListPending(ctx context.Context, projectID string) ([]*domain.Approval, error)
	// Decide resolves a pending approval. Deciding an already-resolved
	// approval returns it unchanged; callers must inspect the status.
	Decide(ctx context.Context, approvalID string, action DecideAction, actorID, note string) (*domain.Approval, error)
}

// RuleApplyReport summarizes one evaluation pass of a record against a
// user's rules.
type RuleApplyReport struct {
	Evaluated int
	Matched   int
	Linked    []*domain.RecordLink
}

type AssignmentRuleService interface {
	Create(ctx context.Context, r *domain.AssignmentRule) error
	List(ctx context.Context, ownerID string, enabledOnly bool) ([]*domain.AssignmentRule, error)
	Update(ctx context.Context, r *domain.AssignmentRule) error
	Delete(ctx context.Context, id string) error
	// Apply evaluates all enabled rules of a user against a record and links
	// every matching target project not already linked or overridden.
	Apply(ctx context.Context, ownerID string, rec *domain.InboundRecord) (*RuleApplyReport, error)
}

// ImportReport summarizes one schedule import.
type ImportReport struct {
	LanesCreated int
	LanesReused  int
	Items        int
	Dependencies int
}

type ImportService interface {
	// ImportFile loads, validates, converts, and persists a schedule import
	// file. All rows land in one transaction; a failed import writes nothing.
	ImportFile(ctx context.Context, path, ownerID string) (*ImportReport, error)
}

type ScheduleService interface {
	Conflicts(ctx context.Context, projectID string, territoryBufferHours float64) ([]schedule.Conflict, error)
	FindSlots(ctx context.Context, projectID string, opts schedule.SlotOptions) (schedule.SlotResult, error)
}
