package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/repository"
	"github.com/showrunnerhq/showrunner/internal/rules"
)

type assignmentRuleService struct {
	rules    repository.AssignmentRuleRepo
	links    repository.RecordLinkRepo
	observer UseCaseObserver
}

func NewAssignmentRuleService(ruleRepo repository.AssignmentRuleRepo, links repository.RecordLinkRepo, observers ...UseCaseObserver) AssignmentRuleService {
	return &assignmentRuleService{
		rules:    ruleRepo,
		links:    links,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assignmentRuleService) Create(ctx context.Context, r *domain.AssignmentRule) error {
	if err := validateRule(r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.rules.Create(ctx, r)
}

func validateRule(r *domain.AssignmentRule) error {
	if r.OwnerID == "" {
		return fmt.Errorf("rule owner is required")
	}
	if r.ProjectID == "" {
		return fmt.Errorf("rule target project is required")
	}
	if len(r.Conditions.Conditions) == 0 {
		return fmt.Errorf("rule needs at least one condition")
	}
	switch r.Confidence {
	case "", domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow:
	default:
		return fmt.Errorf("unknown confidence level %q", r.Confidence)
	}
	return nil
}

func (s *assignmentRuleService) List(ctx context.Context, ownerID string, enabledOnly bool) ([]*domain.AssignmentRule, error) {
	return s.rules.ListByOwner(ctx, ownerID, enabledOnly)
}

func (s *assignmentRuleService) Update(ctx context.Context, r *domain.AssignmentRule) error {
	if err := validateRule(r); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.rules.Update(ctx, r)
}

func (s *assignmentRuleService) Delete(ctx context.Context, id string) error {
	return s.rules.Delete(ctx, id)
}

// Apply runs every enabled rule of ownerID against the record, in SortOrder.
// Each matching rule links its target project unless that project is already
// linked or carries a manual override. Multiple rules targeting the same
// project produce a single link (first match wins).
func (s *assignmentRuleService) Apply(ctx context.Context, ownerID string, rec *domain.InboundRecord) (*RuleApplyReport, error) {
	started := time.Now()

	ruleset, err := s.rules.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ruleset, func(i, j int) bool {
		return ruleset[i].SortOrder < ruleset[j].SortOrder
	})

	// Any existing row settles the (project, record) pair: a live link is
	// not re-linked, and an overridden row marks a manual removal that rule
	// evaluation must not undo.
	existing, err := s.links.ListByRecord(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	settled := make(map[string]bool, len(existing))
	for _, l := range existing {
		settled[l.ProjectID] = true
	}

	report := &RuleApplyReport{}
	for _, rule := range ruleset {
		report.Evaluated++
		result := rules.EvaluateRule(rule, rec)
		if !result.Matched {
			continue
		}
		report.Matched++
		if settled[rule.ProjectID] {
			continue
		}

		now := time.Now().UTC()
		link := &domain.RecordLink{
			ID:         uuid.New().String(),
			ProjectID:  rule.ProjectID,
			RecordID:   rec.ID,
			Confidence: rule.Confidence.Score(),
			Source:     "rule",
			RuleID:     rule.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.links.Upsert(ctx, link); err != nil {
			return nil, fmt.Errorf("linking record %s to project %s: %w", rec.ID, rule.ProjectID, err)
		}
		settled[rule.ProjectID] = true
		report.Linked = append(report.Linked, link)
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "rule_apply",
		Duration:  time.Since(started),
		Success:   true,
		StartedAt: started,
		Fields: map[string]any{
			"record_id": rec.ID,
			"evaluated": report.Evaluated,
			"matched":   report.Matched,
			"linked":    len(report.Linked),
		},
	})
	return report, nil
}
