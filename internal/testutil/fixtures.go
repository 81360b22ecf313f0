package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

// TimelineItem options
type ItemOption func(*domain.TimelineItem)

func WithItemType(t domain.ItemType) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Type = t
	}
}

func WithLane(slug string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Lane = slug
	}
}

func WithKind(kind string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Kind = kind
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Status = s
	}
}

func WithWindow(start, end time.Time) ItemOption {
	return func(it *domain.TimelineItem) {
		it.StartsAt = &start
		it.EndsAt = &end
	}
}

func WithStart(start time.Time) ItemOption {
	return func(it *domain.TimelineItem) {
		it.StartsAt = &start
	}
}

func WithDueAt(due time.Time) ItemOption {
	return func(it *domain.TimelineItem) {
		it.DueAt = &due
	}
}

func WithTimezone(tz string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Timezone = tz
	}
}

func WithLabel(key, value string) ItemOption {
	return func(it *domain.TimelineItem) {
		if it.Labels == nil {
			it.Labels = map[string]string{}
		}
		it.Labels[key] = value
	}
}

func WithTerritory(territory string) ItemOption {
	return WithLabel(domain.LabelTerritory, territory)
}

func WithCity(city string) ItemOption {
	return WithLabel(domain.LabelCity, city)
}

func WithPriority(score float64) ItemOption {
	return func(it *domain.TimelineItem) {
		it.PriorityScore = &score
	}
}

func WithCreatedBy(userID string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.CreatedBy = userID
	}
}

func NewTestItem(projectID, title string, opts ...ItemOption) *domain.TimelineItem {
	now := time.Now().UTC()
	it := &domain.TimelineItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Type:      domain.ItemEvent,
		Lane:      "GENERAL",
		Title:     title,
		Status:    domain.ItemPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// LaneDefinition options
type LaneOption func(*domain.LaneDefinition)

func WithLaneOwner(ownerID string) LaneOption {
	return func(l *domain.LaneDefinition) {
		l.OwnerID = ownerID
		l.Scope = domain.LaneScopeUser
	}
}

func WithAutoAssign(cs domain.ConditionSet) LaneOption {
	return func(l *domain.LaneDefinition) {
		l.AutoAssign = &cs
	}
}

func WithLaneSortOrder(order int) LaneOption {
	return func(l *domain.LaneDefinition) {
		l.SortOrder = order
	}
}

func NewTestLane(slug string, opts ...LaneOption) *domain.LaneDefinition {
	now := time.Now().UTC()
	l := &domain.LaneDefinition{
		ID:        uuid.New().String(),
		Slug:      slug,
		Name:      slug,
		Scope:     domain.LaneScopeGlobal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Approval options
type ApprovalOption func(*domain.Approval)

func WithPayload(p domain.ApprovalPayload) ApprovalOption {
	return func(a *domain.Approval) {
		a.Payload = p
	}
}

func WithRequestedBy(userID string) ApprovalOption {
	return func(a *domain.Approval) {
		a.RequestedBy = userID
	}
}

func NewTestApproval(projectID string, typ domain.ApprovalType, opts ...ApprovalOption) *domain.Approval {
	now := time.Now().UTC()
	a := &domain.Approval{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Type:        typ,
		Status:      domain.ApprovalPending,
		RequestedBy: "user-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssignmentRule options
type RuleOption func(*domain.AssignmentRule)

func WithRuleSortOrder(order int) RuleOption {
	return func(r *domain.AssignmentRule) {
		r.SortOrder = order
	}
}

func WithRuleDisabled() RuleOption {
	return func(r *domain.AssignmentRule) {
		r.Enabled = false
	}
}

func WithConfidence(c domain.ConfidenceLevel) RuleOption {
	return func(r *domain.AssignmentRule) {
		r.Confidence = c
	}
}

// NewTestRule builds an enabled rule matching records whose subject contains
// the given needle.
func NewTestRule(ownerID, projectID, needle string, opts ...RuleOption) *domain.AssignmentRule {
	now := time.Now().UTC()
	r := &domain.AssignmentRule{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		ProjectID: projectID,
		Name:      "match " + needle,
		Enabled:   true,
		Conditions: domain.ConditionSet{
			Match: domain.MatchAll,
			Conditions: []domain.Condition{
				{Field: "subject", Op: domain.OpContains, Value: needle},
			},
		},
		Confidence: domain.ConfidenceMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestRecord builds an inbound record with the given subject.
func NewTestRecord(subject string) *domain.InboundRecord {
	return &domain.InboundRecord{
		ID:         uuid.New().String(),
		Subject:    subject,
		From:       "sender@example.com",
		Category:   "general",
		ReceivedAt: time.Now().UTC(),
	}
}
