package domain

import "time"

// Approval is a reviewable request to mutate project state. Status moves
// pending -> approved or pending -> declined exactly once; a resolved
// approval's payload is never reapplied.
type Approval struct {
	ID        string
	ProjectID string
	Type      ApprovalType
	Status    ApprovalStatus
	Payload   ApprovalPayload

	RequestedBy    string
	CreatedBy      string
	ApproverID     string
	ApprovedAt     *time.Time
	DeclinedAt     *time.Time
	ResolutionNote string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resolved reports whether the approval has reached a terminal status.
func (a *Approval) Resolved() bool {
	return a.Status == ApprovalApproved || a.Status == ApprovalDeclined
}

// ApprovalPayload is the type-specific structured data carried by an
// approval. Only the fields relevant to the approval's type are set.
type ApprovalPayload struct {
	// project_email_link
	RecordID   string  `json:"recordId,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Source     string  `json:"source,omitempty"` // "ai" or "manual"

	// timeline_item_create / timeline_item_from_email, and the optional
	// timelineSeed of a project_email_link.
	TimelineSeed *TimelineSeed `json:"timelineSeed,omitempty"`

	// project_task_create
	TaskSeed *TaskSeed `json:"taskSeed,omitempty"`
}

// TimelineSeed describes a timeline item to insert when an approval is
// applied, plus optional incoming dependency edges for the new item.
type TimelineSeed struct {
	Type        string            `json:"type,omitempty"`
	Lane        string            `json:"lane,omitempty"`
	Kind        string            `json:"kind,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	StartsAt    *time.Time        `json:"startsAt,omitempty"`
	EndsAt      *time.Time        `json:"endsAt,omitempty"`
	DueAt       *time.Time        `json:"dueAt,omitempty"`
	Timezone    string            `json:"timezone,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
	Edges       []DependencyEdge  `json:"edges,omitempty"`
}

// TaskSeed describes a project task to insert when a project_task_create
// approval is applied.
type TaskSeed struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssigneeID  string `json:"assigneeId,omitempty"`
}
