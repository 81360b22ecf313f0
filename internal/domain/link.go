package domain

import "time"

// RecordLink associates an external record with a project. Rows are keyed
// by (project, record) and upsert rather than duplicate. Override marks a
// manually removed link that rule evaluation must not recreate.
type RecordLink struct {
	ID         string
	ProjectID  string
	RecordID   string
	Confidence float64
	Source     string // "ai", "manual", or "rule"
	RuleID     string
	Override   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProjectTask is a lightweight task row created by project_task_create
// approvals, separate from timeline items.
type ProjectTask struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	AssigneeID  string
	Status      TaskStatus
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
