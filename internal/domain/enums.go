package domain

type ItemType string

const (
	ItemEvent     ItemType = "event"
	ItemTask      ItemType = "task"
	ItemMilestone ItemType = "milestone"
	ItemHold      ItemType = "hold"
	ItemOther     ItemType = "other"
)

// ValidItemTypes is the canonical set of accepted timeline item type strings.
var ValidItemTypes = map[string]bool{
	"event": true, "task": true, "milestone": true, "hold": true, "other": true,
}

type ItemStatus string

const (
	ItemPlanned   ItemStatus = "planned"
	ItemConfirmed ItemStatus = "confirmed"
	ItemDone      ItemStatus = "done"
	ItemCancelled ItemStatus = "cancelled"
)

// Terminal reports whether the status is a resolved end state.
func (s ItemStatus) Terminal() bool {
	return s == ItemDone || s == ItemCancelled
}

type DependencyKind string

const (
	// DependencyFS: the from-item must finish before the to-item starts.
	DependencyFS DependencyKind = "FS"
	// DependencySS: the from-item must start before the to-item starts.
	DependencySS DependencyKind = "SS"
)

// NormalizeDependencyKind maps unrecognized kind strings to FS.
func NormalizeDependencyKind(kind string) DependencyKind {
	if DependencyKind(kind) == DependencySS {
		return DependencySS
	}
	return DependencyFS
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalDeclined ApprovalStatus = "declined"
)

type ApprovalType string

const (
	ApprovalProjectEmailLink      ApprovalType = "project_email_link"
	ApprovalTimelineItemCreate    ApprovalType = "timeline_item_create"
	ApprovalProjectTaskCreate     ApprovalType = "project_task_create"
	ApprovalTimelineItemFromEmail ApprovalType = "timeline_item_from_email"
)

// ValidApprovalTypes is the canonical set of accepted approval type strings.
var ValidApprovalTypes = map[string]bool{
	"project_email_link":       true,
	"timeline_item_create":     true,
	"project_task_create":      true,
	"timeline_item_from_email": true,
}

type ConflictSeverity string

const (
	SeverityWarning ConflictSeverity = "warning"
	SeverityError   ConflictSeverity = "error"
)

type LaneScope string

const (
	LaneScopeGlobal LaneScope = "global"
	LaneScopeUser   LaneScope = "user"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Score maps a declared confidence level to its numeric link score.
func (c ConfidenceLevel) Score() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceLow:
		return 0.5
	default:
		return 0.7
	}
}

type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)
