package domain

import "time"

// AssignmentRule is a user-owned predicate + action pair that auto-links
// inbound records to a target project. Enabled rules are evaluated in
// ascending SortOrder; every matching rule fires independently.
type AssignmentRule struct {
	ID          string
	OwnerID     string
	ProjectID   string
	Name        string
	Description string
	Enabled     bool
	SortOrder   int

	Conditions ConditionSet
	Confidence ConfidenceLevel
	ActionNote string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InboundRecord is the normalized view of an external record (e.g. a
// classified message) supplied at the inbound boundary.
type InboundRecord struct {
	ID             string
	Subject        string
	Body           string
	From           string
	Category       string
	Labels         map[string]string
	Priority       *float64
	TriageState    string
	HasAttachments bool
	ReceivedAt     time.Time
}
