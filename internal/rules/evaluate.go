package rules

import "github.com/showrunnerhq/showrunner/internal/domain"

// RuleResult is the outcome of evaluating one assignment rule against one
// inbound record. Pure predicate evaluation: no side effects.
type RuleResult struct {
	Matched bool          `json:"matched"`
	Matches []MatchDetail `json:"matches,omitempty"`
}

// RecordFields builds the field view for assignment rule evaluation.
func RecordFields(rec *domain.InboundRecord) FieldView {
	f := FieldView{
		Text: map[string]string{
			"subject":      rec.Subject,
			"body":         rec.Body,
			"from":         rec.From,
			"category":     rec.Category,
			"triage_state": rec.TriageState,
		},
		Numbers: map[string]float64{},
		Flags: map[string]bool{
			"has_attachments": rec.HasAttachments,
		},
		Labels: rec.Labels,
	}
	if rec.Priority != nil {
		f.Numbers["priority"] = *rec.Priority
	}
	return f
}

// EvaluateRule matches a single rule's conditions against an inbound record.
func EvaluateRule(rule *domain.AssignmentRule, rec *domain.InboundRecord) RuleResult {
	matched, details := EvaluateSet(&rule.Conditions, RecordFields(rec))
	return RuleResult{Matched: matched, Matches: details}
}
