package domain

// Condition operators shared by lane auto-assign rules and assignment rules.
const (
	OpContains       = "contains"
	OpNotContains    = "not_contains"
	OpEquals         = "equals"
	OpIn             = "in"
	OpGTE            = "gte"
	OpLTE            = "lte"
	OpExists         = "exists"
	MatchAll         = "all"
	MatchAny         = "any"
	LabelFieldPrefix = "label:"
)

// Condition is a single predicate over a named field of the matched subject
// (a timeline item's attributes or an inbound record's fields). Fields named
// "label:<key>" address the subject's label map.
type Condition struct {
	Field  string   `json:"field" yaml:"field"`
	Op     string   `json:"op" yaml:"op"`
	Value  string   `json:"value,omitempty" yaml:"value,omitempty"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// ConditionSet groups conditions under an all/any match mode. An empty set
// never matches; rules with no conditions are inert rather than catch-all.
type ConditionSet struct {
	Match      string      `json:"match,omitempty" yaml:"match,omitempty"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}
