package rules

import (
	"strconv"
	"strings"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// FieldView is the normalized subject a condition set matches against. Lane
// auto-assign rules and assignment rules share the same grammar; they differ
// only in which fields their subjects expose.
type FieldView struct {
	Text    map[string]string
	Numbers map[string]float64
	Flags   map[string]bool
	Labels  map[string]string
}

// MatchDetail records one satisfied condition, for explainability in rule
// evaluation results.
type MatchDetail struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

// EvaluateSet evaluates a condition set against a field view. A nil set or a
// set with no conditions never matches. Text comparisons are
// case-insensitive.
func EvaluateSet(set *domain.ConditionSet, f FieldView) (bool, []MatchDetail) {
	if set == nil || len(set.Conditions) == 0 {
		return false, nil
	}
	any := set.Match == domain.MatchAny

	var details []MatchDetail
	matchedCount := 0
	for _, c := range set.Conditions {
		ok, detail := evaluateCondition(c, f)
		if ok {
			matchedCount++
			details = append(details, detail)
		} else if !any {
			return false, nil
		}
	}
	if any && matchedCount == 0 {
		return false, nil
	}
	return true, details
}

func evaluateCondition(c domain.Condition, f FieldView) (bool, MatchDetail) {
	detail := MatchDetail{Field: c.Field, Op: c.Op, Want: c.Value}
	if len(c.Values) > 0 {
		detail.Want = strings.Join(c.Values, ",")
	}

	switch c.Op {
	case domain.OpGTE, domain.OpLTE:
		got, ok := f.Numbers[c.Field]
		if !ok {
			return false, detail
		}
		want, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return false, detail
		}
		detail.Got = strconv.FormatFloat(got, 'f', -1, 64)
		if c.Op == domain.OpGTE {
			return got >= want, detail
		}
		return got <= want, detail

	case domain.OpExists:
		if flag, ok := f.Flags[c.Field]; ok {
			detail.Got = strconv.FormatBool(flag)
			return flag, detail
		}
		got, ok := lookupText(c.Field, f)
		detail.Got = got
		return ok && got != "", detail

	case domain.OpContains, domain.OpNotContains, domain.OpEquals, domain.OpIn:
		got, _ := lookupText(c.Field, f)
		detail.Got = got
		lowered := strings.ToLower(got)
		switch c.Op {
		case domain.OpContains:
			return got != "" && strings.Contains(lowered, strings.ToLower(c.Value)), detail
		case domain.OpNotContains:
			return !strings.Contains(lowered, strings.ToLower(c.Value)), detail
		case domain.OpEquals:
			return got != "" && strings.EqualFold(got, c.Value), detail
		case domain.OpIn:
			for _, v := range c.Values {
				if strings.EqualFold(got, v) {
					return true, detail
				}
			}
			return false, detail
		}
	}

	// Unknown operator: the condition fails rather than silently passing.
	return false, detail
}

// lookupText resolves a text field, with "label:<key>" addressing the
// subject's label map.
func lookupText(field string, f FieldView) (string, bool) {
	if key, ok := strings.CutPrefix(field, domain.LabelFieldPrefix); ok {
		v, present := f.Labels[key]
		return v, present
	}
	v, present := f.Text[field]
	return v, present
}
