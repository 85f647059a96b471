package acl

import (
	"fmt"
	"sort"

	"github.com/eleven-am/envcheck/internal/domain"
)

// SortByRuleNumber returns a copy of rules in evaluation order: ascending
// rule number, ties kept in their original order.
func SortByRuleNumber(rules []domain.ACLRule) []domain.ACLRule {
	sorted := make([]domain.ACLRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RuleNumber < sorted[j].RuleNumber
	})
	return sorted
}

// Decide evaluates rules the way the provider does: in ascending rule-number
// order, the first entry that matches decides. Only an allow entry produces
// an Allowed outcome; a deny entry or no match at all yields
// NotConfirmedAllowed. rules is not modified.
func Decide(rules []domain.ACLRule, query domain.ACLQuery) domain.ACLOutcome {
	for _, rule := range SortByRuleNumber(rules) {
		if !Matches(rule, query) {
			continue
		}
		if rule.Action == domain.ActionAllow {
			return domain.AllowedBy(rule)
		}
		return domain.NotConfirmedAllowed
	}
	return domain.NotConfirmedAllowed
}

// Explain is Decide with a per-entry trace, in evaluation order.
func Explain(rules []domain.ACLRule, query domain.ACLQuery) domain.EvaluationResult {
	result := domain.EvaluationResult{Outcome: domain.NotConfirmedAllowed}
	decided := false

	for _, rule := range SortByRuleNumber(rules) {
		eval := domain.RuleEvaluation{
			RuleNumber: rule.RuleNumber,
			Action:     rule.Action,
			CIDRBlock:  rule.CIDRBlock,
			Protocol:   describeProtocol(rule.Protocol),
		}
		switch reason := mismatch(rule, query); {
		case decided:
			eval.Reason = "not reached"
		case reason != "":
			eval.Reason = reason
		default:
			decided = true
			eval.Matched = true
			eval.Decisive = true
			eval.Reason = fmt.Sprintf("first match, action %s", rule.Action)
			if rule.Action == domain.ActionAllow {
				result.Outcome = domain.AllowedBy(rule)
			}
		}
		result.Evaluations = append(result.Evaluations, eval)
	}

	return result
}
