package domain

// RuleEvaluation records how a single ACL entry fared against a query.
type RuleEvaluation struct {
	RuleNumber int
	Action     RuleAction
	CIDRBlock  string
	Protocol   string
	Matched    bool
	Decisive   bool
	Reason     string
}

type EvaluationResult struct {
	Outcome     ACLOutcome
	Evaluations []RuleEvaluation
}
