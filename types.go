package envcheck

import (
	"net/netip"

	"github.com/eleven-am/envcheck/internal/acl"
	"github.com/eleven-am/envcheck/internal/domain"
)

type Direction = domain.Direction

const (
	Inbound  = domain.DirectionInbound
	Outbound = domain.DirectionOutbound
)

type RuleAction = domain.RuleAction

const (
	Allow = domain.ActionAllow
	Deny  = domain.ActionDeny
)

type PortRange = domain.PortRange

type ACLRule = domain.ACLRule

type ACLQuery = domain.ACLQuery

type ACLOutcome = domain.ACLOutcome

type RuleEvaluation = domain.RuleEvaluation

type EvaluationResult = domain.EvaluationResult

type CheckResult = domain.CheckResult

type CheckStatus = domain.CheckStatus

type Report = domain.Report

// DefaultRuleNumber is the number of the implicit catch-all deny entry.
const DefaultRuleNumber = domain.DefaultRuleNumber

// Ports creates a rule port restriction covering from through to.
func Ports(from, to int) *PortRange {
	return &PortRange{From: from, To: to}
}

// Query creates an unaddressed TCP query for a single port.
func Query(direction Direction, port int) ACLQuery {
	return domain.NewPortQuery(direction, acl.ProtocolTCP, port)
}

// QueryFrom creates a TCP query for traffic between port and a concrete
// address, the source for inbound and the destination for outbound.
func QueryFrom(direction Direction, port int, addr netip.Addr) ACLQuery {
	q := Query(direction, port)
	q.Address = addr
	return q
}

// Decide applies first-match-wins evaluation to rules.
func Decide(rules []ACLRule, query ACLQuery) ACLOutcome {
	return acl.Decide(rules, query)
}

// Explain evaluates rules and records the fate of every entry.
func Explain(rules []ACLRule, query ACLQuery) EvaluationResult {
	return acl.Explain(rules, query)
}

// Format renders an allowed outcome as a confirmation string, or "".
func Format(outcome ACLOutcome, query ACLQuery) string {
	return acl.Format(outcome, query)
}

// CheckIngress returns a confirmation when inbound TCP traffic on
// [fromPort, toPort] is open to any source, or "".
func CheckIngress(rules []ACLRule, fromPort, toPort int) string {
	return acl.CheckIngress(rules, fromPort, toPort)
}

// CheckEgress returns a confirmation when outbound TCP traffic to port is
// open to any destination, or "".
func CheckEgress(rules []ACLRule, port int) string {
	return acl.CheckEgress(rules, port)
}
