package acl

import (
	"fmt"
	"strings"

	"github.com/eleven-am/envcheck/internal/domain"
)

// Format renders an Allowed outcome as an operator-facing confirmation, for
// example "inbound tcp port 5432 allowed by rule 100 from 0.0.0.0/0". Any
// other outcome renders as the empty string, which callers treat as "no
// confirmation found".
func Format(outcome domain.ACLOutcome, query domain.ACLQuery) string {
	if !outcome.Allowed || outcome.Rule == nil {
		return ""
	}
	rule := outcome.Rule

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s allowed by rule %d", query.Direction, describeProtocol(query.Protocol), portLabel(query), rule.RuleNumber)
	if IsWildcard(rule.Protocol) {
		b.WriteString(" (all traffic)")
	}

	preposition := "from"
	if query.Direction == domain.DirectionOutbound {
		preposition = "to"
	}
	fmt.Fprintf(&b, " %s %s", preposition, rule.CIDRBlock)
	if query.Addressed() {
		fmt.Fprintf(&b, " (%s)", query.Address)
	}
	return b.String()
}

// Check runs Decide and Format for query.
func Check(rules []domain.ACLRule, query domain.ACLQuery) string {
	return Format(Decide(rules, query), query)
}

// CheckIngress reports whether inbound TCP traffic on [fromPort, toPort] is
// open to any source.
func CheckIngress(rules []domain.ACLRule, fromPort, toPort int) string {
	return Check(rules, domain.ACLQuery{
		Direction: domain.DirectionInbound,
		Protocol:  ProtocolTCP,
		FromPort:  fromPort,
		ToPort:    toPort,
	})
}

// CheckEgress reports whether outbound TCP traffic to port is open to any
// destination.
func CheckEgress(rules []domain.ACLRule, port int) string {
	return Check(rules, domain.NewPortQuery(domain.DirectionOutbound, ProtocolTCP, port))
}

func portLabel(query domain.ACLQuery) string {
	if query.FromPort == query.ToPort {
		return fmt.Sprintf("port %d", query.FromPort)
	}
	return fmt.Sprintf("ports %d-%d", query.FromPort, query.ToPort)
}
