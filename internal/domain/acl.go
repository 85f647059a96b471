package domain

import (
	"fmt"
	"net/netip"
)

// DefaultRuleNumber is the rule number of the provider's implicit catch-all
// deny entry. It is always evaluated last.
const DefaultRuleNumber = 32767

const (
	MinPort = 0
	MaxPort = 65535
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// ParseDirection accepts the NACL vocabulary (inbound/outbound) as well as
// ingress/egress.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "inbound", "ingress":
		return DirectionInbound, nil
	case "outbound", "egress":
		return DirectionOutbound, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

type RuleAction string

const (
	ActionAllow RuleAction = "allow"
	ActionDeny  RuleAction = "deny"
)

// PortRange is an inclusive port interval.
type PortRange struct {
	From int
	To   int
}

func (p PortRange) Valid() bool {
	return p.From >= MinPort && p.To <= MaxPort && p.From <= p.To
}

// Covers reports whether p fully contains [from, to].
func (p PortRange) Covers(from, to int) bool {
	return p.From <= from && to <= p.To
}

// ACLRule is one network ACL entry. PortRange is nil when the entry carries
// no port restriction, which is only meaningful for the wildcard protocol.
type ACLRule struct {
	RuleNumber int
	Direction  Direction
	Protocol   string
	PortRange  *PortRange
	CIDRBlock  string
	Action     RuleAction
}

type AddressFamily int

const (
	FamilyIPv4 AddressFamily = iota
	FamilyIPv6
)

func (f AddressFamily) String() string {
	if f == FamilyIPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// ACLQuery asks whether traffic on [FromPort, ToPort] is permitted in one
// direction. A zero Address means the query is unaddressed: it asks whether
// the port is open to any origin of Family rather than to a particular host.
// Family is ignored for addressed queries.
type ACLQuery struct {
	Direction Direction
	Protocol  string
	FromPort  int
	ToPort    int
	Address   netip.Addr
	Family    AddressFamily
}

// NewPortQuery builds an unaddressed single-port query.
func NewPortQuery(direction Direction, protocol string, port int) ACLQuery {
	return ACLQuery{
		Direction: direction,
		Protocol:  protocol,
		FromPort:  port,
		ToPort:    port,
	}
}

func (q ACLQuery) Addressed() bool {
	return q.Address.IsValid()
}

// Validate rejects queries that violate the evaluator's input contract.
// Callers run it at the argument boundary; the evaluator does not.
func (q ACLQuery) Validate() error {
	if !q.Direction.Valid() {
		return fmt.Errorf("invalid direction %q", q.Direction)
	}
	if q.Protocol == "" {
		return fmt.Errorf("protocol is required")
	}
	if q.FromPort < MinPort || q.FromPort > MaxPort {
		return fmt.Errorf("port %d out of range", q.FromPort)
	}
	if q.ToPort < MinPort || q.ToPort > MaxPort {
		return fmt.Errorf("port %d out of range", q.ToPort)
	}
	if q.FromPort > q.ToPort {
		return fmt.Errorf("port range %d-%d is inverted", q.FromPort, q.ToPort)
	}
	return nil
}

// ACLOutcome is the result of one evaluation. The zero value means the
// traffic was not confirmed allowed.
type ACLOutcome struct {
	Allowed bool
	Rule    *ACLRule
}

// NotConfirmedAllowed is returned when no allow rule is decisive.
var NotConfirmedAllowed = ACLOutcome{}

func AllowedBy(rule ACLRule) ACLOutcome {
	return ACLOutcome{Allowed: true, Rule: &rule}
}
