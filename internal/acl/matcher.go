package acl

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/eleven-am/envcheck/internal/domain"
)

const (
	ProtocolAll    = "all"
	ProtocolTCP    = "tcp"
	ProtocolUDP    = "udp"
	ProtocolICMP   = "icmp"
	ProtocolICMPv6 = "icmpv6"
)

// Matches reports whether rule applies to query.
//
// For an unaddressed query only rules whose CIDR is a match-all prefix
// (0.0.0.0/0 or ::/0) apply: the answer is "is the port open without any
// network-origin restriction", not "is some particular host permitted".
// Callers that need the latter must set query.Address.
//
// Entries with missing or malformed fields never match.
func Matches(rule domain.ACLRule, query domain.ACLQuery) bool {
	return mismatch(rule, query) == ""
}

// mismatch returns why rule does not apply to query, or "" if it does.
func mismatch(rule domain.ACLRule, query domain.ACLQuery) string {
	if rule.Direction != query.Direction {
		return "direction differs"
	}
	if !protocolMatches(rule.Protocol, query.Protocol) {
		return fmt.Sprintf("protocol %s does not cover %s", describeProtocol(rule.Protocol), describeProtocol(query.Protocol))
	}
	if !portsMatch(rule, query.FromPort, query.ToPort) {
		if rule.PortRange == nil {
			return "no port range"
		}
		return fmt.Sprintf("ports %d-%d do not cover %s", rule.PortRange.From, rule.PortRange.To, portLabel(query))
	}
	if !cidrMatches(rule.CIDRBlock, query) {
		if query.Addressed() {
			return fmt.Sprintf("%s does not contain %s", rule.CIDRBlock, query.Address)
		}
		return fmt.Sprintf("%s does not cover every %s origin", rule.CIDRBlock, query.Family)
	}
	return ""
}

func protocolMatches(ruleProtocol, queryProtocol string) bool {
	rule := normalizeProtocol(ruleProtocol)
	if rule == "" {
		return false
	}
	if rule == ProtocolAll {
		return true
	}
	return rule == normalizeProtocol(queryProtocol)
}

func portsMatch(rule domain.ACLRule, from, to int) bool {
	if IsWildcard(rule.Protocol) {
		return true
	}
	if rule.PortRange == nil || !rule.PortRange.Valid() {
		return false
	}
	return rule.PortRange.Covers(from, to)
}

func cidrMatches(cidr string, query domain.ACLQuery) bool {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return false
	}
	prefix = prefix.Masked()
	if !query.Addressed() {
		return prefix.Bits() == 0 && prefixFamily(prefix) == query.Family
	}
	return prefix.Contains(query.Address.Unmap())
}

func prefixFamily(prefix netip.Prefix) domain.AddressFamily {
	if prefix.Addr().Is4() {
		return domain.FamilyIPv4
	}
	return domain.FamilyIPv6
}

// IsWildcard reports whether p denotes every protocol.
func IsWildcard(p string) bool {
	return normalizeProtocol(p) == ProtocolAll
}

func normalizeProtocol(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "":
		return ""
	case "-1", "all":
		return ProtocolAll
	case "6", "tcp":
		return ProtocolTCP
	case "17", "udp":
		return ProtocolUDP
	case "1", "icmp":
		return ProtocolICMP
	case "58", "icmpv6":
		return ProtocolICMPv6
	default:
		return strings.ToLower(strings.TrimSpace(p))
	}
}

func describeProtocol(p string) string {
	switch n := normalizeProtocol(p); n {
	case "":
		return "(none)"
	case ProtocolAll:
		return "all protocols"
	default:
		return n
	}
}
