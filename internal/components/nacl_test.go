package components

import (
	"strings"
	"testing"

	"github.com/eleven-am/envcheck/internal/domain"
)

func allowAll(num int, direction domain.Direction) domain.ACLRule {
	return domain.ACLRule{
		RuleNumber: num,
		Direction:  direction,
		Protocol:   "-1",
		CIDRBlock:  "0.0.0.0/0",
		Action:     domain.ActionAllow,
	}
}

func denyAll(direction domain.Direction) domain.ACLRule {
	return domain.ACLRule{
		RuleNumber: domain.DefaultRuleNumber,
		Direction:  direction,
		Protocol:   "-1",
		CIDRBlock:  "0.0.0.0/0",
		Action:     domain.ActionDeny,
	}
}

func TestNACL_CheckPorts_DefaultACL(t *testing.T) {
	nacl := NewNACL(&domain.NACLData{
		ID:            "acl-1",
		InboundRules:  []domain.ACLRule{allowAll(100, domain.DirectionInbound), denyAll(domain.DirectionInbound)},
		OutboundRules: []domain.ACLRule{allowAll(100, domain.DirectionOutbound), denyAll(domain.DirectionOutbound)},
	}, "subnet-1")

	results := nacl.CheckPorts([]int{5432, 443})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Status != domain.StatusPass {
			t.Errorf("expected pass, got %s: %s", r.Status, r.Message)
		}
		if r.Resource != "subnet-1/acl-1" {
			t.Errorf("expected resource subnet-1/acl-1, got %s", r.Resource)
		}
	}
	if want := "inbound tcp port 5432 allowed by rule 100 (all traffic) from 0.0.0.0/0"; results[0].Message != want {
		t.Errorf("expected %q, got %q", want, results[0].Message)
	}
}

func TestNACL_CheckPorts_DeniedPort(t *testing.T) {
	nacl := NewNACL(&domain.NACLData{
		ID: "acl-2",
		InboundRules: []domain.ACLRule{
			{
				RuleNumber: 10,
				Direction:  domain.DirectionInbound,
				Protocol:   "6",
				PortRange:  &domain.PortRange{From: 5432, To: 5432},
				CIDRBlock:  "0.0.0.0/0",
				Action:     domain.ActionDeny,
			},
			allowAll(100, domain.DirectionInbound),
		},
		OutboundRules: []domain.ACLRule{allowAll(100, domain.DirectionOutbound)},
	}, "subnet-1")

	results := nacl.CheckPorts([]int{5432})
	if results[0].Status != domain.StatusFail {
		t.Fatalf("expected inbound failure, got %s", results[0].Status)
	}
	if !strings.Contains(results[0].Message, "not confirmed open by acl-2") {
		t.Errorf("unexpected message: %s", results[0].Message)
	}
	if results[1].Status != domain.StatusPass {
		t.Errorf("expected outbound pass, got %s", results[1].Status)
	}
}

func TestNACL_EvaluateOutbound_IgnoresInboundRules(t *testing.T) {
	nacl := NewNACL(&domain.NACLData{
		ID:            "acl-3",
		OutboundRules: []domain.ACLRule{allowAll(100, domain.DirectionInbound)},
	}, "subnet-1")

	if got := nacl.EvaluateOutbound(443); got != "" {
		t.Errorf("expected no confirmation, got %q", got)
	}
}
