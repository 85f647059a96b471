package aws

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	mwaatypes "github.com/aws/aws-sdk-go-v2/service/mwaa/types"

	"github.com/eleven-am/envcheck/internal/domain"
)

func toSubnetData(subnet *ec2types.Subnet, naclID, rtID string) *domain.SubnetData {
	var ipv6CIDR string
	for _, assoc := range subnet.Ipv6CidrBlockAssociationSet {
		if assoc.Ipv6CidrBlock != nil {
			ipv6CIDR = *assoc.Ipv6CidrBlock
			break
		}
	}
	return &domain.SubnetData{
		ID:                  derefString(subnet.SubnetId),
		VPCID:               derefString(subnet.VpcId),
		AvailabilityZone:    derefString(subnet.AvailabilityZone),
		CIDRBlock:           derefString(subnet.CidrBlock),
		IPv6CIDRBlock:       ipv6CIDR,
		AvailableIPs:        int(derefInt32(subnet.AvailableIpAddressCount)),
		NaclID:              naclID,
		RouteTableID:        rtID,
		MapPublicIPOnLaunch: derefBool(subnet.MapPublicIpOnLaunch),
	}
}

func toNACLData(nacl *ec2types.NetworkAcl) *domain.NACLData {
	inbound, outbound := splitEntries(nacl.Entries)
	return &domain.NACLData{
		ID:            derefString(nacl.NetworkAclId),
		VPCID:         derefString(nacl.VpcId),
		InboundRules:  inbound,
		OutboundRules: outbound,
	}
}

func splitEntries(entries []ec2types.NetworkAclEntry) (inbound, outbound []domain.ACLRule) {
	for _, entry := range entries {
		rule, ok := toACLRule(entry)
		if !ok {
			continue
		}
		if rule.Direction == domain.DirectionOutbound {
			outbound = append(outbound, rule)
		} else {
			inbound = append(inbound, rule)
		}
	}
	return inbound, outbound
}

// toACLRule converts one provider entry. Entries without a direction are
// dropped; other missing fields are left empty so the matcher rejects them.
// A missing rule number sorts with the implicit default entry.
func toACLRule(entry ec2types.NetworkAclEntry) (domain.ACLRule, bool) {
	if entry.Egress == nil {
		return domain.ACLRule{}, false
	}
	rule := domain.ACLRule{
		RuleNumber: domain.DefaultRuleNumber,
		Direction:  domain.DirectionInbound,
		Protocol:   derefString(entry.Protocol),
		CIDRBlock:  derefString(entry.CidrBlock),
		Action:     domain.RuleAction(strings.ToLower(string(entry.RuleAction))),
	}
	if *entry.Egress {
		rule.Direction = domain.DirectionOutbound
	}
	if entry.RuleNumber != nil {
		rule.RuleNumber = int(*entry.RuleNumber)
	}
	if rule.CIDRBlock == "" {
		rule.CIDRBlock = derefString(entry.Ipv6CidrBlock)
	}
	if entry.PortRange != nil && entry.PortRange.From != nil && entry.PortRange.To != nil {
		rule.PortRange = &domain.PortRange{
			From: int(*entry.PortRange.From),
			To:   int(*entry.PortRange.To),
		}
	}
	return rule, true
}

func toRouteTableData(rt *ec2types.RouteTable) *domain.RouteTableData {
	var routes []domain.Route
	for _, r := range rt.Routes {
		route := domain.Route{
			DestinationCIDR:     derefString(r.DestinationCidrBlock),
			DestinationIPv6CIDR: derefString(r.DestinationIpv6CidrBlock),
			State:               string(r.State),
		}

		if route.DestinationCIDR != "" {
			route.PrefixLength = prefixLength(route.DestinationCIDR)
		} else if route.DestinationIPv6CIDR != "" {
			route.PrefixLength = prefixLength(route.DestinationIPv6CIDR)
		}

		route.TargetType, route.TargetID = determineRouteTarget(r)
		routes = append(routes, route)
	}
	return &domain.RouteTableData{
		ID:     derefString(rt.RouteTableId),
		VPCID:  derefString(rt.VpcId),
		Routes: routes,
	}
}

func determineRouteTarget(r ec2types.Route) (targetType, targetID string) {
	switch {
	case r.GatewayId != nil && strings.HasPrefix(*r.GatewayId, "igw-"):
		return domain.TargetInternetGateway, *r.GatewayId
	case r.GatewayId != nil && strings.HasPrefix(*r.GatewayId, "vgw-"):
		return domain.TargetVPNGateway, *r.GatewayId
	case r.GatewayId != nil && strings.HasPrefix(*r.GatewayId, "vpce-"):
		return domain.TargetVPCEndpoint, *r.GatewayId
	case r.GatewayId != nil && *r.GatewayId == "local":
		return domain.TargetLocal, "local"
	case r.NatGatewayId != nil:
		return domain.TargetNATGateway, *r.NatGatewayId
	case r.TransitGatewayId != nil:
		return domain.TargetTransitGateway, *r.TransitGatewayId
	case r.VpcPeeringConnectionId != nil:
		return domain.TargetVPCPeering, *r.VpcPeeringConnectionId
	case r.EgressOnlyInternetGatewayId != nil:
		return domain.TargetEgressOnlyIGW, *r.EgressOnlyInternetGatewayId
	case r.NetworkInterfaceId != nil:
		return domain.TargetNetworkIface, *r.NetworkInterfaceId
	default:
		return domain.TargetUnknown, ""
	}
}

func toVPCEndpointData(ep *ec2types.VpcEndpoint) domain.VPCEndpointData {
	return domain.VPCEndpointData{
		ID:          derefString(ep.VpcEndpointId),
		VPCID:       derefString(ep.VpcId),
		ServiceName: derefString(ep.ServiceName),
		Type:        string(ep.VpcEndpointType),
		State:       strings.ToLower(string(ep.State)),
		SubnetIDs:   ep.SubnetIds,
	}
}

func toEnvironmentData(env *mwaatypes.Environment) *domain.EnvironmentData {
	data := &domain.EnvironmentData{
		Name:                derefString(env.Name),
		ARN:                 derefString(env.Arn),
		Status:              string(env.Status),
		AirflowVersion:      derefString(env.AirflowVersion),
		WebserverAccessMode: string(env.WebserverAccessMode),
		ExecutionRoleARN:    derefString(env.ExecutionRoleArn),
		SourceBucketARN:     derefString(env.SourceBucketArn),
		KMSKey:              derefString(env.KmsKey),
	}
	if env.NetworkConfiguration != nil {
		data.SubnetIDs = env.NetworkConfiguration.SubnetIds
		data.SecurityGroupIDs = env.NetworkConfiguration.SecurityGroupIds
	}
	return data
}

type naclEntryJSON struct {
	CidrBlock     *string `json:"CidrBlock"`
	Ipv6CidrBlock *string `json:"Ipv6CidrBlock"`
	Egress        *bool   `json:"Egress"`
	Protocol      *string `json:"Protocol"`
	RuleAction    string  `json:"RuleAction"`
	RuleNumber    *int32  `json:"RuleNumber"`
	PortRange     *struct {
		From *int32 `json:"From"`
		To   *int32 `json:"To"`
	} `json:"PortRange"`
}

type describeNACLsJSON struct {
	NetworkAcls []struct {
		Entries []naclEntryJSON `json:"Entries"`
	} `json:"NetworkAcls"`
}

// ParseNACLEntries reads entries from the JSON emitted by
// `aws ec2 describe-network-acls`, either the whole response or a bare
// array of entries.
func ParseNACLEntries(data []byte) ([]domain.ACLRule, error) {
	var raw []naclEntryJSON

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode nacl entries: %w", err)
		}
	} else {
		var resp describeNACLsJSON
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode describe-network-acls output: %w", err)
		}
		for _, acl := range resp.NetworkAcls {
			raw = append(raw, acl.Entries...)
		}
	}

	entries := make([]ec2types.NetworkAclEntry, 0, len(raw))
	for _, e := range raw {
		entry := ec2types.NetworkAclEntry{
			CidrBlock:     e.CidrBlock,
			Ipv6CidrBlock: e.Ipv6CidrBlock,
			Egress:        e.Egress,
			Protocol:      e.Protocol,
			RuleAction:    ec2types.RuleAction(e.RuleAction),
			RuleNumber:    e.RuleNumber,
		}
		if e.PortRange != nil {
			entry.PortRange = &ec2types.PortRange{From: e.PortRange.From, To: e.PortRange.To}
		}
		entries = append(entries, entry)
	}

	inbound, outbound := splitEntries(entries)
	return append(inbound, outbound...), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func prefixLength(cidr string) int {
	parts := strings.Split(cidr, "/")
	if len(parts) != 2 {
		return 0
	}
	length, _ := strconv.Atoi(parts[1])
	return length
}
