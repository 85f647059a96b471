package domain

type EnvironmentData struct {
	Name                string
	ARN                 string
	Status              string
	AirflowVersion      string
	WebserverAccessMode string
	ExecutionRoleARN    string
	SourceBucketARN     string
	KMSKey              string
	SubnetIDs           []string
	SecurityGroupIDs    []string
}

const (
	WebserverPrivateOnly = "PRIVATE_ONLY"
	WebserverPublicOnly  = "PUBLIC_ONLY"
)

func (e *EnvironmentData) IsPrivate() bool {
	return e.WebserverAccessMode == WebserverPrivateOnly
}

type SubnetData struct {
	ID                  string
	VPCID               string
	AvailabilityZone    string
	CIDRBlock           string
	IPv6CIDRBlock       string
	AvailableIPs        int
	NaclID              string
	RouteTableID        string
	MapPublicIPOnLaunch bool
}

type NACLData struct {
	ID            string
	VPCID         string
	InboundRules  []ACLRule
	OutboundRules []ACLRule
}

type RouteTableData struct {
	ID     string
	VPCID  string
	Routes []Route
}

type Route struct {
	DestinationCIDR     string
	DestinationIPv6CIDR string
	PrefixLength        int
	TargetType          string
	TargetID            string
	State               string
}

const (
	TargetLocal           = "local"
	TargetInternetGateway = "internet-gateway"
	TargetNATGateway      = "nat-gateway"
	TargetTransitGateway  = "transit-gateway"
	TargetVPCEndpoint     = "vpc-endpoint"
	TargetVPCPeering      = "vpc-peering"
	TargetVPNGateway      = "vpn-gateway"
	TargetNetworkIface    = "network-interface"
	TargetEgressOnlyIGW   = "egress-only-internet-gateway"
	TargetUnknown         = "unknown"
)

type VPCEndpointData struct {
	ID          string
	VPCID       string
	ServiceName string
	Type        string
	State       string
	SubnetIDs   []string
}

type Identity struct {
	AccountID string
	ARN       string
	UserID    string
}
