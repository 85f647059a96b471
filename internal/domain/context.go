package domain

import "context"

// AWSClient is the set of lookups the pre-flight checks need. Implementations
// perform network I/O; callers own the context deadline.
type AWSClient interface {
	CallerIdentity(ctx context.Context) (*Identity, error)
	GetEnvironment(ctx context.Context, name string) (*EnvironmentData, error)
	GetSubnet(ctx context.Context, subnetID string) (*SubnetData, error)
	GetNACL(ctx context.Context, naclID string) (*NACLData, error)
	GetNACLForSubnet(ctx context.Context, subnetID string) (*NACLData, error)
	GetRouteTable(ctx context.Context, rtID string) (*RouteTableData, error)
	ListVPCEndpoints(ctx context.Context, vpcID string) ([]VPCEndpointData, error)
	Region() string
}
