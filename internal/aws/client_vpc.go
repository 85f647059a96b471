package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/eleven-am/envcheck/internal/domain"
)

func (c *Client) GetSubnet(ctx context.Context, subnetID string) (*domain.SubnetData, error) {
	return cached(c.cache, c.cacheKey("subnet", subnetID), func() (*domain.SubnetData, error) {
		subnetOut, err := c.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
			SubnetIds: []string{subnetID},
		})
		if err != nil {
			return nil, fmt.Errorf("describe subnet %s: %w", subnetID, err)
		}
		if len(subnetOut.Subnets) == 0 {
			return nil, &domain.NotFoundError{Kind: "subnet", ID: subnetID}
		}
		subnet := &subnetOut.Subnets[0]

		naclID, err := c.findNACLForSubnet(ctx, subnetID)
		if err != nil {
			return nil, err
		}

		rtID, err := c.findRouteTableForSubnet(ctx, subnetID, derefString(subnet.VpcId))
		if err != nil {
			return nil, err
		}

		return toSubnetData(subnet, naclID, rtID), nil
	})
}

func (c *Client) findNACLForSubnet(ctx context.Context, subnetID string) (string, error) {
	nacl, err := c.describeNACLForSubnet(ctx, subnetID)
	if err != nil {
		return "", err
	}
	if nacl == nil {
		return "", nil
	}
	return nacl.ID, nil
}

func (c *Client) describeNACLForSubnet(ctx context.Context, subnetID string) (*domain.NACLData, error) {
	out, err := c.ec2Client.DescribeNetworkAcls(ctx, &ec2.DescribeNetworkAclsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("association.subnet-id"), Values: []string{subnetID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describe network acls for subnet %s: %w", subnetID, err)
	}
	if len(out.NetworkAcls) == 0 {
		return nil, nil
	}
	data := toNACLData(&out.NetworkAcls[0])
	c.cache.set(c.cacheKey("nacl", data.ID), data)
	c.cache.set(c.cacheKey("subnet-nacl", subnetID), data)
	return data, nil
}

// GetNACLForSubnet returns the network ACL associated with subnetID. Every
// subnet is associated with exactly one ACL, so a missing association is
// reported as not found.
func (c *Client) GetNACLForSubnet(ctx context.Context, subnetID string) (*domain.NACLData, error) {
	return cached(c.cache, c.cacheKey("subnet-nacl", subnetID), func() (*domain.NACLData, error) {
		nacl, err := c.describeNACLForSubnet(ctx, subnetID)
		if err != nil {
			return nil, err
		}
		if nacl == nil {
			return nil, &domain.NotFoundError{Kind: "network acl for subnet", ID: subnetID}
		}
		return nacl, nil
	})
}

func (c *Client) GetNACL(ctx context.Context, naclID string) (*domain.NACLData, error) {
	return cached(c.cache, c.cacheKey("nacl", naclID), func() (*domain.NACLData, error) {
		out, err := c.ec2Client.DescribeNetworkAcls(ctx, &ec2.DescribeNetworkAclsInput{
			NetworkAclIds: []string{naclID},
		})
		if err != nil {
			return nil, fmt.Errorf("describe network acl %s: %w", naclID, err)
		}
		if len(out.NetworkAcls) == 0 {
			return nil, &domain.NotFoundError{Kind: "network acl", ID: naclID}
		}
		return toNACLData(&out.NetworkAcls[0]), nil
	})
}

func (c *Client) findRouteTableForSubnet(ctx context.Context, subnetID, vpcID string) (string, error) {
	out, err := c.ec2Client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("association.subnet-id"), Values: []string{subnetID}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("describe route tables for subnet %s: %w", subnetID, err)
	}
	if len(out.RouteTables) > 0 {
		return derefString(out.RouteTables[0].RouteTableId), nil
	}

	mainOut, err := c.ec2Client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			{Name: aws.String("association.main"), Values: []string{"true"}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("describe main route table for vpc %s: %w", vpcID, err)
	}
	if len(mainOut.RouteTables) > 0 {
		return derefString(mainOut.RouteTables[0].RouteTableId), nil
	}
	return "", nil
}

func (c *Client) GetRouteTable(ctx context.Context, rtID string) (*domain.RouteTableData, error) {
	return cached(c.cache, c.cacheKey("rt", rtID), func() (*domain.RouteTableData, error) {
		out, err := c.ec2Client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
			RouteTableIds: []string{rtID},
		})
		if err != nil {
			return nil, fmt.Errorf("describe route table %s: %w", rtID, err)
		}
		if len(out.RouteTables) == 0 {
			return nil, &domain.NotFoundError{Kind: "route table", ID: rtID}
		}
		return toRouteTableData(&out.RouteTables[0]), nil
	})
}

func (c *Client) ListVPCEndpoints(ctx context.Context, vpcID string) ([]domain.VPCEndpointData, error) {
	return cached(c.cache, c.cacheKey("vpce", vpcID), func() ([]domain.VPCEndpointData, error) {
		paginator := ec2.NewDescribeVpcEndpointsPaginator(c.ec2Client, &ec2.DescribeVpcEndpointsInput{
			Filters: []ec2types.Filter{
				{Name: aws.String("vpc-id"), Values: []string{vpcID}},
			},
		})
		endpoints, err := CollectPages(
			ctx,
			paginator.HasMorePages,
			func(ctx context.Context) (*ec2.DescribeVpcEndpointsOutput, error) {
				return paginator.NextPage(ctx)
			},
			func(out *ec2.DescribeVpcEndpointsOutput) []ec2types.VpcEndpoint {
				return out.VpcEndpoints
			},
		)
		if err != nil {
			return nil, fmt.Errorf("describe vpc endpoints for vpc %s: %w", vpcID, err)
		}

		data := make([]domain.VPCEndpointData, 0, len(endpoints))
		for i := range endpoints {
			data = append(data, toVPCEndpointData(&endpoints[i]))
		}
		return data, nil
	})
}
