package aws

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/ratelimit"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/mwaa"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type ec2API interface {
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeNetworkAcls(ctx context.Context, params *ec2.DescribeNetworkAclsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkAclsOutput, error)
	DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
	DescribeVpcEndpoints(ctx context.Context, params *ec2.DescribeVpcEndpointsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error)
}

type mwaaAPI interface {
	GetEnvironment(ctx context.Context, params *mwaa.GetEnvironmentInput, optFns ...func(*mwaa.Options)) (*mwaa.GetEnvironmentOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type Client struct {
	ec2Client  ec2API
	mwaaClient mwaaAPI
	stsClient  stsAPI
	region     string
	cache      *ttlCache
}

func newRetryer() aws.Retryer {
	return retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = 5
		o.MaxBackoff = 30 * time.Second
		o.Backoff = retry.NewExponentialJitterBackoff(o.MaxBackoff)
		o.RateLimiter = ratelimit.None
	})
}

func NewClient(cfg aws.Config) *Client {
	retryer := newRetryer()
	return &Client{
		ec2Client:  ec2.NewFromConfig(cfg, func(o *ec2.Options) { o.Retryer = retryer }),
		mwaaClient: mwaa.NewFromConfig(cfg, func(o *mwaa.Options) { o.Retryer = retryer }),
		stsClient:  sts.NewFromConfig(cfg, func(o *sts.Options) { o.Retryer = retryer }),
		region:     cfg.Region,
		cache:      newTTLCache(5*time.Minute, 2000),
	}
}

func (c *Client) Region() string {
	return c.region
}

func (c *Client) cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
