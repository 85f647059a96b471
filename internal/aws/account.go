package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/eleven-am/envcheck/internal/domain"
)

// LoadConfig resolves credentials and region the way the AWS CLI does. An
// empty profile or region falls back to the environment and shared config.
func LoadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	opts = append(opts, config.WithRetryer(newRetryer))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config for profile %q: %w", profile, err)
	}
	if cfg.Region == "" {
		return aws.Config{}, fmt.Errorf("no region configured for profile %q", profile)
	}
	return cfg, nil
}

func (c *Client) CallerIdentity(ctx context.Context) (*domain.Identity, error) {
	return cached(c.cache, c.cacheKey("identity"), func() (*domain.Identity, error) {
		out, err := c.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return nil, fmt.Errorf("get caller identity: %w", err)
		}
		return &domain.Identity{
			AccountID: derefString(out.Account),
			ARN:       derefString(out.Arn),
			UserID:    derefString(out.UserId),
		}, nil
	})
}
