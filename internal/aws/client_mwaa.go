package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mwaa"
	mwaatypes "github.com/aws/aws-sdk-go-v2/service/mwaa/types"

	"github.com/eleven-am/envcheck/internal/domain"
)

func (c *Client) GetEnvironment(ctx context.Context, name string) (*domain.EnvironmentData, error) {
	return cached(c.cache, c.cacheKey("env", name), func() (*domain.EnvironmentData, error) {
		out, err := c.mwaaClient.GetEnvironment(ctx, &mwaa.GetEnvironmentInput{
			Name: aws.String(name),
		})
		if err != nil {
			var notFound *mwaatypes.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return nil, &domain.NotFoundError{Kind: "environment", ID: name}
			}
			return nil, fmt.Errorf("get environment %s: %w", name, err)
		}
		if out.Environment == nil {
			return nil, &domain.NotFoundError{Kind: "environment", ID: name}
		}
		return toEnvironmentData(out.Environment), nil
	})
}
