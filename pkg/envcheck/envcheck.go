package envcheck

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/log"

	"github.com/eleven-am/envcheck/internal/analyzer"
	internalaws "github.com/eleven-am/envcheck/internal/aws"
	"github.com/eleven-am/envcheck/internal/domain"
	"github.com/eleven-am/envcheck/internal/validate"
)

type Options struct {
	// Ports defaults to 5432 and 443.
	Ports       []int
	MinFreeIPs  int
	WarnFreeIPs int
	Logger      *log.Logger
}

// LoadConfig resolves AWS credentials and region for profile. Empty values
// fall back to the environment and shared config files.
func LoadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	return internalaws.LoadConfig(ctx, profile, region)
}

// Verify runs every pre-flight network check for the named environment.
// Failed checks are reported in the returned Report; the error is non-nil
// only when an AWS lookup fails.
func Verify(ctx context.Context, cfg aws.Config, envName string, opts Options) (*domain.Report, error) {
	if _, err := validate.EnvironmentName(envName); err != nil {
		return nil, err
	}
	if _, err := validate.Region(cfg.Region); err != nil {
		return nil, err
	}

	report, err := analyzer.Run(ctx, internalaws.NewClient(cfg), analyzer.Options{
		Environment: envName,
		Ports:       opts.Ports,
		MinFreeIPs:  opts.MinFreeIPs,
		WarnFreeIPs: opts.WarnFreeIPs,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", envName, err)
	}
	return report, nil
}

// ParseNACLEntries reads network ACL entries from describe-network-acls JSON.
func ParseNACLEntries(data []byte) ([]domain.ACLRule, error) {
	return internalaws.ParseNACLEntries(data)
}
