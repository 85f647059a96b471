package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/eleven-am/envcheck/internal/components"
	"github.com/eleven-am/envcheck/internal/domain"
	"github.com/eleven-am/envcheck/internal/validate"
)

const (
	CheckSDKVersion  = "sdk-version"
	CheckEnvironment = "environment"
)

const maxConcurrentSubnets = 10

type Options struct {
	Environment string
	Ports       []int
	MinFreeIPs  int
	WarnFreeIPs int
	Logger      *log.Logger
}

func (o Options) withDefaults() Options {
	if len(o.Ports) == 0 {
		o.Ports = components.DefaultRequiredPorts
	}
	if o.MinFreeIPs <= 0 {
		o.MinFreeIPs = 5
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Run performs every pre-flight check for one environment. A failed check is
// recorded in the report; only collaborator errors abort the run.
func Run(ctx context.Context, client domain.AWSClient, opts Options) (*domain.Report, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	report := &domain.Report{
		Environment: opts.Environment,
		Region:      client.Region(),
	}
	report.Add(checkSDKVersion())

	identity, err := client.CallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve caller identity: %w", err)
	}
	report.AccountID = identity.AccountID
	logger.Debug("resolved caller identity", "account", identity.AccountID, "arn", identity.ARN)

	env, err := client.GetEnvironment(ctx, opts.Environment)
	if err != nil {
		return nil, fmt.Errorf("get environment %s: %w", opts.Environment, err)
	}
	logger.Info("checking environment", "name", env.Name, "status", env.Status, "access", env.WebserverAccessMode)
	report.Add(domain.Pass(CheckEnvironment, env.Name,
		fmt.Sprintf("status %s, airflow %s, webserver %s", env.Status, env.AirflowVersion, env.WebserverAccessMode)))

	subnets, err := fetchSubnets(ctx, client, env.SubnetIDs)
	if err != nil {
		return nil, err
	}
	report.Add(components.NewSubnets(subnets, opts.MinFreeIPs, opts.WarnFreeIPs).Check()...)

	results, err := checkSubnetPaths(ctx, client, subnets, opts.Ports, env.IsPrivate(), logger)
	if err != nil {
		return nil, err
	}
	report.Add(results...)

	if env.IsPrivate() && len(subnets) > 0 {
		vpcID := subnets[0].VPCID
		endpoints, err := client.ListVPCEndpoints(ctx, vpcID)
		if err != nil {
			return nil, fmt.Errorf("list vpc endpoints for %s: %w", vpcID, err)
		}
		logger.Debug("found vpc endpoints", "vpc", vpcID, "count", len(endpoints))
		report.Add(components.NewVPCEndpoints(vpcID, client.Region(), endpoints).Check()...)
	}

	report.Sort()
	logger.Info("checks complete",
		"pass", report.Count(domain.StatusPass),
		"warn", report.Count(domain.StatusWarn),
		"fail", report.Count(domain.StatusFail))
	return report, nil
}

func checkSDKVersion() domain.CheckResult {
	version, ok := validate.RunningSDKVersion()
	if !ok {
		return domain.Warn(CheckSDKVersion, "aws-sdk-go-v2", "build info unavailable; SDK version not checked")
	}
	if !validate.SDKVersion(version) {
		return domain.Fail(CheckSDKVersion, "aws-sdk-go-v2",
			fmt.Sprintf("%s is older than the minimum %s", version, validate.MinimumSDKVersion))
	}
	return domain.Pass(CheckSDKVersion, "aws-sdk-go-v2", version)
}

func fetchSubnets(ctx context.Context, client domain.AWSClient, ids []string) ([]*domain.SubnetData, error) {
	subnets := make([]*domain.SubnetData, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSubnets)

	for i, id := range ids {
		g.Go(func() error {
			subnet, err := client.GetSubnet(gCtx, id)
			if err != nil {
				return fmt.Errorf("get subnet %s: %w", id, err)
			}
			subnets[i] = subnet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return subnets, nil
}

func checkSubnetPaths(ctx context.Context, client domain.AWSClient, subnets []*domain.SubnetData, ports []int, private bool, logger *log.Logger) ([]domain.CheckResult, error) {
	var (
		mu      sync.Mutex
		results []domain.CheckResult
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSubnets)

	for _, subnet := range subnets {
		g.Go(func() error {
			naclResults, err := checkNACL(gCtx, client, subnet, ports)
			if err != nil {
				return err
			}

			var routeResult domain.CheckResult
			if subnet.RouteTableID == "" {
				routeResult = domain.Fail(components.CheckRouteTable, subnet.ID, "no route table associated")
			} else {
				rt, err := client.GetRouteTable(gCtx, subnet.RouteTableID)
				if err != nil {
					return fmt.Errorf("get route table %s: %w", subnet.RouteTableID, err)
				}
				routeResult = components.NewRouteTable(rt, subnet.ID).CheckInternetAccess(private)
			}
			logger.Debug("checked subnet", "subnet", subnet.ID, "nacl", subnet.NaclID, "route_table", subnet.RouteTableID)

			mu.Lock()
			results = append(results, naclResults...)
			results = append(results, routeResult)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkNACL uses the ACL already resolved by GetSubnet when there is one. A
// subnet with no associated ACL fails every port rather than aborting.
func checkNACL(ctx context.Context, client domain.AWSClient, subnet *domain.SubnetData, ports []int) ([]domain.CheckResult, error) {
	var (
		nacl *domain.NACLData
		err  error
	)
	if subnet.NaclID != "" {
		nacl, err = client.GetNACL(ctx, subnet.NaclID)
	} else {
		nacl, err = client.GetNACLForSubnet(ctx, subnet.ID)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.CheckResult{
			domain.Fail(components.CheckNACL, subnet.ID, "no network ACL associated"),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get network acl for subnet %s: %w", subnet.ID, err)
	}
	return components.NewNACL(nacl, subnet.ID).CheckPorts(ports), nil
}
