package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eleven-am/envcheck/internal/analyzer"
	awsclient "github.com/eleven-am/envcheck/internal/aws"
	"github.com/eleven-am/envcheck/internal/domain"
	"github.com/eleven-am/envcheck/internal/validate"
)

type verifyOptions struct {
	envName    string
	region     string
	profile    string
	ports      []int
	minFreeIPs int
}

func newVerifyCmd(root *rootOptions) *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the network configuration of an environment",
		Example: `  envcheck verify --envname prod
  envcheck verify --envname prod --region eu-west-1 --profile ops --port 5432 --port 443`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd, root)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), cmd.OutOrStdout(), root)
		},
	}

	cmd.Flags().StringVar(&opts.envName, "envname", "", "environment name")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region (defaults to the profile's region)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "AWS shared config profile")
	cmd.Flags().IntSliceVar(&opts.ports, "port", nil, "TCP port that must be open (repeatable)")
	cmd.Flags().IntVar(&opts.minFreeIPs, "min-free-ips", 0, "minimum free addresses per subnet")
	_ = cmd.MarkFlagRequired("envname")
	return cmd
}

// resolve layers flags over the loaded configuration and validates the result.
func (o *verifyOptions) resolve(cmd *cobra.Command, root *rootOptions) error {
	cfg := root.cfg
	if !cmd.Flags().Changed("region") {
		o.region = cfg.Region
	}
	if !cmd.Flags().Changed("profile") {
		o.profile = cfg.Profile
	}
	if !cmd.Flags().Changed("port") {
		o.ports = cfg.Ports
	}
	if !cmd.Flags().Changed("min-free-ips") {
		o.minFreeIPs = cfg.MinFreeIPs
	}

	if _, err := validate.EnvironmentName(o.envName); err != nil {
		return usageError(err)
	}
	if o.region != "" {
		if _, err := validate.Region(o.region); err != nil {
			return usageError(err)
		}
	}
	if o.profile != "" {
		if _, err := validate.ProfileName(o.profile); err != nil {
			return usageError(err)
		}
	}
	for _, port := range o.ports {
		if err := validate.Port(port); err != nil {
			return usageError(err)
		}
	}
	return nil
}

func (o *verifyOptions) run(ctx context.Context, out io.Writer, root *rootOptions) error {
	ctx, cancel := context.WithTimeout(ctx, root.cfg.Timeout)
	defer cancel()

	awsCfg, err := awsclient.LoadConfig(ctx, o.profile, o.region)
	if err != nil {
		return usageError(err)
	}
	client := awsclient.NewClient(awsCfg)

	report, err := analyzer.Run(ctx, client, analyzer.Options{
		Environment: o.envName,
		Ports:       o.ports,
		MinFreeIPs:  o.minFreeIPs,
		WarnFreeIPs: root.cfg.WarnFreeIPs,
		Logger:      root.logger,
	})
	if err != nil {
		return err
	}

	printReport(out, report)
	if !report.Passed() {
		return &ExitError{
			Code: ExitCheckFailed,
			Err:  fmt.Errorf("%d of %d checks failed", report.Count(domain.StatusFail), len(report.Results)),
		}
	}
	return nil
}

func printReport(out io.Writer, report *domain.Report) {
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Environment"), report.Environment)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("account %s, region %s", report.AccountID, report.Region)))
	fmt.Fprintln(out)

	for _, r := range report.Results {
		fmt.Fprintf(out, "%s %s %s %s\n",
			statusBadge(r.Status),
			checkNameStyle.Render(r.Name),
			mutedStyle.Render(r.Resource),
			r.Message)
	}

	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d passed, %d warnings, %d failed",
		report.Count(domain.StatusPass), report.Count(domain.StatusWarn), report.Count(domain.StatusFail))
	if report.Passed() {
		fmt.Fprintln(out, passStyle.Render(summary))
	} else {
		fmt.Fprintln(out, failStyle.Render(summary))
	}
}
