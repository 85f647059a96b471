package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eleven-am/envcheck/internal/config"
)

type rootOptions struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "envcheck",
		Short: "Pre-flight network checks for managed Airflow environments",
		Long: titleStyle.Render("envcheck") + mutedStyle.Render(" - pre-flight network checks") + `

envcheck inspects the VPC an environment runs in and reports whether the
subnets, network ACLs, route tables and VPC endpoints let it reach the
services it depends on.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newNACLCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (o *rootOptions) init(errOut io.Writer) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return usageError(err)
	}
	o.cfg = cfg
	if cfg.Verbose {
		o.verbose = true
	}
	o.logger = newLogger(errOut, o.verbose)
	return nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "envcheck",
		Level:  level,
	})
}
