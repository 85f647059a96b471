package main

import (
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/spf13/cobra"

	"github.com/eleven-am/envcheck/internal/acl"
	awsclient "github.com/eleven-am/envcheck/internal/aws"
	"github.com/eleven-am/envcheck/internal/domain"
)

type naclOptions struct {
	file      string
	direction string
	protocol  string
	port      int
	toPort    int
	address   string
	ipv6      bool

	query domain.ACLQuery
}

func newNACLCmd(root *rootOptions) *cobra.Command {
	opts := &naclOptions{}

	cmd := &cobra.Command{
		Use:   "nacl",
		Short: "Evaluate network ACL entries from a describe-network-acls dump",
		Long: `Evaluates network ACL entries saved from

  aws ec2 describe-network-acls --network-acl-ids acl-0123 > rules.json

without calling AWS. Prints the rule that admits the traffic, or exits 1
when the traffic is not confirmed allowed.`,
		Example: `  envcheck nacl --file rules.json --direction inbound --port 5432
  envcheck nacl --file rules.json --direction egress --port 1024 --to-port 65535 --address 10.0.4.7`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), root)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file with network ACL entries")
	cmd.Flags().StringVar(&opts.direction, "direction", string(domain.DirectionInbound), "inbound or outbound")
	cmd.Flags().StringVar(&opts.protocol, "protocol", acl.ProtocolTCP, "protocol name or number")
	cmd.Flags().IntVar(&opts.port, "port", 0, "port, or first port of the range")
	cmd.Flags().IntVar(&opts.toPort, "to-port", 0, "last port of the range (defaults to --port)")
	cmd.Flags().StringVar(&opts.address, "address", "", "source (inbound) or destination (outbound) address")
	cmd.Flags().BoolVar(&opts.ipv6, "ipv6", false, "without --address, ask about IPv6 traffic instead of IPv4")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func (o *naclOptions) resolve(cmd *cobra.Command) error {
	direction, err := domain.ParseDirection(o.direction)
	if err != nil {
		return usageError(err)
	}
	if !cmd.Flags().Changed("to-port") {
		o.toPort = o.port
	}

	o.query = domain.ACLQuery{
		Direction: direction,
		Protocol:  o.protocol,
		FromPort:  o.port,
		ToPort:    o.toPort,
	}
	if o.ipv6 {
		o.query.Family = domain.FamilyIPv6
	}
	if o.address != "" {
		addr, err := netip.ParseAddr(o.address)
		if err != nil {
			return usageError(fmt.Errorf("invalid address %q: %w", o.address, err))
		}
		o.query.Address = addr
	}
	if err := o.query.Validate(); err != nil {
		return usageError(err)
	}
	return nil
}

func (o *naclOptions) run(out io.Writer, root *rootOptions) error {
	data, err := os.ReadFile(o.file)
	if err != nil {
		return usageError(fmt.Errorf("read %s: %w", o.file, err))
	}
	rules, err := awsclient.ParseNACLEntries(data)
	if err != nil {
		return usageError(err)
	}
	root.logger.Debug("loaded network acl entries", "file", o.file, "count", len(rules))

	result := acl.Explain(rules, o.query)
	if root.verbose {
		for _, ev := range result.Evaluations {
			root.logger.Debug("rule", "number", ev.RuleNumber, "action", ev.Action, "cidr", ev.CIDRBlock, "reason", ev.Reason)
		}
	}

	if confirmation := acl.Format(result.Outcome, o.query); confirmation != "" {
		fmt.Fprintln(out, passStyle.Render(confirmation))
		return nil
	}
	fmt.Fprintln(out, failStyle.Render("not confirmed allowed"))
	return &ExitError{Code: ExitCheckFailed}
}
