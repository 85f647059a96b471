package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/envcheck/internal/validate"
)

var (
	// Version is set via -ldflags.
	Version = "dev"
	Commit  = "unknown"
)

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and linked AWS SDK information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "envcheck %s\n", versionString())

			sdk, ok := validate.RunningSDKVersion()
			switch {
			case !ok:
				fmt.Fprintln(out, warnStyle.Render("aws-sdk-go-v2 version unavailable"))
			case validate.SDKVersion(sdk):
				fmt.Fprintf(out, "aws-sdk-go-v2 %s %s\n", sdk, passStyle.Render("ok"))
			default:
				fmt.Fprintf(out, "aws-sdk-go-v2 %s %s\n", sdk,
					failStyle.Render(fmt.Sprintf("older than %s", validate.MinimumSDKVersion)))
			}
			return nil
		},
	}
}
