package commands

import (
	"github.com/erraggy/serverconf"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			Writef(cmd.OutOrStdout(), "serverconf v%s\n%s", serverconf.Version(), serverconf.BuildInfo())
			return nil
		},
	}
}
