package commands

import (
	"github.com/erraggy/serverconf/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve resolution tools over the Model Context Protocol (stdio)",
		Long: `Start an MCP server on stdin/stdout exposing the resolve, substitute, and
explain_variable tools. Settings come from the same flags, config file, and
SERVERCONF_* environment variables as the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Info("starting MCP server")
			return mcpserver.Run(cmd.Context(), a.settings, a.logger)
		},
	}
}
