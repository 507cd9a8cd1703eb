// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes serverconf resolution as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/serverconf"
	"github.com/erraggy/serverconf/internal/config"
	"github.com/erraggy/serverconf/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `serverconf MCP server: resolves Liberty-style server.xml configurations.

Tools:
- resolve: discover every application declared by a server.xml, its <include> documents, and its configDropins overlays, and return the final variable table with per-variable provenance.
- substitute: expand ${name} placeholders in arbitrary strings against a server's resolved variables.
- explain_variable: list every tier that defines a variable, lowest precedence first.

Configuration: defaults come from SERVERCONF_* environment variables set in your MCP client config (for example SERVERCONF_CONFIG_DIR, SERVERCONF_RESOLVE_HTTP, SERVERCONF_MAX_INCLUDE_DEPTH). Remote includes are fetched with a client that refuses private and loopback addresses unless SERVERCONF_MCP_ALLOW_PRIVATE_IPS=true.`

// cfg is the active server configuration. Run replaces it with the loaded settings.
var cfg = config.Default()

// logger receives tool diagnostics. Run replaces it.
var logger logging.Logger = logging.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, settings *config.Settings, log logging.Logger) error {
	if settings != nil {
		cfg = *settings
	}
	logger = logging.OrNop(log)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "serverconf", Version: serverconf.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a server.xml configuration. Provide the root document as file (path on disk) or content (inline XML, with dir as its directory). Returns application locations, names, nameless locations, the final variable table with the tier each value came from, warnings for every skipped include or overlay file, and a fingerprint that is stable across identical runs. Use include_variables=false to omit the variable table for large servers.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "substitute",
		Description: "Expand ${name} placeholders in each of the given strings using the resolved variables of a server.xml. Unresolved placeholders are left as written and reported per string.",
	}, handleSubstitute)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain_variable",
		Description: "Explain where a variable's value comes from. Returns every precedence tier that defines the variable (server.env, bootstrap.properties, include, configDropins/defaults, server.xml, configDropins/overrides), lowest first; the last entry is the winning value.",
	}, handleExplain)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
