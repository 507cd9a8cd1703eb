package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erraggy/serverconf/internal/config"
	"github.com/erraggy/serverconf/internal/testutil"
	"github.com/erraggy/serverconf/variables"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeServer(t *testing.T) *testutil.Layout {
	t.Helper()
	l := testutil.NewLayout(t)
	l.WriteServerXML(testutil.ServerXML(
		testutil.Variable("appDir", "apps"),
		testutil.Include("extra.xml"),
		testutil.Application("${appDir}/shop.war", "shop"),
		testutil.WebApplication("${appDir}/admin.war", ""),
	))
	l.WriteServerFile("extra.xml", testutil.ServerXML(testutil.Variable("port", "9080")))
	l.WriteConfigFile("server.env", "appDir=env-apps\nhost=localhost\n")
	return l
}

func TestResolveTool_File(t *testing.T) {
	withConfig(t, nil)
	l := writeServer(t)

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Server: serverInput{File: l.ServerXMLPath(), ConfigDir: l.ConfigDir},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"apps/admin.war", "apps/shop.war"}, output.Locations)
	assert.Equal(t, []string{"shop"}, output.Names)
	assert.Equal(t, []string{"apps/admin.war"}, output.NamelessLocations)
	assert.Equal(t, "apps", output.Variables["appDir"])
	assert.Equal(t, variables.TierServerXML, output.Provenance["appDir"])
	assert.Equal(t, variables.TierServerEnv, output.Provenance["host"])
	assert.Equal(t, variables.TierInclude, output.Provenance["port"])
	assert.Len(t, output.Fingerprint, 64)
}

func TestResolveTool_ConfigDirFromSettings(t *testing.T) {
	l := writeServer(t)
	withConfig(t, func(s *config.Settings) { s.ConfigDir = l.ConfigDir })

	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Server: serverInput{File: l.ServerXMLPath()},
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost", output.Variables["host"])
}

func TestResolveTool_ContentWithoutVariables(t *testing.T) {
	withConfig(t, nil)
	l := writeServer(t)

	noVars := false
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
		Server: serverInput{
			Content: testutil.ServerXML(testutil.Include("extra.xml"), testutil.Application("${port}.war", "")),
			Dir:     l.ServerDir,
		},
		IncludeVariables: &noVars,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"9080.war"}, output.Locations)
	assert.Nil(t, output.Variables)
	assert.Nil(t, output.Provenance)
}

func TestResolveTool_InputErrors(t *testing.T) {
	withConfig(t, func(s *config.Settings) { s.MCP.MaxInlineSize = 16 })

	tests := []struct {
		name  string
		input serverInput
		want  string
	}{
		{name: "none", input: serverInput{}, want: "exactly one of file or content"},
		{name: "both", input: serverInput{File: "a.xml", Content: "<server/>"}, want: "exactly one of file or content"},
		{name: "too large", input: serverInput{Content: strings.Repeat("x", 32)}, want: "exceeds maximum 16 bytes"},
		{name: "missing file", input: serverInput{File: "/tmp/serverconf-missing/server.xml"}, want: "failed to load <path>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{Server: tt.input})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text := result.Content[0].(*mcp.TextContent).Text
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestResolveTool_BlocksLoopbackIncludes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, testutil.ServerXML(testutil.Application("remote.war", "")))
	}))
	defer server.Close()

	l := testutil.NewLayout(t)
	l.WriteServerXML(testutil.ServerXML(testutil.Include(server.URL + "/remote.xml")))

	t.Run("blocked by default", func(t *testing.T) {
		withConfig(t, nil)
		_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
			Server: serverInput{File: l.ServerXMLPath()},
		})
		require.NoError(t, err)
		assert.Empty(t, output.Locations)
		require.Len(t, output.Warnings, 1)
		assert.Contains(t, output.Warnings[0], "blocked include")
	})

	t.Run("allowed when configured", func(t *testing.T) {
		withConfig(t, func(s *config.Settings) { s.MCP.AllowPrivateIPs = true })
		_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, resolveInput{
			Server: serverInput{File: l.ServerXMLPath()},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"remote.war"}, output.Locations)
	})
}

func TestSubstituteTool(t *testing.T) {
	withConfig(t, nil)
	l := writeServer(t)

	_, output, err := handleSubstitute(context.Background(), &mcp.CallToolRequest{}, substituteInput{
		Server: serverInput{File: l.ServerXMLPath()},
		Text:   []string{"${appDir}/x.war", "http://${host}:${port}/", "plain"},
	})
	require.NoError(t, err)
	require.Len(t, output.Results, 3)

	assert.Equal(t, "apps/x.war", output.Results[0].Output)
	assert.Empty(t, output.Results[0].Unresolved)
	assert.Equal(t, "http://${host}:9080/", output.Results[1].Output, "host only exists in the config dir server.env")
	assert.Equal(t, []string{"host"}, output.Results[1].Unresolved)
	assert.Equal(t, "plain", output.Results[2].Output)
}

func TestExplainTool(t *testing.T) {
	withConfig(t, nil)
	l := writeServer(t)

	_, output, err := handleExplain(context.Background(), &mcp.CallToolRequest{}, explainInput{
		Server: serverInput{File: l.ServerXMLPath(), ConfigDir: l.ConfigDir},
		Name:   "appDir",
	})
	require.NoError(t, err)

	assert.True(t, output.Defined)
	assert.Equal(t, "apps", output.Value)
	assert.Equal(t, variables.TierServerXML, output.Tier)
	assert.Equal(t, []variables.Definition{
		{Tier: variables.TierServerEnv, Value: "env-apps"},
		{Tier: variables.TierServerXML, Value: "apps"},
	}, output.Definitions)

	t.Run("undefined", func(t *testing.T) {
		_, output, err := handleExplain(context.Background(), &mcp.CallToolRequest{}, explainInput{
			Server: serverInput{File: l.ServerXMLPath()},
			Name:   "nope",
		})
		require.NoError(t, err)
		assert.False(t, output.Defined)
		assert.Empty(t, output.Definitions)
	})
}
