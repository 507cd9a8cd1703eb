package mcpserver

import (
	"context"

	"github.com/erraggy/serverconf/resolver"
	"github.com/erraggy/serverconf/variables"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveInput struct {
	Server           serverInput `json:"server"                      jsonschema:"The server.xml to resolve"`
	IncludeVariables *bool       `json:"include_variables,omitempty" jsonschema:"Include the variable table and provenance (default true)"`
}

type resolveOutput struct {
	Locations         []string          `json:"locations"`
	Names             []string          `json:"names"`
	NamelessLocations []string          `json:"nameless_locations"`
	Variables         map[string]string `json:"variables,omitempty"`
	Provenance        map[string]string `json:"provenance,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Stats             resolver.Stats    `json:"stats"`
	Fingerprint       string            `json:"fingerprint"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	result, err := input.Server.resolve()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	output := resolveOutput{
		Locations:         result.Locations,
		Names:             result.Names,
		NamelessLocations: result.NamelessLocations,
		Stats:             result.Stats,
		Fingerprint:       result.Fingerprint(),
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, pathPattern.ReplaceAllString(w, "<path>"))
	}
	if input.IncludeVariables == nil || *input.IncludeVariables {
		output.Variables = result.Variables
		output.Provenance = result.Provenance
	}
	return nil, output, nil
}

type substituteInput struct {
	Server serverInput `json:"server" jsonschema:"The server.xml whose variables are used"`
	Text   []string    `json:"text"   jsonschema:"Strings containing ${name} placeholders"`
}

type substitution struct {
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Unresolved []string `json:"unresolved,omitempty"`
}

type substituteOutput struct {
	Results []substitution `json:"results"`
}

func handleSubstitute(_ context.Context, _ *mcp.CallToolRequest, input substituteInput) (*mcp.CallToolResult, substituteOutput, error) {
	result, err := input.Server.resolve()
	if err != nil {
		return errResult(err), substituteOutput{}, nil
	}

	lookup := variables.MapLookup(result.Variables)
	output := substituteOutput{Results: make([]substitution, 0, len(input.Text))}
	for _, text := range input.Text {
		output.Results = append(output.Results, substitution{
			Input:      text,
			Output:     result.Substitute(text),
			Unresolved: variables.Unresolved(text, lookup),
		})
	}
	return nil, output, nil
}

type explainInput struct {
	Server serverInput `json:"server" jsonschema:"The server.xml whose variables are explained"`
	Name   string      `json:"name"   jsonschema:"Variable name"`
}

type explainOutput struct {
	Name        string                 `json:"name"`
	Value       string                 `json:"value,omitempty"`
	Defined     bool                   `json:"defined"`
	Tier        string                 `json:"tier,omitempty"`
	Definitions []variables.Definition `json:"definitions,omitempty"`
}

func handleExplain(_ context.Context, _ *mcp.CallToolRequest, input explainInput) (*mcp.CallToolResult, explainOutput, error) {
	result, err := input.Server.resolve()
	if err != nil {
		return errResult(err), explainOutput{}, nil
	}

	output := explainOutput{Name: input.Name}
	output.Value, output.Defined = result.Variables[input.Name]
	output.Tier = result.Provenance[input.Name]
	output.Definitions = result.Explain(input.Name)
	return nil, output, nil
}
