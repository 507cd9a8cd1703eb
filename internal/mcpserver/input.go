package mcpserver

import (
	"fmt"

	"github.com/erraggy/serverconf/internal/options"
	"github.com/erraggy/serverconf/resolver"
)

// serverInput represents the two ways a root server.xml can be provided to a tool.
// Exactly one of File or Content must be set.
type serverInput struct {
	File      string `json:"file,omitempty"       jsonschema:"Path to a server.xml on disk"`
	Content   string `json:"content,omitempty"    jsonschema:"Inline server.xml content"`
	Dir       string `json:"dir,omitempty"        jsonschema:"Directory that stands in for the location of inline content; anchors relative includes and configDropins"`
	ConfigDir string `json:"config_dir,omitempty" jsonschema:"Configuration override directory searched before the server directory"`

	BootstrapProperties map[string]string `json:"bootstrap_properties,omitempty" jsonschema:"Bootstrap properties used when the config directory has no bootstrap.properties"`
	ResolveHTTP         *bool             `json:"resolve_http,omitempty"         jsonschema:"Fetch http and https includes (default from SERVERCONF_RESOLVE_HTTP)"`
}

// resolve runs the resolver over whichever input was provided.
func (s serverInput) resolve() (*resolver.Result, error) {
	if err := options.SingleSource(
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	); err != nil {
		return nil, err
	}

	// Enforce inline content size limit.
	if s.Content != "" && cfg.MCP.MaxInlineSize > 0 && int64(len(s.Content)) > cfg.MCP.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SERVERCONF_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MCP.MaxInlineSize)
	}

	configDir := cfg.ConfigDir
	if s.ConfigDir != "" {
		configDir = s.ConfigDir
	}
	resolveHTTP := cfg.ResolveHTTP
	if s.ResolveHTTP != nil {
		resolveHTTP = *s.ResolveHTTP
	}

	opts := []resolver.Option{
		resolver.WithConfigDir(configDir),
		resolver.WithServerEnvFile(cfg.ServerEnv),
		resolver.WithBootstrapFile(cfg.BootstrapFile),
		resolver.WithBootstrapProperties(s.BootstrapProperties),
		resolver.WithResolveHTTP(resolveHTTP),
		resolver.WithMaxIncludeDepth(cfg.MaxIncludeDepth),
		resolver.WithMaxFileSize(cfg.MaxFileSize),
		resolver.WithLogger(logger),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, resolver.WithUserAgent(cfg.UserAgent))
	}
	// Inject SSRF-safe HTTP client for remote includes unless private IPs are allowed.
	if resolveHTTP && !cfg.MCP.AllowPrivateIPs {
		opts = append(opts, resolver.WithHTTPClient(newSafeHTTPClient()))
	}

	switch {
	case s.File != "":
		opts = append(opts, resolver.WithServerXML(s.File))
	default:
		opts = append(opts, resolver.WithServerXMLBytes([]byte(s.Content), s.Dir))
	}

	return resolver.ResolveWithOptions(opts...)
}
