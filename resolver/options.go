package resolver

import (
	"fmt"
	"maps"
	"net/http"

	"github.com/erraggy/serverconf/internal/options"
	"github.com/erraggy/serverconf/logging"
	"github.com/erraggy/serverconf/scerrors"
)

// Option is a function that configures a resolution run
type Option func(*resolveConfig) error

// resolveConfig holds configuration for a resolution run
type resolveConfig struct {
	// Input source (exactly one must be set)
	serverXML *string
	bytes     []byte
	bytesDir  string

	configDir           string
	serverEnvFile       string
	bootstrapFile       string
	bootstrapProperties map[string]string

	httpClient  *http.Client
	userAgent   string
	resolveHTTP bool
	logger      logging.Logger

	// Resource limits (0 means use default)
	maxIncludeDepth int
	maxFileSize     int64
}

// ResolveWithOptions resolves a server configuration using functional options.
//
// Example:
//
//	result, err := resolver.ResolveWithOptions(
//	    resolver.WithServerXML("wlp/usr/servers/defaultServer/server.xml"),
//	    resolver.WithConfigDir("src/main/liberty/config"),
//	)
func ResolveWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}

	r := &Resolver{
		ConfigDir:           cfg.configDir,
		ServerEnvFile:       cfg.serverEnvFile,
		BootstrapFile:       cfg.bootstrapFile,
		BootstrapProperties: cfg.bootstrapProperties,
		HTTPClient:          cfg.httpClient,
		UserAgent:           cfg.userAgent,
		DisableHTTP:         !cfg.resolveHTTP,
		MaxIncludeDepth:     cfg.maxIncludeDepth,
		MaxFileSize:         cfg.maxFileSize,
		Logger:              cfg.logger,
	}

	switch {
	case cfg.serverXML != nil:
		return r.Resolve(*cfg.serverXML)
	case cfg.bytes != nil:
		return r.ResolveBytes(cfg.bytes, cfg.bytesDir)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("resolver: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*resolveConfig, error) {
	cfg := &resolveConfig{
		resolveHTTP: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.SingleSource(
		options.Source{Name: "WithServerXML", Set: cfg.serverXML != nil},
		options.Source{Name: "WithServerXMLBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithServerXML specifies the path of the root server.xml
func WithServerXML(path string) Option {
	return func(cfg *resolveConfig) error {
		if path == "" {
			return &scerrors.ConfigError{Option: "WithServerXML", Value: path, Message: "path cannot be empty"}
		}
		cfg.serverXML = &path
		return nil
	}
}

// WithServerXMLBytes specifies an in-memory root document. dir stands in for the
// directory that would contain it and anchors relative includes and configDropins.
func WithServerXMLBytes(data []byte, dir string) Option {
	return func(cfg *resolveConfig) error {
		if data == nil {
			return &scerrors.ConfigError{Option: "WithServerXMLBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		cfg.bytesDir = dir
		return nil
	}
}

// WithConfigDir sets the configuration override directory, searched before the server
// directory for server.env, bootstrap.properties, relative includes, and configDropins.
func WithConfigDir(dir string) Option {
	return func(cfg *resolveConfig) error {
		cfg.configDir = dir
		return nil
	}
}

// WithServerEnvFile sets the fallback server.env used when the config directory has none.
// Default: server.env next to the root document
func WithServerEnvFile(path string) Option {
	return func(cfg *resolveConfig) error {
		cfg.serverEnvFile = path
		return nil
	}
}

// WithBootstrapFile sets the fallback bootstrap.properties.
// Default: bootstrap.properties next to the root document
func WithBootstrapFile(path string) Option {
	return func(cfg *resolveConfig) error {
		cfg.bootstrapFile = path
		return nil
	}
}

// WithBootstrapProperties supplies bootstrap properties directly. A non-empty map takes
// precedence over the fallback bootstrap file but not over one in the config directory.
func WithBootstrapProperties(props map[string]string) Option {
	return func(cfg *resolveConfig) error {
		cfg.bootstrapProperties = maps.Clone(props)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching remote includes.
// If the client is nil, this option has no effect (default client is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *resolveConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "serverconf/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *resolveConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithResolveHTTP enables or disables fetching http and https includes
// Default: true
func WithResolveHTTP(enabled bool) Option {
	return func(cfg *resolveConfig) error {
		cfg.resolveHTTP = enabled
		return nil
	}
}

// WithMaxIncludeDepth limits include nesting. Zero uses the default of 100.
func WithMaxIncludeDepth(depth int) Option {
	return func(cfg *resolveConfig) error {
		if depth < 0 {
			return &scerrors.ConfigError{Option: "WithMaxIncludeDepth", Value: depth, Message: "must not be negative"}
		}
		cfg.maxIncludeDepth = depth
		return nil
	}
}

// WithMaxFileSize limits the size of each configuration document read.
// Zero uses the default of 10MB.
func WithMaxFileSize(size int64) Option {
	return func(cfg *resolveConfig) error {
		if size < 0 {
			return &scerrors.ConfigError{Option: "WithMaxFileSize", Value: size, Message: "must not be negative"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithLogger sets a structured logger for the run.
// Default: no logging
func WithLogger(l logging.Logger) Option {
	return func(cfg *resolveConfig) error {
		cfg.logger = l
		return nil
	}
}
