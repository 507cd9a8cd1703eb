// Package config loads serverconf CLI and MCP settings.
//
// Settings are layered, lowest precedence first: built-in defaults, an optional config
// file (yaml, json, or toml), SERVERCONF_* environment variables, then command-line flags
// that were explicitly set. Nested keys map to environment variables with underscores,
// so log.level is read from SERVERCONF_LOG_LEVEL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/erraggy/serverconf/scerrors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of every environment variable read by Load
	EnvPrefix = "SERVERCONF"

	// DefaultMaxIncludeDepth mirrors the include walker's limit
	DefaultMaxIncludeDepth = 100
	// DefaultMaxFileSize mirrors the document loader's limit
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Settings holds every configurable value.
type Settings struct {
	ConfigDir       string `mapstructure:"config_dir"`
	ServerEnv       string `mapstructure:"server_env"`
	BootstrapFile   string `mapstructure:"bootstrap_file"`
	ResolveHTTP     bool   `mapstructure:"resolve_http"`
	MaxIncludeDepth int    `mapstructure:"max_include_depth"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
	UserAgent       string `mapstructure:"user_agent"`
	Format          string `mapstructure:"format"`

	Log LogSettings `mapstructure:"log"`
	MCP MCPSettings `mapstructure:"mcp"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// AllowPrivateIPs lets remote includes reach private and loopback addresses
	AllowPrivateIPs bool `mapstructure:"allow_private_ips"`
	// MaxInlineSize limits inline server.xml content passed to a tool
	MaxInlineSize int64 `mapstructure:"max_inline_size"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ResolveHTTP:     true,
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		MaxFileSize:     DefaultMaxFileSize,
		Format:          FormatText,
		Log: LogSettings{
			Level:    "warn",
			Encoding: "console",
		},
		MCP: MCPSettings{
			MaxInlineSize: DefaultMaxFileSize,
		},
	}
}

// flagKeys maps setting keys to the flag names that override them.
var flagKeys = map[string]string{
	"config_dir":        "config-dir",
	"server_env":        "server-env",
	"bootstrap_file":    "bootstrap-file",
	"max_include_depth": "max-depth",
	"max_file_size":     "max-file-size",
	"user_agent":        "user-agent",
	"format":            "format",
	"log.level":         "log-level",
	"log.encoding":      "log-encoding",
}

// LoadOptions controls Load.
type LoadOptions struct {
	// ConfigFile is an optional settings file; it must exist when set
	ConfigFile string
	// Flags, when set, overrides settings with every flag that was explicitly changed
	Flags *pflag.FlagSet
}

// Load resolves settings from defaults, the config file, the environment, and flags.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("config_dir", d.ConfigDir)
	v.SetDefault("server_env", d.ServerEnv)
	v.SetDefault("bootstrap_file", d.BootstrapFile)
	v.SetDefault("resolve_http", d.ResolveHTTP)
	v.SetDefault("max_include_depth", d.MaxIncludeDepth)
	v.SetDefault("max_file_size", d.MaxFileSize)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("format", d.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("mcp.allow_private_ips", d.MCP.AllowPrivateIPs)
	v.SetDefault("mcp.max_inline_size", d.MCP.MaxInlineSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, &scerrors.ConfigError{Option: "config", Value: opts.ConfigFile, Message: "config file not found", Cause: err}
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &scerrors.ConfigError{Option: "config", Value: opts.ConfigFile, Message: "failed to read config file", Cause: err}
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: failed to bind flag %s: %w", name, err)
		}
	}
	// --no-http inverts resolve_http
	if f := fs.Lookup("no-http"); f != nil && f.Changed {
		v.Set("resolve_http", f.Value.String() != "true")
	}
	return nil
}

// Validate reports every invalid setting.
func (s *Settings) Validate() error {
	var errs []error
	if !slices.Contains(Formats, s.Format) {
		errs = append(errs, &scerrors.ConfigError{
			Option:  "format",
			Value:   s.Format,
			Message: fmt.Sprintf("must be one of %s", strings.Join(Formats, ", ")),
		})
	}
	if s.MaxIncludeDepth < 0 {
		errs = append(errs, &scerrors.ConfigError{Option: "max_include_depth", Value: s.MaxIncludeDepth, Message: "must not be negative"})
	}
	if s.MaxFileSize < 0 {
		errs = append(errs, &scerrors.ConfigError{Option: "max_file_size", Value: s.MaxFileSize, Message: "must not be negative"})
	}
	if s.MCP.MaxInlineSize < 0 {
		errs = append(errs, &scerrors.ConfigError{Option: "mcp.max_inline_size", Value: s.MCP.MaxInlineSize, Message: "must not be negative"})
	}
	return errors.Join(errs...)
}
