package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/serverconf/scerrors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv clears every SERVERCONF_* variable Load reads to isolate tests from the ambient environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVERCONF_CONFIG_DIR", "SERVERCONF_SERVER_ENV", "SERVERCONF_BOOTSTRAP_FILE",
		"SERVERCONF_RESOLVE_HTTP", "SERVERCONF_MAX_INCLUDE_DEPTH", "SERVERCONF_MAX_FILE_SIZE",
		"SERVERCONF_USER_AGENT", "SERVERCONF_FORMAT",
		"SERVERCONF_LOG_LEVEL", "SERVERCONF_LOG_ENCODING",
		"SERVERCONF_MCP_ALLOW_PRIVATE_IPS", "SERVERCONF_MCP_MAX_INLINE_SIZE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config-dir", "", "")
	fs.String("format", "text", "")
	fs.Int("max-depth", 0, "")
	fs.Bool("no-http", false, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Default(), *s)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVERCONF_CONFIG_DIR", "/etc/liberty")
	t.Setenv("SERVERCONF_RESOLVE_HTTP", "false")
	t.Setenv("SERVERCONF_MAX_INCLUDE_DEPTH", "7")
	t.Setenv("SERVERCONF_FORMAT", "json")
	t.Setenv("SERVERCONF_LOG_LEVEL", "debug")
	t.Setenv("SERVERCONF_MCP_ALLOW_PRIVATE_IPS", "true")

	s, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/etc/liberty", s.ConfigDir)
	assert.False(t, s.ResolveHTTP)
	assert.Equal(t, 7, s.MaxIncludeDepth)
	assert.Equal(t, FormatJSON, s.Format)
	assert.Equal(t, "debug", s.Log.Level)
	assert.True(t, s.MCP.AllowPrivateIPs)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "serverconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nmax_include_depth: 12\nlog:\n  encoding: json\n"), 0o600))

	s, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, s.Format)
	assert.Equal(t, 12, s.MaxIncludeDepth)
	assert.Equal(t, "json", s.Log.Encoding)
	assert.Equal(t, "warn", s.Log.Level)

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("SERVERCONF_FORMAT", "json")
		s, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, s.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.ErrorIs(t, err, scerrors.ErrConfig)
	})
}

func TestLoad_Flags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVERCONF_FORMAT", "json")

	t.Run("unchanged flags keep lower layers", func(t *testing.T) {
		s, err := Load(LoadOptions{Flags: testFlags()})
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, s.Format)
		assert.True(t, s.ResolveHTTP)
		assert.Equal(t, DefaultMaxIncludeDepth, s.MaxIncludeDepth)
	})

	t.Run("changed flags win", func(t *testing.T) {
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--format", "yaml", "--config-dir", "cfg", "--max-depth", "3", "--no-http"}))

		s, err := Load(LoadOptions{Flags: fs})
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, s.Format)
		assert.Equal(t, "cfg", s.ConfigDir)
		assert.Equal(t, 3, s.MaxIncludeDepth)
		assert.False(t, s.ResolveHTTP)
	})
}

func TestValidate(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	s.Format = "xml"
	s.MaxIncludeDepth = -1
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, scerrors.ErrConfig)
	assert.Contains(t, err.Error(), "format")
	assert.Contains(t, err.Error(), "max_include_depth")
}
