// Package commands provides the serverconf CLI command tree.
package commands

import (
	"fmt"

	"github.com/erraggy/serverconf/internal/config"
	"github.com/erraggy/serverconf/logging"
	"github.com/spf13/cobra"
)

// app carries state shared by every command of one invocation.
type app struct {
	configFile string
	defines    []string
	output     string

	settings *config.Settings
	logger   *logging.ZapAdapter
}

// NewRootCommand builds the serverconf command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "serverconf",
		Short: "Resolve Liberty server.xml configurations",
		Long: `serverconf resolves a Liberty-style server.xml configuration.

It follows <include> elements and configDropins overlays, builds the final
variable table from server.env, bootstrap.properties, and <variable> elements,
and reports every deployed application location and name with ${name}
placeholders expanded.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "settings file (yaml, json, or toml)")
	pf.String("config-dir", "", "configuration directory searched before the server directory")
	pf.String("server-env", "", "server.env file used when the config directory has none")
	pf.String("bootstrap-file", "", "bootstrap.properties file used when the config directory has none")
	pf.StringArrayVarP(&a.defines, "define", "D", nil, "bootstrap property `key=value` (repeatable)")
	pf.Bool("no-http", false, "do not fetch http and https includes")
	pf.Int("max-depth", config.DefaultMaxIncludeDepth, "maximum include nesting depth")
	pf.Int64("max-file-size", config.DefaultMaxFileSize, "maximum size in bytes of a configuration document")
	pf.String("user-agent", "", "User-Agent header for remote includes")
	pf.String("format", config.FormatText, "output format: text, json, or yaml")
	pf.StringVarP(&a.output, "output", "o", "", "write output to a file instead of stdout")
	pf.String("log-level", "warn", "log level: debug, info, warn, or error")
	pf.String("log-encoding", "console", "log encoding: console or json")

	root.AddCommand(
		newResolveCommand(a),
		newAppsCommand(a),
		newVarsCommand(a),
		newSubstituteCommand(a),
		newMCPCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads settings and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	a.settings = settings

	zl, err := logging.NewZap(logging.Config{
		Level:    settings.Log.Level,
		Encoding: settings.Log.Encoding,
	})
	if err != nil {
		return fmt.Errorf("commands: %w", err)
	}
	a.logger = logging.NewZapAdapter(zl)
	return nil
}

func (a *app) teardown() {
	if a.logger != nil {
		// stderr cannot always be synced; nothing to report
		_ = a.logger.Sync()
	}
}
