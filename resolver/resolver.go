package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"net/http"
	"os"
	"path/filepath"

	"github.com/erraggy/serverconf/application"
	"github.com/erraggy/serverconf/document"
	"github.com/erraggy/serverconf/dropins"
	"github.com/erraggy/serverconf/include"
	"github.com/erraggy/serverconf/logging"
	"github.com/erraggy/serverconf/scerrors"
	"github.com/erraggy/serverconf/variables"
	"github.com/google/uuid"
)

const (
	// ServerEnvFile is the environment-level property file name
	ServerEnvFile = "server.env"
	// BootstrapFile is the bootstrap-level property file name
	BootstrapFile = "bootstrap.properties"
	// GeneratedAppsFile is written by deployment tooling; its applications are not collected
	GeneratedAppsFile = "install_apps_configuration_1491924271.xml"
)

// Resolver resolves server configurations.
// A Resolver may be reused for sequential runs but must not be used concurrently.
type Resolver struct {
	// ConfigDir is the configuration override directory. Property files, relative
	// includes, and configDropins are looked up here before the server directory.
	ConfigDir string
	// ServerEnvFile is the server.env used when ConfigDir has none.
	// Default: server.env next to the root document
	ServerEnvFile string
	// BootstrapFile is the bootstrap.properties used when ConfigDir has none and
	// BootstrapProperties is empty. Default: bootstrap.properties next to the root document
	BootstrapFile string
	// BootstrapProperties replaces BootstrapFile when non-empty
	BootstrapProperties map[string]string

	// HTTPClient fetches remote includes. Default: a client with a 30 second timeout
	HTTPClient *http.Client
	// UserAgent is sent with remote include fetches. Default: serverconf/<version>
	UserAgent string
	// DisableHTTP skips remote includes
	DisableHTTP bool
	// MaxIncludeDepth limits include nesting. Default: 100
	MaxIncludeDepth int
	// MaxFileSize limits each document. Default: 10MB
	MaxFileSize int64
	// Logger receives structured logs. Default: logging.NopLogger
	Logger logging.Logger
}

// New creates a Resolver with default settings.
func New() *Resolver {
	return &Resolver{}
}

// Resolve resolves the server configuration rooted at the server.xml at path.
// The server directory is the lexical parent of path, even when path is a symlink.
func (r *Resolver) Resolve(path string) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	root, err := document.Loader{MaxFileSize: r.MaxFileSize}.LoadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("resolver: failed to load %s: %w", path, err)
	}
	return r.resolve(root, include.Canonical(abs), filepath.Dir(abs))
}

// ResolveBytes resolves an in-memory root document. serverDir stands in for the directory
// containing the document.
func (r *Resolver) ResolveBytes(data []byte, serverDir string) (*Result, error) {
	dir, err := filepath.Abs(serverDir)
	if err != nil {
		dir = filepath.Clean(serverDir)
	}
	location := filepath.Join(dir, "server.xml")
	root, err := document.Loader{MaxFileSize: r.MaxFileSize}.LoadBytes(data, location)
	if err != nil {
		return nil, fmt.Errorf("resolver: failed to load root document: %w", err)
	}
	return r.resolve(root, location, dir)
}

// run holds the state of one resolution.
type run struct {
	r         *Resolver
	log       logging.Logger
	serverDir string
	configDir string

	includes *include.Resolver
	walker   *include.Walker
	scanner  *dropins.Scanner
	warnings []string
}

func (r *Resolver) resolve(root *document.Document, location, serverDir string) (*Result, error) {
	runID := uuid.New().String()
	log := logging.OrNop(r.Logger).With("run", runID)

	configDir := ""
	if r.ConfigDir != "" {
		configDir = include.Canonical(r.ConfigDir)
	}

	includes := &include.Resolver{
		ConfigDir:   configDir,
		ServerDir:   serverDir,
		HTTPClient:  r.HTTPClient,
		UserAgent:   r.UserAgent,
		DisableHTTP: r.DisableHTTP,
		MaxFileSize: r.MaxFileSize,
		Logger:      log,
	}
	walker := include.NewWalker(includes)
	walker.MaxDepth = r.MaxIncludeDepth

	ru := &run{
		r:         r,
		log:       log,
		serverDir: serverDir,
		configDir: configDir,
		includes:  includes,
		walker:    walker,
		scanner:   &dropins.Scanner{MaxFileSize: r.MaxFileSize, Logger: log},
	}
	log.Info("resolving server configuration", "serverXml", location, "configDir", configDir)

	tiers, err := ru.tiers(root, location)
	if err != nil {
		return nil, err
	}
	table := variables.Fold(tiers...)
	// the application pass walks the same graph again; report the first pass only
	ws, ds := walker.Stats(), ru.scanner.Stats()

	collector := ru.collect(root, location, table)

	result := &Result{
		ServerXML:         location,
		ConfigDir:         configDir,
		ServerDir:         serverDir,
		Locations:         collector.Locations.Sorted(),
		Names:             collector.Names.Sorted(),
		NamelessLocations: collector.NamelessLocations.Sorted(),
		Variables:         table.Map(),
		Provenance:        table.Provenance(),
		Warnings:          ru.allWarnings(),
		RunID:             runID,
		table:             table,
	}
	result.Stats = Stats{
		DocumentsLoaded:     1 + includes.Loaded() + ds.Loaded,
		IncludesResolved:    ws.Resolved,
		IncludesSkipped:     ws.Skipped,
		IncludesRevisited:   ws.Revisited,
		DropinsLoaded:       ds.Loaded,
		DropinsSkipped:      ds.Skipped,
		DropinsFailed:       ds.Failed,
		ApplicationsSkipped: collector.Skipped,
	}

	log.Info("resolved server configuration",
		"locations", len(result.Locations),
		"variables", len(result.Variables),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// tiers builds the six variable tiers, lowest precedence first.
func (ru *run) tiers(root *document.Document, location string) ([]variables.Tier, error) {
	env, err := ru.serverEnv()
	if err != nil {
		return nil, err
	}
	boot, err := ru.bootstrap()
	if err != nil {
		return nil, err
	}

	inc := map[string]string{}
	ru.walker.Walk(root, location, func(doc *document.Document) {
		maps.Copy(inc, doc.VariableMap())
	})

	return []variables.Tier{
		{Name: variables.TierServerEnv, Values: env},
		{Name: variables.TierBootstrap, Values: boot},
		{Name: variables.TierInclude, Values: inc},
		{Name: variables.TierDropinsDefaults, Values: ru.dropinVariables(dropins.Defaults)},
		{Name: variables.TierServerXML, Values: root.VariableMap()},
		{Name: variables.TierDropinsOverrides, Values: ru.dropinVariables(dropins.Overrides)},
	}, nil
}

func (ru *run) serverEnv() (map[string]string, error) {
	if path, ok := ru.inConfigDir(ServerEnvFile); ok {
		return ru.requiredProperties(path)
	}
	if ru.r.ServerEnvFile != "" {
		return ru.optionalProperties(ru.r.ServerEnvFile, true)
	}
	return ru.optionalProperties(filepath.Join(ru.serverDir, ServerEnvFile), false)
}

func (ru *run) bootstrap() (map[string]string, error) {
	if path, ok := ru.inConfigDir(BootstrapFile); ok {
		return ru.requiredProperties(path)
	}
	if len(ru.r.BootstrapProperties) > 0 {
		return maps.Clone(ru.r.BootstrapProperties), nil
	}
	if ru.r.BootstrapFile != "" {
		return ru.optionalProperties(ru.r.BootstrapFile, true)
	}
	return ru.optionalProperties(filepath.Join(ru.serverDir, BootstrapFile), false)
}

func (ru *run) inConfigDir(name string) (string, bool) {
	if ru.configDir == "" {
		return "", false
	}
	path := filepath.Join(ru.configDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", false
	}
	// any other stat failure surfaces when the file is loaded
	return path, true
}

// requiredProperties loads a property file that is known to exist; any failure aborts the run.
func (ru *run) requiredProperties(path string) (map[string]string, error) {
	m, err := variables.LoadPropertiesFile(path)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	ru.log.Debug("loaded property file", "path", path, "count", len(m))
	return m, nil
}

// optionalProperties loads a fallback property file. A missing file contributes nothing.
// When explicit is false, other failures are warnings instead of errors.
func (ru *run) optionalProperties(path string, explicit bool) (map[string]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, nil
	}
	m, err := variables.LoadPropertiesFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("resolver: %w", err)
		}
		ru.warn(err.Error())
		return nil, nil
	}
	ru.log.Debug("loaded property file", "path", path, "count", len(m))
	return m, nil
}

// dropinVariables gathers the variables of every overlay file in tier, each followed by the
// variables of the documents it includes.
func (ru *run) dropinVariables(tier dropins.Tier) map[string]string {
	vars := map[string]string{}
	ru.scanner.Scan(ru.dropinsRoot(), tier, func(path string, doc *document.Document) {
		maps.Copy(vars, doc.VariableMap())
		ru.walker.Walk(doc, include.Canonical(path), func(inc *document.Document) {
			maps.Copy(vars, inc.VariableMap())
		})
	})
	return vars
}

// collect runs the application pass against the final table: the root, its includes, then
// the overrides and defaults overlays with their includes.
func (ru *run) collect(root *document.Document, location string, table *variables.Table) *application.Collector {
	c := application.NewCollector()
	visit := func(doc *document.Document) {
		c.Collect(doc, table)
	}

	c.Collect(root, table)
	ru.walker.Walk(root, location, visit)

	// the variable pass already counted these files
	scanner := &dropins.Scanner{MaxFileSize: ru.r.MaxFileSize, Logger: ru.log}
	for _, tier := range []dropins.Tier{dropins.Overrides, dropins.Defaults} {
		scanner.Scan(ru.dropinsRoot(), tier, func(path string, doc *document.Document) {
			if filepath.Base(path) == GeneratedAppsFile {
				ru.log.Debug("skipping generated application descriptor", "path", path)
				return
			}
			c.Collect(doc, table)
			ru.walker.Walk(doc, include.Canonical(path), visit)
		})
	}
	return c
}

func (ru *run) dropinsRoot() string {
	return dropins.Root(ru.configDir, ru.serverDir)
}

func (ru *run) warn(msg string) {
	ru.warnings = append(ru.warnings, msg)
	ru.log.Warn("input skipped", "reason", msg)
}

func (ru *run) allWarnings() []string {
	out := append([]string{}, ru.warnings...)
	out = append(out, ru.scanner.Warnings()...)
	out = append(out, ru.walker.Warnings()...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsParseError reports whether err means the root document is not a server configuration.
func IsParseError(err error) bool {
	return errors.Is(err, scerrors.ErrParse)
}
