package commands

import (
	"io"
	"slices"
	"strings"

	"github.com/erraggy/serverconf"
	"github.com/erraggy/serverconf/resolver"
	"github.com/spf13/cobra"
)

// resolveOutput is the structured form of the resolve command.
type resolveOutput struct {
	Result      *resolver.Result `json:"result" yaml:"result"`
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
}

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <server.xml>",
		Short: "Resolve applications and variables of a server.xml",
		Long: `Resolve a server.xml and print everything the resolution found: application
locations and names, the final variable table with the tier that supplied each
value, warnings for skipped includes and overlay files, and run statistics.`,
		Example: `  serverconf resolve wlp/usr/servers/defaultServer/server.xml
  serverconf resolve --config-dir src/main/liberty/config --format json server.xml
  serverconf resolve -D http.port=9080 --no-http -o result.yaml --format yaml server.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			out := resolveOutput{Result: result, Fingerprint: result.Fingerprint()}
			return a.emit(cmd, out, args, func(w io.Writer) { renderResolve(w, out) })
		},
	}
}

func renderResolve(w io.Writer, out resolveOutput) {
	r := out.Result
	Writef(w, "serverconf version: %s\n", serverconf.Version())
	Writef(w, "Server: %s\n", r.ServerXML)
	if r.ConfigDir != "" {
		Writef(w, "Config Dir: %s\n", r.ConfigDir)
	}
	Writef(w, "Run: %s\n", r.RunID)
	Writef(w, "Fingerprint: %s\n\n", out.Fingerprint)

	writeList(w, "Applications", r.Locations)
	writeList(w, "Names", r.Names)
	writeList(w, "Nameless Locations", r.NamelessLocations)
	Writef(w, "\n")

	renderVariables(w, r)
	Writef(w, "\n")

	if len(r.Warnings) > 0 {
		writeList(w, "Warnings", r.Warnings)
		Writef(w, "\n")
	}

	s := r.Stats
	Writef(w, "Documents Loaded: %d\n", s.DocumentsLoaded)
	Writef(w, "Includes: %d resolved, %d skipped, %d revisited\n", s.IncludesResolved, s.IncludesSkipped, s.IncludesRevisited)
	Writef(w, "Dropins: %d loaded, %d skipped, %d failed\n", s.DropinsLoaded, s.DropinsSkipped, s.DropinsFailed)
	Writef(w, "Applications Skipped: %d\n", s.ApplicationsSkipped)
}

func renderVariables(w io.Writer, r *resolver.Result) {
	names := make([]string, 0, len(r.Variables))
	for name := range r.Variables {
		names = append(names, name)
	}
	slices.Sort(names)

	Writef(w, "Variables (%d):\n", len(names))
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		Writef(w, "  %s%s = %s  [%s]\n", name, strings.Repeat(" ", width-len(name)), r.Variables[name], r.Provenance[name])
	}
}
