package commands

import (
	"fmt"
	"io"
	"slices"

	"github.com/erraggy/serverconf/variables"
	"github.com/spf13/cobra"
)

// explanation is one variable's full definition history.
type explanation struct {
	Name        string                 `json:"name" yaml:"name"`
	Value       string                 `json:"value" yaml:"value"`
	Tier        string                 `json:"tier" yaml:"tier"`
	Definitions []variables.Definition `json:"definitions" yaml:"definitions"`
}

func newVarsCommand(a *app) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "vars <server.xml> [name...]",
		Short: "Print the resolved variable table",
		Long: `Print the final variable table of a server.xml. With names, only those
variables are printed; naming an undefined variable is an error.

--explain lists every tier that defines each variable, lowest precedence
first, so the last entry is the value that won.`,
		Example: `  serverconf vars server.xml
  serverconf vars --explain server.xml http.port`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.resolve(args[0])
			if err != nil {
				return err
			}

			names := args[1:]
			if len(names) == 0 {
				for name := range result.Variables {
					names = append(names, name)
				}
				slices.Sort(names)
			}
			for _, name := range names {
				if _, ok := result.Variables[name]; !ok {
					return fmt.Errorf("variable %q is not defined", name)
				}
			}

			if !explain {
				values := make(map[string]string, len(names))
				for _, name := range names {
					values[name] = result.Variables[name]
				}
				return a.emit(cmd, values, args[:1], func(w io.Writer) {
					for _, name := range names {
						Writef(w, "%s=%s\n", name, values[name])
					}
				})
			}

			out := make([]explanation, 0, len(names))
			for _, name := range names {
				out = append(out, explanation{
					Name:        name,
					Value:       result.Variables[name],
					Tier:        result.Provenance[name],
					Definitions: result.Explain(name),
				})
			}
			return a.emit(cmd, out, args[:1], func(w io.Writer) {
				for _, e := range out {
					Writef(w, "%s = %s  [%s]\n", e.Name, e.Value, e.Tier)
					for _, d := range e.Definitions {
						Writef(w, "  %-22s %s\n", d.Tier+":", d.Value)
					}
				}
			})
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "show every tier that defines each variable")
	return cmd
}
