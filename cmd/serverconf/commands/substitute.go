package commands

import (
	"io"

	"github.com/erraggy/serverconf/variables"
	"github.com/spf13/cobra"
)

type substitution struct {
	Input      string   `json:"input" yaml:"input"`
	Output     string   `json:"output" yaml:"output"`
	Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

func newSubstituteCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "substitute <server.xml> <text>...",
		Short: "Expand ${name} placeholders using a server's variables",
		Long: `Expand ${name} placeholders in each text argument using the resolved
variables of a server.xml. Unresolved placeholders are left as written;
--strict turns them into an error.`,
		Example: `  serverconf substitute server.xml '${server.config.dir}/apps'`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.resolve(args[0])
			if err != nil {
				return err
			}

			lookup := variables.MapLookup(result.Variables)
			out := make([]substitution, 0, len(args)-1)
			var unresolved []string
			for _, text := range args[1:] {
				s := substitution{
					Input:      text,
					Output:     result.Substitute(text),
					Unresolved: variables.Unresolved(text, lookup),
				}
				unresolved = append(unresolved, s.Unresolved...)
				out = append(out, s)
			}

			if err := a.emit(cmd, out, args[:1], func(w io.Writer) {
				for _, s := range out {
					Writef(w, "%s\n", s.Output)
				}
			}); err != nil {
				return err
			}
			if strict && len(unresolved) > 0 {
				return &unresolvedError{names: unresolved}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any placeholder is unresolved")
	return cmd
}
