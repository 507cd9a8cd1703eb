package commands

import (
	"io"

	"github.com/spf13/cobra"
)

type appsOutput struct {
	Locations         []string `json:"locations" yaml:"locations"`
	Names             []string `json:"names" yaml:"names"`
	NamelessLocations []string `json:"namelessLocations" yaml:"namelessLocations"`
}

func newAppsCommand(a *app) *cobra.Command {
	var locationsOnly bool

	cmd := &cobra.Command{
		Use:   "apps <server.xml>",
		Short: "List the applications deployed by a server.xml",
		Example: `  serverconf apps server.xml
  serverconf apps --locations server.xml | xargs ls -l`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			out := appsOutput{
				Locations:         result.Locations,
				Names:             result.Names,
				NamelessLocations: result.NamelessLocations,
			}
			return a.emit(cmd, out, args, func(w io.Writer) {
				if locationsOnly {
					for _, loc := range out.Locations {
						Writef(w, "%s\n", loc)
					}
					return
				}
				writeList(w, "Applications", out.Locations)
				writeList(w, "Names", out.Names)
				writeList(w, "Nameless Locations", out.NamelessLocations)
			})
		},
	}
	cmd.Flags().BoolVar(&locationsOnly, "locations", false, "text output: print one location per line and nothing else")
	return cmd
}
