// Package options validates option combinations shared by the resolver and the MCP server.
package options

import (
	"fmt"
	"strings"

	"github.com/erraggy/serverconf/scerrors"
)

// Source is one way of supplying the root document.
type Source struct {
	Name string
	Set  bool
}

// SingleSource returns a *scerrors.ConfigError unless exactly one source is set.
func SingleSource(sources ...Source) error {
	names := make([]string, 0, len(sources))
	count := 0
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return &scerrors.ConfigError{
		Option:  strings.Join(names, " or "),
		Message: fmt.Sprintf("exactly one of %s must be provided (got %d)", strings.Join(names, " or "), count),
	}
}
