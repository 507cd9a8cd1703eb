package commands

import (
	"fmt"
	"slices"
	"strings"
)

// unresolvedError reports placeholders that had no variable.
type unresolvedError struct {
	names []string
}

func (e *unresolvedError) Error() string {
	names := slices.Clone(e.names)
	slices.Sort(names)
	names = slices.Compact(names)
	return fmt.Sprintf("unresolved placeholders: %s", strings.Join(names, ", "))
}
