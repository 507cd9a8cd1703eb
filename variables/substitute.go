package variables

import (
	"regexp"
)

// placeholderPattern matches ${name}; the non-greedy group stops at the first '}'.
var placeholderPattern = regexp.MustCompile(`\$\{(.*?)\}`)

// Lookup resolves a variable name to its value.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// MapLookup adapts a plain map to Lookup.
type MapLookup map[string]string

// Lookup implements Lookup.
func (m MapLookup) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Substitute replaces every ${name} in raw whose value is present and non-empty in
// lookup. Other placeholders are left unchanged. Substituted values are not rescanned.
// A nil lookup returns raw unchanged.
func Substitute(raw string, lookup Lookup) string {
	if lookup == nil || len(raw) < 3 {
		return raw
	}
	return placeholderPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := lookup.Lookup(name); ok && v != "" {
			return v
		}
		return match
	})
}

// Placeholders returns the variable names referenced in raw, in order of first
// appearance, without duplicates.
func Placeholders(raw string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Unresolved returns the placeholders in raw that lookup cannot resolve to a non-empty value.
func Unresolved(raw string, lookup Lookup) []string {
	var missing []string
	for _, name := range Placeholders(raw) {
		if lookup != nil {
			if v, ok := lookup.Lookup(name); ok && v != "" {
				continue
			}
		}
		missing = append(missing, name)
	}
	return missing
}
