// Package application collects deployed application references from server
// configuration documents.
//
// A [Collector] is shared across every document of a single resolution so that the
// results are deduplicated globally. For each application element with a location, the
// substituted location is recorded; the substituted name is recorded when the element
// carries a non-empty name attribute, otherwise the location is also recorded as
// nameless.
package application

import (
	"maps"
	"slices"

	"github.com/erraggy/serverconf/document"
	"github.com/erraggy/serverconf/variables"
)

// Set is a deduplicated collection of strings compared by exact equality.
// The zero value is ready to use.
type Set struct {
	items map[string]struct{}
}

// NewSet returns a Set containing values.
func NewSet(values ...string) *Set {
	s := &Set{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set) Add(v string) bool {
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v string) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[v]
	return ok
}

// Len returns the number of distinct values.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Sorted returns the values in lexical order. An empty set yields an empty, non-nil slice.
func (s *Set) Sorted() []string {
	if s == nil || len(s.items) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s.items))
}

// Collector accumulates application references across documents.
type Collector struct {
	Locations         *Set
	Names             *Set
	NamelessLocations *Set

	// Skipped counts application elements ignored for lacking a location
	Skipped int
}

// NewCollector returns a Collector with empty sets.
func NewCollector() *Collector {
	return &Collector{
		Locations:         &Set{},
		Names:             &Set{},
		NamelessLocations: &Set{},
	}
}

// Collect records every application declared directly in doc, substituting placeholders
// through lookup. A nil doc is a no-op.
func (c *Collector) Collect(doc *document.Document, lookup variables.Lookup) {
	if doc == nil {
		return
	}
	for _, app := range doc.Applications() {
		c.Add(app, lookup)
	}
}

// Add records a single application declaration.
func (c *Collector) Add(app document.Application, lookup variables.Lookup) {
	if app.Location == "" {
		c.Skipped++
		return
	}
	c.ensure()

	location := variables.Substitute(app.Location, lookup)
	c.Locations.Add(location)
	if app.Named() {
		c.Names.Add(variables.Substitute(app.Name, lookup))
		return
	}
	c.NamelessLocations.Add(location)
}

func (c *Collector) ensure() {
	if c.Locations == nil {
		c.Locations = &Set{}
	}
	if c.Names == nil {
		c.Names = &Set{}
	}
	if c.NamelessLocations == nil {
		c.NamelessLocations = &Set{}
	}
}
