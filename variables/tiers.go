package variables

import (
	"maps"
	"slices"
)

// Tier names, lowest precedence first.
const (
	TierServerEnv        = "server.env"
	TierBootstrap        = "bootstrap.properties"
	TierInclude          = "include"
	TierDropinsDefaults  = "configDropins/defaults"
	TierServerXML        = "server.xml"
	TierDropinsOverrides = "configDropins/overrides"
)

// TierOrder lists the tier names in the order the resolver folds them.
var TierOrder = []string{
	TierServerEnv,
	TierBootstrap,
	TierInclude,
	TierDropinsDefaults,
	TierServerXML,
	TierDropinsOverrides,
}

// Tier is one named source of variable definitions.
type Tier struct {
	Name   string
	Values map[string]string
}

// Definition records one tier's value for a variable.
type Definition struct {
	Tier  string `json:"tier" yaml:"tier"`
	Value string `json:"value" yaml:"value"`
}

// Table is the folded variable table. It is not modified after Fold returns.
type Table struct {
	values     map[string]string
	provenance map[string]string
	history    map[string][]Definition
}

// Fold merges tiers left to right. For each name the value from the last tier that
// defines it wins. Tiers with no values still count, so Fold of nothing is an empty table.
func Fold(tiers ...Tier) *Table {
	t := &Table{
		values:     make(map[string]string),
		provenance: make(map[string]string),
		history:    make(map[string][]Definition),
	}
	for _, tier := range tiers {
		// sorted so provenance history is deterministic within a tier
		for _, name := range slices.Sorted(maps.Keys(tier.Values)) {
			value := tier.Values[name]
			t.values[name] = value
			t.provenance[name] = tier.Name
			t.history[name] = append(t.history[name], Definition{Tier: tier.Name, Value: value})
		}
	}
	return t
}

// Lookup implements Lookup.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[name]
	return v, ok
}

// Len returns the number of variables in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Names returns the variable names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.values))
}

// Map returns a copy of the table's values.
func (t *Table) Map() map[string]string {
	if t == nil {
		return map[string]string{}
	}
	return maps.Clone(t.values)
}

// Provenance returns a copy of the name to winning-tier mapping.
func (t *Table) Provenance() map[string]string {
	if t == nil {
		return map[string]string{}
	}
	return maps.Clone(t.provenance)
}

// Origin returns the name of the tier that supplied the winning value for name.
func (t *Table) Origin(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	tier, ok := t.provenance[name]
	return tier, ok
}

// Explain returns every definition of name in fold order; the last entry is the winner.
func (t *Table) Explain(name string) []Definition {
	if t == nil {
		return nil
	}
	return slices.Clone(t.history[name])
}
