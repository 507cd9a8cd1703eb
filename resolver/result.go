package resolver

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"maps"
	"slices"

	"github.com/erraggy/serverconf/variables"
	"github.com/zeebo/blake3"
)

// Stats summarizes the work done by one resolution run.
type Stats struct {
	DocumentsLoaded     int `json:"documentsLoaded" yaml:"documentsLoaded"`
	IncludesResolved    int `json:"includesResolved" yaml:"includesResolved"`
	IncludesSkipped     int `json:"includesSkipped" yaml:"includesSkipped"`
	IncludesRevisited   int `json:"includesRevisited" yaml:"includesRevisited"`
	DropinsLoaded       int `json:"dropinsLoaded" yaml:"dropinsLoaded"`
	DropinsSkipped      int `json:"dropinsSkipped" yaml:"dropinsSkipped"`
	DropinsFailed       int `json:"dropinsFailed" yaml:"dropinsFailed"`
	ApplicationsSkipped int `json:"applicationsSkipped" yaml:"applicationsSkipped"`
}

// Result is the outcome of one resolution run.
type Result struct {
	// ServerXML is the canonical location of the root document
	ServerXML string `json:"serverXml" yaml:"serverXml"`
	ConfigDir string `json:"configDir,omitempty" yaml:"configDir,omitempty"`
	ServerDir string `json:"serverDir" yaml:"serverDir"`

	// Locations holds every substituted application location, sorted
	Locations []string `json:"locations" yaml:"locations"`
	// Names holds the substituted names of named applications, sorted
	Names []string `json:"names" yaml:"names"`
	// NamelessLocations holds the locations of applications declared without a name, sorted
	NamelessLocations []string `json:"namelessLocations" yaml:"namelessLocations"`

	// Variables is the final variable table
	Variables map[string]string `json:"variables" yaml:"variables"`
	// Provenance maps each variable to the tier that supplied its value
	Provenance map[string]string `json:"provenance" yaml:"provenance"`

	// Warnings lists every skipped input, in the order encountered
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Stats    Stats    `json:"stats" yaml:"stats"`
	// RunID identifies the run in logs
	RunID string `json:"runId" yaml:"runId"`

	table *variables.Table
}

// Substitute resolves ${name} placeholders in raw against the final variable table.
func (r *Result) Substitute(raw string) string {
	return variables.Substitute(raw, r.lookup())
}

// Explain returns every tier's definition of name, lowest precedence first.
func (r *Result) Explain(name string) []variables.Definition {
	if r.table == nil {
		if v, ok := r.Variables[name]; ok {
			return []variables.Definition{{Tier: r.Provenance[name], Value: v}}
		}
		return nil
	}
	return r.table.Explain(name)
}

func (r *Result) lookup() variables.Lookup {
	if r.table != nil {
		return r.table
	}
	return variables.MapLookup(r.Variables)
}

// Fingerprint returns a hex BLAKE3 digest of the application sets and variable table.
// Two runs over the same inputs have the same fingerprint; the run ID, warnings, and
// stats do not contribute.
func (r *Result) Fingerprint() string {
	h := blake3.New()
	writeStrings(h, "locations", r.Locations)
	writeStrings(h, "names", r.Names)
	writeStrings(h, "namelessLocations", r.NamelessLocations)

	keys := slices.Sorted(maps.Keys(r.Variables))
	writeStrings(h, "variables", keys)
	for _, k := range keys {
		writeString(h, r.Variables[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeStrings writes a labelled, length-prefixed list.
func writeStrings(h hash.Hash, label string, values []string) {
	writeString(h, label)
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(values)))
	_, _ = h.Write(n[:])
	for _, v := range values {
		writeString(h, v)
	}
}

func writeString(h hash.Hash, s string) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = h.Write(n[:])
	_, _ = h.Write([]byte(s))
}
