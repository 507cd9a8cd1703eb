package document

import (
	"slices"
)

// Element and attribute names consumed from a server configuration document.
const (
	ElementServer   = "server"
	ElementInclude  = "include"
	ElementVariable = "variable"

	AttrLocation = "location"
	AttrName     = "name"
	AttrValue    = "value"
)

// Kind is the element name an application was declared with.
type Kind string

const (
	// KindApplication is a generic <application> element
	KindApplication Kind = "application"
	// KindWebApplication is a <webApplication> element
	KindWebApplication Kind = "webApplication"
	// KindEnterpriseApplication is an <enterpriseApplication> element
	KindEnterpriseApplication Kind = "enterpriseApplication"
)

// ApplicationKinds lists every element name that declares an application.
var ApplicationKinds = []Kind{KindApplication, KindWebApplication, KindEnterpriseApplication}

func applicationKind(local string) (Kind, bool) {
	for _, k := range ApplicationKinds {
		if string(k) == local {
			return k, true
		}
	}
	return "", false
}

// Application is one application declaration, with attribute values exactly as written.
type Application struct {
	Kind     Kind
	Location string
	Name     string
	// HasName reports whether the name attribute was present at all
	HasName bool
}

// Named reports whether the declaration carries a non-empty name.
func (a Application) Named() bool {
	return a.HasName && a.Name != ""
}

// Variable is a <variable name="..." value="..."/> definition with both attributes non-empty.
type Variable struct {
	Name  string
	Value string
}

// Document is a parsed server configuration document. It is never modified after
// loading; accessors return copies.
type Document struct {
	source       string
	applications []Application
	includes     []string
	variables    []Variable
}

// Source returns the path, URL, or identifier the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// Applications returns the application declarations in document order.
func (d *Document) Applications() []Application {
	return slices.Clone(d.applications)
}

// Includes returns the non-empty <include> location attributes in document order.
func (d *Document) Includes() []string {
	return slices.Clone(d.includes)
}

// Variables returns the recorded <variable> definitions in document order.
func (d *Document) Variables() []Variable {
	return slices.Clone(d.variables)
}

// VariableMap returns the document's variables as a map; later definitions of the
// same name win.
func (d *Document) VariableMap() map[string]string {
	m := make(map[string]string, len(d.variables))
	for _, v := range d.variables {
		m[v.Name] = v.Value
	}
	return m
}
