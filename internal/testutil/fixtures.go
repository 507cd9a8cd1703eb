// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"fmt"
	"html"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// Layout is a temporary server installation: a server directory holding server.xml and a
// separate configuration directory. Neither directory exists until something is written
// into it.
type Layout struct {
	t *testing.T

	// ServerDir is the directory containing the root server.xml
	ServerDir string
	// ConfigDir is the configuration override directory
	ConfigDir string
}

// NewLayout creates an empty Layout under t.TempDir().
func NewLayout(t *testing.T) *Layout {
	t.Helper()
	root := t.TempDir()
	return &Layout{
		t:         t,
		ServerDir: filepath.Join(root, "server"),
		ConfigDir: filepath.Join(root, "config"),
	}
}

// ServerXMLPath returns the path of the root document.
func (l *Layout) ServerXMLPath() string {
	return filepath.Join(l.ServerDir, "server.xml")
}

// WriteServerXML writes the root document and returns its path.
func (l *Layout) WriteServerXML(content string) string {
	l.t.Helper()
	return WriteFile(l.t, l.ServerDir, "server.xml", content)
}

// WriteServerFile writes rel under the server directory and returns its path.
func (l *Layout) WriteServerFile(rel, content string) string {
	l.t.Helper()
	return WriteFile(l.t, l.ServerDir, rel, content)
}

// WriteConfigFile writes rel under the configuration directory and returns its path.
func (l *Layout) WriteConfigFile(rel, content string) string {
	l.t.Helper()
	return WriteFile(l.t, l.ConfigDir, rel, content)
}

// WriteDropin writes a configDropins file for tier ("overrides" or "defaults") under
// base, which is either ServerDir or ConfigDir.
func (l *Layout) WriteDropin(base, tier, name, content string) string {
	l.t.Helper()
	return WriteFile(l.t, base, filepath.Join("configDropins", tier, name), content)
}

// WriteFile writes content to dir/rel, creating parent directories, and returns the path.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// Properties renders m in .properties format with keys sorted.
func Properties(m map[string]string) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(&b, "%s=%s\n", k, m[k])
	}
	return b.String()
}

// ServerXML wraps elements in a <server> root element.
func ServerXML(elements ...string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<server>\n")
	for _, el := range elements {
		b.WriteString("    ")
		b.WriteString(el)
		b.WriteString("\n")
	}
	b.WriteString("</server>\n")
	return b.String()
}

// Application renders an <application> element. An empty name omits the attribute.
func Application(location, name string) string {
	return element("application", location, name)
}

// WebApplication renders a <webApplication> element. An empty name omits the attribute.
func WebApplication(location, name string) string {
	return element("webApplication", location, name)
}

// EnterpriseApplication renders an <enterpriseApplication> element. An empty name omits
// the attribute.
func EnterpriseApplication(location, name string) string {
	return element("enterpriseApplication", location, name)
}

// Include renders an <include> element.
func Include(location string) string {
	return fmt.Sprintf(`<include location="%s"/>`, html.EscapeString(location))
}

// Variable renders a <variable> element.
func Variable(name, value string) string {
	return fmt.Sprintf(`<variable name="%s" value="%s"/>`, html.EscapeString(name), html.EscapeString(value))
}

func element(kind, location, name string) string {
	if name == "" {
		return fmt.Sprintf(`<%s location="%s"/>`, kind, html.EscapeString(location))
	}
	return fmt.Sprintf(`<%s location="%s" name="%s"/>`, kind, html.EscapeString(location), html.EscapeString(name))
}
