// Package dropins locates and loads configDropins overlay documents.
//
// Overlay documents live in <configDropins>/defaults and <configDropins>/overrides.
// The configDropins directory under the configuration directory takes priority over the one
// next to server.xml. Files are processed in name order, and files that are not server
// configuration documents are skipped.
package dropins

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/erraggy/serverconf/document"
	"github.com/erraggy/serverconf/logging"
	"github.com/erraggy/serverconf/scerrors"
)

// DirName is the name of the overlay directory.
const DirName = "configDropins"

// Tier names an overlay subdirectory.
type Tier string

const (
	// Defaults overlays are applied below the root document's own variables
	Defaults Tier = "defaults"
	// Overrides overlays are applied above everything else
	Overrides Tier = "overrides"
)

// Root returns the configDropins directory: the one under configDir when configDir is set
// and the directory exists there, otherwise the one under serverDir.
func Root(configDir, serverDir string) string {
	if configDir != "" {
		candidate := filepath.Join(configDir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(serverDir, DirName)
}

// Files returns the regular files directly inside root/tier, sorted by name.
// A missing directory yields no files and no error.
func Files(root string, tier Tier) ([]string, error) {
	dir := filepath.Join(root, string(tier))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("dropins: failed to read %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			// follow symlinks to regular files
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// Stats counts the files a Scanner processed.
type Stats struct {
	// Loaded is the number of files parsed as server configuration documents
	Loaded int
	// Skipped is the number of files that were not server configuration documents
	Skipped int
	// Failed is the number of files that could not be read
	Failed int
}

// Scanner loads overlay documents.
type Scanner struct {
	// MaxFileSize limits each overlay document. Default: document.DefaultMaxFileSize
	MaxFileSize int64
	Logger      logging.Logger

	stats    Stats
	warnings []string
}

// Scan calls visit, in name order, for every file in root/tier that parses as a server
// configuration document. Non-XML files are skipped quietly; read failures are recorded as
// warnings.
func (s *Scanner) Scan(root string, tier Tier, visit func(path string, doc *document.Document)) {
	files, err := Files(root, tier)
	if err != nil {
		s.warn(err.Error())
		return
	}

	loader := document.Loader{MaxFileSize: s.MaxFileSize}
	for _, path := range files {
		doc, err := loader.LoadFile(path)
		if err != nil {
			if errors.Is(err, scerrors.ErrParse) {
				s.stats.Skipped++
				s.log().Debug("dropin file is not a server configuration document", "path", path, "error", err)
				continue
			}
			s.stats.Failed++
			s.warn(fmt.Sprintf("dropin %s: %v", path, err))
			continue
		}
		s.stats.Loaded++
		visit(path, doc)
	}
}

// Scan is a convenience wrapper around a zero Scanner.
func Scan(root string, tier Tier, visit func(path string, doc *document.Document)) {
	var s Scanner
	s.Scan(root, tier, visit)
}

// Stats returns the counters accumulated across every Scan call.
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Warnings returns the read failures recorded so far.
func (s *Scanner) Warnings() []string {
	return slices.Clone(s.warnings)
}

func (s *Scanner) warn(msg string) {
	s.warnings = append(s.warnings, msg)
	s.log().Warn("dropin skipped", "reason", msg)
}

func (s *Scanner) log() logging.Logger {
	return logging.OrNop(s.Logger)
}
