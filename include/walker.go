package include

import (
	"errors"
	"fmt"

	"github.com/erraggy/serverconf/document"
	"github.com/erraggy/serverconf/logging"
	"github.com/erraggy/serverconf/scerrors"
)

// Stats counts what a Walker did across all of its walks.
type Stats struct {
	// Resolved is the number of includes that produced a document
	Resolved int
	// Skipped is the number of includes that failed to resolve
	Skipped int
	// Revisited is the number of includes skipped because their document was already
	// visited in the same walk
	Revisited int
}

// Walker visits documents reachable through <include> elements.
type Walker struct {
	Resolver *Resolver
	// MaxDepth limits include nesting. Default: MaxDepth (100)
	MaxDepth int
	Logger   logging.Logger

	stats    Stats
	warnings []string
	seenWarn map[string]bool
}

// NewWalker returns a Walker that loads documents through r.
func NewWalker(r *Resolver) *Walker {
	return &Walker{Resolver: r, Logger: r.Logger}
}

// Walk calls visit for every document reachable from root through includes, depth first
// and pre-order: a document is visited before the documents it includes. root itself is not
// visited. rootLocation is root's canonical location and marks it as already visited.
func (w *Walker) Walk(root *document.Document, rootLocation string, visit func(*document.Document)) {
	if root == nil {
		return
	}
	if w.Resolver == nil {
		w.Resolver = &Resolver{Logger: w.Logger}
	}
	visited := map[string]bool{}
	if rootLocation != "" {
		visited[rootLocation] = true
	}
	w.walk(root, visited, 1, visit)
}

func (w *Walker) walk(doc *document.Document, visited map[string]bool, depth int, visit func(*document.Document)) {
	includes := doc.Includes()
	if len(includes) == 0 {
		return
	}
	if depth > w.maxDepth() {
		w.warn(fmt.Sprintf("includes of %s not followed: maximum include depth %d exceeded", doc.Source(), w.maxDepth()))
		return
	}

	for _, raw := range includes {
		inc, canonical, err := w.Resolver.Resolve(raw)
		if err != nil {
			w.stats.Skipped++
			w.warn(describeSkip(doc.Source(), err))
			continue
		}
		if visited[canonical] {
			w.stats.Revisited++
			w.log().Debug("include already visited", "location", canonical, "from", doc.Source())
			continue
		}
		visited[canonical] = true
		w.stats.Resolved++

		visit(inc)
		w.walk(inc, visited, depth+1, visit)
	}
}

// Stats returns the counters accumulated across every Walk call.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Warnings returns the distinct skip messages recorded so far, in the order first seen.
func (w *Walker) Warnings() []string {
	out := make([]string, len(w.warnings))
	copy(out, w.warnings)
	return out
}

func (w *Walker) warn(msg string) {
	if w.seenWarn == nil {
		w.seenWarn = make(map[string]bool)
	}
	if w.seenWarn[msg] {
		return
	}
	w.seenWarn[msg] = true
	w.warnings = append(w.warnings, msg)
	w.log().Warn("include skipped", "reason", msg)
}

func (w *Walker) maxDepth() int {
	if w.MaxDepth > 0 {
		return w.MaxDepth
	}
	return MaxDepth
}

func (w *Walker) log() logging.Logger {
	return logging.OrNop(w.Logger)
}

func describeSkip(from string, err error) string {
	if errors.Is(err, scerrors.ErrParse) {
		return fmt.Sprintf("in %s: include is not a server configuration document: %v", from, err)
	}
	return fmt.Sprintf("in %s: %v", from, err)
}
