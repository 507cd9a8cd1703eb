package include

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/serverconf"
	"github.com/erraggy/serverconf/document"
	"github.com/erraggy/serverconf/logging"
	"github.com/erraggy/serverconf/scerrors"
)

const (
	// DefaultTimeout is the HTTP timeout used when Resolver.HTTPClient is nil
	DefaultTimeout = 30 * time.Second

	// MaxDepth is the default limit on include nesting.
	// This prevents runaway recursion from very deep (but non-circular) include chains
	MaxDepth = 100
)

// Resolver loads the document named by an include location.
//
// A Resolver caches every document it loads, and every failure, keyed by canonical
// location. Use a fresh Resolver for each resolution run.
type Resolver struct {
	// ConfigDir is tried first for relative locations, when it exists
	ConfigDir string
	// ServerDir is the directory containing the root document; the fallback for
	// relative locations
	ServerDir string
	// HTTPClient fetches remote includes. Default: a client with a 30 second timeout
	HTTPClient *http.Client
	// UserAgent is sent with remote fetches. Default: serverconf.UserAgent()
	UserAgent string
	// DisableHTTP skips remote includes instead of fetching them
	DisableHTTP bool
	// MaxFileSize limits each included document. Default: document.DefaultMaxFileSize
	MaxFileSize int64
	// Logger receives debug output. Default: logging.NopLogger
	Logger logging.Logger

	cache  map[string]cachedDocument
	loaded int
}

type cachedDocument struct {
	doc *document.Document
	err error
}

// Loaded returns the number of documents read from disk or network, not counting cache hits.
func (r *Resolver) Loaded() int {
	return r.loaded
}

// Resolve classifies raw, loads the document it names, and returns the document with its
// canonical location. Every failure is an *scerrors.IncludeError.
func (r *Resolver) Resolve(raw string) (*document.Document, string, error) {
	loc := Classify(raw)
	switch loc.Kind {
	case KindRemote:
		if r.DisableHTTP {
			return nil, loc.URL, r.includeError(loc, "remote includes are disabled", nil)
		}
		return r.cached(loc, loc.URL, r.fetch)
	case KindLocalAbsolute:
		return r.cached(loc, Canonical(loc.Path), r.loadFile)
	case KindLocalRelative:
		path, err := r.findRelative(loc.Path)
		if err != nil {
			return nil, "", r.includeError(loc, "not found", err)
		}
		return r.cached(loc, Canonical(path), r.loadFile)
	case KindUnsupported:
		return nil, "", &scerrors.IncludeError{Location: raw, Kind: loc.Kind.String(), IsUnsupported: true}
	default:
		return nil, "", r.includeError(loc, "not a valid location", nil)
	}
}

func (r *Resolver) cached(loc Location, canonical string, load func(string) (*document.Document, error)) (*document.Document, string, error) {
	if r.cache == nil {
		r.cache = make(map[string]cachedDocument)
	}
	if entry, ok := r.cache[canonical]; ok {
		r.log().Debug("include cache hit", "location", canonical)
		return entry.doc, canonical, entry.err
	}

	doc, err := load(canonical)
	r.loaded++
	if err != nil {
		err = r.includeError(loc, "", err)
	}
	r.cache[canonical] = cachedDocument{doc: doc, err: err}
	return doc, canonical, err
}

// findRelative returns the first existing candidate for a relative path: under ConfigDir
// when that directory exists, then under ServerDir.
func (r *Resolver) findRelative(rel string) (string, error) {
	if r.ConfigDir != "" && isDir(r.ConfigDir) {
		candidate := filepath.Join(r.ConfigDir, rel)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	candidate := filepath.Join(r.ServerDir, rel)
	if isFile(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%s: %w", rel, os.ErrNotExist)
}

func (r *Resolver) loadFile(path string) (*document.Document, error) {
	return document.Loader{MaxFileSize: r.MaxFileSize}.LoadFile(path)
}

// fetch retrieves a remote document.
func (r *Resolver) fetch(urlStr string) (*document.Document, error) {
	client := r.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("include: failed to create request: %w", err)
	}

	userAgent := r.UserAgent
	if userAgent == "" {
		userAgent = serverconf.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // G704 - URL comes from the server configuration
	if err != nil {
		return nil, fmt.Errorf("include: failed to fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("include: HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	// Load closes the body
	return document.Loader{MaxFileSize: r.MaxFileSize}.Load(resp.Body, urlStr)
}

func (r *Resolver) includeError(loc Location, msg string, cause error) error {
	var incErr *scerrors.IncludeError
	if errors.As(cause, &incErr) {
		return cause
	}
	return &scerrors.IncludeError{
		Location: loc.Raw,
		Kind:     loc.Kind.String(),
		Message:  msg,
		Cause:    cause,
	}
}

func (r *Resolver) log() logging.Logger {
	return logging.OrNop(r.Logger)
}

// Canonical returns the absolute, cleaned form of a local path with symlinks resolved
// where possible. It is the identity used to detect revisits.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
