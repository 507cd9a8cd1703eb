package include

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Kind classifies an include location.
type Kind int

const (
	// KindInvalid is an empty location, or a URL-like location that does not parse
	KindInvalid Kind = iota
	// KindRemote is an http or https URL
	KindRemote
	// KindLocalAbsolute is an absolute filesystem path or a file: URL
	KindLocalAbsolute
	// KindLocalRelative is a path resolved against the configuration directories
	KindLocalRelative
	// KindUnsupported is a scheme that is recognized but never fetched (ftp)
	KindUnsupported
)

// String returns the kind name used in errors and logs.
func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindLocalAbsolute:
		return "absolute"
	case KindLocalRelative:
		return "relative"
	case KindUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

// Location is a classified include location. Exactly one of URL or Path is set for the
// remote and local kinds.
type Location struct {
	Kind Kind
	// Raw is the location attribute as written
	Raw string
	// URL is set for KindRemote
	URL string
	// Path is set for KindLocalAbsolute and KindLocalRelative
	Path string
}

// Classify maps a raw include location to its Location without touching the filesystem
// or network.
func Classify(raw string) Location {
	loc := Location{Kind: KindInvalid, Raw: raw}
	switch {
	case raw == "":
		return loc
	case strings.HasPrefix(raw, "http:") || strings.HasPrefix(raw, "https:"):
		if u, ok := parseURL(raw); ok && u.Host != "" {
			loc.Kind = KindRemote
			loc.URL = u.String()
		}
		return loc
	case strings.HasPrefix(raw, "file:"):
		if u, ok := parseURL(raw); ok {
			if p := fileURLPath(u); p != "" {
				loc.Kind = KindLocalAbsolute
				loc.Path = p
			}
		}
		return loc
	case strings.HasPrefix(raw, "ftp:"):
		loc.Kind = KindUnsupported
		return loc
	}

	loc.Path = filepath.FromSlash(raw)
	if filepath.IsAbs(loc.Path) {
		loc.Kind = KindLocalAbsolute
	} else {
		loc.Kind = KindLocalRelative
	}
	return loc
}

func parseURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	return u, true
}

// fileURLPath returns the absolute local path named by a file: URL, or "" when the URL
// names a remote host or has no usable path.
func fileURLPath(u *url.URL) string {
	if u.Host != "" && u.Host != "localhost" {
		return ""
	}
	p := u.Path
	if p == "" {
		// opaque form such as file:relative.xml
		p = u.Opaque
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		return ""
	}
	return filepath.Clean(p)
}
