package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/serverconf/scerrors"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultMaxFileSize is the maximum document size accepted when Loader.MaxFileSize is zero.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Loader parses server configuration documents.
// The zero value is ready to use.
type Loader struct {
	// MaxFileSize limits the bytes read from a single document.
	// Default: 10MB
	MaxFileSize int64
}

func (l Loader) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Load parses the document read from rc. rc is always closed, including on failure.
func Load(rc io.ReadCloser, source string) (*Document, error) {
	return Loader{}.Load(rc, source)
}

// LoadFile opens, parses, and closes the document at path.
func LoadFile(path string) (*Document, error) {
	return Loader{}.LoadFile(path)
}

// LoadBytes parses an in-memory document.
func LoadBytes(data []byte, source string) (*Document, error) {
	return Loader{}.LoadBytes(data, source)
}

// Load parses the document read from rc. rc is always closed, including on failure.
func (l Loader) Load(rc io.ReadCloser, source string) (*Document, error) {
	defer func() {
		_ = rc.Close()
	}()

	limit := l.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("document: failed to read %s: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, &scerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
			Message:      fmt.Sprintf("document %s is too large", source),
		}
	}
	return l.LoadBytes(data, source)
}

// LoadFile opens, parses, and closes the document at path.
func (l Loader) LoadFile(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - path comes from the caller's configuration
	if err != nil {
		return nil, fmt.Errorf("document: failed to open %s: %w", path, err)
	}
	return l.Load(f, path)
}

// LoadBytes parses an in-memory document.
func (l Loader) LoadBytes(data []byte, source string) (*Document, error) {
	if limit := l.maxFileSize(); int64(len(data)) > limit {
		return nil, &scerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
			Message:      fmt.Sprintf("document %s is too large", source),
		}
	}
	return parse(bytes.NewReader(data), source)
}

func parse(r io.Reader, source string) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	doc := &Document{source: source}
	// raw tokens keep prefixes as written, so open also checks that end tags match
	var open []xml.Name
	sawRoot := false
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newParseError(source, dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch len(open) {
			case 0:
				if sawRoot {
					line, _ := dec.InputPos()
					return nil, &scerrors.ParseError{Source: source, Line: line, Message: "multiple root elements"}
				}
				if !plain(t.Name, ElementServer) {
					line, _ := dec.InputPos()
					return nil, &scerrors.ParseError{
						Source:  source,
						Line:    line,
						Message: fmt.Sprintf("root element is <%s>, expected <%s>", qualified(t.Name), ElementServer),
					}
				}
				sawRoot = true
			case 1:
				// only direct children of <server> matter
				doc.record(t)
			}
			open = append(open, t.Name)
		case xml.EndElement:
			if len(open) == 0 || open[len(open)-1] != t.Name {
				return nil, newParseError(source, dec, fmt.Errorf("unexpected end element </%s>", qualified(t.Name)))
			}
			open = open[:len(open)-1]
		}
	}

	if len(open) > 0 {
		return nil, newParseError(source, dec, fmt.Errorf("element <%s> is not closed: %w", qualified(open[len(open)-1]), io.ErrUnexpectedEOF))
	}
	if !sawRoot {
		return nil, &scerrors.ParseError{Source: source, Message: "no root element"}
	}
	return doc, nil
}

func (d *Document) record(el xml.StartElement) {
	if el.Name.Space != "" {
		return
	}
	local := el.Name.Local
	if kind, ok := applicationKind(local); ok {
		app := Application{Kind: kind}
		app.Location, _ = attr(el, AttrLocation)
		app.Name, app.HasName = attr(el, AttrName)
		d.applications = append(d.applications, app)
		return
	}

	switch local {
	case ElementInclude:
		if loc, _ := attr(el, AttrLocation); loc != "" {
			d.includes = append(d.includes, loc)
		}
	case ElementVariable:
		name, _ := attr(el, AttrName)
		value, _ := attr(el, AttrValue)
		if name != "" && value != "" {
			d.variables = append(d.variables, Variable{Name: name, Value: value})
		}
	}
}

// attr looks an unprefixed attribute up by name. x:location does not match location.
func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if plain(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// plain reports whether n is exactly local, written without a prefix.
func plain(n xml.Name, local string) bool {
	return n.Space == "" && n.Local == local
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func newParseError(source string, dec *xml.Decoder, err error) error {
	line, _ := dec.InputPos()
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		line = syntaxErr.Line
	}
	return &scerrors.ParseError{
		Source:  source,
		Line:    line,
		Message: "malformed XML",
		Cause:   err,
	}
}

// charsetReader decodes documents whose prolog declares a non-UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
