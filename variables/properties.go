package variables

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/serverconf/scerrors"
	"github.com/magiconair/properties"
)

// DefaultMaxPropertiesSize limits how much of a property file is read.
const DefaultMaxPropertiesSize = 10 * 1024 * 1024 // 10MB

// propertiesLoader reads the Java .properties format. Expansion is disabled because
// ${...} references are resolved later against the folded table, not within one file.
var propertiesLoader = &properties.Loader{
	Encoding:         properties.ISO_8859_1,
	DisableExpansion: true,
}

// LoadPropertiesFile reads a .properties file into a map. Every failure is a
// *scerrors.PropertiesError; for a missing file it also wraps os.ErrNotExist.
func LoadPropertiesFile(path string) (map[string]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - path comes from the caller's configuration
	if err != nil {
		return nil, &scerrors.PropertiesError{Path: path, Message: "open failed", Cause: err}
	}
	return LoadProperties(f, path)
}

// LoadProperties reads .properties content from rc, which is always closed.
func LoadProperties(rc io.ReadCloser, source string) (map[string]string, error) {
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(rc, DefaultMaxPropertiesSize+1))
	if err != nil {
		return nil, &scerrors.PropertiesError{Path: source, Message: "read failed", Cause: err}
	}
	if len(data) > DefaultMaxPropertiesSize {
		return nil, &scerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        DefaultMaxPropertiesSize,
			Actual:       int64(len(data)),
			Message:      fmt.Sprintf("property file %s is too large", source),
		}
	}

	p, err := propertiesLoader.LoadBytes(data)
	if err != nil {
		return nil, &scerrors.PropertiesError{Path: source, Message: "malformed content", Cause: err}
	}
	return p.Map(), nil
}
