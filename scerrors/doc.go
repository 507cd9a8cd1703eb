// Package scerrors provides structured error types for the serverconf library.
//
// Import path: github.com/erraggy/serverconf/scerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell the permissive "skip this input" outcomes apart from
// failures that abort a resolution run.
//
// # Error Types
//
//   - [ParseError]: a document that is not well-formed XML or has no <server> root
//   - [IncludeError]: an <include> location that could not be resolved or loaded
//   - [PropertiesError]: a server.env or bootstrap.properties file that could not be read
//   - [ResourceLimitError]: size or depth limits exceeded
//   - [ConfigError]: invalid options passed to the resolver
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrInclude]: Matches any [IncludeError]
//   - [ErrCircularInclude]: Matches [IncludeError] with IsCircular=true
//   - [ErrUnsupportedScheme]: Matches [IncludeError] with IsUnsupported=true
//   - [ErrProperties]: Matches any [PropertiesError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Skip overlay files that are not XML:
//
//	doc, err := document.LoadFile(path)
//	if errors.Is(err, scerrors.ErrParse) {
//	    continue // not a configuration file
//	}
//
// Inspect why an include was skipped:
//
//	var incErr *scerrors.IncludeError
//	if errors.As(err, &incErr) && incErr.IsUnsupported {
//	    log.Printf("include %s uses an unsupported scheme", incErr.Location)
//	}
//
// # Error Chaining
//
// All error types support error chaining via the Cause field and Unwrap() method:
//
//	var incErr *scerrors.IncludeError
//	if errors.As(err, &incErr) {
//	    if errors.Is(incErr.Cause, os.ErrNotExist) {
//	        // The included file doesn't exist
//	    }
//	}
package scerrors
