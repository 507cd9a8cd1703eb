package scerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document could not be parsed as a server configuration.
	ErrParse = errors.New("parse error")

	// ErrInclude indicates an include location could not be resolved.
	ErrInclude = errors.New("include error")

	// ErrCircularInclude indicates an include points back to a document already visited.
	ErrCircularInclude = errors.New("circular include")

	// ErrUnsupportedScheme indicates an include uses a scheme that is never fetched (ftp:).
	ErrUnsupportedScheme = errors.New("unsupported include scheme")

	// ErrProperties indicates a property file could not be loaded.
	ErrProperties = errors.New("properties error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a configuration document.
// Callers treat it as "not a server configuration file" and skip the input.
type ParseError struct {
	// Source is the file path, URL, or source identifier
	Source string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IncludeError represents a failure to resolve an <include> location.
type IncludeError struct {
	// Location is the raw location attribute value
	Location string
	// Kind is the classified location kind: "remote", "absolute", "relative", "unsupported", "invalid"
	Kind string
	// IsCircular is true if the include was skipped because it was already visited
	IsCircular bool
	// IsUnsupported is true if the location uses a scheme that is never fetched
	IsUnsupported bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IncludeError) Error() string {
	msg := "include error"
	if e.IsCircular {
		msg = "circular include"
	} else if e.IsUnsupported {
		msg = "unsupported include scheme"
	}
	if e.Location != "" {
		msg += ": " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IncludeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrInclude, and also ErrCircularInclude or ErrUnsupportedScheme
// when the corresponding flag is set.
func (e *IncludeError) Is(target error) bool {
	if target == ErrInclude {
		return true
	}
	if target == ErrCircularInclude && e.IsCircular {
		return true
	}
	if target == ErrUnsupportedScheme && e.IsUnsupported {
		return true
	}
	return false
}

// PropertiesError represents a failure to load a server.env or bootstrap.properties file.
type PropertiesError struct {
	// Path is the property file path
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PropertiesError) Error() string {
	msg := "properties error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PropertiesError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PropertiesError) Is(target error) bool {
	return target == ErrProperties
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file_size", "include_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
