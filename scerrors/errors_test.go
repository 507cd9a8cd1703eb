package scerrors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := &ParseError{
			Source:  "/opt/wlp/usr/servers/defaultServer/server.xml",
			Line:    12,
			Message: "malformed XML",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /opt/wlp/usr/servers/defaultServer/server.xml at line 12: malformed XML: unexpected EOF" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with source only", func(t *testing.T) {
		err := &ParseError{Source: "server.xml"}
		if err.Error() != "parse error in server.xml" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrInclude) {
			t.Error("ParseError should not match ErrInclude")
		}
	})

	t.Run("As extracts ParseError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ParseError{Source: "a.xml", Line: 5})
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatal("errors.As should succeed")
		}
		if parseErr.Source != "a.xml" || parseErr.Line != 5 {
			t.Errorf("unexpected fields: %+v", parseErr)
		}
	})
}

func TestIncludeError(t *testing.T) {
	t.Run("Error message for missing include", func(t *testing.T) {
		err := &IncludeError{
			Location: "extra.xml",
			Kind:     "relative",
			Message:  "file not found",
		}
		if err.Error() != "include error: extra.xml: file not found" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for circular include", func(t *testing.T) {
		err := &IncludeError{Location: "self.xml", IsCircular: true}
		if err.Error() != "circular include: self.xml" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for unsupported scheme", func(t *testing.T) {
		err := &IncludeError{Location: "ftp://host/x.xml", IsUnsupported: true}
		if err.Error() != "unsupported include scheme: ftp://host/x.xml" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches flags", func(t *testing.T) {
		circular := &IncludeError{IsCircular: true}
		if !errors.Is(circular, ErrCircularInclude) || !errors.Is(circular, ErrInclude) {
			t.Error("circular IncludeError should match ErrCircularInclude and ErrInclude")
		}
		if errors.Is(circular, ErrUnsupportedScheme) {
			t.Error("circular IncludeError should not match ErrUnsupportedScheme")
		}

		unsupported := &IncludeError{IsUnsupported: true}
		if !errors.Is(unsupported, ErrUnsupportedScheme) {
			t.Error("unsupported IncludeError should match ErrUnsupportedScheme")
		}
		if errors.Is(unsupported, ErrCircularInclude) {
			t.Error("unsupported IncludeError should not match ErrCircularInclude")
		}
	})

	t.Run("Cause chain reaches os.ErrNotExist", func(t *testing.T) {
		_, statErr := os.Stat("/definitely/not/here.xml")
		err := fmt.Errorf("resolve: %w", &IncludeError{Location: "here.xml", Cause: statErr})
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("errors.Is should reach os.ErrNotExist through Cause")
		}
	})
}

func TestPropertiesError(t *testing.T) {
	err := &PropertiesError{Path: "bootstrap.properties", Message: "read failed", Cause: errors.New("EIO")}
	if err.Error() != "properties error in bootstrap.properties: read failed: EIO" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrProperties) {
		t.Error("PropertiesError should match ErrProperties")
	}
	if errors.Is(err, ErrParse) {
		t.Error("PropertiesError should not match ErrParse")
	}
}

func TestResourceLimitError(t *testing.T) {
	t.Run("Error message with limit and actual", func(t *testing.T) {
		err := &ResourceLimitError{
			ResourceType: "file_size",
			Limit:        1024,
			Actual:       2048,
			Message:      "document too large",
		}
		expected := "resource limit exceeded: file_size (limit: 1024, actual: 2048): document too large"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without actual", func(t *testing.T) {
		err := &ResourceLimitError{ResourceType: "include_depth", Limit: 100}
		if err.Error() != "resource limit exceeded: include_depth (limit: 100)" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns nil", func(t *testing.T) {
		err := &ResourceLimitError{}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil")
		}
		if !errors.Is(err, ErrResourceLimit) {
			t.Error("ResourceLimitError should match ErrResourceLimit")
		}
	})
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "server_xml", Value: "", Message: "must not be empty"}
	if err.Error() != "configuration error for server_xml (value: ): must not be empty" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}

	noValue := &ConfigError{Option: "max_depth"}
	if noValue.Error() != "configuration error for max_depth" {
		t.Errorf("unexpected error message: %s", noValue.Error())
	}
}
