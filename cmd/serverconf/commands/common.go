package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/serverconf/internal/config"
	"github.com/erraggy/serverconf/internal/fileutil"
	"github.com/erraggy/serverconf/resolver"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"
)

// ParseDefines converts repeated key=value flags into a property map.
// Later definitions of the same key win.
func ParseDefines(defines []string) (map[string]string, error) {
	if len(defines) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(defines))
	for _, d := range defines {
		key, value, ok := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q: expected key=value", d)
		}
		props[key] = value
	}
	return props, nil
}

// resolve runs the resolver over serverXML with the loaded settings.
func (a *app) resolve(serverXML string) (*resolver.Result, error) {
	props, err := ParseDefines(a.defines)
	if err != nil {
		return nil, err
	}

	s := a.settings
	opts := []resolver.Option{
		resolver.WithServerXML(serverXML),
		resolver.WithConfigDir(s.ConfigDir),
		resolver.WithServerEnvFile(s.ServerEnv),
		resolver.WithBootstrapFile(s.BootstrapFile),
		resolver.WithBootstrapProperties(props),
		resolver.WithResolveHTTP(s.ResolveHTTP),
		resolver.WithMaxIncludeDepth(s.MaxIncludeDepth),
		resolver.WithMaxFileSize(s.MaxFileSize),
		resolver.WithLogger(a.logger),
	}
	if s.UserAgent != "" {
		opts = append(opts, resolver.WithUserAgent(s.UserAgent))
	}

	result, err := resolver.ResolveWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", serverXML, err)
	}
	return result, nil
}

// emit writes data in the configured format to --output or the command's stdout.
// Text output is produced by render.
func (a *app) emit(cmd *cobra.Command, data any, inputs []string, render func(w io.Writer)) error {
	var buf bytes.Buffer
	if a.settings.Format == config.FormatText {
		render(&buf)
	} else {
		out, err := MarshalStructured(data, a.settings.Format)
		if err != nil {
			return err
		}
		buf.Write(out)
		buf.WriteByte('\n')
	}

	if a.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := ValidateOutputPath(a.output, inputs); err != nil {
		return err
	}
	return fileutil.WriteOutput(a.output, buf.Bytes())
}

// MarshalStructured marshals data as json or yaml.
func MarshalStructured(data any, format string) ([]byte, error) {
	var out []byte
	var err error

	switch format {
	case config.FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case config.FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return bytes.TrimRight(out, "\n"), nil
}

// ValidateOutputPath checks that the output file would not overwrite an input.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

func writeList(w io.Writer, title string, items []string) {
	Writef(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		Writef(w, "  - %s\n", item)
	}
}
