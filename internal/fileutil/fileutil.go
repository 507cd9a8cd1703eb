// Package fileutil holds file helpers shared by the CLI commands.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for resolution output, which may
// carry values read from server.env (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// RejectSymlink returns an error if path exists and is a symlink.
// A path that does not exist yet is accepted.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// WriteOutput writes data to path with OwnerReadWrite permissions.
// It refuses to write through a symlink.
func WriteOutput(path string, data []byte) error {
	cleaned := filepath.Clean(path)
	if err := RejectSymlink(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("fileutil: failed to write %s: %w", cleaned, err)
	}
	return nil
}
