package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// ResolvePath turns a user-chosen path into an absolute, cleaned one.
// Absolute paths are kept as is, "~/" expands to the home directory and
// anything else is taken relative to workDir. Paths outside workDir are
// allowed: they come from the editor's save and open dialogs.
func ResolvePath(filePath, workDir string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("path is required")
	}

	if filePath == "~" || strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		filePath = filepath.Join(home, strings.TrimPrefix(filePath, "~"))
	}

	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath), nil
	}
	if workDir == "" {
		return "", storage.ErrStorageUnavailable
	}

	absPath, err := filepath.Abs(filepath.Join(workDir, filePath))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return absPath, nil
}

// workspacePath resolves a tool-supplied path, using the workspace root for
// relative paths.
func workspacePath(root storage.RootResolver, filePath string) (string, error) {
	dir := ""
	if root != nil {
		if d, err := root(); err == nil {
			dir = d
		}
	}
	return ResolvePath(filePath, dir)
}
