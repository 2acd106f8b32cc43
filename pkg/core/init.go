package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// ConfigFileName is the config file inside the workspace folder.
const ConfigFileName = "config.json"

// configFile is the shape of the default config.json. Durations are kept as
// strings so the file stays hand-editable.
type configFile struct {
	LogLevel       string `json:"log_level"`
	LogFormat      string `json:"log_format"`
	HTTPTimeout    string `json:"http_timeout"`
	LockTimeout    string `json:"lock_timeout"`
	CollectionName string `json:"collection_name"`
	StrictImport   bool   `json:"strict_import"`
}

// InitializeWorkspace creates the workspace folder under root and a default
// config.json if they don't exist. It never creates the collection file;
// that happens on the first save. It reports whether anything was created.
func InitializeWorkspace(fs afero.Fs, root string) (bool, error) {
	dir := filepath.Join(root, storage.DirName)
	configPath := filepath.Join(dir, ConfigFileName)

	if _, err := fs.Stat(configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create %s folder: %w", storage.DirName, err)
	}
	if err := createDefaultConfig(fs, configPath); err != nil {
		return false, err
	}
	return true, nil
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(fs afero.Fs, path string) error {
	config := configFile{
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		HTTPTimeout:    DefaultHTTPTimeout.String(),
		LockTimeout:    DefaultLockTimeout.String(),
		CollectionName: DefaultCollectionName,
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
