package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/blackcoderx/reswob/pkg/postman"
	"github.com/blackcoderx/reswob/pkg/storage"
)

// Configuration defaults.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultLockTimeout    = 5 * time.Second
	DefaultCollectionName = postman.DefaultCollectionName
)

// EnvPrefix prefixes environment overrides, e.g. RESWOB_LOG_LEVEL.
const EnvPrefix = "RESWOB"

// Config holds the resolved runtime configuration.
type Config struct {
	Workspace      string
	LogLevel       string
	LogFormat      string
	HTTPTimeout    time.Duration
	LockTimeout    time.Duration
	CollectionName string
	StrictImport   bool
}

// SetDefaults registers every configuration key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workspace", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("lock_timeout", DefaultLockTimeout)
	v.SetDefault("collection_name", DefaultCollectionName)
	v.SetDefault("strict_import", false)
}

// LoadConfig reads the configuration out of v.
func LoadConfig(v *viper.Viper) Config {
	cfg := Config{
		Workspace:      v.GetString("workspace"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		LockTimeout:    v.GetDuration("lock_timeout"),
		CollectionName: v.GetString("collection_name"),
		StrictImport:   v.GetBool("strict_import"),
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = DefaultLockTimeout
	}
	if cfg.CollectionName == "" {
		cfg.CollectionName = DefaultCollectionName
	}
	return cfg
}

// ResolveRoot returns a resolver for the workspace root: the configured
// workspace if set, otherwise the current directory.
func ResolveRoot(workspace string) storage.RootResolver {
	return func() (string, error) {
		root := workspace
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("failed to get working directory: %w", err)
			}
			root = wd
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve workspace: %w", err)
		}
		return abs, nil
	}
}
