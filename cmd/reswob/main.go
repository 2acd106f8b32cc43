package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/reswob/pkg/core"
	"github.com/blackcoderx/reswob/pkg/core/tools"
	"github.com/blackcoderx/reswob/pkg/postman"
	"github.com/blackcoderx/reswob/pkg/storage"
	"github.com/blackcoderx/reswob/pkg/transfer"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile   string
	workspace string
	logLevel  string
	rootCmd   = &cobra.Command{
		Use:   "reswob",
		Short: "Reswob - saved HTTP requests for your workspace",
		Long: `Reswob keeps a collection of named HTTP requests inside your project,
groups them into folders, sends them, and moves them in and out of
Postman v2.1 collections.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
			}
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .reswob-requests/config.json)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	core.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Join(workspace, storage.DirName))
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(core.EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// app holds the services wired for one command invocation.
type app struct {
	cfg      core.Config
	log      logr.Logger
	root     storage.RootResolver
	store    *storage.Store
	requests *storage.Requests
	folders  *storage.Folders
	transfer *transfer.Service
	closeLog func() error
}

// newApp builds the store and services from the loaded configuration.
func newApp() (*app, error) {
	cfg := core.LoadConfig(viper.GetViper())

	log, closeLog, err := core.NewLogger(core.LogOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	root := core.ResolveRoot(cfg.Workspace)
	store := storage.NewStore(root,
		storage.WithLogger(log.WithName("store")),
		storage.WithLocker(storage.FileLocker{Timeout: cfg.LockTimeout}),
	)

	conv := postman.NewConverter()
	conv.Name = cfg.CollectionName

	return &app{
		cfg:      cfg,
		log:      log,
		root:     root,
		store:    store,
		requests: storage.NewRequests(store),
		folders:  storage.NewFolders(store),
		transfer: transfer.NewService(store,
			transfer.WithConverter(conv),
			transfer.WithLogger(log.WithName("transfer")),
			transfer.WithStrict(cfg.StrictImport),
		),
		closeLog: closeLog,
	}, nil
}

func (a *app) workspace() tools.Workspace {
	return tools.Workspace{
		Root:        a.root,
		Store:       a.store,
		Requests:    a.requests,
		Folders:     a.folders,
		Transfer:    a.transfer,
		HTTPTimeout: a.cfg.HTTPTimeout,
	}
}

func (a *app) close() {
	_ = a.closeLog()
}

// withApp adapts a function needing the wired services into a cobra RunE.
func withApp(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return fn(a, cmd, args)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
