// Package cmd implements the strata command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"strata/internal/config"
	"strata/internal/infrastructure/sqlite"
	"strata/internal/log"
)

var (
	version = "dev"
	cfgFile string
	dbFlag  string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Inspect a strata artifact store",
	Long: `Command line tools for inspecting a strata artifact store.

The store itself is written by programs embedding the strata library; this
CLI reads the same database to list artifact lineage, versions, and hashes.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/strata/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"path to the artifact store database")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging")

	_ = viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("database_path", defaults.DatabasePath)
	viper.SetDefault("author", defaults.Author)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .strata/config.yaml (current directory)
		// 2. ~/.config/strata/config.yaml (user config)
		if _, err := os.Stat(".strata/config.yaml"); err == nil {
			viper.SetConfigFile(".strata/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "strata"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
		// Missing config is fine - defaults apply
	}

	_ = viper.Unmarshal(&cfg)

	if debug || os.Getenv("STRATA_DEBUG") != "" {
		if cleanup, err := log.Init(cfg.Log.Path); err == nil {
			cobra.OnFinalize(cleanup)
		}
	} else {
		log.SetEnabled(false)
	}
}

// openDB opens the configured store database.
func openDB() (*sqlite.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.DatabasePath, err)
	}
	return db, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
