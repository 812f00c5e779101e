// Package main provides the CLI entrypoint for inkwell.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/config"
	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		contentDir string
		configPath string
		themeName  string
	}
	logger *slog.Logger

	// articleStore is the global store instance
	articleStore *content.Store
	themeLoader  *theme.Loader
	currentTheme theme.Theme
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Terminal reader and static exporter for a Markdown blog",
	Long: `inkwell reads a directory of Markdown articles and presents them in a
themed terminal interface, lists them in scriptable formats, and exports
them as a static HTML site.

Articles carry optional YAML front matter (title, slug, date, tags,
draft, summary). The light and dark color themes follow the terminal's
background unless overridden.

Running inkwell without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flag overrides
		if globalOpts.contentDir != "" {
			cfg.Content.Dir = globalOpts.contentDir
		}
		if globalOpts.themeName != "" {
			cfg.Theme.Name = globalOpts.themeName
		}
		if cfg.Theme.Signal != "" && os.Getenv(theme.EnvSignal) == "" {
			// Config signal acts as the ambient signal when the
			// environment does not set one.
			os.Setenv(theme.EnvSignal, cfg.Theme.Signal)
		}

		// Resolve the theme
		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			return fmt.Errorf("failed to load theme: %w", err)
		}
		currentTheme = themeLoader.Current()

		// Scan the content directory
		articleStore = content.NewStore(cfg.Content.Dir)
		for _, scanErr := range articleStore.Rescan() {
			logger.Warn("failed to parse article", "error", scanErr)
		}
		logger.Debug("content scanned", "dir", cfg.Content.Dir, "articles", articleStore.Count())

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if articleStore != nil {
			return articleStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.contentDir, "content-dir", "",
		"Directory scanned for *.md articles (default: ./content)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/inkwell/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.themeName, "theme", "t", "",
		"Theme name (dark, light, or a user theme)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getStore returns the global store instance.
func getStore() *content.Store {
	return articleStore
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
