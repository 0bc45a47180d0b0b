// Package main provides the CLI entry point for tidypass.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AntoineGS/tidypass/internal/config"
	"github.com/AntoineGS/tidypass/internal/platform"
	"github.com/AntoineGS/tidypass/internal/state"
	"github.com/AntoineGS/tidypass/internal/tui"
	"github.com/AntoineGS/tidypass/internal/vault"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	layoutName  string
	dbPath      string
	verbose     bool
	showSecrets bool
	logFile     *os.File
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tidypass",
		Version: version,
		Short:   "Keep service accounts and passwords in a terminal UI",
		Long: `tidypass records services, their accounts and passwords, and copies
passwords to the clipboard.

Configuration is stored in ~/.config/tidypass/config.yaml. Without a
database the vault lives in memory and is gone when tidypass exits.

Run 'tidypass init --db <path>' to keep the vault between sessions.
Run without arguments to start the interactive TUI.`,
		SilenceUsage:      true,
		RunE:              runInteractive,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logFile != nil {
				_ = logFile.Close()
				logFile = nil
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&layoutName, "layout", "l", "", "Vault layout: grouped or flat (overrides app config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database that keeps the vault (overrides app config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize app configuration",
		Long: `Write ~/.config/tidypass/config.yaml from the --layout and --db flags.

With --db the database file is created right away.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored services and accounts",
		Long:  `Print the vault kept in the configured database. Passwords are masked unless --show-secrets is given.`,
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print passwords in clear text")

	rootCmd.AddCommand(initCmd, listCmd)

	return rootCmd
}

// setupLogging installs a debug logger when --verbose is set. While the TUI
// owns the terminal the log goes to a file.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if !verbose {
		return nil
	}

	logWriter := cmd.ErrOrStderr()

	if tui.IsTerminal() {
		logPath := filepath.Join(os.TempDir(), "tidypass.log")
		if cfg, err := config.LoadAppConfig(); err == nil && cfg.LogFile != "" {
			logPath = cfg.LogFile
		}

		f, err := os.OpenFile(filepath.Clean(logPath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err == nil {
			logFile = f
			logWriter = f
			fmt.Fprintf(cmd.ErrOrStderr(), "Verbose logs: %s\n", logPath)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	return nil
}

// settings is the app config after flags are applied.
type settings struct {
	database string
	layout   vault.Layout
}

// loadSettings merges flags over the app config: flag > file > default.
func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return settings{}, err
	}

	if cmd.Flags().Changed("layout") {
		cfg.Layout = layoutName
	}
	if dbPath != "" {
		cfg.Database = config.ExpandPath(dbPath)
	}

	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	slog.Debug("settings loaded", "layout", cfg.Layout, "database", cfg.Database)

	return settings{layout: cfg.VaultLayout(), database: cfg.Database}, nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	// Check if we're in a terminal
	if !tui.IsTerminal() {
		return fmt.Errorf("interactive mode requires a terminal; use 'tidypass list' for non-interactive use")
	}

	opts := tui.Options{Layout: s.layout}

	if p := platform.Detect(); !p.CanCopy(platform.DetectClipboardTools()) {
		slog.Warn("clipboard unavailable", "os", p.OS, "display", p.HasDisplay)
		opts.Notice = "Copy unavailable: " + p.ClipboardHint()
	}

	if s.database != "" {
		store, err := state.Open(s.database)
		if err != nil {
			return fmt.Errorf("opening vault database: %w", err)
		}
		defer store.Close() //nolint:errcheck // best-effort cleanup

		coll, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}

		opts.Collection = coll
		opts.Sink = store
	}

	return tui.Run(opts)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: replacing unreadable app config: %v\n", err)
		cfg = config.DefaultAppConfig()
	}

	if cmd.Flags().Changed("layout") {
		cfg.Layout = layoutName
	}
	if dbPath != "" {
		absPath, err := filepath.Abs(config.ExpandPath(dbPath))
		if err != nil {
			return fmt.Errorf("resolving database path: %w", err)
		}
		cfg.Database = absPath
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Database != "" {
		store, err := state.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("creating vault database: %w", err)
		}
		if err := store.Close(); err != nil {
			return fmt.Errorf("closing vault database: %w", err)
		}
	}

	if err := config.SaveAppConfig(cfg); err != nil {
		return fmt.Errorf("saving app config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "App configuration saved to %s\n", config.AppConfigPath())
	fmt.Fprintf(out, "Layout: %s\n", cfg.VaultLayout())
	if cfg.Database != "" {
		fmt.Fprintf(out, "Vault database: %s\n", cfg.Database)
	} else {
		fmt.Fprintln(out, "Vault database: none (in memory only)")
	}

	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if s.database == "" {
		return fmt.Errorf("no vault database configured; pass --db or run 'tidypass init --db <path>'")
	}

	store, err := state.Open(s.database)
	if err != nil {
		return fmt.Errorf("opening vault database: %w", err)
	}
	defer store.Close() //nolint:errcheck // best-effort cleanup

	coll, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderVault(coll, showSecrets))

	return nil
}
