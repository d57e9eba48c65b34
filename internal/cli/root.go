// Package cli implements the command-line interface for pkgview.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pkgview/internal/config"
	"pkgview/internal/executor"
	"pkgview/internal/log"
	"pkgview/internal/ui"
	"pkgview/pkg/manager"
)

var (
	// Global flags
	cfgFile     string
	backendName string
	timeout     time.Duration
	noCache     bool
	verbose     bool
	noColor     bool

	// Global state
	cfg      *config.Config
	registry *manager.Registry
	runner   *executor.Executor
	logFile  io.Closer
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pkgview",
	Short: "Browse installed packages from pkg, apt or pip",
	Long: `pkgview is a terminal browser for installed packages. It lists the
packages known to one package manager at a time and shows the details of the
selected package.

Supported package managers: pkg (Termux), apt, pip

Keys:
  j/k or Up/Down   move the selection
  g/G or Home/End  jump to the first or last package
  Tab              switch to the next package manager
  q or Esc         quit

Examples:
  pkgview                      # Browse packages of the default backend
  pkgview -b pip               # Browse pip packages
  pkgview list -p req          # Print installed packages matching 'req'
  pkgview info vim -b apt      # Print the details of one package`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initializeApp(cmd)
	}
	rootCmd.RunE = runTUI

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "package manager to use (pkg, apt, pip)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", executor.DefaultTimeout, "time limit for each package manager command (0 disables)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "fetch package details again on every selection")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command and reports any error on the terminal.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())

	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		ui.ErrorMsg("%v", err)
	}

	return err
}

// initializeApp sets up the application state.
func initializeApp(cmd *cobra.Command) error {
	// Load configuration
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if cmd != configInitCmd || !configInitForce {
			return err
		}
		ui.WarningMsg("Replacing unreadable config: %v", err)
		cfg = config.Default()
	}

	// Apply global flag overrides
	flags := rootCmd.PersistentFlags()
	if flags.Changed("backend") {
		kind, err := manager.ParseKind(backendName)
		if err != nil {
			return err
		}
		cfg.General.DefaultBackend = kind
	}
	if flags.Changed("timeout") {
		if timeout < 0 {
			return fmt.Errorf("--timeout must not be negative")
		}
		cfg.Exec.Timeout = config.Duration{Duration: timeout}
	}
	if noCache {
		cfg.Details.Cache = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	// Initialize UI
	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	if err := setupLogging(ownsTerminal(cmd)); err != nil {
		return err
	}

	runner = executor.New(cfg.Exec.Timeout.Duration, cfg.Output.Verbose)
	registry = manager.NewRegistry()

	log.Debug("initialized", "command", cmd.Name(), "backend", cfg.General.DefaultBackend, "timeout", cfg.Exec.Timeout)

	return nil
}

// ownsTerminal reports whether cmd runs the full-screen browser.
func ownsTerminal(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

// setupLogging routes log records. The browser always logs to a file so
// records never draw over the screen; other commands log to the
// configured file, or to stderr in verbose mode.
func setupLogging(toFile bool) error {
	level := log.ParseLevel(cfg.Log.Level)
	if cfg.Output.Verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)

	switch {
	case toFile || cfg.Log.File != "":
		path := cfg.LogFile()
		if cfg.Log.File == "" {
			if err := config.EnsureDataDir(); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		log.SetOutput(f)
	case cfg.Output.Verbose:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}

	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print pkgview version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("pkgview version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
