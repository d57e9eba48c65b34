package cli

import (
	"os"

	"github.com/spf13/cobra"

	"pkgview/internal/config"
	"pkgview/internal/ui"
)

var backendsCmd = &cobra.Command{
	Use:     "backends",
	Aliases: []string{"doctor"},
	Short:   "Show which package managers are available",
	Long: `Check which of pkg, apt and pip are installed and print the exact
commands used to list packages and show their details.

Examples:
  pkgview backends              # Run diagnostics`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func runBackends(cmd *cobra.Command, args []string) error {
	ui.HeaderMsg("Package Managers")

	var statuses []ui.BackendStatus
	for _, b := range registry.All() {
		statuses = append(statuses, ui.BackendStatus{
			Kind:      b.Kind,
			Path:      b.Path,
			Available: b.Available,
			Default:   b.Kind == cfg.General.DefaultBackend,
			List:      b.Command.ListLine(),
			Show:      b.Command.ShowLine(),
		})
	}
	ui.PrintBackends(os.Stdout, statuses)

	ui.HeaderMsg("Configuration")
	configPath := cfgFile
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	ui.PrintField("Config file", configPath)
	ui.PrintField("Command timeout", cfg.Exec.Timeout.String())
	ui.PrintField("Snapshots", config.SnapshotPath())
	ui.PrintField("Log file", cfg.LogFile())
	ui.Println("")

	// Summary
	available := registry.Available()
	switch {
	case len(available) == 0:
		ui.WarningMsg("%v", ErrNoBackend)
	case !registry.IsAvailable(cfg.General.DefaultBackend):
		ui.WarningMsg("Default backend %s is not installed; the browser will fail to start", cfg.General.DefaultBackend)
	default:
		ui.SuccessMsg("%d of %d package managers available", len(available), len(statuses))
	}

	return nil
}
