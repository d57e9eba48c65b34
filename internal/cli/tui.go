package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkgview/internal/catalog"
	"pkgview/internal/log"
	"pkgview/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive package browser",
	Long: `Launch the interactive package browser. This is also what pkgview
does when run without a command.

The upper pane lists the installed packages of the active package manager,
the lower pane shows the details of the selected package.

Navigation:
  - Use arrow keys or j/k to move
  - Press g/G or Home/End to jump to the first or last package
  - Press Tab to switch between pkg, apt and pip
  - Press q or Esc to quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := cfg.General.DefaultBackend

	c, err := catalog.Load(ctx, runner, kind)
	if err != nil {
		return fmt.Errorf("cannot list %s packages: %w", kind, err)
	}

	log.Info("browser started", "backend", kind, "packages", c.Len())

	details := catalog.NewDetails(runner, cfg.Details.Cache)
	return tui.Run(ctx, tui.NewModel(ctx, c, runner, details))
}
