package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"pkgview/internal/catalog"
	"pkgview/internal/ui"
	"pkgview/pkg/manager"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show package details",
	Long: `Print the details of an installed package, exactly as the package
manager reports them. Without a package name, pick one from a list.

Examples:
  pkgview info htop             # Details from the default backend
  pkgview info requests -b pip  # Details from pip
  pkgview info -b apt           # Choose an apt package interactively`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := cfg.General.DefaultBackend

	var pkg manager.Package
	if len(args) == 1 {
		pkg.Name = args[0]
	} else {
		packages, err := listPackages(ctx, kind)
		if err != nil {
			return err
		}
		if len(packages) == 0 {
			return fmt.Errorf("%w for %s", ErrNoPackages, kind)
		}

		selected, err := ui.SelectPackage(packages, fmt.Sprintf("Select a %s package", kind))
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return ErrAborted
			}
			return err
		}
		pkg = *selected
	}

	// A one-item catalog gives the same fallbacks as the browser.
	details := catalog.NewDetails(runner, false)
	text := details.FetchDetails(ctx, catalog.New(kind, []manager.Package{pkg}))

	ui.HeaderMsg("%s (%s)", pkg.Name, kind)
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}

	return nil
}
