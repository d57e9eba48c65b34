package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"pkgview/internal/ui"
	"pkgview/pkg/manager"
)

var (
	listLimit   int
	listPattern string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Long: `List the installed packages of one package manager as a table.

Examples:
  pkgview list                  # List packages of the default backend
  pkgview list -b apt           # List apt packages
  pkgview list -l 20            # List first 20 packages
  pkgview list -p rqsts         # Fuzzy match package names`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "limit number of results")
	listCmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "filter by fuzzy name match")
}

func runList(cmd *cobra.Command, args []string) error {
	kind := cfg.General.DefaultBackend

	packages, err := listPackages(cmd.Context(), kind)
	if err != nil {
		return err
	}

	total := len(packages)
	packages = filterPackages(packages, listPattern)
	if listLimit > 0 && len(packages) > listLimit {
		packages = packages[:listLimit]
	}

	ui.PrintPackages(packages)
	if listPattern != "" || listLimit > 0 {
		ui.MutedMsg("\nShowing %d of %d %s packages", len(packages), total, kind)
	} else {
		ui.MutedMsg("\nTotal: %d packages", total)
	}

	return nil
}

// listPackages lists the installed packages of kind behind a spinner.
func listPackages(ctx context.Context, kind manager.Kind) ([]manager.Package, error) {
	var packages []manager.Package
	err := ui.WithSpinner(fmt.Sprintf("Listing installed packages from %s", kind), func() error {
		var err error
		packages, err = manager.List(ctx, runner, kind)
		return err
	})
	return packages, err
}

// packageNames adapts a package slice to fuzzy.Source.
type packageNames []manager.Package

func (p packageNames) String(i int) string { return p[i].Name }
func (p packageNames) Len() int            { return len(p) }

// filterPackages keeps the packages whose name fuzzy-matches pattern,
// in listing order.
func filterPackages(packages []manager.Package, pattern string) []manager.Package {
	if pattern == "" {
		return packages
	}

	matches := fuzzy.FindFrom(pattern, packageNames(packages))
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})

	filtered := make([]manager.Package, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, packages[m.Index])
	}
	return filtered
}
