package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkgview/internal/log"
	"pkgview/internal/ui"
	"pkgview/pkg/manager"
	"pkgview/pkg/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record and compare package listings",
	Long: `Record the installed packages of one or all package managers and
compare them later to see what was added, removed or changed.

Examples:
  pkgview snapshot save "before cleanup"   # Snapshot the default backend
  pkgview snapshot save --all              # Snapshot every installed backend
  pkgview snapshot list                    # List snapshots, newest first
  pkgview snapshot show latest             # Show the newest snapshot
  pkgview snapshot diff <id>               # Compare a snapshot with now
  pkgview snapshot diff <id1> <id2>        # Compare two snapshots
  pkgview snapshot delete <id>             # Delete a snapshot
  pkgview snapshot prune                   # Keep only the newest snapshots`,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotDiffCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	snapshotCmd.AddCommand(snapshotPruneCmd)
}

// resolveSnapshot loads a snapshot by ID, or the newest one for "latest".
func resolveSnapshot(store *snapshot.Store, id string) (*snapshot.Snapshot, error) {
	var (
		snap *snapshot.Snapshot
		err  error
	)
	if id == "latest" {
		snap, err = store.Latest()
	} else {
		snap, err = store.Get(id)
	}

	if errors.Is(err, snapshot.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, id)
	}
	return snap, err
}

// snapshotSaveCmd captures a new snapshot
var snapshotSaveCmd = &cobra.Command{
	Use:   "save [description]",
	Short: "Save a snapshot of installed packages",
	Long: `Save the installed packages of the selected backend, or with --all of
every installed backend, to the snapshot store.

Backends that cannot be listed are reported and left out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshotSave,
}

var snapshotSaveAll bool

func init() {
	snapshotSaveCmd.Flags().BoolVarP(&snapshotSaveAll, "all", "a", false, "snapshot every installed backend")
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kinds := []manager.Kind{cfg.General.DefaultBackend}
	if snapshotSaveAll {
		kinds = registry.Available()
		if len(kinds) == 0 {
			return ErrNoBackend
		}
	}

	description := ""
	if len(args) > 0 {
		description = args[0]
	}

	var (
		snap    *snapshot.Snapshot
		skipped error
	)
	err := ui.WithSpinner("Capturing installed packages", func() error {
		snap, skipped = snapshot.Capture(ctx, runner, description, kinds)
		if snap == nil {
			return skipped
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to capture snapshot: %w", err)
	}
	if skipped != nil {
		ui.WarningMsg("Some backends were skipped: %v", skipped)
	}

	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	if err := store.Save(snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	ui.SuccessMsg("Saved snapshot %s with %d packages", snap.ID, snap.PackageCount())

	// Show breakdown by backend
	bySource := snap.PackagesBySource()
	for _, k := range snap.Backends {
		ui.BackendMsg(k, "%d packages", len(bySource[k.String()]))
	}

	// Auto-prune old snapshots
	if deleted, err := store.Prune(cfg.Snapshots.Max); err != nil {
		log.Warn("snapshot prune failed", "error", err)
	} else if deleted > 0 {
		log.Info("pruned snapshots", "deleted", deleted, "keep", cfg.Snapshots.Max)
	}

	return nil
}

// snapshotListCmd lists available snapshots
var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	Long: `List saved snapshots, showing the most recent first.

Use --limit to control how many snapshots to show.`,
	Args: cobra.NoArgs,
	RunE: runSnapshotList,
}

var snapshotListLimit int

func init() {
	snapshotListCmd.Flags().IntVarP(&snapshotListLimit, "limit", "l", 20, "maximum number of snapshots to list")
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	snapshots, err := store.List(snapshotListLimit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		ui.InfoMsg("No snapshots available")
		ui.MutedMsg("Create one with: pkgview snapshot save")
		return nil
	}

	ui.HeaderMsg("Saved Snapshots")
	ui.Println("")

	table := ui.NewTable([]string{"id", "time", "backends", "packages", "description"})
	for _, snap := range snapshots {
		desc := snap.Description
		if desc == "" {
			desc = "-"
		}
		table.AddRow(ui.Accent.Sprint(snap.ID), snap.FormatTime(), joinKinds(snap.Backends), fmt.Sprint(snap.PackageCount()), desc)
	}
	table.Render()

	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("failed to count snapshots: %w", err)
	}
	ui.MutedMsg("")
	ui.MutedMsg("Showing %d of %d total snapshots", len(snapshots), count)

	return nil
}

func joinKinds(kinds []manager.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}

// snapshotShowCmd shows details of a snapshot
var snapshotShowCmd = &cobra.Command{
	Use:   "show <snapshot-id|latest>",
	Short: "Show the packages of a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	snap, err := resolveSnapshot(store, args[0])
	if err != nil {
		return err
	}

	ui.HeaderMsg("Snapshot: %s", snap.ID)
	ui.Println("")
	ui.PrintField("Timestamp  ", snap.FormatTime())
	ui.PrintField("Description", snap.Description)
	ui.PrintField("Backends   ", joinKinds(snap.Backends))
	ui.PrintField("Packages   ", fmt.Sprintf("%d total", snap.PackageCount()))
	ui.Println("")

	// Show packages by backend, in capture order
	bySource := snap.PackagesBySource()
	for _, k := range snap.Backends {
		pkgs := bySource[k.String()]
		ui.InfoMsg("%s (%d packages)", ui.Backend(k), len(pkgs))
		for _, pkg := range pkgs {
			ui.MutedMsg("  %s %s", pkg.Name, ui.PackageVersion.Sprint(pkg.Version))
		}
		ui.Println("")
	}

	return nil
}

// snapshotDiffCmd compares snapshots
var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <snapshot-id> [snapshot-id]",
	Short: "Compare snapshots",
	Long: `Compare two snapshots and show the differences.

The first snapshot is treated as the "from" state and the second as "to".
When the second snapshot is omitted, the backends of the first one are
listed again and compared with it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSnapshotDiff,
}

func runSnapshotDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	from, err := resolveSnapshot(store, args[0])
	if err != nil {
		return err
	}

	var to *snapshot.Snapshot
	if len(args) == 2 {
		if to, err = resolveSnapshot(store, args[1]); err != nil {
			return err
		}
	} else {
		var skipped error
		err = ui.WithSpinner("Listing current packages", func() error {
			to, skipped = snapshot.Capture(ctx, runner, "current", from.Backends)
			if to == nil {
				return skipped
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to list current packages: %w", err)
		}
		if skipped != nil {
			ui.WarningMsg("Some backends were skipped: %v", skipped)
		}
		to.ID = "current"
	}

	diff := snapshot.Compare(from, to)

	ui.HeaderMsg("Diff: %s -> %s", diff.From, diff.To)
	ui.Println("")

	if diff.IsEmpty() {
		ui.SuccessMsg("No differences")
		return nil
	}

	ui.InfoMsg("%s", diff.Summary())
	ui.Println("")

	bySource := diff.BySource()
	for _, k := range diffKinds(from, to) {
		changes := bySource[k.String()]
		if len(changes) == 0 {
			continue
		}
		ui.InfoMsg("%s (%d changes)", ui.Backend(k), len(changes))
		for _, change := range changes {
			ui.Println("  %s", ui.ChangeLine(change))
		}
		ui.Println("")
	}

	return nil
}

// diffKinds lists the backends of both snapshots without repeats, in
// the order from then to captured them.
func diffKinds(from, to *snapshot.Snapshot) []manager.Kind {
	seen := make(map[manager.Kind]bool)
	var kinds []manager.Kind
	for _, k := range append(append([]manager.Kind{}, from.Backends...), to.Backends...) {
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// snapshotDeleteCmd deletes a snapshot
var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

var snapshotDeleteYes bool

func init() {
	snapshotDeleteCmd.Flags().BoolVarP(&snapshotDeleteYes, "yes", "y", false, "do not ask for confirmation")
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	// Verify snapshot exists
	snap, err := resolveSnapshot(store, args[0])
	if err != nil {
		return err
	}

	// Confirm deletion
	if !snapshotDeleteYes {
		ui.WarningMsg("About to delete snapshot: %s", snap.Summary())
		confirmed, err := ui.Confirm("Delete this snapshot?", false)
		if err != nil {
			return ErrAborted
		}
		if !confirmed {
			return ErrAborted
		}
	}

	if err := store.Delete(snap.ID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	ui.SuccessMsg("Deleted snapshot %s", snap.ID)
	return nil
}

// snapshotPruneCmd removes old snapshots
var snapshotPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old snapshots",
	Long: `Remove old snapshots, keeping the most recent ones.

By default keeps as many as snapshots.max in the config file (50).`,
	Args: cobra.NoArgs,
	RunE: runSnapshotPrune,
}

var pruneKeep int

func init() {
	snapshotPruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "number of snapshots to keep (default: snapshots.max)")
}

func runSnapshotPrune(cmd *cobra.Command, args []string) error {
	store, err := snapshot.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	keep := cfg.Snapshots.Max
	if pruneKeep > 0 {
		keep = pruneKeep
	}

	before, deleted, after, err := pruneSnapshots(store, keep)
	if err != nil {
		return err
	}

	if deleted == 0 {
		ui.InfoMsg("No snapshots to prune (keeping %d of %d)", before, before)
	} else {
		ui.SuccessMsg("Pruned %d old snapshot(s)", deleted)
	}
	ui.MutedMsg("Remaining snapshots: %d", after)

	return nil
}

// pruneSnapshots keeps the newest keep snapshots and reports the counts
// before and after.
func pruneSnapshots(store *snapshot.Store, keep int) (before, deleted, after int, err error) {
	if before, err = store.Count(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	if deleted, err = store.Prune(keep); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	if after, err = store.Count(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return before, deleted, after, nil
}
