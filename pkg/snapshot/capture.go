package snapshot

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"pkgview/internal/log"
	"pkgview/pkg/manager"
)

// Capture lists the installed packages of each backend concurrently and
// records them in a new snapshot, in the order kinds are given.
//
// Backends whose listing cannot be launched are left out and their
// errors are joined into the returned error. The snapshot is nil only
// when no backend could be listed.
func Capture(ctx context.Context, runner manager.Runner, description string, kinds []manager.Kind) (*Snapshot, error) {
	listings := make([][]manager.Package, len(kinds))
	failures := make([]error, len(kinds))

	var g errgroup.Group
	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			packages, err := manager.List(ctx, runner, k)
			if err != nil {
				log.Warn("snapshot: backend skipped", "backend", k, "error", err)
				failures[i] = err
				return nil
			}
			listings[i] = packages
			return nil
		})
	}
	_ = g.Wait()

	snap := New(description)
	for i, k := range kinds {
		if failures[i] == nil {
			snap.Add(k, listings[i])
		}
	}

	err := errors.Join(failures...)
	if len(snap.Backends) == 0 && len(kinds) > 0 {
		return nil, err
	}
	return snap, err
}
