package catalog

import (
	"context"
	"sync"

	"pkgview/internal/log"
	"pkgview/pkg/manager"
)

const (
	// NoSelection is shown when the catalog has no selected package.
	NoSelection = "No package selected"
	// NoDetails is shown when the details command printed nothing.
	NoDetails = "No details available"
)

type detailKey struct {
	kind manager.Kind
	name string
}

// Details fetches the details text for the selected package, optionally
// memoizing results per backend and package name.
type Details struct {
	runner manager.Runner
	cache  bool

	mu      sync.Mutex
	entries map[detailKey]string
}

// NewDetails creates a details fetcher. When cache is true, results are
// kept for the lifetime of the fetcher.
func NewDetails(runner manager.Runner, cache bool) *Details {
	return &Details{
		runner:  runner,
		cache:   cache,
		entries: make(map[detailKey]string),
	}
}

// FetchDetails returns the text to show for the selected package of c.
// It never fails: problems are reported through fallback texts.
func (d *Details) FetchDetails(ctx context.Context, c *Catalog) string {
	pkg, ok := c.SelectedPackage()
	if !ok {
		return NoSelection
	}

	key := detailKey{kind: c.Kind(), name: pkg.Name}
	if d.cache {
		d.mu.Lock()
		text, hit := d.entries[key]
		d.mu.Unlock()
		if hit {
			return text
		}
	}

	text := manager.ShowDetails(ctx, d.runner, c.Kind(), pkg.Name)
	switch text {
	case manager.DetailsFailed:
		log.Debug("details unavailable", "backend", c.Kind(), "package", pkg.Name)
		return text
	case "":
		text = NoDetails
	}

	if d.cache {
		d.mu.Lock()
		d.entries[key] = text
		d.mu.Unlock()
	}

	return text
}

// Invalidate drops every memoized result.
func (d *Details) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = make(map[detailKey]string)
}
