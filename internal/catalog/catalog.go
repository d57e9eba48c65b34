// Package catalog holds the package list shown by the browser: the parsed
// listing of one backend and the current selection.
package catalog

import (
	"context"

	"pkgview/pkg/manager"
)

// Catalog is the parsed listing of the active backend plus a cursor.
// The cursor is -1 when the catalog is empty and in [0, Len()) otherwise.
type Catalog struct {
	kind     manager.Kind
	items    []manager.Package
	selected int
	err      error
}

// New builds a catalog from already parsed items. The first item is
// selected when there is one.
func New(kind manager.Kind, items []manager.Package) *Catalog {
	c := &Catalog{kind: kind}
	c.reset(items)
	return c
}

// Load lists and parses the installed packages of kind.
func Load(ctx context.Context, runner manager.Runner, kind manager.Kind) (*Catalog, error) {
	items, err := manager.List(ctx, runner, kind)
	if err != nil {
		return nil, err
	}
	return New(kind, items), nil
}

func (c *Catalog) reset(items []manager.Package) {
	if items == nil {
		items = []manager.Package{}
	}
	c.items = items
	c.selected = -1
	if len(items) > 0 {
		c.selected = 0
	}
}

// ToggleBackend switches to the next backend in cyclic order and reloads
// the listing, replacing items and selection entirely.
//
// When the next backend cannot be listed the catalog is left empty but
// bound to that backend, Err reports the failure, and the same error is
// returned. Toggling again moves on to the following backend.
func (c *Catalog) ToggleBackend(ctx context.Context, runner manager.Runner) error {
	next := c.kind.Next()
	items, err := manager.List(ctx, runner, next)

	c.kind = next
	c.err = err
	c.reset(items)

	return err
}

// SelectNext moves the cursor down, wrapping to the first item.
func (c *Catalog) SelectNext() {
	if len(c.items) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.items)
}

// SelectPrevious moves the cursor up, wrapping to the last item.
func (c *Catalog) SelectPrevious() {
	if len(c.items) == 0 {
		return
	}
	if c.selected <= 0 {
		c.selected = len(c.items) - 1
		return
	}
	c.selected--
}

// SelectFirst moves the cursor to the first item.
func (c *Catalog) SelectFirst() {
	if len(c.items) == 0 {
		return
	}
	c.selected = 0
}

// SelectLast moves the cursor to the last item.
func (c *Catalog) SelectLast() {
	if len(c.items) == 0 {
		return
	}
	c.selected = len(c.items) - 1
}

// Items returns the packages in listing order.
func (c *Catalog) Items() []manager.Package {
	return c.items
}

// Len returns the number of packages.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Selected returns the cursor position, or false when nothing is selected.
func (c *Catalog) Selected() (int, bool) {
	if c.selected < 0 || c.selected >= len(c.items) {
		return 0, false
	}
	return c.selected, true
}

// SelectedPackage returns the package under the cursor.
func (c *Catalog) SelectedPackage() (manager.Package, bool) {
	i, ok := c.Selected()
	if !ok {
		return manager.Package{}, false
	}
	return c.items[i], true
}

// Kind returns the active backend.
func (c *Catalog) Kind() manager.Kind {
	return c.kind
}

// Err returns the listing failure of the last backend switch, if any.
func (c *Catalog) Err() error {
	return c.err
}
