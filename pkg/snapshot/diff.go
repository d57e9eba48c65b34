package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeType represents the type of change between snapshots.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"   // Package appeared
	ChangeRemoved ChangeType = "removed" // Package disappeared
	ChangeChanged ChangeType = "changed" // Package version differs
)

var changeOrder = map[ChangeType]int{
	ChangeAdded:   1,
	ChangeRemoved: 2,
	ChangeChanged: 3,
}

// Change represents a single package change between snapshots.
type Change struct {
	Type       ChangeType `json:"type"`
	Package    string     `json:"package"`
	Source     string     `json:"source"`
	OldVersion string     `json:"old_version,omitempty"`
	NewVersion string     `json:"new_version,omitempty"`
}

// String returns a human-readable description of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeAdded:
		return fmt.Sprintf("+ %s (%s) [%s]", c.Package, c.NewVersion, c.Source)
	case ChangeRemoved:
		return fmt.Sprintf("- %s (%s) [%s]", c.Package, c.OldVersion, c.Source)
	case ChangeChanged:
		return fmt.Sprintf("~ %s: %s -> %s [%s]", c.Package, c.OldVersion, c.NewVersion, c.Source)
	default:
		return fmt.Sprintf("? %s [%s]", c.Package, c.Source)
	}
}

// Diff represents the difference between two snapshots.
type Diff struct {
	From    string   `json:"from"` // ID of the older snapshot
	To      string   `json:"to"`   // ID of the newer snapshot
	Changes []Change `json:"changes"`
}

// IsEmpty returns true if there are no changes.
func (d *Diff) IsEmpty() bool {
	return len(d.Changes) == 0
}

func (d *Diff) ofType(t ChangeType) []Change {
	var result []Change
	for _, c := range d.Changes {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Added returns all packages that were added.
func (d *Diff) Added() []Change {
	return d.ofType(ChangeAdded)
}

// Removed returns all packages that were removed.
func (d *Diff) Removed() []Change {
	return d.ofType(ChangeRemoved)
}

// Changed returns all packages whose version differs.
func (d *Diff) Changed() []Change {
	return d.ofType(ChangeChanged)
}

// BySource groups changes by their backend.
func (d *Diff) BySource() map[string][]Change {
	result := make(map[string][]Change)
	for _, c := range d.Changes {
		result[c.Source] = append(result[c.Source], c)
	}
	return result
}

// Summary returns a brief summary of the diff.
func (d *Diff) Summary() string {
	if d.IsEmpty() {
		return "No changes"
	}

	var parts []string
	if n := len(d.Added()); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d added", n))
	}
	if n := len(d.Removed()); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d removed", n))
	}
	if n := len(d.Changed()); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d changed", n))
	}
	return strings.Join(parts, ", ")
}

// index maps source/name to the first occurrence of each package.
func index(s *Snapshot) map[string]PackageState {
	m := make(map[string]PackageState, len(s.Packages))
	for _, pkg := range s.Packages {
		key := pkg.Source + "/" + pkg.Name
		if _, seen := m[key]; !seen {
			m[key] = pkg
		}
	}
	return m
}

// Compare computes the difference between two snapshots.
// 'from' is the older snapshot, 'to' is the newer one. When a backend
// lists a name more than once, its first occurrence is compared.
func Compare(from, to *Snapshot) *Diff {
	diff := &Diff{
		From:    from.ID,
		To:      to.ID,
		Changes: []Change{},
	}

	fromMap := index(from)
	toMap := index(to)

	// Find added and changed packages
	for key, toPkg := range toMap {
		fromPkg, exists := fromMap[key]
		switch {
		case !exists:
			diff.Changes = append(diff.Changes, Change{
				Type:       ChangeAdded,
				Package:    toPkg.Name,
				Source:     toPkg.Source,
				NewVersion: toPkg.Version,
			})
		case fromPkg.Version != toPkg.Version:
			diff.Changes = append(diff.Changes, Change{
				Type:       ChangeChanged,
				Package:    toPkg.Name,
				Source:     toPkg.Source,
				OldVersion: fromPkg.Version,
				NewVersion: toPkg.Version,
			})
		}
	}

	// Find removed packages
	for key, fromPkg := range fromMap {
		if _, exists := toMap[key]; !exists {
			diff.Changes = append(diff.Changes, Change{
				Type:       ChangeRemoved,
				Package:    fromPkg.Name,
				Source:     fromPkg.Source,
				OldVersion: fromPkg.Version,
			})
		}
	}

	// Sort changes for consistent output
	sort.Slice(diff.Changes, func(i, j int) bool {
		a, b := diff.Changes[i], diff.Changes[j]
		if a.Type != b.Type {
			return changeOrder[a.Type] < changeOrder[b.Type]
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Package < b.Package
	})

	return diff
}
