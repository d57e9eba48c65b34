package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pkgview/pkg/manager"
)

// Table wraps tabwriter for consistent styling.
type Table struct {
	writer  *tabwriter.Writer
	headers []string
}

// NewTable creates a new table with default styling.
func NewTable(header []string) *Table {
	return NewTableWriter(stdout, header)
}

// NewTableWriter creates a new table that writes to a specific writer.
func NewTableWriter(w io.Writer, header []string) *Table {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	t := &Table{
		writer:  tw,
		headers: header,
	}

	if len(header) > 0 {
		headerRow := make([]string, len(header))
		for i, h := range header {
			headerRow[i] = tableHeader.Sprint(strings.ToUpper(h))
		}
		fmt.Fprintln(tw, strings.Join(headerRow, "\t"))
	}

	return t
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	fmt.Fprintln(t.writer, strings.Join(row, "\t"))
}

// Render outputs the table.
func (t *Table) Render() {
	t.writer.Flush()
}

// PrintPackages prints a list of packages in a formatted table.
func PrintPackages(packages []manager.Package) {
	FprintPackages(stdout, packages)
}

// FprintPackages writes a package table to w.
func FprintPackages(w io.Writer, packages []manager.Package) {
	if len(packages) == 0 {
		fmt.Fprintln(w, Muted.Sprint("No packages found"))
		return
	}

	t := NewTableWriter(w, []string{"name", "version"})
	for _, pkg := range packages {
		t.AddRow(PackageName.Sprint(pkg.Name), PackageVersion.Sprint(pkg.Version))
	}
	t.Render()
}

// BackendStatus is one row of the backends report.
type BackendStatus struct {
	Kind      manager.Kind
	Path      string
	Available bool
	Default   bool
	List      string
	Show      string
}

// PrintBackends prints which package managers are installed and the
// commands used for each.
func PrintBackends(w io.Writer, backends []BackendStatus) {
	t := NewTableWriter(w, []string{"backend", "status", "list command", "show command"})

	for _, b := range backends {
		name := Backend(b.Kind)
		if b.Default {
			name += Muted.Sprint(" (default)")
		}

		status := Error.Sprint(symbols.failure + " not found")
		if b.Available {
			status = Success.Sprint(symbols.success+" ") + b.Path
		}

		t.AddRow(name, status, b.List, b.Show)
	}

	t.Render()
}

// PrintField prints a single labelled field.
func PrintField(label, value string) {
	fmt.Fprintf(stdout, "  %s: %s\n", Accent.Sprint(label), value)
}
