package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pkgview/pkg/manager"
	"pkgview/pkg/snapshot"
)

func init() {
	color.NoColor = true
}

func TestFprintPackages(t *testing.T) {
	var buf bytes.Buffer
	FprintPackages(&buf, []manager.Package{
		{Name: "requests", Version: "2.31.0"},
		{Name: "six", Version: "1.16.0"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "VERSION") {
		t.Errorf("unexpected header %q", lines[0])
	}
	// Columns are aligned
	if strings.Index(lines[1], "2.31.0") != strings.Index(lines[2], "1.16.0") {
		t.Errorf("version column not aligned:\n%s", buf.String())
	}
}

func TestFprintPackagesEmpty(t *testing.T) {
	var buf bytes.Buffer
	FprintPackages(&buf, nil)

	if strings.TrimSpace(buf.String()) != "No packages found" {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintBackends(t *testing.T) {
	var buf bytes.Buffer
	PrintBackends(&buf, []BackendStatus{
		{Kind: manager.KindPkg, Available: true, Path: "/usr/bin/pkg", Default: true, List: "pkg list-installed", Show: "pkg show <name>"},
		{Kind: manager.KindPip, List: "pip list", Show: "pip show <name>"},
	})

	out := buf.String()
	for _, want := range []string{"BACKEND", "pkg (default)", "/usr/bin/pkg", "not found", "pip show <name>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPackageSearcher(t *testing.T) {
	packages := []manager.Package{{Name: "Requests"}, {Name: "six"}}
	search := PackageSearcher(packages)

	tests := []struct {
		input    string
		index    int
		expected bool
	}{
		{"req", 0, true},
		{"REQ", 0, true},
		{"req", 1, false},
		{"", 1, true},
		{" si ", 1, true},
	}

	for _, tt := range tests {
		if got := search(tt.input, tt.index); got != tt.expected {
			t.Errorf("search(%q, %d) = %v, want %v", tt.input, tt.index, got, tt.expected)
		}
	}
}

func TestSelectPackageShortcuts(t *testing.T) {
	if _, err := SelectPackage(nil, "pick"); err == nil {
		t.Error("SelectPackage() should fail with no packages")
	}

	only := []manager.Package{{Name: "htop", Version: "stable"}}
	pkg, err := SelectPackage(only, "pick")
	if err != nil {
		t.Fatalf("SelectPackage() error: %v", err)
	}
	if pkg.Name != "htop" {
		t.Errorf("SelectPackage() = %v, want htop", pkg)
	}
}

// captureOutput redirects the message writers for one test.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return out, errOut
}

func TestMessages(t *testing.T) {
	out, errOut := captureOutput(t)

	SuccessMsg("saved %d", 3)
	ErrorMsg("broken")
	WarningMsg("skipped %s", "pip")

	if out.String() != "✓ saved 3\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errOut.String() != "✗ broken\n! skipped pip\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestInitASCIISymbols(t *testing.T) {
	out, _ := captureOutput(t)
	Init(false, false)
	t.Cleanup(func() { Init(false, true) })

	SuccessMsg("done")
	InfoMsg("next")

	if out.String() != "[OK] done\n-> next\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestBackendMsg(t *testing.T) {
	out, _ := captureOutput(t)

	BackendMsg(manager.KindApt, "%d packages", 12)

	if out.String() != "  apt: 12 packages\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if Backend(manager.Kind(9)) != manager.Kind(9).String() {
		t.Error("Backend() should fall back to the plain name")
	}
}

func TestChangeLine(t *testing.T) {
	tests := []struct {
		change   snapshot.Change
		expected string
	}{
		{snapshot.Change{Type: snapshot.ChangeAdded, Package: "curl", NewVersion: "8.0", Source: "apt"}, "+ curl (8.0) [apt]"},
		{snapshot.Change{Type: snapshot.ChangeRemoved, Package: "six", OldVersion: "1.16.0", Source: "pip"}, "- six (1.16.0) [pip]"},
		{snapshot.Change{Type: snapshot.ChangeChanged, Package: "vim", OldVersion: "a", NewVersion: "b", Source: "apt"}, "~ vim: a -> b [apt]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.change.Type), func(t *testing.T) {
			if got := ChangeLine(tt.change); got != tt.expected {
				t.Errorf("ChangeLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}
