package snapshot

import (
	"testing"
)

func TestCompare(t *testing.T) {
	from := testSnapshot("a",
		PackageState{Name: "requests", Version: "2.30.0", Source: "pip"},
		PackageState{Name: "six", Version: "1.16.0", Source: "pip"},
		PackageState{Name: "vim", Version: "stable", Source: "apt"},
	)
	to := testSnapshot("b",
		PackageState{Name: "requests", Version: "2.31.0", Source: "pip"},
		PackageState{Name: "vim", Version: "stable", Source: "apt"},
		PackageState{Name: "curl", Version: "8.0", Source: "apt"},
	)

	diff := Compare(from, to)

	if diff.From != "a" || diff.To != "b" {
		t.Errorf("From/To = %s/%s", diff.From, diff.To)
	}

	expected := []string{
		"+ curl (8.0) [apt]",
		"- six (1.16.0) [pip]",
		"~ requests: 2.30.0 -> 2.31.0 [pip]",
	}
	if len(diff.Changes) != len(expected) {
		t.Fatalf("Changes = %v", diff.Changes)
	}
	for i, want := range expected {
		if diff.Changes[i].String() != want {
			t.Errorf("Changes[%d] = %q, want %q", i, diff.Changes[i].String(), want)
		}
	}

	if diff.Summary() != "+1 added, -1 removed, ~1 changed" {
		t.Errorf("Summary() = %q", diff.Summary())
	}
	if len(diff.BySource()["pip"]) != 2 {
		t.Errorf("BySource() = %v", diff.BySource())
	}
}

func TestCompareIdentical(t *testing.T) {
	snap := testSnapshot("a", PackageState{Name: "six", Version: "1.16.0", Source: "pip"})

	diff := Compare(snap, snap)
	if !diff.IsEmpty() {
		t.Errorf("Compare() of identical snapshots = %v", diff.Changes)
	}
	if diff.Summary() != "No changes" {
		t.Errorf("Summary() = %q", diff.Summary())
	}
}

func TestCompareSameNameDifferentSource(t *testing.T) {
	from := testSnapshot("a", PackageState{Name: "curl", Version: "8.0", Source: "apt"})
	to := testSnapshot("b", PackageState{Name: "curl", Version: "8.0", Source: "pkg"})

	diff := Compare(from, to)
	if len(diff.Added()) != 1 || len(diff.Removed()) != 1 || len(diff.Changed()) != 0 {
		t.Errorf("packages from different backends are distinct, got %v", diff.Changes)
	}
}

func TestCompareDuplicatesUseFirstOccurrence(t *testing.T) {
	from := testSnapshot("a",
		PackageState{Name: "zsh", Version: "5.9", Source: "pkg"},
		PackageState{Name: "zsh", Version: "5.8", Source: "pkg"},
	)
	to := testSnapshot("b", PackageState{Name: "zsh", Version: "5.9", Source: "pkg"})

	if diff := Compare(from, to); !diff.IsEmpty() {
		t.Errorf("Compare() = %v, want no changes", diff.Changes)
	}
}
