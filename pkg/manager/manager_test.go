package manager

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pkgview/pkg/manager/managertest"
)

func TestCommandTable(t *testing.T) {
	tests := []struct {
		kind     Kind
		list     string
		showArgs []string
	}{
		{KindPkg, "pkg list-installed", []string{"show", "htop"}},
		{KindApt, "apt list --installed", []string{"show", "htop"}},
		{KindPip, "pip list", []string{"show", "htop"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			cmd, err := Commands(tt.kind)
			if err != nil {
				t.Fatalf("Commands() error: %v", err)
			}
			if cmd.ListLine() != tt.list {
				t.Errorf("ListLine() = %q, want %q", cmd.ListLine(), tt.list)
			}
			if !reflect.DeepEqual(cmd.ShowArgs("htop"), tt.showArgs) {
				t.Errorf("ShowArgs() = %v, want %v", cmd.ShowArgs("htop"), tt.showArgs)
			}
			if cmd.Binary != tt.kind.String() {
				t.Errorf("Binary = %q, want %q", cmd.Binary, tt.kind.String())
			}
		})
	}

	if _, err := Commands(Kind(42)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Commands(42) error = %v, want ErrUnknownKind", err)
	}
}

func TestShowArgsDoesNotAlias(t *testing.T) {
	cmd, _ := Commands(KindApt)
	a := cmd.ShowArgs("vim")
	b := cmd.ShowArgs("git")
	if a[1] != "vim" || b[1] != "git" {
		t.Errorf("ShowArgs results share storage: %v %v", a, b)
	}
}

func TestListInstalled(t *testing.T) {
	runner := managertest.NewRunner().On("apt list --installed", "Listing...\nvim/stable 2:8.2 amd64\n")

	raw, err := ListInstalled(context.Background(), runner, KindApt)
	if err != nil {
		t.Fatalf("ListInstalled() error: %v", err)
	}
	if raw != "Listing...\nvim/stable 2:8.2 amd64\n" {
		t.Errorf("ListInstalled() = %q", raw)
	}
	if runner.CallCount("apt list --installed") != 1 {
		t.Errorf("expected one listing call, got %v", runner.Calls())
	}
}

func TestListInstalledLaunchFailure(t *testing.T) {
	cause := errors.New("exec: \"pkg\": executable file not found in $PATH")
	runner := managertest.NewRunner().Fail("pkg list-installed", cause)

	_, err := ListInstalled(context.Background(), runner, KindPkg)
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("error = %v, want ErrLaunch", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should wrap the runner error: %v", err)
	}

	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("error should be a *LaunchError: %T", err)
	}
	if launchErr.Kind != KindPkg || launchErr.Command != "pkg list-installed" {
		t.Errorf("LaunchError = %+v", launchErr)
	}
}

func TestListInstalledReplacesInvalidUTF8(t *testing.T) {
	runner := managertest.NewRunner().On("pip list", "caf\xe9 1.0\n")

	raw, err := ListInstalled(context.Background(), runner, KindPip)
	if err != nil {
		t.Fatalf("ListInstalled() error: %v", err)
	}
	if raw != "caf\uFFFD 1.0\n" {
		t.Errorf("ListInstalled() = %q", raw)
	}
}

func TestShowDetails(t *testing.T) {
	runner := managertest.NewRunner().
		On("pip show requests", "Name: requests\nVersion: 2.31.0\n").
		Fail("apt show vim", errors.New("permission denied"))

	got := ShowDetails(context.Background(), runner, KindPip, "requests")
	if got != "Name: requests\nVersion: 2.31.0\n" {
		t.Errorf("ShowDetails() = %q", got)
	}

	got = ShowDetails(context.Background(), runner, KindApt, "vim")
	if got != DetailsFailed {
		t.Errorf("ShowDetails() on launch failure = %q, want %q", got, DetailsFailed)
	}

	got = ShowDetails(context.Background(), runner, KindPkg, "missing")
	if got != "" {
		t.Errorf("ShowDetails() with empty output = %q, want empty", got)
	}
}

func TestList(t *testing.T) {
	runner := managertest.NewRunner().On("pkg list-installed", "htop/stable\nbash/5.2\n")

	pkgs, err := List(context.Background(), runner, KindPkg)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	expected := []Package{{Name: "htop", Version: "stable"}, {Name: "bash", Version: "5.2"}}
	if !reflect.DeepEqual(pkgs, expected) {
		t.Errorf("List() = %v, want %v", pkgs, expected)
	}
}
