package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DetailsFailed is the details text used when the show command cannot be launched.
const DetailsFailed = "Failed to fetch package details"

// ErrLaunch matches every listing failure caused by a command that could not run.
var ErrLaunch = errors.New("could not launch package manager")

// Runner runs a program to completion and returns its standard output.
// A non-nil error means the program could not be launched (or timed out);
// exit status is not reported.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Command describes the exact invocations used for one backend.
type Command struct {
	Binary string
	List   []string
	Show   []string
}

// ListArgs returns the arguments of the listing command.
func (c Command) ListArgs() []string {
	return append([]string(nil), c.List...)
}

// ShowArgs returns the arguments of the details command for pkg.
func (c Command) ShowArgs(pkg string) []string {
	args := append([]string(nil), c.Show...)
	return append(args, pkg)
}

// ListLine renders the listing command as typed in a shell.
func (c Command) ListLine() string {
	return strings.Join(append([]string{c.Binary}, c.List...), " ")
}

// ShowLine renders the details command with a placeholder package name.
func (c Command) ShowLine() string {
	return strings.Join(append([]string{c.Binary}, c.ShowArgs("<name>")...), " ")
}

var commands = map[Kind]Command{
	KindPkg: {Binary: "pkg", List: []string{"list-installed"}, Show: []string{"show"}},
	KindApt: {Binary: "apt", List: []string{"list", "--installed"}, Show: []string{"show"}},
	KindPip: {Binary: "pip", List: []string{"list"}, Show: []string{"show"}},
}

// Commands returns the command table entry for k.
func Commands(k Kind) (Command, error) {
	cmd, ok := commands[k]
	if !ok {
		return Command{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return cmd, nil
}

// LaunchError reports a listing command that could not be started.
type LaunchError struct {
	Kind    Kind
	Command string
	Err     error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying runner error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLaunch) true for every LaunchError.
func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunch
}

// ListInstalled runs the listing command for k and returns its output as text.
func ListInstalled(ctx context.Context, runner Runner, k Kind) (string, error) {
	cmd, err := Commands(k)
	if err != nil {
		return "", err
	}

	out, err := runner.Output(ctx, cmd.Binary, cmd.ListArgs()...)
	if err != nil {
		return "", &LaunchError{Kind: k, Command: cmd.ListLine(), Err: err}
	}

	return decode(out), nil
}

// ShowDetails runs the details command for pkg and returns its raw output.
// Launch failures yield DetailsFailed; this never returns an error.
func ShowDetails(ctx context.Context, runner Runner, k Kind, pkg string) string {
	cmd, err := Commands(k)
	if err != nil {
		return DetailsFailed
	}

	out, err := runner.Output(ctx, cmd.Binary, cmd.ShowArgs(pkg)...)
	if err != nil {
		return DetailsFailed
	}

	return decode(out)
}

// List runs the listing command for k and parses it.
func List(ctx context.Context, runner Runner, k Kind) ([]Package, error) {
	raw, err := ListInstalled(ctx, runner, k)
	if err != nil {
		return nil, err
	}
	return Parse(k, raw), nil
}

// decode converts captured output to text, replacing invalid UTF-8.
func decode(out []byte) string {
	return strings.ToValidUTF8(string(out), "\uFFFD")
}
