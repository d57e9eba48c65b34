// Package ui provides terminal output helpers for the pkgview commands
// that do not take over the screen.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"pkgview/pkg/manager"
	"pkgview/pkg/snapshot"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)
	Accent  = color.New(color.FgCyan)

	PackageName    = color.New(color.FgWhite, color.Bold)
	PackageVersion = color.New(color.FgGreen)

	tableHeader = color.New(color.Bold)
)

// backendColors mirror the pane colors of the browser.
var backendColors = map[manager.Kind]*color.Color{
	manager.KindPkg: color.New(color.FgGreen, color.Bold),
	manager.KindApt: color.New(color.FgRed, color.Bold),
	manager.KindPip: color.New(color.FgBlue, color.Bold),
}

var changeColors = map[snapshot.ChangeType]*color.Color{
	snapshot.ChangeAdded:   color.New(color.FgGreen),
	snapshot.ChangeRemoved: color.New(color.FgRed),
	snapshot.ChangeChanged: color.New(color.FgYellow),
}

// UseColors and UseUnicode reflect the output section of the config.
var (
	UseColors  = true
	UseUnicode = true
)

type symbolSet struct {
	success, failure, warning, info string
}

var (
	unicodeSymbols = symbolSet{success: "✓", failure: "✗", warning: "!", info: "→"}
	asciiSymbols   = symbolSet{success: "[OK]", failure: "[ERROR]", warning: "[WARN]", info: "->"}
	symbols        = unicodeSymbols
)

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Init applies the color and unicode settings.
func Init(useColors, useUnicode bool) {
	UseColors = useColors
	UseUnicode = useUnicode

	if !useColors || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	symbols = unicodeSymbols
	if !useUnicode {
		symbols = asciiSymbols
	}
}

func printLine(w io.Writer, c *color.Color, prefix, format string, args ...interface{}) {
	if prefix != "" {
		prefix += " "
	}
	fmt.Fprintln(w, c.Sprint(prefix+fmt.Sprintf(format, args...)))
}

// SuccessMsg prints a success message.
func SuccessMsg(format string, args ...interface{}) {
	printLine(stdout, Success, symbols.success, format, args...)
}

// ErrorMsg prints an error message on stderr.
func ErrorMsg(format string, args ...interface{}) {
	printLine(stderr, Error, symbols.failure, format, args...)
}

// WarningMsg prints a warning on stderr.
func WarningMsg(format string, args ...interface{}) {
	printLine(stderr, Warning, symbols.warning, format, args...)
}

func InfoMsg(format string, args ...interface{}) {
	printLine(stdout, Info, symbols.info, format, args...)
}

// HeaderMsg prints a header preceded by a blank line.
func HeaderMsg(format string, args ...interface{}) {
	fmt.Fprintln(stdout)
	printLine(stdout, Header, "", format, args...)
}

func MutedMsg(format string, args ...interface{}) {
	printLine(stdout, Muted, "", format, args...)
}

// Println prints a plain formatted line.
func Println(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

// Backend returns the name of k in its backend color.
func Backend(k manager.Kind) string {
	if c, ok := backendColors[k]; ok {
		return c.Sprint(k.String())
	}
	return k.String()
}

// BackendMsg prints an indented line labelled with the backend name.
func BackendMsg(k manager.Kind, format string, args ...interface{}) {
	fmt.Fprintf(stdout, "  %s: %s\n", Backend(k), fmt.Sprintf(format, args...))
}

// ChangeLine renders one snapshot change in its diff color.
func ChangeLine(c snapshot.Change) string {
	if col, ok := changeColors[c.Type]; ok {
		return col.Sprint(c.String())
	}
	return c.String()
}
