// Package tui provides the interactive package browser.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pkgview/pkg/manager"
)

// Color palette - matches the CLI colors
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F3F4F6") // Light gray
)

// BackendColors for each package manager
var BackendColors = map[manager.Kind]lipgloss.Color{
	manager.KindPkg: lipgloss.Color("#2DBE60"), // Termux green
	manager.KindApt: lipgloss.Color("#A80030"), // Debian red
	manager.KindPip: lipgloss.Color("#3776AB"), // Python blue
}

// HighlightSymbol prefixes the highlighted row.
const HighlightSymbol = ">> "

// Styles contains all the lipgloss styles used in the TUI
type Styles struct {
	// Panes
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	PaneTitle  lipgloss.Style

	// List items
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	Empty            lipgloss.Style

	// Package display
	PackageName    lipgloss.Style
	PackageVersion lipgloss.Style

	// Details
	Details lipgloss.Style

	// Status
	Banner lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)

	s.PaneActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary)

	s.PaneTitle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	s.ListItem = lipgloss.NewStyle().
		Foreground(ColorText)

	s.ListItemSelected = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	s.Empty = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	s.PackageName = lipgloss.NewStyle().
		Bold(true)

	s.PackageVersion = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	s.Details = lipgloss.NewStyle().
		Foreground(ColorText)

	s.Banner = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	s.Help = lipgloss.NewStyle().
		Foreground(ColorMuted)

	return s
}

// PaneFor returns the list pane style tinted with the backend color.
func (s *Styles) PaneFor(k manager.Kind) lipgloss.Style {
	color, ok := BackendColors[k]
	if !ok {
		return s.PaneActive
	}
	return s.PaneActive.BorderForeground(color)
}
