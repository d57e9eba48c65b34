package tui

import (
	"context"
	"fmt"

	"pkgview/internal/catalog"
	"pkgview/internal/log"
	"pkgview/pkg/manager"
)

// State is the lifecycle state of the browser.
type State int

const (
	StateRunning State = iota
	StateExited
)

// Action is a user intent decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionDown
	ActionUp
	ActionFirst
	ActionLast
	ActionCycleBackend
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionQuit:         "quit",
	ActionDown:         "down",
	ActionUp:           "up",
	ActionFirst:        "first",
	ActionLast:         "last",
	ActionCycleBackend: "cycle-backend",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Model holds the browser state: the catalog, the details text of the
// current selection and whether the session is still running.
type Model struct {
	catalog *catalog.Catalog
	details *catalog.Details
	runner  manager.Runner

	state      State
	detailText string
}

// NewModel creates a running model over c and fetches the details of
// the initial selection.
func NewModel(ctx context.Context, c *catalog.Catalog, runner manager.Runner, details *catalog.Details) *Model {
	m := &Model{
		catalog: c,
		details: details,
		runner:  runner,
		state:   StateRunning,
	}
	m.refreshDetails(ctx)
	return m
}

// Handle applies one action. It reports whether the visible state
// changed. Actions after exit are ignored.
func (m *Model) Handle(ctx context.Context, a Action) bool {
	if m.state == StateExited {
		return false
	}

	before := m.selection()

	switch a {
	case ActionQuit:
		m.state = StateExited
		return true
	case ActionDown:
		m.catalog.SelectNext()
	case ActionUp:
		m.catalog.SelectPrevious()
	case ActionFirst:
		m.catalog.SelectFirst()
	case ActionLast:
		m.catalog.SelectLast()
	case ActionCycleBackend:
		if err := m.catalog.ToggleBackend(ctx, m.runner); err != nil {
			log.Warn("backend switch failed", "backend", m.catalog.Kind(), "error", err)
		}
		// A fresh listing drops memoized details.
		m.details.Invalidate()
		m.refreshDetails(ctx)
		return true
	default:
		return false
	}

	if m.selection() == before {
		return false
	}
	m.refreshDetails(ctx)
	return true
}

type selection struct {
	kind  manager.Kind
	index int
	ok    bool
}

func (m *Model) selection() selection {
	i, ok := m.catalog.Selected()
	return selection{kind: m.catalog.Kind(), index: i, ok: ok}
}

func (m *Model) refreshDetails(ctx context.Context) {
	m.detailText = m.details.FetchDetails(ctx, m.catalog)
}

// State returns the lifecycle state.
func (m *Model) State() State {
	return m.state
}

// Catalog returns the underlying catalog.
func (m *Model) Catalog() *catalog.Catalog {
	return m.catalog
}

// Title returns the list title naming the active backend.
func (m *Model) Title() string {
	return fmt.Sprintf("Installed Packages (%s)", m.catalog.Kind())
}

// Rows returns one "name version" row per package, in listing order.
func (m *Model) Rows() []string {
	rows := make([]string, 0, m.catalog.Len())
	for _, pkg := range m.catalog.Items() {
		rows = append(rows, pkg.Row())
	}
	return rows
}

// Highlighted returns the index of the highlighted row.
func (m *Model) Highlighted() (int, bool) {
	return m.catalog.Selected()
}

// DetailText returns the details text of the current selection.
func (m *Model) DetailText() string {
	return m.detailText
}

// Err returns the listing failure of the last backend switch, if any.
func (m *Model) Err() error {
	return m.catalog.Err()
}
