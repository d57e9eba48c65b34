package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailsTitle is the title of the details pane.
const DetailsTitle = "Package Details"

// App wraps the Model with bubbletea components
type App struct {
	*Model
	ctx      context.Context
	keys     KeyMap
	styles   *Styles
	viewport viewport.Model
	help     help.Model

	ready  bool
	width  int
	height int
	offset int // first visible row of the list
}

// NewApp creates a new TUI application around m.
func NewApp(ctx context.Context, m *Model) *App {
	h := help.New()
	h.ShowAll = false

	return &App{
		Model:    m,
		ctx:      ctx,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		viewport: viewport.New(0, 0),
		help:     h,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()

	case tea.KeyMsg:
		if !a.Handle(a.ctx, a.keys.Resolve(msg)) {
			return a, nil
		}
		if a.State() == StateExited {
			return a, tea.Quit
		}
		a.resize()
		a.viewport.GotoTop()

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	return a, nil
}

// layout splits the screen between the list and details panes and
// returns the number of content rows of each.
func (a *App) layout() (listRows, detailRows int) {
	avail := a.height
	if a.Err() != nil {
		avail-- // banner
	}

	listHeight := avail * 7 / 10
	detailHeight := avail - listHeight

	// Borders and the title line take three rows per pane.
	return max(listHeight-3, 1), max(detailHeight-3, 1)
}

func (a *App) innerWidth() int {
	return max(a.width-2, 1)
}

// resize fits the viewport to the window, refreshes its content and
// keeps the highlighted row visible.
func (a *App) resize() {
	listRows, detailRows := a.layout()

	a.viewport.Width = a.innerWidth()
	a.viewport.Height = detailRows
	a.viewport.SetContent(a.styles.Details.Width(a.innerWidth()).Render(a.DetailText()))
	a.help.Width = a.innerWidth()

	i, ok := a.Highlighted()
	switch {
	case !ok:
		a.offset = 0
	case i < a.offset:
		a.offset = i
	case i >= a.offset+listRows:
		a.offset = i - listRows + 1
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.State() == StateExited {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	var sections []string
	if err := a.Err(); err != nil {
		sections = append(sections, a.styles.Banner.MaxWidth(a.width).Render("Error: "+err.Error()))
	}
	sections = append(sections, a.renderList(), a.renderDetails())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the bordered package list
func (a *App) renderList() string {
	listRows, _ := a.layout()
	width := a.innerWidth()
	line := lipgloss.NewStyle().MaxWidth(width)

	title := a.styles.PaneTitle.Render(a.Title()) + "  " + a.help.ShortHelpView(a.keys.ShortHelp())
	lines := []string{line.Render(title)}

	rows := a.Rows()
	if len(rows) == 0 {
		lines = append(lines, a.styles.Empty.Render("No packages"))
	}

	highlighted, ok := a.Highlighted()
	end := min(a.offset+listRows, len(rows))
	for i := a.offset; i < end; i++ {
		if ok && i == highlighted {
			lines = append(lines, a.styles.ListItemSelected.MaxWidth(width).Render(HighlightSymbol+rows[i]))
			continue
		}
		lines = append(lines, a.styles.ListItem.MaxWidth(width).Render(strings.Repeat(" ", len(HighlightSymbol))+rows[i]))
	}

	return a.styles.PaneFor(a.Catalog().Kind()).
		Width(width).
		Height(listRows + 1).
		Render(strings.Join(lines, "\n"))
}

// renderDetails renders the bordered details viewport
func (a *App) renderDetails() string {
	_, detailRows := a.layout()

	body := a.styles.PaneTitle.Render(DetailsTitle) + "\n" + a.viewport.View()

	return a.styles.Pane.
		Width(a.innerWidth()).
		Height(detailRows + 1).
		Render(body)
}

// Run starts the TUI application and blocks until the user quits.
func Run(ctx context.Context, m *Model) error {
	app := NewApp(ctx, m)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
