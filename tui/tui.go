// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive tabbed browser over the deal working set
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewConfirmDelete
)

// Model is the main bubbletea model
type Model struct {
	service *deals.Service
	session deals.Session

	viewMode ViewMode
	query    deals.Query

	searchInput textinput.Model
	searching   bool

	selectedRow int

	// Delete confirmation state
	deleteID    string
	deleteLabel string

	status string

	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(service *deals.Service, session deals.Session) Model {
	input := textinput.New()
	input.Placeholder = "search client or memo"
	input.CharLimit = 64

	return Model{
		service:     service,
		session:     session,
		viewMode:    ViewList,
		query:       deals.Query{Tab: deals.TabOpen, Sort: deals.SortDueSoonest},
		searchInput: input,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

type refreshedMsg struct{ err error }

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.service.Refresh(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshedMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
