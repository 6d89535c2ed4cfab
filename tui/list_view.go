// ABOUTME: Deal list view with tabs, search, filter and sort cycling
// ABOUTME: Lifecycle keys act on the selected row
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func (m Model) currentView() []models.Deal {
	return m.service.View(m.query, m.session)
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("MATIP DEALS"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString("Search: " + m.searchInput.View())
		s.WriteString("\n\n")
	} else {
		s.WriteString(fmt.Sprintf("filter: %s  sort: %s", m.query.Filter, m.query.Sort))
		if m.query.Search != "" {
			s.WriteString(fmt.Sprintf("  search: %q", m.query.Search))
		}
		s.WriteString("\n\n")
	}

	s.WriteString(m.renderDealsTable())
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	} else if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	openLabel := "Open"
	doneLabel := "Done"

	var rendered []string
	if m.query.Tab == deals.TabOpen {
		rendered = append(rendered, tabActiveStyle.Render(openLabel), tabInactiveStyle.Render(doneLabel))
	} else {
		rendered = append(rendered, tabInactiveStyle.Render(openLabel), tabActiveStyle.Render(doneLabel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderDealsTable() string {
	view := m.currentView()

	columns := []table.Column{
		{Title: "Client", Width: 18},
		{Title: "Memo", Width: 32},
		{Title: "Due", Width: 12},
		{Title: "I/U/P", Width: 8},
		{Title: "Assignee", Width: 12},
	}

	var rows []table.Row
	for _, deal := range view {
		due := deal.DueDate
		if deal.Status == models.StatusOpen && deal.DueDate < m.session.Today {
			due = overdueStyle.Render(due + " !")
		}
		rows = append(rows, table.Row{
			deal.ClientName,
			firstLine(deal.Memo),
			due,
			triBadge(deal),
			deal.Assignee,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-12),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderListHelp() string {
	action := "enter: complete"
	if m.query.Tab == deals.TabDone {
		action = "enter: restore"
	}
	help := []string{
		"↑/↓: navigate",
		"tab: open/done",
		"/: search",
		"f: filter",
		"s: sort",
		action,
		"x: delete",
		"r: reload",
		"q: quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.currentView())-1 {
			m.selectedRow++
		}
	case "tab":
		if m.query.Tab == deals.TabOpen {
			m.query.Tab = deals.TabDone
		} else {
			m.query.Tab = deals.TabOpen
		}
		m.selectedRow = 0
	case "/":
		m.searching = true
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		return m, textinput.Blink
	case "f":
		m.query.Filter = nextFilter(m.query.Filter)
		m.selectedRow = 0
	case "s":
		m.query.Sort = nextSort(m.query.Sort)
		m.selectedRow = 0
	case "enter":
		return m.toggleSelected()
	case "x":
		if deal, ok := m.selectedDeal(); ok {
			m.deleteID = deal.ID
			m.deleteLabel = dealLabel(deal)
			m.viewMode = ViewConfirmDelete
		}
	case "r":
		return m, m.refreshCmd()
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query.Search = m.searchInput.Value()
		m.searching = false
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	deal, ok := m.selectedDeal()
	if !ok {
		return m, nil
	}

	var err error
	if deal.Status == models.StatusOpen {
		_, err = m.service.Complete(context.Background(), deal.ID)
		m.status = "✓ Completed: " + dealLabel(deal)
	} else {
		_, err = m.service.Restore(context.Background(), deal.ID)
		m.status = "✓ Restored: " + dealLabel(deal)
	}
	if err != nil {
		m.status = ""
		m.err = err
	} else {
		m.err = nil
	}

	if m.selectedRow >= len(m.currentView()) && m.selectedRow > 0 {
		m.selectedRow--
	}
	return m, nil
}

func (m Model) selectedDeal() (models.Deal, bool) {
	view := m.currentView()
	if len(view) == 0 || m.selectedRow >= len(view) {
		return models.Deal{}, false
	}
	return view[m.selectedRow], true
}

func dealLabel(d models.Deal) string {
	if d.ClientName != "" {
		return d.ClientName
	}
	return firstLine(d.Memo)
}

func firstLine(memo string) string {
	if i := strings.IndexByte(memo, '\n'); i >= 0 {
		memo = memo[:i]
	}
	runes := []rune(memo)
	if len(runes) > 32 {
		return string(runes[:32]) + "…"
	}
	return memo
}

func triBadge(d models.Deal) string {
	return fmt.Sprintf("%s/%s/%s", initial(d.Importance), initial(d.Urgency), initial(d.Profit))
}

func initial(t models.Tri) string {
	switch t {
	case models.TriHigh:
		return "H"
	case models.TriLow:
		return "L"
	default:
		return "M"
	}
}

func nextFilter(f deals.Filter) deals.Filter {
	order := []deals.Filter{
		deals.FilterAll,
		deals.FilterMine,
		deals.FilterDelegated,
		deals.FilterSelfAssigned,
		deals.FilterOverdue,
	}
	for i, v := range order {
		if v == f {
			return order[(i+1)%len(order)]
		}
	}
	return deals.FilterAll
}

func nextSort(k deals.SortKey) deals.SortKey {
	order := []deals.SortKey{
		deals.SortDueSoonest,
		deals.SortImportance,
		deals.SortUrgency,
		deals.SortProfit,
		deals.SortNewest,
		deals.SortOldest,
	}
	for i, v := range order {
		if v == k {
			return order[(i+1)%len(order)]
		}
	}
	return deals.SortDueSoonest
}
