// ABOUTME: Delete confirmation view
// ABOUTME: Requires an explicit y keypress before the irreversible delete
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderConfirmDeleteView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DELETE DEAL"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Permanently delete %q?\n", m.deleteLabel))
	s.WriteString("This cannot be undone.\n\n")
	s.WriteString(helpStyle.Render("y: delete • n/esc: cancel"))

	return s.String()
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if err := m.service.Delete(context.Background(), m.deleteID); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = "✓ Deleted: " + m.deleteLabel
		}
		m.deleteID = ""
		m.deleteLabel = ""
		m.viewMode = ViewList
		if m.selectedRow >= len(m.currentView()) && m.selectedRow > 0 {
			m.selectedRow--
		}
	case "n", "esc":
		m.deleteID = ""
		m.deleteLabel = ""
		m.viewMode = ViewList
	}
	return m, nil
}
