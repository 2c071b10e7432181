package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateJournal:
		content = docStyle.Render(m.journalModel.View())
	case StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case StateAchievements:
		content = docStyle.Render(m.achievementsModel.View())
	case StateNotifications:
		content = docStyle.Render(m.notificationsModel.View())
	case StateStats:
		content = docStyle.Render(m.statsModel.View())
	case StateAddEntry:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case StateAddEntry, StateConfirmDelete:
		active = StateJournal
	}

	var tabs []string
	for i, title := range tabTitles {
		if SessionState(i) == StateNotifications && m.unread > 0 {
			title += " " + badgeStyle.Render(fmt.Sprint(m.unread))
		}
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", m.entryToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
