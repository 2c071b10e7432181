package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/tui/components/goals"
	"github.com/tLat87/SportJournal/internal/tui/components/journal"
	"github.com/tLat87/SportJournal/internal/tui/components/notifications"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case dispatchResultMsg:
		m.refresh()
		if msg.err != nil {
			m.status = fmt.Sprintf("Save failed: %v", msg.err)
		} else {
			m.status = ""
		}
		return m, nil
	}

	switch m.state {
	case StateAddEntry:
		return m.updateAddEntry(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case journal.AddEntryMsg:
		return m.openEntryForm()
	case journal.DeleteEntryMsg:
		m.entryToDelete = msg
		m.state = StateConfirmDelete
		return m, nil
	case goals.CompleteGoalMsg:
		return m, m.dispatchCmd(state.CompleteGoal{ID: msg.ID})
	case notifications.MarkReadMsg:
		return m, m.dispatchCmd(state.MarkAsRead{ID: msg.ID})
	case notifications.MarkAllReadMsg:
		return m, m.dispatchCmd(state.MarkAllAsRead{})
	case notifications.DeleteNotificationMsg:
		return m, m.dispatchCmd(state.DeleteNotification{ID: msg.ID})

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	return m.updateActive(msg)
}

// capturingKeys reports whether the active tab wants every key, as when the
// journal filter is open.
func (m Model) capturingKeys() bool {
	return m.state == StateJournal && m.journalModel.Filtering()
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}
	if m.capturingKeys() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabTitles))
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
		return true, nil
	}
	return false, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateJournal:
		m.journalModel, cmd = m.journalModel.Update(msg)
	case StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case StateAchievements:
		m.achievementsModel, cmd = m.achievementsModel.Update(msg)
	case StateNotifications:
		m.notificationsModel, cmd = m.notificationsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		id := m.entryToDelete.ID
		m.entryToDelete = journal.DeleteEntryMsg{}
		m.state = StateJournal
		return m, m.dispatchCmd(state.DeleteEntry{ID: id})
	case "n", "N", "esc", "q":
		m.entryToDelete = journal.DeleteEntryMsg{}
		m.state = StateJournal
	}
	return m, nil
}

func (m Model) openEntryForm() (tea.Model, tea.Cmd) {
	m.entryForm = &EntryFormModel{}
	m.form = newEntryForm(m.entryForm)
	m.status = ""
	m.state = StateAddEntry
	return m, m.form.Init()
}

func (m Model) updateAddEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateJournal
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		entry := m.entryForm.toEntry(m.container.Now())
		if err := entry.Validate(); err != nil {
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.state = StateJournal
		cmds = append(cmds, m.dispatchCmd(state.AddEntry{Entry: entry}))
	case huh.StateAborted:
		m.state = StateJournal
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) resize() {
	// tabs, help and padding
	h := max(m.height-6, 0)
	w := max(m.width-4, 0)
	m.journalModel.SetSize(w, h)
	m.goalsModel.SetSize(w, h)
	m.achievementsModel.SetSize(w, h)
	m.notificationsModel.SetSize(w, h)
	m.statsModel.SetWidth(w)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a whole number")
	}
	return n, nil
}
