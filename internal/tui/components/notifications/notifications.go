package notifications

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/models"
)

type MarkReadMsg struct {
	ID string
}

type MarkAllReadMsg struct{}

type DeleteNotificationMsg struct {
	ID string
}

type Item struct {
	Notification models.Notification
}

func (i Item) Title() string {
	title := i.Notification.Type.Icon() + " " + i.Notification.Title
	if !i.Notification.IsRead {
		title = "● " + title
	}
	return title
}

func (i Item) Description() string {
	return i.Notification.Message + " · " + humanize.Time(i.Notification.CreatedAt)
}

func (i Item) FilterValue() string { return i.Notification.Title }

type KeyMap struct {
	Read    key.Binding
	ReadAll key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Read: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark read"),
		),
		ReadAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "mark all read"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(notifications []models.Notification, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Read, keys.ReadAll, keys.Delete}
	}

	m := Model{list: l, keys: keys}
	m.SetNotifications(notifications)
	return m
}

func (m *Model) SetNotifications(notifications []models.Notification) {
	items := make([]list.Item, len(notifications))
	for i, n := range notifications {
		items[i] = Item{Notification: n}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.ReadAll):
			return m, func() tea.Msg { return MarkAllReadMsg{} }
		case key.Matches(msg, m.keys.Read):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return MarkReadMsg{ID: item.Notification.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteNotificationMsg{ID: item.Notification.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No notifications."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
