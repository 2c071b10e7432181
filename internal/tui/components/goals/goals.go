package goals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tLat87/SportJournal/internal/models"
)

type CompleteGoalMsg struct {
	ID string
}

type Item struct {
	Goal models.Goal
	bar  progress.Model
}

func (i Item) Title() string {
	if i.Goal.IsCompleted {
		return "✓ " + i.Goal.Title
	}
	return i.Goal.Title
}

func (i Item) Description() string {
	pct := min(i.Goal.Percent(), 100)
	return fmt.Sprintf("%s %d/%d %s", i.bar.ViewAs(pct/100), i.Goal.CurrentValue, i.Goal.TargetValue, i.Goal.Unit)
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	bar  progress.Model
}

func New(goals []models.Goal, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}

	m := Model{
		list: l,
		keys: keys,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(24)),
	}
	m.SetGoals(goals)
	return m
}

func (m *Model) SetGoals(goals []models.Goal) {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = Item{Goal: g, bar: m.bar}
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

		if key.Matches(msg, m.keys.Complete) {
			if item, ok := m.list.SelectedItem().(Item); ok && !item.Goal.IsCompleted {
				return m, func() tea.Msg {
					return CompleteGoalMsg{ID: item.Goal.ID}
				}
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
