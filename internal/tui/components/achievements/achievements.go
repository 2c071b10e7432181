package achievements

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/models"
)

type Item struct {
	Achievement models.Achievement
}

func (i Item) Title() string {
	if i.Achievement.IsUnlocked() {
		return i.Achievement.Icon + " " + i.Achievement.Title
	}
	return "🔒 " + i.Achievement.Title
}

func (i Item) Description() string {
	a := i.Achievement
	if a.IsUnlocked() {
		return fmt.Sprintf("%s · unlocked %s", a.Description, humanize.Time(*a.UnlockedAt))
	}
	return fmt.Sprintf("%s · %d/%d", a.Description, a.Progress, a.MaxProgress)
}

func (i Item) FilterValue() string { return i.Achievement.Title }

// Model lists achievements. It is read-only; progress comes from the CLI.
type Model struct {
	list     list.Model
	unlocked int
	total    int
}

func New(achievements []models.Achievement, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	m := Model{list: l}
	m.SetAchievements(achievements)
	return m
}

func (m *Model) SetAchievements(achievements []models.Achievement) {
	items := make([]list.Item, len(achievements))
	m.unlocked = 0
	for i, a := range achievements {
		items[i] = Item{Achievement: a}
		if a.IsUnlocked() {
			m.unlocked++
		}
	}
	m.total = len(achievements)
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return fmt.Sprintf("%d of %d unlocked\n\n%s", m.unlocked, m.total, m.list.View())
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-2)
}
