package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
)

type AddEntryMsg struct{}

// DeleteEntryMsg asks the parent to confirm and delete an entry.
type DeleteEntryMsg struct {
	ID   string
	Name string
}

type Item struct {
	Entry models.JournalEntry
	now   time.Time
}

func (i Item) Title() string {
	title := i.Entry.ActivityName
	if i.Entry.HasPhoto() {
		title += " 📷"
	}
	return title
}

func (i Item) Description() string {
	parts := []string{humanize.RelTime(i.Entry.Date, i.now, "ago", "from now")}
	if i.Entry.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.Entry.Duration))
	}
	if i.Entry.Calories > 0 {
		parts = append(parts, humanize.Comma(int64(i.Entry.Calories))+" kcal")
	}
	if i.Entry.Intensity != "" {
		parts = append(parts, string(i.Entry.Intensity))
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string {
	return i.Entry.ActivityName + " " + i.Entry.ActivityDescription
}

type KeyMap struct {
	Add    key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model is the entry list plus a detail page for the selected entry.
type Model struct {
	list     list.Model
	detail   viewport.Model
	keys     KeyMap
	entries  []models.JournalEntry
	openID   string
	now      time.Time
	width    int
	height   int
	detailBg lipgloss.Style
}

func New(entries []models.JournalEntry, now time.Time, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Delete}
	}

	m := Model{
		list:     l,
		detail:   viewport.New(width, height),
		keys:     keys,
		width:    width,
		height:   height,
		detailBg: lipgloss.NewStyle().Padding(0, 1),
	}
	m.SetEntries(entries, now)
	return m
}

// SetEntries refreshes the list. An open detail page whose entry is gone
// closes, so a delete from the detail page lands back on the list.
func (m *Model) SetEntries(entries []models.JournalEntry, now time.Time) {
	m.entries = entries
	m.now = now
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e, now: now}
	}
	m.list.SetItems(items)

	if m.openID == "" {
		return
	}
	if e, ok := m.find(m.openID); ok {
		m.detail.SetContent(renderDetail(e, now))
	} else {
		m.openID = ""
	}
}

func (m Model) find(id string) (models.JournalEntry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.JournalEntry{}, false
}

// Detail reports whether the detail page is showing.
func (m Model) Detail() bool {
	return m.openID != ""
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Detail() {
		return m.updateDetail(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(Item); ok {
				m.openID = item.Entry.ID
				m.detail.SetContent(renderDetail(item.Entry, m.now))
				m.detail.GotoTop()
				return m, nil
			}
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, deleteCmd(item.Entry)
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.openID = ""
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.find(m.openID); ok {
				return m, deleteCmd(e)
			}
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func deleteCmd(e models.JournalEntry) tea.Cmd {
	return func() tea.Msg {
		return DeleteEntryMsg{ID: e.ID, Name: e.ActivityName}
	}
}

func (m Model) View() string {
	if m.Detail() {
		return m.detailBg.Render(m.detail.View())
	}
	if len(m.entries) == 0 {
		return "No entries yet. Press 'a' to log your first workout."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
	m.detail.Width = width
	m.detail.Height = height
}

var (
	detailTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(11)
)

func renderDetail(e models.JournalEntry, now time.Time) string {
	var b strings.Builder
	b.WriteString(detailTitle.Render(e.ActivityName))
	b.WriteString("\n\n")
	if e.ActivityDescription != "" {
		b.WriteString(e.ActivityDescription)
		b.WriteString("\n\n")
	}

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabel.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Date", fmt.Sprintf("%s %s (%s)", e.Date.Format(constants.DateFormat), e.Time, humanize.RelTime(e.Date, now, "ago", "from now")))
	if e.Duration > 0 {
		row("Duration", fmt.Sprintf("%d min", e.Duration))
	}
	if e.Calories > 0 {
		row("Calories", humanize.Comma(int64(e.Calories)))
	}
	row("Intensity", string(e.Intensity))
	row("Mood", string(e.Mood))
	row("Category", e.Category)
	row("Location", e.Location)
	row("Weather", e.Weather)
	row("Tags", strings.Join(e.Tags, ", "))
	row("Photo", e.PhotoURI)

	b.WriteString("\n")
	b.WriteString(detailLabel.Render("Share"))
	b.WriteString(e.ShareText())
	b.WriteString("\n\n[d] delete  [esc] back")
	return b.String()
}
