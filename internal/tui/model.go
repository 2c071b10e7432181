// Package tui is the interactive journal: one tab per store plus a stats page.
// It reads from a state.Container and sends every change through a Dispatcher.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/stats"
	"github.com/tLat87/SportJournal/internal/tui/components/achievements"
	"github.com/tLat87/SportJournal/internal/tui/components/goals"
	"github.com/tLat87/SportJournal/internal/tui/components/journal"
	"github.com/tLat87/SportJournal/internal/tui/components/notifications"
	statsview "github.com/tLat87/SportJournal/internal/tui/components/stats"
)

type SessionState int

const (
	StateJournal SessionState = iota
	StateGoals
	StateAchievements
	StateNotifications
	StateStats
	StateAddEntry
	StateConfirmDelete
)

var tabTitles = []string{"Journal", "Goals", "Achievements", "Notifications", "Stats"}

// Dispatcher applies actions and persists the result. cli.Context.Dispatch
// satisfies it.
type Dispatcher func(actions ...state.Action) error

type EntryFormModel struct {
	Name        string
	Description string
	Duration    string
	Calories    string
	Intensity   models.Intensity
	Mood        models.Mood
}

type Model struct {
	container *state.Container
	dispatch  Dispatcher
	changes   chan struct{}

	state    SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int

	journalModel       journal.Model
	goalsModel         goals.Model
	achievementsModel  achievements.Model
	notificationsModel notifications.Model
	statsModel         statsview.Model
	unread             int

	form          *huh.Form
	entryForm     *EntryFormModel
	entryToDelete journal.DeleteEntryMsg
	status        string
}

func NewModel(container *state.Container, dispatch Dispatcher) Model {
	s := container.State()
	now := container.Now()

	m := Model{
		container:          container,
		dispatch:           dispatch,
		changes:            make(chan struct{}, 1),
		state:              StateJournal,
		keys:               DefaultKeyMap(),
		help:               help.New(),
		journalModel:       journal.New(s.Journal.Entries, now, 0, 0),
		goalsModel:         goals.New(s.Goals.Goals, 0, 0),
		achievementsModel:  achievements.New(s.Achievements.Achievements, 0, 0),
		notificationsModel: notifications.New(s.Notifications.Notifications, 0, 0),
		statsModel:         statsview.New(stats.Summarize(s.Journal.Entries, now), 0),
		unread:             s.Notifications.UnreadCount,
	}

	// signal only: deliveries from concurrent dispatches can arrive out of
	// order, the container itself is always current
	changes := m.changes
	container.Subscribe(func(state.State) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateJournal:
		jk := journal.DefaultKeyMap()
		actions = []key.Binding{jk.Add, jk.Open, jk.Delete, jk.Back}
	case StateGoals:
		actions = []key.Binding{goals.DefaultKeyMap().Complete}
	case StateNotifications:
		nk := notifications.DefaultKeyMap()
		actions = []key.Binding{nk.Read, nk.ReadAll, nk.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

type stateChangedMsg struct{}

type dispatchResultMsg struct {
	err error
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

func (m Model) dispatchCmd(actions ...state.Action) tea.Cmd {
	dispatch := m.dispatch
	return func() tea.Msg {
		return dispatchResultMsg{err: dispatch(actions...)}
	}
}

// refresh pushes the container's current state into every component.
func (m *Model) refresh() {
	s := m.container.State()
	now := m.container.Now()
	m.journalModel.SetEntries(s.Journal.Entries, now)
	m.goalsModel.SetGoals(s.Goals.Goals)
	m.achievementsModel.SetAchievements(s.Achievements.Achievements)
	m.notificationsModel.SetNotifications(s.Notifications.Notifications)
	m.statsModel.SetSummary(stats.Summarize(s.Journal.Entries, now))
	m.unread = s.Notifications.UnreadCount
}
