package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, entries ...models.JournalEntry) (Model, *state.Container) {
	t.Helper()
	c := state.New(state.WithClock(func() time.Time { return testNow }))
	for _, e := range entries {
		if err := c.Dispatch(state.AddEntry{Entry: e}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewModel(c, func(actions ...state.Action) error {
		for _, a := range actions {
			if err := c.Dispatch(a); err != nil {
				return err
			}
		}
		return nil
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}), c
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run sends msg and feeds the resulting command's message back in.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("Update(%#v) returned no command", msg)
	}
	return update(t, m, cmd())
}

// drive sends msg and feeds each returned command's message back in until a
// dispatch result has been applied or nothing more happens.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for i := 0; i < 4; i++ {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if _, ok := msg.(dispatchResultMsg); ok || cmd == nil {
			return m
		}
		msg = cmd()
	}
	return m
}

// applyChange applies the latest container change, as the subscription would.
func applyChange(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, waitForChange(m.changes)())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func entry(id, name string, ago time.Duration) models.JournalEntry {
	return models.JournalEntry{ID: id, ActivityName: name, Date: testNow.Add(-ago)}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)

	want := []SessionState{StateGoals, StateAchievements, StateNotifications, StateStats, StateJournal}
	for _, s := range want {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != s {
			t.Fatalf("after tab state = %d, want %d", m.state, s)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateStats {
		t.Errorf("after shift+tab state = %d, want %d", m.state, StateStats)
	}
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	m, c := newTestModel(t, entry("e1", "Swim", 2*time.Hour), entry("e2", "Run", time.Hour))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.journalModel.Detail() {
		t.Fatal("enter did not open the detail page")
	}

	m = run(t, m, keyRunes("d"))
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm delete", m.state)
	}
	if m.entryToDelete.ID != "e2" {
		t.Fatalf("deleting %q, want the selected entry e2", m.entryToDelete.ID)
	}

	m = run(t, m, keyRunes("y"))
	if m.status != "" {
		t.Fatalf("dispatch reported %q", m.status)
	}
	m = applyChange(t, m)

	if m.state != StateJournal || m.journalModel.Detail() {
		t.Error("deleting from the detail page did not return to the list")
	}
	entries := c.State().Journal.Entries
	if len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("entries after delete = %+v, want only e1", entries)
	}
}

func TestLateDeliveryShowsLatestState(t *testing.T) {
	c := state.New(state.WithClock(func() time.Time { return testNow }))

	// the first delivery stalls until a second dispatch has finished
	var once sync.Once
	blocked := make(chan struct{})
	release := make(chan struct{})
	c.Subscribe(func(state.State) {
		first := false
		once.Do(func() { first = true })
		if first {
			close(blocked)
			<-release
		}
	})

	m := NewModel(c, func(actions ...state.Action) error { return nil })
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	done := make(chan error, 1)
	go func() {
		done <- c.Dispatch(state.AddEntry{Entry: entry("e1", "Swim", 2*time.Hour)})
	}()
	<-blocked
	if err := c.Dispatch(state.AddEntry{Entry: entry("e2", "Bike", time.Hour)}); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	m = applyChange(t, m)
	view := m.View()
	for _, name := range []string{"Swim", "Bike"} {
		if !strings.Contains(view, name) {
			t.Errorf("view is missing %q after both dispatches:\n%s", name, view)
		}
	}
}

func TestDispatchResultRefreshes(t *testing.T) {
	m, c := newTestModel(t)
	if err := c.Dispatch(state.AddEntry{Entry: entry("e1", "Rowing", time.Hour)}); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, dispatchResultMsg{})
	if !strings.Contains(m.View(), "Rowing") {
		t.Errorf("view after dispatch result does not show the new entry:\n%s", m.View())
	}
}

func TestDeleteCancelled(t *testing.T) {
	m, c := newTestModel(t, entry("e1", "Swim", time.Hour))

	m = run(t, m, keyRunes("d"))
	m = update(t, m, keyRunes("n"))
	if m.state != StateJournal {
		t.Errorf("state = %d, want journal", m.state)
	}
	if len(c.State().Journal.Entries) != 1 {
		t.Error("cancelled delete removed the entry")
	}
}

func TestCompleteGoal(t *testing.T) {
	m, c := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	first := c.State().Goals.Goals[0]
	m = drive(t, m, keyRunes("c"))
	if m.status != "" {
		t.Fatalf("dispatch reported %q", m.status)
	}

	g, _ := c.State().Goals.Find(first.ID)
	if !g.IsCompleted {
		t.Errorf("goal %s not completed", first.ID)
	}
}

func TestNotificationKeys(t *testing.T) {
	m, c := newTestModel(t)
	for i := 0; i < 3; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.state != StateNotifications {
		t.Fatalf("state = %d, want notifications", m.state)
	}
	total := len(c.State().Notifications.Notifications)

	m = drive(t, m, keyRunes("x"))
	m = applyChange(t, m)
	if got := len(c.State().Notifications.Notifications); got != total-1 {
		t.Fatalf("notifications after x = %d, want %d", got, total-1)
	}

	m = drive(t, m, keyRunes("R"))
	m = applyChange(t, m)
	ns := c.State().Notifications
	if ns.UnreadCount != 0 {
		t.Errorf("unread after R = %d, want 0", ns.UnreadCount)
	}
	if m.unread != 0 {
		t.Errorf("tab badge unread = %d, want 0", m.unread)
	}
}

func TestAddOpensForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, keyRunes("a"))
	if m.state != StateAddEntry || m.form == nil {
		t.Fatalf("state = %d, want add entry form", m.state)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateJournal {
		t.Errorf("esc left state = %d, want journal", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(keyRunes("q"))
	if !next.(Model).quitting {
		t.Error("q did not set quitting")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}

func TestEntryFormToEntry(t *testing.T) {
	f := &EntryFormModel{
		Name:      "  Evening Run ",
		Duration:  "45",
		Calories:  "",
		Intensity: models.IntensityHigh,
		Mood:      models.MoodHappy,
	}
	e := f.toEntry(testNow)

	if e.ID == "" || e.ActivityName != "Evening Run" {
		t.Errorf("toEntry() = %+v", e)
	}
	if e.Duration != 45 || e.Calories != 0 {
		t.Errorf("toEntry() duration/calories = %d/%d, want 45/0", e.Duration, e.Calories)
	}
	if !e.Date.Equal(testNow) || e.Time != "18:30" || e.CreatedAt != testNow.UnixMilli() {
		t.Errorf("toEntry() timestamps = %v %q %d", e.Date, e.Time, e.CreatedAt)
	}
	if err := e.Validate(); err != nil {
		t.Errorf("toEntry() produced an invalid entry: %v", err)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 0},
		{in: " 30 ", want: 30},
		{in: "-5", wantErr: true},
		{in: "lots", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCount(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseCount(%q) = %d, %v", tt.in, got, err)
		}
	}
}
