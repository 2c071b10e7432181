package state

import (
	"slices"
	"strings"
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

// JournalState is the Entry Store: journal entries ordered most recent first.
type JournalState struct {
	Entries   []models.JournalEntry `json:"entries"`
	IsLoading bool                  `json:"-"`
}

// JournalAction is an action handled by ReduceJournal.
type JournalAction interface {
	Action
	journalAction()
}

// AddEntry inserts Entry at the front. An entry already holding the same id is
// dropped so ids stay unique.
type AddEntry struct{ Entry models.JournalEntry }

// UpdateEntry replaces the entry with a matching id; unknown ids are ignored.
type UpdateEntry struct{ Entry models.JournalEntry }

// DeleteEntry removes the entry with ID; unknown ids are ignored.
type DeleteEntry struct{ ID string }

// LoadEntries replaces the whole collection.
type LoadEntries struct{ Entries []models.JournalEntry }

// SetLoading sets the transient loading flag.
type SetLoading struct{ Loading bool }

func (AddEntry) Kind() string    { return "journal/addEntry" }
func (UpdateEntry) Kind() string { return "journal/updateEntry" }
func (DeleteEntry) Kind() string { return "journal/deleteEntry" }
func (LoadEntries) Kind() string { return "journal/loadEntries" }
func (SetLoading) Kind() string  { return "journal/setLoading" }

func (AddEntry) journalAction()    {}
func (UpdateEntry) journalAction() {}
func (DeleteEntry) journalAction() {}
func (LoadEntries) journalAction() {}
func (SetLoading) journalAction()  {}

// ReduceJournal applies a to s. Entry ids stay unique and the newest entry is first.
func ReduceJournal(s JournalState, a JournalAction) JournalState {
	switch a := a.(type) {
	case AddEntry:
		entries := make([]models.JournalEntry, 0, len(s.Entries)+1)
		entries = append(entries, a.Entry)
		for _, e := range s.Entries {
			if e.ID != a.Entry.ID {
				entries = append(entries, e)
			}
		}
		s.Entries = entries
	case UpdateEntry:
		idx := s.index(a.Entry.ID)
		if idx < 0 {
			return s
		}
		entries := slices.Clone(s.Entries)
		entries[idx] = a.Entry
		s.Entries = entries
	case DeleteEntry:
		if s.index(a.ID) < 0 {
			return s
		}
		s.Entries = slices.DeleteFunc(slices.Clone(s.Entries), func(e models.JournalEntry) bool {
			return e.ID == a.ID
		})
	case LoadEntries:
		s.Entries = uniqueEntries(a.Entries)
	case SetLoading:
		s.IsLoading = a.Loading
	}
	return s
}

func (s JournalState) index(id string) int {
	return slices.IndexFunc(s.Entries, func(e models.JournalEntry) bool { return e.ID == id })
}

// uniqueEntries copies entries keeping the first occurrence of every id.
func uniqueEntries(entries []models.JournalEntry) []models.JournalEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Find returns the entry with the given id.
func (s JournalState) Find(id string) (models.JournalEntry, bool) {
	idx := s.index(id)
	if idx < 0 {
		return models.JournalEntry{}, false
	}
	return s.Entries[idx], true
}

// Search matches query case-insensitively against activity names and descriptions.
// An empty query returns every entry.
func (s JournalState) Search(query string) []models.JournalEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.JournalEntry
	for _, e := range s.Entries {
		if q == "" ||
			strings.Contains(strings.ToLower(e.ActivityName), q) ||
			strings.Contains(strings.ToLower(e.ActivityDescription), q) {
			out = append(out, e)
		}
	}
	return out
}

// Today returns the entries dated on now's calendar day.
func (s JournalState) Today(now time.Time) []models.JournalEntry {
	y, m, d := now.Date()
	var out []models.JournalEntry
	for _, e := range s.Entries {
		ey, em, ed := e.Date.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns at most n entries from the front of the journal.
func (s JournalState) Recent(n int) []models.JournalEntry {
	if n > len(s.Entries) {
		n = len(s.Entries)
	}
	if n < 0 {
		n = 0
	}
	return s.Entries[:n]
}
