package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SportJournal/internal/models"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func entry(id, name string, date time.Time) models.JournalEntry {
	return models.JournalEntry{
		ID:           id,
		ActivityName: name,
		Time:         date.Format("15:04"),
		Date:         date,
		CreatedAt:    date.UnixMilli(),
	}
}

func ids(entries []models.JournalEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestAddEntryPrepends(t *testing.T) {
	s := JournalState{}
	s = ReduceJournal(s, AddEntry{Entry: entry("a", "Run", testNow)})
	s = ReduceJournal(s, AddEntry{Entry: entry("b", "Swim", testNow)})

	assert.Equal(t, []string{"b", "a"}, ids(s.Entries))
}

func TestAddEntryReplacesSameID(t *testing.T) {
	s := JournalState{Entries: []models.JournalEntry{
		entry("a", "Run", testNow),
		entry("b", "Swim", testNow),
	}}

	s = ReduceJournal(s, AddEntry{Entry: entry("b", "Bike", testNow)})

	require.Equal(t, []string{"b", "a"}, ids(s.Entries))
	assert.Equal(t, "Bike", s.Entries[0].ActivityName)
}

func TestEntryIDsStayUnique(t *testing.T) {
	s := JournalState{}
	steps := []JournalAction{
		AddEntry{Entry: entry("a", "Run", testNow)},
		AddEntry{Entry: entry("b", "Run", testNow)},
		AddEntry{Entry: entry("a", "Run again", testNow)},
		DeleteEntry{ID: "b"},
		AddEntry{Entry: entry("c", "Gym", testNow)},
		AddEntry{Entry: entry("c", "Gym", testNow)},
		DeleteEntry{ID: "missing"},
		AddEntry{Entry: entry("b", "Yoga", testNow)},
	}

	for _, a := range steps {
		s = ReduceJournal(s, a)
		seen := map[string]bool{}
		for _, e := range s.Entries {
			require.False(t, seen[e.ID], "duplicate id %q after %s", e.ID, a.Kind())
			seen[e.ID] = true
		}
		if add, ok := a.(AddEntry); ok {
			require.Equal(t, add.Entry.ID, s.Entries[0].ID)
		}
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(s.Entries))
}

func TestUpdateEntry(t *testing.T) {
	orig := JournalState{Entries: []models.JournalEntry{entry("a", "Run", testNow)}}

	updated := entry("a", "Long run", testNow)
	updated.Duration = 45
	s := ReduceJournal(orig, UpdateEntry{Entry: updated})

	assert.Equal(t, "Long run", s.Entries[0].ActivityName)
	assert.Equal(t, 45, s.Entries[0].Duration)
	assert.Equal(t, "Run", orig.Entries[0].ActivityName, "reducer mutated its input")

	same := ReduceJournal(orig, UpdateEntry{Entry: entry("zzz", "Nope", testNow)})
	assert.Equal(t, orig, same)
}

func TestDeleteEntry(t *testing.T) {
	orig := JournalState{Entries: []models.JournalEntry{
		entry("a", "Run", testNow),
		entry("b", "Swim", testNow),
	}}

	s := ReduceJournal(orig, DeleteEntry{ID: "a"})

	assert.Equal(t, []string{"b"}, ids(s.Entries))
	assert.Equal(t, []string{"a", "b"}, ids(orig.Entries), "reducer mutated its input")
}

func TestLoadEntriesCollapsesDuplicates(t *testing.T) {
	s := ReduceJournal(JournalState{}, LoadEntries{Entries: []models.JournalEntry{
		entry("a", "first", testNow),
		entry("b", "Swim", testNow),
		entry("a", "second", testNow),
	}})

	require.Equal(t, []string{"a", "b"}, ids(s.Entries))
	assert.Equal(t, "first", s.Entries[0].ActivityName)
}

func TestSetLoading(t *testing.T) {
	s := ReduceJournal(JournalState{}, SetLoading{Loading: true})
	assert.True(t, s.IsLoading)
}

func TestJournalQueries(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	run := entry("a", "Morning Run", testNow)
	run.ActivityDescription = "easy 5k"
	swim := entry("b", "Swim", yesterday)
	swim.ActivityDescription = "pool RUN drills"
	gym := entry("c", "Gym", testNow)
	s := JournalState{Entries: []models.JournalEntry{run, swim, gym}}

	t.Run("find", func(t *testing.T) {
		got, ok := s.Find("b")
		require.True(t, ok)
		assert.Equal(t, "Swim", got.ActivityName)

		_, ok = s.Find("nope")
		assert.False(t, ok)
	})

	t.Run("search", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, ids(s.Search("run")))
		assert.Equal(t, []string{"a", "b", "c"}, ids(s.Search("  ")))
		assert.Empty(t, s.Search("tennis"))
	})

	t.Run("today", func(t *testing.T) {
		assert.Equal(t, []string{"a", "c"}, ids(s.Today(testNow)))
	})

	t.Run("recent", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, ids(s.Recent(2)))
		assert.Len(t, s.Recent(10), 3)
		assert.Empty(t, s.Recent(-1))
	})
}
