// Package stats derives journal statistics from a list of entries. Every
// function is pure: the same entries and now always give the same result.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

const day = 24 * time.Hour

// Activity is a coarse activity class derived from an entry's name.
type Activity string

const (
	Running  Activity = "Running"
	Gym      Activity = "Gym"
	Cycling  Activity = "Cycling"
	Swimming Activity = "Swimming"
	Other    Activity = "Other"
)

// Activities lists every class in display order.
var Activities = []Activity{Running, Gym, Cycling, Swimming, Other}

// dayOffset returns how many calendar days t lies before now, in now's location.
func dayOffset(now, t time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ty, tm, td := t.In(now.Location()).Date()
	then := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(then) / day)
}

// CurrentStreak walks entries newest first. An entry extends the streak when its
// calendar-day offset from today equals the streak so far; the walk stops at the
// first entry that does not. Same-day duplicates are not collapsed, so a second
// entry on an already counted day ends the walk.
func CurrentStreak(entries []models.JournalEntry, now time.Time) int {
	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	streak := 0
	for _, e := range sorted {
		if dayOffset(now, e.Date) != streak {
			break
		}
		streak++
	}
	return streak
}

// WeeklyCount counts entries dated within the trailing seven days.
func WeeklyCount(entries []models.JournalEntry, now time.Time) int {
	return len(sinceWeekAgo(entries, now))
}

func sinceWeekAgo(entries []models.JournalEntry, now time.Time) []models.JournalEntry {
	cutoff := now.AddDate(0, 0, -7)
	var out []models.JournalEntry
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// MonthlyCount counts entries in now's calendar month.
func MonthlyCount(entries []models.JournalEntry, now time.Time) int {
	y, m, _ := now.Date()
	n := 0
	for _, e := range entries {
		ey, em, _ := e.Date.In(now.Location()).Date()
		if ey == y && em == m {
			n++
		}
	}
	return n
}

// MostActiveWeekday returns the weekday with the most entries. Ties go to the
// weekday seen first while iterating entries. ok is false when there are none.
func MostActiveWeekday(entries []models.JournalEntry, loc *time.Location) (weekday time.Weekday, ok bool) {
	if len(entries) == 0 {
		return time.Sunday, false
	}

	counts := make(map[time.Weekday]int, 7)
	var order []time.Weekday
	for _, e := range entries {
		wd := e.Date.In(loc).Weekday()
		if _, seen := counts[wd]; !seen {
			order = append(order, wd)
		}
		counts[wd]++
	}

	best := order[0]
	for _, wd := range order[1:] {
		if counts[wd] > counts[best] {
			best = wd
		}
	}
	return best, true
}

// AveragePerWeek divides the entry count by the whole weeks elapsed since the
// earliest entry, rounded up and at least one, then rounds to one decimal.
func AveragePerWeek(entries []models.JournalEntry, now time.Time) float64 {
	if len(entries) == 0 {
		return 0
	}

	earliest := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(earliest) {
			earliest = e.Date
		}
	}

	weeks := math.Max(1, math.Ceil(now.Sub(earliest).Hours()/(7*24)))
	return math.Round(float64(len(entries))/weeks*10) / 10
}

// ClassifyActivity maps an activity name onto an Activity by keyword.
func ClassifyActivity(name string) Activity {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "run"):
		return Running
	case strings.Contains(n, "gym"), strings.Contains(n, "workout"):
		return Gym
	case strings.Contains(n, "cycle"), strings.Contains(n, "bike"):
		return Cycling
	case strings.Contains(n, "swim"):
		return Swimming
	default:
		return Other
	}
}

// ActivityBreakdown counts entries per Activity. Every class is present.
func ActivityBreakdown(entries []models.JournalEntry) map[Activity]int {
	out := make(map[Activity]int, len(Activities))
	for _, a := range Activities {
		out[a] = 0
	}
	for _, e := range entries {
		out[ClassifyActivity(e.ActivityName)]++
	}
	return out
}

// MostPopularActivity returns the class with the highest count, preferring the
// earlier class in Activities on ties. Running is returned for no entries.
func MostPopularActivity(entries []models.JournalEntry) Activity {
	breakdown := ActivityBreakdown(entries)
	best := Running
	for _, a := range Activities {
		if breakdown[a] > breakdown[best] {
			best = a
		}
	}
	return best
}

// WeekdayHistogram buckets the trailing seven days of entries Monday first.
func WeekdayHistogram(entries []models.JournalEntry, now time.Time) [7]int {
	var out [7]int
	for _, e := range sinceWeekAgo(entries, now) {
		wd := e.Date.In(now.Location()).Weekday()
		out[(int(wd)+6)%7]++
	}
	return out
}

// TotalDuration sums entry durations in minutes.
func TotalDuration(entries []models.JournalEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

func TotalCalories(entries []models.JournalEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total
}
