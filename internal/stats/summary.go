package stats

import (
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

// Summary bundles every statistic shown on the stats screen.
type Summary struct {
	TotalWorkouts    int
	CurrentStreak    int
	WeeklyCount      int
	MonthlyCount     int
	AveragePerWeek   float64
	MostActiveDay    string
	TotalDuration    int
	TotalCalories    int
	Breakdown        map[Activity]int
	MostPopular      Activity
	WeekdayHistogram [7]int
	TodayCount       int
}

// NoData is shown in place of a weekday when there are no entries.
const NoData = "No data"

func Summarize(entries []models.JournalEntry, now time.Time) Summary {
	mostActive := NoData
	if wd, ok := MostActiveWeekday(entries, now.Location()); ok {
		mostActive = wd.String()
	}

	today := 0
	for _, e := range entries {
		if dayOffset(now, e.Date) == 0 {
			today++
		}
	}

	return Summary{
		TotalWorkouts:    len(entries),
		CurrentStreak:    CurrentStreak(entries, now),
		WeeklyCount:      WeeklyCount(entries, now),
		MonthlyCount:     MonthlyCount(entries, now),
		AveragePerWeek:   AveragePerWeek(entries, now),
		MostActiveDay:    mostActive,
		TotalDuration:    TotalDuration(entries),
		TotalCalories:    TotalCalories(entries),
		Breakdown:        ActivityBreakdown(entries),
		MostPopular:      MostPopularActivity(entries),
		WeekdayHistogram: WeekdayHistogram(entries, now),
		TodayCount:       today,
	}
}

// WeekdayLabels are the WeekdayHistogram bucket names.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
