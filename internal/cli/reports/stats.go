package reports

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/export"
	"github.com/tLat87/SportJournal/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s := ctx.State()
	sum := stats.Summarize(s.Journal.Entries, ctx.Now())

	fmt.Println("Activity")
	fmt.Printf("  Total workouts:    %d\n", sum.TotalWorkouts)
	fmt.Printf("  Today:             %d\n", sum.TodayCount)
	fmt.Printf("  Current streak:    %d days\n", sum.CurrentStreak)
	fmt.Printf("  This week:         %d\n", sum.WeeklyCount)
	fmt.Printf("  This month:        %d\n", sum.MonthlyCount)
	fmt.Printf("  Average per week:  %.1f\n", sum.AveragePerWeek)
	fmt.Printf("  Most active day:   %s\n", sum.MostActiveDay)
	fmt.Printf("  Total time:        %s\n", export.FormatMinutes(sum.TotalDuration))
	fmt.Printf("  Calories burned:   %s\n", humanize.Comma(int64(sum.TotalCalories)))

	fmt.Println()
	fmt.Printf("Activities (favourite: %s)\n", sum.MostPopular)
	for _, a := range stats.Activities {
		fmt.Printf("  %-9s %3d\n", a, sum.Breakdown[a])
	}

	fmt.Println()
	fmt.Println("Last 7 days")
	for i, n := range sum.WeekdayHistogram {
		fmt.Printf("  %s %s %d\n", stats.WeekdayLabels[i], strings.Repeat("█", n), n)
	}

	fmt.Println()
	fmt.Printf("Goals: %d of %d completed\n", s.Goals.CompletedCount(), len(s.Goals.Goals))
	fmt.Printf("Achievements: %d of %d unlocked\n", len(s.Achievements.Unlocked), len(s.Achievements.Achievements))
	fmt.Printf("Notifications: %d unread\n", s.Notifications.UnreadCount)
	return nil
}
