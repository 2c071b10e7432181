package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/export"
	"github.com/tLat87/SportJournal/internal/stats"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(20)

	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Model renders a stats.Summary. It has no input of its own.
type Model struct {
	summary stats.Summary
	width   int
}

func New(summary stats.Summary, width int) Model {
	return Model{summary: summary, width: width}
}

func (m *Model) SetSummary(summary stats.Summary) {
	m.summary = summary
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func card(value, label string) string {
	return cardStyle.Render(valueStyle.Render(value) + "\n" + labelStyle.Render(label))
}

func (m Model) View() string {
	s := m.summary
	cards := []string{
		card(fmt.Sprint(s.TotalWorkouts), "total workouts"),
		card(fmt.Sprintf("%d 🔥", s.CurrentStreak), "day streak"),
		card(fmt.Sprint(s.WeeklyCount), "this week"),
		card(fmt.Sprint(s.MonthlyCount), "this month"),
		card(fmt.Sprintf("%.1f", s.AveragePerWeek), "per week"),
		card(s.MostActiveDay, "most active day"),
		card(export.FormatMinutes(s.TotalDuration), "total time"),
		card(humanize.Comma(int64(s.TotalCalories)), "calories"),
	}

	perRow := max(1, m.width/22)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+perRow, len(cards))]...))
	}

	var breakdown strings.Builder
	breakdown.WriteString(labelStyle.Render(fmt.Sprintf("Activities (favourite: %s)", s.MostPopular)))
	breakdown.WriteString("\n")
	for _, a := range stats.Activities {
		n := s.Breakdown[a]
		fmt.Fprintf(&breakdown, "%-9s %s %d\n", a, barStyle.Render(strings.Repeat("█", n)), n)
	}

	var week strings.Builder
	week.WriteString(labelStyle.Render("Last 7 days"))
	week.WriteString("\n")
	for i, n := range s.WeekdayHistogram {
		fmt.Fprintf(&week, "%s %s %d\n", stats.WeekdayLabels[i], barStyle.Render(strings.Repeat("█", n)), n)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, breakdown.String(), "    ", week.String()),
	)
}
