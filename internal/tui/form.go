package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
)

func newEntryForm(f *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Placeholder("Morning run").
				Value(&f.Name).
				Validate(func(s string) error {
					e := models.JournalEntry{ActivityName: s}
					return e.Validate()
				}),
			huh.NewText().
				Title("Description").
				Value(&f.Description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&f.Duration).
				Validate(func(s string) error {
					_, err := parseCount(s)
					return err
				}),
			huh.NewInput().
				Title("Calories").
				Value(&f.Calories).
				Validate(func(s string) error {
					_, err := parseCount(s)
					return err
				}),
			huh.NewSelect[models.Intensity]().
				Title("Intensity").
				Options(
					huh.NewOption("skip", models.Intensity("")),
					huh.NewOption("low", models.IntensityLow),
					huh.NewOption("medium", models.IntensityMedium),
					huh.NewOption("high", models.IntensityHigh),
				).
				Value(&f.Intensity),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(
					huh.NewOption("skip", models.Mood("")),
					huh.NewOption("🤩 excited", models.MoodExcited),
					huh.NewOption("😊 happy", models.MoodHappy),
					huh.NewOption("😐 neutral", models.MoodNeutral),
					huh.NewOption("😴 tired", models.MoodTired),
					huh.NewOption("😫 exhausted", models.MoodExhausted),
				).
				Value(&f.Mood),
		),
	)
}

// toEntry builds the entry the form describes, dated now. Fields were already
// validated by the form.
func (f *EntryFormModel) toEntry(now time.Time) models.JournalEntry {
	duration, _ := parseCount(f.Duration)
	calories, _ := parseCount(f.Calories)
	return models.JournalEntry{
		ID:                  uuid.NewString(),
		ActivityName:        strings.TrimSpace(f.Name),
		ActivityDescription: strings.TrimSpace(f.Description),
		Time:                now.Format(constants.TimeFormat),
		Date:                now,
		CreatedAt:           now.UnixMilli(),
		Duration:            duration,
		Calories:            calories,
		Intensity:           f.Intensity,
		Mood:                f.Mood,
	}
}
