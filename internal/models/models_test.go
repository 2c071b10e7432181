package models

import (
	"errors"
	"testing"
	"time"
)

func TestJournalEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   JournalEntry
		wantErr bool
	}{
		{"valid", JournalEntry{ActivityName: "Run"}, false},
		{"valid with optional fields", JournalEntry{ActivityName: "Run", Intensity: IntensityHigh, Mood: MoodTired, Duration: 30}, false},
		{"empty name", JournalEntry{}, true},
		{"blank name", JournalEntry{ActivityName: "   "}, true},
		{"unknown intensity", JournalEntry{ActivityName: "Run", Intensity: "extreme"}, true},
		{"unknown mood", JournalEntry{ActivityName: "Run", Mood: "angry"}, true},
		{"negative duration", JournalEntry{ActivityName: "Run", Duration: -1}, true},
		{"negative calories", JournalEntry{ActivityName: "Run", Calories: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want it to wrap ErrValidation", err)
			}
		})
	}
}

func TestShareText(t *testing.T) {
	e := JournalEntry{ActivityName: "Morning Run", ActivityDescription: "5k along the river"}
	want := "Check out my activity: Morning Run - 5k along the river"
	if got := e.ShareText(); got != want {
		t.Errorf("ShareText() = %q, want %q", got, want)
	}
}

func TestGoalValidate(t *testing.T) {
	tests := []struct {
		name    string
		goal    Goal
		wantErr bool
	}{
		{"valid", Goal{Title: "Run more", TargetValue: 5, Category: GoalWorkouts}, false},
		{"missing title", Goal{TargetValue: 5, Category: GoalWorkouts}, true},
		{"zero target", Goal{Title: "Run more", Category: GoalWorkouts}, true},
		{"unknown category", Goal{Title: "Run more", TargetValue: 5, Category: "sleep"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goal.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseGoalCategory(t *testing.T) {
	got, err := ParseGoalCategory(" Duration ")
	if err != nil || got != GoalDuration {
		t.Errorf("ParseGoalCategory() = %q, %v, want %q", got, err, GoalDuration)
	}
	if _, err := ParseGoalCategory("naps"); err == nil {
		t.Error("ParseGoalCategory(naps) expected error")
	}
}

func TestPercent(t *testing.T) {
	g := Goal{TargetValue: 1200, CurrentValue: 300}
	if got := g.Percent(); got != 25 {
		t.Errorf("Goal.Percent() = %v, want 25", got)
	}

	a := Achievement{MaxProgress: 7, Progress: 7}
	if got := a.Percent(); got != 100 {
		t.Errorf("Achievement.Percent() = %v, want 100", got)
	}
	if (&Achievement{}).Percent() != 0 {
		t.Error("Achievement.Percent() with zero max should be 0")
	}
}

func TestChallengeValidate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := Challenge{Title: "Plank", TargetValue: 10, StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	if err := c.Validate(); err == nil {
		t.Error("Validate() expected error for end before start")
	}

	c.EndDate = start.AddDate(0, 0, 7)
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNotificationIcon(t *testing.T) {
	tests := map[NotificationType]string{
		NotificationAchievement: "🏆",
		NotificationReminder:    "⏰",
		NotificationSocial:      "👥",
		NotificationGoal:        "🎯",
		"other":                 "🔔",
	}
	for typ, want := range tests {
		if got := typ.Icon(); got != want {
			t.Errorf("%s.Icon() = %q, want %q", typ, got, want)
		}
	}
}
