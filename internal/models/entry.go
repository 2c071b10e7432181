package models

import (
	"fmt"
	"strings"
	"time"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

type Mood string

const (
	MoodExcited   Mood = "excited"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodTired     Mood = "tired"
	MoodExhausted Mood = "exhausted"
)

// JournalEntry is a single logged workout or activity.
type JournalEntry struct {
	ID                  string    `json:"id"`
	ActivityName        string    `json:"activity_name"`
	ActivityDescription string    `json:"activity_description"`
	Time                string    `json:"time"` // free text, usually HH:MM
	Date                time.Time `json:"date"`
	PhotoURI            string    `json:"photo_uri,omitempty"`
	CreatedAt           int64     `json:"created_at"` // unix milliseconds
	Tags                []string  `json:"tags,omitempty"`
	Category            string    `json:"category,omitempty"`
	Duration            int       `json:"duration,omitempty"` // minutes
	Intensity           Intensity `json:"intensity,omitempty"`
	Calories            int       `json:"calories,omitempty"`
	Mood                Mood      `json:"mood,omitempty"`
	Weather             string    `json:"weather,omitempty"`
	Location            string    `json:"location,omitempty"`
}

func (e *JournalEntry) Validate() error {
	if strings.TrimSpace(e.ActivityName) == "" {
		return fmt.Errorf("%w: please enter an activity name", ErrValidation)
	}

	switch e.Intensity {
	case "", IntensityLow, IntensityMedium, IntensityHigh:
	default:
		return fmt.Errorf("%w: unknown intensity %q (expected low, medium or high)", ErrValidation, e.Intensity)
	}

	switch e.Mood {
	case "", MoodExcited, MoodHappy, MoodNeutral, MoodTired, MoodExhausted:
	default:
		return fmt.Errorf("%w: unknown mood %q", ErrValidation, e.Mood)
	}

	if e.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidation)
	}
	if e.Calories < 0 {
		return fmt.Errorf("%w: calories cannot be negative", ErrValidation)
	}

	return nil
}

// ShareText is the message handed to a share target for this entry.
func (e *JournalEntry) ShareText() string {
	return fmt.Sprintf("Check out my activity: %s - %s", e.ActivityName, e.ActivityDescription)
}

// HasPhoto reports whether a photo reference is attached.
func (e *JournalEntry) HasPhoto() bool {
	return e.PhotoURI != ""
}
