package models

import (
	"fmt"
	"strings"
	"time"
)

type GoalCategory string

const (
	GoalWorkouts GoalCategory = "workouts"
	GoalDuration GoalCategory = "duration"
	GoalCalories GoalCategory = "calories"
	GoalStreak   GoalCategory = "streak"
)

// ParseGoalCategory maps user input onto one of the fixed goal categories.
func ParseGoalCategory(s string) (GoalCategory, error) {
	switch c := GoalCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case GoalWorkouts, GoalDuration, GoalCalories, GoalStreak:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown goal category %q (expected workouts, duration, calories or streak)", ErrValidation, s)
	}
}

type Goal struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	TargetValue  int          `json:"target_value"`
	CurrentValue int          `json:"current_value"`
	Unit         string       `json:"unit"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	Category     GoalCategory `json:"category"`
	IsCompleted  bool         `json:"is_completed"`
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" || g.TargetValue <= 0 {
		return fmt.Errorf("%w: please fill in all required fields (title and a positive target)", ErrValidation)
	}
	if _, err := ParseGoalCategory(string(g.Category)); err != nil {
		return err
	}
	return nil
}

// Percent returns progress towards the target, not capped at 100.
func (g *Goal) Percent() float64 {
	if g.TargetValue == 0 {
		return 0
	}
	return float64(g.CurrentValue) / float64(g.TargetValue) * 100
}
