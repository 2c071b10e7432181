package models

import (
	"fmt"
	"strings"
	"time"
)

type Friend struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar,omitempty"`
	IsOnline      bool   `json:"is_online"`
	LastActivity  string `json:"last_activity,omitempty"`
	TotalWorkouts int    `json:"total_workouts"`
	Streak        int    `json:"streak"`
}

func (f *Friend) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: friend name cannot be empty", ErrValidation)
	}
	return nil
}

type Challenge struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Participants []string  `json:"participants"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TargetValue  int       `json:"target_value"`
	Unit         string    `json:"unit"`
	Prize        string    `json:"prize,omitempty"`
	IsActive     bool      `json:"is_active"`
}

func (c *Challenge) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: challenge title cannot be empty", ErrValidation)
	}
	if c.TargetValue <= 0 {
		return fmt.Errorf("%w: challenge target must be positive", ErrValidation)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: challenge cannot end before it starts", ErrValidation)
	}
	return nil
}

// HasParticipant reports whether userID already takes part in the challenge.
func (c *Challenge) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
