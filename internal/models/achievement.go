package models

import "time"

type AchievementCategory string

const (
	AchievementStreak  AchievementCategory = "streak"
	AchievementTotal   AchievementCategory = "total"
	AchievementSpecial AchievementCategory = "special"
	AchievementSocial  AchievementCategory = "social"
)

type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Progress    int                 `json:"progress"`
	MaxProgress int                 `json:"max_progress"`
	Category    AchievementCategory `json:"category"`
	UnlockedAt  *time.Time          `json:"unlocked_at,omitempty"`
}

// IsUnlocked reports whether the achievement has been stamped as unlocked.
func (a *Achievement) IsUnlocked() bool {
	return a.UnlockedAt != nil
}

func (a *Achievement) Percent() float64 {
	if a.MaxProgress <= 0 {
		return 0
	}
	return float64(a.Progress) / float64(a.MaxProgress) * 100
}
