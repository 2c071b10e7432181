package state

import (
	"slices"
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

// AchievementsState is the achievement catalog and the ids unlocked so far, in unlock order.
type AchievementsState struct {
	Achievements []models.Achievement `json:"achievements"`
	// Unlocked holds achievement ids in unlock order, each at most once.
	Unlocked  []string `json:"unlocked"`
	IsLoading bool     `json:"-"`
}

// AchievementsAction is an action handled by ReduceAchievements.
type AchievementsAction interface {
	Action
	achievementsAction()
}

// UpdateAchievementProgress sets progress, clamped to [0, MaxProgress]. Reaching
// MaxProgress unlocks the achievement once, stamped with At.
type UpdateAchievementProgress struct {
	ID       string
	Progress int
	At       time.Time
}

// ResetAchievements restores the catalog and forgets every unlock.
type ResetAchievements struct{}

func (UpdateAchievementProgress) Kind() string { return "achievements/updateAchievementProgress" }
func (ResetAchievements) Kind() string         { return "achievements/resetAchievements" }

func (UpdateAchievementProgress) achievementsAction() {}
func (ResetAchievements) achievementsAction()         {}

func (a UpdateAchievementProgress) withTime(now time.Time) Action {
	if a.At.IsZero() {
		a.At = now
	}
	return a
}

// DefaultAchievements returns a fresh copy of the fixed achievement catalog.
func DefaultAchievements() []models.Achievement {
	return []models.Achievement{
		{
			ID:          "first_workout",
			Title:       "First Steps",
			Description: "Complete your first workout",
			Icon:        "🏃",
			MaxProgress: 1,
			Category:    models.AchievementSpecial,
		},
		{
			ID:          "week_streak",
			Title:       "Week Warrior",
			Description: "Workout for 7 days in a row",
			Icon:        "🔥",
			MaxProgress: 7,
			Category:    models.AchievementStreak,
		},
		{
			ID:          "hundred_workouts",
			Title:       "Century Club",
			Description: "Complete 100 workouts",
			Icon:        "💯",
			MaxProgress: 100,
			Category:    models.AchievementTotal,
		},
		{
			ID:          "social_butterfly",
			Title:       "Social Butterfly",
			Description: "Add 5 friends",
			Icon:        "🦋",
			MaxProgress: 5,
			Category:    models.AchievementSocial,
		},
		{
			ID:          "early_bird",
			Title:       "Early Bird",
			Description: "Workout before 7 AM",
			Icon:        "🌅",
			MaxProgress: 1,
			Category:    models.AchievementSpecial,
		},
		{
			ID:          "night_owl",
			Title:       "Night Owl",
			Description: "Workout after 10 PM",
			Icon:        "🦉",
			MaxProgress: 1,
			Category:    models.AchievementSpecial,
		},
	}
}

// ReduceAchievements applies a to s. Progress is clamped and unlocking happens once.
func ReduceAchievements(s AchievementsState, a AchievementsAction) AchievementsState {
	switch a := a.(type) {
	case UpdateAchievementProgress:
		idx := slices.IndexFunc(s.Achievements, func(x models.Achievement) bool { return x.ID == a.ID })
		if idx < 0 {
			return s
		}
		achievements := slices.Clone(s.Achievements)
		ach := achievements[idx]
		ach.Progress = min(max(a.Progress, 0), ach.MaxProgress)
		if ach.Progress >= ach.MaxProgress && !slices.Contains(s.Unlocked, ach.ID) {
			unlocked := make([]string, 0, len(s.Unlocked)+1)
			unlocked = append(unlocked, s.Unlocked...)
			s.Unlocked = append(unlocked, ach.ID)
			at := a.At
			ach.UnlockedAt = &at
		}
		achievements[idx] = ach
		s.Achievements = achievements
	case ResetAchievements:
		s.Achievements = DefaultAchievements()
		s.Unlocked = []string{}
	}
	return s
}

// Find returns the achievement with id.
func (s AchievementsState) Find(id string) (models.Achievement, bool) {
	for _, a := range s.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}

// IsUnlocked reports whether id is in the unlocked list.
func (s AchievementsState) IsUnlocked(id string) bool {
	return slices.Contains(s.Unlocked, id)
}
