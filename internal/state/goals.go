package state

import (
	"slices"

	"github.com/tLat87/SportJournal/internal/models"
)

// GoalsState is the list of goals in creation order.
type GoalsState struct {
	Goals     []models.Goal `json:"goals"`
	IsLoading bool          `json:"-"`
}

// GoalsAction is an action handled by ReduceGoals.
type GoalsAction interface {
	Action
	goalsAction()
}

// AddGoal appends a goal.
type AddGoal struct{ Goal models.Goal }

// UpdateGoalProgress sets the current value and recomputes completion.
type UpdateGoalProgress struct {
	ID    string
	Value int
}

// CompleteGoal marks a goal completed regardless of its progress.
type CompleteGoal struct{ ID string }

// DeleteGoal removes the goal with ID.
type DeleteGoal struct{ ID string }

func (AddGoal) Kind() string            { return "goals/addGoal" }
func (UpdateGoalProgress) Kind() string { return "goals/updateGoalProgress" }
func (CompleteGoal) Kind() string       { return "goals/completeGoal" }
func (DeleteGoal) Kind() string         { return "goals/deleteGoal" }

func (AddGoal) goalsAction()            {}
func (UpdateGoalProgress) goalsAction() {}
func (CompleteGoal) goalsAction()       {}
func (DeleteGoal) goalsAction()         {}

// DefaultGoals is the starter set every fresh journal begins with.
func DefaultGoals() []models.Goal {
	return []models.Goal{
		{
			ID:          "weekly_workouts",
			Title:       "Weekly Warrior",
			Description: "Complete 5 workouts this week",
			TargetValue: 5,
			Unit:        "workouts",
			Category:    models.GoalWorkouts,
		},
		{
			ID:          "monthly_duration",
			Title:       "Monthly Marathon",
			Description: "Exercise for 20 hours this month",
			TargetValue: 1200,
			Unit:        "minutes",
			Category:    models.GoalDuration,
		},
		{
			ID:          "calorie_burn",
			Title:       "Calorie Crusher",
			Description: "Burn 5000 calories this month",
			TargetValue: 5000,
			Unit:        "calories",
			Category:    models.GoalCalories,
		},
	}
}

// ReduceGoals applies a to s. Unknown ids are a no-op.
func ReduceGoals(s GoalsState, a GoalsAction) GoalsState {
	switch a := a.(type) {
	case AddGoal:
		goals := make([]models.Goal, 0, len(s.Goals)+1)
		goals = append(goals, s.Goals...)
		s.Goals = append(goals, a.Goal)
	case UpdateGoalProgress:
		s.Goals = s.updated(a.ID, func(g *models.Goal) {
			g.CurrentValue = a.Value
			g.IsCompleted = g.CurrentValue >= g.TargetValue
		})
	case CompleteGoal:
		s.Goals = s.updated(a.ID, func(g *models.Goal) {
			g.IsCompleted = true
		})
	case DeleteGoal:
		s.Goals = slices.DeleteFunc(slices.Clone(s.Goals), func(g models.Goal) bool {
			return g.ID == a.ID
		})
	}
	return s
}

// updated returns a copy of the goal list with fn applied to the goal with id.
// The original list is returned when no goal matches.
func (s GoalsState) updated(id string, fn func(*models.Goal)) []models.Goal {
	idx := slices.IndexFunc(s.Goals, func(g models.Goal) bool { return g.ID == id })
	if idx < 0 {
		return s.Goals
	}
	goals := slices.Clone(s.Goals)
	fn(&goals[idx])
	return goals
}

// Find returns the goal with id.
func (s GoalsState) Find(id string) (models.Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// Active returns goals that are not completed yet.
func (s GoalsState) Active() []models.Goal {
	var out []models.Goal
	for _, g := range s.Goals {
		if !g.IsCompleted {
			out = append(out, g)
		}
	}
	return out
}

// CompletedCount is the number of completed goals.
func (s GoalsState) CompletedCount() int {
	n := 0
	for _, g := range s.Goals {
		if g.IsCompleted {
			n++
		}
	}
	return n
}
