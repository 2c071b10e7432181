package goals

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "sportjournal.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	now := time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)
	container := state.New(
		state.WithClock(func() time.Time { return now }),
		state.WithPersister(store),
	)
	return &cli.Context{Store: store, Container: container}
}

func TestGoalAddCmd(t *testing.T) {
	ctx := setupTestContext(t)
	before := len(ctx.State().Goals.Goals)

	cmd := &GoalAddCmd{Title: "Burn it", Target: 3000, Category: "Calories", Deadline: "2024-04-01"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("GoalAddCmd.Run() error = %v", err)
	}

	goals := ctx.State().Goals.Goals
	if len(goals) != before+1 {
		t.Fatalf("goals = %d, want %d", len(goals), before+1)
	}
	g := goals[len(goals)-1]
	if g.Category != models.GoalCalories || g.Unit != "calories" {
		t.Errorf("goal = %+v, want calories category and unit", g)
	}
	if g.Deadline == nil || g.Deadline.Day() != 1 {
		t.Errorf("Deadline = %v, want 2024-04-01", g.Deadline)
	}
}

func TestGoalAddCmd_Validation(t *testing.T) {
	ctx := setupTestContext(t)

	for _, cmd := range []GoalAddCmd{
		{Title: "", Target: 5, Category: "workouts"},
		{Title: "Run", Target: 0, Category: "workouts"},
		{Title: "Run", Target: 5, Category: "sleep"},
	} {
		if err := cmd.Run(ctx); !errors.Is(err, models.ErrValidation) {
			t.Errorf("Run(%+v) error = %v, want validation error", cmd, err)
		}
	}
}

func TestGoalProgressCmd(t *testing.T) {
	ctx := setupTestContext(t)

	// weekly_workouts targets 5 workouts
	if err := (&GoalProgressCmd{ID: "weekly_workouts", Value: 3}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := (&GoalProgressCmd{ID: "weekly", Value: 2, Add: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	g, _ := ctx.State().Goals.Find("weekly_workouts")
	if g.CurrentValue != 5 || !g.IsCompleted {
		t.Errorf("goal = %d completed=%v, want 5 and completed", g.CurrentValue, g.IsCompleted)
	}

	if err := (&GoalProgressCmd{ID: "weekly_workouts", Value: -10, Add: true}).Run(ctx); !errors.Is(err, models.ErrValidation) {
		t.Errorf("negative progress error = %v, want validation error", err)
	}
}

func TestGoalCompleteAndDelete(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&GoalCompleteCmd{ID: "calorie_burn"}).Run(ctx); err != nil {
		t.Fatalf("GoalCompleteCmd.Run() error = %v", err)
	}
	if g, _ := ctx.State().Goals.Find("calorie_burn"); !g.IsCompleted {
		t.Error("calorie_burn not completed")
	}

	if err := (&GoalDeleteCmd{ID: "calorie_burn"}).Run(ctx); err != nil {
		t.Fatalf("GoalDeleteCmd.Run() error = %v", err)
	}
	if _, ok := ctx.State().Goals.Find("calorie_burn"); ok {
		t.Error("calorie_burn still present after delete")
	}
}
