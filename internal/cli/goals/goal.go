package goals

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal."`
	List     GoalListCmd     `cmd:"" help:"List goals." default:"1"`
	Progress GoalProgressCmd `cmd:"" help:"Record progress towards a goal."`
	Complete GoalCompleteCmd `cmd:"" help:"Mark a goal completed."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
}

var defaultUnits = map[models.GoalCategory]string{
	models.GoalWorkouts: "workouts",
	models.GoalDuration: "minutes",
	models.GoalCalories: "calories",
	models.GoalStreak:   "days",
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Target      int    `short:"t" help:"Target value." required:""`
	Category    string `short:"c" help:"Category (workouts|duration|calories|streak)." default:"workouts"`
	Unit        string `short:"u" help:"Unit, defaults to one matching the category."`
	Description string `short:"d" help:"Goal description."`
	Deadline    string `help:"Deadline (YYYY-MM-DD)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseGoalCategory(c.Category)
	if err != nil {
		return err
	}

	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		TargetValue: c.Target,
		Unit:        c.Unit,
		Category:    category,
	}
	if goal.Unit == "" {
		goal.Unit = defaultUnits[category]
	}
	if c.Deadline != "" {
		deadline, err := cli.ParseDate(c.Deadline, ctx.Now())
		if err != nil {
			return err
		}
		goal.Deadline = &deadline
	}
	if err := goal.Validate(); err != nil {
		return err
	}

	if err := ctx.Dispatch(state.AddGoal{Goal: goal}); err != nil {
		return err
	}
	fmt.Printf("Added goal: %s (ID: %s)\n", goal.Title, cli.ShortID(goal.ID))
	return nil
}

type GoalListCmd struct {
	Active bool `help:"Hide completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals := ctx.State().Goals
	list := goals.Goals
	if c.Active {
		list = goals.Active()
	}
	if len(list) == 0 {
		fmt.Println("No goals found")
		return nil
	}

	now := ctx.Now()
	fmt.Printf("Goals (%d of %d completed):\n", goals.CompletedCount(), len(goals.Goals))
	for _, g := range list {
		mark := " "
		if g.IsCompleted {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s (ID: %s)\n", mark, g.Title, cli.ShortID(g.ID))
		fmt.Printf("      %s %d/%d %s (%.0f%%)\n", cli.Bar(g.Percent(), 20), g.CurrentValue, g.TargetValue, g.Unit, g.Percent())
		if g.Deadline != nil {
			fmt.Printf("      Due %s (%s)\n", g.Deadline.Format(constants.DateFormat), humanize.RelTime(*g.Deadline, now, "ago", "from now"))
		}
	}
	return nil
}

type GoalProgressCmd struct {
	ID    string `arg:"" help:"Goal ID or unique prefix."`
	Value int    `arg:"" help:"New current value."`
	Add   bool   `help:"Add Value to the current value instead of replacing it."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	goal, err := find(ctx, c.ID)
	if err != nil {
		return err
	}

	value := c.Value
	if c.Add {
		value += goal.CurrentValue
	}
	if value < 0 {
		return fmt.Errorf("%w: progress cannot be negative", models.ErrValidation)
	}

	if err := ctx.Dispatch(state.UpdateGoalProgress{ID: goal.ID, Value: value}); err != nil {
		return err
	}

	updated, _ := ctx.State().Goals.Find(goal.ID)
	fmt.Printf("%s: %d/%d %s\n", updated.Title, updated.CurrentValue, updated.TargetValue, updated.Unit)
	if updated.IsCompleted && !goal.IsCompleted {
		fmt.Println("🎯 Goal completed!")
	}
	return nil
}

type GoalCompleteCmd struct {
	ID string `arg:"" help:"Goal ID or unique prefix."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	goal, err := find(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.CompleteGoal{ID: goal.ID}); err != nil {
		return err
	}
	fmt.Printf("Completed goal: %s\n", goal.Title)
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID or unique prefix."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	goal, err := find(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.DeleteGoal{ID: goal.ID}); err != nil {
		return err
	}
	fmt.Printf("Deleted goal: %s (ID: %s)\n", goal.Title, cli.ShortID(goal.ID))
	return nil
}

func find(ctx *cli.Context, query string) (models.Goal, error) {
	goals := ctx.State().Goals
	ids := make([]string, len(goals.Goals))
	for i, g := range goals.Goals {
		ids[i] = g.ID
	}
	id, err := cli.ResolveID("goal", ids, query)
	if err != nil {
		return models.Goal{}, err
	}
	goal, _ := goals.Find(id)
	return goal, nil
}
