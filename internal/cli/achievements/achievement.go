package achievements

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

type AchievementCmd struct {
	List     AchievementListCmd     `cmd:"" help:"List achievements." default:"1"`
	Progress AchievementProgressCmd `cmd:"" help:"Set progress on an achievement."`
	Reset    AchievementResetCmd    `cmd:"" help:"Reset every achievement."`
}

type AchievementListCmd struct {
	Unlocked bool `help:"Only show unlocked achievements."`
}

func (c *AchievementListCmd) Run(ctx *cli.Context) error {
	s := ctx.State().Achievements
	now := ctx.Now()

	fmt.Printf("Achievements (%d of %d unlocked):\n", len(s.Unlocked), len(s.Achievements))
	for _, a := range s.Achievements {
		if c.Unlocked && !a.IsUnlocked() {
			continue
		}
		status := fmt.Sprintf("%s %d/%d", cli.Bar(a.Percent(), 10), a.Progress, a.MaxProgress)
		if a.IsUnlocked() {
			status = "unlocked " + humanize.RelTime(*a.UnlockedAt, now, "ago", "from now")
		}
		fmt.Printf("  %s %-18s %s\n", a.Icon, a.Title, status)
		fmt.Printf("     %s (ID: %s)\n", a.Description, a.ID)
	}
	return nil
}

type AchievementProgressCmd struct {
	ID       string `arg:"" help:"Achievement ID."`
	Progress int    `arg:"" help:"New progress value."`
}

func (c *AchievementProgressCmd) Run(ctx *cli.Context) error {
	s := ctx.State().Achievements
	ids := make([]string, len(s.Achievements))
	for i, a := range s.Achievements {
		ids[i] = a.ID
	}
	id, err := cli.ResolveID("achievement", ids, c.ID)
	if err != nil {
		return err
	}
	wasUnlocked := s.IsUnlocked(id)

	if err := ctx.Dispatch(state.UpdateAchievementProgress{ID: id, Progress: c.Progress}); err != nil {
		return err
	}

	a, _ := ctx.State().Achievements.Find(id)
	fmt.Printf("%s %s: %d/%d\n", a.Icon, a.Title, a.Progress, a.MaxProgress)
	if a.IsUnlocked() && !wasUnlocked {
		fmt.Println("🏆 Achievement unlocked!")
		ctx.Notify(models.Notification{
			ID:      "unlock-" + a.ID,
			Title:   a.Title,
			Message: a.Description,
			Type:    models.NotificationAchievement,
		})
	}
	return nil
}

type AchievementResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *AchievementResetCmd) Run(ctx *cli.Context) error {
	ok, err := cli.Confirm("Reset all achievement progress?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	if err := ctx.Dispatch(state.ResetAchievements{}); err != nil {
		return err
	}
	fmt.Println("✓ Achievements reset")
	return nil
}
