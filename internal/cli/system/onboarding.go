package system

import (
	"fmt"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/state"
)

type OnboardingCmd struct {
	Complete OnboardingCompleteCmd `cmd:"" help:"Mark onboarding as completed."`
	Reset    OnboardingResetCmd    `cmd:"" help:"Return to first-launch state."`
	Status   OnboardingStatusCmd   `cmd:"" help:"Show onboarding flags." default:"1"`
}

type OnboardingCompleteCmd struct{}

func (c *OnboardingCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Dispatch(state.CompleteOnboarding{}); err != nil {
		return err
	}
	fmt.Println("✓ Onboarding completed")
	return nil
}

type OnboardingResetCmd struct{}

func (c *OnboardingResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Dispatch(state.ResetApp{}); err != nil {
		return err
	}
	fmt.Println("✓ Onboarding reset; the next launch is a first launch")
	return nil
}

type OnboardingStatusCmd struct{}

func (c *OnboardingStatusCmd) Run(ctx *cli.Context) error {
	app := ctx.State().App
	fmt.Printf("Onboarding completed: %t\n", app.IsOnboardingCompleted)
	fmt.Printf("First launch:         %t\n", app.IsFirstLaunch)
	return nil
}
