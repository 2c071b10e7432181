package social

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

type ChallengeCmd struct {
	Create ChallengeCreateCmd `cmd:"" help:"Create a challenge."`
	List   ChallengeListCmd   `cmd:"" help:"List challenges." default:"1"`
	Join   ChallengeJoinCmd   `cmd:"" help:"Join a challenge."`
	Leave  ChallengeLeaveCmd  `cmd:"" help:"Leave a challenge."`
}

type ChallengeCreateCmd struct {
	Title        string   `arg:"" help:"Challenge title."`
	Target       int      `short:"t" help:"Target value." required:""`
	Unit         string   `short:"u" help:"Unit of the target." default:"workouts"`
	Description  string   `short:"d" help:"Challenge description."`
	Days         int      `help:"Length in days." default:"7"`
	Prize        string   `help:"Prize for finishing."`
	Participants []string `help:"Comma-separated participant ids (you are always included)."`
}

func (c *ChallengeCreateCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("%w: a challenge must last at least one day", models.ErrValidation)
	}

	now := ctx.Now()
	ch := models.Challenge{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(c.Title),
		Description:  strings.TrimSpace(c.Description),
		Participants: append([]string{constants.LocalUserID}, c.Participants...),
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, c.Days),
		TargetValue:  c.Target,
		Unit:         c.Unit,
		Prize:        c.Prize,
		IsActive:     true,
	}
	if err := ch.Validate(); err != nil {
		return err
	}

	if err := ctx.Dispatch(state.CreateChallenge{Challenge: ch}); err != nil {
		return err
	}
	fmt.Printf("Created challenge: %s (ID: %s)\n", ch.Title, cli.ShortID(ch.ID))
	return nil
}

type ChallengeListCmd struct{}

func (c *ChallengeListCmd) Run(ctx *cli.Context) error {
	challenges := ctx.State().Social.Challenges
	if len(challenges) == 0 {
		fmt.Println("No challenges")
		return nil
	}

	now := ctx.Now()
	fmt.Println("Challenges:")
	for _, ch := range challenges {
		joined := ""
		if ch.HasParticipant(constants.LocalUserID) {
			joined = " (joined)"
		}
		fmt.Printf("  %s%s (ID: %s)\n", ch.Title, joined, cli.ShortID(ch.ID))
		if ch.Description != "" {
			fmt.Printf("      %s\n", ch.Description)
		}
		fmt.Printf("      %d %s, %d participants, ends %s\n", ch.TargetValue, ch.Unit, len(ch.Participants), humanize.RelTime(ch.EndDate, now, "ago", "from now"))
		if ch.Prize != "" {
			fmt.Printf("      Prize: %s\n", ch.Prize)
		}
	}
	return nil
}

type ChallengeJoinCmd struct {
	ID   string `arg:"" help:"Challenge ID or unique prefix."`
	User string `help:"Participant id." default:"me"`
}

func (c *ChallengeJoinCmd) Run(ctx *cli.Context) error {
	ch, err := findChallenge(ctx, c.ID)
	if err != nil {
		return err
	}
	if ch.HasParticipant(c.User) {
		fmt.Printf("%s already takes part in %s\n", c.User, ch.Title)
		return nil
	}
	if err := ctx.Dispatch(state.JoinChallenge{ChallengeID: ch.ID, UserID: c.User}); err != nil {
		return err
	}
	fmt.Printf("Joined %s\n", ch.Title)
	return nil
}

type ChallengeLeaveCmd struct {
	ID   string `arg:"" help:"Challenge ID or unique prefix."`
	User string `help:"Participant id." default:"me"`
}

func (c *ChallengeLeaveCmd) Run(ctx *cli.Context) error {
	ch, err := findChallenge(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.LeaveChallenge{ChallengeID: ch.ID, UserID: c.User}); err != nil {
		return err
	}
	fmt.Printf("Left %s\n", ch.Title)
	return nil
}

func findChallenge(ctx *cli.Context, query string) (models.Challenge, error) {
	s := ctx.State().Social
	ids := make([]string, len(s.Challenges))
	for i, ch := range s.Challenges {
		ids[i] = ch.ID
	}
	id, err := cli.ResolveID("challenge", ids, query)
	if err != nil {
		return models.Challenge{}, err
	}
	ch, _ := s.FindChallenge(id)
	return ch, nil
}
