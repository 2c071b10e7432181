package social

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

type FriendCmd struct {
	Add      FriendAddCmd      `cmd:"" help:"Add a friend."`
	List     FriendListCmd     `cmd:"" help:"List friends." default:"1"`
	Remove   FriendRemoveCmd   `cmd:"" help:"Remove a friend."`
	Activity FriendActivityCmd `cmd:"" help:"Record a friend's latest activity."`
}

type FriendAddCmd struct {
	Name   string `arg:"" help:"Friend's name."`
	Avatar string `help:"Avatar URL."`
}

func (c *FriendAddCmd) Run(ctx *cli.Context) error {
	f := models.Friend{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(c.Name),
		Avatar: c.Avatar,
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if err := ctx.Dispatch(state.AddFriend{Friend: f}); err != nil {
		return err
	}
	fmt.Printf("Added friend: %s (ID: %s)\n", f.Name, cli.ShortID(f.ID))
	return nil
}

type FriendListCmd struct{}

func (c *FriendListCmd) Run(ctx *cli.Context) error {
	s := ctx.State().Social
	if len(s.Friends) == 0 {
		fmt.Println("No friends yet")
		return nil
	}

	fmt.Printf("Friends (%d online):\n", s.OnlineCount())
	for _, f := range s.Friends {
		status := "offline"
		if f.IsOnline {
			status = "online"
		}
		fmt.Printf("  %s [%s] %d workouts, %d day streak (ID: %s)\n", f.Name, status, f.TotalWorkouts, f.Streak, cli.ShortID(f.ID))
		if f.LastActivity != "" {
			fmt.Printf("      Last activity: %s\n", f.LastActivity)
		}
	}
	return nil
}

type FriendRemoveCmd struct {
	ID string `arg:"" help:"Friend ID or unique prefix."`
}

func (c *FriendRemoveCmd) Run(ctx *cli.Context) error {
	f, err := findFriend(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.RemoveFriend{ID: f.ID}); err != nil {
		return err
	}
	fmt.Printf("Removed friend: %s\n", f.Name)
	return nil
}

type FriendActivityCmd struct {
	ID       string `arg:"" help:"Friend ID or unique prefix."`
	Activity string `arg:"" help:"What they did, e.g. \"ran 10k\"."`
}

func (c *FriendActivityCmd) Run(ctx *cli.Context) error {
	f, err := findFriend(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.UpdateFriendActivity{ID: f.ID, Activity: c.Activity}); err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", f.Name, c.Activity)
	return nil
}

func findFriend(ctx *cli.Context, query string) (models.Friend, error) {
	s := ctx.State().Social
	ids := make([]string, len(s.Friends))
	for i, f := range s.Friends {
		ids[i] = f.ID
	}
	id, err := cli.ResolveID("friend", ids, query)
	if err != nil {
		return models.Friend{}, err
	}
	f, _ := s.FindFriend(id)
	return f, nil
}
