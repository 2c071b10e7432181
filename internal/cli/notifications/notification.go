package notifications

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

type NotificationCmd struct {
	List    NotificationListCmd    `cmd:"" help:"List notifications." default:"1"`
	Add     NotificationAddCmd     `cmd:"" help:"Add a notification."`
	Read    NotificationReadCmd    `cmd:"" help:"Mark a notification as read."`
	ReadAll NotificationReadAllCmd `cmd:"" name:"read-all" help:"Mark every notification as read."`
	Delete  NotificationDeleteCmd  `cmd:"" help:"Delete a notification."`
	Clear   NotificationClearCmd   `cmd:"" help:"Delete every notification."`
}

type NotificationListCmd struct {
	Unread bool `help:"Only unread notifications."`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	s := ctx.State().Notifications
	list := s.Notifications
	if c.Unread {
		list = s.Unread()
	}
	if len(list) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	now := ctx.Now()
	fmt.Printf("Notifications (%d unread):\n", s.UnreadCount)
	for _, n := range list {
		dot := " "
		if !n.IsRead {
			dot = "•"
		}
		fmt.Printf("%s %s %s  %s (ID: %s)\n", dot, n.Type.Icon(), n.Title, humanize.RelTime(n.CreatedAt, now, "ago", "from now"), cli.ShortID(n.ID))
		if n.Message != "" {
			fmt.Printf("     %s\n", n.Message)
		}
	}
	return nil
}

type NotificationAddCmd struct {
	Title   string `arg:"" help:"Notification title."`
	Message string `short:"m" help:"Notification body."`
	Type    string `short:"t" help:"Type (achievement|reminder|social|goal)." default:"reminder"`
}

func (c *NotificationAddCmd) Run(ctx *cli.Context) error {
	n := models.Notification{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(c.Title),
		Message: strings.TrimSpace(c.Message),
		Type:    models.NotificationType(strings.ToLower(c.Type)),
	}
	if err := n.Validate(); err != nil {
		return err
	}

	if err := ctx.Dispatch(state.AddNotification{Notification: n}); err != nil {
		return err
	}
	ctx.Notify(n)
	fmt.Printf("Added notification: %s (ID: %s)\n", n.Title, cli.ShortID(n.ID))
	return nil
}

type NotificationReadCmd struct {
	ID string `arg:"" help:"Notification ID or unique prefix."`
}

func (c *NotificationReadCmd) Run(ctx *cli.Context) error {
	n, err := find(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.MarkAsRead{ID: n.ID}); err != nil {
		return err
	}
	fmt.Printf("Marked as read: %s (%d unread)\n", n.Title, ctx.State().Notifications.UnreadCount)
	return nil
}

type NotificationReadAllCmd struct{}

func (c *NotificationReadAllCmd) Run(ctx *cli.Context) error {
	if err := ctx.Dispatch(state.MarkAllAsRead{}); err != nil {
		return err
	}
	fmt.Println("✓ All notifications marked as read")
	return nil
}

type NotificationDeleteCmd struct {
	ID string `arg:"" help:"Notification ID or unique prefix."`
}

func (c *NotificationDeleteCmd) Run(ctx *cli.Context) error {
	n, err := find(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(state.DeleteNotification{ID: n.ID}); err != nil {
		return err
	}
	fmt.Printf("Deleted notification: %s\n", n.Title)
	return nil
}

type NotificationClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *NotificationClearCmd) Run(ctx *cli.Context) error {
	ok, err := cli.Confirm("Delete every notification?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Clear cancelled.")
		return nil
	}
	if err := ctx.Dispatch(state.ClearAllNotifications{}); err != nil {
		return err
	}
	fmt.Println("✓ Notifications cleared")
	return nil
}

func find(ctx *cli.Context, query string) (models.Notification, error) {
	s := ctx.State().Notifications
	ids := make([]string, len(s.Notifications))
	for i, n := range s.Notifications {
		ids[i] = n.ID
	}
	id, err := cli.ResolveID("notification", ids, query)
	if err != nil {
		return models.Notification{}, err
	}
	n, _ := s.Find(id)
	return n, nil
}
