package models

import (
	"fmt"
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationAchievement NotificationType = "achievement"
	NotificationReminder    NotificationType = "reminder"
	NotificationSocial      NotificationType = "social"
	NotificationGoal        NotificationType = "goal"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: notification title cannot be empty", ErrValidation)
	}
	switch n.Type {
	case NotificationAchievement, NotificationReminder, NotificationSocial, NotificationGoal:
		return nil
	default:
		return fmt.Errorf("%w: unknown notification type %q", ErrValidation, n.Type)
	}
}

// Icon returns the glyph shown next to a notification of this type.
func (t NotificationType) Icon() string {
	switch t {
	case NotificationAchievement:
		return "🏆"
	case NotificationReminder:
		return "⏰"
	case NotificationSocial:
		return "👥"
	case NotificationGoal:
		return "🎯"
	default:
		return "🔔"
	}
}
