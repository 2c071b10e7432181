package state

import (
	"slices"
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

// NotificationsState keeps UnreadCount equal to the number of unread
// notifications after every action.
type NotificationsState struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// NotificationsAction is an action handled by ReduceNotifications.
type NotificationsAction interface {
	Action
	notificationsAction()
}

// AddNotification prepends Notification. A zero CreatedAt is filled from the
// container clock.
type AddNotification struct{ Notification models.Notification }

// MarkAsRead marks one notification read. Marking it again changes nothing.
type MarkAsRead struct{ ID string }

// MarkAllAsRead marks every notification read.
type MarkAllAsRead struct{}

// DeleteNotification removes the notification with ID.
type DeleteNotification struct{ ID string }

// ClearAllNotifications empties the list.
type ClearAllNotifications struct{}

func (AddNotification) Kind() string       { return "notifications/addNotification" }
func (MarkAsRead) Kind() string            { return "notifications/markAsRead" }
func (MarkAllAsRead) Kind() string         { return "notifications/markAllAsRead" }
func (DeleteNotification) Kind() string    { return "notifications/deleteNotification" }
func (ClearAllNotifications) Kind() string { return "notifications/clearAllNotifications" }

func (AddNotification) notificationsAction()       {}
func (MarkAsRead) notificationsAction()            {}
func (MarkAllAsRead) notificationsAction()         {}
func (DeleteNotification) notificationsAction()    {}
func (ClearAllNotifications) notificationsAction() {}

func (a AddNotification) withTime(now time.Time) Action {
	if a.Notification.CreatedAt.IsZero() {
		a.Notification.CreatedAt = now
	}
	return a
}

// SampleNotifications returns the notifications a fresh journal starts with,
// dated relative to now.
func SampleNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:        "notif1",
			Title:     "Achievement Unlocked! 🏆",
			Message:   "You've completed your first workout!",
			Type:      models.NotificationAchievement,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "notif2",
			Title:     "Workout Reminder ⏰",
			Message:   "Time for your daily workout!",
			Type:      models.NotificationReminder,
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:        "notif3",
			Title:     "Friend Activity 👥",
			Message:   "Alex completed a workout!",
			Type:      models.NotificationSocial,
			IsRead:    true,
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}
}

func initialNotifications(now time.Time) NotificationsState {
	ns := SampleNotifications(now)
	return NotificationsState{Notifications: ns, UnreadCount: countUnread(ns)}
}

// ReduceNotifications applies a to s, keeping UnreadCount equal to the unread records.
func ReduceNotifications(s NotificationsState, a NotificationsAction) NotificationsState {
	switch a := a.(type) {
	case AddNotification:
		ns := make([]models.Notification, 0, len(s.Notifications)+1)
		ns = append(ns, a.Notification)
		s.Notifications = append(ns, s.Notifications...)
		if !a.Notification.IsRead {
			s.UnreadCount++
		}
	case MarkAsRead:
		ns := slices.Clone(s.Notifications)
		for i := range ns {
			if ns[i].ID == a.ID && !ns[i].IsRead {
				ns[i].IsRead = true
				s.UnreadCount--
			}
		}
		s.Notifications = ns
	case MarkAllAsRead:
		ns := slices.Clone(s.Notifications)
		for i := range ns {
			ns[i].IsRead = true
		}
		s.Notifications = ns
		s.UnreadCount = 0
	case DeleteNotification:
		ns := make([]models.Notification, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			if n.ID == a.ID {
				if !n.IsRead {
					s.UnreadCount--
				}
				continue
			}
			ns = append(ns, n)
		}
		s.Notifications = ns
	case ClearAllNotifications:
		s.Notifications = []models.Notification{}
		s.UnreadCount = 0
	}
	return s
}

func countUnread(ns []models.Notification) int {
	n := 0
	for _, x := range ns {
		if !x.IsRead {
			n++
		}
	}
	return n
}

// Find returns the notification with id.
func (s NotificationsState) Find(id string) (models.Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return models.Notification{}, false
}

// Unread returns the unread notifications in list order.
func (s NotificationsState) Unread() []models.Notification {
	var out []models.Notification
	for _, n := range s.Notifications {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}
