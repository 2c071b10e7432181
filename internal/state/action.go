package state

import "time"

// Action is a tagged command understood by exactly one slice reducer.
type Action interface {
	// Kind names the action as "<slice>/<operation>", e.g. "journal/addEntry".
	Kind() string
}

// timestamped actions carry a time that the container fills from its clock
// before reducing, so reducers never read the wall clock themselves.
type timestamped interface {
	withTime(now time.Time) Action
}

// Reduce routes a to the reducer of the slice it belongs to and returns the next
// state. s is left untouched; actions of an unknown type return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case JournalAction:
		s.Journal = ReduceJournal(s.Journal, a)
	case GoalsAction:
		s.Goals = ReduceGoals(s.Goals, a)
	case AchievementsAction:
		s.Achievements = ReduceAchievements(s.Achievements, a)
	case NotificationsAction:
		s.Notifications = ReduceNotifications(s.Notifications, a)
	case SocialAction:
		s.Social = ReduceSocial(s.Social, a)
	case AppAction:
		s.App = ReduceApp(s.App, a)
	}
	return s
}
