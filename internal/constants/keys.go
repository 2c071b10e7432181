package constants

// Top-level keys of the persisted snapshot.
const (
	KeyJournal       = "journal"
	KeyApp           = "app"
	KeyAchievements  = "achievements"
	KeyGoals         = "goals"
	KeySocial        = "social"
	KeyNotifications = "notifications"
)

// PersistWhitelist lists every key the persistence gateway stores, in a stable order.
var PersistWhitelist = []string{
	KeyJournal,
	KeyApp,
	KeyAchievements,
	KeyGoals,
	KeySocial,
	KeyNotifications,
}
