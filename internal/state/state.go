package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
)

// State is the whole application state. Values are treated as immutable: every
// reducer returns a new State sharing unchanged slices with the previous one.
type State struct {
	Journal       JournalState
	App           AppState
	Achievements  AchievementsState
	Goals         GoalsState
	Social        SocialState
	Notifications NotificationsState
}

// Initial returns the state of a journal that has never been persisted, with
// seeded records dated relative to now.
func Initial(now time.Time) State {
	return State{
		Journal:       JournalState{Entries: []models.JournalEntry{}},
		App:           initialApp(),
		Achievements:  AchievementsState{Achievements: DefaultAchievements(), Unlocked: []string{}},
		Goals:         GoalsState{Goals: DefaultGoals()},
		Social:        SocialState{Friends: DefaultFriends(), Challenges: DefaultChallenges(now)},
		Notifications: initialNotifications(now),
	}
}

// Snapshot is the persisted form of State: one JSON document per whitelisted
// slice key.
type Snapshot map[string]json.RawMessage

func (s State) slices() map[string]any {
	return map[string]any{
		constants.KeyJournal:       s.Journal,
		constants.KeyApp:           s.App,
		constants.KeyAchievements:  s.Achievements,
		constants.KeyGoals:         s.Goals,
		constants.KeySocial:        s.Social,
		constants.KeyNotifications: s.Notifications,
	}
}

// Snapshot serializes every whitelisted slice.
func (s State) Snapshot() (Snapshot, error) {
	parts := s.slices()
	snap := make(Snapshot, len(constants.PersistWhitelist))
	for _, key := range constants.PersistWhitelist {
		data, err := json.Marshal(parts[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		snap[key] = data
	}
	return snap, nil
}

// Restore overlays snap onto base. Keys missing from snap keep base's value and
// keys outside the whitelist are ignored. Restored entries are deduplicated by id
// and the unread counter is recomputed from the restored notifications.
func Restore(base State, snap Snapshot) (State, error) {
	out := base
	if raw, ok := snap[constants.KeyJournal]; ok {
		var v JournalState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeyJournal, err)
		}
		v.Entries = uniqueEntries(v.Entries)
		out.Journal = v
	}
	if raw, ok := snap[constants.KeyApp]; ok {
		var v AppState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeyApp, err)
		}
		out.App = v
	}
	if raw, ok := snap[constants.KeyAchievements]; ok {
		var v AchievementsState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeyAchievements, err)
		}
		if v.Unlocked == nil {
			v.Unlocked = []string{}
		}
		out.Achievements = v
	}
	if raw, ok := snap[constants.KeyGoals]; ok {
		var v GoalsState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeyGoals, err)
		}
		out.Goals = v
	}
	if raw, ok := snap[constants.KeySocial]; ok {
		var v SocialState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeySocial, err)
		}
		out.Social = v
	}
	if raw, ok := snap[constants.KeyNotifications]; ok {
		var v NotificationsState
		if err := json.Unmarshal(raw, &v); err != nil {
			return base, restoreErr(constants.KeyNotifications, err)
		}
		v.UnreadCount = countUnread(v.Notifications)
		out.Notifications = v
	}
	return out, nil
}

func restoreErr(key string, err error) error {
	return fmt.Errorf("failed to restore %s: %w", key, err)
}
