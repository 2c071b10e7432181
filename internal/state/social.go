package state

import (
	"slices"
	"time"

	"github.com/tLat87/SportJournal/internal/models"
)

// SocialState holds friends and challenges.
type SocialState struct {
	Friends    []models.Friend    `json:"friends"`
	Challenges []models.Challenge `json:"challenges"`
	IsLoading  bool               `json:"-"`
}

// SocialAction is an action handled by ReduceSocial.
type SocialAction interface {
	Action
	socialAction()
}

// AddFriend appends a friend.
type AddFriend struct{ Friend models.Friend }

// RemoveFriend removes the friend with ID.
type RemoveFriend struct{ ID string }

// UpdateFriendActivity replaces the last-activity text of a friend.
type UpdateFriendActivity struct {
	ID       string
	Activity string
}

// CreateChallenge appends Challenge with duplicate participants collapsed.
type CreateChallenge struct{ Challenge models.Challenge }

// JoinChallenge adds UserID to a challenge unless it already participates.
type JoinChallenge struct {
	ChallengeID string
	UserID      string
}

// LeaveChallenge drops UserID from the challenge participants.
type LeaveChallenge struct {
	ChallengeID string
	UserID      string
}

func (AddFriend) Kind() string            { return "social/addFriend" }
func (RemoveFriend) Kind() string         { return "social/removeFriend" }
func (UpdateFriendActivity) Kind() string { return "social/updateFriendActivity" }
func (CreateChallenge) Kind() string      { return "social/createChallenge" }
func (JoinChallenge) Kind() string        { return "social/joinChallenge" }
func (LeaveChallenge) Kind() string       { return "social/leaveChallenge" }

func (AddFriend) socialAction()            {}
func (RemoveFriend) socialAction()         {}
func (UpdateFriendActivity) socialAction() {}
func (CreateChallenge) socialAction()      {}
func (JoinChallenge) socialAction()        {}
func (LeaveChallenge) socialAction()       {}

// DefaultFriends is the seeded friend list.
func DefaultFriends() []models.Friend {
	return []models.Friend{
		{ID: "friend1", Name: "Alex Johnson", IsOnline: true, LastActivity: "2 hours ago", TotalWorkouts: 45, Streak: 7},
		{ID: "friend2", Name: "Sarah Wilson", IsOnline: false, LastActivity: "1 day ago", TotalWorkouts: 32, Streak: 3},
		{ID: "friend3", Name: "Mike Chen", IsOnline: true, LastActivity: "30 minutes ago", TotalWorkouts: 67, Streak: 12},
	}
}

// DefaultChallenges returns the starter challenges, both running from now.
func DefaultChallenges(now time.Time) []models.Challenge {
	return []models.Challenge{
		{
			ID:           "challenge1",
			Title:        "Weekly Warriors",
			Description:  "Complete 5 workouts this week",
			Participants: []string{"friend1", "friend2", "friend3"},
			StartDate:    now,
			EndDate:      now.AddDate(0, 0, 7),
			TargetValue:  5,
			Unit:         "workouts",
			Prize:        "🏆 Premium Badge",
			IsActive:     true,
		},
		{
			ID:           "challenge2",
			Title:        "Distance Masters",
			Description:  "Run 50km this month",
			Participants: []string{"friend1", "friend3"},
			StartDate:    now,
			EndDate:      now.AddDate(0, 0, 30),
			TargetValue:  50,
			Unit:         "km",
			Prize:        "🥇 Gold Medal",
			IsActive:     true,
		},
	}
}

// ReduceSocial applies a to s. Challenge participants stay unique.
func ReduceSocial(s SocialState, a SocialAction) SocialState {
	switch a := a.(type) {
	case AddFriend:
		friends := make([]models.Friend, 0, len(s.Friends)+1)
		friends = append(friends, s.Friends...)
		s.Friends = append(friends, a.Friend)
	case RemoveFriend:
		s.Friends = slices.DeleteFunc(slices.Clone(s.Friends), func(f models.Friend) bool {
			return f.ID == a.ID
		})
	case UpdateFriendActivity:
		idx := slices.IndexFunc(s.Friends, func(f models.Friend) bool { return f.ID == a.ID })
		if idx < 0 {
			return s
		}
		friends := slices.Clone(s.Friends)
		friends[idx].LastActivity = a.Activity
		s.Friends = friends
	case CreateChallenge:
		c := a.Challenge
		c.Participants = uniqueStrings(c.Participants)
		challenges := make([]models.Challenge, 0, len(s.Challenges)+1)
		challenges = append(challenges, s.Challenges...)
		s.Challenges = append(challenges, c)
	case JoinChallenge:
		s.Challenges = s.updatedChallenge(a.ChallengeID, func(c *models.Challenge) {
			if c.HasParticipant(a.UserID) {
				return
			}
			participants := make([]string, 0, len(c.Participants)+1)
			participants = append(participants, c.Participants...)
			c.Participants = append(participants, a.UserID)
		})
	case LeaveChallenge:
		s.Challenges = s.updatedChallenge(a.ChallengeID, func(c *models.Challenge) {
			c.Participants = slices.DeleteFunc(slices.Clone(c.Participants), func(p string) bool {
				return p == a.UserID
			})
		})
	}
	return s
}

func (s SocialState) updatedChallenge(id string, fn func(*models.Challenge)) []models.Challenge {
	idx := slices.IndexFunc(s.Challenges, func(c models.Challenge) bool { return c.ID == id })
	if idx < 0 {
		return s.Challenges
	}
	challenges := slices.Clone(s.Challenges)
	fn(&challenges[idx])
	return challenges
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// FindFriend returns the friend with id.
func (s SocialState) FindFriend(id string) (models.Friend, bool) {
	for _, f := range s.Friends {
		if f.ID == id {
			return f, true
		}
	}
	return models.Friend{}, false
}

// FindChallenge returns the challenge with id.
func (s SocialState) FindChallenge(id string) (models.Challenge, bool) {
	for _, c := range s.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return models.Challenge{}, false
}

// OnlineCount returns how many friends are currently online.
func (s SocialState) OnlineCount() int {
	n := 0
	for _, f := range s.Friends {
		if f.IsOnline {
			n++
		}
	}
	return n
}
