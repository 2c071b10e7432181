package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SportJournal/internal/models"
)

func TestCreateChallengeDedupesParticipants(t *testing.T) {
	s := SocialState{}
	s = ReduceSocial(s, CreateChallenge{Challenge: models.Challenge{
		ID:           "c1",
		Title:        "Plank",
		Participants: []string{"me", "friend1", "me"},
		TargetValue:  10,
	}})

	require.Len(t, s.Challenges, 1)
	assert.Equal(t, []string{"me", "friend1"}, s.Challenges[0].Participants)
}

func TestJoinAndLeaveChallenge(t *testing.T) {
	orig := SocialState{Friends: DefaultFriends(), Challenges: DefaultChallenges(testNow)}

	s := ReduceSocial(orig, JoinChallenge{ChallengeID: "challenge2", UserID: "me"})
	s = ReduceSocial(s, JoinChallenge{ChallengeID: "challenge2", UserID: "me"})
	c, ok := s.FindChallenge("challenge2")
	require.True(t, ok)
	assert.Equal(t, []string{"friend1", "friend3", "me"}, c.Participants)

	before, _ := orig.FindChallenge("challenge2")
	assert.Equal(t, []string{"friend1", "friend3"}, before.Participants, "reducer mutated its input")

	s = ReduceSocial(s, LeaveChallenge{ChallengeID: "challenge2", UserID: "friend1"})
	s = ReduceSocial(s, LeaveChallenge{ChallengeID: "challenge2", UserID: "nobody"})
	c, _ = s.FindChallenge("challenge2")
	assert.Equal(t, []string{"friend3", "me"}, c.Participants)

	unchanged := ReduceSocial(s, JoinChallenge{ChallengeID: "missing", UserID: "me"})
	assert.Equal(t, s, unchanged)
}

func TestFriends(t *testing.T) {
	s := SocialState{Friends: DefaultFriends()}
	assert.Equal(t, 2, s.OnlineCount())

	s = ReduceSocial(s, AddFriend{Friend: models.Friend{ID: "friend4", Name: "Dana"}})
	s = ReduceSocial(s, UpdateFriendActivity{ID: "friend2", Activity: "just now"})
	s = ReduceSocial(s, RemoveFriend{ID: "friend1"})

	require.Len(t, s.Friends, 3)
	f, ok := s.FindFriend("friend2")
	require.True(t, ok)
	assert.Equal(t, "just now", f.LastActivity)
	_, ok = s.FindFriend("friend1")
	assert.False(t, ok)
	assert.Equal(t, "friend4", s.Friends[2].ID)
}

func TestAppFlags(t *testing.T) {
	s := initialApp()
	assert.True(t, s.IsFirstLaunch)
	assert.False(t, s.IsOnboardingCompleted)

	s = ReduceApp(s, CompleteOnboarding{})
	assert.True(t, s.IsOnboardingCompleted)
	assert.False(t, s.IsFirstLaunch)

	assert.Equal(t, initialApp(), ReduceApp(s, ResetApp{}))
}
