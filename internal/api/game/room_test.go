package game

import (
	"duel-service/domain"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedRoom returns a playing room with two ready players.
func startedRoom(t *testing.T, gameType GameType, rounds int) (*Room, *Player, *Player) {
	t.Helper()
	rm := newTestManager()
	p1, p2 := player("p1"), player("p2")
	room, err := rm.CreateRoom(gameType, p1, false, Settings{RoundCount: rounds})
	require.NoError(t, err)
	_, err = rm.JoinRoom(room.ID, p2)
	require.NoError(t, err)
	require.True(t, room.SetReady(p1.ConnID))
	require.True(t, room.SetReady(p2.ConnID))
	require.NoError(t, room.Start())
	return room, p1, p2
}

func TestRoom_StartRequiresTwoReadyPlayers(t *testing.T) {
	rm := newTestManager()
	p1, p2 := player("p1"), player("p2")
	room, _ := rm.CreateRoom(SpeedMathDuel, p1, false, Settings{})

	room.SetReady(p1.ConnID)
	assert.False(t, room.AllReady())
	assert.ErrorIs(t, room.Start(), domain.ErrInvalidTransition)

	rm.JoinRoom(room.ID, p2)
	assert.False(t, room.AllReady())
	assert.ErrorIs(t, room.Start(), domain.ErrInvalidTransition)
	assert.Equal(t, StatusWaiting, room.Status)

	room.SetReady(p2.ConnID)
	require.NoError(t, room.Start())
	assert.Equal(t, StatusPlaying, room.Status)
	assert.Equal(t, 1, room.CurrentRound)
	assert.NotNil(t, room.StartedAt)

	assert.ErrorIs(t, room.Start(), domain.ErrInvalidTransition, "start is not repeatable")
	assert.False(t, room.SetReady(p1.ConnID), "ready has no effect once playing")
}

func TestRoom_SetReadyUnknownConnection(t *testing.T) {
	rm := newTestManager()
	room, _ := rm.CreateRoom(SpeedMathDuel, player("p1"), false, Settings{})
	assert.False(t, room.SetReady(player("x").ConnID))
}

func TestRoom_AdvancePastMaxRoundsFinishes(t *testing.T) {
	room, _, _ := startedRoom(t, SpeedMathDuel, 5)

	for round := 2; round <= 5; round++ {
		_, err := room.AdvanceRound()
		require.NoError(t, err)
		assert.Equal(t, round, room.CurrentRound)
		assert.Equal(t, StatusPlaying, room.Status)
	}

	r, err := room.AdvanceRound()
	require.NoError(t, err)
	assert.Same(t, room, r)
	assert.Equal(t, StatusFinished, room.Status)
	assert.Equal(t, 6, room.CurrentRound)
	assert.NotNil(t, room.FinishedAt)

	_, err = room.AdvanceRound()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 6, room.CurrentRound, "finished rooms never change round")
	assert.Equal(t, StatusFinished, room.Status)
}

func TestRoom_AdvanceIsMonotonic(t *testing.T) {
	room, p1, _ := startedRoom(t, RiddleArena, 3)
	statusRank := map[Status]int{StatusWaiting: 0, StatusPlaying: 1, StatusFinished: 2}

	prevRound, prevStatus := room.CurrentRound, room.Status
	for i := 0; i < 10; i++ {
		room.AdvanceRound()
		room.Start()
		room.SetReady(p1.ConnID)
		assert.GreaterOrEqual(t, room.CurrentRound, prevRound)
		assert.GreaterOrEqual(t, statusRank[room.Status], statusRank[prevStatus])
		prevRound, prevStatus = room.CurrentRound, room.Status
	}
	assert.Equal(t, StatusFinished, room.Status)
}

func TestRoom_AddScore(t *testing.T) {
	room, p1, _ := startedRoom(t, SpeedMathDuel, 5)

	require.NoError(t, room.AddScore(p1.ConnID, 10))
	require.NoError(t, room.AddScore(p1.ConnID, -3))
	assert.Equal(t, 7, p1.Score)

	assert.ErrorIs(t, room.AddScore(player("x").ConnID, 10), domain.ErrPlayerNotFound)
}

func TestRoom_AddScoreRejectedWhenNotPlaying(t *testing.T) {
	rm := newTestManager()
	p1 := player("p1")
	room, _ := rm.CreateRoom(SpeedMathDuel, p1, false, Settings{})

	assert.ErrorIs(t, room.AddScore(p1.ConnID, 10), domain.ErrInvalidTransition)
	assert.Equal(t, 0, p1.Score)
}

func TestRoom_RecordFinish(t *testing.T) {
	room, p1, p2 := startedRoom(t, SpeedMathDuel, 3)
	answers := []RoundAnswer{
		{RoundID: 1, Value: "4", Correct: true, ElapsedMs: 1000},
		{RoundID: 2, Value: "9", Correct: false, ElapsedMs: 1500},
		{RoundID: 3, Value: "12", Correct: true, ElapsedMs: 800},
	}

	points, err := room.RecordFinish(p1.ConnID, answers)
	require.NoError(t, err)
	assert.Equal(t, 20, points)
	assert.Equal(t, 20, p1.Score)
	assert.True(t, p1.Finished)
	assert.Equal(t, int64(3300), p1.TotalTime())
	assert.False(t, room.AllFinished())

	_, err = room.RecordFinish(p1.ConnID, answers)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 20, p1.Score)

	answers[0].ElapsedMs = 99999
	assert.Equal(t, int64(3300), p1.TotalTime(), "stored answers are a copy")

	_, err = room.RecordFinish(p2.ConnID, nil)
	require.NoError(t, err)
	assert.True(t, room.AllFinished())

	require.NoError(t, room.Finish())
	assert.Equal(t, StatusFinished, room.Status)
	assert.ErrorIs(t, room.Finish(), domain.ErrInvalidTransition)
}

func TestRoom_ComputeWinner(t *testing.T) {
	cases := []struct {
		name       string
		s1, s2     int
		t1, t2     int64
		wantWinner string
	}{
		{name: "higher score wins", s1: 80, s2: 100, t1: 1000, t2: 9000, wantWinner: "p2"},
		{name: "faster time breaks score tie", s1: 100, s2: 100, t1: 5000, t2: 4000, wantWinner: "p2"},
		{name: "exact tie has no winner", s1: 50, s2: 50, t1: 3000, t2: 3000, wantWinner: ""},
		{name: "zero tie has no winner", wantWinner: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Player{ID: "p1", Score: tc.s1, Answers: []RoundAnswer{{ElapsedMs: tc.t1}}}
			b := &Player{ID: "p2", Score: tc.s2, Answers: []RoundAnswer{{ElapsedMs: tc.t2}}}

			for _, order := range [][]*Player{{a, b}, {b, a}} {
				room := &Room{Players: order}
				winner, ok := room.ComputeWinner()
				if tc.wantWinner == "" {
					assert.False(t, ok)
					assert.Nil(t, winner)
					continue
				}
				require.True(t, ok)
				assert.Equal(t, tc.wantWinner, winner.ID)
			}
		})
	}
}

func TestRoom_ComputeWinnerWithFewerPlayers(t *testing.T) {
	_, ok := (&Room{}).ComputeWinner()
	assert.False(t, ok)

	only := &Player{ID: "p1"}
	winner, ok := (&Room{Players: []*Player{only}}).ComputeWinner()
	require.True(t, ok)
	assert.Same(t, only, winner)
}

func TestRoom_ContentIsStableAcrossReads(t *testing.T) {
	room, _, _ := startedRoom(t, SpeedMathDuel, 4)

	first := room.Content()
	first[0].Prompt = "tampered"
	first[0].Options[0] = "tampered"

	second := room.Content()
	third := room.Content()
	assert.Equal(t, second, third)
	assert.NotEqual(t, "tampered", second[0].Prompt)
	assert.NotContains(t, second[0].Options, "tampered")
}

func TestRoom_MarshalIncludesRoundsButNotConnections(t *testing.T) {
	room, p1, _ := startedRoom(t, MemoryMatch, 2)

	raw, err := json.Marshal(room)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded["rounds"], 2)
	assert.Equal(t, "playing", decoded["status"])
	assert.NotContains(t, string(raw), p1.ConnID.String())
}

func TestPlayer_TotalTimeDoesNotWrap(t *testing.T) {
	slow := &Player{ID: "p1", Score: 10, Answers: []RoundAnswer{
		{RoundID: 1, ElapsedMs: math.MaxInt64},
		{RoundID: 2, ElapsedMs: 10},
	}}
	fast := &Player{ID: "p2", Score: 10, Answers: []RoundAnswer{{RoundID: 1, ElapsedMs: 1000}}}

	assert.Equal(t, int64(MaxAnswerMs+10), slow.TotalTime())

	room := &Room{Players: []*Player{slow, fast}}
	winner, ok := room.ComputeWinner()
	require.True(t, ok)
	assert.Equal(t, "p2", winner.ID)
}

func TestSumElapsed_Saturates(t *testing.T) {
	assert.Equal(t, int64(0), sumElapsed([]RoundAnswer{{ElapsedMs: -50}}))

	many := make([]RoundAnswer, 3)
	for i := range many {
		many[i].ElapsedMs = MaxAnswerMs
	}
	assert.Equal(t, int64(3*MaxAnswerMs), sumElapsed(many))
}
