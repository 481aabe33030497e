package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string) QueueEntry {
	return QueueEntry{PlayerID: id, DisplayName: id, ConnID: uuid.New()}
}

func TestMatchQueue_PairsInArrivalOrder(t *testing.T) {
	q := NewMatchQueue()
	p1, p2, p3 := entry("p1"), entry("p2"), entry("p3")

	require.True(t, q.Enqueue(SpeedMathDuel, p1))
	_, _, ok := q.DequeuePair(SpeedMathDuel)
	assert.False(t, ok, "one waiting player cannot be paired")

	require.True(t, q.Enqueue(SpeedMathDuel, p2))
	require.True(t, q.Enqueue(SpeedMathDuel, p3))

	a, b, ok := q.DequeuePair(SpeedMathDuel)
	require.True(t, ok)
	assert.Equal(t, "p1", a.PlayerID)
	assert.Equal(t, "p2", b.PlayerID)
	assert.Equal(t, 1, q.Len(SpeedMathDuel))
}

func TestMatchQueue_DuplicateIdentityIsNoop(t *testing.T) {
	q := NewMatchQueue()
	p1 := entry("p1")

	assert.True(t, q.Enqueue(RiddleArena, p1))
	assert.False(t, q.Enqueue(RiddleArena, QueueEntry{PlayerID: "p1", ConnID: uuid.New()}))
	assert.Equal(t, 1, q.Len(RiddleArena))

	// same identity may wait for another game type
	assert.True(t, q.Enqueue(MemoryMatch, p1))
}

func TestMatchQueue_QueuesAreIndependentPerGameType(t *testing.T) {
	q := NewMatchQueue()
	q.Enqueue(SpeedMathDuel, entry("a"))
	q.Enqueue(RiddleArena, entry("b"))

	_, _, ok := q.DequeuePair(SpeedMathDuel)
	assert.False(t, ok)
	assert.Equal(t, map[GameType]int{SpeedMathDuel: 1, RiddleArena: 1}, q.Snapshot())
}

func TestMatchQueue_RemoveAcrossGameTypes(t *testing.T) {
	q := NewMatchQueue()
	conn := uuid.New()
	q.Enqueue(SpeedMathDuel, QueueEntry{PlayerID: "p1", ConnID: conn})
	q.Enqueue(MemoryMatch, QueueEntry{PlayerID: "p1", ConnID: conn})
	q.Enqueue(MemoryMatch, entry("p2"))

	assert.Equal(t, 2, q.Remove(conn))
	assert.Equal(t, 0, q.Len(SpeedMathDuel))
	assert.Equal(t, 1, q.Len(MemoryMatch))

	assert.Equal(t, 0, q.Remove(uuid.New()), "removing an unknown connection is a no-op")
}

func TestMatchQueue_DisconnectedPlayerIsNeverPaired(t *testing.T) {
	q := NewMatchQueue()
	gone := entry("gone")
	q.Enqueue(SpeedMathDuel, gone)
	q.Enqueue(SpeedMathDuel, entry("p2"))
	q.Remove(gone.ConnID)
	q.Enqueue(SpeedMathDuel, entry("p3"))

	a, b, ok := q.DequeuePair(SpeedMathDuel)
	require.True(t, ok)
	assert.Equal(t, "p2", a.PlayerID)
	assert.Equal(t, "p3", b.PlayerID)
}

func TestMatchQueue_NoPlayerReturnedTwice(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	q := NewMatchQueue()
	seen := map[string]bool{}
	var order []string
	next := 0

	for i := 0; i < 500; i++ {
		if rng.IntN(3) > 0 {
			id := fmt.Sprintf("p%d", next)
			next++
			q.Enqueue(SpeedMathDuel, entry(id))
			order = append(order, id)
			continue
		}
		a, b, ok := q.DequeuePair(SpeedMathDuel)
		if !ok {
			continue
		}
		for _, e := range []QueueEntry{a, b} {
			require.False(t, seen[e.PlayerID], "player %s paired twice", e.PlayerID)
			seen[e.PlayerID] = true
		}
		require.Equal(t, order[0], a.PlayerID)
		require.Equal(t, order[1], b.PlayerID)
		order = order[2:]
	}
}
