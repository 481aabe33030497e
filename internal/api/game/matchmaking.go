package game

import (
	"time"

	"github.com/google/uuid"
)

// QueueEntry, eşleşme bekleyen bir oyuncu.
type QueueEntry struct {
	PlayerID    string
	DisplayName string
	ConnID      uuid.UUID
	QueuedAt    time.Time
}

// MatchQueue keeps one FIFO waiting list per game type. Pairing is strict arrival
// order; there is no skill matching.
type MatchQueue struct {
	queues map[GameType][]QueueEntry
}

func NewMatchQueue() *MatchQueue {
	return &MatchQueue{
		queues: make(map[GameType][]QueueEntry),
	}
}

// Enqueue adds the entry unless the same player identity is already waiting for
// this game type. Reports whether the entry was added.
func (q *MatchQueue) Enqueue(gameType GameType, entry QueueEntry) bool {
	for _, e := range q.queues[gameType] {
		if e.PlayerID == entry.PlayerID {
			return false
		}
	}
	if entry.QueuedAt.IsZero() {
		entry.QueuedAt = time.Now()
	}
	q.queues[gameType] = append(q.queues[gameType], entry)
	return true
}

// DequeuePair, en uzun süredir bekleyen iki oyuncuyu sırasıyla çıkarır.
func (q *MatchQueue) DequeuePair(gameType GameType) (QueueEntry, QueueEntry, bool) {
	waiting := q.queues[gameType]
	if len(waiting) < 2 {
		return QueueEntry{}, QueueEntry{}, false
	}
	first, second := waiting[0], waiting[1]
	rest := waiting[2:]
	if len(rest) == 0 {
		delete(q.queues, gameType)
	} else {
		q.queues[gameType] = append([]QueueEntry(nil), rest...)
	}
	return first, second, true
}

// Remove drops every entry bound to connID across all game types and returns how
// many were removed.
func (q *MatchQueue) Remove(connID uuid.UUID) int {
	removed := 0
	for gameType, waiting := range q.queues {
		kept := waiting[:0]
		for _, e := range waiting {
			if e.ConnID == connID {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(q.queues, gameType)
		} else {
			q.queues[gameType] = kept
		}
	}
	return removed
}

func (q *MatchQueue) Len(gameType GameType) int {
	return len(q.queues[gameType])
}

// Snapshot returns queued player counts per game type.
func (q *MatchQueue) Snapshot() map[GameType]int {
	out := make(map[GameType]int, len(q.queues))
	for gameType, waiting := range q.queues {
		out[gameType] = len(waiting)
	}
	return out
}
