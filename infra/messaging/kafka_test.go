package messaging

import (
	"context"
	"duel-service/domain"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_SubmitScore(t *testing.T) {
	writer := &recordingWriter{}
	pub := NewKafkaPublisherWithWriter(writer, "game-results")
	record := domain.ScoreRecord{
		RoomID:     uuid.New(),
		PlayerID:   "p1",
		GameType:   "riddle_arena",
		Score:      30,
		IsWinner:   true,
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, pub.SubmitScore(context.Background(), record))
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, record.RoomID.String(), string(msg.Key))
	assert.Equal(t, record.FinishedAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, MessageScoreSubmitted, string(msg.Headers[0].Value))

	var ev ScoreEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, MessageScoreSubmitted, ev.Type)
	assert.Equal(t, "p1", ev.Record.PlayerID)
	assert.Equal(t, 30, ev.Record.Score)

	require.NoError(t, pub.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writeErr := errors.New("leader not available")
	pub := NewKafkaPublisherWithWriter(&recordingWriter{err: writeErr}, "game-results")

	err := pub.SubmitScore(context.Background(), domain.ScoreRecord{PlayerID: "p1"})
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "game-results")
}
