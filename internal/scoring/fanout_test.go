package scoring

import (
	"context"
	"duel-service/domain"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	records []domain.ScoreRecord
	err     error
}

func (s *memStore) SubmitScore(_ context.Context, record domain.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func TestFanout_WritesToEveryStore(t *testing.T) {
	a, b := &memStore{}, &memStore{}
	f := NewFanout(a, nil, b)
	require.Equal(t, 2, f.Len())

	require.NoError(t, f.SubmitScore(context.Background(), domain.ScoreRecord{PlayerID: "p1"}))
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)
}

func TestFanout_OneFailureDoesNotStopOthers(t *testing.T) {
	boom := errors.New("boom")
	bad, good := &memStore{err: boom}, &memStore{}

	err := NewFanout(bad, good).SubmitScore(context.Background(), domain.ScoreRecord{PlayerID: "p1"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, good.records, 1)
}

func TestFanout_Empty(t *testing.T) {
	f := NewFanout()
	assert.Equal(t, 0, f.Len())
	assert.NoError(t, f.SubmitScore(context.Background(), domain.ScoreRecord{}))
}
