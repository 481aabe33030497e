package wsUsecase

import (
	"context"
	"duel-service/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sessions map[string]*domain.SessionData
	calls    int
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (*domain.SessionData, error) {
	f.calls++
	s, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

func TestResolveIdentity(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessions{sessions: map[string]*domain.SessionData{
		"good": {UserID: userID, Username: "ada"},
	}}
	u := &playConnectUseCase{sessions: sessions}

	ident, err := u.resolveIdentity(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{PlayerID: userID.String(), DisplayName: "ada"}, ident)

	_, err = u.resolveIdentity(context.Background(), "expired")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	ident, err = u.resolveIdentity(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, ident)
	assert.Equal(t, 2, sessions.calls, "no lookup without a token")
}

func TestResolveIdentity_NoSessionStore(t *testing.T) {
	u := &playConnectUseCase{}

	ident, err := u.resolveIdentity(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Nil(t, ident)
}
