package wsUsecase

import (
	"context"
	"duel-service/domain"
)

type Hub interface {
	ServeClient(client *domain.Client)
}

type SessionStore interface {
	GetSession(ctx context.Context, token string) (*domain.SessionData, error)
}
