package httpUsecase

import (
	"context"
	"duel-service/domain"
	"duel-service/internal/api/game"
	"duel-service/internal/api/ws/hub"
)

// RoomQuery, canlı oda durumunu hub'ın olay döngüsü üzerinden okur.
type RoomQuery interface {
	RoomByCode(ctx context.Context, code string) (game.Summary, error)
	Stats(ctx context.Context) (hub.Stats, error)
}

type PostgresRepository interface {
	PlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error)
}
