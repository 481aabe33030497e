package bootstrap

import (
	"context"
	"duel-service/config"
	"duel-service/domain"
	"duel-service/internal/initializer"
)

type PostgresRepository interface {
	Close() error
	SubmitScore(ctx context.Context, record domain.ScoreRecord) error
	PlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error)
}

func InitDatabase(config config.Config) PostgresRepository {
	if !config.Postgres.Enabled {
		return nil
	}
	return initializer.InitDatabase(config)
}
