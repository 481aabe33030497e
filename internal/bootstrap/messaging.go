package bootstrap

import (
	"context"
	"duel-service/config"
	"duel-service/domain"
	"duel-service/internal/initializer"
)

type Messaging interface {
	Close() error
	SubmitScore(ctx context.Context, record domain.ScoreRecord) error
}

func SetupMessaging(config config.Config) Messaging {
	if !config.Kafka.Enabled {
		return nil
	}
	return initializer.InitMessaging(config)
}
