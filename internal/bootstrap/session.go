package bootstrap

import (
	"context"
	"duel-service/config"
	"duel-service/domain"
	"duel-service/infra/session"
	"duel-service/internal/initializer"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionManager interface {
	GetRedisClient() *redis.Client
	GetSession(ctx context.Context, token string) (*domain.SessionData, error)
	Close() error
}

type RoomRedisManager interface {
	PublishMessage(ctx context.Context, roomID uuid.UUID, msgType string, dataContent interface{})
}

func InitSessionRedis(config config.Config) SessionManager {
	if !config.SessionRedis.Enabled {
		return nil
	}
	return initializer.InitSessionRedis(config)
}

func InitRoomRedis(sessionManager SessionManager) RoomRedisManager {
	sm, ok := sessionManager.(*session.SessionManager)
	if !ok || sm == nil {
		return nil
	}
	return initializer.InitRoomRedis(sm)
}
