package initializer

import (
	"duel-service/config"
	"duel-service/infra/redis"
	"duel-service/infra/session"

	"go.uber.org/zap"
)

func InitSessionRedis(appConfig config.Config) *session.SessionManager {
	sessionManager, err := session.NewSessionManager(
		appConfig.SessionRedis.Addr(),
		appConfig.SessionRedis.Password,
		appConfig.SessionRedis.DB,
	)
	if err != nil {
		zap.L().Fatal("Failed to connect to session redis", zap.Error(err))
	}
	return sessionManager
}

// InitRoomRedis oda olaylarını aynı redis bağlantısı üzerinden yayınlar.
func InitRoomRedis(sessionManager *session.SessionManager) *redis.RedisManager {
	return redis.NewRedisManagerWithClient(sessionManager.GetRedisClient())
}
