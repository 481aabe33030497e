package session

import (
	"context"
	"duel-service/domain"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionManager, auth servisinin redis'teki oturumlarını okur.
type SessionManager struct {
	client *redis.Client
}

// NewSessionManager, yeni bir SessionManager örneği oluşturur.
func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to session Redis successfully", zap.String("addr", redisAddr))
	return &SessionManager{client: client}, nil
}

func NewSessionManagerWithClient(client *redis.Client) *SessionManager {
	return &SessionManager{client: client}
}

func (sm *SessionManager) GetRedisClient() *redis.Client {
	return sm.client
}

// GetSession, token'a karşılık gelen oturumu döndürür. Bilinmeyen ya da süresi dolmuş
// token domain.ErrUnauthorized döner.
func (sm *SessionManager) GetSession(ctx context.Context, token string) (*domain.SessionData, error) {
	raw, err := sm.client.Get(ctx, token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: session not found", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &data, nil
}

func (sm *SessionManager) Close() error {
	return sm.client.Close()
}
