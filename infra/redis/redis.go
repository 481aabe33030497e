package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisManager, oda yaşam döngüsü olaylarını Redis Pub/Sub ile yayınlar.
type RedisManager struct {
	client *redis.Client
}

// RoomEvent, room:<id> kanalına yazılan mesaj.
type RoomEvent struct {
	RoomID    uuid.UUID   `json:"room_id"`
	Type      string      `json:"type"`
	Content   interface{} `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewRedisManager(redisAddr string, password string, db int) (*RedisManager, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisManagerWithClient(rdb), nil
}

func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

// Channel returns the pub/sub channel of a room.
func Channel(roomID uuid.UUID) string {
	return fmt.Sprintf("room:%s", roomID.String())
}

// PublishMessage hata döndürmez; yayın başarısızlığı sadece loglanır.
func (rm *RedisManager) PublishMessage(ctx context.Context, roomID uuid.UUID, msgType string, dataContent interface{}) {
	msg := RoomEvent{
		RoomID:    roomID,
		Type:      msgType,
		Content:   dataContent,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("Failed to marshal Redis message", zap.Error(err))
		return
	}

	channel := Channel(roomID)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		zap.L().Warn("Failed to publish message to Redis channel",
			zap.String("channel", channel),
			zap.Error(err))
	}
}
