package bootstrap

import (
	"context"
	"duel-service/config"
	"duel-service/domain"
	"duel-service/internal/api/game"
	gameHub "duel-service/internal/api/ws/hub"
	"duel-service/internal/initializer"
	"duel-service/internal/scoring"

	"go.uber.org/zap"
)

type Hub interface {
	ServeClient(client *domain.Client)
	RoomByCode(ctx context.Context, code string) (game.Summary, error)
	Stats(ctx context.Context) (gameHub.Stats, error)
	GameHub() *gameHub.GameHub
}

// InitWebsocket builds the hub with the configured score stores and room event
// publisher, and starts its event loop.
func InitWebsocket(ctx context.Context, config config.Config, repo PostgresRepository, kafka Messaging, roomRedis RoomRedisManager) Hub {
	var stores []scoring.Store
	if repo != nil {
		stores = append(stores, repo)
	}
	if kafka != nil {
		stores = append(stores, kafka)
	}

	var opts []gameHub.GameHubOption
	if len(stores) > 0 {
		opts = append(opts, gameHub.WithScoreStore(scoring.NewFanout(stores...)))
	}
	if roomRedis != nil {
		opts = append(opts, gameHub.WithRoomEvents(roomRedis))
	}

	hub := initializer.InitWebsocket(ctx, config, opts...)
	go logScoreResults(ctx, hub.GameHub().ScoreResults())
	return hub
}

func logScoreResults(ctx context.Context, results <-chan gameHub.ScoreResult) {
	for {
		select {
		case res := <-results:
			if res.Err != nil {
				zap.L().Error("score was not persisted",
					zap.String("room_id", res.Record.RoomID.String()),
					zap.String("player_id", res.Record.PlayerID),
					zap.Int("score", res.Record.Score),
					zap.Error(res.Err))
				continue
			}
			zap.L().Debug("score persisted",
				zap.String("room_id", res.Record.RoomID.String()),
				zap.String("player_id", res.Record.PlayerID))
		case <-ctx.Done():
			return
		}
	}
}
