package initializer

import (
	"context"
	"duel-service/config"
	"duel-service/internal/api/game"
	gameHub "duel-service/internal/api/ws/hub"
	"time"
)

func InitWebsocket(ctx context.Context, appConfig config.Config, opts ...gameHub.GameHubOption) *gameHub.Hub {
	gc := appConfig.Game

	seed := gc.ContentSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rooms := game.NewRoomManager(game.NewGenerator(seed), game.Settings{
		RoundCount:       gc.RoundCount,
		TimeLimitSeconds: gc.TimeLimitSeconds,
	})

	hub := gameHub.NewHub(gameHub.Config{
		Game: gameHub.GameHubConfig{
			GraceDelay:          gc.GraceDelay,
			PersistTimeout:      gc.PersistTimeout,
			IdleRoomTimeout:     gc.IdleRoomTimeout,
			TrustClientIdentity: gc.TrustClientIdentity,
		},
		EventsPerSecond: gc.EventsPerSecond,
		EventBurst:      gc.EventBurst,
		ReapInterval:    gc.ReapInterval,
	}, rooms, opts...)

	go hub.Run(ctx)
	return hub
}
