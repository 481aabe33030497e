package bootstrap

import (
	httpHandler "duel-service/internal/api/http/handler"
	httpUsecase "duel-service/internal/api/http/usecase"
	wsHandler "duel-service/internal/api/ws/handler"
	wsUsecase "duel-service/internal/api/ws/usecase"
)

func SetupHTTPHandlers(postgresRepository PostgresRepository, hub Hub) map[string]interface{} {
	getRoomByCodeUseCase := httpUsecase.NewGetRoomByCodeUseCase(hub)
	getRoomByCodeHandler := httpHandler.NewGetRoomByCodeHandler(getRoomByCodeUseCase)

	getStatsUseCase := httpUsecase.NewGetStatsUseCase(hub)
	getStatsHandler := httpHandler.NewGetStatsHandler(getStatsUseCase)

	handlers := map[string]interface{}{
		"get-room-by-code": getRoomByCodeHandler,
		"get-stats":        getStatsHandler,
	}

	if postgresRepository != nil {
		getPlayerStatsUseCase := httpUsecase.NewGetPlayerStatsUseCase(postgresRepository)
		handlers["get-player-stats"] = httpHandler.NewGetPlayerStatsHandler(getPlayerStatsUseCase)
	}
	return handlers
}

func SetupWSHandlers(sessionManager SessionManager, hub Hub) map[string]interface{} {
	var sessions wsUsecase.SessionStore
	if sessionManager != nil {
		sessions = sessionManager
	}
	playConnect := wsUsecase.NewPlayConnectUseCase(hub, sessions)
	playHandler := wsHandler.NewWebSocketPlayHandler(playConnect)
	return map[string]interface{}{
		"play-connect": playHandler,
	}
}
