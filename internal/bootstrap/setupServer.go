package bootstrap

import (
	"duel-service/config"
	httpHandler "duel-service/internal/api/http/handler"
	wsHandler "duel-service/internal/api/ws/handler"
	"duel-service/internal/handler"
	"duel-service/internal/server"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		AllowOrigins: config.Server.AllowOrigins,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	app := server.NewFiberApp(serverConfig)

	getRoomByCodeHandler := httpHandlers["get-room-by-code"].(*httpHandler.GetRoomByCodeHandler)
	getStatsHandler := httpHandlers["get-stats"].(*httpHandler.GetStatsHandler)

	app.Get("/rooms/code/:code", handler.HandleWithFiber[httpHandler.GetRoomByCodeRequest, httpHandler.GetRoomByCodeResponse](getRoomByCodeHandler))
	app.Get("/stats", handler.HandleWithFiber[httpHandler.GetStatsRequest, httpHandler.GetStatsResponse](getStatsHandler))
	if h, ok := httpHandlers["get-player-stats"].(*httpHandler.GetPlayerStatsHandler); ok {
		app.Get("/players/:player_id/stats", handler.HandleWithFiber[httpHandler.GetPlayerStatsRequest, httpHandler.GetPlayerStatsResponse](h))
	}

	wsRoute := app.Group("/ws")
	playHandler := wsHandlers["play-connect"].(*wsHandler.WebSocketPlayHandler)
	wsRoute.Get("/play", handler.HandleWithFiberWS[wsHandler.WebSocketPlayRequest](playHandler))

	return app
}
