package bootstrap

import (
	"context"
	"duel-service/config"
	"duel-service/internal/server"
	"duel-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	config         config.Config
	postgresRepo   PostgresRepository
	sessionManager SessionManager
	roomRedis      RoomRedisManager
	kafka          Messaging
	hub            Hub
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}

	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	a.sessionManager = InitSessionRedis(a.config)
	a.roomRedis = InitRoomRedis(a.sessionManager)
	a.kafka = SetupMessaging(a.config)
	a.hub = InitWebsocket(a.ctx, a.config, a.postgresRepo, a.kafka, a.roomRedis)
	a.httpHandlers = SetupHTTPHandlers(a.postgresRepo, a.hub)
	a.wsHandlers = SetupWSHandlers(a.sessionManager, a.hub)
	a.fiberApp = SetupServer(a.config, a.httpHandlers, a.wsHandlers)
}

func (a *App) Start() {
	go func() {
		if err := server.Start(a.fiberApp, a.config.Server.Host, a.config.Server.Port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer a.close()

	graceful.WaitForShutdown(a.fiberApp, a.config.Server.ShutdownTimeout, a.cancel)
}

func (a *App) close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			zap.L().Error("Failed to close kafka writer", zap.Error(err))
		}
	}
	if a.sessionManager != nil {
		if err := a.sessionManager.Close(); err != nil {
			zap.L().Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.postgresRepo != nil {
		if err := a.postgresRepo.Close(); err != nil {
			zap.L().Error("Failed to close database", zap.Error(err))
		}
	}
}
