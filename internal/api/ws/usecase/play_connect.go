package wsUsecase

import (
	"context"
	"duel-service/domain"
	"duel-service/internal/api/ws/hub"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sessionLookupTimeout = 3 * time.Second

type PlayConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, token string)
}

type playConnectUseCase struct {
	hub      Hub
	sessions SessionStore
}

func NewPlayConnectUseCase(hub Hub, sessions SessionStore) PlayConnectUseCase {
	return &playConnectUseCase{
		hub:      hub,
		sessions: sessions,
	}
}

// Execute, varsa oturum token'ını çözer ve bağlantıyı hub'a teslim eder.
// Bağlantı kapanana kadar döner.
func (u *playConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, token string) {
	verified, err := u.resolveIdentity(ctx, token)
	if err != nil {
		zap.L().Warn("websocket session rejected", zap.Error(err))
		sendErrorAndClose(c, domain.ErrUnauthorized.Error(), fiber.StatusUnauthorized)
		return
	}

	client := domain.NewClient(c, verified, hub.SendBufferSize)
	zap.L().Debug("websocket connection accepted",
		zap.String("conn_id", client.ID.String()),
		zap.Bool("verified", verified != nil))
	u.hub.ServeClient(client)
}

func (u *playConnectUseCase) resolveIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" || u.sessions == nil {
		return nil, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, sessionLookupTimeout)
	defer cancel()

	session, err := u.sessions.GetSession(lookupCtx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("empty session")
	}
	return &domain.Identity{
		PlayerID:    session.UserID.String(),
		DisplayName: session.Username,
	}, nil
}

func sendErrorAndClose(conn *websocket.Conn, msg string, code int) {
	errorMessage := domain.WebSocketErrorMessage{
		Type:    "error",
		Message: msg,
		Code:    code,
	}
	if err := conn.WriteJSON(errorMessage); err != nil {
		zap.L().Warn("failed to send error message to client", zap.Error(err))
	}
	conn.Close()
}
