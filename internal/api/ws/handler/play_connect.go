package wsHandler

import (
	"context"
	wsUsecase "duel-service/internal/api/ws/usecase"

	"github.com/gofiber/contrib/websocket"
)

const sessionCookie = "Session"

// WebSocketPlayHandler, /ws/play bağlantılarını kabul eder.
type WebSocketPlayHandler struct {
	usecase wsUsecase.PlayConnectUseCase
}

type WebSocketPlayRequest struct{}

func NewWebSocketPlayHandler(usecase wsUsecase.PlayConnectUseCase) *WebSocketPlayHandler {
	return &WebSocketPlayHandler{
		usecase: usecase,
	}
}

// HandleWS reads the session token from the Session cookie, falling back to the
// token query parameter for clients that cannot send cookies on upgrade.
func (h *WebSocketPlayHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketPlayRequest) {
	token := c.Cookies(sessionCookie)
	if token == "" {
		token = c.Query("token")
	}
	h.usecase.Execute(c, ctx, token)
}
