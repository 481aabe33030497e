package domain

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type WebSocketErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Client, tek bir websocket bağlantısı. ID bağlantı kimliğidir (connection handle),
// oyuncu kimliği değildir; aynı oyuncu birden fazla bağlantı açabilir.
type Client struct {
	ID        uuid.UUID
	Verified  *Identity // upgrade sırasında oturumdan çözülen kimlik, yoksa nil
	Send      chan []byte
	Conn      *websocket.Conn
	WriteLock sync.Mutex
	Done      chan struct{}
}

func NewClient(conn *websocket.Conn, verified *Identity, bufferSize int) *Client {
	return &Client{
		ID:       uuid.New(),
		Verified: verified,
		Send:     make(chan []byte, bufferSize),
		Conn:     conn,
		Done:     make(chan struct{}),
	}
}
