package hub

import (
	"context"
	"duel-service/domain"
	"duel-service/internal/api/game"
	"duel-service/internal/api/ws/message"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	SendBufferSize = 256
)

var ErrHubStopped = errors.New("hub stopped")

type inboundMessage struct {
	ConnID    uuid.UUID
	Payload   []byte
	Throttled bool
}

// Config, hub'ın bağlantı başına hız sınırı ve GameHub ayarları.
type Config struct {
	Game            GameHubConfig
	EventsPerSecond float64
	EventBurst      int
	ReapInterval    time.Duration
}

// Hub tüm bağlantıları ve oda yayın gruplarını tutar. Tüm durum yalnızca Run
// döngüsünde değişir: kayıt, kayıt silme, gelen olaylar, zamanlayıcı görevleri.
type Hub struct {
	clients map[uuid.UUID]*domain.Client
	groups  map[uuid.UUID]map[uuid.UUID]*domain.Client

	register   chan *domain.Client
	unregister chan *domain.Client
	inbound    chan inboundMessage
	tasks      chan func()
	done       chan struct{}

	cfg     Config
	gameHub *GameHub
}

func NewHub(cfg Config, rooms *game.RoomManager, opts ...GameHubOption) *Hub {
	if cfg.EventsPerSecond <= 0 {
		cfg.EventsPerSecond = 20
	}
	if cfg.EventBurst <= 0 {
		cfg.EventBurst = 40
	}
	hub := &Hub{
		clients:    make(map[uuid.UUID]*domain.Client),
		groups:     make(map[uuid.UUID]map[uuid.UUID]*domain.Client),
		register:   make(chan *domain.Client),
		unregister: make(chan *domain.Client, 64),
		inbound:    make(chan inboundMessage, 256),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
		cfg:        cfg,
	}
	hub.gameHub = NewGameHub(hub, hub, rooms, cfg.Game, opts...)
	return hub
}

// GameHub returns the session gateway driven by this hub.
func (h *Hub) GameHub() *GameHub {
	return h.gameHub
}

// Run, hub'ın olay döngüsü. ctx kapanana kadar bloklar.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	var reap <-chan time.Time
	if h.cfg.Game.IdleRoomTimeout > 0 && h.cfg.ReapInterval > 0 {
		ticker := time.NewTicker(h.cfg.ReapInterval)
		defer ticker.Stop()
		reap = ticker.C
	}

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case in := <-h.inbound:
			if _, ok := h.clients[in.ConnID]; !ok {
				continue
			}
			if in.Throttled {
				h.SendTo(in.ConnID, message.Error{Message: "rate limit exceeded"})
				continue
			}
			h.gameHub.Dispatch(in.ConnID, in.Payload)
		case task := <-h.tasks:
			task()
		case <-reap:
			h.gameHub.ReapIdle()
		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

func (h *Hub) registerClient(client *domain.Client) {
	h.clients[client.ID] = client
	h.gameHub.Connect(client.ID, client.Verified)
	zap.L().Info("client connected",
		zap.String("conn_id", client.ID.String()),
		zap.Int("clients", len(h.clients)))
}

// unregisterClient may be called more than once for the same client.
func (h *Hub) unregisterClient(client *domain.Client) {
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	h.gameHub.Disconnect(client.ID)

	for groupID, members := range h.groups {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.groups, groupID)
		}
	}
	delete(h.clients, client.ID)
	close(client.Send)

	zap.L().Info("client disconnected",
		zap.String("conn_id", client.ID.String()),
		zap.Int("clients", len(h.clients)))
}

func (h *Hub) shutdown() {
	for _, client := range h.clients {
		close(client.Send)
		close(client.Done)
	}
	h.clients = make(map[uuid.UUID]*domain.Client)
	h.groups = make(map[uuid.UUID]map[uuid.UUID]*domain.Client)
	zap.L().Info("hub stopped")
}

// ServeClient registers a client built with domain.NewClient and pumps its
// connection until it closes. The fiber websocket handler must not return while
// the socket is in use, so this blocks.
func (h *Hub) ServeClient(client *domain.Client) {
	select {
	case h.register <- client:
	case <-h.done:
		return
	}
	go h.writePump(client)
	h.readPump(client)
}

// readPump, istemciden gelen ham mesajları olay döngüsüne taşır.
func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
		client.Conn.Close()
	}()

	limiter := rate.NewLimiter(rate.Limit(h.cfg.EventsPerSecond), h.cfg.EventBurst)

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("client read error", zap.String("conn_id", client.ID.String()), zap.Error(err))
			}
			return
		}

		msg := inboundMessage{ConnID: client.ID, Payload: payload, Throttled: !limiter.Allow()}
		select {
		case h.inbound <- msg:
		case <-h.done:
			return
		}
	}
}

// writePump, Send kanalındaki mesajları yazar ve ping gönderir.
func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				client.WriteLock.Unlock()
				return
			}
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Warn("websocket write error", zap.String("conn_id", client.ID.String()), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}

		case <-client.Done:
			return
		}
	}
}

func (h *Hub) send(client *domain.Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		zap.L().Warn("client send buffer full, dropping message", zap.String("conn_id", client.ID.String()))
	}
}

// SendTo, olayı tek bir bağlantıya gönderir. Yalnızca döngüden çağrılır.
func (h *Hub) SendTo(connID uuid.UUID, ev message.Event) {
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	payload, err := message.Encode(ev)
	if err != nil {
		zap.L().Error("failed to encode event", zap.Error(err))
		return
	}
	h.send(client, payload)
}

// Broadcast encodes once and fans out to every member of the group.
func (h *Hub) Broadcast(groupID uuid.UUID, ev message.Event) {
	members, ok := h.groups[groupID]
	if !ok {
		return
	}
	payload, err := message.Encode(ev)
	if err != nil {
		zap.L().Error("failed to encode event", zap.Error(err))
		return
	}
	for _, client := range members {
		h.send(client, payload)
	}
}

func (h *Hub) JoinGroup(groupID, connID uuid.UUID) {
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.groups[groupID]
	if !ok {
		members = make(map[uuid.UUID]*domain.Client)
		h.groups[groupID] = members
	}
	members[connID] = client
}

func (h *Hub) LeaveGroup(groupID, connID uuid.UUID) {
	members, ok := h.groups[groupID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, groupID)
	}
}

// AfterFunc schedules fn onto the event loop after d.
func (h *Hub) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		select {
		case h.tasks <- fn:
		case <-h.done:
		}
	})
}

// Exec runs fn on the event loop and waits for it to finish.
func (h *Hub) Exec(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case h.tasks <- task:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RoomByCode, davet koduyla oda özetini döngü üzerinden okur.
func (h *Hub) RoomByCode(ctx context.Context, code string) (game.Summary, error) {
	var (
		summary game.Summary
		err     error
	)
	if execErr := h.Exec(ctx, func() {
		summary, err = h.gameHub.RoomByCode(code)
	}); execErr != nil {
		return game.Summary{}, execErr
	}
	return summary, err
}

func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := h.Exec(ctx, func() {
		stats = h.gameHub.Stats()
	}); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
