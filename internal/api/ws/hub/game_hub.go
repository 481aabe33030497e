package hub

import (
	"context"
	"duel-service/domain"
	"duel-service/internal/api/game"
	"duel-service/internal/api/ws/message"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport, bağlantılara ve oda yayın gruplarına mesaj göndermeyi soyutlar.
type Transport interface {
	SendTo(connID uuid.UUID, ev message.Event)
	Broadcast(groupID uuid.UUID, ev message.Event)
	JoinGroup(groupID, connID uuid.UUID)
	LeaveGroup(groupID, connID uuid.UUID)
}

// Scheduler runs fn on the event loop after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type ScoreStore interface {
	SubmitScore(ctx context.Context, record domain.ScoreRecord) error
}

type RoomEventPublisher interface {
	PublishMessage(ctx context.Context, roomID uuid.UUID, msgType string, dataContent interface{})
}

// Oda yaşam döngüsü olayları (redis üzerinden yayınlanır).
const (
	EventRoomCreated  = "room_created"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventGameStarted  = "game_started"
	EventGameEnded    = "game_ended"
	EventRoomDeleted  = "room_deleted"
)

type GameHubConfig struct {
	GraceDelay          time.Duration
	PersistTimeout      time.Duration
	IdleRoomTimeout     time.Duration
	TrustClientIdentity bool
}

// ScoreResult is the outcome of one asynchronous score submission.
type ScoreResult struct {
	Record domain.ScoreRecord
	Err    error
}

type GameHubOption func(*GameHub)

func WithScoreStore(store ScoreStore) GameHubOption {
	return func(g *GameHub) { g.scores = store }
}

func WithRoomEvents(publisher RoomEventPublisher) GameHubOption {
	return func(g *GameHub) { g.events = publisher }
}

// GameHub, istemci olaylarını kuyruk ve oda işlemlerine çevirir. Tüm metotlar
// hub'ın olay döngüsünden çağrılır; bu yüzden kilit kullanılmaz.
type GameHub struct {
	transport Transport
	scheduler Scheduler
	rooms     *game.RoomManager
	queue     *game.MatchQueue
	cfg       GameHubConfig

	identities map[uuid.UUID]domain.Identity
	verified   map[uuid.UUID]domain.Identity

	scores       ScoreStore
	events       RoomEventPublisher
	scoreResults chan ScoreResult
}

func NewGameHub(transport Transport, scheduler Scheduler, rooms *game.RoomManager, cfg GameHubConfig, opts ...GameHubOption) *GameHub {
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	g := &GameHub{
		transport:    transport,
		scheduler:    scheduler,
		rooms:        rooms,
		queue:        game.NewMatchQueue(),
		cfg:          cfg,
		identities:   make(map[uuid.UUID]domain.Identity),
		verified:     make(map[uuid.UUID]domain.Identity),
		scoreResults: make(chan ScoreResult, 64),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ScoreResults reports the outcome of every score submission. Results are dropped
// when nobody drains the channel.
func (g *GameHub) ScoreResults() <-chan ScoreResult {
	return g.scoreResults
}

// Connect records the identity verified at upgrade time, if any.
func (g *GameHub) Connect(connID uuid.UUID, verified *domain.Identity) {
	if verified != nil {
		g.verified[connID] = *verified
	}
}

// Dispatch decodes one raw client message and routes it to its handler.
func (g *GameHub) Dispatch(connID uuid.UUID, raw []byte) {
	in, err := message.Decode(raw)
	if err != nil {
		g.reportError(connID, err, "invalid message")
		return
	}

	switch ev := in.(type) {
	case *message.Authenticate:
		g.Authenticate(connID, *ev)
	case *message.FindMatch:
		g.FindMatch(connID, *ev)
	case *message.CancelMatchmaking:
		g.CancelMatchmaking(connID)
	case *message.CreatePrivateRoom:
		g.CreatePrivateRoom(connID, *ev)
	case *message.JoinWithCode:
		g.JoinWithCode(connID, *ev)
	case *message.Ready:
		g.Ready(connID, ev.RoomID)
	case *message.SubmitAnswer:
		g.SubmitAnswer(connID, *ev)
	case *message.NextRound:
		g.NextRound(connID, ev.RoomID)
	case *message.LeaveRoom:
		g.LeaveRoom(connID, ev.RoomID)
	case *message.FinishGame:
		g.FinishGame(connID, *ev)
	default:
		zap.L().Warn("unhandled inbound event", zap.String("type", fmt.Sprintf("%T", in)))
	}
}

// Authenticate binds the connection to a player identity. Repeating it rebinds.
func (g *GameHub) Authenticate(connID uuid.UUID, req message.Authenticate) {
	ident := domain.Identity{PlayerID: req.PlayerID, DisplayName: req.DisplayName}

	if v, ok := g.verified[connID]; ok {
		if v.PlayerID != req.PlayerID && !g.cfg.TrustClientIdentity {
			zap.L().Warn("identity mismatch on authenticate",
				zap.String("conn_id", connID.String()),
				zap.String("verified", v.PlayerID),
				zap.String("claimed", req.PlayerID))
			g.transport.SendTo(connID, message.Authenticated{Success: false})
			g.reportError(connID, domain.ErrNotAuthenticated, "")
			return
		}
		if ident.DisplayName == "" {
			ident.DisplayName = v.DisplayName
		}
	} else if !g.cfg.TrustClientIdentity {
		g.transport.SendTo(connID, message.Authenticated{Success: false})
		g.reportError(connID, domain.ErrNotAuthenticated, "")
		return
	}

	if ident.DisplayName == "" {
		ident.DisplayName = ident.PlayerID
	}
	g.identities[connID] = ident
	g.transport.SendTo(connID, message.Authenticated{Success: true, PlayerID: ident.PlayerID})
}

func (g *GameHub) identity(connID uuid.UUID) (domain.Identity, bool) {
	ident, ok := g.identities[connID]
	return ident, ok
}

// FindMatch kuyruğa ekler ve hemen eşleştirmeyi dener.
func (g *GameHub) FindMatch(connID uuid.UUID, req message.FindMatch) {
	ident, ok := g.identity(connID)
	if !ok {
		g.reportError(connID, domain.ErrNotAuthenticated, "")
		return
	}
	gameType, err := game.ParseGameType(req.GameType)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}

	if !g.queue.Enqueue(gameType, game.QueueEntry{
		PlayerID:    ident.PlayerID,
		DisplayName: ident.DisplayName,
		ConnID:      connID,
	}) {
		g.reportError(connID, domain.ErrAlreadyQueued, "already searching")
		return
	}
	g.transport.SendTo(connID, message.Matchmaking{Status: message.StatusSearching, GameType: string(gameType)})

	first, second, ok := g.queue.DequeuePair(gameType)
	if !ok {
		return
	}
	g.startPublicMatch(gameType, first, second)
}

// startPublicMatch: oda kur, ikinciyi ekle, ikisini de hazır yap, gruba al, başlat.
func (g *GameHub) startPublicMatch(gameType game.GameType, first, second game.QueueEntry) {
	fail := func(err error) {
		zap.L().Error("failed to start public match", zap.Error(err),
			zap.String("game_type", string(gameType)))
		g.reportError(first.ConnID, err, "failed to create match")
		g.reportError(second.ConnID, err, "failed to create match")
	}

	p1 := game.NewPlayer(first.PlayerID, first.DisplayName, first.ConnID)
	p2 := game.NewPlayer(second.PlayerID, second.DisplayName, second.ConnID)

	room, err := g.rooms.CreateRoom(gameType, p1, false, game.Settings{})
	if err != nil {
		fail(err)
		return
	}
	if _, err := g.rooms.JoinRoom(room.ID, p2); err != nil {
		g.rooms.DisposeRoom(room.ID)
		fail(err)
		return
	}

	room.SetReady(first.ConnID)
	room.SetReady(second.ConnID)
	g.transport.JoinGroup(room.ID, first.ConnID)
	g.transport.JoinGroup(room.ID, second.ConnID)

	if err := room.Start(); err != nil {
		g.transport.LeaveGroup(room.ID, first.ConnID)
		g.transport.LeaveGroup(room.ID, second.ConnID)
		g.rooms.DisposeRoom(room.ID)
		fail(err)
		return
	}

	g.transport.Broadcast(room.ID, message.GameStart{Room: room})
	g.transport.SendTo(first.ConnID, message.MatchFound{Room: room})
	g.transport.SendTo(second.ConnID, message.MatchFound{Room: room})
	g.publish(room, EventGameStarted)

	zap.L().Info("public match started",
		zap.String("room_id", room.ID.String()),
		zap.String("player1", first.PlayerID),
		zap.String("player2", second.PlayerID))
}

func (g *GameHub) CancelMatchmaking(connID uuid.UUID) {
	g.queue.Remove(connID)
	g.transport.SendTo(connID, message.Matchmaking{Status: message.StatusCancelled})
}

func (g *GameHub) CreatePrivateRoom(connID uuid.UUID, req message.CreatePrivateRoom) {
	ident, ok := g.identity(connID)
	if !ok {
		g.reportError(connID, domain.ErrNotAuthenticated, "")
		return
	}
	gameType, err := game.ParseGameType(req.GameType)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}

	player := game.NewPlayer(ident.PlayerID, ident.DisplayName, connID)
	room, err := g.rooms.CreateRoom(gameType, player, true, req.Settings)
	if err != nil {
		g.reportError(connID, err, "failed to create room")
		return
	}

	g.transport.JoinGroup(room.ID, connID)
	g.transport.SendTo(connID, message.RoomCreated{Room: room, InviteCode: room.InviteCode})
	g.publish(room, EventRoomCreated)
}

func (g *GameHub) JoinWithCode(connID uuid.UUID, req message.JoinWithCode) {
	ident, ok := g.identity(connID)
	if !ok {
		g.reportError(connID, domain.ErrNotAuthenticated, "")
		return
	}
	room, err := g.rooms.FindByInviteCode(req.Code)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}

	player := game.NewPlayer(ident.PlayerID, ident.DisplayName, connID)
	if _, err := g.rooms.JoinRoom(room.ID, player); err != nil {
		g.reportError(connID, err, "failed to join room")
		return
	}

	g.transport.JoinGroup(room.ID, connID)
	g.transport.Broadcast(room.ID, message.PlayerJoined{Room: room})
	g.publish(room, EventPlayerJoined)
}

// memberRoom odayı bulur ve bağlantının o odada oyuncu olduğunu doğrular.
func (g *GameHub) memberRoom(connID, roomID uuid.UUID) (*game.Room, error) {
	room, err := g.rooms.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasConn(connID) {
		return nil, domain.ErrPlayerNotFound
	}
	return room, nil
}

// Ready marks the caller ready; the second ready player starts the game.
func (g *GameHub) Ready(connID, roomID uuid.UUID) {
	room, err := g.memberRoom(connID, roomID)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}
	if !room.SetReady(connID) {
		g.reportError(connID, domain.ErrRoomNotWaiting, "room is not waiting for players")
		return
	}
	g.transport.Broadcast(room.ID, message.PlayerReady{Room: room})

	if !room.AllReady() {
		return
	}
	if err := room.Start(); err != nil {
		g.reportError(connID, err, "failed to start game")
		return
	}
	g.transport.Broadcast(room.ID, message.GameStart{Room: room})
	g.publish(room, EventGameStarted)
}

// SubmitAnswer records the answer and applies the client reported points when correct.
func (g *GameHub) SubmitAnswer(connID uuid.UUID, req message.SubmitAnswer) {
	room, err := g.memberRoom(connID, req.RoomID)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}

	answer := game.RoundAnswer{
		RoundID:   req.RoundID,
		Value:     req.Answer,
		Correct:   req.Correct,
		ElapsedMs: req.ElapsedMs,
	}
	if err := room.RecordAnswer(connID, answer); err != nil {
		g.reportError(connID, err, "failed to submit answer")
		return
	}
	if req.Correct {
		if err := room.AddScore(connID, req.Points); err != nil {
			g.reportError(connID, err, "failed to submit answer")
			return
		}
	}

	player := room.PlayerByConn(connID)
	g.transport.Broadcast(room.ID, message.AnswerSubmitted{
		PlayerID: player.ID,
		Correct:  req.Correct,
		Room:     room,
	})
}

func (g *GameHub) NextRound(connID, roomID uuid.UUID) {
	room, err := g.memberRoom(connID, roomID)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}
	if _, err := room.AdvanceRound(); err != nil {
		g.reportError(connID, err, "failed to advance round")
		return
	}

	if room.Status == game.StatusFinished {
		g.endGame(room)
		return
	}
	g.transport.Broadcast(room.ID, message.NewRound{Room: room})
}

// FinishGame, oyuncu bazında puanlanan oyunlarda tüm cevap listesini kaydeder.
// Son oyuncu da bitirdiğinde oyun sonu akışı çalışır.
func (g *GameHub) FinishGame(connID uuid.UUID, req message.FinishGame) {
	room, err := g.memberRoom(connID, req.RoomID)
	if err != nil {
		g.reportError(connID, err, "")
		return
	}
	points, err := room.RecordFinish(connID, req.Answers)
	if err != nil {
		g.reportError(connID, err, "failed to finish game")
		return
	}

	player := room.PlayerByConn(connID)
	g.transport.Broadcast(room.ID, message.PlayerFinished{
		PlayerID: player.ID,
		Points:   points,
		Room:     room,
	})

	if !room.AllFinished() {
		return
	}
	if err := room.Finish(); err != nil {
		zap.L().Error("failed to finish room", zap.Error(err), zap.String("room_id", room.ID.String()))
		return
	}
	g.endGame(room)
}

// endGame broadcasts the result, submits scores without waiting and schedules disposal.
func (g *GameHub) endGame(room *game.Room) {
	winner, hasWinner := room.ComputeWinner()
	g.transport.Broadcast(room.ID, message.GameEnd{Room: room, Winner: winner})

	finishedAt := time.Now()
	if room.FinishedAt != nil {
		finishedAt = *room.FinishedAt
	}
	for _, p := range room.Players {
		record := domain.ScoreRecord{
			RoomID:        room.ID,
			PlayerID:      p.ID,
			GameType:      string(room.GameType),
			Score:         p.Score,
			IsMultiplayer: true,
			IsWinner:      hasWinner && winner.ID == p.ID,
			FinishedAt:    finishedAt,
		}
		go g.submitScore(record)
	}
	g.publish(room, EventGameEnded)

	winnerID := ""
	if hasWinner {
		winnerID = winner.ID
	}
	zap.L().Info("game finished",
		zap.String("room_id", room.ID.String()),
		zap.String("winner", winnerID),
		zap.Duration("grace", g.cfg.GraceDelay))

	roomID := room.ID
	g.scheduler.AfterFunc(g.cfg.GraceDelay, func() {
		g.disposeRoom(roomID)
	})
}

// disposeRoom removes the room and empties its broadcast group.
func (g *GameHub) disposeRoom(roomID uuid.UUID) {
	room, err := g.rooms.GetRoom(roomID)
	if err != nil {
		return
	}
	for _, connID := range room.ConnIDs() {
		g.transport.LeaveGroup(roomID, connID)
	}
	g.rooms.DisposeRoom(roomID)
	g.publishDeleted(roomID)
}

func (g *GameHub) submitScore(record domain.ScoreRecord) {
	var err error
	if g.scores != nil {
		ctx, cancel := context.WithTimeout(context.Background(), g.cfg.PersistTimeout)
		err = g.scores.SubmitScore(ctx, record)
		cancel()
	}
	if err != nil {
		zap.L().Warn("failed to persist score",
			zap.Error(err),
			zap.String("room_id", record.RoomID.String()),
			zap.String("player_id", record.PlayerID))
	}

	select {
	case g.scoreResults <- ScoreResult{Record: record, Err: err}:
	default:
	}
}

// LeaveRoom removes the caller; an emptied room is disposed without broadcast.
func (g *GameHub) LeaveRoom(connID, roomID uuid.UUID) {
	if err := g.leave(connID, roomID); err != nil {
		g.reportError(connID, err, "failed to leave room")
	}
}

func (g *GameHub) leave(connID, roomID uuid.UUID) error {
	room, err := g.rooms.LeaveRoom(roomID, connID)
	switch {
	case errors.Is(err, domain.ErrRoomClosed):
		g.transport.LeaveGroup(roomID, connID)
		g.publishDeleted(roomID)
		return nil
	case err != nil:
		return err
	}

	g.transport.LeaveGroup(roomID, connID)
	g.transport.Broadcast(room.ID, message.PlayerLeft{Room: room})
	g.publish(room, EventPlayerLeft)
	return nil
}

// Disconnect tears down everything bound to the connection.
func (g *GameHub) Disconnect(connID uuid.UUID) {
	g.queue.Remove(connID)
	delete(g.identities, connID)
	delete(g.verified, connID)

	for _, room := range g.rooms.RoomsForConn(connID) {
		if err := g.leave(connID, room.ID); err != nil {
			zap.L().Warn("failed to leave room on disconnect",
				zap.Error(err),
				zap.String("room_id", room.ID.String()),
				zap.String("conn_id", connID.String()))
		}
	}
}

// ReapIdle closes rooms idle longer than the configured timeout.
func (g *GameHub) ReapIdle() {
	for _, room := range g.rooms.ReapIdle(g.cfg.IdleRoomTimeout) {
		g.transport.Broadcast(room.ID, message.Error{Message: "room closed due to inactivity"})
		for _, connID := range room.ConnIDs() {
			g.transport.LeaveGroup(room.ID, connID)
		}
		g.publishDeleted(room.ID)
	}
}

// Stats, canlı oda ve kuyruk sayıları.
type Stats struct {
	Rooms         int                   `json:"rooms"`
	RoomsByStatus map[game.Status]int   `json:"roomsByStatus"`
	Queued        map[game.GameType]int `json:"queued"`
	Connections   int                   `json:"authenticatedConnections"`
}

func (g *GameHub) Stats() Stats {
	return Stats{
		Rooms:         g.rooms.Count(),
		RoomsByStatus: g.rooms.CountByStatus(),
		Queued:        g.queue.Snapshot(),
		Connections:   len(g.identities),
	}
}

func (g *GameHub) RoomByCode(code string) (game.Summary, error) {
	room, err := g.rooms.FindByInviteCode(code)
	if err != nil {
		return game.Summary{}, err
	}
	return room.Summary(), nil
}

// publish sends a room snapshot taken on the loop; the redis call runs on its own goroutine.
func (g *GameHub) publish(room *game.Room, msgType string) {
	if g.events == nil {
		return
	}
	summary := room.Summary()
	go g.events.PublishMessage(context.Background(), room.ID, msgType, summary)
}

func (g *GameHub) publishDeleted(roomID uuid.UUID) {
	if g.events == nil {
		return
	}
	go g.events.PublishMessage(context.Background(), roomID, EventRoomDeleted, map[string]string{"room_id": roomID.String()})
}

// reportError sends an error event to the caller only. Conflicts are reported with
// the generic fallback text.
func (g *GameHub) reportError(connID uuid.UUID, err error, fallback string) {
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		msg = "not authenticated"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		msg = err.Error()
	case errors.Is(err, domain.ErrConflict) && fallback != "":
		msg = fallback
	case errors.Is(err, domain.ErrConflict):
		msg = "action not allowed"
	}

	zap.L().Debug("event rejected",
		zap.String("conn_id", connID.String()),
		zap.Error(err))
	g.transport.SendTo(connID, message.Error{Message: msg})
}
