package game

import (
	"duel-service/domain"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 32
)

// RoomManager, tüm canlı odaları ve davet kodu -> oda eşlemesini yönetir.
// Hub'ın olay döngüsü dışında kullanılmamalıdır.
type RoomManager struct {
	rooms    map[uuid.UUID]*Room
	codes    map[string]uuid.UUID
	content  ContentProvider
	defaults Settings
	codeGen  func() string
	now      func() time.Time
}

type Option func(*RoomManager)

// WithCodeGenerator replaces the random invite code source.
func WithCodeGenerator(gen func() string) Option {
	return func(rm *RoomManager) { rm.codeGen = gen }
}

// WithClock replaces time.Now, used by the idle reaper and timestamps.
func WithClock(now func() time.Time) Option {
	return func(rm *RoomManager) { rm.now = now }
}

// NewRoomManager, yeni bir RoomManager örneği oluşturur.
func NewRoomManager(content ContentProvider, defaults Settings, opts ...Option) *RoomManager {
	rm := &RoomManager{
		rooms:    make(map[uuid.UUID]*Room),
		codes:    make(map[string]uuid.UUID),
		content:  content,
		defaults: defaults,
		codeGen:  generateInviteCode,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// generateInviteCode, özel odalar için 6 karakterlik büyük harf/rakam kodu üretir.
func generateInviteCode() string {
	var sb strings.Builder
	sb.Grow(inviteCodeLength)
	for i := 0; i < inviteCodeLength; i++ {
		sb.WriteByte(inviteCodeAlphabet[rand.IntN(len(inviteCodeAlphabet))])
	}
	return sb.String()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom, yeni bir oda oluşturur, içeriğini bir kez üretir ve ilk oyuncuyu ekler.
func (rm *RoomManager) CreateRoom(gameType GameType, first *Player, isPrivate bool, settings Settings) (*Room, error) {
	if first == nil {
		return nil, fmt.Errorf("%w: room needs a first player", domain.ErrInvalidInput)
	}
	settings = settings.withDefaults(rm.defaults)
	if settings.RoundCount < 1 {
		return nil, fmt.Errorf("%w: round count must be positive", domain.ErrInvalidInput)
	}

	content, err := rm.content.GenerateRoundContent(gameType, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to generate round content: %w", err)
	}

	room := newRoom(gameType, settings, content, rm.now)
	room.IsPrivate = isPrivate
	if isPrivate {
		code, err := rm.allocateCode()
		if err != nil {
			return nil, err
		}
		room.InviteCode = code
		rm.codes[code] = room.ID
	}

	room.addPlayer(first)
	rm.rooms[room.ID] = room

	zap.L().Info("room created",
		zap.String("room_id", room.ID.String()),
		zap.String("game_type", string(gameType)),
		zap.Bool("private", isPrivate),
		zap.String("player_id", first.ID))
	return room, nil
}

// allocateCode, canlı kodlarla çakışırsa yeniden üretir.
func (rm *RoomManager) allocateCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code := normalizeCode(rm.codeGen())
		if _, taken := rm.codes[code]; !taken {
			return code, nil
		}
	}
	return "", domain.ErrInviteCodeExhausted
}

// JoinRoom adds a second player to a waiting room.
func (rm *RoomManager) JoinRoom(roomID uuid.UUID, player *Player) (*Room, error) {
	room, ok := rm.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if room.Status != StatusWaiting {
		return nil, domain.ErrRoomNotWaiting
	}
	if len(room.Players) >= MaxPlayers {
		return nil, domain.ErrRoomFull
	}
	if room.PlayerByID(player.ID) != nil || room.HasConn(player.ConnID) {
		return nil, domain.ErrAlreadyInRoom
	}

	room.addPlayer(player)
	zap.L().Info("player joined room",
		zap.String("room_id", room.ID.String()),
		zap.String("player_id", player.ID))
	return room, nil
}

// FindByInviteCode büyük/küçük harf duyarsız arar.
func (rm *RoomManager) FindByInviteCode(code string) (*Room, error) {
	roomID, ok := rm.codes[normalizeCode(code)]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	room, ok := rm.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// GetRoom, ID'ye göre bir odayı döndürür.
func (rm *RoomManager) GetRoom(roomID uuid.UUID) (*Room, error) {
	room, ok := rm.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// LeaveRoom removes the player bound to connID. When the room becomes empty it is
// disposed and ErrRoomClosed is returned.
func (rm *RoomManager) LeaveRoom(roomID, connID uuid.UUID) (*Room, error) {
	room, ok := rm.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	player := room.removeConn(connID)
	if player == nil {
		return nil, domain.ErrPlayerNotFound
	}
	zap.L().Info("player left room",
		zap.String("room_id", room.ID.String()),
		zap.String("player_id", player.ID),
		zap.Int("remaining", len(room.Players)))

	if len(room.Players) == 0 {
		rm.DisposeRoom(roomID)
		return nil, domain.ErrRoomClosed
	}
	return room, nil
}

// DisposeRoom, odayı ve davet kodunu siler. Olmayan oda için bir şey yapmaz.
func (rm *RoomManager) DisposeRoom(roomID uuid.UUID) {
	room, ok := rm.rooms[roomID]
	if !ok {
		return
	}
	if room.InviteCode != "" {
		if owner, ok := rm.codes[room.InviteCode]; ok && owner == roomID {
			delete(rm.codes, room.InviteCode)
		}
	}
	delete(rm.rooms, roomID)
	zap.L().Info("room disposed", zap.String("room_id", roomID.String()))
}

// ReapIdle disposes rooms that are not finished and have been idle longer than
// timeout, returning them so the caller can notify members.
func (rm *RoomManager) ReapIdle(timeout time.Duration) []*Room {
	if timeout <= 0 {
		return nil
	}
	now := rm.now()
	var reaped []*Room
	for id, room := range rm.rooms {
		if room.Status == StatusFinished {
			continue
		}
		if now.Sub(room.lastActivity) > timeout {
			reaped = append(reaped, room)
			rm.DisposeRoom(id)
		}
	}
	return reaped
}

func (rm *RoomManager) Count() int {
	return len(rm.rooms)
}

// CountByStatus, istatistik uç noktası için durum bazında oda sayısı.
func (rm *RoomManager) CountByStatus() map[Status]int {
	out := map[Status]int{
		StatusWaiting:  0,
		StatusPlaying:  0,
		StatusFinished: 0,
	}
	for _, room := range rm.rooms {
		out[room.Status]++
	}
	return out
}

// RoomsForConn, bağlantının oyuncu olarak bulunduğu odaları döndürür.
func (rm *RoomManager) RoomsForConn(connID uuid.UUID) []*Room {
	var out []*Room
	for _, room := range rm.rooms {
		if room.HasConn(connID) {
			out = append(out, room)
		}
	}
	return out
}
