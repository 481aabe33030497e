package game

import (
	"duel-service/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Room, iki kişilik canlı bir maç. Kilit içermez: tüm çağrılar hub'ın tek olay
// döngüsünden gelir.
type Room struct {
	ID           uuid.UUID  `json:"id"`
	GameType     GameType   `json:"gameType"`
	Players      []*Player  `json:"players"`
	Status       Status     `json:"status"`
	CurrentRound int        `json:"currentRound"`
	MaxRounds    int        `json:"maxRounds"`
	IsPrivate    bool       `json:"isPrivate"`
	InviteCode   string     `json:"inviteCode,omitempty"`
	Settings     Settings   `json:"settings"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`

	// content oda oluşturulurken bir kez üretilir ve bir daha değişmez.
	content      []RoundItem
	lastActivity time.Time
	clock        func() time.Time
}

func newRoom(gameType GameType, settings Settings, content []RoundItem, clock func() time.Time) *Room {
	now := clock()
	return &Room{
		ID:           uuid.New(),
		GameType:     gameType,
		Players:      make([]*Player, 0, MaxPlayers),
		Status:       StatusWaiting,
		MaxRounds:    settings.RoundCount,
		Settings:     settings,
		CreatedAt:    now,
		content:      content,
		lastActivity: now,
		clock:        clock,
	}
}

func (r *Room) MarshalJSON() ([]byte, error) {
	type alias Room
	return json.Marshal(struct {
		*alias
		Rounds []RoundItem `json:"rounds"`
	}{
		alias:  (*alias)(r),
		Rounds: r.content,
	})
}

func (r *Room) touch() {
	r.lastActivity = r.clock()
}

// LastActivity is the time of the last mutation.
func (r *Room) LastActivity() time.Time {
	return r.lastActivity
}

// Content returns a copy of the round content so callers cannot mutate the room's.
func (r *Room) Content() []RoundItem {
	out := make([]RoundItem, len(r.content))
	for i, it := range r.content {
		out[i] = it.clone()
	}
	return out
}

func (r *Room) PlayerByConn(connID uuid.UUID) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerByID(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// HasConn reports whether the connection belongs to a player of this room.
func (r *Room) HasConn(connID uuid.UUID) bool {
	return r.PlayerByConn(connID) != nil
}

// SetReady marks the player bound to connID as ready. Only meaningful while waiting;
// returns false when nothing changed.
func (r *Room) SetReady(connID uuid.UUID) bool {
	if r.Status != StatusWaiting {
		return false
	}
	p := r.PlayerByConn(connID)
	if p == nil {
		return false
	}
	p.Ready = true
	r.touch()
	return true
}

// AllReady, tam olarak iki oyuncu varsa ve ikisi de hazırsa true döner.
func (r *Room) AllReady() bool {
	if len(r.Players) != MaxPlayers {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start moves waiting -> playing at round 1.
func (r *Room) Start() error {
	if r.Status != StatusWaiting || !r.AllReady() {
		return fmt.Errorf("%w: cannot start room %s in status %s", domain.ErrInvalidTransition, r.ID, r.Status)
	}
	now := r.clock()
	r.Status = StatusPlaying
	r.CurrentRound = 1
	r.StartedAt = &now
	r.touch()
	return nil
}

// AddScore adds points to the player's score. Points are not validated here.
func (r *Room) AddScore(connID uuid.UUID, points int) error {
	if r.Status != StatusPlaying {
		return fmt.Errorf("%w: cannot score in status %s", domain.ErrInvalidTransition, r.Status)
	}
	p := r.PlayerByConn(connID)
	if p == nil {
		return domain.ErrPlayerNotFound
	}
	p.Score += points
	r.touch()
	return nil
}

// RecordAnswer appends a round answer to the player's answer log.
func (r *Room) RecordAnswer(connID uuid.UUID, answer RoundAnswer) error {
	if r.Status != StatusPlaying {
		return fmt.Errorf("%w: cannot answer in status %s", domain.ErrInvalidTransition, r.Status)
	}
	p := r.PlayerByConn(connID)
	if p == nil {
		return domain.ErrPlayerNotFound
	}
	p.Answers = append(p.Answers, answer)
	r.touch()
	return nil
}

// AdvanceRound increments the round counter; past MaxRounds the room finishes.
func (r *Room) AdvanceRound() (*Room, error) {
	if r.Status != StatusPlaying {
		return r, fmt.Errorf("%w: cannot advance round in status %s", domain.ErrInvalidTransition, r.Status)
	}
	r.CurrentRound++
	if r.CurrentRound > r.MaxRounds {
		r.finish()
	}
	r.touch()
	return r, nil
}

// RecordFinish stores the player's full answer list for games scored per player
// and adds the game type's score for it. Returns the points awarded.
func (r *Room) RecordFinish(connID uuid.UUID, answers []RoundAnswer) (int, error) {
	if r.Status != StatusPlaying {
		return 0, fmt.Errorf("%w: cannot finish in status %s", domain.ErrInvalidTransition, r.Status)
	}
	p := r.PlayerByConn(connID)
	if p == nil {
		return 0, domain.ErrPlayerNotFound
	}
	if p.Finished {
		return 0, fmt.Errorf("%w: player %s already finished", domain.ErrInvalidTransition, p.ID)
	}
	points := FinishScore(r.GameType, r.Settings, answers)
	p.Answers = append(make([]RoundAnswer, 0, len(answers)), answers...)
	p.Finished = true
	p.Score += points
	r.touch()
	return points, nil
}

// AllFinished, odadaki her oyuncu RecordFinish çağırdıysa true.
func (r *Room) AllFinished() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Finished {
			return false
		}
	}
	return true
}

// Finish ends a playing room early, used once every player has reported.
func (r *Room) Finish() error {
	if r.Status != StatusPlaying {
		return fmt.Errorf("%w: cannot finish room in status %s", domain.ErrInvalidTransition, r.Status)
	}
	r.finish()
	r.touch()
	return nil
}

func (r *Room) finish() {
	now := r.clock()
	r.Status = StatusFinished
	r.FinishedAt = &now
}

// ComputeWinner orders players by score (desc) then total answer time (asc).
// Exact equality on both yields no winner.
func (r *Room) ComputeWinner() (*Player, bool) {
	switch len(r.Players) {
	case 0:
		return nil, false
	case 1:
		return r.Players[0], true
	}

	a, b := r.Players[0], r.Players[1]
	switch {
	case a.Score > b.Score:
		return a, true
	case b.Score > a.Score:
		return b, true
	case a.TotalTime() < b.TotalTime():
		return a, true
	case b.TotalTime() < a.TotalTime():
		return b, true
	default:
		return nil, false
	}
}

func (r *Room) addPlayer(p *Player) {
	p.JoinedAt = r.clock()
	if p.Answers == nil {
		p.Answers = make([]RoundAnswer, 0)
	}
	r.Players = append(r.Players, p)
	r.touch()
}

func (r *Room) removeConn(connID uuid.UUID) *Player {
	for i, p := range r.Players {
		if p.ConnID == connID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			r.touch()
			return p
		}
	}
	return nil
}

// Summary, odanın oyun içeriği olmadan dışarıya verilebilen özeti.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	GameType     GameType  `json:"gameType"`
	Status       Status    `json:"status"`
	PlayerIDs    []string  `json:"playerIds"`
	CurrentRound int       `json:"currentRound"`
	MaxRounds    int       `json:"maxRounds"`
	IsPrivate    bool      `json:"isPrivate"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *Room) Summary() Summary {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return Summary{
		ID:           r.ID,
		GameType:     r.GameType,
		Status:       r.Status,
		PlayerIDs:    ids,
		CurrentRound: r.CurrentRound,
		MaxRounds:    r.MaxRounds,
		IsPrivate:    r.IsPrivate,
		CreatedAt:    r.CreatedAt,
	}
}

// ConnIDs returns the connections currently bound to the room's players.
func (r *Room) ConnIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.ConnID)
	}
	return out
}
