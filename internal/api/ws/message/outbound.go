package message

import (
	"duel-service/internal/api/game"
	"encoding/json"
	"fmt"
)

// Event is the closed set of server events. Only types in this package implement it.
type Event interface {
	EventType() string
	event()
}

const (
	StatusSearching = "searching"
	StatusCancelled = "cancelled"
)

type Authenticated struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
}

type Matchmaking struct {
	Status   string `json:"status"`
	GameType string `json:"gameType,omitempty"`
}

type MatchFound struct {
	Room *game.Room `json:"room"`
}

type RoomCreated struct {
	Room       *game.Room `json:"room"`
	InviteCode string     `json:"inviteCode"`
}

type PlayerJoined struct {
	Room *game.Room `json:"room"`
}

type PlayerReady struct {
	Room *game.Room `json:"room"`
}

type GameStart struct {
	Room *game.Room `json:"room"`
}

type AnswerSubmitted struct {
	PlayerID string     `json:"playerId"`
	Correct  bool       `json:"correct"`
	Room     *game.Room `json:"room"`
}

type NewRound struct {
	Room *game.Room `json:"room"`
}

// GameEnd.Winner is null on an exact tie.
type GameEnd struct {
	Room   *game.Room   `json:"room"`
	Winner *game.Player `json:"winner"`
}

type PlayerLeft struct {
	Room *game.Room `json:"room"`
}

type PlayerFinished struct {
	PlayerID string     `json:"playerId"`
	Points   int        `json:"points"`
	Room     *game.Room `json:"room"`
}

type Error struct {
	Message string `json:"message"`
}

func (Authenticated) EventType() string   { return "authenticated" }
func (Matchmaking) EventType() string     { return "matchmaking" }
func (MatchFound) EventType() string      { return "matchFound" }
func (RoomCreated) EventType() string     { return "roomCreated" }
func (PlayerJoined) EventType() string    { return "playerJoined" }
func (PlayerReady) EventType() string     { return "playerReady" }
func (GameStart) EventType() string       { return "gameStart" }
func (AnswerSubmitted) EventType() string { return "answerSubmitted" }
func (NewRound) EventType() string        { return "newRound" }
func (GameEnd) EventType() string         { return "gameEnd" }
func (PlayerLeft) EventType() string      { return "playerLeft" }
func (PlayerFinished) EventType() string  { return "playerFinished" }
func (Error) EventType() string           { return "error" }

func (Authenticated) event()   {}
func (Matchmaking) event()     {}
func (MatchFound) event()      {}
func (RoomCreated) event()     {}
func (PlayerJoined) event()    {}
func (PlayerReady) event()     {}
func (GameStart) event()       {}
func (AnswerSubmitted) event() {}
func (NewRound) event()        {}
func (GameEnd) event()         {}
func (PlayerLeft) event()      {}
func (PlayerFinished) event()  {}
func (Error) event()           {}

type outboundEnvelope struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

// Encode, olayı {type, data} zarfına koyup JSON'a çevirir. Oda durumu o anki haliyle yazılır.
func Encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(outboundEnvelope{Type: ev.EventType(), Data: ev})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", ev.EventType(), err)
	}
	return payload, nil
}
