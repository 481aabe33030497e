package message

import (
	"duel-service/domain"
	"duel-service/internal/api/game"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Envelope, istemciden gelen ve istemciye giden tüm mesajların ortak zarfı.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound is the closed set of client events.
type Inbound interface {
	inbound()
}

type Authenticate struct {
	PlayerID    string `json:"playerId" validate:"required,max=64"`
	DisplayName string `json:"displayName" validate:"omitempty,max=64"`
}

type FindMatch struct {
	GameType string `json:"gameType" validate:"required"`
}

type CancelMatchmaking struct{}

type CreatePrivateRoom struct {
	GameType string        `json:"gameType" validate:"required"`
	Settings game.Settings `json:"settings"`
}

type JoinWithCode struct {
	Code string `json:"code" validate:"required,len=6,alphanum"`
}

type Ready struct {
	RoomID uuid.UUID `json:"roomId" validate:"required"`
}

// SubmitAnswer carries client asserted correctness and points.
type SubmitAnswer struct {
	RoomID    uuid.UUID `json:"roomId" validate:"required"`
	RoundID   int       `json:"roundId" validate:"gte=0"`
	Answer    string    `json:"answer" validate:"max=256"`
	Correct   bool      `json:"correct"`
	Points    int       `json:"points"`
	ElapsedMs int64     `json:"elapsedMs" validate:"gte=0,max=3600000"`
}

type NextRound struct {
	RoomID uuid.UUID `json:"roomId" validate:"required"`
}

type LeaveRoom struct {
	RoomID uuid.UUID `json:"roomId" validate:"required"`
}

type FinishGame struct {
	RoomID  uuid.UUID          `json:"roomId" validate:"required"`
	Answers []game.RoundAnswer `json:"answers" validate:"max=100,dive"`
}

func (Authenticate) inbound()      {}
func (FindMatch) inbound()         {}
func (CancelMatchmaking) inbound() {}
func (CreatePrivateRoom) inbound() {}
func (JoinWithCode) inbound()      {}
func (Ready) inbound()             {}
func (SubmitAnswer) inbound()      {}
func (NextRound) inbound()         {}
func (LeaveRoom) inbound()         {}
func (FinishGame) inbound()        {}

const (
	TypeAuthenticate      = "authenticate"
	TypeFindMatch         = "findMatch"
	TypeCancelMatchmaking = "cancelMatchmaking"
	TypeCreatePrivateRoom = "createPrivateRoom"
	TypeJoinWithCode      = "joinWithCode"
	TypeReady             = "ready"
	TypeSubmitAnswer      = "submitAnswer"
	TypeNextRound         = "nextRound"
	TypeLeaveRoom         = "leaveRoom"
	TypeFinishGame        = "finishGame"
)

var inboundFactories = map[string]func() Inbound{
	TypeAuthenticate:      func() Inbound { return &Authenticate{} },
	TypeFindMatch:         func() Inbound { return &FindMatch{} },
	TypeCancelMatchmaking: func() Inbound { return &CancelMatchmaking{} },
	TypeCreatePrivateRoom: func() Inbound { return &CreatePrivateRoom{} },
	TypeJoinWithCode:      func() Inbound { return &JoinWithCode{} },
	TypeReady:             func() Inbound { return &Ready{} },
	TypeSubmitAnswer:      func() Inbound { return &SubmitAnswer{} },
	TypeNextRound:         func() Inbound { return &NextRound{} },
	TypeLeaveRoom:         func() Inbound { return &LeaveRoom{} },
	TypeFinishGame:        func() Inbound { return &FinishGame{} },
}

// Decode parses an envelope and returns the typed, validated payload as a pointer
// (e.g. *Ready). Errors wrap domain.ErrInvalidInput.
func Decode(raw []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope: %v", domain.ErrInvalidInput, err)
	}

	factory, ok := inboundFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, env.Type)
	}

	payload := factory()
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, payload); err != nil {
			return nil, fmt.Errorf("%w: invalid %s payload: %v", domain.ErrInvalidInput, env.Type, err)
		}
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %s validation failed: %v", domain.ErrInvalidInput, env.Type, err)
	}
	return payload, nil
}
