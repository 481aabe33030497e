package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Oda ve eşleştirme hataları. Hepsi yukarıdaki genel hatalardan birini sarar,
// böylece HTTP katmanı errors.Is ile durum kodunu seçebilir.
var (
	ErrNotAuthenticated    = fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	ErrRoomNotFound        = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrPlayerNotFound      = fmt.Errorf("%w: player not found in room", ErrNotFound)
	ErrRoomFull            = fmt.Errorf("%w: room is full", ErrConflict)
	ErrRoomNotWaiting      = fmt.Errorf("%w: room is not waiting for players", ErrConflict)
	ErrAlreadyInRoom       = fmt.Errorf("%w: player already in room", ErrConflict)
	ErrAlreadyQueued       = fmt.Errorf("%w: player already searching", ErrConflict)
	ErrInvalidTransition   = fmt.Errorf("%w: invalid room state transition", ErrConflict)
	ErrInviteCodeExhausted = fmt.Errorf("%w: could not allocate a unique invite code", ErrInternal)
	ErrUnknownGameType     = fmt.Errorf("%w: unknown game type", ErrInvalidInput)
	ErrPersistence         = fmt.Errorf("%w: score persistence failed", ErrInternal)

	// ErrRoomClosed hata değil, son oyuncu çıkınca odanın kapandığını bildirir.
	ErrRoomClosed = errors.New("room closed")
)
