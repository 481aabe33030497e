package httpUsecase

import (
	"context"
	"duel-service/internal/api/game"
	"net/http"
)

type GetRoomByCodeUseCase interface {
	Execute(ctx context.Context, code string) (game.Summary, int, error)
}

type getRoomByCodeUseCase struct {
	rooms RoomQuery
}

func NewGetRoomByCodeUseCase(rooms RoomQuery) GetRoomByCodeUseCase {
	return &getRoomByCodeUseCase{
		rooms: rooms,
	}
}

func (u *getRoomByCodeUseCase) Execute(ctx context.Context, code string) (game.Summary, int, error) {
	summary, err := u.rooms.RoomByCode(ctx, code)
	if err != nil {
		return game.Summary{}, statusFor(err), err
	}
	return summary, http.StatusOK, nil
}
