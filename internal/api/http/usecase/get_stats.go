package httpUsecase

import (
	"context"
	"duel-service/internal/api/ws/hub"
	"net/http"
)

type GetStatsUseCase interface {
	Execute(ctx context.Context) (hub.Stats, int, error)
}

type getStatsUseCase struct {
	rooms RoomQuery
}

func NewGetStatsUseCase(rooms RoomQuery) GetStatsUseCase {
	return &getStatsUseCase{
		rooms: rooms,
	}
}

func (u *getStatsUseCase) Execute(ctx context.Context) (hub.Stats, int, error) {
	stats, err := u.rooms.Stats(ctx)
	if err != nil {
		return hub.Stats{}, statusFor(err), err
	}
	return stats, http.StatusOK, nil
}
