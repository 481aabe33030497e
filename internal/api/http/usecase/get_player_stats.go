package httpUsecase

import (
	"context"
	"duel-service/domain"
	"net/http"
)

type GetPlayerStatsUseCase interface {
	Execute(ctx context.Context, playerID string) (*domain.PlayerStats, int, error)
}

type getPlayerStatsUseCase struct {
	repository PostgresRepository
}

func NewGetPlayerStatsUseCase(repository PostgresRepository) GetPlayerStatsUseCase {
	return &getPlayerStatsUseCase{
		repository: repository,
	}
}

// Execute, kayıt deposundan oyuncunun toplu sonuçlarını okur. Hiç oyunu olmayan
// oyuncu için sıfır değerli özet döner.
func (u *getPlayerStatsUseCase) Execute(ctx context.Context, playerID string) (*domain.PlayerStats, int, error) {
	stats, err := u.repository.PlayerStats(ctx, playerID)
	if err != nil {
		return nil, statusFor(err), err
	}
	return stats, http.StatusOK, nil
}
