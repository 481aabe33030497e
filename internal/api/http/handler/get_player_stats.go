package handler

import (
	"context"
	"duel-service/domain"
	httpUsecase "duel-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetPlayerStatsRequest struct {
	PlayerID string `params:"player_id" validate:"required,max=64"`
}

type GetPlayerStatsResponse struct {
	Stats *domain.PlayerStats `json:"stats"`
}

type GetPlayerStatsHandler struct {
	usecase httpUsecase.GetPlayerStatsUseCase
}

func NewGetPlayerStatsHandler(usecase httpUsecase.GetPlayerStatsUseCase) *GetPlayerStatsHandler {
	return &GetPlayerStatsHandler{
		usecase: usecase,
	}
}

func (h *GetPlayerStatsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetPlayerStatsRequest) (*GetPlayerStatsResponse, int, error) {
	stats, status, err := h.usecase.Execute(ctx, req.PlayerID)
	if err != nil {
		return nil, status, err
	}
	return &GetPlayerStatsResponse{Stats: stats}, status, nil
}
