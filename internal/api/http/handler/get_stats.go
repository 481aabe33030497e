package handler

import (
	"context"
	httpUsecase "duel-service/internal/api/http/usecase"
	"duel-service/internal/api/ws/hub"

	"github.com/gofiber/fiber/v2"
)

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats hub.Stats `json:"stats"`
}

type GetStatsHandler struct {
	usecase httpUsecase.GetStatsUseCase
}

func NewGetStatsHandler(usecase httpUsecase.GetStatsUseCase) *GetStatsHandler {
	return &GetStatsHandler{
		usecase: usecase,
	}
}

func (h *GetStatsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, int, error) {
	stats, status, err := h.usecase.Execute(ctx)
	if err != nil {
		return nil, status, err
	}
	return &GetStatsResponse{Stats: stats}, status, nil
}
