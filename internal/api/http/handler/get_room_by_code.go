package handler

import (
	"context"
	"duel-service/internal/api/game"
	httpUsecase "duel-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetRoomByCodeRequest struct {
	Code string `params:"code" validate:"required,len=6,alphanum"`
}

type GetRoomByCodeResponse struct {
	Room game.Summary `json:"room"`
}

type GetRoomByCodeHandler struct {
	usecase httpUsecase.GetRoomByCodeUseCase
}

func NewGetRoomByCodeHandler(usecase httpUsecase.GetRoomByCodeUseCase) *GetRoomByCodeHandler {
	return &GetRoomByCodeHandler{
		usecase: usecase,
	}
}

func (h *GetRoomByCodeHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetRoomByCodeRequest) (*GetRoomByCodeResponse, int, error) {
	summary, status, err := h.usecase.Execute(ctx, req.Code)
	if err != nil {
		return nil, status, err
	}
	return &GetRoomByCodeResponse{Room: summary}, status, nil
}
