package handler

import (
	"xrnode/internal/delivery/http/dto"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id", h.Match)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Match(c.Context(), viewer, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchOutcomeResponse(out))
}
