package handler

import (
	"xrnode/internal/delivery/http/dto"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DirectoryHandler struct {
	uc usecase.DirectoryUsecase
}

func NewDirectoryHandler(uc usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func (h *DirectoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
}

func (h *DirectoryHandler) List(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	d, err := h.uc.List(c.Context(), viewer, usecase.DirectoryParams{
		Query:  c.Query("q"),
		Filter: c.Query("filter"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDirectoryResponse(d))
}
