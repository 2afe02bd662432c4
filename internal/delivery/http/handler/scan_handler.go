package handler

import (
	"xrnode/internal/delivery/http/dto"
	"xrnode/internal/delivery/http/middleware"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScanHandler struct {
	uc usecase.ScanUsecase
}

type scanRequest struct {
	Code string `json:"code"`
}

func NewScanHandler(uc usecase.ScanUsecase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

func (h *ScanHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Scan)
}

func (h *ScanHandler) Scan(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req scanRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Scan(c.Context(), viewer, req.Code)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScanResponse(out))
}
