package handler

import (
	"xrnode/internal/delivery/http/dto"
	"xrnode/internal/delivery/http/middleware"
	"xrnode/internal/domain/handshake"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HandshakeHandler struct {
	uc usecase.HandshakeUsecase
}

type beginHandshakeRequest struct {
	ProfileID string `json:"profile_id"`
}

// sampleRequest carries wrist positions in metres; an omitted hand is
// untracked.
type sampleRequest struct {
	Left  *handshake.Vec3 `json:"left"`
	Right *handshake.Vec3 `json:"right"`
}

func NewHandshakeHandler(uc usecase.HandshakeUsecase) *HandshakeHandler {
	return &HandshakeHandler{uc: uc}
}

func (h *HandshakeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.State)
	r.Post("/", h.Begin)
	r.Delete("/", h.Cancel)
	r.Post("/samples", h.Observe)
	r.Post("/confirm", h.Confirm)
}

func (h *HandshakeHandler) Begin(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req beginHandshakeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	st, err := h.uc.Begin(c.Context(), viewer, req.ProfileID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHandshakeStateResponse(st))
}

func (h *HandshakeHandler) Observe(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req sampleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	upd, err := h.uc.Observe(c.Context(), viewer, handshake.Sample{Left: req.Left, Right: req.Right})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHandshakeUpdateResponse(upd))
}

func (h *HandshakeHandler) Confirm(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	upd, err := h.uc.Confirm(c.Context(), viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHandshakeUpdateResponse(upd))
}

func (h *HandshakeHandler) State(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHandshakeStateResponse(h.uc.State(viewer)))
}

func (h *HandshakeHandler) Cancel(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}
	h.uc.Cancel(viewer)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
