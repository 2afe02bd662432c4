package handler

import (
	"errors"
	"strings"

	"xrnode/internal/delivery/http/dto"
	"xrnode/internal/delivery/http/middleware"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type connectRequest struct {
	ProfileID string `json:"profile_id"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Connect)
	r.Delete("/", h.Clear)
	r.Get("/export", h.Export)
	r.Delete("/id/:connection_id", h.Remove)
	r.Get("/:profile_id", h.Status)
	r.Post("/:profile_id/appreciate", h.Appreciate)
}

func (h *ConnectionHandler) List(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.Query("sort")))
	if sortBy == "" {
		sortBy = usecase.ConnectionSortDate
	}

	items, err := h.uc.List(c.Context(), viewer, sortBy)
	if err != nil {
		return mapUsecaseError(err)
	}
	stats, err := h.uc.Stats(c.Context(), viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionListResponse(items, stats, sortBy))
}

// Connect saves a connection scored server-side.
func (h *ConnectionHandler) Connect(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	var req connectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	conn, err := h.uc.ConnectByID(c.Context(), viewer, req.ProfileID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponse(conn))
}

func (h *ConnectionHandler) Status(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	profileID := c.Params("profile_id")
	out := dto.ConnectionStatusResponse{ProfileID: profileID}

	conn, err := h.uc.Get(c.Context(), viewer, profileID)
	switch {
	case err == nil:
		resp := dto.NewConnectionResponse(conn)
		out.Connected = true
		out.Connection = &resp
	case errors.Is(err, usecase.ErrConnectionNotFound):
	default:
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ConnectionHandler) Remove(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), viewer, c.Params("connection_id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ConnectionHandler) Appreciate(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	conn, err := h.uc.Appreciate(c.Context(), viewer, c.Params("profile_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponse(conn))
}

func (h *ConnectionHandler) Clear(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	if err := h.uc.Clear(c.Context(), viewer); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ConnectionHandler) Export(c fiber.Ctx) error {
	viewer, err := viewerOrUnauthorized(c)
	if err != nil {
		return err
	}

	body, err := h.uc.Export(c.Context(), viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Attachment(c, "xrnode-connections-"+viewer+".json", body)
}
