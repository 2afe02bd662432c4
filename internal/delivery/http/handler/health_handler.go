package handler

import (
	"context"
	"sort"
	"time"

	"xrnode/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	event   string
	checks  map[string]Pinger
	timeout time.Duration
}

type healthResponse struct {
	Event  string            `json:"event"`
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler reports liveness plus the state of each optional backend.
// Nil pingers are skipped.
func NewHealthHandler(event string, checks map[string]Pinger) *HealthHandler {
	live := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			live[name] = p
		}
	}
	return &HealthHandler{event: event, checks: live, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	out := healthResponse{Event: h.event, Status: "ok", Checks: map[string]string{}}
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			out.Checks[name] = "down"
			out.Status = "degraded"
			status = fiber.StatusServiceUnavailable
			continue
		}
		out.Checks[name] = "up"
	}

	return response.Success(c, status, out.Status, out)
}
