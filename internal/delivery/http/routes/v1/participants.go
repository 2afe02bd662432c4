package v1

import "github.com/gofiber/fiber/v3"

func RegisterParticipants(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Profile != nil {
		h.Profile.RegisterRoutes(r.Group("/profiles"))
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(r.Group("/matches"))
	}
	if h.Directory != nil {
		h.Directory.RegisterRoutes(r.Group("/directory"))
	}
}
