package v1

import "github.com/gofiber/fiber/v3"

func RegisterNetworking(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Scan != nil {
		h.Scan.RegisterRoutes(r.Group("/scans"))
	}
	if h.Connection != nil {
		h.Connection.RegisterRoutes(r.Group("/connections"))
	}
	if h.Handshake != nil {
		h.Handshake.RegisterRoutes(r.Group("/handshake"))
	}
}
