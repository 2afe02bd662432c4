package v1

import (
	"xrnode/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Match      *handler.MatchHandler
	Directory  *handler.DirectoryHandler
	Scan       *handler.ScanHandler
	Connection *handler.ConnectionHandler
	Handshake  *handler.HandshakeHandler
}

// Register mounts the public check-in routes and, behind auth, everything
// that acts on behalf of a viewer.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("")
	if auth != nil {
		protected = r.Group("", auth)
	}

	RegisterParticipants(protected, h)
	RegisterNetworking(protected, h)
}
