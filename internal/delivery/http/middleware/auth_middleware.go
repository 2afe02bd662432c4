package middleware

import (
	"errors"
	"strings"

	"xrnode/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxParticipantIDKey = "participant_id"
	CtxNameKey          = "participant_name"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxParticipantIDKey, claims.ParticipantID)
		c.Locals(CtxNameKey, claims.Name)

		return c.Next()
	}
}

// ViewerID returns the checked-in participant set by the auth middleware.
func ViewerID(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(CtxParticipantIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// AccessTokenViewer validates an access token outside the fiber chain, for
// websocket upgrades that carry the token as a query parameter.
func AccessTokenViewer(svc jwt.Service, token string) (string, bool) {
	if svc == nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	claims, err := svc.ValidateToken(strings.TrimSpace(token))
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return "", false
	}
	return claims.ParticipantID, true
}

func BearerToken(authHeader string) (string, bool) {
	return bearerTokenFromHeader(authHeader)
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
