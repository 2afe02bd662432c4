package handler

import (
	"errors"

	"xrnode/internal/delivery/http/middleware"
	"xrnode/internal/domain/profile"
	"xrnode/internal/pkg/response"
	"xrnode/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *profile.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid profile", verr.Fields, err)
	case errors.Is(err, profile.ErrInvalidProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid profile", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrInvalidCode):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid participant code", nil, err)
	case errors.Is(err, usecase.ErrSelfScan):
		return middleware.NewAppError(fiber.StatusConflict, "Cannot scan your own badge", nil, err)
	case errors.Is(err, usecase.ErrDuplicateScan):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Badge scanned too recently", nil, err)
	case errors.Is(err, usecase.ErrParticipantNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Participant not found", nil, err)
	case errors.Is(err, usecase.ErrConnectionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Connection not found", nil, err)
	case errors.Is(err, usecase.ErrNoPendingHandshake):
		return middleware.NewAppError(fiber.StatusConflict, "No pending handshake", nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid check-in code", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func viewerOrUnauthorized(c fiber.Ctx) (string, error) {
	id, ok := middleware.ViewerID(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}
