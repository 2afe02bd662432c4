package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidCode         = errors.New("invalid participant code")
	ErrDuplicateScan       = errors.New("duplicate scan")
	ErrSelfScan            = errors.New("cannot scan own badge")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrNoPendingHandshake  = errors.New("no pending handshake")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)
