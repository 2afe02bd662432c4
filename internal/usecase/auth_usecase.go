package usecase

import (
	"context"
	"errors"
	"strings"

	"xrnode/internal/domain/profile"
	"xrnode/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type CheckinInput struct {
	ParticipantID string
	Code          string
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUsecase interface {
	CheckIn(ctx context.Context, in CheckinInput) (profile.Profile, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	SetCheckinCode(ctx context.Context, participantID, code string) error
}

type Auth struct {
	profiles profile.Repository
	creds    profile.Credentials
	jwt      jwt.Service
	hashCost int
}

func NewAuthUsecase(profiles profile.Repository, creds profile.Credentials, jwtSvc jwt.Service, hashCost int) *Auth {
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Auth{profiles: profiles, creds: creds, jwt: jwtSvc, hashCost: hashCost}
}

// CheckIn exchanges a badge id and its check-in code for tokens. Unknown ids
// and wrong codes are indistinguishable to the caller.
func (u *Auth) CheckIn(ctx context.Context, in CheckinInput) (profile.Profile, Tokens, error) {
	id := strings.TrimSpace(in.ParticipantID)
	code := strings.TrimSpace(in.Code)
	if id == "" || code == "" {
		return profile.Profile{}, Tokens{}, ErrInvalidInput
	}

	hash, err := u.creds.CheckinHash(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, Tokens{}, ErrInvalidCredentials
		}
		return profile.Profile{}, Tokens{}, ErrInternal
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return profile.Profile{}, Tokens{}, ErrInvalidCredentials
	}

	p, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, Tokens{}, ErrInternal
	}

	tokens, err := u.issue(p)
	if err != nil {
		return profile.Profile{}, Tokens{}, err
	}
	return p, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return Tokens{}, ErrInvalidRefreshToken
	}

	p, err := u.profiles.GetByID(ctx, claims.ParticipantID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}
	return u.issue(p)
}

func (u *Auth) SetCheckinCode(ctx context.Context, participantID, code string) error {
	if strings.TrimSpace(participantID) == "" || strings.TrimSpace(code) == "" {
		return ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(code)), u.hashCost)
	if err != nil {
		return ErrInternal
	}
	if err := u.creds.SetCheckinHash(ctx, participantID, string(hash)); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrParticipantNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Auth) issue(p profile.Profile) (Tokens, error) {
	access, err := u.jwt.GenerateAccessToken(p.ID, p.Name)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
