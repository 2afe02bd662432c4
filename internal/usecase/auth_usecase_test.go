package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"xrnode/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T, f *fixture) (*Auth, *jwt.HMACService) {
	t.Helper()
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour, "XR NODE")
	u := NewAuthUsecase(f.profiles, f.profiles, svc, bcrypt.MinCost)
	if err := u.SetCheckinCode(context.Background(), "p003", "marlaina-2025"); err != nil {
		t.Fatalf("set code: %v", err)
	}
	return u, svc
}

func TestAuth_CheckIn(t *testing.T) {
	f := newFixture()
	u, svc := newAuth(t, f)

	p, tokens, err := u.CheckIn(context.Background(), CheckinInput{ParticipantID: "p003", Code: " marlaina-2025 "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID != "p003" {
		t.Fatalf("expected p003, got %s", p.ID)
	}
	claims, err := svc.ValidateToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.ParticipantID != "p003" || claims.TokenType != jwt.TokenTypeAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuth_CheckIn_Rejects(t *testing.T) {
	f := newFixture()
	u, _ := newAuth(t, f)
	ctx := context.Background()

	cases := []struct {
		in   CheckinInput
		want error
	}{
		{CheckinInput{ParticipantID: "p003", Code: "wrong"}, ErrInvalidCredentials},
		{CheckinInput{ParticipantID: "p404", Code: "x"}, ErrInvalidCredentials},
		{CheckinInput{ParticipantID: "p001", Code: "sabina-2025"}, ErrInvalidCredentials},
		{CheckinInput{ParticipantID: "", Code: "x"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, _, err := u.CheckIn(ctx, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
}

func TestAuth_Refresh(t *testing.T) {
	f := newFixture()
	u, _ := newAuth(t, f)
	ctx := context.Background()

	_, tokens, err := u.CheckIn(ctx, CheckinInput{ParticipantID: "p003", Code: "marlaina-2025"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	fresh, err := u.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}

	if _, err := u.Refresh(ctx, tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
	if _, err := u.Refresh(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_SetCheckinCode_UnknownParticipant(t *testing.T) {
	f := newFixture()
	u, _ := newAuth(t, f)
	if err := u.SetCheckinCode(context.Background(), "p404", "x"); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}
