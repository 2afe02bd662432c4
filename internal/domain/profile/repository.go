package profile

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("participant not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Search(ctx context.Context, query string) ([]Profile, error)
	Upsert(ctx context.Context, p Profile) error
}

// Credentials stores the hashed badge check-in code for a participant.
type Credentials interface {
	CheckinHash(ctx context.Context, participantID string) (string, error)
	SetCheckinHash(ctx context.Context, participantID, hash string) error
}
