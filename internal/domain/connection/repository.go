package connection

import "context"

type Repository interface {
	// Upsert saves c and reports whether it was newly created. An existing
	// connection between the same viewer and profile keeps its id and
	// appreciation count; score, snapshot and time are refreshed.
	Upsert(ctx context.Context, c Connection) (Connection, bool, error)
	List(ctx context.Context, viewerID string) ([]Connection, error)
	GetByProfileID(ctx context.Context, viewerID, profileID string) (Connection, error)
	Delete(ctx context.Context, viewerID, connectionID string) error
	IncrementAppreciation(ctx context.Context, viewerID, profileID string) (Connection, error)
	Count(ctx context.Context, viewerID string) (int, error)
	Clear(ctx context.Context, viewerID string) error
}
