package connection

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
)

var ErrNotFound = errors.New("connection not found")

// Connection is a saved match. Profile is a snapshot taken at connect time.
type Connection struct {
	ID                string          `json:"id"`
	ViewerID          string          `json:"viewer_id"`
	Profile           profile.Profile `json:"profile"`
	MatchScore        int             `json:"match_score"`
	ConnectedAt       time.Time       `json:"connected_at"`
	AppreciationCount int             `json:"appreciation_count"`
}

func NewID(profileID string, now time.Time) string {
	return fmt.Sprintf("conn_%d_%s", now.UnixMilli(), profileID)
}

func New(viewerID string, p profile.Profile, score int, now time.Time) Connection {
	return Connection{
		ID:          NewID(p.ID, now),
		ViewerID:    viewerID,
		Profile:     p.Clone(),
		MatchScore:  score,
		ConnectedAt: now.UTC(),
	}
}

func (c Connection) Tier() matching.Tier {
	return matching.ClassifyScore(c.MatchScore)
}

// SortByScore orders by score descending; ties keep the newer connection first.
func SortByScore(items []Connection) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MatchScore != items[j].MatchScore {
			return items[i].MatchScore > items[j].MatchScore
		}
		return items[i].ConnectedAt.After(items[j].ConnectedAt)
	})
}

func SortByDate(items []Connection) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ConnectedAt.After(items[j].ConnectedAt)
	})
}
