package dto

import (
	"time"

	"xrnode/internal/domain/connection"
	"xrnode/internal/usecase"
)

type ConnectionResponse struct {
	ID                string          `json:"id"`
	Profile           ProfileResponse `json:"profile"`
	MatchScore        int             `json:"match_score"`
	MatchLevel        string          `json:"match_level"`
	AuraColor         string          `json:"aura_color"`
	ConnectedAt       string          `json:"connected_at"`
	AppreciationCount int             `json:"appreciation_count"`
}

type ConnectionListResponse struct {
	Items []ConnectionResponse    `json:"items"`
	Stats usecase.ConnectionStats `json:"stats"`
	Sort  string                  `json:"sort"`
}

type ConnectionStatusResponse struct {
	ProfileID  string              `json:"profile_id"`
	Connected  bool                `json:"connected"`
	Connection *ConnectionResponse `json:"connection,omitempty"`
}

func NewConnectionResponse(c connection.Connection) ConnectionResponse {
	tier := c.Tier()
	return ConnectionResponse{
		ID:                c.ID,
		Profile:           NewProfileResponse(c.Profile),
		MatchScore:        c.MatchScore,
		MatchLevel:        string(tier),
		AuraColor:         tier.AuraColor(),
		ConnectedAt:       c.ConnectedAt.UTC().Format(time.RFC3339),
		AppreciationCount: c.AppreciationCount,
	}
}

func NewConnectionListResponse(items []connection.Connection, stats usecase.ConnectionStats, sortBy string) ConnectionListResponse {
	out := make([]ConnectionResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewConnectionResponse(c))
	}
	return ConnectionListResponse{Items: out, Stats: stats, Sort: sortBy}
}
