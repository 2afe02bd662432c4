package dto

import (
	"xrnode/internal/domain/matching"
	"xrnode/internal/usecase"
)

type MatchResponse struct {
	Score      int                 `json:"score"`
	MatchLevel matching.Tier       `json:"match_level"`
	Label      string              `json:"label"`
	AuraColor  string              `json:"aura_color"`
	Reasons    []string            `json:"reasons"`
	Breakdown  *matching.Breakdown `json:"breakdown,omitempty"`
}

type MatchOutcomeResponse struct {
	ViewerID string          `json:"viewer_id"`
	Target   ProfileResponse `json:"target"`
	Match    MatchResponse   `json:"match"`
}

func NewMatchResponse(res matching.Result) MatchResponse {
	reasons := res.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return MatchResponse{
		Score:      res.Score,
		MatchLevel: res.Level,
		Label:      res.Level.Label(),
		AuraColor:  res.Level.AuraColor(),
		Reasons:    reasons,
	}
}

func NewMatchOutcomeResponse(out usecase.MatchOutcome) MatchOutcomeResponse {
	m := NewMatchResponse(out.Result)
	bd := out.Breakdown
	m.Breakdown = &bd
	return MatchOutcomeResponse{
		ViewerID: out.Viewer.ID,
		Target:   NewProfileResponse(out.Target),
		Match:    m,
	}
}
