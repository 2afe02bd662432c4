package dto

import (
	"time"

	"xrnode/internal/usecase"
)

type ScanResponse struct {
	ParticipantID    string          `json:"participant_id"`
	ScannedAt        string          `json:"scanned_at"`
	Profile          ProfileResponse `json:"profile"`
	Match            MatchResponse   `json:"match"`
	AlreadyConnected bool            `json:"already_connected"`
}

func NewScanResponse(out usecase.ScanOutcome) ScanResponse {
	return ScanResponse{
		ParticipantID:    out.Scan.ParticipantID,
		ScannedAt:        out.Scan.ScannedAt.UTC().Format(time.RFC3339),
		Profile:          NewProfileResponse(out.Profile),
		Match:            NewMatchResponse(out.Match),
		AlreadyConnected: out.AlreadyConnected,
	}
}
