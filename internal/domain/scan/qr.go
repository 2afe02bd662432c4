package scan

import (
	"errors"
	"strings"
	"time"
)

const DefaultPrefix = "XRNODE:"

var ErrInvalidCode = errors.New("invalid participant code")

type Result struct {
	ParticipantID string    `json:"participant_id"`
	Raw           string    `json:"raw"`
	ScannedAt     time.Time `json:"scanned_at"`
}

// ParseQRCode extracts the participant id from a badge payload. Payloads carrying
// prefix are stripped of it; anything else is taken as a bare participant id.
func ParseQRCode(raw, prefix string, now time.Time) (Result, error) {
	if raw == "" {
		return Result{}, ErrInvalidCode
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}

	data := strings.TrimSpace(raw)
	id := data
	if strings.HasPrefix(data, prefix) {
		id = strings.TrimSpace(strings.TrimPrefix(data, prefix))
	}
	if id == "" {
		return Result{}, ErrInvalidCode
	}

	return Result{ParticipantID: id, Raw: raw, ScannedAt: now.UTC()}, nil
}

// Encode builds the badge payload for a participant id.
func Encode(participantID, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + participantID
}
