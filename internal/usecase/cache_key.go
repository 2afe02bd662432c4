package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
)

const matchCachePrefix = "match:v1:"

type scoredFields struct {
	Role      string   `json:"role"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
	Years     int      `json:"years"`
}

func fieldsOf(p profile.Profile) scoredFields {
	return scoredFields{
		Role:      p.Role,
		Skills:    p.Skills,
		Interests: p.Interests,
		// Locations compare case-insensitively and nothing else, so spacing
		// must stay part of the key.
		Location:  strings.ToLower(p.Location),
		Years:     p.Years(),
	}
}

// ConfigFingerprint identifies a weight set so cached results never outlive a
// weights change.
func ConfigFingerprint(cfg matching.Config) string {
	b, _ := json.Marshal(cfg)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

// MatchCacheKey hashes exactly the fields the engine reads, in argument order,
// since overlap counts are directional.
func MatchCacheKey(fingerprint string, viewer, target profile.Profile) string {
	b, _ := json.Marshal([]any{fingerprint, fieldsOf(viewer), fieldsOf(target)})
	sum := sha256.Sum256(b)
	return matchCachePrefix + viewer.ID + ":" + target.ID + ":" + hex.EncodeToString(sum[:])
}

// MatchCachePatterns returns the key patterns that may hold results involving
// participantID on either side.
func MatchCachePatterns(participantID string) []string {
	return []string{
		matchCachePrefix + participantID + ":*",
		matchCachePrefix + "*:" + participantID + ":*",
	}
}

func ScanLockKey(viewerID, participantID string) string {
	return "scan:lock:" + viewerID + ":" + participantID
}
