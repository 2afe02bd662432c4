package matching

import (
	"fmt"
	"strings"
)

type Tier string

const (
	TierExcellent Tier = "EXCELLENT"
	TierGood      Tier = "GOOD"
	TierPotential Tier = "POTENTIAL"
)

// Classify maps a score to its tier using the configured thresholds.
func (c Config) Classify(score int) Tier {
	switch {
	case score >= c.ExcellentThreshold:
		return TierExcellent
	case score >= c.GoodThreshold:
		return TierGood
	default:
		return TierPotential
	}
}

func ClassifyScore(score int) Tier {
	return DefaultConfig().Classify(score)
}

// Rank orders tiers; higher is better.
func (t Tier) Rank() int {
	switch t {
	case TierExcellent:
		return 2
	case TierGood:
		return 1
	case TierPotential:
		return 0
	default:
		return -1
	}
}

func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "Excellent Match"
	case TierGood:
		return "Good Match"
	case TierPotential:
		return "Potential Match"
	default:
		return "Unknown"
	}
}

func (t Tier) AuraColor() string {
	switch t {
	case TierExcellent:
		return "#22c55e"
	case TierGood:
		return "#eab308"
	case TierPotential:
		return "#ef4444"
	default:
		return "#6b7280"
	}
}

// ParseTier accepts tier names case-insensitively; LOW is an alias of POTENTIAL.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TierExcellent):
		return TierExcellent, nil
	case string(TierGood):
		return TierGood, nil
	case string(TierPotential), "LOW":
		return TierPotential, nil
	default:
		return "", fmt.Errorf("unknown match tier %q", s)
	}
}
