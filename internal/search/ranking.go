package search

import (
	"sort"
	"strings"

	"xrnode/internal/domain/profile"
)

const maxRelevance = 10

// Field weights. The literal query counts double against its synonyms.
const (
	weightName      = 4
	weightRole      = 3
	weightSkill     = 2
	weightCompany   = 1
	weightInterest  = 1
	synonymDiscount = 0.5
)

// Relevance scores how well p matches the query variants, capped at 10.
// The first variant is the query itself; later ones are synonyms.
func Relevance(p profile.Profile, variants []string) float64 {
	if len(variants) == 0 {
		return 0
	}

	name := strings.ToLower(p.Name)
	role := strings.ToLower(p.Role)
	company := strings.ToLower(p.Company)

	score := 0.0
	for i, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		w := 1.0
		if i > 0 {
			w = synonymDiscount
		}

		if strings.Contains(name, v) {
			score += weightName * w
		}
		if strings.Contains(role, v) {
			score += weightRole * w
		}
		if strings.Contains(company, v) {
			score += weightCompany * w
		}
		if containsAny(p.Skills, v) {
			score += weightSkill * w
		}
		if containsAny(p.Interests, v) {
			score += weightInterest * w
		}
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

// Rank drops profiles with zero relevance and orders the rest by relevance,
// then name, then id.
func Rank(items []profile.Profile, variants []string) []profile.Profile {
	type scored struct {
		p     profile.Profile
		score float64
	}

	tmp := make([]scored, 0, len(items))
	for _, p := range items {
		if s := Relevance(p, variants); s > 0 {
			tmp = append(tmp, scored{p: p, score: s})
		}
	}

	sort.SliceStable(tmp, func(i, j int) bool {
		if tmp[i].score != tmp[j].score {
			return tmp[i].score > tmp[j].score
		}
		if tmp[i].p.Name != tmp[j].p.Name {
			return tmp[i].p.Name < tmp[j].p.Name
		}
		return tmp[i].p.ID < tmp[j].p.ID
	})

	out := make([]profile.Profile, 0, len(tmp))
	for _, s := range tmp {
		out = append(out, s.p)
	}
	return out
}

func containsAny(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
