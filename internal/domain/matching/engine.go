package matching

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"xrnode/internal/domain/profile"
)

type Result struct {
	Score   int      `json:"score"`
	Level   Tier     `json:"match_level"`
	Reasons []string `json:"reasons"`
}

// Breakdown exposes the per-factor contributions behind a Result.
type Breakdown struct {
	SkillOverlap    int     `json:"skill_overlap"`
	SkillScore      float64 `json:"skill_score"`
	InterestOverlap int     `json:"interest_overlap"`
	InterestScore   float64 `json:"interest_score"`
	RoleScore       float64 `json:"role_score"`
	ExperienceScore float64 `json:"experience_score"`
	LocationScore   float64 `json:"location_score"`
}

func (b Breakdown) Total() float64 {
	return b.SkillScore + b.InterestScore + b.RoleScore + b.ExperienceScore + b.LocationScore
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	if e == nil {
		return DefaultConfig()
	}
	return e.cfg
}

var defaultEngine = NewEngine(DefaultConfig())

// Compute scores a against b with the default weights.
func Compute(a, b profile.Profile) Result {
	return defaultEngine.Compute(a, b)
}

func (e *Engine) Compute(a, b profile.Profile) Result {
	cfg := e.Config()
	bd := e.Breakdown(a, b)

	score := clampInt(int(math.Round(bd.Total())), 0, 100)

	return Result{
		Score:   score,
		Level:   cfg.Classify(score),
		Reasons: reasons(cfg, bd),
	}
}

func (e *Engine) Breakdown(a, b profile.Profile) Breakdown {
	cfg := e.Config()

	k := skillOverlap(a.Skills, b.Skills)
	j := interestOverlap(a.Interests, b.Interests, cfg.InterestMinWordLength)

	bd := Breakdown{
		SkillOverlap:    k,
		SkillScore:      math.Min(float64(k)*cfg.SkillPointsPerMatch, cfg.SkillMaxPoints),
		InterestOverlap: j,
		InterestScore:   math.Min(float64(j)*cfg.InterestPointsPerMatch, cfg.InterestMaxPoints),
		RoleScore:       roleComplementarity(cfg, a.Role, b.Role),
		ExperienceScore: experienceCompatibility(cfg, a.Years(), b.Years()),
	}
	if a.HasLocation() && b.HasLocation() {
		bd.LocationScore = locationBonus(cfg, a.Location, b.Location)
	}
	return bd
}

func reasons(cfg Config, bd Breakdown) []string {
	out := make([]string, 0, 5)
	if bd.SkillOverlap > 0 {
		out = append(out, countReason(bd.SkillOverlap, "skill"))
	}
	if bd.InterestOverlap > 0 {
		out = append(out, countReason(bd.InterestOverlap, "interest"))
	}
	if bd.RoleScore >= cfg.RoleReasonThreshold {
		out = append(out, "Complementary roles")
	}
	if bd.ExperienceScore >= cfg.ExperienceReasonThreshold {
		out = append(out, "Compatible experience levels")
	}
	if bd.LocationScore >= cfg.LocationReasonThreshold && bd.LocationScore > 0 {
		out = append(out, "Same region")
	}
	return out
}

func countReason(n int, noun string) string {
	if n > 1 {
		return fmt.Sprintf("%d shared %ss", n, noun)
	}
	return fmt.Sprintf("%d shared %s", n, noun)
}

// skillOverlap counts labels of a that contain, or are contained in, some label
// of b. Blank labels never match.
func skillOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	other := lowerNonBlank(b)
	n := 0
	for _, s := range lowerNonBlank(a) {
		for _, s2 := range other {
			if strings.Contains(s2, s) || strings.Contains(s, s2) {
				n++
				break
			}
		}
	}
	return n
}

// interestOverlap counts phrases of a that share an identical word of at least
// minLen characters with some phrase of b.
func interestOverlap(a, b []string, minLen int) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	other := make([][]string, 0, len(b))
	for _, phrase := range lowerNonBlank(b) {
		other = append(other, strings.Split(phrase, " "))
	}

	n := 0
	for _, phrase := range lowerNonBlank(a) {
		if sharesLongWord(strings.Split(phrase, " "), other, minLen) {
			n++
		}
	}
	return n
}

func sharesLongWord(words []string, phrases [][]string, minLen int) bool {
	for _, w := range words {
		if utf8.RuneCountInString(w) < minLen || w == "" {
			continue
		}
		for _, p := range phrases {
			for _, w2 := range p {
				if w == w2 {
					return true
				}
			}
		}
	}
	return false
}

func roleComplementarity(cfg Config, role1, role2 string) float64 {
	r1 := strings.ToLower(role1)
	r2 := strings.ToLower(role2)

	if strings.Contains(r1, r2) || strings.Contains(r2, r1) {
		return cfg.RoleSameFamilyPoints
	}

	for _, pair := range cfg.ComplementaryRoles {
		r1A := containsAny(r1, pair.A)
		r1B := containsAny(r1, pair.B)
		r2A := containsAny(r2, pair.A)
		r2B := containsAny(r2, pair.B)
		if (r1A && r2B) || (r1B && r2A) {
			return cfg.RoleComplementaryPoints
		}
	}

	return cfg.RoleBaselinePoints
}

func experienceCompatibility(cfg Config, years1, years2 int) float64 {
	d := years1 - years2
	if d < 0 {
		d = -d
	}
	for _, b := range cfg.ExperienceBuckets {
		if d <= b.MaxDiff {
			return b.Points
		}
	}
	return cfg.ExperienceFallbackPoints
}

func locationBonus(cfg Config, loc1, loc2 string) float64 {
	if strings.EqualFold(loc1, loc2) {
		return cfg.LocationExactPoints
	}
	region1 := region(loc1)
	region2 := region(loc2)
	if region1 != "" && region1 == region2 {
		return cfg.LocationRegionPoints
	}
	return 0
}

// region is the lower-cased text after the last comma, or the whole string when
// there is no comma.
func region(loc string) string {
	if i := strings.LastIndex(loc, ","); i >= 0 {
		loc = loc[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(loc))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func lowerNonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
