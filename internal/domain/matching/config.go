package matching

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid matching config")

type ExperienceBucket struct {
	MaxDiff int     `yaml:"max_diff"`
	Points  float64 `yaml:"points"`
}

// RolePair is a pair of keyword groups; a role matches a group when it contains
// any of the group's keywords.
type RolePair struct {
	A []string `yaml:"a"`
	B []string `yaml:"b"`
}

type Config struct {
	SkillPointsPerMatch    float64 `yaml:"skill_points_per_match"`
	SkillMaxPoints         float64 `yaml:"skill_max_points"`
	InterestPointsPerMatch float64 `yaml:"interest_points_per_match"`
	InterestMaxPoints      float64 `yaml:"interest_max_points"`
	InterestMinWordLength  int     `yaml:"interest_min_word_length"`

	RoleSameFamilyPoints    float64    `yaml:"role_same_family_points"`
	RoleComplementaryPoints float64    `yaml:"role_complementary_points"`
	RoleBaselinePoints      float64    `yaml:"role_baseline_points"`
	ComplementaryRoles      []RolePair `yaml:"complementary_roles"`

	ExperienceBuckets        []ExperienceBucket `yaml:"experience_buckets"`
	ExperienceFallbackPoints float64            `yaml:"experience_fallback_points"`

	LocationExactPoints  float64 `yaml:"location_exact_points"`
	LocationRegionPoints float64 `yaml:"location_region_points"`

	ExcellentThreshold int `yaml:"excellent_threshold"`
	GoodThreshold      int `yaml:"good_threshold"`

	RoleReasonThreshold       float64 `yaml:"role_reason_threshold"`
	ExperienceReasonThreshold float64 `yaml:"experience_reason_threshold"`
	LocationReasonThreshold   float64 `yaml:"location_reason_threshold"`
}

func DefaultConfig() Config {
	return Config{
		SkillPointsPerMatch:    10,
		SkillMaxPoints:         30,
		InterestPointsPerMatch: 8,
		InterestMaxPoints:      25,
		InterestMinWordLength:  4,

		RoleSameFamilyPoints:    12,
		RoleComplementaryPoints: 20,
		RoleBaselinePoints:      5,
		ComplementaryRoles: []RolePair{
			{A: []string{"developer", "engineer"}, B: []string{"designer", "ux"}},
			{A: []string{"developer", "engineer"}, B: []string{"product", "manager"}},
			{A: []string{"data", "analyst"}, B: []string{"developer", "engineer"}},
			{A: []string{"ai", "ml"}, B: []string{"developer", "engineer"}},
			{A: []string{"devops"}, B: []string{"developer", "engineer"}},
			{A: []string{"project", "manager"}, B: []string{"developer", "engineer"}},
		},

		ExperienceBuckets: []ExperienceBucket{
			{MaxDiff: 2, Points: 15},
			{MaxDiff: 4, Points: 10},
			{MaxDiff: 6, Points: 5},
		},
		ExperienceFallbackPoints: 2,

		LocationExactPoints:  10,
		LocationRegionPoints: 7,

		ExcellentThreshold: 75,
		GoodThreshold:      50,

		RoleReasonThreshold:       15,
		ExperienceReasonThreshold: 10,
		LocationReasonThreshold:   5,
	}
}

func (c Config) Validate() error {
	var problems []string
	nonNeg := []struct {
		name  string
		value float64
	}{
		{"skill_points_per_match", c.SkillPointsPerMatch},
		{"skill_max_points", c.SkillMaxPoints},
		{"interest_points_per_match", c.InterestPointsPerMatch},
		{"interest_max_points", c.InterestMaxPoints},
		{"role_same_family_points", c.RoleSameFamilyPoints},
		{"role_complementary_points", c.RoleComplementaryPoints},
		{"role_baseline_points", c.RoleBaselinePoints},
		{"experience_fallback_points", c.ExperienceFallbackPoints},
		{"location_exact_points", c.LocationExactPoints},
		{"location_region_points", c.LocationRegionPoints},
	}
	for _, f := range nonNeg {
		if f.value < 0 {
			problems = append(problems, f.name+" must not be negative")
		}
	}
	if c.InterestMinWordLength < 0 {
		problems = append(problems, "interest_min_word_length must not be negative")
	}
	for i, b := range c.ExperienceBuckets {
		if b.Points < 0 || b.MaxDiff < 0 {
			problems = append(problems, fmt.Sprintf("experience_buckets[%d] must not be negative", i))
		}
		if i > 0 && b.MaxDiff <= c.ExperienceBuckets[i-1].MaxDiff {
			problems = append(problems, "experience_buckets must be ordered by max_diff")
		}
	}
	for i, p := range c.ComplementaryRoles {
		if len(p.A) == 0 || len(p.B) == 0 {
			problems = append(problems, fmt.Sprintf("complementary_roles[%d] needs two keyword groups", i))
		}
	}
	if c.GoodThreshold < 0 || c.ExcellentThreshold > 100 || c.GoodThreshold > c.ExcellentThreshold {
		problems = append(problems, "thresholds must satisfy 0 <= good <= excellent <= 100")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

// LoadConfig overlays the YAML document at path on DefaultConfig. Keys absent
// from the file keep their default values; an empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read matching config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
