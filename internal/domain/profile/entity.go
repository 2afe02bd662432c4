package profile

import (
	"strings"
	"time"
)

type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Company         string   `json:"company"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	Interests       []string `json:"interests"`
	ImageURL        string   `json:"image_url,omitempty"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"`
	Location        string   `json:"location,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Years returns the declared experience, treating an absent value as zero.
func (p Profile) Years() int {
	if p.ExperienceYears == nil {
		return 0
	}
	return *p.ExperienceYears
}

func (p Profile) HasLocation() bool {
	return strings.TrimSpace(p.Location) != ""
}

// Matches reports whether query occurs, case-insensitively, in the name, role,
// company, any skill or any interest. An empty query matches every profile.
func (p Profile) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Role), q) ||
		strings.Contains(strings.ToLower(p.Company), q) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, i := range p.Interests {
		if strings.Contains(strings.ToLower(i), q) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Profile) Clone() Profile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	out.Interests = append([]string(nil), p.Interests...)
	if p.ExperienceYears != nil {
		y := *p.ExperienceYears
		out.ExperienceYears = &y
	}
	return out
}

func Years(v int) *int {
	return &v
}
