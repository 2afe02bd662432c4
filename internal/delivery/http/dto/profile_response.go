package dto

import "xrnode/internal/domain/profile"

type ProfileResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Company         string   `json:"company"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	Interests       []string `json:"interests"`
	ImageURL        string   `json:"image_url"`
	LinkedInURL     string   `json:"linkedin_url"`
	Location        *string  `json:"location"`
	ExperienceYears *int     `json:"experience_years"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	out := ProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		Role:            p.Role,
		Company:         p.Company,
		Bio:             p.Bio,
		Skills:          nonNil(p.Skills),
		Interests:       nonNil(p.Interests),
		ImageURL:        p.ImageURL,
		LinkedInURL:     p.LinkedInURL,
		ExperienceYears: p.ExperienceYears,
	}
	if p.HasLocation() {
		loc := p.Location
		out.Location = &loc
	}
	return out
}

func NewProfileListResponse(items []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProfileResponse(p))
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
