package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var ErrInvalidProfile = errors.New("invalid profile")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalidProfile.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidProfile.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProfile
}

func Validate(p Profile) error {
	fields := map[string]string{}

	required := map[string]string{
		"id":      p.ID,
		"name":    p.Name,
		"role":    p.Role,
		"company": p.Company,
	}
	for k, v := range required {
		if strings.TrimSpace(v) == "" {
			fields[k] = "required"
		}
	}

	if p.ExperienceYears != nil && *p.ExperienceYears < 0 {
		fields["experience_years"] = "must not be negative"
	}
	for i, s := range p.Skills {
		if strings.TrimSpace(s) == "" {
			fields[fmt.Sprintf("skills[%d]", i)] = "empty"
		}
	}
	for i, s := range p.Interests {
		if strings.TrimSpace(s) == "" {
			fields[fmt.Sprintf("interests[%d]", i)] = "empty"
		}
	}
	if p.ImageURL != "" && !isHTTPURL(p.ImageURL) {
		fields["image_url"] = "invalid url"
	}
	if p.LinkedInURL != "" && !isHTTPURL(p.LinkedInURL) {
		fields["linkedin_url"] = "invalid url"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Decode parses a JSON participant record and validates it.
func Decode(raw []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, &ValidationError{Fields: map[string]string{"body": err.Error()}}
	}
	p = Normalize(p)
	if err := Validate(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Normalize trims display fields and drops nil list values so scoring never sees
// a null slice.
func Normalize(p Profile) Profile {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)
	p.Company = strings.TrimSpace(p.Company)
	p.Bio = strings.TrimSpace(p.Bio)
	p.Location = strings.TrimSpace(p.Location)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
