package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Valid(t *testing.T) {
	raw := []byte(`{
		"id": " p100 ",
		"name": "Ada",
		"role": "XR Developer",
		"company": "Lab",
		"bio": "",
		"skills": ["WebXR"],
		"location": "Denver, CO",
		"experience_years": 3
	}`)

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "p100", p.ID)
	assert.Equal(t, 3, p.Years())
	assert.NotNil(t, p.Interests)
	assert.True(t, p.HasLocation())
}

func TestDecode_CollectsAllFieldErrors(t *testing.T) {
	raw := []byte(`{"id":"p1","role":"","skills":["ok",""],"experience_years":-2,"image_url":"not a url"}`)

	_, err := Decode(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["name"])
	assert.Equal(t, "required", verr.Fields["role"])
	assert.Equal(t, "required", verr.Fields["company"])
	assert.Equal(t, "empty", verr.Fields["skills[1]"])
	assert.Contains(t, verr.Fields, "experience_years")
	assert.Contains(t, verr.Fields, "image_url")
	assert.NotContains(t, verr.Fields, "id")
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"id":`))
	require.ErrorIs(t, err, ErrInvalidProfile)
}

func TestProfile_Matches(t *testing.T) {
	p := Profile{
		Name:      "Alex Kim",
		Role:      "AI Engineer",
		Company:   "TechVentures",
		Skills:    []string{"TensorFlow"},
		Interests: []string{"Computer Vision"},
	}

	for _, q := range []string{"", "alex", "ENGINEER", "techv", "tensor", "vision"} {
		assert.True(t, p.Matches(q), q)
	}
	assert.False(t, p.Matches("blender"))
}

func TestProfile_YearsAbsent(t *testing.T) {
	assert.Equal(t, 0, Profile{}.Years())
	assert.False(t, Profile{Location: "  "}.HasLocation())
}

func TestProfile_CloneIsIndependent(t *testing.T) {
	p := Profile{Skills: []string{"Go"}, ExperienceYears: Years(2)}
	c := p.Clone()
	c.Skills[0] = "Rust"
	*c.ExperienceYears = 9

	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, 2, p.Years())
}
