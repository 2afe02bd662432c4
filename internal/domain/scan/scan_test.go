package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQRCode(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		raw  string
		want string
	}{
		{"XRNODE:p002", "p002"},
		{"  XRNODE: p004 ", "p004"},
		{"p007", "p007"},
		{"some-other-id", "some-other-id"},
	}
	for _, tc := range cases {
		res, err := ParseQRCode(tc.raw, DefaultPrefix, now)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, res.ParticipantID)
		assert.Equal(t, tc.raw, res.Raw)
		assert.Equal(t, now, res.ScannedAt)
	}
}

func TestParseQRCode_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "XRNODE:", "XRNODE:   "} {
		_, err := ParseQRCode(raw, "", time.Now())
		assert.ErrorIs(t, err, ErrInvalidCode, "%q", raw)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	res, err := ParseQRCode(Encode("p003", ""), "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "p003", res.ParticipantID)
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(2 * time.Second)
	t0 := time.Now()

	assert.True(t, d.Allow("p003", "XRNODE:p001", t0))
	assert.False(t, d.Allow("p003", "XRNODE:p001", t0.Add(time.Second)))
	assert.True(t, d.Allow("p005", "XRNODE:p001", t0.Add(time.Second)))
	assert.True(t, d.Allow("p003", "XRNODE:p002", t0.Add(time.Second)))
	assert.True(t, d.Allow("p003", "XRNODE:p001", t0.Add(3*time.Second)))
}

func TestDebouncer_Forget(t *testing.T) {
	d := NewDebouncer(2 * time.Second)
	now := time.Now()

	assert.True(t, d.Allow("p003", "p002", now))
	assert.False(t, d.Allow("p003", "p002", now))
	d.Forget("p003", "p002")
	assert.True(t, d.Allow("p003", "p002", now))
}
