package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"xrnode/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{AppName: "xrnode-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessExpiresIn:  time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Event: config.EventConfig{
			Name:            "XR NODE",
			QRPrefix:        "XRNODE:",
			ScanDebounce:    2 * time.Second,
			DefaultViewer:   "p003",
			CheckinHashCost: bcrypt.MinCost,
		},
		Matching:  config.MatchingConfig{CacheTTL: time.Minute},
		Directory: config.DirectoryConfig{Workers: 2},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	a, cleanup, err := Bootstrap(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return a
}

func do(t *testing.T, a *App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func checkIn(t *testing.T, a *App, id, code string) string {
	t.Helper()

	resp, env := do(t, a, http.MethodPost, "/api/v1/auth/checkin", "", map[string]string{"participant_id": id, "code": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	resp, env := do(t, a, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", env.Message)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, mresp.StatusCode)
}

func TestCheckIn_WrongCode(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodPost, "/api/v1/auth/checkin", "", map[string]string{"participant_id": "p003", "code": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)

	resp, _ := do(t, a, http.MethodGet, "/api/v1/directory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestScanConnectExportFlow(t *testing.T) {
	a := newTestApp(t)
	tok := checkIn(t, a, "p003", "marlaina-2025")

	resp, env := do(t, a, http.MethodPost, "/api/v1/scans", tok, map[string]string{"code": "XRNODE:p001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var scanned struct {
		ParticipantID string `json:"participant_id"`
		Match         struct {
			Score int `json:"score"`
		} `json:"match"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &scanned))
	assert.Equal(t, "p001", scanned.ParticipantID)
	assert.GreaterOrEqual(t, scanned.Match.Score, 0)
	assert.LessOrEqual(t, scanned.Match.Score, 100)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/scans", tok, map[string]string{"code": "XRNODE:p001"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/scans", tok, map[string]string{"code": "XRNODE:p003"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/connections", tok, map[string]string{"profile_id": "p001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/connections?sort=score", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []struct {
			ID      string `json:"id"`
			Profile struct {
				ID string `json:"id"`
			} `json:"profile"`
		} `json:"items"`
		Stats struct {
			Count int `json:"count"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "p001", list.Items[0].Profile.ID)
	assert.Equal(t, 1, list.Stats.Count)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/connections/p001/appreciate", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/connections/export", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	eresp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, eresp.StatusCode)
	assert.Contains(t, eresp.Header.Get("Content-Disposition"), "attachment")

	resp, _ = do(t, a, http.MethodDelete, "/api/v1/connections/id/"+list.Items[0].ID, tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = do(t, a, http.MethodGet, "/api/v1/connections/p001", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Connected bool `json:"connected"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.False(t, status.Connected)
}

func TestHandshakeManualConfirm(t *testing.T) {
	a := newTestApp(t)
	tok := checkIn(t, a, "p003", "marlaina-2025")

	resp, _ := do(t, a, http.MethodPost, "/api/v1/handshake/confirm", tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, a, http.MethodPost, "/api/v1/handshake", tok, map[string]string{"profile_id": "p002"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := do(t, a, http.MethodPost, "/api/v1/handshake/confirm", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upd struct {
		State struct {
			Complete bool `json:"complete"`
		} `json:"state"`
		Connection *struct {
			Profile struct {
				ID string `json:"id"`
			} `json:"profile"`
		} `json:"connection"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &upd))
	assert.True(t, upd.State.Complete)
	require.NotNil(t, upd.Connection)
	assert.Equal(t, "p002", upd.Connection.Profile.ID)
}

func TestDirectoryAndProfiles(t *testing.T) {
	a := newTestApp(t)
	tok := checkIn(t, a, "p003", "marlaina-2025")

	resp, env := do(t, a, http.MethodGet, "/api/v1/directory?sort=name", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dir struct {
		Entries []struct {
			Profile struct {
				ID string `json:"id"`
			} `json:"profile"`
		} `json:"entries"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dir))
	assert.Len(t, dir.Entries, 7)
	assert.Equal(t, 7, dir.Summary.Total)

	resp, _ = do(t, a, http.MethodGet, "/api/v1/directory?filter=bogus", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, a, http.MethodGet, "/api/v1/profiles/p999", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, a, http.MethodPost, "/api/v1/profiles", tok, map[string]any{"id": "p009", "name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, env.Data)

	resp, _ = do(t, a, http.MethodGet, "/api/v1/matches/p001", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
