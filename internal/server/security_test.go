package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersAndRequestID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	app, _ := newTestApp(t)
	created := signup(t, app, "Hidden", "hidden@campus.edu")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]map[string]any
	require.NoError(t, decodeBody(resp, &body))
	_, hasPassword := body["user"]["password"]
	assert.False(t, hasPassword)
	assert.Equal(t, "hidden@campus.edu", body["user"]["email"])
	assert.NotEmpty(t, body["user"]["_id"])
}

func TestTamperedTokenRejected(t *testing.T) {
	app, _ := newTestApp(t)
	created := signup(t, app, "Tamper", "tamper@campus.edu")

	tampered := created.Token[:len(created.Token)-2] + "xx"
	var out map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/auth/me", tampered, nil, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", out["message"])
}
