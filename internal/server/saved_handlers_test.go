package server

import (
	"net/http"
	"testing"

	"campushub/internal/config"
	"campushub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedPostsFlow(t *testing.T) {
	app, _ := newTestApp(t)
	owner := signup(t, app, "Owner", "owner@campus.edu")
	reader := signup(t, app, "Reader", "reader@campus.edu")

	var post models.Post
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/posts", owner.Token,
		map[string]any{"title": "Backend role", "description": "System design round"}, &post))

	var unauth models.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, app, http.MethodPost, "/api/posts/save", "",
		map[string]any{"postId": post.ID}, &unauth))

	for _, bad := range []string{"", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		var out models.ErrorResponse
		assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/posts/save", reader.Token,
			map[string]any{"postId": bad}, &out), bad)
		assert.Equal(t, "Invalid postId", out.Message)
	}

	var missing models.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/posts/save", reader.Token,
		map[string]any{"postId": models.NewID()}, &missing))

	for i := 0; i < 2; i++ {
		var ok SuccessResponse
		require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/save", reader.Token,
			map[string]any{"postId": post.ID}, &ok))
		assert.True(t, ok.Success)
	}

	var saved []models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/saved", reader.Token, nil, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, post.ID, saved[0].ID)

	var none []models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/saved", owner.Token, nil, &none))
	assert.Empty(t, none)

	var deleted SuccessResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, "/api/posts/"+post.ID, owner.Token, nil, &deleted))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/saved", reader.Token, nil, &saved))
	assert.Empty(t, saved)

	var cleanup CleanupResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/cleanup-saved", "", nil, &cleanup))
	assert.Equal(t, CleanupResponse{OK: true, UsersUpdated: 1, EntriesRemoved: 1}, cleanup)

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/cleanup-saved", "", nil, &cleanup))
	assert.Equal(t, CleanupResponse{OK: true}, cleanup)
}

func TestMaintenanceGate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		allowed bool
	}{
		{"development", func(c *config.Config) { c.Env = "development" }, true},
		{"production", func(c *config.Config) { c.Env = "production" }, false},
		{"production with override", func(c *config.Config) {
			c.Env = "production"
			c.AllowMaintenance = true
		}, true},
		{"production with flag", func(c *config.Config) {
			c.Env = "production"
			c.FeatureFlags = "maintenance_routes=on"
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, tt.mutate)

			var out map[string]any
			status := doJSON(t, app, http.MethodPost, "/api/posts/cleanup-saved", "", nil, &out)
			if tt.allowed {
				assert.Equal(t, http.StatusOK, status)
				assert.Equal(t, true, out["ok"])
				return
			}
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, "Maintenance route disabled", out["message"])
		})
	}
}
