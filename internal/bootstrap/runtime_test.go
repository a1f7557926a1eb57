package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"campushub/internal/config"
	"campushub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRuntime_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: filepath.Join(t.TempDir(), "runtime.db"),
		DBSchemaMode: "auto",
		Env:          "test",
	}
	ctx := context.Background()

	rt, err := InitRuntime(ctx, cfg, Options{SkipRedis: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })

	assert.Nil(t, rt.Redis)
	require.NotNil(t, rt.DB)
	assert.Equal(t, "sqlite", rt.Store.Driver())
	require.NoError(t, rt.Store.Ping(ctx))

	user := &models.User{Name: "Runtime", Email: "runtime@campus.edu", Password: "x"}
	require.NoError(t, rt.Users.Create(ctx, user))

	got, err := rt.Users.GetByEmail(ctx, "RUNTIME@campus.edu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestInitRuntime_CancelledContext(t *testing.T) {
	cfg := &config.Config{
		DBDriver:            config.DriverPostgres,
		DBHost:              "127.0.0.1",
		DBPort:              "1",
		DBName:              "none",
		DBRetryDelaySeconds: 1,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := InitRuntime(ctx, cfg, Options{SkipRedis: true})
	require.Error(t, err)
}
