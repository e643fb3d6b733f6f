package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for toolchains before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tailtally", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestEnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAILTALLY_DATABASE_PASSWORD", "env-secret")
	t.Setenv("TAILTALLY_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestProductionRequiresJWTSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAILTALLY_APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TAILTALLY_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "pw", DBName: "tailtally", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=tailtally sslmode=disable", d.DSN())
}
