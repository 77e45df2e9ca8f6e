package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 120*time.Second, cfg.BuildTimeout)
	require.Equal(t, "development", cfg.Env)
	require.Empty(t, cfg.AuthSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("SMOKE_TOKEN", "tok")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "0.0.0.0", cfg.Host)
	require.Equal(t, "s3cret", cfg.AuthSecret)
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "tok", cfg.BearerToken)
}

func TestTarget(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 3000}
	require.Equal(t, "http://localhost:3000", cfg.Target())

	cfg.BaseURL = "https://app.up.railway.app/"
	require.Equal(t, "https://app.up.railway.app", cfg.Target())
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}
