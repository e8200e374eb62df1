package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, AuthMock, cfg.AuthMode)
	require.Equal(t, time.Second, cfg.LoginDelay)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 5, cfg.MaxLoginFails)
	require.False(t, cfg.DarkTheme)
	require.Zero(t, cfg.ExtraDoctors)
	require.Equal(t, uint64(1), cfg.CatalogSeed)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("MEDHUB_AUTH", AuthDirectory)
	t.Setenv("MEDHUB_LOGIN_DELAY", "250ms")
	t.Setenv("MEDHUB_MAX_LOGIN_FAILS", "3")
	t.Setenv("MEDHUB_DARK", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, AuthDirectory, cfg.AuthMode)
	require.Equal(t, 250*time.Millisecond, cfg.LoginDelay)
	require.Equal(t, 3, cfg.MaxLoginFails)
	require.True(t, cfg.DarkTheme)

	cfg, err = Load([]string{"-auth", "mock", "-login-delay", "0s", "-jwt-key", "k"})
	require.NoError(t, err)
	require.Equal(t, AuthMock, cfg.AuthMode)
	require.Zero(t, cfg.LoginDelay)
	require.Equal(t, "k", cfg.JWTKey)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("MEDHUB_TOKEN_TTL", "soon")
	t.Setenv("MEDHUB_MAX_LOGIN_FAILS", "many")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 5, cfg.MaxLoginFails)
}

func TestLoad_CatalogSeedFromEnv(t *testing.T) {
	t.Setenv("MEDHUB_CATALOG_SEED", "42")
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(42), cfg.CatalogSeed)

	t.Setenv("MEDHUB_CATALOG_SEED", "-5")
	cfg, err = Load(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), cfg.CatalogSeed, "negative seed falls back to the default")
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load([]string{"-auth", "ldap"})
	require.Error(t, err)

	_, err = Load([]string{"-login-delay", "-1s"})
	require.Error(t, err)

	_, err = Load([]string{"-token-ttl", "0s"})
	require.Error(t, err)

	_, err = Load([]string{"-extra-doctors", "-2"})
	require.Error(t, err)

	_, err = Load([]string{"-no-such-flag"})
	require.Error(t, err)
}
