package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pecuadex-api", cfg.App.Name)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 7, cfg.JWT.RefreshTTLDays)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "postgres", cfg.DB.Driver)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_PASSWORD", "p@ss:w/rd")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aw%2Frd")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestConnectionString_PrefersDatabaseURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@db:5432/x", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/x", c.ConnectionString())
}
