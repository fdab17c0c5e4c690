package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with required values set", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/booking")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/booking")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("custom expiry and origins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/booking")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRE_MINUTES", "120")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	})
}

func TestParseOrigins(t *testing.T) {
	assert.Empty(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a"}, parseOrigins("https://a"))
	assert.Equal(t, []string{"https://a", "https://b"}, parseOrigins(" https://a ,, https://b "))
}
