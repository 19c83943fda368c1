package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "hackathon.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxRequestSize)
	assert.Equal(t, 10000, cfg.MaxImportRows)
	assert.Equal(t, "InnovateFest 2025", cfg.EventName)
	assert.True(t, cfg.IsDevelopment())
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a placeholder secret")
}

func TestNewRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveRowLimit(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("MAX_IMPORT_ROWS", "0")

	_, err := New()
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveRateLimitWindow(t *testing.T) {
	for _, window := range []string{"0s", "-1m"} {
		t.Run(window, func(t *testing.T) {
			t.Setenv("ENV", "development")
			t.Setenv("RATE_LIMIT_WINDOW", window)

			_, err := New()
			assert.ErrorContains(t, err, "RATE_LIMIT_WINDOW")
		})
	}
}

func TestListHelpers(t *testing.T) {
	cfg := &Config{
		AllowedOrigins: "https://a.example, https://b.example,,",
		TrustedProxies: "",
	}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetAllowedOrigins())
	assert.Empty(t, cfg.GetTrustedProxies())
}

func TestIsSecurityEnabled(t *testing.T) {
	assert.True(t, (&Config{Environment: "production"}).IsSecurityEnabled())
	assert.True(t, (&Config{Environment: "development", EnableSecurity: true}).IsSecurityEnabled())
	assert.False(t, (&Config{Environment: "development"}).IsSecurityEnabled())
}
