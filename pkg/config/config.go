package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"hackathon.db"`
	JWTSecret      string        `env:"JWT_SECRET"`
	Port           string        `env:"PORT" envDefault:"8080"`
	Environment    string        `env:"ENV" envDefault:"development"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Security configuration
	AllowedOrigins    string        `env:"ALLOWED_ORIGINS"`
	TrustedProxies    string        `env:"TRUSTED_PROXIES"`
	EnableSecurity    bool          `env:"ENABLE_SECURITY" envDefault:"false"`
	EnableRateLimit   bool          `env:"ENABLE_RATE_LIMIT" envDefault:"true"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RedisURL          string        `env:"REDIS_URL"`
	MaxRequestSize    int64         `env:"MAX_REQUEST_SIZE" envDefault:"10485760"` // 10MB

	// Event configuration
	EventName        string `env:"EVENT_NAME" envDefault:"InnovateFest 2025"`
	MaxImportRows    int    `env:"MAX_IMPORT_ROWS" envDefault:"10000"`
	GenderTokensFile string `env:"GENDER_TOKENS_FILE"`

	// Bootstrap accounts, each created on startup when username and password are set
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	JudgeUsername string `env:"BOOTSTRAP_JUDGE_USERNAME"`
	JudgePassword string `env:"BOOTSTRAP_JUDGE_PASSWORD"`
	JudgeEmail    string `env:"BOOTSTRAP_JUDGE_EMAIL"`
}

// New creates a new configuration instance from environment variables
func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = "development-secret-change-me"
	}
	if c.MaxImportRows <= 0 {
		return fmt.Errorf("MAX_IMPORT_ROWS must be positive, got %d", c.MaxImportRows)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	return splitList(c.AllowedOrigins)
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return []string{} // No trusted proxies by default
	}
	return splitList(c.TrustedProxies)
}

// IsSecurityEnabled returns true if security features should be enabled
func (c *Config) IsSecurityEnabled() bool {
	return c.IsProduction() || c.EnableSecurity
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
