package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	StorageDriverLocal    = "local"
	StorageDriverSupabase = "supabase"
)

// Config holds all configuration for the application
type Config struct {
	Env string `env:"APP_ENV" envDefault:"local"`

	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	CORS        CORSConfig
	Storage     StorageConfig
	Avatar      AvatarConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port              string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// PublicBaseURL is where this server is reachable; local signed avatar URLs point at it.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string        `env:"STORE_DRIVER" envDefault:"memory"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" envDefault:"postgres"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"5"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"0"`
	MaxLifetime     time.Duration `env:"DB_MAX_LIFETIME" envDefault:"1h"`
	ConnTimeout     time.Duration `env:"DB_CONN_TIMEOUT" envDefault:"10s"`
	QueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"30s"`
	ApplicationName string        `env:"DB_APPLICATION_NAME" envDefault:"booking-backend"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
	MigrationsTable string        `env:"MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"168h"`
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/api/auth/google/callback"`
	// FrontendCallbackURL receives the token after the callback. Empty means
	// the callback answers with JSON instead of redirecting.
	FrontendCallbackURL string `env:"GOOGLE_FRONTEND_CALLBACK_URL"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
}

// StorageConfig selects and configures the avatar object store
type StorageConfig struct {
	Driver             string `env:"STORAGE_DRIVER" envDefault:"local"`
	Bucket             string `env:"STORAGE_BUCKET" envDefault:"avatars"`
	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY"`
	LocalRoot          string `env:"STORAGE_LOCAL_ROOT" envDefault:"./data/objects"`
}

// AvatarConfig holds avatar upload and rendering limits
type AvatarConfig struct {
	SignedURLTTL    time.Duration `env:"AVATAR_SIGNED_URL_TTL" envDefault:"1h"`
	MaxBytes        int64         `env:"AVATAR_MAX_BYTES" envDefault:"5242880"`
	PlaceholderBase string        `env:"AVATAR_PLACEHOLDER_BASE" envDefault:"https://ui-avatars.com/api/"`
}

// Load reads .env (if any) and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load("../.env"); err != nil {
		// a missing .env is fine, real deployments inject the environment
		_ = godotenv.Load(".env")
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("APP_ENV must be one of local, dev, prod: got %q", c.Env)
	}

	switch c.Database.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be memory or postgres: got %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case StorageDriverLocal:
		if c.Storage.LocalRoot == "" {
			return errors.New("STORAGE_LOCAL_ROOT is required")
		}
	case StorageDriverSupabase:
		if c.Storage.SupabaseURL == "" || c.Storage.SupabaseServiceKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_SERVICE_KEY are required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be local or supabase: got %q", c.Storage.Driver)
	}

	if c.Avatar.SignedURLTTL <= 0 {
		return errors.New("AVATAR_SIGNED_URL_TTL must be positive")
	}
	if c.Avatar.MaxBytes <= 0 {
		return errors.New("AVATAR_MAX_BYTES must be positive")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	return nil
}

// Warnings lists settings that are allowed but degrade functionality.
func (c *Config) Warnings() []string {
	var out []string
	if !c.IsGoogleOAuthConfigured() {
		out = append(out, "Google OAuth credentials not configured. Google login will not work.")
	}
	if c.JWT.Secret == "your-secret-key-change-in-production" {
		out = append(out, "JWT_SECRET is the built-in default. Set it before deploying.")
	}
	return out
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}
