package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "digest"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv        = "DIGEST_APP_ENV"
	EnvPort          = "DIGEST_APP_PORT"
	EnvDBDSN         = "DIGEST_DB_DSN"
	EnvDBHost        = "DIGEST_DB_HOST"
	EnvDBUser        = "DIGEST_DB_USER"
	EnvDBName        = "DIGEST_DB_NAME"
	EnvRedisURL      = "DIGEST_REDIS_URL"
	EnvSessionSecret = "DIGEST_SESSION_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Google       GoogleOAuthConfig
	Sendgrid     SendgridConfig
	Queue        QueueConfig
	CORS         CORSConfig
	Retention    RetentionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DIGEST_APP_ENV" required:"true"`
	Port         string `envconfig:"DIGEST_APP_PORT" default:"4000"`
	MetricsPort  string `envconfig:"DIGEST_METRICS_PORT" default:"9100"`
	BaseURL      string `envconfig:"DIGEST_BASE_URL"`
	LogLevel     string `envconfig:"DIGEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DIGEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PublicBaseURL returns the externally reachable base URL used for OAuth callbacks.
func (a AppConfig) PublicBaseURL() string {
	if base := strings.TrimSuffix(strings.TrimSpace(a.BaseURL), "/"); base != "" {
		return base
	}
	return "http://localhost:" + a.Port
}

type DBConfig struct {
	DSN    string `envconfig:"DIGEST_DB_DSN"`
	Driver string `envconfig:"DIGEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DIGEST_DB_HOST"`
	LegacyPort     int    `envconfig:"DIGEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DIGEST_DB_USER"`
	LegacyPassword string `envconfig:"DIGEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"DIGEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"DIGEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DIGEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DIGEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DIGEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DIGEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DIGEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DIGEST_REDIS_ADDR"`
	Password     string        `envconfig:"DIGEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"DIGEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DIGEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DIGEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIGEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DIGEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DIGEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type AuthConfig struct {
	SessionSecret string        `envconfig:"DIGEST_SESSION_SECRET"`
	SessionCookie string        `envconfig:"DIGEST_SESSION_COOKIE" default:"session"`
	SessionTTL    time.Duration `envconfig:"DIGEST_SESSION_TTL" default:"720h"`
	Tokens        []string      `envconfig:"DIGEST_TOKEN"`
	TokenCookie   string        `envconfig:"DIGEST_TOKEN_COOKIE" default:"digest-token"`
}

// AllowedTokens returns the configured token allow-set with blanks removed.
func (a AuthConfig) AllowedTokens() map[string]struct{} {
	allowed := make(map[string]struct{}, len(a.Tokens))
	for _, token := range a.Tokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return allowed
}

type GoogleOAuthConfig struct {
	ClientID     string `envconfig:"DIGEST_GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"DIGEST_GOOGLE_CLIENT_SECRET"`
}

// Configured reports whether the Google login flow can be mounted.
func (g GoogleOAuthConfig) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type SendgridConfig struct {
	APIKey    string `envconfig:"DIGEST_SENDGRID_API_KEY"`
	FromEmail string `envconfig:"DIGEST_SENDGRID_FROM_EMAIL" default:"noreply@cognition-digest.com"`
	FromName  string `envconfig:"DIGEST_SENDGRID_FROM_NAME" default:"Cognition Digest"`
}

type QueueConfig struct {
	Concurrency     int `envconfig:"DIGEST_QUEUE_CONCURRENCY" default:"10"`
	ProcessMaxRetry int `envconfig:"DIGEST_QUEUE_PROCESS_MAX_RETRY" default:"2"`
	EmailMaxRetry   int `envconfig:"DIGEST_QUEUE_EMAIL_MAX_RETRY" default:"3"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DIGEST_FRONTEND_URL" default:"http://localhost:3000"`
}

type RetentionConfig struct {
	MaxAge   time.Duration `envconfig:"DIGEST_RETENTION_MAX_AGE" default:"720h"`
	Interval time.Duration `envconfig:"DIGEST_RETENTION_INTERVAL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DIGEST_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
