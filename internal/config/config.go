package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	NATS     NATSConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName      string
	Environment  string
	HTTPPort     string
	ProfileStore string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

type NATSConfig struct {
	URL  string
	Name string
}

func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

type MatchingConfig struct {
	// OverFetchFactor multiplies the requested limit when pulling the candidate
	// pool, so re-ranking after scoring can still surface the true top entries.
	OverFetchFactor       int
	DefaultUserLimit      int
	DefaultSkillsLimit    int
	DefaultPopularLimit   int
	MaxLimit              int
	PopularSkillsCacheTTL time.Duration
	PopularSkillsSample   int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment. A .env file in the working
// directory, if present, fills in variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string

	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:      opt("APP_NAME", "SkillSync"),
		Environment:  opt("APP_ENV", "development"),
		HTTPPort:     req("HTTP_PORT"),
		ProfileStore: strings.ToLower(opt("PROFILE_STORE", StorePostgres)),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", ""),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            strings.TrimSpace(getenv("DB_PASSWORD")),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	switch cfg.App.ProfileStore {
	case StorePostgres:
		req("DB_HOST")
		req("DB_NAME")
		req("DB_USER")
	case StoreMemory:
	default:
		invalid = append(invalid, "PROFILE_STORE")
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", ""),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(getenv("REDIS_PASSWORD")),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
	}

	cfg.NATS = NATSConfig{
		URL:  opt("NATS_URL", ""),
		Name: opt("NATS_CLIENT_NAME", "skillsync"),
	}

	cfg.Matching = MatchingConfig{
		OverFetchFactor:       optInt("MATCH_OVERFETCH_FACTOR", 2),
		DefaultUserLimit:      optInt("MATCH_DEFAULT_USER_LIMIT", 5),
		DefaultSkillsLimit:    optInt("MATCH_DEFAULT_SKILLS_LIMIT", 10),
		DefaultPopularLimit:   optInt("POPULAR_SKILLS_DEFAULT_LIMIT", 10),
		MaxLimit:              optInt("MATCH_MAX_LIMIT", 50),
		PopularSkillsCacheTTL: optDur("POPULAR_SKILLS_CACHE_TTL", 5*time.Minute),
		PopularSkillsSample:   optInt("POPULAR_SKILLS_SAMPLE", 0),
	}
	if cfg.Matching.OverFetchFactor < 1 {
		invalid = append(invalid, "MATCH_OVERFETCH_FACTOR")
	}
	if cfg.Matching.MaxLimit < 1 {
		invalid = append(invalid, "MATCH_MAX_LIMIT")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
