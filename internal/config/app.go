package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers and advice cache backends accepted by AppConfig.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// AppConfig holds server settings read from the environment.
type AppConfig struct {
	Port         string
	LogLevel     string
	StoreDriver  string
	DatabasePath string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	AdviceCache    string
	AdviceCacheTTL time.Duration
	RedisAddr      string

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	RequestTimeout time.Duration

	// TrustProxyHeaders is set when the server runs behind a reverse proxy
	// that owns X-Forwarded-For.
	TrustProxyHeaders bool
}

// LookupFunc reports an environment value; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadAppConfig loads the given .env files (".env" when none are named) into
// the process environment, then reads AppConfig from it. Missing .env files
// are not an error; variables already set in the environment win.
func LoadAppConfig(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return AppConfigFrom(os.LookupEnv)
}

// AppConfigFrom builds and validates an AppConfig from lookup.
func AppConfigFrom(lookup LookupFunc) (*AppConfig, error) {
	env := envReader{lookup: lookup}

	cfg := &AppConfig{
		Port:              env.str("PORT", "5000"),
		LogLevel:          env.str("LOG_LEVEL", "info"),
		StoreDriver:       strings.ToLower(env.str("STORE_DRIVER", StoreMemory)),
		DatabasePath:      env.str("DATABASE_PATH", "./rupeecalc.db"),
		OpenAIAPIKey:      env.str("OPENAI_API_KEY", ""),
		OpenAIModel:       env.str("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:     env.str("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AdviceCache:       strings.ToLower(env.str("ADVICE_CACHE", CacheMemory)),
		AdviceCacheTTL:    env.duration("ADVICE_CACHE_TTL", time.Hour),
		RedisAddr:         env.str("REDIS_ADDR", "localhost:6379"),
		RateLimitRPS:      env.floatVal("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    env.intVal("RATE_LIMIT_BURST", 10),
		AllowedOrigins:    env.list("ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:    env.duration("REQUEST_TIMEOUT", 30*time.Second),
		TrustProxyHeaders: env.boolVal("TRUST_PROXY_HEADERS", false),
	}
	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and limits.
func (c *AppConfig) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StoreSQLite, c.StoreDriver)
	}
	if c.StoreDriver == StoreSQLite && c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
	}
	switch c.AdviceCache {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("ADVICE_CACHE must be one of none, memory, redis, got %q", c.AdviceCache)
	}
	if c.AdviceCache == CacheRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis advice cache")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %g", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// envReader records the first parse failure so callers check once.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *envReader) str(key, fallback string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return fallback
}

func (e *envReader) boolVal(key string, fallback bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return b
}

func (e *envReader) intVal(key string, fallback int) int {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return n
}

func (e *envReader) floatVal(key string, fallback float64) float64 {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return f
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return d
}

func (e *envReader) list(key string, fallback []string) []string {
	v, ok := e.raw(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (e *envReader) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
}
