package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestAppConfigDefaults(t *testing.T) {
	cfg, err := AppConfigFrom(mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, CacheMemory, cfg.AdviceCache)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, time.Hour, cfg.AdviceCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestAppConfigOverrides(t *testing.T) {
	cfg, err := AppConfigFrom(mapLookup(map[string]string{
		"PORT":                "127.0.0.1:9090",
		"STORE_DRIVER":        "SQLite",
		"DATABASE_PATH":       "/tmp/calc.db",
		"ADVICE_CACHE":        "redis",
		"REDIS_ADDR":          "redis:6379",
		"RATE_LIMIT_RPS":      "2.5",
		"RATE_LIMIT_BURST":    "4",
		"ALLOWED_ORIGINS":     "https://a.example, https://b.example ,",
		"REQUEST_TIMEOUT":     "5s",
		"TRUST_PROXY_HEADERS": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, CacheRedis, cfg.AdviceCache)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.TrustProxyHeaders)
}

func TestAppConfigRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unparsable int":   {"RATE_LIMIT_BURST": "lots"},
		"unparsable ttl":   {"ADVICE_CACHE_TTL": "forever"},
		"unknown store":    {"STORE_DRIVER": "postgres"},
		"unknown cache":    {"ADVICE_CACHE": "memcached"},
		"zero rps":         {"RATE_LIMIT_RPS": "0"},
		"negative timeout": {"REQUEST_TIMEOUT": "-1s"},
		"unparsable bool":  {"TRUST_PROXY_HEADERS": "sometimes"},
	}
	for name, env := range cases {
		_, err := AppConfigFrom(mapLookup(env))
		assert.Error(t, err, name)
	}
}

func TestLoadAppConfigReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("RUPEECALC_TEST_ONLY=1\nOPENAI_MODEL=gpt-4o-mini\n"), 0o600))
	t.Setenv("OPENAI_MODEL", "")
	require.NoError(t, os.Unsetenv("OPENAI_MODEL"))
	t.Setenv("RUPEECALC_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("RUPEECALC_TEST_ONLY"))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "1", os.Getenv("RUPEECALC_TEST_ONLY"))
}

func TestLoadAppConfigMissingFileIsFine(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
