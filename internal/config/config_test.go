package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SLOT_BACKEND", "SLOT_NAME", "USE_KAFKA", "KAFKA_BROKERS", "LOAD_DELAY", "HTTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, BackendSQLite, cfg.SlotBackend)
	assert.Equal(t, "tasks", cfg.SlotName)
	assert.False(t, cfg.UseKafka)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Second, cfg.LoadDelay)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SLOT_BACKEND", "Redis")
	t.Setenv("USE_KAFKA", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LOAD_DELAY", "0s")

	cfg := LoadConfig()

	assert.Equal(t, BackendRedis, cfg.SlotBackend)
	assert.True(t, cfg.UseKafka)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Duration(0), cfg.LoadDelay)
}

func TestLoadConfig_NonPositiveCacheTTLFallsBack(t *testing.T) {
	for _, v := range []string{"0s", "-5m"} {
		t.Setenv("CACHE_TTL", v)

		cfg := LoadConfig()

		assert.Equal(t, 5*time.Minute, cfg.CacheTTL, "CACHE_TTL=%s", v)
	}
}
