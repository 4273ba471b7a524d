package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_TTL", "")
	t.Setenv("UPLOAD_CONCURRENCY", "6")

	_, err := Load()
	assert.Error(t, err, "empty JWT_TTL is not a duration")

	t.Setenv("JWT_TTL", "24h")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.CartMergeLines)
}

func TestUploadConcurrencyIsClamped(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_TTL", "1h")

	t.Setenv("UPLOAD_CONCURRENCY", "50")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.UploadConcurrency)

	t.Setenv("UPLOAD_CONCURRENCY", "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.UploadConcurrency)

	t.Setenv("UPLOAD_CONCURRENCY", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("UPLOAD_CONCURRENCY", "6")

	_, err := Load()
	assert.Error(t, err)
}
