package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	for _, key := range []string{"PORT", "JWT_SECRET", "JWT_TTL", "KAFKA_BROKERS", "MAX_UPLOAD_BYTES", "OTEL_SDK_DISABLED"} {
		t.Setenv(key, "")
	}

	// Act
	cfg := loadConfig()

	// Assert
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Sporton123", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.OTelDisabled)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OTEL_SDK_DISABLED", "true")
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_NAME", "shop")

	// Act
	cfg := loadConfig()

	// Assert
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.OTelDisabled)
	assert.Contains(t, cfg.PoolDSN(), "@db:5432/shop?")
	assert.Contains(t, cfg.MigrationDSN(), "host=db")
	assert.Contains(t, cfg.MigrationDSN(), "dbname=shop")
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	// Arrange
	t.Setenv("JWT_TTL", "tomorrow")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	// Act
	cfg := loadConfig()

	// Assert
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}
