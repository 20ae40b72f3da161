package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa as configurações do serviço lidas do ambiente
type Config struct {
	Env         string
	ServiceName string
	Port        string
	GinMode     string

	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir      string
	MaxUploadBytes int64

	OTLPEndpoint string
	OTelDisabled bool

	KafkaBrokers []string
	KafkaTopic   string
}

// loadConfig carrega o .env (se existir) e monta a configuração com defaults
func loadConfig() Config {
	// .env é opcional
	_ = godotenv.Load()

	return Config{
		Env:         getEnv("APP_ENV", "production"),
		ServiceName: getEnv("SERVICE_NAME", "sporton-admin"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),

		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseName:     getEnv("DATABASE_NAME", "sporton_db"),

		JWTSecret: getEnv("JWT_SECRET", "Sporton123"),
		TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		OTelDisabled: getEnv("OTEL_SDK_DISABLED", "false") == "true",

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "sporton.transaction-status-changed"),
	}
}

// PoolDSN is the pgxpool connection string, pool sizing included.
func (c Config) PoolDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&pool_max_conns=25&pool_min_conns=5",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
	)
}

// MigrationDSN is the lib/pq keyword form used by database/sql for migrations.
func (c Config) MigrationDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvInt64(key string, defaultValue int64) int64 {
	n, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
