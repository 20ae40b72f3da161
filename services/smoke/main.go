package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	baseURL := getEnv("SMOKE_BASE_URL", "http://localhost:8080")
	creds := Credentials{
		Name:     getEnv("SMOKE_ADMIN_NAME", "Admin"),
		Email:    getEnv("SMOKE_ADMIN_EMAIL", "admin@sporton.test"),
		Password: getEnv("SMOKE_ADMIN_PASSWORD", "admin123"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info("🚀 [SMOKE] starting", zap.String("base_url", baseURL))
	if err := runScenario(ctx, NewClient(baseURL), creds, logger); err != nil {
		logger.Fatal("❌ [SMOKE] failed", zap.Error(err))
	}
	logger.Info("✅ [SMOKE] all checks passed")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
