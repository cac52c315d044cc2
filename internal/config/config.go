package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter the application reads.
type Config struct {
	DatabaseURL  string `env:"DATABASE_URL,required"`
	Port         string `env:"PORT" envDefault:"3000"`
	JWTSecret    string `env:"JWT_SECRET,required"`
	CookieDomain string `env:"DOMAIN"`

	// S3-compatible image store (MinIO in development)
	S3Endpoint        string `env:"S3_ENDPOINT,required"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID,required"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY,required"`
	S3Bucket          string `env:"S3_BUCKET,required"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3UseSSL          bool   `env:"S3_USE_SSL"`
}

// Load reads the environment into a Config. A .env file is loaded first when
// one exists in the working directory.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}
