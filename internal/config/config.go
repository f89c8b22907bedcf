package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	YouTube YouTubeConfig
	API     APIConfig
}

type ServerConfig struct {
	Port      string
	Host      string
	StaticDir string
}

type GeminiConfig struct {
	APIKey         string
	RequestTimeout time.Duration
}

type YouTubeConfig struct {
	FetchTimeout time.Duration
}

type APIConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.StaticDir = getEnv("STATIC_DIR", "./web")

	// Gemini configuration
	cfg.Gemini.APIKey = getEnvRequired("GEMINI_API_KEY")
	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_REQUEST_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_REQUEST_TIMEOUT: %w", err)
	}
	cfg.Gemini.RequestTimeout = geminiTimeout

	// YouTube configuration
	fetchTimeout, err := time.ParseDuration(getEnv("YOUTUBE_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_FETCH_TIMEOUT: %w", err)
	}
	cfg.YouTube.FetchTimeout = fetchTimeout

	// API configuration
	cfg.API.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", 5)
	cfg.API.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
