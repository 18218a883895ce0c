package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Addr           string
	ShopAPIURL     string
	RedisURL       string
	SessionTTL     string
	RequestTimeout string
	Env            string
}

// Load reads configuration from the .env file and environment.
// ShopAPIURL is the single configured base URL for the shop backend;
// nothing is ever derived from the page origin.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Addr:           getEnv("STOREFRONT_ADDR", ":8080"),
		ShopAPIURL:     getEnv("SHOP_API_URL", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:     getEnv("SESSION_TTL", "24h"),
		RequestTimeout: getEnv("REQUEST_TIMEOUT", "10s"),
		Env:            getEnv("ENV", "development"),
	}
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if fallback == "" {
		log.Fatalf("FATAL: Environment variable %s is not set.", key)
	}
	return fallback
}
