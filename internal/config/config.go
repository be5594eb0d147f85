package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	JWTExpiry  time.Duration
	GinMode    string
	ListenAddr string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "crmuser"),
		DBPassword: getEnv("DB_PASSWORD", "crmpassword"),
		DBName:     getEnv("DB_NAME", "crm"),
		JWTSecret:  getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTExpiry:  time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24*7)) * time.Hour,
		GinMode:    getEnv("GIN_MODE", "debug"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
