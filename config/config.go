package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	JWTSecret            string
	AllowedOrigins       string
	RoomSweepInterval    time.Duration
	RoomIdleTimeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Port:                 GetEnv("PORT", "8080"),
		DatabaseURL:          GetEnv("DB_URI", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		AllowedOrigins:       GetEnv("ALLOWED_ORIGINS", ""),
		RoomSweepInterval:    time.Duration(GetEnvAsInt("ROOM_SWEEP_INTERVAL_MINUTES", 10)) * time.Minute,
		RoomIdleTimeout:      time.Duration(GetEnvAsInt("ROOM_IDLE_TIMEOUT_MINUTES", 60)) * time.Minute,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
