package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
	LockMemory      = "memory"
	LockRedis       = "redis"
)

// AppConfig gom toàn bộ cấu hình đọc từ env
type AppConfig struct {
	Port              string
	Env               string
	StorageDriver     string
	DB                DBConfig
	Redis             RedisConfig
	LockBackend       string
	LockTimeout       time.Duration
	StorageTimeout    time.Duration
	PendingTTL        time.Duration
	LenientCheckout   bool
	ExpirePendingCron string
	RatingCacheTTL    time.Duration
	JWTSecret         string
	TokenTTL          time.Duration
	LogLevel          string
	LogFormat         string
	NotifyChannel     string
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: %s=%q không hợp lệ, dùng mặc định %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: %s=%q không hợp lệ, dùng mặc định %t", key, v, fallback)
		return fallback
	}
	return b
}

// Load đọc cấu hình, không nạp .env (gọi LoadEnv trước nếu cần).
func Load() AppConfig {
	env := getEnvDefault("ENV", "dev")
	cfg := AppConfig{
		Port:              getEnvDefault("PORT", "8083"),
		Env:               env,
		DB:                dbConfigByEnv(env),
		LockBackend:       getEnvDefault("LOCK_BACKEND", LockMemory),
		LockTimeout:       getDuration("LOCK_TIMEOUT", 5*time.Second),
		StorageTimeout:    getDuration("STORAGE_TIMEOUT", 3*time.Second),
		PendingTTL:        getDuration("PENDING_TTL", 24*time.Hour),
		LenientCheckout:   getBool("LENIENT_CHECKOUT", true),
		ExpirePendingCron: getEnvDefault("EXPIRE_PENDING_CRON", "*/5 * * * *"),
		RatingCacheTTL:    getDuration("RATING_CACHE_TTL", 10*time.Minute),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDuration("TOKEN_TTL", 24*time.Hour),
		LogLevel:          getEnvDefault("LOG_LEVEL", "info"),
		LogFormat:         getEnvDefault("LOG_FORMAT", "json"),
		NotifyChannel:     getEnvDefault("NOTIFY_CHANNEL", "hotel:events"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			User:     os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	defaultDriver := StorageMemory
	if cfg.DB.Host != "" {
		defaultDriver = StoragePostgres
	}
	cfg.StorageDriver = getEnvDefault("STORAGE_DRIVER", defaultDriver)
	return cfg
}
