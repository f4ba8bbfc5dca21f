package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"food-storefront/storage"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	// JWTSecret signs the profile session cookie.
	JWTSecret []byte

	StoreDriver string // sqlite or redis
	DBPath      string
	RedisAddr   string
	SessionTTL  time.Duration

	APIURL     string
	APITimeout time.Duration

	CatalogSource        string // static or api
	PlacementMode        string // simulated or api
	PlacementDelay       time.Duration
	// PlacementConcurrency caps orders being placed at once across all profiles.
	PlacementConcurrency int64
	TrackingSource       string // ticker or poll
	TrackingInterval     time.Duration

	KafkaBroker string
	KafkaTopic  string

	PublicURL        string
	CORSAllowOrigins []string
}

func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: []byte(getEnv("JWT_SECRET", "food_storefront_session_secret")),

		StoreDriver: getEnv("STORE_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "storefront.db"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:  parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),

		APIURL:     getEnv("API_URL", "http://localhost:5001/api"),
		APITimeout: parseDuration(getEnv("API_TIMEOUT", "10s"), 10*time.Second),

		CatalogSource:        getEnv("CATALOG_SOURCE", "static"),
		PlacementMode:        getEnv("PLACEMENT_MODE", "simulated"),
		PlacementDelay:       parseDuration(getEnv("PLACEMENT_DELAY", "2s"), 2*time.Second),
		PlacementConcurrency: parseInt(getEnv("PLACEMENT_CONCURRENCY", "16"), 16),
		TrackingSource:       getEnv("TRACKING_SOURCE", "ticker"),
		TrackingInterval:     parseDuration(getEnv("TRACKING_INTERVAL", "10s"), 10*time.Second),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "orders.placed"),

		PublicURL:        strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:5173"), "/"),
		CORSAllowOrigins: splitCSV(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}
}

// InitDB opens the sqlite database and migrates the session table. ":memory:"
// is pinned to a single connection so every query sees the same database.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := storage.NewGormStore(db).Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func InitRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int64) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
