package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string
	ServerHost string // Swagger host 설정용
	LogLevel   string

	// Database
	DatabaseDriver      string // postgres | sqlite
	DatabaseURL         string
	DBMaxOpenConns      int
	DBMaxIdleConns      int
	DBConnMaxLifetime   time.Duration
	DBConnectAttempts   uint
	DBPoolStatsInterval time.Duration

	// Session
	SessionSecretKey   string
	SessionExpireHours int
	SessionCookieName  string

	// Storefront
	DefaultImageURL               string
	DeliveryZonesFailurePolicy    string
	FeaturedProductsFailurePolicy string
	ProductsFailurePolicy         string
	CategoriesFailurePolicy       string

	// Observability
	MetricsEnabled bool
	OTelEndpoint   string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),
		ServerHost: getEnv("SERVER_HOST", "localhost:3000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		// Database - DATABASE_URL 우선, 없으면 개별 환경변수로 구성
		DatabaseDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:         getDatabaseURL(),
		DBMaxOpenConns:      getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:      getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime:   getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		DBConnectAttempts:   uint(getEnvAsInt("DB_CONNECT_ATTEMPTS", 5)),
		DBPoolStatsInterval: getEnvAsDuration("DB_POOL_STATS_INTERVAL", 15*time.Second),

		// Session
		SessionSecretKey:   getEnv("SESSION_SECRET_KEY", ""),
		SessionExpireHours: getEnvAsInt("SESSION_EXPIRE_HOURS", 24),
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "session"),

		// Storefront
		DefaultImageURL:               getEnv("DEFAULT_IMAGE_URL", "/image.jpg"),
		DeliveryZonesFailurePolicy:    getEnv("DELIVERY_ZONES_FAILURE_POLICY", "degrade"),
		FeaturedProductsFailurePolicy: getEnv("FEATURED_PRODUCTS_FAILURE_POLICY", "degrade"),
		ProductsFailurePolicy:         getEnv("PRODUCTS_FAILURE_POLICY", "degrade"),
		CategoriesFailurePolicy:       getEnv("CATEGORIES_FAILURE_POLICY", "degrade"),

		// Observability
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		OTelEndpoint:   getEnvWithFallback("OTEL_ENDPOINT", "SIGNOZ_ENDPOINT", ""),
	}
}

// IsDevelopment reports whether the server runs with development defaults
func (c *Config) IsDevelopment() bool {
	return c.ServerEnv == "development"
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.SessionSecretKey == "" {
		return fmt.Errorf("SESSION_SECRET_KEY is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	if c.DBPoolStatsInterval <= 0 {
		return fmt.Errorf("DB_POOL_STATS_INTERVAL must be positive, got %s", c.DBPoolStatsInterval)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvWithFallback tries primary key first, then fallback key
func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value, exists := os.LookupEnv(primary); exists && value != "" {
		return value
	}
	if value, exists := os.LookupEnv(fallback); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	// 1. DATABASE_URL이 있으면 그대로 사용
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// sqlite는 파일 경로만 필요
	if strings.ToLower(os.Getenv("DB_DRIVER")) == "sqlite" {
		return getEnv("SQLITE_PATH", "storefront.db")
	}

	// 2. 개별 환경변수로 구성
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "storefront")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
