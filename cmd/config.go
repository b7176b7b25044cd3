package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr empty disables the capacity cache.
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CapacityCacheTTL time.Duration

	JWTSecret   string
	JWTIssuer   string
	JWTTokenTTL time.Duration

	DefaultStationCapacity int

	NotificationCron      string
	NotificationBatchSize int

	LogLevel string
}

var configDefaults = map[string]any{
	"HTTP_PORT":                "8080",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "postgres",
	"DB_NAME":                  "manufacturing",
	"DB_SSLMODE":               "disable",
	"REDIS_DB":                 0,
	"CAPACITY_CACHE_TTL":       "10m",
	"JWT_ISSUER":               "manufacturing",
	"JWT_TOKEN_TTL":            "12h",
	"DEFAULT_STATION_CAPACITY": 9999,
	"NOTIFICATION_CRON":        "*/30 * * * * *",
	"NOTIFICATION_BATCH_SIZE":  50,
	"LOG_LEVEL":                "info",
}

// LoadConfig reads .env when present, then the environment, falling back
// to defaults.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                v.GetInt("REDIS_DB"),
		CapacityCacheTTL:       v.GetDuration("CAPACITY_CACHE_TTL"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		JWTTokenTTL:            v.GetDuration("JWT_TOKEN_TTL"),
		DefaultStationCapacity: v.GetInt("DEFAULT_STATION_CAPACITY"),
		NotificationCron:       v.GetString("NOTIFICATION_CRON"),
		NotificationBatchSize:  v.GetInt("NOTIFICATION_BATCH_SIZE"),
		LogLevel:               v.GetString("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.DefaultStationCapacity <= 0 {
		errList = append(errList, fmt.Errorf("DEFAULT_STATION_CAPACITY must be positive, got %d", c.DefaultStationCapacity))
	}
	if c.NotificationBatchSize <= 0 {
		errList = append(errList, fmt.Errorf("NOTIFICATION_BATCH_SIZE must be positive, got %d", c.NotificationBatchSize))
	}
	if c.CapacityCacheTTL <= 0 {
		errList = append(errList, errors.New("CAPACITY_CACHE_TTL must be positive"))
	}
	if c.JWTTokenTTL <= 0 {
		errList = append(errList, errors.New("JWT_TOKEN_TTL must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// RequireJWT reports a missing signing secret. Only commands that issue or
// verify tokens need one.
func (c Config) RequireJWT() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
