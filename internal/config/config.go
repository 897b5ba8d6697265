package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrInvalidStore     = errors.New("STORE must be postgres or memory")
	ErrInvalidDriver    = errors.New("DB_DRIVER must be pgx or postgres")
)

type Config struct {
	Port string

	Store     string
	DBDriver  string
	DBUser    string
	DBPass    string
	DBHost    string
	DBPort    string
	DBName    string
	DBSSLMode string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	DefaultTimezone *time.Location
	FreeHabitLimit  int
	RateLimit       int

	LogLevel  string
	LogFormat string

	SeedHabitsFile string
	SeedHabits     []domain.HabitTemplate
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Store:          strings.ToLower(getEnv("STORE", StorePostgres)),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "pgx")),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASSWORD"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         os.Getenv("DB_NAME"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      os.Getenv("JWT_ISSUER"),
		JWTAudience:    os.Getenv("JWT_AUDIENCE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		SeedHabitsFile: os.Getenv("SEED_HABITS_FILE"),
	}

	var err error
	if cfg.RedisEnabled, err = getBool("REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.FreeHabitLimit, err = getInt("FREE_HABIT_LIMIT", domain.DefaultFreeHabitLimit); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}

	tz := getEnv("DEFAULT_TIMEZONE", "UTC")
	if cfg.DefaultTimezone, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", tz, err)
	}

	if cfg.SeedHabitsFile != "" {
		if cfg.SeedHabits, err = LoadSeedHabits(cfg.SeedHabitsFile); err != nil {
			return nil, err
		}
	} else {
		cfg.SeedHabits = DefaultSeedHabits()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return ErrInvalidStore
	}
	if c.DBDriver != "pgx" && c.DBDriver != "postgres" {
		return ErrInvalidDriver
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.FreeHabitLimit < 0 {
		return fmt.Errorf("FREE_HABIT_LIMIT must not be negative, got %d", c.FreeHabitLimit)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit)
	}
	return nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
