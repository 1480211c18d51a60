package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data sources for the dashboard rate table.
const (
	DataSourceCSV = "csv"
	DataSourceSQL = "sql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Rate table source
	DataSource  string
	DataDir     string
	DBDriver    string
	DatabaseURL string
	DBYears     []int

	// Live rates
	ExchangeRateAPIKey string
	ExchangeRateAPIURL string
	RateAPITimeout     time.Duration
	RateCacheTTL       time.Duration
	RateAPIRPS         float64

	// Baskets and reports
	BasketConcurrency int
	BasketRateLimit   string
	BasketPresetsFile string
	ChartCacheTTL     time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
	LogFile            string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DATA_SOURCE", DataSourceCSV)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DB_DRIVER", "sqlite3")
	v.SetDefault("DATABASE_URL", "file:currency_rates.db")
	v.SetDefault("DB_YEARS", "")
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("EXCHANGE_RATE_API_URL", "")
	v.SetDefault("RATE_API_TIMEOUT", "10s")
	v.SetDefault("RATE_CACHE_TTL", "10m")
	v.SetDefault("RATE_API_RPS", 5.0)
	v.SetDefault("BASKET_CONCURRENCY", 4)
	v.SetDefault("BASKET_RATE_LIMIT", "30-M")
	v.SetDefault("BASKET_PRESETS_FILE", "baskets.yaml")
	v.SetDefault("CHART_CACHE_TTL", "60s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		DataSource:         strings.ToLower(strings.TrimSpace(v.GetString("DATA_SOURCE"))),
		DataDir:            v.GetString("DATA_DIR"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		ExchangeRateAPIKey: v.GetString("EXCHANGE_RATE_API_KEY"),
		ExchangeRateAPIURL: v.GetString("EXCHANGE_RATE_API_URL"),
		RateAPIRPS:         v.GetFloat64("RATE_API_RPS"),
		BasketConcurrency:  v.GetInt("BASKET_CONCURRENCY"),
		BasketRateLimit:    v.GetString("BASKET_RATE_LIMIT"),
		BasketPresetsFile:  v.GetString("BASKET_PRESETS_FILE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:            v.GetString("LOG_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.DataSource {
	case DataSourceCSV, DataSourceSQL:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want %q or %q", cfg.DataSource, DataSourceCSV, DataSourceSQL)
	}

	var err error
	if cfg.DBYears, err = parseYears(v.GetString("DB_YEARS")); err != nil {
		return nil, err
	}

	cfg.RateAPITimeout = durationOr(v.GetString("RATE_API_TIMEOUT"), 10*time.Second, "RATE_API_TIMEOUT")
	cfg.RateCacheTTL = durationOr(v.GetString("RATE_CACHE_TTL"), 10*time.Minute, "RATE_CACHE_TTL")
	cfg.ChartCacheTTL = durationOr(v.GetString("CHART_CACHE_TTL"), 60*time.Second, "CHART_CACHE_TTL")

	if cfg.BasketConcurrency <= 0 {
		log.Printf("Warning: Invalid value for BASKET_CONCURRENCY (%d). Defaulting to 4.\n", cfg.BasketConcurrency)
		cfg.BasketConcurrency = 4
	}
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Using the open rate endpoint.")
	}

	return cfg, nil
}

// durationOr parses s, falling back to def with a warning when s is invalid.
func durationOr(s string, def time.Duration, key string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		if s != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, s, def)
		}
		return def
	}
	return d
}

// parseYears parses a comma separated list of four digit years.
func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range splitList(s) {
		y, err := strconv.Atoi(part)
		if err != nil || y < 1000 || y > 9999 {
			return nil, fmt.Errorf("invalid year %q in DB_YEARS", part)
		}
		years = append(years, y)
	}
	return years, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
