package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Scaleway ScalewayConfig
	Sources  SourcesConfig
	Auth     AuthConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ScalewayConfig holds the text-generation endpoint configuration
type ScalewayConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	RateLimitRPM   int
	RateLimitBurst int
}

// SourcesConfig holds upstream source configuration for the scrapers
type SourcesConfig struct {
	GIFBaseURL       string
	GIFRetentionDays int
	URPLBaseURL      string
	URPLPageSize     int
	GovPLBaseURL     string
	GovPLPageID      string
	PubMedBaseURL    string
	PubMedLimit      int
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	APIToken string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pharmaradar"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Scaleway: ScalewayConfig{
			APIKey:         getEnv("SCALEWAY_API_KEY", ""),
			BaseURL:        getEnv("SCALEWAY_BASE_URL", ""),
			Model:          getEnv("SCALEWAY_MODEL", "qwen/qwen3-235b-a22b-instruct-2507:awq"),
			RateLimitRPM:   getEnvAsInt("SCALEWAY_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("SCALEWAY_RATE_LIMIT_BURST", 5),
		},
		Sources: SourcesConfig{
			GIFBaseURL:       getEnv("GIF_BASE_URL", "https://rdg.ezdrowie.gov.pl/"),
			GIFRetentionDays: getEnvAsInt("GIF_RETENTION_DAYS", 300),
			URPLBaseURL:      getEnv("URPL_BASE_URL", "https://rejestry.ezdrowie.gov.pl/api/rpl/medicinal-products/search/public"),
			URPLPageSize:     getEnvAsInt("URPL_PAGE_SIZE", 25),
			GovPLBaseURL:     getEnv("GOVPL_BASE_URL", "https://www.gov.pl/api/data/registers/search"),
			GovPLPageID:      getEnv("GOVPL_PAGE_ID", "21034488"),
			PubMedBaseURL:    getEnv("PUBMED_BASE_URL", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"),
			PubMedLimit:      getEnvAsInt("PUBMED_LIMIT", 20),
		},
		Auth: AuthConfig{
			APIToken: getEnv("API_TOKEN", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "pharmaradar-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
