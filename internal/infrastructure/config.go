package infrastructure

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeforge/backend/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Codeforces CodeforcesConfig
	Standings  StandingsConfig
	Telemetry  TelemetryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// CodeforcesConfig holds external judge API configuration
type CodeforcesConfig struct {
	BaseURL          string
	SubmissionWindow int
	RequestTimeout   time.Duration
}

// StandingsConfig holds scoreboard computation configuration
type StandingsConfig struct {
	// PenaltyPerWrong is the minutes charged per failed attempt preceding a
	// problem's first acceptance.
	PenaltyPerWrong int
	// MaxConcurrentFetches caps in-flight judge requests during a leaderboard
	// build so the rate-limited API is not hammered.
	MaxConcurrentFetches int
	// BuildTimeout is the overall deadline for one leaderboard build across
	// all participant fetches.
	BuildTimeout time.Duration
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	MetricsEndpoint string
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() *Config {
	// Optional .env for local development; real environments set variables directly
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 60)) * time.Second,
			Environment:  getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "codeforge"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Codeforces: CodeforcesConfig{
			BaseURL:          getEnv("CODEFORCES_BASE_URL", "https://codeforces.com/api"),
			SubmissionWindow: getEnvInt("CODEFORCES_SUBMISSION_WINDOW", 50),
			RequestTimeout:   time.Duration(getEnvInt("CODEFORCES_REQUEST_TIMEOUT", 10)) * time.Second,
		},
		Standings: StandingsConfig{
			PenaltyPerWrong:      getEnvInt("STANDINGS_PENALTY_PER_WRONG", domain.DefaultPenaltyPerWrong),
			MaxConcurrentFetches: getEnvInt("STANDINGS_MAX_CONCURRENT_FETCHES", 4),
			BuildTimeout:         time.Duration(getEnvInt("STANDINGS_BUILD_TIMEOUT", 30)) * time.Second,
		},
		Telemetry: TelemetryConfig{
			Enabled:         getEnvBool("TELEMETRY_ENABLED", true),
			ServiceName:     getEnv("SERVICE_NAME", "codeforge-api"),
			ServiceVersion:  getEnv("SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://otel-collector:4318"),
			MetricsEndpoint: getEnv("METRICS_ENDPOINT", "/metrics"),
		},
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
