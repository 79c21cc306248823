package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all process-level configuration for the scheduling engine.
type Config struct {
	Solver   SolverConfig
	Database DatabaseConfig
	App      AppConfig
}

// SolverConfig holds the CP solver execution budget (spec.md §4.5).
type SolverConfig struct {
	MaxSeconds           float64
	Workers              int
	CandidateTruncation  int
}

// DatabaseConfig holds the audit store configuration.
type DatabaseConfig struct {
	Driver  string // "postgres" or "sqlite"
	Host    string
	Port    int
	User    string
	Password string
	Name    string
	SSLMode string
}

// AppConfig holds cross-cutting application settings.
type AppConfig struct {
	Environment string
	LogLevel    string
}

// ConnectionString returns the database connection string.
func (d DatabaseConfig) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Name // For SQLite, Name is the file path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Load loads configuration from environment variables, falling back to
// sensible defaults for a single-user CLI invocation.
func Load() (*Config, error) {
	cfg := &Config{
		Solver: SolverConfig{
			MaxSeconds:          getEnvFloat("SOLVER_MAX_SECONDS", 5.0),
			Workers:             getEnvInt("SOLVER_WORKERS", 8),
			CandidateTruncation: getEnvInt("CANDIDATE_TRUNCATION", 300),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("AUDIT_DB_DRIVER", "sqlite"),
			Host:     getEnv("AUDIT_DB_HOST", "localhost"),
			Port:     getEnvInt("AUDIT_DB_PORT", 5432),
			User:     getEnv("AUDIT_DB_USER", "agenda"),
			Password: getEnv("AUDIT_DB_PASSWORD", "agenda"),
			Name:     getEnv("AUDIT_DB_DSN", "agenda_audit.db"),
			SSLMode:  getEnv("AUDIT_DB_SSLMODE", "disable"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Solver.MaxSeconds <= 0 {
		return nil, fmt.Errorf("SOLVER_MAX_SECONDS must be positive, got %v", cfg.Solver.MaxSeconds)
	}
	if cfg.Solver.Workers <= 0 {
		return nil, fmt.Errorf("SOLVER_WORKERS must be positive, got %d", cfg.Solver.Workers)
	}
	if cfg.Solver.CandidateTruncation <= 0 {
		return nil, fmt.Errorf("CANDIDATE_TRUNCATION must be positive, got %d", cfg.Solver.CandidateTruncation)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
