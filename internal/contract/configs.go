package contract

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/hammer/schema"
)

// Default values for configuration.
const (
	DefaultFlushInterval = 5 * time.Minute
	DefaultFrequency     = schema.Daily
	DefaultGraphWidth    = 1200
)

// Config holds the runtime configuration of a command.
// This struct remains the "final, validated" config.
type Config struct {
	Project    string
	RepoPath   string
	ConfigPath string

	// EarliestCommitDate excludes older commits of a new repository when set.
	EarliestCommitDate *time.Time

	Output     schema.OutputMode
	OutputFile string
	Frequency  schema.Frequency
	Width      int // Terminal or chart width override (0 = auto-detect)
	UseColors  bool

	DatabaseBackend schema.DatabaseBackend
	DatabaseConnect string // Please use env var as this is plaintext

	FlushInterval time.Duration
	FullRecompute bool
	LogLevel      slog.Level
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	ProjectStr  string
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	DatabaseBackend string `mapstructure:"db-backend"`
	DatabaseConnect string `mapstructure:"db-connect"`
	LogLevel        string `mapstructure:"log-level"`

	// --- Fields from ingestion commands ---
	FlushInterval string `mapstructure:"flush-interval"`
	FullRecompute bool   `mapstructure:"full-recompute"`

	// --- Fields from initProjectCmd and addRepositoryCmd ---
	RepoConfig         string `mapstructure:"repo-config"`
	EarliestCommitDate string `mapstructure:"earliest-commit-date"`

	// --- Fields from graphCmd and exportCmd ---
	Frequency string `mapstructure:"frequency"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.EarliestCommitDate != nil {
		t := *c.EarliestCommitDate
		clone.EarliestCommitDate = &t
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processIngestion(cfg, input); err != nil {
		return err
	}
	if err := processRepository(cfg, input, now); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		isURL := strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
		if !isURL && !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must be a postgres:// URL or contain 'host=' parameter")
		}
		if !isURL && !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Project = strings.TrimSpace(input.ProjectStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	cfg.Frequency = DefaultFrequency
	if input.Frequency != "" {
		freq, err := schema.ParseFrequency(input.Frequency)
		if err != nil {
			return err
		}
		cfg.Frequency = freq
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.DatabaseBackend = schema.DatabaseBackend(strings.ToLower(input.DatabaseBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.DatabaseBackend]; !ok {
		return fmt.Errorf("invalid database backend '%s'. must be sqlite, mysql, postgresql", input.DatabaseBackend)
	}
	cfg.DatabaseConnect = input.DatabaseConnect
	return ValidateDatabaseConnectionString(cfg.DatabaseBackend, cfg.DatabaseConnect)
}

// processIngestion handles the flush interval and recompute mode.
func processIngestion(cfg *Config, input *ConfigRawInput) error {
	cfg.FullRecompute = input.FullRecompute
	cfg.FlushInterval = DefaultFlushInterval
	if input.FlushInterval != "" {
		interval, err := ParseInterval(input.FlushInterval)
		if err != nil {
			return fmt.Errorf("invalid --flush-interval: %w", err)
		}
		cfg.FlushInterval = interval
	}
	return nil
}

// processRepository resolves the repository path, its classification file and the earliest date.
func processRepository(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if input.RepoPathStr != "" {
		abs, err := filepath.Abs(input.RepoPathStr)
		if err != nil {
			return err
		}
		cfg.RepoPath = filepath.Clean(abs)
	}

	cfg.ConfigPath = ""
	if input.RepoConfig != "" {
		abs, err := filepath.Abs(input.RepoConfig)
		if err != nil {
			return err
		}
		cfg.ConfigPath = abs
	} else if cfg.RepoPath != "" {
		cfg.ConfigPath = filepath.Join(cfg.RepoPath, schema.DefaultConfigFileName)
	}

	cfg.EarliestCommitDate = nil
	if input.EarliestCommitDate != "" {
		t, err := ParseEarliestDate(input.EarliestCommitDate, now)
		if err != nil {
			return err
		}
		cfg.EarliestCommitDate = &t
	}
	return nil
}
