// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLConfig holds connection settings for the relational target.
type MySQLConfig struct {
	Host     string
	User     string
	Password string
	Database string
	Port     int // default 3306
}

// DSN formats the connection string for the go-sql-driver/mysql driver.
func (m *MySQLConfig) DSN() string {
	c := mysql.NewConfig()
	c.User = m.User
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%d", m.Host, m.Port)
	c.DBName = m.Database
	return c.FormatDSN()
}

// Validate checks that the required MySQL fields are set.
func (m *MySQLConfig) Validate() error {
	if m.Host == "" {
		return fmt.Errorf("MYSQL_HOST is required")
	}
	if m.User == "" {
		return fmt.Errorf("MYSQL_USER is required")
	}
	if m.Database == "" {
		return fmt.Errorf("MYSQL_DATABASE is required")
	}
	return nil
}

// SourceSpec names one source collection and the staging prefix its pages
// are written under.
type SourceSpec struct {
	Collection string
	Prefix     string
}

// Config holds configuration for the sync pipeline and the staging ingester.
type Config struct {
	// AWS credentials are optional — when unset the SDK's default chain is
	// used (instance profile, SSO, shared config).
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSSessionToken    string

	CatalogDatabase string // logical catalog database queried (default "catalogo")
	ResultBucket    string // bucket where the engine persists query results
	StagingBucket   string // bucket the ingester stages raw pages into

	MySQL MySQLConfig

	PollMaxAttempts int           // status polls per query (default 10)
	PollInterval    time.Duration // pause between polls (default 5s)

	PlanPath string // optional YAML sync-plan file overriding the built-ins
	LogLevel string // debug, info, warn, error (default "info")

	// Sources are the collections the ingester stages with --all, parsed
	// from SOURCE_COLLECTIONS as "collection=prefix" pairs.
	Sources []SourceSpec
}

// OutputLocation returns the engine result location as an s3:// URI.
func (c *Config) OutputLocation() string {
	return "s3://" + c.ResultBucket + "/"
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the preconditions for entering the sync loop. A failure
// here aborts the whole process before any entity kind is attempted.
func (c *Config) Validate() error {
	if c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.ResultBucket == "" {
		return fmt.Errorf("RESULT_BUCKET is required")
	}
	return c.MySQL.Validate()
}

// ValidateIngest checks the preconditions for the staging ingester.
func (c *Config) ValidateIngest() error {
	if c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.StagingBucket == "" {
		return fmt.Errorf("STAGING_BUCKET is required")
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSSessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		CatalogDatabase:    os.Getenv("CATALOG_DATABASE"),
		ResultBucket:       os.Getenv("RESULT_BUCKET"),
		StagingBucket:      os.Getenv("STAGING_BUCKET"),
		PlanPath:           os.Getenv("SYNC_PLAN_PATH"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		MySQL: MySQLConfig{
			Host:     os.Getenv("MYSQL_HOST"),
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Database: os.Getenv("MYSQL_DATABASE"),
		},
	}

	if v := os.Getenv("MYSQL_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MYSQL_PORT: %w", err)
		}
		cfg.MySQL.Port = n
	}
	if v := os.Getenv("POLL_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid POLL_MAX_ATTEMPTS: %q", v)
		}
		cfg.PollMaxAttempts = n
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %q", v)
		}
		cfg.PollInterval = d
	}
	if v := os.Getenv("SOURCE_COLLECTIONS"); v != "" {
		sources, err := parseSources(v)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}

	// Defaults
	if cfg.CatalogDatabase == "" {
		cfg.CatalogDatabase = "catalogo"
	}
	if cfg.MySQL.Port == 0 {
		cfg.MySQL.Port = 3306
	}
	if cfg.PollMaxAttempts == 0 {
		cfg.PollMaxAttempts = 10
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// parseSources parses "collection=prefix" pairs separated by commas.
func parseSources(v string) ([]SourceSpec, error) {
	var out []SourceSpec
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		collection, prefix, ok := strings.Cut(part, "=")
		collection = strings.TrimSpace(collection)
		prefix = strings.TrimSpace(prefix)
		if !ok || collection == "" || prefix == "" {
			return nil, fmt.Errorf("invalid SOURCE_COLLECTIONS entry %q (want collection=prefix)", part)
		}
		out = append(out, SourceSpec{Collection: collection, Prefix: prefix})
	}
	return out, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
