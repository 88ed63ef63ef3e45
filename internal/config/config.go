package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the server and the CLI
type Config struct {
	LogLevel  string
	LogFormat string // json or console
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	HTTPTimeout       time.Duration // per request
	UserAgent         string
	CacheTTL          time.Duration // overrides every provider TTL when set
	DetailConcurrency int
	WarmupSchedule    string   // cron spec; empty disables warm-up
	Providers         []string // enabled provider names; empty enables all

	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
		Query   string
		Where   string
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
	}
	Sheets struct {
		CredentialsPath string
	}
}

// AdzunaEnabled reports whether Adzuna credentials are configured.
func (c Config) AdzunaEnabled() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}

// Neo4jEnabled reports whether a graph database is configured.
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// ProviderEnabled reports whether name is selected by PROVIDERS.
func (c Config) ProviderEnabled(name string) bool {
	if len(c.Providers) == 0 {
		return true
	}
	for _, p := range c.Providers {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Load populates config from environment variables. Values from .env.local
// and .env fill in variables that are not already set; ENV_FILE names a single
// file to use instead.
func Load() (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogLevel:          "info",
		LogFormat:         "json",
		Host:              "0.0.0.0",
		Port:              "8080",
		HTTPTimeout:       15 * time.Second,
		DetailConcurrency: 8,
		WarmupSchedule:    "@every 30m",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	var problems []string

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("HTTP_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.HTTPTimeout = d
		}
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("CACHE_TTL: invalid duration %q", v))
		} else {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("DETAIL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("DETAIL_CONCURRENCY: invalid positive integer %q", v))
		} else {
			cfg.DetailConcurrency = n
		}
	}

	if v, ok := os.LookupEnv("WARMUP_SCHEDULE"); ok {
		cfg.WarmupSchedule = strings.TrimSpace(v)
	}

	cfg.UserAgent = os.Getenv("USER_AGENT")

	if v := os.Getenv("PROVIDERS"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Providers = append(cfg.Providers, name)
			}
		}
	}

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.Country = envOr("ADZUNA_COUNTRY", "us")
	cfg.Adzuna.Query = envOr("ADZUNA_QUERY", "software engineer")
	cfg.Adzuna.Where = os.Getenv("ADZUNA_WHERE")

	if (cfg.Adzuna.AppID == "") != (cfg.Adzuna.AppKey == "") {
		problems = append(problems, "ADZUNA_APP_ID and ADZUNA_APP_KEY must be set together")
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	if cfg.Neo4j.URI != "" {
		var missingVars []string

		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}

		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}

		if len(missingVars) > 0 {
			problems = append(problems, fmt.Sprintf("NEO4J_URI is set but missing: %s", strings.Join(missingVars, ", ")))
		}
	}

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
