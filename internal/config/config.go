package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Storage selects the key-value backend: "postgres" or "memory".
	Storage     string
	DatabaseURL string
	TablePrefix string
	// FetchTimeout bounds URL ingestion fetches. Zero disables the timeout.
	FetchTimeout time.Duration
	// LogDir, when set, mirrors logs to timestamped files in that directory.
	LogDir      string
	MaxLogFiles int
	Debug       bool
}

// fileConfig is the optional YAML overlay read from CONFIG_FILE. Values set
// here win over environment defaults but lose to explicit env vars.
type fileConfig struct {
	Port         string `yaml:"port"`
	Environment  string `yaml:"environment"`
	CORSOrigins  string `yaml:"cors_origins"`
	Storage      string `yaml:"storage"`
	DatabaseURL  string `yaml:"database_url"`
	TablePrefix  string `yaml:"table_prefix"`
	FetchTimeout string `yaml:"fetch_timeout"`
	LogDir       string `yaml:"log_dir"`
	MaxLogFiles  int    `yaml:"max_log_files"`
}

func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	env := getEnv("ENVIRONMENT", or(file.Environment, "dev"))

	fetchTimeout, err := parseDuration(getEnv("FETCH_TIMEOUT", or(file.FetchTimeout, "0")))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	return &Config{
		Port:         getEnv("PORT", or(file.Port, "8080")),
		Environment:  env,
		CORSOrigins:  getEnv("CORS_ORIGINS", or(file.CORSOrigins, "http://localhost:3000")),
		Storage:      getEnv("STORAGE", or(file.Storage, "postgres")),
		DatabaseURL:  getEnv("DATABASE_URL", file.DatabaseURL),
		TablePrefix:  getEnv("TABLE_PREFIX", or(file.TablePrefix, tablePrefix(env))),
		FetchTimeout: fetchTimeout,
		LogDir:       getEnv("LOG_DIR", file.LogDir),
		MaxLogFiles:  maxLogFiles(file.MaxLogFiles),
		Debug:        getEnv("DEBUG", defaultDebug(env)) == "true",
	}, nil
}

func maxLogFiles(fromFile int) int {
	if s := os.Getenv("MAX_LOG_FILES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	if fromFile > 0 {
		return fromFile
	}
	return 10
}

// parseDuration accepts either a Go duration string or a bare number of
// seconds, matching how deployments historically set timeouts.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// defaultDebug returns the default debug setting based on environment
func defaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// tablePrefix returns the table prefix based on environment
func tablePrefix(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
