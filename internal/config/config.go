package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	applog "fintrack/internal/log"
)

type Config struct {
	// Storage
	DataBackend  string
	DataFile     string
	SQLiteDBPath string

	// Reports
	OutputDir string

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Diagnostics
	SummaryBenchIterations int
	LogLevel               string

	// values present in the environment that could not be parsed
	envErrors []string
}

const maxBenchIterations = 1_000_000

func Load() *Config {
	benchIterations, benchErr := getEnvInt("SUMMARY_BENCH_ITERATIONS", 10000)

	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", "json"),
		DataFile:     getEnv("DATA_FILE", "transactions.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		OutputDir: getEnv("OUTPUT_DIR", "."),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transactions"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Transactions"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		SummaryBenchIterations: benchIterations,
		LogLevel:               getEnv("LOG_LEVEL", "warn"),
	}
	if benchErr != nil {
		cfg.envErrors = append(cfg.envErrors, benchErr.Error())
	}
	return cfg
}

// ValidBackends lists the accepted DATA_BACKEND values
var ValidBackends = []string{"json", "sqlite", "memory"}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.envErrors...)

	isValidBackend := false
	for _, backend := range ValidBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, ValidBackends))
	}

	if (c.DataBackend == "json" || c.DataBackend == "memory") && strings.TrimSpace(c.DataFile) == "" {
		errors = append(errors, "data file path cannot be empty when using json or memory backend")
	}

	if c.DataBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		errors = append(errors, "output directory cannot be empty")
	} else if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
		errors = append(errors, fmt.Sprintf("output directory '%s' is not a directory", c.OutputDir))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is set")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for Sheets export")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.SummaryBenchIterations < 0 {
		errors = append(errors, fmt.Sprintf("invalid summary bench iterations %d: must be at least 0", c.SummaryBenchIterations))
	} else if c.SummaryBenchIterations > maxBenchIterations {
		errors = append(errors, fmt.Sprintf("invalid summary bench iterations %d: must be at most %d", c.SummaryBenchIterations, maxBenchIterations))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SheetsEnabled reports whether a Google Sheets export target is configured
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// EnsureOutputDir creates the report directory if needed
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(filepath.Clean(c.OutputDir), 0755); err != nil {
		return fmt.Errorf("create output directory '%s': %w", c.OutputDir, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns defaultValue when key is unset. A set but non-integer
// value also yields defaultValue, together with an error for Validate.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s '%s': must be an integer", key, value)
	}
	return i, nil
}
