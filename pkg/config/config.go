// Package config provides configuration management for cathapult.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination
//   - Fetch: base_url, timeout, delay_ms, max_retries, page_limit
//   - Database: path, batch_size
//   - Enrichment: alpha
//   - General: jobs_number, reference_dir
//
// Runtime-only fields (CLI flags only):
//   - Enrichment.Unique (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CATHAPULT_ prefix with underscores for nesting:
//
//	CATHAPULT_DATABASE_PATH=/data/ted/summary.sqlite
//	CATHAPULT_FETCH_DELAY_MS=250
//	CATHAPULT_LOG_LEVEL=debug
//	CATHAPULT_JOBS_NUMBER=4
package config

import (
	"runtime"
)

// Config represents the complete cathapult configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Fetch contains settings of the TED API client.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Database contains settings of the embedded bulk summary database.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Enrichment contains settings of the odds-ratio analysis.
	Enrichment EnrichmentConfig `mapstructure:"enrichment" yaml:"enrichment"`

	// JobsNumber is the number of concurrent requests to the TED API.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// ReferenceDir contains cath-names.txt and cath-superfamily-list.txt.
	// If empty, DataDir(HomeDir) is used.
	ReferenceDir string `mapstructure:"reference_dir" yaml:"reference_dir"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// FetchConfig contains settings for downloading domain summaries.
type FetchConfig struct {
	// BaseURL of the TED API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout of a single HTTP request in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// DelayMs is a pause after each successful request, in milliseconds.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// MaxRetries is the number of attempts for a request that failed with
	// a transport error or a 5xx status.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// PageLimit is the maximum number of domains requested per accession.
	PageLimit int `mapstructure:"page_limit" yaml:"page_limit"`
}

// DatabaseConfig contains settings of the embedded SQLite database that
// holds a bulk TED domain summary.
type DatabaseConfig struct {
	// Path to the SQLite file. When empty, the path is derived from the
	// bulk summary file name.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize defines the number of rows inserted per transaction
	// during import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// EnrichmentConfig contains settings of the odds-ratio analysis.
type EnrichmentConfig struct {
	// Alpha is the significance threshold for plot coloring and for the
	// Benjamini-Hochberg reject flags.
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`

	// Unique counts each feature only once per protein.
	// Runtime-only field.
	Unique bool `mapstructure:"unique" yaml:"unique"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Fetch: FetchConfig{
			BaseURL:    "https://ted.cathdb.info/api/v1",
			Timeout:    10,
			DelayMs:    100,
			MaxRetries: 3,
			PageLimit:  100,
		},
		Database: DatabaseConfig{
			BatchSize: 50_000,
		},
		Enrichment: EnrichmentConfig{
			Alpha: 0.05,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
