package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptFetchBaseURL sets the TED API base URL.
func OptFetchBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidURL("Fetch Base URL", s) {
			c.Fetch.BaseURL = s
		}
	}
}

// OptFetchTimeout sets the HTTP request timeout in seconds.
func OptFetchTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Timeout", i) {
			c.Fetch.Timeout = i
		}
	}
}

// OptFetchDelayMs sets the pause after each request in milliseconds.
// Zero disables the pause.
func OptFetchDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Fetch Delay", i) {
			c.Fetch.DelayMs = i
		}
	}
}

// OptFetchMaxRetries sets the number of attempts per request.
func OptFetchMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Max Retries", i) {
			c.Fetch.MaxRetries = i
		}
	}
}

// OptFetchPageLimit sets the maximum number of domains per accession.
func OptFetchPageLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Page Limit", i) {
			c.Fetch.PageLimit = i
		}
	}
}

// OptDatabasePath sets the path to the embedded SQLite database.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per import transaction.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptEnrichmentAlpha sets the significance threshold.
// It has to be in the (0, 1) interval.
func OptEnrichmentAlpha(f float64) Option {
	return func(c *Config) {
		if isValidProbability("Enrichment Alpha", f) {
			c.Enrichment.Alpha = f
		}
	}
}

// OptEnrichmentUnique sets counting of each feature once per protein.
// Runtime-only field - not in ToOptions().
func OptEnrichmentUnique(b bool) Option {
	return func(c *Config) {
		c.Enrichment.Unique = b
	}
}

// OptJobsNumber sets the number of concurrent TED API requests.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptReferenceDir sets the directory with CATH name tables.
func OptReferenceDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Reference Directory", s) {
			c.ReferenceDir = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
