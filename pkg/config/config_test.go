package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cathapult/cathapult/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "cathapult"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "cathapult", "data"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "cathapult", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "cathapult", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, "https://ted.cathdb.info/api/v1", cfg.Fetch.BaseURL)
	assert.Equal(t, 10, cfg.Fetch.Timeout)
	assert.Equal(t, 100, cfg.Fetch.DelayMs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 100, cfg.Fetch.PageLimit)

	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, 50_000, cfg.Database.BatchSize)

	assert.Equal(t, 0.05, cfg.Enrichment.Alpha)
	assert.False(t, cfg.Enrichment.Unique)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptEnrichmentAlpha(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"valid", 0.01, 0.01},
		{"zero rejected", 0, 0.05},
		{"one rejected", 1, 0.05},
		{"negative rejected", -0.2, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptEnrichmentAlpha(tt.input)})
			assert.Equal(t, tt.want, cfg.Enrichment.Alpha)
		})
	}
}

func TestOptFetchBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims slash", "http://localhost:8080/api/", "http://localhost:8080/api"},
		{"rejects scheme", "ftp://example.org", "https://ted.cathdb.info/api/v1"},
		{"rejects empty", "   ", "https://ted.cathdb.info/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptFetchBaseURL(tt.input)})
			assert.Equal(t, tt.want, cfg.Fetch.BaseURL)
		})
	}
}

func TestOptFetchDelayMs(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptFetchDelayMs(0)})
	assert.Equal(t, 0, cfg.Fetch.DelayMs, "zero delay is allowed")

	cfg.Update([]config.Option{config.OptFetchDelayMs(-5)})
	assert.Equal(t, 0, cfg.Fetch.DelayMs, "negative delay is ignored")
}

func TestOptLogEnums(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel(" DEBUG "),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptIntsRejectNonPositive(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptJobsNumber(0),
		config.OptDatabaseBatchSize(-1),
		config.OptFetchTimeout(0),
		config.OptFetchMaxRetries(0),
		config.OptFetchPageLimit(-10),
	})
	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	assert.Equal(t, 50_000, cfg.Database.BatchSize)
	assert.Equal(t, 10, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 100, cfg.Fetch.PageLimit)
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptLogLevel("warn"),
		config.OptFetchBaseURL("http://127.0.0.1:9000"),
		config.OptFetchDelayMs(5),
		config.OptDatabasePath("/tmp/ted.sqlite"),
		config.OptDatabaseBatchSize(1000),
		config.OptEnrichmentAlpha(0.1),
		config.OptJobsNumber(2),
		config.OptReferenceDir("/opt/cath"),
		config.OptEnrichmentUnique(true),
		config.OptHomeDir("/home/test"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "warn", dst.Log.Level)
	assert.Equal(t, "http://127.0.0.1:9000", dst.Fetch.BaseURL)
	assert.Equal(t, 5, dst.Fetch.DelayMs)
	assert.Equal(t, "/tmp/ted.sqlite", dst.Database.Path)
	assert.Equal(t, 1000, dst.Database.BatchSize)
	assert.Equal(t, 0.1, dst.Enrichment.Alpha)
	assert.Equal(t, 2, dst.JobsNumber)
	assert.Equal(t, "/opt/cath", dst.ReferenceDir)

	// runtime-only fields are not carried over
	assert.False(t, dst.Enrichment.Unique)
	assert.Empty(t, dst.HomeDir)
}

func TestReferencePaths(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/u")})

	names, supers := cfg.ReferencePaths()
	dataDir := filepath.Join("/home/u", ".local", "share", "cathapult", "data")
	assert.Equal(t, filepath.Join(dataDir, "cath-names.txt"), names)
	assert.Equal(t, filepath.Join(dataDir, "cath-superfamily-list.txt"), supers)

	cfg.Update([]config.Option{config.OptReferenceDir("/opt/cath")})
	names, supers = cfg.ReferencePaths()
	assert.Equal(t, filepath.Join("/opt/cath", "cath-names.txt"), names)
	assert.Equal(t, filepath.Join("/opt/cath", "cath-superfamily-list.txt"), supers)
}
