package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cathapult/cathapult/pkg/config"
	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	defer slog.SetDefault(slog.Default())

	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}
	logger, err := Init(dir, cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Debug("odds ratio", "features", 12)
	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"odds ratio"`)
	assert.Contains(t, string(content), `"features":12`)
}

func TestInitMissingDir(t *testing.T) {
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	_, err := Init(filepath.Join(t.TempDir(), "no", "such"), cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format  string
		level   string
		want    string
		skipped bool
	}{
		{format: "json", level: "info", want: `"msg":"hello"`},
		{format: "text", level: "info", want: "msg=hello"},
		{format: "tint", level: "info", want: "msg=hello"},
		{format: "unknown", level: "info", want: `"msg":"hello"`},
		{format: "text", level: "error", skipped: true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		cfg := config.LogConfig{Format: tt.format, Level: tt.level}
		slog.New(newHandler(&buf, cfg)).Info("hello")
		if tt.skipped {
			assert.Empty(t, buf.String())
			continue
		}
		assert.Contains(t, buf.String(), tt.want, tt.format)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
