package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/sizepos"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.Equal(t, sizepos.AlignStart, cfg.List.AlignValue())
	assert.False(t, cfg.List.Horizontal())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
version: "1.2.0"
list:
  estimated_item_size: 4
  overscan: 7
  align: center
  direction: horizontal
  snap: true
  snap_delay: 250ms
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 4, cfg.List.EstimatedItemSize, 1e-9)
	assert.Equal(t, 7, cfg.List.Overscan)
	assert.Equal(t, sizepos.AlignCenter, cfg.List.AlignValue())
	assert.True(t, cfg.List.Horizontal())
	assert.True(t, cfg.List.Snap)
	assert.Equal(t, 250*time.Millisecond, cfg.List.SnapDelay)
	assert.True(t, cfg.List.Wrap, "unset fields keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "list:\n  overscan: 2\n")
	t.Setenv(config.EnvOverscan, "9")
	t.Setenv(config.EnvAlign, "end")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.List.Overscan)
	assert.Equal(t, sizepos.AlignEnd, cfg.List.AlignValue())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "unsupported major version",
			body:    "version: \"2.0.0\"\n",
			wantErr: config.ErrUnsupportedSchema,
		},
		{
			name:    "malformed version",
			body:    "version: banana\n",
			wantErr: config.ErrUnsupportedSchema,
		},
		{
			name:    "zero estimated size",
			body:    "list:\n  estimated_item_size: 0\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "negative overscan",
			body:    "list:\n  overscan: -1\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "unknown align",
			body:    "list:\n  align: middle\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "unknown direction",
			body:    "list:\n  direction: diagonal\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "non-numeric overscan env",
			body:    "",
			env:     map[string]string{config.EnvOverscan: "lots"},
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "list: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.DefaultConfig()
	cfg.List.Overscan = 11
	cfg.List.SnapDelay = 2 * time.Second

	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "/from/env.yaml")
	assert.Equal(t, "/from/flag.yaml", config.ResolvePath("/from/flag.yaml"))
	assert.Equal(t, "/from/env.yaml", config.ResolvePath(""))

	t.Setenv(config.EnvConfigPath, "")
	assert.Equal(t, config.DefaultPath(), config.ResolvePath(""))
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.True(t, got.Caller)

	lc.File = "/tmp/vlist.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/vlist.log", got.File)
	assert.Equal(t, "debug", got.Level)

	assert.False(t, config.LoggingConfig{Level: "info"}.ToLoggingConfig().Caller)
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.FromContext(context.Background()))

	cfg := config.DefaultConfig()
	cfg.List.Overscan = 9
	ctx := config.ContextWithConfig(context.Background(), cfg)

	assert.Same(t, cfg, config.FromContext(ctx))
}
