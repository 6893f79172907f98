package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLEETVIZ_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Render.DPI)
	assert.Equal(t, 1000, cfg.Render.ModesWidth)
	assert.Equal(t, 600, cfg.Render.ModesHeight)
	assert.Equal(t, 1500, cfg.Render.StatsWidth)
	assert.Equal(t, 1000, cfg.Render.StatsHeight)
	assert.Empty(t, cfg.OutputPath)
	assert.Empty(t, cfg.ArchivePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetviz.yaml")
	content := `
render:
  dpi: 72
  modes:
    width: 640
log:
  level: debug
  format: json
archive:
  db_path: runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("FLEETVIZ_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 72.0, cfg.Render.DPI)
	assert.Equal(t, 640, cfg.Render.ModesWidth)
	assert.Equal(t, 600, cfg.Render.ModesHeight)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "runs.db", cfg.ArchivePath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLEETVIZ_CONFIG_PATH", "")
	t.Setenv("FLEETVIZ_OUTPUT_PATH", "out.png")
	t.Setenv("FLEETVIZ_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "out.png", cfg.OutputPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_NormalizesLogCase(t *testing.T) {
	t.Setenv("FLEETVIZ_CONFIG_PATH", "")
	t.Setenv("FLEETVIZ_LOG_LEVEL", "DEBUG")
	t.Setenv("FLEETVIZ_LOG_FORMAT", "Json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Render: RenderConfig{DPI: 100, ModesWidth: 1000, ModesHeight: 600, StatsWidth: 1500, StatsHeight: 1000},
			Log:    LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero dpi", mutate: func(c *Config) { c.Render.DPI = 0 }, wantErr: "render.dpi"},
		{name: "negative width", mutate: func(c *Config) { c.Render.StatsWidth = -1 }, wantErr: "render.stats.width"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "invalid log level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
