package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for fleetviz
type Config struct {
	Render      RenderConfig
	OutputPath  string // write a PNG here instead of opening a window
	ArchivePath string // SQLite run archive; empty disables archiving
	Log         LogConfig
}

// RenderConfig holds figure sizes in pixels
type RenderConfig struct {
	DPI         float64
	ModesWidth  int
	ModesHeight int
	StatsWidth  int
	StatsHeight int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("render.dpi", 100)
	v.SetDefault("render.modes.width", 1000)
	v.SetDefault("render.modes.height", 600)
	v.SetDefault("render.stats.width", 1500)
	v.SetDefault("render.stats.height", 1000)
	v.SetDefault("output.path", "")
	v.SetDefault("archive.db_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/fleetviz")
	v.AddConfigPath(".")

	if configPath := os.Getenv("FLEETVIZ_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	v.SetEnvPrefix("FLEETVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Render: RenderConfig{
			DPI:         v.GetFloat64("render.dpi"),
			ModesWidth:  v.GetInt("render.modes.width"),
			ModesHeight: v.GetInt("render.modes.height"),
			StatsWidth:  v.GetInt("render.stats.width"),
			StatsHeight: v.GetInt("render.stats.height"),
		},
		OutputPath:  v.GetString("output.path"),
		ArchivePath: v.GetString("archive.db_path"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Render.DPI <= 0 {
		return fmt.Errorf("render.dpi must be greater than 0")
	}

	sizes := map[string]int{
		"render.modes.width":  cfg.Render.ModesWidth,
		"render.modes.height": cfg.Render.ModesHeight,
		"render.stats.width":  cfg.Render.StatsWidth,
		"render.stats.height": cfg.Render.StatsHeight,
	}
	for key, size := range sizes {
		if size <= 0 {
			return fmt.Errorf("%s must be greater than 0", key)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
