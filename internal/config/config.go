package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jask/declaration/internal/render"
)

// Config holds application configuration.
type Config struct {
	Display DisplayConfig
	Export  ExportConfig
	UI      UIConfig
	Log     LogConfig
}

// DisplayConfig describes the screen the slides are rendered for.
type DisplayConfig struct {
	Width      int
	Height     int
	PixelRatio float64 `mapstructure:"pixel_ratio"`
}

// ExportConfig holds the download location.
type ExportConfig struct {
	Dir string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultPalette int    `mapstructure:"default_palette"`
	Platform       string // instructions tab shown first
}

// LogConfig controls the log file. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// Screen converts the configured display into a render target.
func (c Config) Screen() render.Display {
	return render.Display{Width: c.Display.Width, Height: c.Display.Height, PixelRatio: c.Display.PixelRatio}
}

// Load reads configuration from .env, file and env. Env var overrides use prefix DECLARATION_.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	home := os.Getenv("HOME")

	// default values
	v.SetDefault("display.width", 1920)
	v.SetDefault("display.height", 1080)
	v.SetDefault("display.pixel_ratio", 1.0)
	v.SetDefault("export.dir", filepath.Join(home, "Downloads"))
	v.SetDefault("ui.default_palette", 0)
	v.SetDefault("ui.platform", "Mac")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "declaration", "declaration.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DECLARATION_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "declaration"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DECLARATION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Screen().Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Path is the file Load reads and Save writes.
func Path() string {
	if path := os.Getenv("DECLARATION_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "declaration", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("display.width", cfg.Display.Width)
	v.Set("display.height", cfg.Display.Height)
	v.Set("display.pixel_ratio", cfg.Display.PixelRatio)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("ui.default_palette", cfg.UI.DefaultPalette)
	v.Set("ui.platform", cfg.UI.Platform)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
