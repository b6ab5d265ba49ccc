package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	centered "github.com/agiangrant/centered-core"
	"github.com/agiangrant/centered-core/tw"
)

// ConfigFile is the project configuration file name.
const ConfigFile = "centered.toml"

// ProjectConfig represents the centered.toml configuration file
type ProjectConfig struct {
	Window WindowConfig `toml:"window"`
	Build  BuildConfig  `toml:"build"`
}

type WindowConfig struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type BuildConfig struct {
	// Theme file path, TOML or YAML by extension
	ThemeFile string `toml:"theme_file"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Window: WindowConfig{Width: 800, Height: 600},
		Build:  BuildConfig{ThemeFile: "theme.toml"},
	}
}

// LoadConfig loads the project configuration from dir/centered.toml.
// If the file doesn't exist, returns default config
func LoadConfig(dir string) (ProjectConfig, error) {
	config := DefaultConfig()
	path := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for empty values
	def := DefaultConfig()
	if config.Window.Width == 0 {
		config.Window.Width = def.Window.Width
	}
	if config.Window.Height == 0 {
		config.Window.Height = def.Window.Height
	}
	if config.Build.ThemeFile == "" {
		config.Build.ThemeFile = def.Build.ThemeFile
	}

	return config, nil
}

// SaveConfig saves the configuration to dir/centered.toml
func SaveConfig(dir string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// EngineConfig builds the engine configuration for a project in dir. A
// missing theme file leaves the default theme in place.
func (c ProjectConfig) EngineConfig(dir string) (centered.EngineConfig, error) {
	cfg := centered.DefaultEngineConfig()
	cfg.Width = c.Window.Width
	cfg.Height = c.Window.Height

	path := c.Build.ThemeFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg.Theme = string(data)
	cfg.ThemeFormat = tw.FormatForPath(path)
	return cfg, nil
}
