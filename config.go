package centered

import (
	"log/slog"

	"github.com/agiangrant/centered-core/tw"
)

// EngineConfig contains configuration for the engine
type EngineConfig struct {
	// Width and Height are the initial window size offered to the root.
	Width  uint32
	Height uint32

	// Theme is an optional theme source loaded at startup.
	Theme       string
	ThemeFormat tw.Format

	// DarkMode applies dark: variants from the start.
	DarkMode bool

	// Logger receives debug and warning records. Nil discards them.
	Logger *slog.Logger
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Width:       800,
		Height:      600,
		ThemeFormat: tw.FormatTOML,
	}
}
