package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Init implements the 'ctd init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", ".", "Project directory")
	width := fs.Uint("width", 800, "Window width")
	height := fs.Uint("height", 600, "Window height")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	configPath := filepath.Join(*dir, ConfigFile)
	if _, err := os.Stat(configPath); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", ConfigFile)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", *dir, err)
	}

	config := DefaultConfig()
	config.Window.Width = uint32(*width)
	config.Window.Height = uint32(*height)
	if err := SaveConfig(*dir, config); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", ConfigFile)

	// Create theme.toml if it doesn't exist
	themePath := filepath.Join(*dir, config.Build.ThemeFile)
	if _, err := os.Stat(themePath); os.IsNotExist(err) {
		if err := os.WriteFile(themePath, []byte(defaultThemeToml), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", config.Build.ThemeFile, err)
		}
		fmt.Printf("  ✓ Created %s\n", config.Build.ThemeFile)
	}

	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  ctd theme                       Check the theme file")
	fmt.Println("  ctd classes \"p-4 bg-blue-500\"   Resolve a class string")
	fmt.Println("  ctd layout scene.yaml           Lay out a scene file")

	return nil
}

const defaultThemeToml = `# Centered Theme Configuration
# Values here are merged over the built-in palette and scales.

[theme]

# Custom spacing scale (numbers are pixels, strings may use px or rem)
[theme.spacing]
# 18 = "4.5rem"
# gutter = "24px"

# Custom colors, flat or nested by shade
[theme.colors]
# primary = "#3B82F6"
# secondary = "#10B981"
# [theme.colors.accent]
# 500 = "#F59E0B"

# Custom font sizes in pixels
[theme.fontSize]
# huge = 160

# Custom utility classes
[utilities]
# btn-primary = ["bg-blue-500", "text-white", "px-4", "py-2", "rounded-lg"]
# card = ["bg-white", "rounded-xl", "shadow-lg", "p-6"]
`
