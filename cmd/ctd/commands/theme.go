package commands

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/agiangrant/centered-core/tw"
)

// Theme implements the 'ctd theme' command. It validates a theme file and
// prints a summary of what it adds to the defaults.
func Theme(args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	dir := fs.String("dir", ".", "Project directory")
	fs.Parse(args)

	path := fs.Arg(0)
	if path == "" {
		config, err := LoadConfig(*dir)
		if err != nil {
			return err
		}
		path = config.Build.ThemeFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read theme: %w", err)
	}
	theme, err := tw.DecodeTheme(data, tw.FormatForPath(path))
	if err != nil {
		var te *tw.ThemeError
		if errors.As(err, &te) && te.Field != "" {
			return fmt.Errorf("%s: %s: %w", path, te.Field, te.Err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	def := tw.DefaultTheme()
	fmt.Printf("✓ %s is valid\n", path)
	fmt.Printf("  colors      %d (%d custom)\n", len(theme.Colors), added(def.Colors, theme.Colors))
	fmt.Printf("  spacing     %d (%d custom)\n", len(theme.Spacing), added(def.Spacing, theme.Spacing))
	fmt.Printf("  font sizes  %d (%d custom)\n", len(theme.FontSizes), added(def.FontSizes, theme.FontSizes))
	bp := theme.Breakpoints
	fmt.Printf("  breakpoints sm %g, md %g, lg %g, xl %g, 2xl %g\n", bp.SM, bp.MD, bp.LG, bp.XL, bp.XXL)
	fmt.Printf("  utilities   %d\n", len(theme.Utilities))
	for _, name := range slices.Sorted(maps.Keys(theme.Utilities)) {
		fmt.Printf("    %-14s %v\n", name, theme.Utilities[name])
	}
	return nil
}

// added counts the keys of theme that are new or differ from def.
func added[V comparable](def, theme map[string]V) int {
	n := 0
	for k, v := range theme {
		if d, ok := def[k]; !ok || d != v {
			n++
		}
	}
	return n
}
