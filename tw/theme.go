package tw

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrMacroCycle is reported when a utility macro expands, directly or
// through other macros, into itself.
var ErrMacroCycle = errors.New("utility macro cycle")

// Format is the encoding of a theme source.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension. Anything that is not
// .yaml or .yml is treated as TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ThemeError describes why a theme source was rejected.
type ThemeError struct {
	Source Format
	Field  string // dotted key, empty for syntax errors
	Err    error
}

func (e *ThemeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s theme: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("invalid %s theme: %s: %v", e.Source, e.Field, e.Err)
}

func (e *ThemeError) Unwrap() error { return e.Err }

// Theme is the fully resolved set of design tokens the class grammar reads.
type Theme struct {
	Colors    map[string]Color
	Spacing   map[string]float32
	FontSizes map[string]float32

	Breakpoints BreakpointConfig

	// Utilities maps a macro class name to the classes it expands to.
	Utilities map[string][]string
}

// DefaultTheme returns the built-in Tailwind palette and scales with no
// macros.
func DefaultTheme() Theme {
	t := Theme{
		Colors:      make(map[string]Color),
		Spacing:     defaultSpacing(),
		FontSizes:   defaultFontSizes(),
		Breakpoints: DefaultBreakpoints(),
		Utilities:   make(map[string][]string),
	}
	for name, hex := range defaultColors() {
		c, err := ParseColor(hex)
		if err != nil {
			panic(fmt.Sprintf("tw: bad default color %s: %v", name, err))
		}
		t.Colors[name] = c
	}
	return t
}

// themeFile is the on-disk schema shared by theme.toml and theme.yaml.
//
//	[theme.colors]
//	brand = "#1da1f2"
//	accent = { 500 = "#f43f5e", 600 = "#e11d48" }  # accent-500, accent-600
//
//	[theme.spacing]
//	18 = "4.5rem"
//
//	[theme.fontSize]
//	huge = ["10rem", "1"]
//
//	[theme.breakpoints]
//	md = 800
//
//	[utilities]
//	btn = ["px-4", "py-2", "rounded-md", "font-semibold"]
type themeFile struct {
	Theme struct {
		Colors      map[string]any `toml:"colors" yaml:"colors"`
		Spacing     map[string]any `toml:"spacing" yaml:"spacing"`
		FontSize    map[string]any `toml:"fontSize" yaml:"fontSize"`
		Breakpoints map[string]any `toml:"breakpoints" yaml:"breakpoints"`
	} `toml:"theme" yaml:"theme"`
	Utilities map[string][]string `toml:"utilities" yaml:"utilities"`
}

// DecodeTheme parses a theme source and merges it over DefaultTheme.
// Any invalid entry rejects the whole source with a *ThemeError.
func DecodeTheme(data []byte, format Format) (Theme, error) {
	var file themeFile
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return Theme{}, &ThemeError{Source: format, Err: err}
	}

	t := DefaultTheme()
	fail := func(field string, err error) (Theme, error) {
		return Theme{}, &ThemeError{Source: format, Field: field, Err: err}
	}

	for _, name := range slices.Sorted(maps.Keys(file.Theme.Colors)) {
		if err := addColor(t.Colors, name, file.Theme.Colors[name]); err != nil {
			return fail("theme.colors."+name, err)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(file.Theme.Spacing)) {
		px, err := parseSize(file.Theme.Spacing[key])
		if err != nil {
			return fail("theme.spacing."+key, err)
		}
		t.Spacing[key] = px
	}
	for _, key := range slices.Sorted(maps.Keys(file.Theme.FontSize)) {
		v := file.Theme.FontSize[key]
		// [size, lineHeight]: only the size is used.
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				return fail("theme.fontSize."+key, errors.New("empty list"))
			}
			v = list[0]
		}
		px, err := parseSize(v)
		if err != nil {
			return fail("theme.fontSize."+key, err)
		}
		t.FontSizes[key] = px
	}
	for _, key := range slices.Sorted(maps.Keys(file.Theme.Breakpoints)) {
		field := "theme.breakpoints." + key
		px, err := parseSize(file.Theme.Breakpoints[key])
		if err != nil {
			return fail(field, err)
		}
		switch key {
		case "sm":
			t.Breakpoints.SM = px
		case "md":
			t.Breakpoints.MD = px
		case "lg":
			t.Breakpoints.LG = px
		case "xl":
			t.Breakpoints.XL = px
		case "2xl":
			t.Breakpoints.XXL = px
		default:
			return fail(field, errors.New("unknown breakpoint"))
		}
	}
	if err := t.Breakpoints.validate(); err != nil {
		return fail("theme.breakpoints", err)
	}
	for name, expansion := range file.Utilities {
		t.Utilities[name] = expansion
	}
	if err := checkMacroCycles(t.Utilities); err != nil {
		return fail("utilities", err)
	}
	return t, nil
}

// addColor stores a flat color or a nested palette (name-shade keys).
func addColor(dst map[string]Color, name string, v any) error {
	switch v := v.(type) {
	case string:
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		dst[name] = c
		return nil
	case map[string]any:
		for shade, sv := range v {
			if err := addColor(dst, name+"-"+shade, sv); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		for shade, sv := range v {
			if err := addColor(dst, fmt.Sprintf("%s-%v", name, shade), sv); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported color value %v (%T)", v, v)
	}
}

// parseSize converts "1.5rem", "24px", "24" or a bare number to pixels.
func parseSize(v any) (float32, error) {
	switch v := v.(type) {
	case int:
		return float32(v), nil
	case int64:
		return float32(v), nil
	case float64:
		return float32(v), nil
	case string:
		px, ok := parsePx(v)
		if !ok {
			return 0, fmt.Errorf("invalid size %q", v)
		}
		return px, nil
	default:
		return 0, fmt.Errorf("unsupported size value %v (%T)", v, v)
	}
}

// parsePx reads a length with an optional px, rem or em suffix. rem and em
// are 16px.
func parsePx(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	mult := float32(1)
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "rem"):
		s = strings.TrimSuffix(s, "rem")
		mult = 16
	case strings.HasSuffix(s, "em"):
		s = strings.TrimSuffix(s, "em")
		mult = 16
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f) * mult, true
}

// checkMacroCycles walks every macro and reports the first cycle found.
func checkMacroCycles(macros map[string][]string) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(macros))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case active:
			return cycleError(append(path, name))
		case done:
			return nil
		}
		state[name] = active
		path = append(path, name)
		for _, entry := range macros[name] {
			for _, cls := range strings.Fields(entry) {
				// "hover:btn" still expands btn.
				cls = cls[strings.LastIndex(cls, ":")+1:]
				if _, ok := macros[cls]; ok {
					if err := visit(cls, path); err != nil {
						return err
					}
				}
			}
		}
		state[name] = done
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(macros)) {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

func cycleError(path []string) error {
	return fmt.Errorf("%w: %s", ErrMacroCycle, strings.Join(path, " -> "))
}
