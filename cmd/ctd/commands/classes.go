package commands

import (
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/centered-core/tw"
)

// Classes implements the 'ctd classes' command
func Classes(args []string) error {
	return runClasses(args, os.Stdout, os.Stderr)
}

func runClasses(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("classes", flag.ExitOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "Project directory")
	state := fs.String("state", "", "Interaction state: hover, focus, active or disabled")
	width := fs.Float64("width", 0, "Window width that selects sm: through 2xl: variants")
	dark := fs.Bool("dark", false, "Apply dark: variants")
	asToml := fs.Bool("toml", false, "Print the resolved style as TOML")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: ctd classes [--state s] [--width w] [--dark] [--toml] \"class list\"")
	}
	st, err := parseState(*state)
	if err != nil {
		return err
	}

	styles, err := loadStyleSystem(*dir)
	if err != nil {
		return err
	}

	ctx := tw.Context{Width: float32(*width), Dark: *dark, State: st}
	cs, err := styles.ResolveFor(fs.Arg(0), ctx)
	if err != nil {
		// Unresolved macros leave the rest of the style usable.
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	return writeStyle(stdout, cs, *asToml)
}

func parseState(s string) (tw.State, error) {
	switch s {
	case "":
		return tw.StateDefault, nil
	case "hover":
		return tw.StateHover, nil
	case "focus":
		return tw.StateFocus, nil
	case "active":
		return tw.StateActive, nil
	case "disabled":
		return tw.StateDisabled, nil
	}
	return 0, fmt.Errorf("unknown state %q", s)
}

// loadStyleSystem returns a style system with the project theme installed.
func loadStyleSystem(dir string) (*tw.StyleSystem, error) {
	config, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	engineConfig, err := config.EngineConfig(dir)
	if err != nil {
		return nil, err
	}
	styles := tw.New()
	if engineConfig.Theme != "" {
		if err := styles.LoadThemeFormat([]byte(engineConfig.Theme), engineConfig.ThemeFormat); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", config.Build.ThemeFile, err)
		}
	}
	return styles, nil
}

func writeStyle(w io.Writer, cs tw.ComputedStyle, asToml bool) error {
	props := properties(cs)
	if asToml {
		data, err := toml.Marshal(props)
		if err != nil {
			return fmt.Errorf("failed to marshal style: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	if len(props) == 0 {
		fmt.Fprintln(w, "(no properties)")
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(w, "%-16s %v\n", k, props[k])
	}
	return nil
}

// properties flattens the set fields of cs into display values.
func properties(cs tw.ComputedStyle) map[string]any {
	props := map[string]any{}
	color := func(k string, c *tw.Color) {
		if c != nil {
			props[k] = c.String()
		}
	}
	number := func(k string, v *float32) {
		if v != nil {
			props[k] = float64(*v)
		}
	}
	text := func(k string, v *string) {
		if v != nil {
			props[k] = *v
		}
	}
	length := func(k string, l *tw.Length) {
		if l == nil {
			return
		}
		switch l.Unit {
		case tw.LengthPx:
			props[k] = strconv.FormatFloat(float64(l.Value), 'f', -1, 32) + "px"
		case tw.LengthPercent:
			props[k] = strconv.FormatFloat(float64(l.Value), 'f', -1, 32) + "%"
		default:
			props[k] = "auto"
		}
	}

	color("background-color", cs.BackgroundColor)
	color("text-color", cs.TextColor)
	color("border-color", cs.BorderColor)
	color("shadow-color", cs.ShadowColor)
	number("font-size", cs.FontSize)
	if cs.FontWeight != nil {
		props["font-weight"] = int64(*cs.FontWeight)
	}
	if cs.TextAlign != nil {
		props["text-align"] = string(*cs.TextAlign)
	}
	number("line-height", cs.LineHeight)
	number("border-width", cs.BorderWidth)
	if cs.BorderStyle != nil {
		props["border-style"] = string(*cs.BorderStyle)
	}
	number("border-radius", cs.BorderRadius)
	number("opacity", cs.Opacity)
	number("shadow-offset-x", cs.ShadowOffsetX)
	number("shadow-offset-y", cs.ShadowOffsetY)
	number("shadow-blur", cs.ShadowBlur)

	b := cs.Box
	if b.Display != nil {
		props["display"] = string(*b.Display)
	}
	text("direction", b.Direction)
	text("overflow", b.Overflow)
	number("gap", b.Gap)
	number("padding-top", b.PaddingTop)
	number("padding-right", b.PaddingRight)
	number("padding-bottom", b.PaddingBottom)
	number("padding-left", b.PaddingLeft)
	number("margin-top", b.MarginTop)
	number("margin-right", b.MarginRight)
	number("margin-bottom", b.MarginBottom)
	number("margin-left", b.MarginLeft)
	length("width", b.Width)
	length("height", b.Height)
	length("min-width", b.MinWidth)
	length("min-height", b.MinHeight)
	length("max-width", b.MaxWidth)
	length("max-height", b.MaxHeight)
	return props
}
