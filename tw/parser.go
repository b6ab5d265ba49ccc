// Package tw resolves Tailwind-style utility class strings into
// ComputedStyle values against a theme of colors, spacing and font sizes.
package tw

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// StyleSystem resolves class strings against a theme. Rule lists are cached
// per token and the cache is dropped whenever the theme changes.
// It is a plain data structure; callers serialize access.
//
// Pointer fields of returned styles may be shared with the cache and must
// not be written through.
type StyleSystem struct {
	theme        Theme
	cache        map[string][]ComputedStyle
	variantCache map[string][]variant
}

// New creates a style system using DefaultTheme.
func New() *StyleSystem {
	return &StyleSystem{
		theme:        DefaultTheme(),
		cache:        make(map[string][]ComputedStyle),
		variantCache: make(map[string][]variant),
	}
}

// Theme returns the active theme. The maps are shared; do not modify them.
func (s *StyleSystem) Theme() Theme { return s.theme }

// SetTheme installs t as is and clears the cache. Macro cycles in t are not
// rejected here; they surface as ErrMacroCycle from ParseClasses. Zero
// breakpoints are replaced by DefaultBreakpoints.
func (s *StyleSystem) SetTheme(t Theme) {
	if t.Breakpoints == (BreakpointConfig{}) {
		t.Breakpoints = DefaultBreakpoints()
	}
	s.theme = t
	clear(s.cache)
	clear(s.variantCache)
}

// LoadTheme replaces the theme with a TOML source.
func (s *StyleSystem) LoadTheme(source string) error {
	return s.LoadThemeFormat([]byte(source), FormatTOML)
}

// LoadThemeFormat replaces the theme with a source in the given format.
// On error the previous theme and cache are left untouched.
func (s *StyleSystem) LoadThemeFormat(data []byte, format Format) error {
	t, err := DecodeTheme(data, format)
	if err != nil {
		return err
	}
	s.SetTheme(t)
	return nil
}

// CacheLen returns the number of cached tokens.
func (s *StyleSystem) CacheLen() int { return len(s.cache) }

// ParseClasses folds every token of classes, left to right, into one style.
// Later tokens override earlier ones per property. Variant tokens such as
// "hover:bg-blue-600" or "md:p-8" contribute nothing here; see ResolveFor.
//
// Unknown classes are ignored. A macro cycle is reported as an error, but
// the style still carries every other token.
func (s *StyleSystem) ParseClasses(classes string) (ComputedStyle, error) {
	var style ComputedStyle
	var errs []error
	for _, token := range strings.Fields(classes) {
		rules, err := s.Resolve(token)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to resolve %q: %w", token, err))
			continue
		}
		for _, r := range rules {
			style.Merge(r)
		}
	}
	return style, errors.Join(errs...)
}

// ResolveState returns the base style with the variant tokens for state
// folded on top. "hover:bg-blue-600" applies only for StateHover.
// Breakpoint and dark variants are not applied; see ResolveFor.
func (s *StyleSystem) ResolveState(classes string, state State) (ComputedStyle, error) {
	return s.ResolveFor(classes, Context{State: state})
}

// Resolve returns the rule list for a single token.
func (s *StyleSystem) Resolve(token string) ([]ComputedStyle, error) {
	return s.resolve(token, nil)
}

func (s *StyleSystem) resolve(token string, expanding []string) ([]ComputedStyle, error) {
	if rules, ok := s.cache[token]; ok {
		return rules, nil
	}

	var rules []ComputedStyle
	switch expansion, isMacro := s.theme.Utilities[token]; {
	case strings.Contains(token, ":"):
		// Variants are resolved by ResolveFor.

	case isMacro:
		if slices.Contains(expanding, token) {
			return nil, cycleError(append(expanding, token))
		}
		expanding = append(expanding, token)
		for _, entry := range expansion {
			for _, cls := range strings.Fields(entry) {
				sub, err := s.resolve(cls, expanding)
				if err != nil {
					return nil, err
				}
				rules = append(rules, sub...)
			}
		}

	default:
		if r, ok := s.utility(token); ok {
			rules = []ComputedStyle{r}
		}
	}

	s.cache[token] = rules
	return rules, nil
}

// utility translates one grammar token into a rule.
func (s *StyleSystem) utility(token string) (ComputedStyle, bool) {
	var r ComputedStyle

	switch token {
	case "flex", "block", "grid", "absolute":
		r.Box.Display = ptr(Display(token))
		return r, true
	case "flex-row":
		r.Box.Direction = ptr("row")
		return r, true
	case "flex-col":
		r.Box.Direction = ptr("column")
		return r, true
	case "border":
		r.BorderWidth = ptr(borderWidths[""])
		return r, true
	case "rounded":
		r.BorderRadius = ptr(borderRadii[""])
		return r, true
	case "shadow":
		return shadowRule(shadows[""]), true
	}

	prefix, value, ok := splitUtility(token)
	if !ok {
		return r, false
	}

	switch prefix {
	case "text":
		return s.textUtility(value)

	case "bg":
		if c, ok := s.color(value); ok {
			r.BackgroundColor = &c
			return r, true
		}

	case "border":
		return s.borderUtility(value)

	case "font":
		if w, ok := fontWeights[value]; ok {
			r.FontWeight = &w
			return r, true
		}
		if inner, ok := arbitrary(value); ok {
			if w, err := strconv.Atoi(inner); err == nil {
				r.FontWeight = &w
				return r, true
			}
		}

	case "rounded":
		if px, ok := borderRadii[value]; ok {
			r.BorderRadius = &px
			return r, true
		}
		if inner, ok := arbitrary(value); ok {
			if px, ok := parsePx(inner); ok {
				r.BorderRadius = &px
				return r, true
			}
		}

	case "opacity":
		if p, err := strconv.ParseFloat(value, 32); err == nil && p >= 0 && p <= 100 {
			r.Opacity = ptr(float32(p) / 100)
			return r, true
		}

	case "leading":
		if lh, ok := lineHeights[value]; ok {
			r.LineHeight = &lh
			return r, true
		}
		if inner, ok := arbitrary(value); ok {
			if lh, err := strconv.ParseFloat(inner, 32); err == nil {
				r.LineHeight = ptr(float32(lh))
				return r, true
			}
		}

	case "shadow":
		if p, ok := shadows[value]; ok {
			return shadowRule(p), true
		}
		if c, ok := s.color(value); ok {
			r.ShadowColor = &c
			return r, true
		}

	case "overflow":
		switch value {
		case "visible", "hidden", "scroll", "auto":
			r.Box.Overflow = &value
			return r, true
		}

	case "gap":
		if px, ok := s.spacing(value); ok {
			r.Box.Gap = &px
			return r, true
		}

	case "p", "px", "py", "pt", "pr", "pb", "pl":
		if px, ok := s.spacing(value); ok {
			b := &r.Box
			applyEdges(prefix[1:], px, &b.PaddingTop, &b.PaddingRight, &b.PaddingBottom, &b.PaddingLeft)
			return r, true
		}

	case "m", "mx", "my", "mt", "mr", "mb", "ml":
		if px, ok := s.spacing(value); ok {
			b := &r.Box
			applyEdges(prefix[1:], px, &b.MarginTop, &b.MarginRight, &b.MarginBottom, &b.MarginLeft)
			return r, true
		}

	case "w", "h", "min-w", "min-h", "max-w", "max-h":
		if l, ok := s.length(value); ok {
			*lengthField(&r.Box, prefix) = &l
			return r, true
		}
	}

	return r, false
}

func (s *StyleSystem) textUtility(value string) (ComputedStyle, bool) {
	var r ComputedStyle
	if px, ok := s.theme.FontSizes[value]; ok {
		r.FontSize = &px
		return r, true
	}
	switch a := TextAlign(value); a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		r.TextAlign = &a
		return r, true
	}
	if inner, ok := arbitrary(value); ok && !strings.HasPrefix(inner, "#") {
		if px, ok := parsePx(inner); ok {
			r.FontSize = &px
			return r, true
		}
		return r, false
	}
	if c, ok := s.color(value); ok {
		r.TextColor = &c
		return r, true
	}
	return r, false
}

func (s *StyleSystem) borderUtility(value string) (ComputedStyle, bool) {
	var r ComputedStyle
	if w, ok := borderWidths[value]; ok {
		r.BorderWidth = &w
		return r, true
	}
	switch bs := BorderStyle(value); bs {
	case BorderSolid, BorderDashed, BorderDotted, BorderNone:
		r.BorderStyle = &bs
		return r, true
	}
	if inner, ok := arbitrary(value); ok && !strings.HasPrefix(inner, "#") {
		if px, ok := parsePx(inner); ok {
			r.BorderWidth = &px
			return r, true
		}
		return r, false
	}
	if c, ok := s.color(value); ok {
		r.BorderColor = &c
		return r, true
	}
	return r, false
}

// color resolves a theme color name or an arbitrary [#hex] value.
func (s *StyleSystem) color(value string) (Color, bool) {
	if inner, ok := arbitrary(value); ok {
		c, err := ParseColor(inner)
		return c, err == nil
	}
	c, ok := s.theme.Colors[value]
	return c, ok
}

// spacing resolves a spacing scale key or an arbitrary [..px] value.
func (s *StyleSystem) spacing(value string) (float32, bool) {
	if inner, ok := arbitrary(value); ok {
		return parsePx(inner)
	}
	px, ok := s.theme.Spacing[value]
	return px, ok
}

// length resolves sizing values: auto, full, fractions, the spacing scale,
// and arbitrary [..px] or [..%].
func (s *StyleSystem) length(value string) (Length, bool) {
	switch value {
	case "auto":
		return Length{Unit: LengthAuto}, true
	case "full":
		return Length{Unit: LengthPercent, Value: 100}, true
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 32)
		d, err2 := strconv.ParseFloat(den, 32)
		if err1 != nil || err2 != nil || d == 0 {
			return Length{}, false
		}
		return Length{Unit: LengthPercent, Value: float32(n / d * 100)}, true
	}
	if inner, ok := arbitrary(value); ok {
		if pct, found := strings.CutSuffix(inner, "%"); found {
			p, err := strconv.ParseFloat(pct, 32)
			if err != nil {
				return Length{}, false
			}
			return Length{Unit: LengthPercent, Value: float32(p)}, true
		}
		px, ok := parsePx(inner)
		return Length{Unit: LengthPx, Value: px}, ok
	}
	px, ok := s.theme.Spacing[value]
	return Length{Unit: LengthPx, Value: px}, ok
}

// utilityPrefixes are matched longest first so "min-w-4" is not read as
// "min" with value "w-4".
var utilityPrefixes = []string{
	"min-w", "min-h", "max-w", "max-h",
	"overflow", "opacity", "leading", "rounded", "shadow", "border",
	"text", "font", "bg", "gap",
	"px", "py", "pt", "pr", "pb", "pl", "p",
	"mx", "my", "mt", "mr", "mb", "ml", "m",
	"w", "h",
}

func splitUtility(token string) (prefix, value string, ok bool) {
	for _, p := range utilityPrefixes {
		if rest, found := strings.CutPrefix(token, p+"-"); found && rest != "" {
			return p, rest, true
		}
	}
	return "", "", false
}

// arbitrary unwraps a "[...]" value.
func arbitrary(value string) (string, bool) {
	if len(value) > 2 && value[0] == '[' && value[len(value)-1] == ']' {
		return value[1 : len(value)-1], true
	}
	return "", false
}

// applyEdges sets the sides selected by axis: "" all, "x", "y", or one of
// "t", "r", "b", "l".
func applyEdges(axis string, v float32, top, right, bottom, left **float32) {
	switch axis {
	case "":
		*top, *right, *bottom, *left = &v, &v, &v, &v
	case "x":
		*left, *right = &v, &v
	case "y":
		*top, *bottom = &v, &v
	case "t":
		*top = &v
	case "r":
		*right = &v
	case "b":
		*bottom = &v
	case "l":
		*left = &v
	}
}

func lengthField(b *Box, prefix string) **Length {
	switch prefix {
	case "w":
		return &b.Width
	case "h":
		return &b.Height
	case "min-w":
		return &b.MinWidth
	case "min-h":
		return &b.MinHeight
	case "max-w":
		return &b.MaxWidth
	default:
		return &b.MaxHeight
	}
}

func shadowRule(p shadowPreset) ComputedStyle {
	return ComputedStyle{
		ShadowOffsetX: ptr(float32(0)),
		ShadowOffsetY: ptr(p.y),
		ShadowBlur:    ptr(p.blur),
		ShadowColor:   ptr(RGBA(0, 0, 0, p.alpha)),
	}
}
