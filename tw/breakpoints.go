package tw

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Breakpoint is a responsive tier. Tailwind is mobile first: a breakpoint
// variant applies at its width and above.
type Breakpoint int

const (
	BreakpointBase Breakpoint = iota
	BreakpointSM
	BreakpointMD
	BreakpointLG
	BreakpointXL
	Breakpoint2XL
)

var breakpointPrefixes = map[string]Breakpoint{
	"sm":  BreakpointSM,
	"md":  BreakpointMD,
	"lg":  BreakpointLG,
	"xl":  BreakpointXL,
	"2xl": Breakpoint2XL,
}

func (b Breakpoint) String() string {
	for name, bp := range breakpointPrefixes {
		if bp == b {
			return name
		}
	}
	return "base"
}

// BreakpointConfig holds the pixel thresholds for responsive breakpoints.
type BreakpointConfig struct {
	SM  float32 // ≥640px by default
	MD  float32 // ≥768px by default
	LG  float32 // ≥1024px by default
	XL  float32 // ≥1280px by default
	XXL float32 // ≥1536px by default (2xl)
}

// DefaultBreakpoints returns the standard Tailwind breakpoint values.
func DefaultBreakpoints() BreakpointConfig {
	return BreakpointConfig{
		SM:  640,
		MD:  768,
		LG:  1024,
		XL:  1280,
		XXL: 1536,
	}
}

// ActiveBreakpoint returns the highest breakpoint that width satisfies.
func (c BreakpointConfig) ActiveBreakpoint(width float32) Breakpoint {
	switch {
	case width >= c.XXL:
		return Breakpoint2XL
	case width >= c.XL:
		return BreakpointXL
	case width >= c.LG:
		return BreakpointLG
	case width >= c.MD:
		return BreakpointMD
	case width >= c.SM:
		return BreakpointSM
	}
	return BreakpointBase
}

func (c BreakpointConfig) validate() error {
	steps := []float32{c.SM, c.MD, c.LG, c.XL, c.XXL}
	if c.SM <= 0 {
		return errors.New("sm must be positive")
	}
	if !slices.IsSorted(steps) {
		return fmt.Errorf("thresholds must ascend, got %v", steps)
	}
	return nil
}

// Context selects which variant tokens apply in ResolveFor.
type Context struct {
	// Width picks the active breakpoint. Zero applies no breakpoint variants.
	Width float32
	Dark  bool
	State State
}

// variant is a prefixed token split into its conditions.
type variant struct {
	base       string
	breakpoint Breakpoint
	state      State
	dark       bool
}

// parseVariant splits "dark:md:hover:bg-x". It fails for an unknown prefix
// or two different state prefixes.
func parseVariant(token string) (variant, bool) {
	parts := strings.Split(token, ":")
	v := variant{base: parts[len(parts)-1]}
	if v.base == "" {
		return v, false
	}
	for _, p := range parts[:len(parts)-1] {
		if bp, ok := breakpointPrefixes[p]; ok {
			v.breakpoint = max(v.breakpoint, bp)
			continue
		}
		if st, ok := statePrefixes[p]; ok {
			if v.state != StateDefault && v.state != st {
				return v, false
			}
			v.state = st
			continue
		}
		if p != "dark" {
			return v, false
		}
		v.dark = true
	}
	return v, true
}

// within layers v's conditions under an outer macro's conditions.
func (v variant) within(outer variant) (variant, bool) {
	if outer.state != StateDefault {
		if v.state != StateDefault && v.state != outer.state {
			return v, false
		}
		v.state = outer.state
	}
	v.breakpoint = max(v.breakpoint, outer.breakpoint)
	v.dark = v.dark || outer.dark
	return v, true
}

func (v variant) conditional() bool {
	return v.breakpoint != BreakpointBase || v.state != StateDefault || v.dark
}

func (v variant) applies(ctx Context, active Breakpoint) bool {
	return (v.state == StateDefault || v.state == ctx.State) &&
		v.breakpoint <= active &&
		(!v.dark || ctx.Dark)
}

// rank orders the cascade: breakpoints ascending, then state, then dark,
// then dark state.
func (v variant) rank() int {
	r := int(v.breakpoint)
	if v.state != StateDefault {
		r += 10
	}
	if v.dark {
		r += 20
	}
	return r
}

// ResolveFor returns the base style of classes with every variant that
// ctx satisfies folded on top. Variants inside macros count, and a
// prefixed macro passes its prefixes on to each entry, so "md:btn" is
// "md:px-4 md:py-2" for btn = ["px-4", "py-2"].
//
// Layers apply base, then sm through 2xl, then state, then dark, then dark
// state. Within a layer later tokens win.
func (s *StyleSystem) ResolveFor(classes string, ctx Context) (ComputedStyle, error) {
	var style ComputedStyle
	var errs []error
	var layers []variant
	active := s.theme.Breakpoints.ActiveBreakpoint(ctx.Width)
	if ctx.Width <= 0 {
		active = BreakpointBase
	}

	for _, token := range strings.Fields(classes) {
		rules, err := s.Resolve(token)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to resolve %q: %w", token, err))
			continue
		}
		for _, r := range rules {
			style.Merge(r)
		}

		vs, err := s.variants(token)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to resolve %q: %w", token, err))
			continue
		}
		for _, v := range vs {
			if v.applies(ctx, active) {
				layers = append(layers, v)
			}
		}
	}

	slices.SortStableFunc(layers, func(a, b variant) int { return cmp.Compare(a.rank(), b.rank()) })
	for _, v := range layers {
		rules, err := s.Resolve(v.base)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to resolve %q: %w", v.base, err))
			continue
		}
		for _, r := range rules {
			style.Merge(r)
		}
	}
	return style, errors.Join(errs...)
}

// variants returns the conditional tokens token contributes once macros
// are expanded. Results are cached per token.
func (s *StyleSystem) variants(token string) ([]variant, error) {
	if vs, ok := s.variantCache[token]; ok {
		return vs, nil
	}
	var out []variant
	if err := s.collectVariants(token, variant{}, nil, &out); err != nil {
		return nil, err
	}
	s.variantCache[token] = out
	return out, nil
}

func (s *StyleSystem) collectVariants(token string, outer variant, expanding []string, out *[]variant) error {
	v, ok := parseVariant(token)
	if !ok {
		return nil
	}
	if v, ok = v.within(outer); !ok {
		return nil
	}

	expansion, isMacro := s.theme.Utilities[v.base]
	if !isMacro {
		if v.conditional() {
			*out = append(*out, v)
		}
		return nil
	}
	if slices.Contains(expanding, v.base) {
		return cycleError(append(expanding, v.base))
	}
	expanding = append(expanding, v.base)
	for _, entry := range expansion {
		for _, cls := range strings.Fields(entry) {
			if err := s.collectVariants(cls, v, expanding, out); err != nil {
				return err
			}
		}
	}
	return nil
}
