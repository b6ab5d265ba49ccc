package tw

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is a packed RGBA value: 0xRRGGBBAA.
type Color uint32

// RGBA creates a color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components returns the red, green, blue and alpha channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c) }

func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" (the "#" is optional).
// Six digits imply full opacity.
func ParseColor(s string) (Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 && len(digits) != 8 {
		return 0, fmt.Errorf("invalid color %q: want 6 or 8 hex digits", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(b) == 3 {
		b = append(b, 0xff)
	}
	return RGBA(b[0], b[1], b[2], b[3]), nil
}

// TextAlign is horizontal text alignment.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// BorderStyle is the stroke pattern of a border.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
	BorderNone   BorderStyle = "none"
)

// State selects which state variant prefix ResolveFor applies.
type State int

const (
	StateDefault State = iota
	StateHover
	StateFocus
	StateActive
	StateDisabled
)

var statePrefixes = map[string]State{
	"hover":    StateHover,
	"focus":    StateFocus,
	"active":   StateActive,
	"disabled": StateDisabled,
}

// ComputedStyle holds resolved visual properties. A nil field is unset and
// falls back to the renderer's default.
type ComputedStyle struct {
	// Colors
	BackgroundColor *Color
	TextColor       *Color
	BorderColor     *Color

	// Typography
	FontSize   *float32
	FontWeight *int
	TextAlign  *TextAlign
	LineHeight *float32 // multiplier of FontSize

	// Borders
	BorderWidth  *float32
	BorderStyle  *BorderStyle
	BorderRadius *float32

	// Effects
	Opacity       *float32 // 0..1
	ShadowOffsetX *float32
	ShadowOffsetY *float32
	ShadowBlur    *float32
	ShadowColor   *Color

	// Box carries the layout utilities.
	Box Box
}

// LengthUnit says how a Length resolves.
type LengthUnit uint8

const (
	LengthAuto LengthUnit = iota
	LengthPx
	LengthPercent
)

// Length is a sizing value from w-*, h-*, min-*, max-* utilities.
type Length struct {
	Unit  LengthUnit
	Value float32
}

// Display is the layout algorithm a box requests.
type Display string

const (
	DisplayFlex     Display = "flex"
	DisplayBlock    Display = "block"
	DisplayGrid     Display = "grid"
	DisplayAbsolute Display = "absolute"
)

// Box is the layout part of a ComputedStyle.
type Box struct {
	Display   *Display
	Direction *string // "row" or "column"
	Gap       *float32
	Overflow  *string // "visible", "hidden", "scroll", "auto"

	PaddingTop    *float32
	PaddingRight  *float32
	PaddingBottom *float32
	PaddingLeft   *float32
	MarginTop     *float32
	MarginRight   *float32
	MarginBottom  *float32
	MarginLeft    *float32

	Width     *Length
	Height    *Length
	MinWidth  *Length
	MinHeight *Length
	MaxWidth  *Length
	MaxHeight *Length
}

// IsZero reports whether no property is set.
func (s ComputedStyle) IsZero() bool {
	return s == ComputedStyle{}
}

// Merge folds p into s. Every field set in p overrides s; unset fields in p
// leave s untouched.
func (s *ComputedStyle) Merge(p ComputedStyle) {
	set(&s.BackgroundColor, p.BackgroundColor)
	set(&s.TextColor, p.TextColor)
	set(&s.BorderColor, p.BorderColor)
	set(&s.FontSize, p.FontSize)
	set(&s.FontWeight, p.FontWeight)
	set(&s.TextAlign, p.TextAlign)
	set(&s.LineHeight, p.LineHeight)
	set(&s.BorderWidth, p.BorderWidth)
	set(&s.BorderStyle, p.BorderStyle)
	set(&s.BorderRadius, p.BorderRadius)
	set(&s.Opacity, p.Opacity)
	set(&s.ShadowOffsetX, p.ShadowOffsetX)
	set(&s.ShadowOffsetY, p.ShadowOffsetY)
	set(&s.ShadowBlur, p.ShadowBlur)
	set(&s.ShadowColor, p.ShadowColor)
	s.Box.Merge(p.Box)
}

// Merge folds p into b with the same rules as ComputedStyle.Merge.
func (b *Box) Merge(p Box) {
	set(&b.Display, p.Display)
	set(&b.Direction, p.Direction)
	set(&b.Gap, p.Gap)
	set(&b.Overflow, p.Overflow)
	set(&b.PaddingTop, p.PaddingTop)
	set(&b.PaddingRight, p.PaddingRight)
	set(&b.PaddingBottom, p.PaddingBottom)
	set(&b.PaddingLeft, p.PaddingLeft)
	set(&b.MarginTop, p.MarginTop)
	set(&b.MarginRight, p.MarginRight)
	set(&b.MarginBottom, p.MarginBottom)
	set(&b.MarginLeft, p.MarginLeft)
	set(&b.Width, p.Width)
	set(&b.Height, p.Height)
	set(&b.MinWidth, p.MinWidth)
	set(&b.MinHeight, p.MinHeight)
	set(&b.MaxWidth, p.MaxWidth)
	set(&b.MaxHeight, p.MaxHeight)
}

func set[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func ptr[T any](v T) *T { return &v }
