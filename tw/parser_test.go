package tw

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseClasses(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(*testing.T, ComputedStyle)
	}{
		{
			name:  "later font size wins",
			input: "text-sm text-lg",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.FontSize == nil || *s.FontSize != 18 {
					t.Errorf("FontSize = %v, want 18", s.FontSize)
				}
			},
		},
		{
			name:  "unrelated properties survive",
			input: "bg-blue-500 text-white font-bold text-xl",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.BackgroundColor == nil || *s.BackgroundColor != 0x3b82f6ff {
					t.Errorf("BackgroundColor = %v", s.BackgroundColor)
				}
				if s.TextColor == nil || *s.TextColor != 0xffffffff {
					t.Errorf("TextColor = %v", s.TextColor)
				}
				if s.FontWeight == nil || *s.FontWeight != 700 {
					t.Errorf("FontWeight = %v", s.FontWeight)
				}
				if s.FontSize == nil || *s.FontSize != 20 {
					t.Errorf("FontSize = %v", s.FontSize)
				}
			},
		},
		{
			name:  "opacity percent",
			input: "opacity-50",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.Opacity == nil || *s.Opacity != 0.5 {
					t.Errorf("Opacity = %v, want 0.5", s.Opacity)
				}
			},
		},
		{
			name:  "unknown classes are ignored",
			input: "bg-notacolor text-bogus opacity-x rounded-lg",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.BackgroundColor != nil || s.TextColor != nil || s.Opacity != nil {
					t.Errorf("unexpected properties: %+v", s)
				}
				if s.BorderRadius == nil || *s.BorderRadius != 8 {
					t.Errorf("BorderRadius = %v, want 8", s.BorderRadius)
				}
			},
		},
		{
			name:  "variants produce nothing",
			input: "hover:bg-blue-600 focus:text-lg",
			validate: func(t *testing.T, s ComputedStyle) {
				if !s.IsZero() {
					t.Errorf("style = %+v, want zero", s)
				}
			},
		},
		{
			name:  "alignment and borders",
			input: "text-center border-2 border-dashed border-red-500 rounded",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.TextAlign == nil || *s.TextAlign != AlignCenter {
					t.Errorf("TextAlign = %v", s.TextAlign)
				}
				if s.BorderWidth == nil || *s.BorderWidth != 2 {
					t.Errorf("BorderWidth = %v", s.BorderWidth)
				}
				if s.BorderStyle == nil || *s.BorderStyle != BorderDashed {
					t.Errorf("BorderStyle = %v", s.BorderStyle)
				}
				if s.BorderColor == nil || *s.BorderColor != 0xef4444ff {
					t.Errorf("BorderColor = %v", s.BorderColor)
				}
				if s.BorderRadius == nil || *s.BorderRadius != 4 {
					t.Errorf("BorderRadius = %v", s.BorderRadius)
				}
			},
		},
		{
			name:  "arbitrary values",
			input: "bg-[#1da1f2] text-[22px] p-[2.5rem] w-[33%] h-[250px]",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.BackgroundColor == nil || *s.BackgroundColor != 0x1da1f2ff {
					t.Errorf("BackgroundColor = %v", s.BackgroundColor)
				}
				if s.FontSize == nil || *s.FontSize != 22 {
					t.Errorf("FontSize = %v", s.FontSize)
				}
				if s.Box.PaddingLeft == nil || *s.Box.PaddingLeft != 40 {
					t.Errorf("PaddingLeft = %v", s.Box.PaddingLeft)
				}
				if s.Box.Width == nil || *s.Box.Width != (Length{Unit: LengthPercent, Value: 33}) {
					t.Errorf("Width = %v", s.Box.Width)
				}
				if s.Box.Height == nil || *s.Box.Height != (Length{Unit: LengthPx, Value: 250}) {
					t.Errorf("Height = %v", s.Box.Height)
				}
			},
		},
		{
			name:  "shadow preset then color",
			input: "shadow-md shadow-blue-500",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.ShadowOffsetY == nil || *s.ShadowOffsetY != 4 {
					t.Errorf("ShadowOffsetY = %v", s.ShadowOffsetY)
				}
				if s.ShadowBlur == nil || *s.ShadowBlur != 6 {
					t.Errorf("ShadowBlur = %v", s.ShadowBlur)
				}
				if s.ShadowColor == nil || *s.ShadowColor != 0x3b82f6ff {
					t.Errorf("ShadowColor = %v", s.ShadowColor)
				}
			},
		},
		{
			name:  "line height",
			input: "leading-tight leading-[1.8]",
			validate: func(t *testing.T, s ComputedStyle) {
				if s.LineHeight == nil || *s.LineHeight != float32(1.8) {
					t.Errorf("LineHeight = %v", s.LineHeight)
				}
			},
		},
		{
			name:  "box utilities",
			input: "flex flex-col gap-2 p-4 px-2 mt-1 w-1/2 max-w-full min-h-8 overflow-hidden",
			validate: func(t *testing.T, s ComputedStyle) {
				b := s.Box
				if b.Display == nil || *b.Display != DisplayFlex {
					t.Errorf("Display = %v", b.Display)
				}
				if b.Direction == nil || *b.Direction != "column" {
					t.Errorf("Direction = %v", b.Direction)
				}
				if b.Gap == nil || *b.Gap != 8 {
					t.Errorf("Gap = %v", b.Gap)
				}
				if *b.PaddingTop != 16 || *b.PaddingBottom != 16 || *b.PaddingLeft != 8 || *b.PaddingRight != 8 {
					t.Errorf("padding = %v %v %v %v", *b.PaddingTop, *b.PaddingRight, *b.PaddingBottom, *b.PaddingLeft)
				}
				if b.MarginTop == nil || *b.MarginTop != 4 || b.MarginLeft != nil {
					t.Errorf("margins = %v / %v", b.MarginTop, b.MarginLeft)
				}
				if *b.Width != (Length{Unit: LengthPercent, Value: 50}) {
					t.Errorf("Width = %v", *b.Width)
				}
				if *b.MaxWidth != (Length{Unit: LengthPercent, Value: 100}) {
					t.Errorf("MaxWidth = %v", *b.MaxWidth)
				}
				if *b.MinHeight != (Length{Unit: LengthPx, Value: 32}) {
					t.Errorf("MinHeight = %v", *b.MinHeight)
				}
				if b.Overflow == nil || *b.Overflow != "hidden" {
					t.Errorf("Overflow = %v", b.Overflow)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			got, err := s.ParseClasses(tt.input)
			if err != nil {
				t.Fatalf("ParseClasses(%q) error: %v", tt.input, err)
			}
			tt.validate(t, got)
		})
	}
}

func TestParseClassesDeterministic(t *testing.T) {
	s := New()
	const classes = "btn bg-gray-100 text-sm font-medium p-2 text-lg rounded-full"
	first, _ := s.ParseClasses(classes)
	// second run is served from the cache
	second, _ := s.ParseClasses(classes)
	fresh, _ := New().ParseClasses(classes)
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, fresh) {
		t.Errorf("results differ:\n%+v\n%+v\n%+v", first, second, fresh)
	}
}

func TestMacros(t *testing.T) {
	s := New()
	err := s.LoadTheme(`
[utilities]
btn = ["px-4 py-2", "rounded-md"]
btn-primary = ["btn", "bg-blue-500", "text-white"]
`)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}

	got, err := s.ParseClasses("btn-primary px-8")
	if err != nil {
		t.Fatalf("ParseClasses: %v", err)
	}
	if got.BorderRadius == nil || *got.BorderRadius != 6 {
		t.Errorf("BorderRadius = %v, want 6", got.BorderRadius)
	}
	if got.BackgroundColor == nil || *got.BackgroundColor != 0x3b82f6ff {
		t.Errorf("BackgroundColor = %v", got.BackgroundColor)
	}
	if *got.Box.PaddingLeft != 32 || *got.Box.PaddingTop != 8 {
		t.Errorf("padding left/top = %v/%v, want 32/8", *got.Box.PaddingLeft, *got.Box.PaddingTop)
	}

	rules, _ := s.Resolve("btn-primary")
	if len(rules) != 5 {
		t.Errorf("btn-primary expands to %d rules, want 5", len(rules))
	}
}

func TestMacroCycleAtParseTime(t *testing.T) {
	s := New()
	th := DefaultTheme()
	th.Utilities = map[string][]string{
		"loop":  {"text-lg", "outer"},
		"outer": {"loop"},
	}
	s.SetTheme(th)

	got, err := s.ParseClasses("loop bg-white")
	if !errors.Is(err, ErrMacroCycle) {
		t.Fatalf("err = %v, want ErrMacroCycle", err)
	}
	if got.BackgroundColor == nil {
		t.Error("tokens after the cycle should still apply")
	}
	if got.FontSize != nil {
		t.Error("a cyclic macro must contribute nothing")
	}
}

func TestResolveState(t *testing.T) {
	const classes = "bg-blue-500 hover:bg-blue-600 focus:border-red-500 dark:hover:bg-black"
	tests := []struct {
		state      State
		wantBg     Color
		wantBorder bool
	}{
		{StateDefault, 0x3b82f6ff, false},
		{StateHover, 0x2563ebff, false},
		{StateFocus, 0x3b82f6ff, true},
		{StateDisabled, 0x3b82f6ff, false},
	}

	s := New()
	for _, tt := range tests {
		got, err := s.ResolveState(classes, tt.state)
		if err != nil {
			t.Fatalf("state %d: %v", tt.state, err)
		}
		if got.BackgroundColor == nil || *got.BackgroundColor != tt.wantBg {
			t.Errorf("state %d: BackgroundColor = %v, want %v", tt.state, got.BackgroundColor, tt.wantBg)
		}
		if (got.BorderColor != nil) != tt.wantBorder {
			t.Errorf("state %d: BorderColor = %v", tt.state, got.BorderColor)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#3b82f6", want: 0x3b82f6ff},
		{in: "3b82f680", want: 0x3b82f680},
		{in: "#00000000", want: 0},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	r, g, b, a := Color(0x11223344).Components()
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x44 {
		t.Errorf("Components = %x %x %x %x", r, g, b, a)
	}
}

func BenchmarkParseClasses(b *testing.B) {
	s := New()
	const classes = "flex flex-col p-4 gap-2 bg-white text-gray-900 text-sm font-medium rounded-lg shadow-md"
	for i := 0; i < b.N; i++ {
		s.ParseClasses(classes)
	}
}
