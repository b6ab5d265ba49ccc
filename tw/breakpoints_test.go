package tw

import (
	"errors"
	"testing"
)

func TestActiveBreakpoint(t *testing.T) {
	bp := DefaultBreakpoints()
	tests := []struct {
		width float32
		want  Breakpoint
	}{
		{0, BreakpointBase},
		{639, BreakpointBase},
		{640, BreakpointSM},
		{767, BreakpointSM},
		{768, BreakpointMD},
		{1024, BreakpointLG},
		{1280, BreakpointXL},
		{1536, Breakpoint2XL},
		{4000, Breakpoint2XL},
	}
	for _, tt := range tests {
		if got := bp.ActiveBreakpoint(tt.width); got != tt.want {
			t.Errorf("ActiveBreakpoint(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestResolveFor(t *testing.T) {
	const classes = "p-2 md:p-4 sm:p-3 lg:p-8 bg-white dark:bg-gray-900 hover:bg-blue-500 dark:hover:bg-blue-900"
	tests := []struct {
		name    string
		ctx     Context
		wantPad float32
		wantBg  Color
	}{
		{name: "base", ctx: Context{}, wantPad: 8, wantBg: 0xffffffff},
		{name: "below sm", ctx: Context{Width: 600}, wantPad: 8, wantBg: 0xffffffff},
		{name: "sm", ctx: Context{Width: 700}, wantPad: 12, wantBg: 0xffffffff},
		{name: "md cascades over sm", ctx: Context{Width: 800}, wantPad: 16, wantBg: 0xffffffff},
		{name: "lg", ctx: Context{Width: 1100}, wantPad: 32, wantBg: 0xffffffff},
		{name: "dark", ctx: Context{Dark: true}, wantPad: 8, wantBg: 0x111827ff},
		{name: "hover", ctx: Context{State: StateHover}, wantPad: 8, wantBg: 0x3b82f6ff},
		{name: "dark with focus", ctx: Context{Dark: true, State: StateFocus}, wantPad: 8, wantBg: 0x111827ff},
		{name: "dark hover", ctx: Context{Dark: true, State: StateHover}, wantPad: 8, wantBg: 0x1e3a8aff},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ResolveFor(classes, tt.ctx)
			if err != nil {
				t.Fatalf("ResolveFor: %v", err)
			}
			if got.Box.PaddingTop == nil || *got.Box.PaddingTop != tt.wantPad {
				t.Errorf("PaddingTop = %v, want %v", got.Box.PaddingTop, tt.wantPad)
			}
			if got.BackgroundColor == nil || *got.BackgroundColor != tt.wantBg {
				t.Errorf("BackgroundColor = %v, want %v", got.BackgroundColor, tt.wantBg)
			}
		})
	}
}

func TestResolveForCombinedPrefixes(t *testing.T) {
	s := New()
	const classes = "text-sm md:hover:text-xl hover:focus:text-lg"
	got, _ := s.ResolveFor(classes, Context{Width: 800, State: StateHover})
	if got.FontSize == nil || *got.FontSize != 20 {
		t.Errorf("md hover FontSize = %v, want 20", got.FontSize)
	}
	got, _ = s.ResolveFor(classes, Context{Width: 500, State: StateHover})
	if got.FontSize == nil || *got.FontSize != 14 {
		t.Errorf("small hover FontSize = %v, want 14", got.FontSize)
	}
	got, _ = s.ResolveFor(classes, Context{State: StateFocus})
	if got.FontSize == nil || *got.FontSize != 14 {
		t.Errorf("conflicting states applied: FontSize = %v", got.FontSize)
	}
}

func TestVariantsInsideMacros(t *testing.T) {
	s := New()
	err := s.LoadTheme(`
[utilities]
btn = ["bg-blue-500", "hover:bg-blue-600", "px-4"]
card = ["btn", "md:p-8"]
`)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}

	tests := []struct {
		name    string
		classes string
		ctx     Context
		check   func(*testing.T, ComputedStyle)
	}{
		{
			name:    "macro hover",
			classes: "btn",
			ctx:     Context{State: StateHover},
			check: func(t *testing.T, s ComputedStyle) {
				if s.BackgroundColor == nil || *s.BackgroundColor != 0x2563ebff {
					t.Errorf("BackgroundColor = %v, want blue-600", s.BackgroundColor)
				}
			},
		},
		{
			name:    "nested macro breakpoint",
			classes: "card",
			ctx:     Context{Width: 800},
			check: func(t *testing.T, s ComputedStyle) {
				if s.Box.PaddingTop == nil || *s.Box.PaddingTop != 32 {
					t.Errorf("PaddingTop = %v, want 32", s.Box.PaddingTop)
				}
			},
		},
		{
			name:    "prefixed macro",
			classes: "px-1 md:btn",
			ctx:     Context{Width: 800},
			check: func(t *testing.T, s ComputedStyle) {
				if *s.Box.PaddingLeft != 16 || s.BackgroundColor == nil {
					t.Errorf("md:btn did not apply: %+v", s)
				}
			},
		},
		{
			name:    "prefixed macro below breakpoint",
			classes: "px-1 md:btn",
			ctx:     Context{Width: 500, State: StateHover},
			check: func(t *testing.T, s ComputedStyle) {
				if *s.Box.PaddingLeft != 4 || s.BackgroundColor != nil {
					t.Errorf("md:btn applied below md: %+v", s)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ResolveFor(tt.classes, tt.ctx)
			if err != nil {
				t.Fatalf("ResolveFor: %v", err)
			}
			tt.check(t, got)
		})
	}

	// ParseClasses keeps ignoring variants, even inside macros.
	base, _ := s.ParseClasses("btn")
	if *base.BackgroundColor != 0x3b82f6ff {
		t.Errorf("ParseClasses applied a hover variant: %v", base.BackgroundColor)
	}
}

func TestVariantMacroCycle(t *testing.T) {
	s := New()
	th := DefaultTheme()
	th.Utilities = map[string][]string{"spin": {"hover:spin"}}
	s.SetTheme(th)

	got, err := s.ResolveFor("spin bg-white", Context{State: StateHover})
	if !errors.Is(err, ErrMacroCycle) {
		t.Fatalf("err = %v, want ErrMacroCycle", err)
	}
	if got.BackgroundColor == nil {
		t.Error("tokens after the cycle should still apply")
	}

	if err := s.LoadTheme("[utilities]\nspin = [\"hover:spin\"]"); !errors.Is(err, ErrMacroCycle) {
		t.Errorf("LoadTheme err = %v, want ErrMacroCycle", err)
	}
}

func TestThemeBreakpoints(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		format    Format
		want      BreakpointConfig
		wantField string
	}{
		{
			name:   "toml override",
			source: "[theme.breakpoints]\nmd = 900\n2xl = \"100rem\"",
			format: FormatTOML,
			want:   BreakpointConfig{SM: 640, MD: 900, LG: 1024, XL: 1280, XXL: 1600},
		},
		{
			name:   "yaml override",
			source: "theme:\n  breakpoints:\n    sm: 500px\n",
			format: FormatYAML,
			want:   BreakpointConfig{SM: 500, MD: 768, LG: 1024, XL: 1280, XXL: 1536},
		},
		{
			name:      "unknown name",
			source:    "[theme.breakpoints]\nxs = 320",
			format:    FormatTOML,
			wantField: "theme.breakpoints.xs",
		},
		{
			name:      "out of order",
			source:    "[theme.breakpoints]\nsm = 1000",
			format:    FormatTOML,
			wantField: "theme.breakpoints",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := DecodeTheme([]byte(tt.source), tt.format)
			if tt.wantField != "" {
				var te *ThemeError
				if !errors.As(err, &te) || te.Field != tt.wantField {
					t.Fatalf("err = %v, want field %s", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeTheme: %v", err)
			}
			if th.Breakpoints != tt.want {
				t.Errorf("Breakpoints = %+v, want %+v", th.Breakpoints, tt.want)
			}
		})
	}

	s := New()
	if err := s.LoadTheme("[theme.breakpoints]\nmd = 900"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.ResolveFor("p-1 md:p-2", Context{Width: 800})
	if *got.Box.PaddingTop != 4 {
		t.Errorf("md applied at 800 with md = 900")
	}
}
