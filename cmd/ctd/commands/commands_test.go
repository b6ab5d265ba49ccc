package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	centered "github.com/agiangrant/centered-core"
	"github.com/agiangrant/centered-core/tree"
	"github.com/agiangrant/centered-core/tw"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty means no file
		want    ProjectConfig
		wantErr bool
	}{
		{
			name: "missing file",
			want: DefaultConfig(),
		},
		{
			name:    "partial",
			content: "[window]\nwidth = 1024\n",
			want: ProjectConfig{
				Window: WindowConfig{Width: 1024, Height: 600},
				Build:  BuildConfig{ThemeFile: "theme.toml"},
			},
		},
		{
			name:    "theme file",
			content: "[build]\ntheme_file = \"style/theme.yaml\"\n",
			want: ProjectConfig{
				Window: WindowConfig{Width: 800, Height: 600},
				Build:  BuildConfig{ThemeFile: "style/theme.yaml"},
			},
		},
		{
			name:    "bad toml",
			content: "[window\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				writeFile(t, dir, ConfigFile, tt.content)
			}
			got, err := LoadConfig(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("LoadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := ProjectConfig{
		Window: WindowConfig{Width: 320, Height: 480},
		Build:  BuildConfig{ThemeFile: "dark.yaml"},
	}
	if err := SaveConfig(dir, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestEngineConfig(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()

	cfg, err := config.EngineConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "" {
		t.Errorf("missing theme file gave theme %q", cfg.Theme)
	}

	writeFile(t, dir, "theme.yaml", "theme:\n  colors:\n    brand: \"#112233\"\n")
	config.Build.ThemeFile = "theme.yaml"
	cfg, err = config.EngineConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ThemeFormat != tw.FormatYAML || !strings.Contains(cfg.Theme, "brand") {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProperties(t *testing.T) {
	styles := tw.New()
	cs, err := styles.ParseClasses("bg-blue-500 p-4 w-1/2 font-bold")
	if err != nil {
		t.Fatal(err)
	}
	props := properties(cs)
	want := map[string]any{
		"background-color": "#3b82f6ff",
		"padding-top":      float64(16),
		"padding-left":     float64(16),
		"width":            "50%",
		"font-weight":      int64(700),
	}
	for k, v := range want {
		if props[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, props[k], props[k], v)
		}
	}

	var buf bytes.Buffer
	if err := writeStyle(&buf, cs, true); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "background-color = ") || !strings.Contains(out, "#3b82f6ff") {
		t.Errorf("toml output:\n%s", buf.String())
	}
}

func TestClassesCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "theme.toml", `[utilities]
btn = ["bg-blue-500", "hover:bg-blue-600", "px-4"]
`)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "base",
			args: []string{"btn"},
			want: []string{"background-color", "#3b82f6ff", "padding-left"},
		},
		{
			name: "hover inside macro",
			args: []string{"--state", "hover", "btn"},
			want: []string{"#2563ebff"},
		},
		{
			name: "breakpoint",
			args: []string{"--width", "800", "p-1 md:p-4"},
			want: []string{"padding-top      16"},
		},
		{
			name: "dark",
			args: []string{"--dark", "bg-white dark:bg-black"},
			want: []string{"#000000ff"},
		},
		{
			name: "toml with state",
			args: []string{"--toml", "--state", "focus", "focus:text-red-500"},
			want: []string{"text-color = ", "#ef4444ff"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"--dir", dir}, tt.args...)
			if err := runClasses(args, &stdout, &stderr); err != nil {
				t.Fatalf("runClasses: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}
			if stderr.Len() != 0 {
				t.Errorf("unexpected stderr: %s", stderr.String())
			}
		})
	}

	var stdout, stderr bytes.Buffer
	if err := runClasses([]string{"--dir", dir, "--state", "pressed", "btn"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestParseState(t *testing.T) {
	if s, err := parseState("hover"); err != nil || s != tw.StateHover {
		t.Errorf("parseState(hover) = %v, %v", s, err)
	}
	if _, err := parseState("pressed"); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestReadScene(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "scene.yaml", `kind: VStack
classes: p-4 gap-2
children:
  - kind: Text
    text: Hello
  - kind: Button
    text: OK
    classes: h-8
`)
	jsonPath := writeFile(t, dir, "scene.json",
		`{"kind":"VStack","classes":"p-4 gap-2","children":[{"kind":"Text","text":"Hello"},{"kind":"Button","text":"OK","classes":"h-8"}]}`)

	want := centered.VStack("p-4 gap-2",
		centered.Text("Hello", ""),
		centered.Button("OK", "h-8"),
	)
	for _, path := range []string{yamlPath, jsonPath} {
		got, err := ReadScene(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if got.Count() != 3 || got.Kind != tree.KindVStack || got.Children[1].Text != want.Children[1].Text {
			t.Errorf("%s: got %+v", path, got)
		}
	}

	empty := writeFile(t, dir, "empty.yaml", "classes: p-4\n")
	if _, err := ReadScene(empty); err == nil {
		t.Error("expected error for scene without kind")
	}
}

func TestPrintLayout(t *testing.T) {
	e, err := centered.NewEngine(centered.EngineConfig{Width: 400, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	e.Mount(0, centered.VStack("p-4",
		centered.Text("Hello", "h-5"),
		centered.ScrollView("h-10", centered.Button("OK", "h-8")),
	))

	var buf bytes.Buffer
	if err := PrintLayout(&buf, e.Frame()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"VStack", "Text", `"Hello"`, "[16,16 368x20]", "ScrollView", "Button", "clip 16,36 368x40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(strings.TrimSpace(out), "\n") + 1; lines != 4 {
		t.Errorf("got %d lines, want 4:\n%s", lines, out)
	}

	buf.Reset()
	if err := PrintLayout(&buf, nil); err != nil || !strings.Contains(buf.String(), "empty") {
		t.Errorf("empty scene output %q, err %v", buf.String(), err)
	}
}
