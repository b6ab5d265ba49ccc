package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"gopkg.in/yaml.v3"

	centered "github.com/agiangrant/centered-core"
)

var (
	kindStyle  = lipgloss.NewStyle().Bold(true)
	rectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	textStyle  = lipgloss.NewStyle().Italic(true)
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	branchLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563")).MarginRight(1)
)

// Layout implements the 'ctd layout' command. It mounts a scene file in an
// engine sized by the project config and prints the laid-out tree.
func Layout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	dir := fs.String("dir", ".", "Project directory")
	width := fs.Uint("width", 0, "Window width (defaults to centered.toml)")
	height := fs.Uint("height", 0, "Window height (defaults to centered.toml)")
	verbose := fs.Bool("v", false, "Log engine activity to stderr")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: ctd layout [--width w] [--height h] scene.yaml")
	}

	scene, err := ReadScene(fs.Arg(0))
	if err != nil {
		return err
	}

	config, err := LoadConfig(*dir)
	if err != nil {
		return err
	}
	if *width > 0 {
		config.Window.Width = uint32(*width)
	}
	if *height > 0 {
		config.Window.Height = uint32(*height)
	}
	engineConfig, err := config.EngineConfig(*dir)
	if err != nil {
		return err
	}
	if *verbose {
		engineConfig.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	engine, err := centered.NewEngine(engineConfig)
	if err != nil {
		return err
	}
	defer engine.Close()

	engine.Mount(0, scene)
	return PrintLayout(os.Stdout, engine.Frame())
}

// ReadScene decodes a scene file, JSON or YAML by extension.
func ReadScene(path string) (centered.Node, error) {
	var n centered.Node
	data, err := os.ReadFile(path)
	if err != nil {
		return n, fmt.Errorf("failed to read scene: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &n)
	} else {
		err = yaml.Unmarshal(data, &n)
	}
	if err != nil {
		return n, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if n.Kind == "" {
		return n, fmt.Errorf("%s: root node has no kind", path)
	}
	return n, nil
}

// PrintLayout writes the paint list as a tree, one widget per line.
func PrintLayout(w io.Writer, items []centered.DrawItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "(empty scene)")
		return err
	}

	// Items arrive depth first, so a stack of open branches rebuilds nesting.
	var stack []*ltree.Tree
	var root *ltree.Tree
	for _, item := range items {
		node := ltree.Root(label(item)).
			Enumerator(ltree.RoundedEnumerator).
			EnumeratorStyle(branchLine)
		stack = stack[:min(item.Depth, len(stack))]
		if len(stack) == 0 {
			root = node
		} else {
			stack[len(stack)-1].Child(node)
		}
		stack = append(stack, node)
	}
	_, err := fmt.Fprintln(w, root.String())
	return err
}

func label(item centered.DrawItem) string {
	var b strings.Builder
	kind := kindStyle
	if bg := item.Style.BackgroundColor; bg != nil {
		kind = kind.Foreground(lipgloss.Color(fmt.Sprintf("#%06x", uint32(*bg)>>8)))
	}
	b.WriteString(kind.Render(string(item.Kind)))

	r := item.Rect
	b.WriteString(" ")
	b.WriteString(rectStyle.Render(fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)))

	if item.Text != "" {
		b.WriteString(" ")
		b.WriteString(textStyle.Render(fmt.Sprintf("%q", item.Text)))
	}

	var flags []string
	if item.Flags.Disabled() {
		flags = append(flags, "disabled")
	}
	if item.Clipped {
		c := item.Clip
		flags = append(flags, fmt.Sprintf("clip %g,%g %gx%g", c.X, c.Y, c.Width, c.Height))
	}
	if len(flags) > 0 {
		b.WriteString(" ")
		b.WriteString(flagStyle.Render(strings.Join(flags, " ")))
	}
	return b.String()
}
