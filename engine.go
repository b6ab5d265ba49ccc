// Package centered is the retained-mode scene-graph core of the Centered UI
// engine. An Engine owns one widget tree, its mirrored layout tree, the
// style system and the per-frame event dispatcher, and serializes every call
// behind a single lock.
package centered

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/agiangrant/centered-core/events"
	"github.com/agiangrant/centered-core/layout"
	"github.com/agiangrant/centered-core/tree"
	"github.com/agiangrant/centered-core/tw"
)

// ErrInvalidDelta is returned by ApplyDeltaJSON for a delta that cannot be
// decoded or that creates a widget without a kind.
var ErrInvalidDelta = errors.New("invalid delta")

// Engine represents the Centered UI engine
type Engine struct {
	mu sync.Mutex

	log    *slog.Logger
	width  float32
	height float32
	dark   bool

	tree   *tree.Tree
	layout *layout.Engine
	styles *tw.StyleSystem
	events *events.Dispatcher
}

// NewEngine creates a new engine with the given configuration
func NewEngine(config EngineConfig) (*Engine, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		log:    logger,
		width:  float32(config.Width),
		height: float32(config.Height),
		dark:   config.DarkMode,
		tree:   tree.New(),
		layout: layout.New(),
		styles: tw.New(),
		events: events.NewDispatcher(),
	}
	e.tree.SetObserver(e.observe)

	if config.Theme != "" {
		format := config.ThemeFormat
		if format == "" {
			format = tw.FormatTOML
		}
		if err := e.styles.LoadThemeFormat([]byte(config.Theme), format); err != nil {
			return nil, fmt.Errorf("failed to load theme: %w", err)
		}
	}
	return e, nil
}

// observe mirrors widget tree changes into the layout tree. It runs inside
// whichever locked call mutated the tree.
func (e *Engine) observe(u tree.Update) {
	switch u.Type {
	case tree.UpdateAdd:
		n := e.layout.Create(layout.Block)
		e.tree.SetLayoutNode(u.WidgetID, uint64(n))
		e.applyStyle(u.WidgetID, u.Widget)

	case tree.UpdateProperty:
		e.applyStyle(u.WidgetID, u.Widget)

	case tree.UpdateAttach:
		e.layout.AddChild(e.nodeOf(u.Parent), e.nodeOf(u.WidgetID))

	case tree.UpdateDetach:
		e.layout.RemoveChild(e.nodeOf(u.Parent), e.nodeOf(u.WidgetID))

	case tree.UpdateRemove:
		e.layout.Remove(layout.NodeID(u.Widget.LayoutNode()))
		e.events.Forget(u.WidgetID)
	}
	e.syncRoot()
}

func (e *Engine) nodeOf(id tree.WidgetID) layout.NodeID {
	if w := e.tree.Get(id); w != nil {
		return layout.NodeID(w.LayoutNode())
	}
	return 0
}

// syncRoot keeps the layout root on the widget root's node.
func (e *Engine) syncRoot() {
	if n := e.nodeOf(e.tree.Root()); n != e.layout.Root() && !n.IsZero() {
		e.layout.SetRoot(n)
	}
}

// applyStyle translates w's classes into layout input. Breakpoint and dark
// variants affect layout; state variants are visual only.
func (e *Engine) applyStyle(id tree.WidgetID, w *tree.Widget) {
	style, err := e.styles.ResolveFor(w.Classes, tw.Context{Width: e.width, Dark: e.dark})
	if err != nil {
		e.log.Warn("class resolution failed", "widget", id, "classes", w.Classes, "err", err)
	}

	n := layout.NodeID(w.LayoutNode())
	algorithm, c, clip := boxLayout(w.Kind, style.Box)
	if cur, ok := e.layout.Constraints(n); ok && cur != c {
		e.layout.SetConstraints(n, c)
	}
	e.layout.SetAlgorithm(n, algorithm)
	e.layout.SetClip(n, clip)
}

// reapplyStyles refreshes layout input for every widget after a theme,
// breakpoint or dark mode change.
func (e *Engine) reapplyStyles() {
	for id, w := range e.tree.Widgets() {
		e.applyStyle(id, w)
	}
}

// Close releases the engine's trees.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ids []tree.WidgetID
	for id := range e.tree.Widgets() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		e.tree.Remove(id)
	}
}

// LoadStylesFromFile loads a theme file, TOML or YAML by extension.
func (e *Engine) LoadStylesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file: %w", err)
	}
	return e.LoadStylesFormat(data, tw.FormatForPath(path))
}

// LoadStyles loads theme styles from a TOML string
func (e *Engine) LoadStyles(source string) error {
	return e.LoadStylesFormat([]byte(source), tw.FormatTOML)
}

// LoadStylesFormat replaces the theme. On failure the previous theme stays
// active.
func (e *Engine) LoadStylesFormat(data []byte, format tw.Format) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.styles.LoadThemeFormat(data, format); err != nil {
		e.log.Warn("theme rejected", "format", format, "err", err)
		return fmt.Errorf("failed to load styles: %w", err)
	}
	e.reapplyStyles()
	e.log.Debug("theme loaded", "format", format, "colors", len(e.styles.Theme().Colors),
		"macros", len(e.styles.Theme().Utilities))
	return nil
}

// Resize changes the space offered to the root and queues a WindowResized
// event.
func (e *Engine) Resize(width, height uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp := e.styles.Theme().Breakpoints
	before := bp.ActiveBreakpoint(e.width)
	e.width, e.height = float32(width), float32(height)
	if after := bp.ActiveBreakpoint(e.width); after != before {
		e.reapplyStyles()
		e.log.Debug("breakpoint changed", "from", before, "to", after)
	}
	e.push(events.Event{Kind: events.WindowResized, Width: e.width, Height: e.height})
}

// SetDarkMode switches dark: variants on or off.
func (e *Engine) SetDarkMode(dark bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dark == dark {
		return
	}
	e.dark = dark
	e.reapplyStyles()
}

// DarkMode reports whether dark: variants apply.
func (e *Engine) DarkMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dark
}

// GetSize returns the current width and height
func (e *Engine) GetSize() (uint32, uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return uint32(e.width), uint32(e.height)
}

// CreateWidget creates an unattached widget with its layout node. The first
// widget created in an engine without a root becomes the root.
func (e *Engine) CreateWidget(p tree.Payload) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.CreateWith(p)
}

// Mount creates the subtree described by n and appends it to parent. A zero
// parent makes the subtree the new root, removing the old one.
func (e *Engine) Mount(parent tree.WidgetID, n Node) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !parent.IsZero() {
		if !e.tree.Contains(parent) {
			return 0
		}
		if e.tree.Root().IsZero() {
			e.tree.SetRoot(parent)
		}
	}
	id := e.mount(n)
	if parent.IsZero() {
		e.tree.SetRoot(id)
	} else {
		e.tree.AddChild(parent, id)
	}
	e.syncRoot()
	return id
}

func (e *Engine) mount(n Node) tree.WidgetID {
	id := e.tree.CreateWith(n.Payload())
	for _, c := range n.Children {
		e.tree.AddChild(id, e.mount(c))
	}
	return id
}

// AddChild appends child to parent. See tree.Tree.AddChild.
func (e *Engine) AddChild(parent, child tree.WidgetID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.AddChild(parent, child)
}

// RemoveChild detaches child from parent without freeing it.
func (e *Engine) RemoveChild(parent, child tree.WidgetID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.RemoveChild(parent, child)
}

// Remove frees the subtree rooted at id and returns how many widgets were
// freed.
func (e *Engine) Remove(id tree.WidgetID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tree.Remove(id))
}

// SetRoot makes id the root, removing the previous root's subtree.
func (e *Engine) SetRoot(id tree.WidgetID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tree.SetRoot(id)
	e.syncRoot()
}

// Root returns the root widget, or zero.
func (e *Engine) Root() tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Root()
}

// Update replaces id's payload.
func (e *Engine) Update(id tree.WidgetID, p tree.Payload) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Update(id, p)
}

// SetClasses replaces only id's class string.
func (e *Engine) SetClasses(id tree.WidgetID, classes string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.tree.Get(id)
	if w == nil {
		return false
	}
	p := w.Payload
	p.Classes = classes
	return e.tree.Update(id, p)
}

// SetDisabled toggles the disabled flag. Disabled widgets and their
// subtrees are skipped by hit testing.
func (e *Engine) SetDisabled(id tree.WidgetID, disabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.SetFlag(id, tree.FlagDisabled, disabled)
}

// SetVisible toggles the visible flag. Invisible subtrees are neither
// painted nor hit tested.
func (e *Engine) SetVisible(id tree.WidgetID, visible bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.SetFlag(id, tree.FlagVisible, visible)
}

// ApplyDelta applies a partial update. See tree.Tree.ApplyDelta.
func (e *Engine) ApplyDelta(d tree.Delta) tree.DeltaResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := e.tree.ApplyDelta(d)
	e.syncRoot()
	e.log.Debug("delta applied",
		"created", len(res.Created),
		"updated", res.Updated,
		"reparented", res.Reparented,
		"removed", len(res.Removed),
		"skipped", res.Skipped)
	return res
}

// ApplyDeltaJSON decodes and applies a delta in its JSON wire form.
func (e *Engine) ApplyDeltaJSON(data []byte) (tree.DeltaResult, error) {
	var d tree.Delta
	if err := json.Unmarshal(data, &d); err != nil {
		return tree.DeltaResult{}, fmt.Errorf("%w: %v", ErrInvalidDelta, err)
	}
	for i, u := range d.Updates {
		if u.Kind == "" {
			return tree.DeltaResult{}, fmt.Errorf("%w: update %d has no kind", ErrInvalidDelta, i)
		}
	}
	return e.ApplyDelta(d), nil
}

// WidgetInfo is a snapshot of one widget.
type WidgetInfo struct {
	ID         tree.WidgetID
	Payload    tree.Payload
	Parent     tree.WidgetID
	Children   []tree.WidgetID
	Flags      tree.Flags
	Generation uint64
}

// Widget returns a snapshot of id.
func (e *Engine) Widget(id tree.WidgetID) (WidgetInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.tree.Get(id)
	if w == nil {
		return WidgetInfo{}, false
	}
	return WidgetInfo{
		ID:         id,
		Payload:    w.Payload,
		Parent:     w.Parent(),
		Children:   e.tree.Children(id),
		Flags:      w.Flags(),
		Generation: w.Generation(),
	}, true
}

// WidgetCount returns the number of live widgets.
func (e *Engine) WidgetCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Len()
}

// Style resolves id's classes for the window width, dark mode and its
// current interaction state.
func (e *Engine) Style(id tree.WidgetID) (tw.ComputedStyle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.tree.Get(id)
	if w == nil {
		return tw.ComputedStyle{}, false
	}
	return e.styleOf(w), true
}

// styleOf is on the paint path. Class errors were already logged by
// applyStyle and are dropped here.
func (e *Engine) styleOf(w *tree.Widget) tw.ComputedStyle {
	style, _ := e.styles.ResolveFor(w.Classes, tw.Context{Width: e.width, Dark: e.dark, State: stateOf(w.Flags())})
	return style
}

// stateOf picks the single variant applied for a flag set. Disabled wins,
// then active, focus and hover.
func stateOf(f tree.Flags) tw.State {
	switch {
	case f.Disabled():
		return tw.StateDisabled
	case f.Active():
		return tw.StateActive
	case f.Focused():
		return tw.StateFocus
	case f.Hovered():
		return tw.StateHover
	default:
		return tw.StateDefault
	}
}

// Calculate runs the layout pass against the window size and returns the
// number of recomputed nodes.
func (e *Engine) Calculate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calculate()
}

func (e *Engine) calculate() int {
	e.syncRoot()
	n := e.layout.Calculate(e.width, e.height)
	if n > 0 {
		e.log.Debug("layout pass", "recomputed", n, "nodes", e.layout.Len())
	}
	return n
}

// Rect returns id's border box in window coordinates as of the last layout
// pass, scroll offsets applied.
func (e *Engine) Rect(id tree.WidgetID) (layout.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.AbsoluteRect(e.nodeOf(id))
}
