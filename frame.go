package centered

import (
	"github.com/agiangrant/centered-core/layout"
	"github.com/agiangrant/centered-core/tree"
	"github.com/agiangrant/centered-core/tw"
)

// DrawItem is one entry of the paint list.
type DrawItem struct {
	ID   tree.WidgetID
	Kind tree.Kind
	Text string

	// Rect is the border box in window coordinates.
	Rect layout.Rect

	// Clip is the intersection of every clipping ancestor's border box.
	// It is only meaningful when Clipped is set.
	Clip    layout.Rect
	Clipped bool

	Depth int
	Flags tree.Flags
	Style tw.ComputedStyle
}

// Frame runs the layout pass and returns the visible widgets in paint
// order: depth-first, children left to right, later items on top.
// Dirty flags on the widget tree are cleared.
func (e *Engine) Frame() []DrawItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calculate()
	items := make([]DrawItem, 0, e.tree.Len())
	e.paint(e.tree.Root(), 0, layout.Rect{}, false, &items)
	e.tree.ClearAllDirty()
	return items
}

func (e *Engine) paint(id tree.WidgetID, depth int, clip layout.Rect, clipped bool, items *[]DrawItem) {
	w := e.tree.Get(id)
	if w == nil || !w.Flags().Visible() {
		return
	}
	n := layout.NodeID(w.LayoutNode())
	rect, _ := e.layout.AbsoluteRect(n)

	*items = append(*items, DrawItem{
		ID:      id,
		Kind:    w.Kind,
		Text:    w.Text,
		Rect:    rect,
		Clip:    clip,
		Clipped: clipped,
		Depth:   depth,
		Flags:   w.Flags(),
		Style:   e.styleOf(w),
	})

	if e.layout.Clips(n) {
		clip, clipped = intersect(clip, clipped, rect), true
	}
	for _, c := range w.Children() {
		e.paint(c, depth+1, clip, clipped, items)
	}
}

// HitTest returns the topmost visible, enabled widget containing the point,
// or zero. Children are tested in reverse paint order before their parent,
// scroll offsets are applied, and clipping ancestors hide whatever falls
// outside them. Disabled widgets hide their whole subtree.
//
// HitTest uses the geometry of the last layout pass.
func (e *Engine) HitTest(x, y float32) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hitTest(x, y)
}

func (e *Engine) hitTest(x, y float32) tree.WidgetID {
	return e.hitTestRecursive(e.tree.Root(), x, y)
}

func (e *Engine) hitTestRecursive(id tree.WidgetID, x, y float32) tree.WidgetID {
	w := e.tree.Get(id)
	if w == nil || !w.Flags().Visible() || w.Flags().Disabled() {
		return 0
	}
	n := layout.NodeID(w.LayoutNode())
	rect, _ := e.layout.AbsoluteRect(n)
	inside := rect.Contains(x, y)
	if e.layout.Clips(n) && !inside {
		return 0
	}

	children := w.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := e.hitTestRecursive(children[i], x, y); !hit.IsZero() {
			return hit
		}
	}
	if inside {
		return id
	}
	return 0
}

func intersect(a layout.Rect, ok bool, b layout.Rect) layout.Rect {
	if !ok {
		return b
	}
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	return layout.Rect{X: x0, Y: y0, Width: max(0, x1-x0), Height: max(0, y1-y0)}
}
