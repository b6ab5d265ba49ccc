package centered

import (
	"github.com/agiangrant/centered-core/events"
	"github.com/agiangrant/centered-core/layout"
	"github.com/agiangrant/centered-core/tree"
)

// BeginFrame starts a new event batch and returns its frame number.
func (e *Engine) BeginFrame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.BeginFrame()
}

// PushEvent queues an event whose target the caller already resolved.
func (e *Engine) PushEvent(ev events.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(ev)
}

// TakeBatch hands off the events collected since BeginFrame.
func (e *Engine) TakeBatch() events.Batch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.TakeBatch()
}

// push forwards ev to the dispatcher and mirrors the resulting hover,
// focus and press changes into widget flags.
func (e *Engine) push(ev events.Event) {
	e.track(func() { e.events.PushEvent(ev) })
}

func (e *Engine) track(fn func()) {
	hovered, focused, pressed := e.events.Hovered(), e.events.Focused(), e.events.Pressed()
	fn()
	e.mirror(hovered, e.events.Hovered(), tree.FlagHovered)
	e.mirror(focused, e.events.Focused(), tree.FlagFocused)
	e.mirror(pressed, e.events.Pressed(), tree.FlagActive)
}

func (e *Engine) mirror(old, cur tree.WidgetID, flag tree.Flags) {
	if old == cur {
		return
	}
	e.tree.SetFlag(old, flag, false)
	e.tree.SetFlag(cur, flag, true)
}

// SetFocus moves keyboard focus to id, or clears it when id is zero.
// A stale id is ignored.
func (e *Engine) SetFocus(id tree.WidgetID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setFocus(id)
}

func (e *Engine) setFocus(id tree.WidgetID) {
	if !id.IsZero() && !e.tree.Contains(id) {
		return
	}
	e.track(func() { e.events.SetFocusedWidget(id) })
}

// Hovered returns the widget under the pointer, or zero.
func (e *Engine) Hovered() tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Hovered()
}

// Focused returns the widget with keyboard focus, or zero.
func (e *Engine) Focused() tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Focused()
}

// Pressed returns the widget holding the pointer, or zero.
func (e *Engine) Pressed() tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Pressed()
}

// PointerMove hit tests the position and queues a PointerMove for the
// widget found. It returns that widget, or zero.
func (e *Engine) PointerMove(x, y float32, mods events.Modifiers) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	target := e.hitTest(x, y)
	e.push(events.Event{Kind: events.PointerMove, Target: target, X: x, Y: y, Modifiers: mods})
	return target
}

// PointerDown queues a PointerDown for the widget under the position. Focus
// moves to the target when it accepts focus and is cleared otherwise.
func (e *Engine) PointerDown(x, y float32, button events.MouseButton, mods events.Modifiers) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	target := e.hitTest(x, y)
	e.push(events.Event{Kind: events.PointerDown, Target: target, X: x, Y: y, Button: button, Modifiers: mods})

	if w := e.tree.Get(target); w != nil && focusable(w.Kind) {
		e.setFocus(target)
	} else {
		e.setFocus(0)
	}
	return target
}

// PointerUp queues a PointerUp for the widget under the position. A click is
// a PointerDown and PointerUp with the same target; callers correlate them.
func (e *Engine) PointerUp(x, y float32, button events.MouseButton, mods events.Modifiers) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	target := e.hitTest(x, y)
	e.push(events.Event{Kind: events.PointerUp, Target: target, X: x, Y: y, Button: button, Modifiers: mods})
	return target
}

// Scroll queues a PointerScroll and scrolls the nearest clipping ancestor
// of the widget under the position, clamped to its content.
func (e *Engine) Scroll(x, y, dx, dy float32, mods events.Modifiers) tree.WidgetID {
	e.mu.Lock()
	defer e.mu.Unlock()
	target := e.hitTest(x, y)
	e.push(events.Event{Kind: events.PointerScroll, Target: target, X: x, Y: y, DeltaX: dx, DeltaY: dy, Modifiers: mods})

	for cur := target; !cur.IsZero(); cur = e.tree.Parent(cur) {
		n := e.nodeOf(cur)
		if !e.layout.Clips(n) {
			continue
		}
		maxX, maxY := e.scrollRange(n)
		s := e.layout.Scroll(n)
		e.layout.SetScroll(n, clamp(s.X+dx, 0, maxX), clamp(s.Y+dy, 0, maxY))
		break
	}
	return target
}

// scrollRange returns how far n's content extends past its border box.
func (e *Engine) scrollRange(n layout.NodeID) (float32, float32) {
	own, ok := e.layout.Layout(n)
	if !ok {
		return 0, 0
	}
	c, _ := e.layout.Constraints(n)
	var right, bottom float32
	for _, child := range e.layout.Children(n) {
		l, ok := e.layout.Layout(child)
		if !ok {
			continue
		}
		cc, _ := e.layout.Constraints(child)
		right = max(right, l.Position.X+l.Size.Width+cc.Margin.Right)
		bottom = max(bottom, l.Position.Y+l.Size.Height+cc.Margin.Bottom)
	}
	right += c.Padding.Right
	bottom += c.Padding.Bottom
	return max(0, right-own.Size.Width), max(0, bottom-own.Size.Height)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

// KeyDown queues a KeyDown targeted at the focused widget.
func (e *Engine) KeyDown(keyCode uint32, key string, mods events.Modifiers, repeat bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(events.Event{Kind: events.KeyDown, Target: e.events.Focused(), KeyCode: keyCode, Key: key, Modifiers: mods, Repeat: repeat})
}

// KeyUp queues a KeyUp targeted at the focused widget.
func (e *Engine) KeyUp(keyCode uint32, key string, mods events.Modifiers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(events.Event{Kind: events.KeyUp, Target: e.events.Focused(), KeyCode: keyCode, Key: key, Modifiers: mods})
}

// TextInput queues committed text for the focused widget.
func (e *Engine) TextInput(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(events.Event{Kind: events.TextInput, Target: e.events.Focused(), Text: text})
}

// RequestClose queues a WindowClose.
func (e *Engine) RequestClose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(events.Event{Kind: events.WindowClose})
}
