package events

import "github.com/agiangrant/centered-core/tree"

// Dispatcher collects events for the current frame and tracks interaction
// state. State changes happen as a side effect of PushEvent and persist
// across frames until another event changes them.
// It is a plain data structure; callers serialize access.
type Dispatcher struct {
	frame uint64
	batch Batch

	hovered tree.WidgetID
	focused tree.WidgetID
	pressed tree.WidgetID
}

// NewDispatcher creates a dispatcher at frame zero with an empty batch.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// BeginFrame advances the frame counter and starts an empty batch.
// Events left untaken in the previous batch are dropped.
func (d *Dispatcher) BeginFrame() uint64 {
	d.frame++
	d.batch = Batch{Frame: d.frame}
	return d.frame
}

// Frame returns the current frame number.
func (d *Dispatcher) Frame() uint64 { return d.frame }

// PushEvent updates interaction state from e, then appends it to the batch.
func (d *Dispatcher) PushEvent(e Event) {
	switch e.Kind {
	case PointerMove:
		d.hovered = e.Target
	case PointerDown:
		d.pressed = e.Target
	case PointerUp:
		d.pressed = 0
	case FocusGained:
		d.focused = e.Target
	case FocusLost:
		d.focused = 0
	}
	d.batch.Events = append(d.batch.Events, e)
}

// SetFocusedWidget moves focus to id, which may be zero. When focus changes
// a FocusLost for the old widget and a FocusGained for the new one are
// pushed, in that order. Either is omitted when its widget is zero.
func (d *Dispatcher) SetFocusedWidget(id tree.WidgetID) {
	old := d.focused
	if old == id {
		return
	}
	if !old.IsZero() {
		d.PushEvent(Event{Kind: FocusLost, Target: old})
	}
	if !id.IsZero() {
		d.PushEvent(Event{Kind: FocusGained, Target: id})
	}
	d.focused = id
}

// TakeBatch hands off the current batch and replaces it with an empty one
// for the same frame.
func (d *Dispatcher) TakeBatch() Batch {
	b := d.batch
	d.batch = Batch{Frame: d.frame}
	return b
}

// Pending returns the number of events waiting in the current batch.
func (d *Dispatcher) Pending() int { return len(d.batch.Events) }

// Hovered returns the widget under the pointer, or zero.
func (d *Dispatcher) Hovered() tree.WidgetID { return d.hovered }

// Focused returns the widget with keyboard focus, or zero.
func (d *Dispatcher) Focused() tree.WidgetID { return d.focused }

// Pressed returns the widget that received the last pointer down while the
// button is held, or zero.
func (d *Dispatcher) Pressed() tree.WidgetID { return d.pressed }

// Forget clears any tracked reference to id. Call it when id is removed
// from the tree.
func (d *Dispatcher) Forget(id tree.WidgetID) {
	if d.hovered == id {
		d.hovered = 0
	}
	if d.focused == id {
		d.focused = 0
	}
	if d.pressed == id {
		d.pressed = 0
	}
}
