// Package events collects the per-frame input stream and tracks which
// widget is hovered, focused and pressed.
package events

import (
	"fmt"

	"github.com/agiangrant/centered-core/tree"
)

// Kind identifies the kind of event.
type Kind uint8

const (
	// Pointer events
	PointerMove Kind = iota + 1
	PointerDown
	PointerUp
	PointerScroll

	// Keyboard events
	KeyDown
	KeyUp
	TextInput

	// Focus events
	FocusGained
	FocusLost

	// Window events
	WindowResized
	WindowClose
)

var kindNames = [...]string{
	PointerMove:   "pointer-move",
	PointerDown:   "pointer-down",
	PointerUp:     "pointer-up",
	PointerScroll: "pointer-scroll",
	KeyDown:       "key-down",
	KeyUp:         "key-up",
	TextInput:     "text-input",
	FocusGained:   "focus-gained",
	FocusLost:     "focus-lost",
	WindowResized: "window-resized",
	WindowClose:   "window-close",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name != "" && name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// MouseButton identifies which pointer button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Event is one input record. Which fields are meaningful depends on Kind.
// Target is resolved by the caller (hit testing for pointer events, the
// focused widget for keyboard events) and may be zero.
type Event struct {
	Kind   Kind          `json:"kind"`
	Target tree.WidgetID `json:"target,omitempty"`

	// Pointer position in window coordinates.
	X float32 `json:"x,omitempty"`
	Y float32 `json:"y,omitempty"`

	Button    MouseButton `json:"button,omitempty"`
	Modifiers Modifiers   `json:"modifiers,omitempty"`

	// PointerScroll
	DeltaX float32 `json:"deltaX,omitempty"`
	DeltaY float32 `json:"deltaY,omitempty"`

	// KeyDown, KeyUp
	KeyCode uint32 `json:"keyCode,omitempty"`
	Key     string `json:"key,omitempty"`
	Repeat  bool   `json:"repeat,omitempty"`

	// TextInput
	Text string `json:"text,omitempty"`

	// WindowResized
	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`

	// Host timestamp in milliseconds.
	Timestamp uint64 `json:"timestamp,omitempty"`
}

// Batch is the ordered list of events collected during one frame.
type Batch struct {
	Frame  uint64  `json:"frame"`
	Events []Event `json:"events"`
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int { return len(b.Events) }
