package tree

import (
	"encoding/json"
	"strings"

	"github.com/agiangrant/centered-core/internal/arena"
)

// WidgetID is a stable handle to a widget. It stays valid for the widget's
// lifetime and never resolves to a different widget after removal.
// The zero WidgetID means "no widget".
type WidgetID uint64

// IsZero reports whether id is the "no widget" value.
func (id WidgetID) IsZero() bool { return id == 0 }

func (id WidgetID) String() string { return arena.Handle(id).String() }

// Kind identifies the type of widget. Built-in kinds are the constants below;
// Custom builds an open-ended kind carrying a name.
type Kind string

const (
	// Container widgets
	KindVStack     Kind = "VStack"
	KindHStack     Kind = "HStack"
	KindZStack     Kind = "ZStack"
	KindContainer  Kind = "Container"
	KindScrollView Kind = "ScrollView"

	// Text widgets
	KindText    Kind = "Text"
	KindHeading Kind = "Heading"
	KindLabel   Kind = "Label"

	// Input widgets
	KindButton    Kind = "Button"
	KindTextField Kind = "TextField"
	KindTextArea  Kind = "TextArea"
	KindCheckbox  Kind = "Checkbox"
	KindRadio     Kind = "Radio"
	KindSlider    Kind = "Slider"

	// Media
	KindImage Kind = "Image"
)

const customPrefix = "custom:"

// Custom returns a custom kind with the given name.
func Custom(name string) Kind {
	return Kind(customPrefix + name)
}

// IsCustom reports whether k was built with Custom.
func (k Kind) IsCustom() bool {
	return strings.HasPrefix(string(k), customPrefix)
}

// CustomName returns the name of a custom kind, or "" for built-in kinds.
func (k Kind) CustomName() string {
	if !k.IsCustom() {
		return ""
	}
	return string(k[len(customPrefix):])
}

// Flags holds a widget's interaction state.
type Flags uint8

const (
	FlagHovered Flags = 1 << iota
	FlagFocused
	FlagActive
	FlagDisabled
	FlagVisible
)

func (f Flags) Hovered() bool  { return f&FlagHovered != 0 }
func (f Flags) Focused() bool  { return f&FlagFocused != 0 }
func (f Flags) Active() bool   { return f&FlagActive != 0 }
func (f Flags) Disabled() bool { return f&FlagDisabled != 0 }
func (f Flags) Visible() bool  { return f&FlagVisible != 0 }

// Payload is the host-supplied content of a widget. Delta updates replace it
// wholesale.
type Payload struct {
	Kind    Kind            `json:"kind" yaml:"kind"`
	Classes string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Text    string          `json:"text,omitempty" yaml:"text,omitempty"`
	Custom  json.RawMessage `json:"custom,omitempty" yaml:"-"`
}

// Widget is a node in the retained hierarchy. Structure, dirty state and
// generation are owned by the Tree; read them through the accessors.
type Widget struct {
	Payload

	parent   WidgetID
	children []WidgetID
	layout   uint64
	flags    Flags
	dirty    bool
	gen      uint64
}

// Parent returns the parent id, or zero for the root and detached widgets.
func (w *Widget) Parent() WidgetID { return w.parent }

// Children returns the child ids in paint order. The slice must not be modified.
func (w *Widget) Children() []WidgetID { return w.children }

// LayoutNode returns the opaque handle of the associated layout node.
func (w *Widget) LayoutNode() uint64 { return w.layout }

// Flags returns the interaction state.
func (w *Widget) Flags() Flags { return w.flags }

// Dirty reports whether the widget changed since it was last cleared.
func (w *Widget) Dirty() bool { return w.dirty }

// Generation returns the per-widget mutation counter.
func (w *Widget) Generation() uint64 { return w.gen }

// HasText reports whether the widget carries a text payload.
func (w *Widget) HasText() bool { return w.Text != "" }

func (w *Widget) indexOf(child WidgetID) int {
	for i, c := range w.children {
		if c == child {
			return i
		}
	}
	return -1
}
