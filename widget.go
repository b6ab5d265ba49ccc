package centered

import (
	"encoding/json"

	"github.com/agiangrant/centered-core/tree"
)

// Node is a declarative description of a widget subtree. Mount turns it
// into live widgets; scene files decode into it.
type Node struct {
	Kind     tree.Kind       `json:"kind" yaml:"kind"`
	Classes  string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Custom   json.RawMessage `json:"custom,omitempty" yaml:"-"`
	Children []Node          `json:"children,omitempty" yaml:"children,omitempty"`
}

// Payload returns the widget payload n describes.
func (n *Node) Payload() tree.Payload {
	return tree.Payload{Kind: n.Kind, Classes: n.Classes, Text: n.Text, Custom: n.Custom}
}

// Count returns the number of widgets in the subtree.
func (n *Node) Count() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].Count()
	}
	return total
}

// WithChildren sets the children of this node
func (n Node) WithChildren(children ...Node) Node {
	n.Children = children
	return n
}

// Convenience constructors

// VStack creates a vertical stack container
func VStack(classes string, children ...Node) Node {
	return Node{Kind: tree.KindVStack, Classes: classes, Children: children}
}

// HStack creates a horizontal stack container
func HStack(classes string, children ...Node) Node {
	return Node{Kind: tree.KindHStack, Classes: classes, Children: children}
}

// ZStack creates an overlapping stack container
func ZStack(classes string, children ...Node) Node {
	return Node{Kind: tree.KindZStack, Classes: classes, Children: children}
}

// Container creates a generic container
func Container(classes string, children ...Node) Node {
	return Node{Kind: tree.KindContainer, Classes: classes, Children: children}
}

// ScrollView creates a scrollable, clipping container
func ScrollView(classes string, children ...Node) Node {
	return Node{Kind: tree.KindScrollView, Classes: classes, Children: children}
}

// Text creates a text widget
func Text(text, classes string) Node {
	return Node{Kind: tree.KindText, Classes: classes, Text: text}
}

// Heading creates a heading widget
func Heading(text, classes string) Node {
	return Node{Kind: tree.KindHeading, Classes: classes, Text: text}
}

// Label creates a label widget
func Label(text, classes string) Node {
	return Node{Kind: tree.KindLabel, Classes: classes, Text: text}
}

// Button creates a button widget
func Button(text, classes string) Node {
	return Node{Kind: tree.KindButton, Classes: classes, Text: text}
}

// TextField creates a text input field
func TextField(placeholder, classes string) Node {
	return Node{Kind: tree.KindTextField, Classes: classes, Text: placeholder}
}

// TextArea creates a multi-line text input
func TextArea(placeholder, classes string) Node {
	return Node{Kind: tree.KindTextArea, Classes: classes, Text: placeholder}
}

// Checkbox creates a checkbox widget
func Checkbox(label, classes string) Node {
	return Node{Kind: tree.KindCheckbox, Classes: classes, Text: label}
}

// Radio creates a radio button widget
func Radio(label, classes string) Node {
	return Node{Kind: tree.KindRadio, Classes: classes, Text: label}
}

// Slider creates a slider widget
func Slider(classes string) Node {
	return Node{Kind: tree.KindSlider, Classes: classes}
}

// Image creates an image widget. src is carried as the text payload.
func Image(src, classes string) Node {
	return Node{Kind: tree.KindImage, Classes: classes, Text: src}
}

// Custom creates a widget of a custom kind with an opaque payload.
func Custom(name, classes string, data json.RawMessage, children ...Node) Node {
	return Node{Kind: tree.Custom(name), Classes: classes, Custom: data, Children: children}
}

// focusable reports whether pointer down on a widget of kind k moves
// keyboard focus to it.
func focusable(k tree.Kind) bool {
	switch k {
	case tree.KindButton, tree.KindTextField, tree.KindTextArea,
		tree.KindCheckbox, tree.KindRadio, tree.KindSlider:
		return true
	default:
		return false
	}
}
