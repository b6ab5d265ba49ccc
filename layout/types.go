package layout

import (
	"fmt"

	"github.com/agiangrant/centered-core/internal/arena"
)

// NodeID is a stable handle to a layout node. The zero NodeID means "none".
type NodeID uint64

// IsZero reports whether id is the "no node" value.
func (id NodeID) IsZero() bool { return id == 0 }

func (id NodeID) String() string { return arena.Handle(id).String() }

// Algorithm selects how a node sizes itself and places its children.
type Algorithm uint8

const (
	// Flex places in-flow children along the main axis (Direction).
	// Grow/shrink distribution is not performed; each child keeps the size
	// it resolved on its own.
	Flex Algorithm = iota

	// Block stacks in-flow children vertically.
	Block

	// Absolute sizes from fixed points only; auto and percent collapse to zero.
	Absolute

	// Grid is laid out as Block.
	Grid
)

func (a Algorithm) String() string {
	switch a {
	case Flex:
		return "flex"
	case Block:
		return "block"
	case Absolute:
		return "absolute"
	case Grid:
		return "grid"
	default:
		return fmt.Sprintf("Algorithm(%d)", a)
	}
}

// Unit specifies how a Dimension resolves against the available space.
type Unit uint8

const (
	// UnitAuto takes the full available dimension.
	UnitAuto Unit = iota

	// UnitPoints uses the value verbatim.
	UnitPoints

	// UnitPercent uses value percent of the available dimension.
	UnitPercent
)

// Dimension is one sizing constraint.
type Dimension struct {
	Unit  Unit
	Value float32
}

// Auto returns an auto dimension.
func Auto() Dimension { return Dimension{} }

// Points returns a fixed dimension.
func Points(v float32) Dimension { return Dimension{Unit: UnitPoints, Value: v} }

// Percent returns a percent-of-parent dimension.
func Percent(p float32) Dimension { return Dimension{Unit: UnitPercent, Value: p} }

// IsAuto reports whether d is auto.
func (d Dimension) IsAuto() bool { return d.Unit == UnitAuto }

func (d Dimension) String() string {
	switch d.Unit {
	case UnitPoints:
		return fmt.Sprintf("%gpt", d.Value)
	case UnitPercent:
		return fmt.Sprintf("%g%%", d.Value)
	default:
		return "auto"
	}
}

// resolve converts d against available. Auto yields available.
func (d Dimension) resolve(available float32) float32 {
	switch d.Unit {
	case UnitPoints:
		return d.Value
	case UnitPercent:
		return available * d.Value / 100
	default:
		return available
	}
}

// Edges holds per-side values for padding and margin.
type Edges struct {
	Top, Right, Bottom, Left float32
}

// Uniform returns edges with the same value on every side.
func Uniform(v float32) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float32 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float32 { return e.Top + e.Bottom }

// Direction is the main axis of a Flex node.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Constraints is the input of the layout pass for one node.
type Constraints struct {
	Width     Dimension
	Height    Dimension
	MinWidth  Dimension
	MinHeight Dimension
	MaxWidth  Dimension
	MaxHeight Dimension

	Padding Edges
	Margin  Edges

	// Flex only
	Direction Direction
	Gap       float32
}

// Point is a position in layout space.
type Point struct {
	X, Y float32
}

// Size is a width/height pair.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle in layout space.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains checks if a point is within the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Computed stores the result of the last layout pass for a node.
type Computed struct {
	// Position is the border-box origin relative to the parent's border box.
	Position Point

	// Size is the border-box size.
	Size Size

	// ContentSize is Size minus padding. It may be negative.
	ContentSize Size

	// Dirty is set when the node must be recomputed on the next pass.
	Dirty bool
}
