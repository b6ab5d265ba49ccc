// Package layout computes geometry for a tree of layout nodes that mirrors
// the widget tree. Only dirty subtrees are recomputed: a node whose flag is
// clear, and whose available space did not change, is skipped along with
// everything below it.
package layout

import (
	"slices"

	"github.com/agiangrant/centered-core/internal/arena"
)

type node struct {
	algorithm   Algorithm
	constraints Constraints
	computed    Computed

	parent   NodeID
	children []NodeID

	scroll Point
	clip   bool

	// available is the space the parent offered on the last pass.
	available    Size
	hasAvailable bool
}

// Engine owns the layout node arena.
// It is a plain data structure; callers serialize access.
type Engine struct {
	nodes *arena.Arena[node]
	root  NodeID

	lastPass int
}

// New creates an empty layout engine.
func New() *Engine {
	return &Engine{
		nodes: arena.New[node](64),
	}
}

func (e *Engine) get(id NodeID) *node {
	return e.nodes.Get(arena.Handle(id))
}

// Create allocates a dirty, unattached node using algorithm a.
func (e *Engine) Create(a Algorithm) NodeID {
	return NodeID(e.nodes.Insert(node{
		algorithm: a,
		computed:  Computed{Dirty: true},
	}))
}

// Len returns the number of live nodes.
func (e *Engine) Len() int { return e.nodes.Len() }

// Contains reports whether id refers to a live node.
func (e *Engine) Contains(id NodeID) bool { return e.get(id) != nil }

// Root returns the node laid out against the window size.
func (e *Engine) Root() NodeID { return e.root }

// SetRoot selects the node laid out against the window size.
func (e *Engine) SetRoot(id NodeID) {
	n := e.get(id)
	if n == nil {
		return
	}
	e.root = id
	n.computed.Dirty = true
}

// Remove frees id. Its parent drops it and becomes dirty; any children
// still attached become parentless.
func (e *Engine) Remove(id NodeID) {
	n := e.get(id)
	if n == nil {
		return
	}
	e.detach(id)
	for _, c := range n.children {
		if cn := e.get(c); cn != nil {
			cn.parent = 0
		}
	}
	e.nodes.Remove(arena.Handle(id))
	if e.root == id {
		e.root = 0
	}
}

// AddChild appends child to parent and marks parent's chain dirty.
// A child attached elsewhere is moved. Linking a node under itself or one
// of its descendants is a no-op.
func (e *Engine) AddChild(parent, child NodeID) {
	p := e.get(parent)
	c := e.get(child)
	if p == nil || c == nil || e.IsAncestor(child, parent) {
		return
	}
	e.detach(child)
	c.parent = parent
	c.computed.Dirty = true
	p.children = append(p.children, child)
	e.MarkDirty(parent)
}

// IsAncestor reports whether ancestor is id or lies on id's parent chain.
func (e *Engine) IsAncestor(ancestor, id NodeID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == ancestor {
			return true
		}
		n := e.get(cur)
		if n == nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// RemoveChild detaches child from parent.
func (e *Engine) RemoveChild(parent, child NodeID) {
	c := e.get(child)
	if c == nil || c.parent != parent {
		return
	}
	e.detach(child)
}

func (e *Engine) detach(id NodeID) {
	c := e.get(id)
	if c == nil || c.parent.IsZero() {
		return
	}
	parent := c.parent
	c.parent = 0
	p := e.get(parent)
	if p == nil {
		return
	}
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	e.MarkDirty(parent)
}

// Parent returns the parent of id, or zero.
func (e *Engine) Parent(id NodeID) NodeID {
	if n := e.get(id); n != nil {
		return n.parent
	}
	return 0
}

// Children returns a copy of id's children.
func (e *Engine) Children(id NodeID) []NodeID {
	if n := e.get(id); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// MarkDirty flags id and its ancestors for recomputation.
func (e *Engine) MarkDirty(id NodeID) {
	for cur := id; !cur.IsZero(); {
		n := e.get(cur)
		if n == nil {
			return
		}
		n.computed.Dirty = true
		cur = n.parent
	}
}

// IsDirty reports whether id will be recomputed on the next pass.
func (e *Engine) IsDirty(id NodeID) bool {
	if n := e.get(id); n != nil {
		return n.computed.Dirty
	}
	return false
}

// SetConstraints replaces id's constraints and marks it dirty.
func (e *Engine) SetConstraints(id NodeID, c Constraints) {
	n := e.get(id)
	if n == nil {
		return
	}
	n.constraints = c
	e.MarkDirty(id)
}

// Constraints returns id's constraints.
func (e *Engine) Constraints(id NodeID) (Constraints, bool) {
	if n := e.get(id); n != nil {
		return n.constraints, true
	}
	return Constraints{}, false
}

// SetAlgorithm changes id's algorithm and marks it dirty.
func (e *Engine) SetAlgorithm(id NodeID, a Algorithm) {
	n := e.get(id)
	if n == nil || n.algorithm == a {
		return
	}
	n.algorithm = a
	e.MarkDirty(id)
}

// Algorithm returns id's algorithm.
func (e *Engine) Algorithm(id NodeID) (Algorithm, bool) {
	if n := e.get(id); n != nil {
		return n.algorithm, true
	}
	return 0, false
}

// SetScroll sets the offset applied to id's children when painting and
// hit testing. It does not affect layout.
func (e *Engine) SetScroll(id NodeID, x, y float32) {
	if n := e.get(id); n != nil {
		n.scroll = Point{X: x, Y: y}
	}
}

// Scroll returns id's scroll offset.
func (e *Engine) Scroll(id NodeID) Point {
	if n := e.get(id); n != nil {
		return n.scroll
	}
	return Point{}
}

// SetClip controls whether id clips its children to its border box.
func (e *Engine) SetClip(id NodeID, clip bool) {
	if n := e.get(id); n != nil {
		n.clip = clip
	}
}

// Clips reports whether id clips its children.
func (e *Engine) Clips(id NodeID) bool {
	if n := e.get(id); n != nil {
		return n.clip
	}
	return false
}

// Layout returns the computed result for id.
func (e *Engine) Layout(id NodeID) (Computed, bool) {
	if n := e.get(id); n != nil {
		return n.computed, true
	}
	return Computed{}, false
}

// AbsoluteRect returns id's border box in root coordinates, accounting for
// ancestor scroll offsets.
func (e *Engine) AbsoluteRect(id NodeID) (Rect, bool) {
	n := e.get(id)
	if n == nil {
		return Rect{}, false
	}
	r := Rect{Width: n.computed.Size.Width, Height: n.computed.Size.Height}
	for cur := n; cur != nil; {
		r.X += cur.computed.Position.X
		r.Y += cur.computed.Position.Y
		p := e.get(cur.parent)
		if p != nil {
			r.X -= p.scroll.X
			r.Y -= p.scroll.Y
		}
		cur = p
	}
	return r, true
}

// LastPassCount returns how many nodes the last Calculate recomputed.
func (e *Engine) LastPassCount() int { return e.lastPass }

// Calculate lays out the root against the given available size and returns
// the number of nodes recomputed. A clean tree offered the same size as last
// time costs nothing.
func (e *Engine) Calculate(availableWidth, availableHeight float32) int {
	e.lastPass = 0
	root := e.get(e.root)
	if root == nil {
		return 0
	}

	e.layoutNode(root, Size{Width: availableWidth, Height: availableHeight})
	root.computed.Position = Point{X: root.constraints.Margin.Left, Y: root.constraints.Margin.Top}
	return e.lastPass
}

func (e *Engine) layoutNode(n *node, available Size) {
	if n.hasAvailable && n.available != available {
		n.computed.Dirty = true
	}
	if !n.computed.Dirty {
		return
	}
	e.lastPass++
	n.available = available
	n.hasAvailable = true

	size := resolveSize(n.algorithm, &n.constraints, available)
	pad := n.constraints.Padding
	content := Size{
		Width:  size.Width - pad.Horizontal(),
		Height: size.Height - pad.Vertical(),
	}
	n.computed.Size = size
	n.computed.ContentSize = content

	for _, c := range n.children {
		if cn := e.get(c); cn != nil {
			e.layoutNode(cn, content)
		}
	}
	e.placeChildren(n)

	n.computed.Dirty = false
}

// resolveSize converts constraints to a border-box size.
func resolveSize(a Algorithm, c *Constraints, available Size) Size {
	if a == Absolute {
		return Size{
			Width:  clampPoints(c.Width, c.MinWidth, c.MaxWidth),
			Height: clampPoints(c.Height, c.MinHeight, c.MaxHeight),
		}
	}

	return Size{
		Width:  clampDim(c.Width.resolve(available.Width), c.MinWidth, c.MaxWidth, available.Width),
		Height: clampDim(c.Height.resolve(available.Height), c.MinHeight, c.MaxHeight, available.Height),
	}
}

// clampPoints resolves an Absolute dimension: only fixed values count, and
// anything else collapses to zero.
func clampPoints(base, lo, hi Dimension) float32 {
	var v float32
	if base.Unit == UnitPoints {
		v = base.Value
	}
	if hi.Unit == UnitPoints && v > hi.Value {
		v = hi.Value
	}
	if lo.Unit == UnitPoints && v < lo.Value {
		v = lo.Value
	}
	return v
}

// clampDim bounds v by min/max resolved against available. Auto bounds are
// unbounded. Min wins over max.
func clampDim(v float32, lo, hi Dimension, available float32) float32 {
	if !hi.IsAuto() {
		if m := hi.resolve(available); v > m {
			v = m
		}
	}
	if !lo.IsAuto() {
		if m := lo.resolve(available); v < m {
			v = m
		}
	}
	return v
}

// placeChildren sets each child's position relative to n's border box.
// The parent's algorithm decides placement; each child's own algorithm
// decided its size.
func (e *Engine) placeChildren(n *node) {
	pad := n.constraints.Padding
	cursor := Point{X: pad.Left, Y: pad.Top}
	flowed := 0

	for _, c := range n.children {
		cn := e.get(c)
		if cn == nil {
			continue
		}
		m := cn.constraints.Margin
		size := cn.computed.Size

		if cn.algorithm == Absolute {
			cn.computed.Position = Point{X: pad.Left + m.Left, Y: pad.Top + m.Top}
			continue
		}

		switch {
		case n.algorithm == Flex && n.constraints.Direction == Row:
			if flowed > 0 {
				cursor.X += n.constraints.Gap
			}
			cn.computed.Position = Point{X: cursor.X + m.Left, Y: pad.Top + m.Top}
			cursor.X += m.Left + size.Width + m.Right

		case n.algorithm == Flex:
			if flowed > 0 {
				cursor.Y += n.constraints.Gap
			}
			cn.computed.Position = Point{X: pad.Left + m.Left, Y: cursor.Y + m.Top}
			cursor.Y += m.Top + size.Height + m.Bottom

		default:
			// Block, Grid and Absolute containers stack their flow children.
			cn.computed.Position = Point{X: pad.Left + m.Left, Y: cursor.Y + m.Top}
			cursor.Y += m.Top + size.Height + m.Bottom
		}
		flowed++
	}
}
