// Package tree owns the retained widget hierarchy: an arena of widgets with
// parent/child links, dirty propagation, generation counters, and delta
// application for partial updates.
//
// Every operation on a stale or unknown WidgetID is a silent no-op or an
// empty result. Callers treat "not found" as "ignore this operation".
package tree

import (
	"iter"
	"slices"

	"github.com/agiangrant/centered-core/internal/arena"
)

// UpdateType identifies what kind of structural change occurred.
type UpdateType uint8

const (
	UpdateAdd      UpdateType = iota // Widget created
	UpdateProperty                   // Payload or flags replaced
	UpdateAttach                     // Child appended to Parent
	UpdateDetach                     // Child removed from Parent's list
	UpdateRemove                     // Widget freed
)

// Update describes one change, delivered synchronously to the observer as
// the tree applies it.
type Update struct {
	Type     UpdateType
	WidgetID WidgetID
	Parent   WidgetID // for UpdateAttach and UpdateDetach
	Widget   *Widget  // for UpdateRemove, a copy of the freed widget
}

// Observer receives every Update in the order the tree applies them.
type Observer func(Update)

// Tree manages the widget hierarchy.
// It is a plain data structure; callers serialize access.
type Tree struct {
	widgets  *arena.Arena[Widget]
	root     WidgetID
	gen      uint64
	observer Observer
}

// New creates an empty widget tree.
func New() *Tree {
	return &Tree{
		widgets: arena.New[Widget](64),
	}
}

// SetObserver installs the function notified of structural changes.
func (t *Tree) SetObserver(o Observer) {
	t.observer = o
}

func (t *Tree) notify(u Update) {
	if t.observer != nil {
		t.observer(u)
	}
}

// Get returns the widget for id, or nil if id is stale.
// The pointer is invalidated by the next Create.
func (t *Tree) Get(id WidgetID) *Widget {
	return t.widgets.Get(arena.Handle(id))
}

// Contains reports whether id refers to a live widget.
func (t *Tree) Contains(id WidgetID) bool {
	return t.Get(id) != nil
}

// Len returns the number of live widgets.
func (t *Tree) Len() int {
	return t.widgets.Len()
}

// Root returns the root widget id, or zero if the tree is empty.
func (t *Tree) Root() WidgetID {
	return t.root
}

// Generation returns the tree-wide mutation counter.
func (t *Tree) Generation() uint64 {
	return t.gen
}

// Create allocates a new parentless, childless widget marked dirty with
// generation zero. The first widget created in a tree without a root
// becomes the root.
func (t *Tree) Create(kind Kind) WidgetID {
	return t.create(Payload{Kind: kind})
}

// CreateWith is Create with a full payload.
func (t *Tree) CreateWith(p Payload) WidgetID {
	return t.create(p)
}

func (t *Tree) create(p Payload) WidgetID {
	id := WidgetID(t.widgets.Insert(Widget{
		Payload: p,
		flags:   FlagVisible,
		dirty:   true,
	}))
	t.gen++
	if t.root.IsZero() {
		t.root = id
	}
	t.notify(Update{Type: UpdateAdd, WidgetID: id, Widget: t.Get(id)})
	return id
}

// SetRoot makes id the root. A previous root's subtree is removed, except
// for id itself if it lived inside it. Returns the removed widgets.
func (t *Tree) SetRoot(id WidgetID) []Removed {
	if t.Get(id) == nil || id == t.root {
		return nil
	}

	t.detach(id)
	old := t.root
	t.root = id
	t.gen++
	t.MarkDirty(id)

	if old.IsZero() {
		return nil
	}
	return t.Remove(old)
}

// SetLayoutNode records the layout node handle associated with id.
func (t *Tree) SetLayoutNode(id WidgetID, node uint64) {
	if w := t.Get(id); w != nil {
		w.layout = node
	}
}

// Parent returns the parent of id, or zero.
func (t *Tree) Parent(id WidgetID) WidgetID {
	if w := t.Get(id); w != nil {
		return w.parent
	}
	return 0
}

// Children returns a copy of id's child list in paint order.
func (t *Tree) Children(id WidgetID) []WidgetID {
	if w := t.Get(id); w != nil {
		return slices.Clone(w.children)
	}
	return nil
}

// IsAncestor reports whether ancestor is id or one of id's ancestors.
func (t *Tree) IsAncestor(ancestor, id WidgetID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == ancestor {
			return true
		}
		w := t.Get(cur)
		if w == nil {
			return false
		}
		cur = w.parent
	}
	return false
}

// AddChild appends child to parent's children, so it paints above earlier
// siblings, and marks parent and its ancestors dirty. A child that already
// has a parent is detached first. It is a no-op when either id is stale,
// when child is the root, or when the link would create a cycle.
func (t *Tree) AddChild(parent, child WidgetID) bool {
	p := t.Get(parent)
	c := t.Get(child)
	if p == nil || c == nil {
		return false
	}
	if child == t.root || t.IsAncestor(child, parent) {
		return false
	}

	t.detach(child)

	// detach may have touched the arena; re-resolve both
	p = t.Get(parent)
	c = t.Get(child)
	c.parent = parent
	c.gen++
	p.children = append(p.children, child)
	p.gen++
	t.gen++

	t.notify(Update{Type: UpdateAttach, WidgetID: child, Parent: parent, Widget: c})
	t.MarkDirty(parent)
	return true
}

// RemoveChild removes child from parent's list and clears its parent
// pointer. The child itself stays allocated and parentless.
func (t *Tree) RemoveChild(parent, child WidgetID) bool {
	p := t.Get(parent)
	c := t.Get(child)
	if p == nil || c == nil || c.parent != parent {
		return false
	}
	t.detach(child)
	return true
}

// detach unlinks id from its parent, if any.
func (t *Tree) detach(id WidgetID) {
	c := t.Get(id)
	if c == nil || c.parent.IsZero() {
		return
	}
	parent := c.parent
	p := t.Get(parent)
	c.parent = 0
	c.gen++
	t.gen++
	if p == nil {
		return
	}
	if i := p.indexOf(id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
		p.gen++
	}
	t.notify(Update{Type: UpdateDetach, WidgetID: id, Parent: parent, Widget: c})
	t.MarkDirty(parent)
}

// Removed is a widget freed by Remove, reported so owners of parallel
// state (layout nodes, caches) can release it.
type Removed struct {
	ID     WidgetID
	Widget Widget
}

// Remove frees the subtree rooted at id, children before parents, and
// returns the freed widgets in that order. Removing a stale id is a no-op.
func (t *Tree) Remove(id WidgetID) []Removed {
	if t.Get(id) == nil {
		return nil
	}
	t.detach(id)

	var removed []Removed
	t.removeSubtree(id, &removed)
	if id == t.root {
		t.root = 0
	}
	return removed
}

func (t *Tree) removeSubtree(id WidgetID, removed *[]Removed) {
	w := t.Get(id)
	if w == nil {
		return
	}
	for _, child := range slices.Clone(w.children) {
		t.removeSubtree(child, removed)
	}
	v, ok := t.widgets.Remove(arena.Handle(id))
	if !ok {
		return
	}
	t.gen++
	*removed = append(*removed, Removed{ID: id, Widget: v})
	t.notify(Update{Type: UpdateRemove, WidgetID: id, Widget: &v})
}

// MarkDirty flags id and every ancestor up to the root as dirty.
func (t *Tree) MarkDirty(id WidgetID) {
	for cur := id; !cur.IsZero(); {
		w := t.Get(cur)
		if w == nil {
			return
		}
		w.dirty = true
		cur = w.parent
	}
}

// ClearDirty clears the dirty flag on id only.
func (t *Tree) ClearDirty(id WidgetID) {
	if w := t.Get(id); w != nil {
		w.dirty = false
	}
}

// ClearAllDirty clears the dirty flag on every widget.
func (t *Tree) ClearAllDirty() {
	for _, w := range t.widgets.All() {
		w.dirty = false
	}
}

// IsDirty reports whether id is flagged dirty. Stale ids are never dirty.
func (t *Tree) IsDirty(id WidgetID) bool {
	if w := t.Get(id); w != nil {
		return w.dirty
	}
	return false
}

// Update replaces id's payload, bumps its generation and marks it dirty.
func (t *Tree) Update(id WidgetID, p Payload) bool {
	w := t.Get(id)
	if w == nil {
		return false
	}
	w.Payload = p
	w.gen++
	t.gen++
	t.notify(Update{Type: UpdateProperty, WidgetID: id, Widget: w})
	t.MarkDirty(id)
	return true
}

// SetFlag turns an interaction flag on or off. Changing a flag counts as a
// mutation; setting it to its current value does nothing.
func (t *Tree) SetFlag(id WidgetID, flag Flags, on bool) bool {
	w := t.Get(id)
	if w == nil {
		return false
	}
	next := w.flags &^ flag
	if on {
		next |= flag
	}
	if next == w.flags {
		return false
	}
	w.flags = next
	w.gen++
	t.gen++
	t.notify(Update{Type: UpdateProperty, WidgetID: id, Widget: w})
	t.MarkDirty(id)
	return true
}

// All yields (id, widget) pairs in pre-order starting at the root, visiting
// children left to right. The sequence is lazy; mutating the tree while
// ranging over it is not supported.
func (t *Tree) All() iter.Seq2[WidgetID, *Widget] {
	return func(yield func(WidgetID, *Widget) bool) {
		if t.Get(t.root) == nil {
			return
		}
		stack := []WidgetID{t.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			w := t.Get(id)
			if w == nil {
				continue
			}
			if !yield(id, w) {
				return
			}
			for i := len(w.children) - 1; i >= 0; i-- {
				stack = append(stack, w.children[i])
			}
		}
	}
}

// Widgets yields every live widget, attached or not, in arena order.
func (t *Tree) Widgets() iter.Seq2[WidgetID, *Widget] {
	return func(yield func(WidgetID, *Widget) bool) {
		for h, w := range t.widgets.All() {
			if !yield(WidgetID(h), w) {
				return
			}
		}
	}
}

// Walk traverses the tree depth-first, calling fn for each widget.
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id WidgetID, w *Widget) bool) {
	for id, w := range t.All() {
		if !fn(id, w) {
			return
		}
	}
}

// Find returns the first widget in pre-order matching pred, or zero.
func (t *Tree) Find(pred func(w *Widget) bool) WidgetID {
	for id, w := range t.All() {
		if pred(w) {
			return id
		}
	}
	return 0
}
