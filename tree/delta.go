package tree

// Ref names a widget inside a Delta: either an existing id, or the Key of a
// widget created earlier in the same delta.
type Ref struct {
	ID  WidgetID `json:"id,omitempty" yaml:"id,omitempty"`
	Key string   `json:"key,omitempty" yaml:"key,omitempty"`
}

// IsZero reports whether the ref names nothing.
func (r Ref) IsZero() bool { return r.ID.IsZero() && r.Key == "" }

// WidgetUpdate replaces the payload of ID. A zero ID creates a new widget
// instead; give it a Key so later phases of the same delta can refer to it.
type WidgetUpdate struct {
	ID  WidgetID `json:"id,omitempty"`
	Key string   `json:"key,omitempty"`
	Payload
}

// Reparent moves Child under Parent, appended last. A zero Parent only
// detaches the child.
type Reparent struct {
	Child  Ref `json:"child"`
	Parent Ref `json:"parent"`
}

// Delta is a retained-mode partial update. Its phases run in order:
// all Updates, then all Reparenting, then all Removals. A widget can be
// updated and reparented in one delta and still be removed by its last phase.
type Delta struct {
	Updates     []WidgetUpdate `json:"updates,omitempty"`
	Reparenting []Reparent     `json:"reparenting,omitempty"`
	Removals    []WidgetID     `json:"removals,omitempty"`
}

// IsEmpty returns true if the delta has no changes.
func (d *Delta) IsEmpty() bool {
	return len(d.Updates) == 0 && len(d.Reparenting) == 0 && len(d.Removals) == 0
}

// DeltaResult reports what ApplyDelta did.
type DeltaResult struct {
	// Created maps each update Key to the id of the widget it created.
	Created map[string]WidgetID
	// Updated counts payload replacements of existing widgets.
	Updated int
	// Reparented counts reparent entries that took effect.
	Reparented int
	// Removed lists every freed widget, descendants included.
	Removed []Removed
	// Skipped counts entries that referred to stale ids or unknown keys.
	Skipped int
}

// ApplyDelta applies d in its three phases. Entries naming stale ids are
// skipped silently and counted in the result.
func (t *Tree) ApplyDelta(d Delta) DeltaResult {
	res := DeltaResult{Created: make(map[string]WidgetID)}

	for _, u := range d.Updates {
		if u.ID.IsZero() {
			id := t.create(u.Payload)
			if u.Key != "" {
				res.Created[u.Key] = id
			}
			continue
		}
		if t.Update(u.ID, u.Payload) {
			res.Updated++
		} else {
			res.Skipped++
		}
	}

	for _, r := range d.Reparenting {
		child := res.resolve(r.Child)
		if child.IsZero() {
			res.Skipped++
			continue
		}
		if r.Parent.IsZero() {
			if p := t.Parent(child); !p.IsZero() && t.RemoveChild(p, child) {
				res.Reparented++
			} else {
				res.Skipped++
			}
			continue
		}
		parent := res.resolve(r.Parent)
		if t.AddChild(parent, child) {
			res.Reparented++
		} else {
			res.Skipped++
		}
	}

	for _, id := range d.Removals {
		removed := t.Remove(id)
		if removed == nil {
			res.Skipped++
			continue
		}
		res.Removed = append(res.Removed, removed...)
	}

	return res
}

func (res *DeltaResult) resolve(r Ref) WidgetID {
	if r.Key != "" {
		return res.Created[r.Key]
	}
	return r.ID
}
