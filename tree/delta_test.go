package tree

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestApplyDeltaPhases(t *testing.T) {
	tests := []struct {
		name  string
		build func(tr *Tree) (Delta, func(t *testing.T, tr *Tree, res DeltaResult))
	}{
		{
			name: "removal wins over update and reparent",
			build: func(tr *Tree) (Delta, func(*testing.T, *Tree, DeltaResult)) {
				r := tr.Create(KindVStack)
				a := tr.Create(KindContainer)
				x := tr.Create(KindText)
				tr.AddChild(r, a)
				tr.AddChild(r, x)

				d := Delta{
					Updates:     []WidgetUpdate{{ID: x, Payload: Payload{Kind: KindLabel, Text: "moved"}}},
					Reparenting: []Reparent{{Child: Ref{ID: x}, Parent: Ref{ID: a}}},
					Removals:    []WidgetID{x},
				}
				return d, func(t *testing.T, tr *Tree, res DeltaResult) {
					if tr.Get(x) != nil {
						t.Error("widget should end up removed")
					}
					if len(tr.Children(a)) != 0 {
						t.Errorf("parent still lists removed child: %v", tr.Children(a))
					}
					if res.Updated != 1 || res.Reparented != 1 || len(res.Removed) != 1 {
						t.Errorf("result = %+v", res)
					}
				}
			},
		},
		{
			name: "update replaces payload and bumps generation",
			build: func(tr *Tree) (Delta, func(*testing.T, *Tree, DeltaResult)) {
				r := tr.Create(KindVStack)
				c := tr.Create(KindText)
				tr.AddChild(r, c)
				tr.ClearAllDirty()

				d := Delta{Updates: []WidgetUpdate{{ID: c, Payload: Payload{Kind: KindText, Text: "hi", Classes: "text-lg"}}}}
				return d, func(t *testing.T, tr *Tree, res DeltaResult) {
					w := tr.Get(c)
					if w.Text != "hi" || w.Classes != "text-lg" {
						t.Errorf("payload = %+v", w.Payload)
					}
					if w.Generation() == 0 {
						t.Error("generation not incremented")
					}
					if !tr.IsDirty(r) {
						t.Error("update should dirty ancestors")
					}
					if tr.Parent(c) != r {
						t.Error("update must keep structure")
					}
				}
			},
		},
		{
			name: "created widgets can be attached by key",
			build: func(tr *Tree) (Delta, func(*testing.T, *Tree, DeltaResult)) {
				r := tr.Create(KindVStack)
				d := Delta{
					Updates: []WidgetUpdate{
						{Key: "row", Payload: Payload{Kind: KindHStack}},
						{Key: "btn", Payload: Payload{Kind: KindButton, Text: "OK"}},
					},
					Reparenting: []Reparent{
						{Child: Ref{Key: "row"}, Parent: Ref{ID: r}},
						{Child: Ref{Key: "btn"}, Parent: Ref{Key: "row"}},
					},
				}
				return d, func(t *testing.T, tr *Tree, res DeltaResult) {
					row, btn := res.Created["row"], res.Created["btn"]
					if row.IsZero() || btn.IsZero() {
						t.Fatalf("created = %v", res.Created)
					}
					if got := collect(tr); !slices.Equal(got, []WidgetID{r, row, btn}) {
						t.Errorf("All() = %v", got)
					}
				}
			},
		},
		{
			name: "zero parent detaches",
			build: func(tr *Tree) (Delta, func(*testing.T, *Tree, DeltaResult)) {
				r := tr.Create(KindVStack)
				c := tr.Create(KindText)
				tr.AddChild(r, c)
				d := Delta{Reparenting: []Reparent{{Child: Ref{ID: c}}}}
				return d, func(t *testing.T, tr *Tree, res DeltaResult) {
					if !tr.Parent(c).IsZero() || len(tr.Children(r)) != 0 {
						t.Error("child not detached")
					}
				}
			},
		},
		{
			name: "stale ids are skipped",
			build: func(tr *Tree) (Delta, func(*testing.T, *Tree, DeltaResult)) {
				r := tr.Create(KindVStack)
				gone := tr.Create(KindText)
				tr.Remove(gone)
				d := Delta{
					Updates:     []WidgetUpdate{{ID: gone, Payload: Payload{Kind: KindText}}},
					Reparenting: []Reparent{{Child: Ref{ID: gone}, Parent: Ref{ID: r}}},
					Removals:    []WidgetID{gone},
				}
				return d, func(t *testing.T, tr *Tree, res DeltaResult) {
					if res.Skipped != 3 {
						t.Errorf("Skipped = %d, want 3", res.Skipped)
					}
					if tr.Len() != 1 {
						t.Errorf("Len() = %d, want 1", tr.Len())
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			d, check := tt.build(tr)
			res := tr.ApplyDelta(d)
			check(t, tr, res)
		})
	}
}

func TestDeltaJSON(t *testing.T) {
	src := `{
		"updates": [{"key": "title", "kind": "Heading", "text": "Hello", "classes": "text-2xl"}],
		"reparenting": [{"child": {"key": "title"}, "parent": {"id": 4294967296}}],
		"removals": [42]
	}`

	var d Delta
	if err := json.Unmarshal([]byte(src), &d); err != nil {
		t.Fatalf("failed to parse delta: %v", err)
	}
	if d.IsEmpty() {
		t.Fatal("expected non-empty delta")
	}
	if d.Updates[0].Kind != KindHeading || d.Updates[0].Text != "Hello" {
		t.Errorf("update = %+v", d.Updates[0])
	}
	if d.Reparenting[0].Parent.ID != WidgetID(1<<32) {
		t.Errorf("parent id = %v", d.Reparenting[0].Parent.ID)
	}
}
