package centered

import (
	"github.com/agiangrant/centered-core/layout"
	"github.com/agiangrant/centered-core/tree"
	"github.com/agiangrant/centered-core/tw"
)

// boxLayout converts the layout utilities of a widget into layout input.
// The widget kind supplies defaults that display and direction classes
// override.
func boxLayout(kind tree.Kind, b tw.Box) (layout.Algorithm, layout.Constraints, bool) {
	algorithm := layout.Block
	direction := layout.Row
	clip := false

	switch kind {
	case tree.KindHStack:
		algorithm = layout.Flex
	case tree.KindVStack:
		algorithm = layout.Flex
		direction = layout.Column
	case tree.KindScrollView:
		clip = true
	}

	if b.Display != nil {
		switch *b.Display {
		case tw.DisplayFlex:
			algorithm = layout.Flex
		case tw.DisplayBlock:
			algorithm = layout.Block
		case tw.DisplayGrid:
			algorithm = layout.Grid
		case tw.DisplayAbsolute:
			algorithm = layout.Absolute
		}
	}
	if b.Direction != nil {
		if *b.Direction == "column" {
			direction = layout.Column
		} else {
			direction = layout.Row
		}
	}
	if b.Overflow != nil {
		clip = *b.Overflow != "visible"
	}

	c := layout.Constraints{
		Width:     dimension(b.Width),
		Height:    dimension(b.Height),
		MinWidth:  dimension(b.MinWidth),
		MinHeight: dimension(b.MinHeight),
		MaxWidth:  dimension(b.MaxWidth),
		MaxHeight: dimension(b.MaxHeight),
		Padding: layout.Edges{
			Top:    value(b.PaddingTop),
			Right:  value(b.PaddingRight),
			Bottom: value(b.PaddingBottom),
			Left:   value(b.PaddingLeft),
		},
		Margin: layout.Edges{
			Top:    value(b.MarginTop),
			Right:  value(b.MarginRight),
			Bottom: value(b.MarginBottom),
			Left:   value(b.MarginLeft),
		},
		Direction: direction,
		Gap:       value(b.Gap),
	}
	return algorithm, c, clip
}

func dimension(l *tw.Length) layout.Dimension {
	if l == nil {
		return layout.Auto()
	}
	switch l.Unit {
	case tw.LengthPx:
		return layout.Points(l.Value)
	case tw.LengthPercent:
		return layout.Percent(l.Value)
	default:
		return layout.Auto()
	}
}

func value(v *float32) float32 {
	if v == nil {
		return 0
	}
	return *v
}
