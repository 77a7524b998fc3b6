package geom

import (
	"fmt"
	"math"
)

// Sizing constants, in schematic units.
const (
	// ValueLabelOverflow is how far a passive's value label reaches past its
	// footprint. Vertical parts get it on the right, horizontal parts get half
	// of it above.
	ValueLabelOverflow = 0.45

	// TextSize is the edge length of a free text box.
	TextSize = 0.3

	// NetLabelMinHalf is the minimum half extent of a net label box.
	NetLabelMinHalf = 0.1
)

// Box is an axis-aligned rectangle for one element. OwnerID groups boxes that
// may never collide with each other, such as a part and its designator. An
// empty OwnerID groups nothing.
type Box struct {
	MinX        float64     `json:"min_x"`
	MinY        float64     `json:"min_y"`
	MaxX        float64     `json:"max_x"`
	MaxY        float64     `json:"max_y"`
	ElementID   string      `json:"element_id"`
	ElementType ElementType `json:"element_type"`
	OwnerID     string      `json:"owner_id,omitempty"`
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Intersects reports whether b and o overlap. Touching edges count.
func (b Box) Intersects(o Box) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// SameOwner reports whether b and o belong to the same non-empty owner.
func (b Box) SameOwner(o Box) bool {
	return b.OwnerID != "" && b.OwnerID == o.OwnerID
}

func (b Box) String() string {
	return fmt.Sprintf("%s[%.2f,%.2f %.2f,%.2f]", b.ElementID, b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Extract converts rendered elements into bounding boxes, skipping element
// types it does not know.
func Extract(elements []Element) []Box {
	boxes := make([]Box, 0, len(elements))
	for _, el := range elements {
		switch e := el.(type) {
		case Component:
			boxes = append(boxes, componentBox(e))
		case *Component:
			boxes = append(boxes, componentBox(*e))
		case Text:
			boxes = append(boxes, textBox(e))
		case *Text:
			boxes = append(boxes, textBox(*e))
		case NetLabel:
			boxes = append(boxes, netLabelBox(e))
		case *NetLabel:
			boxes = append(boxes, netLabelBox(*e))
		}
	}
	return boxes
}

func componentBox(c Component) Box {
	hw, hh := c.Width/2, c.Height/2
	b := Box{
		MinX:        c.Center.X - hw,
		MinY:        c.Center.Y - hh,
		MaxX:        c.Center.X + hw,
		MaxY:        c.Center.Y + hh,
		ElementID:   c.ID,
		ElementType: TypeComponent,
		OwnerID:     c.ID,
	}
	if c.Symbol.Passive() {
		if c.Vertical() {
			b.MaxX += ValueLabelOverflow
		} else {
			b.MaxY += ValueLabelOverflow / 2
		}
	}
	return b
}

func textBox(t Text) Box {
	const half = TextSize / 2
	return Box{
		MinX:        t.Position.X - half,
		MinY:        t.Position.Y - half,
		MaxX:        t.Position.X + half,
		MaxY:        t.Position.Y + half,
		ElementID:   t.ID,
		ElementType: TypeText,
		OwnerID:     t.ComponentID,
	}
}

func netLabelBox(n NetLabel) Box {
	hw := math.Max(math.Abs(n.Center.X-n.Anchor.X), NetLabelMinHalf)
	hh := math.Max(math.Abs(n.Center.Y-n.Anchor.Y), NetLabelMinHalf)
	return Box{
		MinX:        n.Center.X - hw,
		MinY:        n.Center.Y - hh,
		MaxX:        n.Center.X + hw,
		MaxY:        n.Center.Y + hh,
		ElementID:   n.ID,
		ElementType: TypeNetLabel,
		OwnerID:     n.ComponentID,
	}
}
