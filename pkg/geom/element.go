// Package geom holds rendered schematic geometry and converts it into
// axis-aligned bounding boxes for collision checks.
//
// A renderer produces a flat list of [Element] values. [Extract] maps each
// known element type to a [Box] using per-type sizing rules:
//
//   - [Component]: its reported footprint, widened on the side where the value
//     label of a passive part is drawn.
//   - [Text]: a fixed TextSize square around the label position.
//   - [NetLabel]: sized from the leader between center and anchor, never
//     smaller than NetLabelMinHalf per axis.
//
// Element types the package does not know are ignored.
package geom

// Point is a position in schematic units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Symbol identifies the schematic symbol class of a component.
type Symbol string

const (
	SymbolChip      Symbol = "chip"
	SymbolResistor  Symbol = "resistor"
	SymbolCapacitor Symbol = "capacitor"
)

// Passive reports whether s is a two-terminal part with a value label.
func (s Symbol) Passive() bool {
	return s == SymbolResistor || s == SymbolCapacitor
}

// ElementType names the kind of a rendered element.
type ElementType string

const (
	TypeComponent ElementType = "schematic_component"
	TypeText      ElementType = "schematic_text"
	TypeNetLabel  ElementType = "schematic_net_label"
)

// Element is one piece of rendered geometry.
type Element interface {
	ElementType() ElementType
	ElementID() string
}

// Component is a placed symbol footprint. Rotation is in degrees.
type Component struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   Symbol  `json:"symbol"`
	Center   Point   `json:"center"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

func (c Component) ElementType() ElementType { return TypeComponent }
func (c Component) ElementID() string        { return c.ID }

// Vertical reports whether the component is rotated a quarter turn.
func (c Component) Vertical() bool {
	r := int(c.Rotation) % 360
	if r < 0 {
		r += 360
	}
	return r == 90 || r == 270
}

// Text is a free-floating label, usually a component designator.
type Text struct {
	ID          string `json:"id"`
	ComponentID string `json:"component_id,omitempty"`
	Position    Point  `json:"position"`
	Anchor      string `json:"anchor,omitempty"`
	Text        string `json:"text"`
}

func (t Text) ElementType() ElementType { return TypeText }
func (t Text) ElementID() string        { return t.ID }

// NetLabel marks a named net. Anchor is where the leader meets the wire.
type NetLabel struct {
	ID          string `json:"id"`
	Net         string `json:"net"`
	ComponentID string `json:"component_id,omitempty"`
	Center      Point  `json:"center"`
	Anchor      Point  `json:"anchor"`
}

func (n NetLabel) ElementType() ElementType { return TypeNetLabel }
func (n NetLabel) ElementID() string        { return n.ID }
