package pattern

import (
	"fmt"
	"slices"

	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/slide"
)

// Slide scale per unit of each axis.
const (
	shiftX       = 0.2
	shiftY       = 0.2
	shiftYTwoPin = 0.1
	spread       = 0.2
)

const (
	valueResistor    = "1k"
	valueResistorTwo = "2k"
	valueCapacitor   = "100nF"
)

// template implements Pattern with a placement function.
type template struct {
	name  string
	kind  Kind
	dims  []int
	place func(pins []int, pinCount int, v slide.Variation) []Part
}

func (t *template) Name() string          { return t.name }
func (t *template) Kind() Kind            { return t.kind }
func (t *template) UsedDimensions() []int { return slices.Clone(t.dims) }

func (t *template) Place(pins []int, pinCount int, v slide.Variation) []Part {
	if t.place == nil || len(pins) < t.kind.Pins() {
		return nil
	}
	return t.place(pins, pinCount, v)
}

func (t *template) String() string {
	return t.name
}

func offset(v slide.Variation, yScale float64) (dx, dy float64) {
	return float64(v[0]) * shiftX, float64(v[1]) * yScale
}

// Null places nothing.
var Null Pattern = &template{name: "none", kind: OnePin}

// ResistorToPower pulls the pin up to VCC through a vertical resistor above
// the pin.
var ResistorToPower Pattern = &template{
	name: "resistor-to-power",
	kind: OnePin,
	dims: []int{0, 1},
	place: func(pins []int, n int, v slide.Variation) []Part {
		pin := pins[0]
		p := PinPosition(pin, n)
		dx, dy := offset(v, shiftY)
		return []Part{{
			Name:     fmt.Sprintf("R%d", pin),
			Symbol:   geom.SymbolResistor,
			Value:    valueResistor,
			Position: p.Add(1+dx, 1+dy),
			Rotation: 90,
			Pin1:     ChipPin(pin),
			Pin2:     Net("VCC"),
		}}
	},
}

// ResistorToGround pulls the pin down to GND through a vertical resistor
// below the pin.
var ResistorToGround Pattern = &template{
	name: "resistor-to-ground",
	kind: OnePin,
	dims: []int{0, 1},
	place: func(pins []int, n int, v slide.Variation) []Part {
		pin := pins[0]
		p := PinPosition(pin, n)
		dx, dy := offset(v, shiftY)
		return []Part{{
			Name:     fmt.Sprintf("R%d", pin),
			Symbol:   geom.SymbolResistor,
			Value:    valueResistor,
			Position: p.Add(1+dx, -1+dy),
			Rotation: -90,
			Pin1:     ChipPin(pin),
			Pin2:     Net("GND"),
		}}
	},
}

// VoltageDivider biases the pin between VCC and GND. d2 opens the gap
// between the two resistors.
var VoltageDivider Pattern = &template{
	name: "voltage-divider",
	kind: OnePin,
	dims: []int{0, 1, 2},
	place: func(pins []int, n int, v slide.Variation) []Part {
		pin := pins[0]
		p := PinPosition(pin, n)
		dx, dy := offset(v, shiftY)
		gap := float64(v[2]) * spread
		return []Part{
			{
				Name:     fmt.Sprintf("R%d_1", pin),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistor,
				Position: p.Add(1+dx, 0.8+dy+gap),
				Rotation: 90,
				Pin1:     Net("VCC"),
				Pin2:     ChipPin(pin),
			},
			{
				Name:     fmt.Sprintf("R%d_2", pin),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistor,
				Position: p.Add(1+dx, -0.8+dy-gap),
				Rotation: -90,
				Pin1:     ChipPin(pin),
				Pin2:     Net("GND"),
			},
		}
	},
}

// ResistorToSignal runs a horizontal series resistor out to a per-pin signal
// net.
var ResistorToSignal Pattern = &template{
	name: "resistor-to-signal",
	kind: OnePin,
	dims: []int{0, 1},
	place: func(pins []int, n int, v slide.Variation) []Part {
		pin := pins[0]
		p := PinPosition(pin, n)
		dx, dy := offset(v, shiftY)
		return []Part{{
			Name:     fmt.Sprintf("R%d", pin),
			Symbol:   geom.SymbolResistor,
			Value:    valueResistor,
			Position: p.Add(1+dx, dy),
			Pin1:     ChipPin(pin),
			Pin2:     Net(fmt.Sprintf("SIG%d", pin)),
		}}
	},
}

// TwoCapacitorsToGround decouples the pin with two parallel capacitors. d2
// spreads the second capacitor to the right.
var TwoCapacitorsToGround Pattern = &template{
	name: "two-capacitors-to-ground",
	kind: OnePin,
	dims: []int{0, 1, 2},
	place: func(pins []int, n int, v slide.Variation) []Part {
		pin := pins[0]
		p := PinPosition(pin, n)
		dx, dy := offset(v, shiftY)
		gap := float64(v[2]) * spread
		parts := make([]Part, 2)
		for i := range parts {
			parts[i] = Part{
				Name:     fmt.Sprintf("C%d_%d", pin, i+1),
				Symbol:   geom.SymbolCapacitor,
				Value:    valueCapacitor,
				Position: p.Add(0.8+float64(i)*(1+gap)+dx, -1.2+dy),
				Rotation: -90,
				Pin1:     ChipPin(pin),
				Pin2:     Net("GND"),
			}
		}
		return parts
	},
}

// Capacitor bridges two adjacent pins with a capacitor and a resistor in
// parallel.
var Capacitor Pattern = &template{
	name: "capacitor",
	kind: TwoPin,
	dims: []int{0, 1},
	place: func(pins []int, n int, v slide.Variation) []Part {
		a, b := pins[0], pins[1]
		p1, p2 := PinPosition(a, n), PinPosition(b, n)
		midY := (p1.Y + p2.Y) / 2
		dx, dy := offset(v, shiftYTwoPin)
		return []Part{
			{
				Name:     fmt.Sprintf("C%d_%d", a, b),
				Symbol:   geom.SymbolCapacitor,
				Value:    valueCapacitor,
				Position: geom.Point{X: p1.X + 1.8 + dx, Y: midY + dy},
				Rotation: -90,
				Pin1:     ChipPin(a),
				Pin2:     ChipPin(b),
			},
			{
				Name:     fmt.Sprintf("R%d_%d", a, b),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistor,
				Position: geom.Point{X: p1.X + 0.8 + dx, Y: midY + dy},
				Rotation: -90,
				Pin1:     ChipPin(a),
				Pin2:     ChipPin(b),
			},
		}
	},
}

// CapacitorAndResistor is a series RC between two adjacent pins: a horizontal
// resistor from the first pin into a node, a vertical capacitor from the node
// back to the second pin. d2 moves the capacitor away from the resistor.
var CapacitorAndResistor Pattern = &template{
	name: "capacitor-and-resistor",
	kind: TwoPin,
	dims: []int{0, 1, 2},
	place: func(pins []int, n int, v slide.Variation) []Part {
		a, b := pins[0], pins[1]
		p1, p2 := PinPosition(a, n), PinPosition(b, n)
		midY := (p1.Y + p2.Y) / 2
		dx, dy := offset(v, shiftYTwoPin)
		node := Net(fmt.Sprintf("RC_%d_%d", a, b))
		return []Part{
			{
				Name:     fmt.Sprintf("R%d_%d", a, b),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistor,
				Position: geom.Point{X: p1.X + 1 + dx, Y: p1.Y + dy},
				Pin1:     ChipPin(a),
				Pin2:     node,
			},
			{
				Name:     fmt.Sprintf("C%d_%d", a, b),
				Symbol:   geom.SymbolCapacitor,
				Value:    valueCapacitor,
				Position: geom.Point{X: p1.X + 2 + dx + float64(v[2])*spread, Y: midY + dy},
				Rotation: -90,
				Pin1:     node,
				Pin2:     ChipPin(b),
			},
		}
	},
}

// TwoPinVoltageDivider stacks two resistors between adjacent pins with the
// divider node on its own net.
var TwoPinVoltageDivider Pattern = &template{
	name: "voltage-divider",
	kind: TwoPin,
	dims: []int{0, 1},
	place: func(pins []int, n int, v slide.Variation) []Part {
		a, b := pins[0], pins[1]
		p1, p2 := PinPosition(a, n), PinPosition(b, n)
		dx, dy := offset(v, shiftYTwoPin)
		x := p1.X + 1.2 + dx
		node := Net(fmt.Sprintf("VDIV_%d_%d", a, b))
		return []Part{
			{
				Name:     fmt.Sprintf("R%d_upper", a),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistorTwo,
				Position: geom.Point{X: x, Y: p1.Y + 0.4 + dy},
				Rotation: -90,
				Pin1:     ChipPin(a),
				Pin2:     node,
			},
			{
				Name:     fmt.Sprintf("R%d_lower", b),
				Symbol:   geom.SymbolResistor,
				Value:    valueResistor,
				Position: geom.Point{X: x, Y: p2.Y - 0.4 + dy},
				Rotation: -90,
				Pin1:     node,
				Pin2:     ChipPin(b),
			},
		}
	},
}
