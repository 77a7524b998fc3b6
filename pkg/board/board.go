// Package board renders a planned design into schematic geometry.
//
// A [Board] is the chip U1 plus the pattern applications of one design and
// a slide offset per pin. [Render] is a pure function of the board: it places
// every pattern, sizes each part as a component footprint, and adds the
// designator text and net labels a schematic viewer would draw. The result
// feeds collision detection.
//
// Layout conventions:
//
//   - U1 is centered on the origin with its pins on the right edge at
//     x = pattern.PinColumnX, pin 1 on top.
//   - Parts are two-terminal. Terminal 1 is on the left at rotation 0; a
//     rotation of 90 turns it to the bottom, -90 to the top.
//   - A net label sits at the end of a short leader pointing away from the
//     terminal it names and belongs to that part.
package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/pattern"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// Chip and part dimensions, in schematic units.
const (
	ChipID        = "U1"
	ChipWidth     = 0.8
	ChipMinHeight = 0.8

	PartLength         = 1.0
	ResistorThickness  = 0.3
	CapacitorThickness = 0.5

	LabelOffset = 0.35
	LeaderLen   = 0.3
)

// Board describes one candidate layout. Variations holds one offset per pin;
// a nil slice means the canonical layout.
type Board struct {
	PinCount     int                   `json:"pin_count"`
	Applications []variant.Application `json:"applications"`
	Variations   []slide.Variation     `json:"variations,omitempty"`
}

// Validate checks the board's shape.
func (b Board) Validate() error {
	if err := errors.ValidatePinCount(b.PinCount); err != nil {
		return err
	}
	if b.Variations != nil && len(b.Variations) != b.PinCount {
		return errors.New(errors.ErrCodeInvalidInput, "got %d slide variations for %d pins", len(b.Variations), b.PinCount)
	}
	return nil
}

func (b Board) variation(pin int) slide.Variation {
	if b.Variations == nil || pin < 1 || pin > len(b.Variations) {
		return slide.Variation{}
	}
	return b.Variations[pin-1]
}

// Parts places every application and returns the parts in application
// order.
func (b Board) Parts() ([]pattern.Part, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	var parts []pattern.Part
	for _, a := range b.Applications {
		p, err := a.Pattern()
		if err != nil {
			return nil, err
		}
		for _, pin := range a.Pins {
			if pin < 1 || pin > b.PinCount {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s claims pin %d of a %d-pin chip", a, pin, b.PinCount)
			}
		}
		parts = append(parts, p.Place(a.Pins, b.PinCount, b.variation(a.TargetPin))...)
	}
	return parts, nil
}

// ChipHeight returns the body height of U1 for pinCount pins.
func ChipHeight(pinCount int) float64 {
	return math.Max(pattern.PinPitch*float64(pinCount-1)+0.4, ChipMinHeight)
}

// Render produces the schematic elements of b.
func Render(b Board) ([]geom.Element, error) {
	parts, err := b.Parts()
	if err != nil {
		return nil, err
	}

	h := ChipHeight(b.PinCount)
	elements := make([]geom.Element, 0, 2+3*len(parts))
	elements = append(elements,
		geom.Component{
			ID:     ChipID,
			Name:   ChipID,
			Symbol: geom.SymbolChip,
			Width:  ChipWidth,
			Height: h,
		},
		geom.Text{
			ID:          "text_" + ChipID,
			ComponentID: ChipID,
			Position:    geom.Point{Y: h/2 + geom.TextSize/2},
			Text:        ChipID,
		},
	)

	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		if seen[part.Name] {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "designator %s placed twice", part.Name)
		}
		seen[part.Name] = true
		elements = append(elements, partElements(part)...)
	}
	return elements, nil
}

func partElements(p pattern.Part) []geom.Element {
	c := Footprint(p)
	vertical := c.Vertical()

	text := geom.Text{
		ID:          "text_" + p.Name,
		ComponentID: p.Name,
		Text:        p.Name,
	}
	if vertical {
		text.Position = p.Position.Add(-LabelOffset, 0)
	} else {
		text.Position = p.Position.Add(0, LabelOffset)
	}

	out := []geom.Element{c, text}
	for i, target := range []string{p.Pin1, p.Pin2} {
		net, ok := strings.CutPrefix(target, "net.")
		if !ok {
			continue
		}
		term, dir := Terminal(p, i+1)
		out = append(out, geom.NetLabel{
			ID:          fmt.Sprintf("net_label_%s_%d", p.Name, i+1),
			Net:         net,
			ComponentID: p.Name,
			Anchor:      term,
			Center:      term.Add(dir.X*LeaderLen, dir.Y*LeaderLen),
		})
	}
	return out
}

// Footprint returns the component footprint of a part. Width and Height are
// the rotated extents.
func Footprint(p pattern.Part) geom.Component {
	thick := ResistorThickness
	if p.Symbol == geom.SymbolCapacitor {
		thick = CapacitorThickness
	}
	c := geom.Component{
		ID:       p.Name,
		Name:     p.Name,
		Symbol:   p.Symbol,
		Center:   p.Position,
		Width:    PartLength,
		Height:   thick,
		Rotation: p.Rotation,
	}
	if c.Vertical() {
		c.Width, c.Height = c.Height, c.Width
	}
	return c
}

// Terminal returns the position of terminal n (1 or 2) of a part and the unit
// direction pointing outward from the part body.
func Terminal(p pattern.Part, n int) (pos, dir geom.Point) {
	// Terminal 1 points left at rotation 0.
	dx := -1.0
	if n == 2 {
		dx = 1
	}
	rad := p.Rotation * math.Pi / 180
	dir = geom.Point{
		X: round(dx * math.Cos(rad)),
		Y: round(dx * math.Sin(rad)),
	}
	half := PartLength / 2
	return p.Position.Add(dir.X*half, dir.Y*half), dir
}

// round snaps cos/sin of right angles to exact values.
func round(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}

// Renderer adapts Render to the solver's renderer interface.
type Renderer struct{}

// Render renders the board made of the given arguments.
func (Renderer) Render(pinCount int, apps []variant.Application, vs []slide.Variation) ([]geom.Element, error) {
	return Render(Board{PinCount: pinCount, Applications: apps, Variations: vs})
}
