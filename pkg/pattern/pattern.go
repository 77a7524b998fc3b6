// Package pattern is the fixed catalog of small layout templates that attach
// passive parts to one or two chip pins.
//
// Patterns are addressed by [Kind] and variant number. Both catalogs are
// ordered and never change at runtime:
//
//	1-pin  0 none  1 resistor to power  2 resistor to ground
//	       3 voltage divider  4 resistor to signal  5 two capacitors to ground
//	2-pin  0 capacitor  1 capacitor and resistor  2 voltage divider
//
// Variant 0 of the 1-pin catalog is the null pattern: it places nothing. The
// 2-pin catalog has no null entry.
//
// A pattern turns (pins, pin count, slide offset) into abstract [Part] values.
// It never produces geometry sizes; that is the renderer's job.
package pattern

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/slide"
)

// Kind distinguishes 1-pin from 2-pin patterns.
type Kind int

const (
	OnePin Kind = 1
	TwoPin Kind = 2
)

// Pins returns how many consecutive chip pins a pattern of this kind claims.
func (k Kind) Pins() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case OnePin:
		return "1-pin"
	case TwoPin:
		return "2-pin"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes k as "1-pin" or "2-pin".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes the MarshalText form.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "1-pin":
		*k = OnePin
	case "2-pin":
		*k = TwoPin
	default:
		return errors.New(errors.ErrCodeInvalidPattern, "unknown pattern kind %q", b)
	}
	return nil
}

// Part is one passive placed by a pattern. Pin1 and Pin2 are connection
// targets of the form "U1.<pin>" or "net.<NAME>".
type Part struct {
	Name     string      `json:"name"`
	Symbol   geom.Symbol `json:"symbol"`
	Value    string      `json:"value"`
	Position geom.Point  `json:"position"`
	Rotation float64     `json:"rotation"`
	Pin1     string      `json:"pin1"`
	Pin2     string      `json:"pin2"`
}

// Pattern is a parametrized template.
type Pattern interface {
	Name() string
	Kind() Kind
	// UsedDimensions lists the slide axes Place reacts to.
	UsedDimensions() []int
	// Place returns the parts for pins on a chip with pinCount pins, offset
	// by v. len(pins) equals Kind().Pins().
	Place(pins []int, pinCount int, v slide.Variation) []Part
}

// Catalog sizes. NumOnePin includes the null pattern.
const (
	NumOnePin = 6
	NumTwoPin = 3
)

// Non-null pattern counts per kind.
const (
	SP1 = NumOnePin - 1
	SP2 = NumTwoPin
)

var (
	onePin = [NumOnePin]Pattern{
		Null,
		ResistorToPower,
		ResistorToGround,
		VoltageDivider,
		ResistorToSignal,
		TwoCapacitorsToGround,
	}
	twoPin = [NumTwoPin]Pattern{
		Capacitor,
		CapacitorAndResistor,
		TwoPinVoltageDivider,
	}
)

// Lookup returns the pattern for kind and variant. An unknown combination is
// an INVALID_PATTERN error.
func Lookup(kind Kind, variant int) (Pattern, error) {
	switch kind {
	case OnePin:
		if variant >= 0 && variant < NumOnePin {
			return onePin[variant], nil
		}
	case TwoPin:
		if variant >= 0 && variant < NumTwoPin {
			return twoPin[variant], nil
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidPattern, "unknown pattern kind %d", int(kind))
	}
	return nil, errors.New(errors.ErrCodeInvalidPattern, "no %s pattern with variant %d", kind, variant)
}

// OnePinPatterns returns the 1-pin catalog in order, null pattern first.
func OnePinPatterns() []Pattern {
	return onePin[:]
}

// TwoPinPatterns returns the 2-pin catalog in order.
func TwoPinPatterns() []Pattern {
	return twoPin[:]
}

// PinPosition returns the anchor of pin on the chip's right-side pin column.
// Pins are spaced 0.2 apart, centered on y=0, pin 1 on top.
func PinPosition(pin, pinCount int) geom.Point {
	if pinCount <= 1 {
		return geom.Point{X: PinColumnX}
	}
	return geom.Point{
		X: PinColumnX,
		Y: PinPitch*float64(pinCount-1)/2 - float64(pin-1)*PinPitch,
	}
}

// Chip pin column layout.
const (
	PinColumnX = 0.6
	PinPitch   = 0.2
)

// ChipPin returns the connection target for a chip pin.
func ChipPin(pin int) string {
	return fmt.Sprintf("U1.%d", pin)
}

// Net returns the connection target for a named net.
func Net(name string) string {
	return "net." + name
}
