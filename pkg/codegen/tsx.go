package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/pattern"
	"github.com/matzehuels/pinboard/pkg/slide"
)

// Extension is the file extension of generated circuit sources.
const Extension = ".circuit.tsx"

// Filename returns the canonical file name of design id for pinCount pins.
func Filename(pinCount, id int) string {
	return fmt.Sprintf("p%d-v%d%s", pinCount, id, Extension)
}

// Circuit returns the TSX source of b.
func Circuit(b board.Board) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("export default () => (\n")
	sb.WriteString("  <board routingDisabled>\n")
	writeChip(&sb, b.PinCount)

	for _, a := range b.Applications {
		p, err := a.Pattern()
		if err != nil {
			return "", err
		}
		v := slide.Variation{}
		if b.Variations != nil {
			v = b.Variations[a.TargetPin-1]
		}
		parts := p.Place(a.Pins, b.PinCount, v)
		switch len(parts) {
		case 0:
		case 1:
			writePart(&sb, parts[0], "    ")
		default:
			sb.WriteString("    <group>\n")
			for _, part := range parts {
				writePart(&sb, part, "      ")
			}
			sb.WriteString("    </group>\n")
		}
	}

	sb.WriteString("  </board>\n")
	sb.WriteString(")\n")
	return sb.String(), nil
}

func writeChip(sb *strings.Builder, pinCount int) {
	pins := make([]string, pinCount)
	for i := range pins {
		pins[i] = strconv.Itoa(i + 1)
	}
	fmt.Fprintf(sb, `    <chip
      name=%q
      schPinArrangement={{
        rightSide: {
          direction: "top-to-bottom",
          pins: [%s],
        },
      }}
      schX={0}
      schY={0}
      schRotation={0}
    />
`, board.ChipID, strings.Join(pins, ", "))
}

func writePart(sb *strings.Builder, p pattern.Part, indent string) {
	tag, valueAttr := "resistor", "resistance"
	if p.Symbol == geom.SymbolCapacitor {
		tag, valueAttr = "capacitor", "capacitance"
	}
	lines := []string{
		"<" + tag,
		fmt.Sprintf("  name=%q", p.Name),
		fmt.Sprintf("  %s=%q", valueAttr, p.Value),
		fmt.Sprintf("  schX=%q", coord(p.Position.X)),
		fmt.Sprintf("  schY=%q", coord(p.Position.Y)),
		fmt.Sprintf("  schRotation=\"%sdeg\"", coord(p.Rotation)),
		fmt.Sprintf("  connections={{ pin1: %q, pin2: %q }}", p.Pin1, p.Pin2),
		"/>",
	}
	for _, l := range lines {
		sb.WriteString(indent)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

// coord formats x with at most six decimals and no trailing zeros, so
// 1.2000000000000002 prints as "1.2".
func coord(x float64) string {
	r := math.Round(x*1e6) / 1e6
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
