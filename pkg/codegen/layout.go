package codegen

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/geom"
)

const (
	layoutScale  = 100.0
	layoutMargin = 0.5
)

var boxColors = map[geom.ElementType]string{
	geom.TypeComponent: "#4a78b5",
	geom.TypeText:      "#8a8a8a",
	geom.TypeNetLabel:  "#3c9d5d",
}

// LayoutSVG draws the collision boxes of elements. Boxes named in info's
// pairs are drawn in red. Schematic y grows upwards, so the drawing is
// flipped.
func LayoutSVG(elements []geom.Element, info collision.Info) []byte {
	boxes := geom.Extract(elements)

	hit := make(map[string]bool, 2*len(info.Pairs))
	for _, p := range info.Pairs {
		hit[p.A.ElementID], hit[p.B.ElementID] = true, true
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range boxes {
		minX, minY = math.Min(minX, b.MinX), math.Min(minY, b.MinY)
		maxX, maxY = math.Max(maxX, b.MaxX), math.Max(maxY, b.MaxY)
	}
	if len(boxes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	minX, minY = minX-layoutMargin, minY-layoutMargin
	maxX, maxY = maxX+layoutMargin, maxY+layoutMargin

	w, h := (maxX-minX)*layoutScale, (maxY-minY)*layoutScale
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	for _, b := range boxes {
		stroke := boxColors[b.ElementType]
		width := 1.5
		if hit[b.ElementID] {
			stroke, width = "#d43c3c", 3
		}
		x := (b.MinX - minX) * layoutScale
		y := (maxY - b.MaxY) * layoutScale
		fmt.Fprintf(&buf, `  <rect id="box-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%.1f"><title>%s</title></rect>`+"\n",
			html.EscapeString(b.ElementID), x, y, b.Width()*layoutScale, b.Height()*layoutScale, stroke, width, html.EscapeString(b.String()))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
