package codegen

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// DOT converts a netlist to an undirected Graphviz graph. Every connection
// becomes one edge labeled with the part terminal.
func DOT(nl *board.Netlist) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#555555\"];\n")
	buf.WriteString("\n")

	pins := map[string]bool{}
	for _, c := range nl.Connections {
		if pin, ok := c.ChipPin(); ok && !pins[pin] {
			pins[pin] = true
			fmt.Fprintf(&buf, "  %q [label=%q, shape=circle, style=filled, fillcolor=\"#dddddd\"];\n",
				c.Target, board.ChipID+"."+pin)
		}
	}
	for _, net := range nl.Nets {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=diamond];\n", "net."+net, net)
	}
	for _, p := range nl.Parts {
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white];\n", p)
	}

	buf.WriteString("\n")
	for _, c := range nl.Connections {
		fmt.Fprintf(&buf, "  %q -- %q [label=\"%d\"];\n", c.Part, c.Target, c.Terminal)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// NetlistPad is the margin, in points, added around a rendered netlist so
// terminal labels on the outermost edges stay inside the drawing.
const NetlistPad = 8.0

// RenderSVG lays out netlist DOT with the embedded Graphviz engine and
// returns a unitless SVG padded by NetlistPad. Engine and layout failures
// are RENDER_FAILED errors.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse netlist DOT")
	}
	defer g.Close()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "start graphviz")
	}
	defer gv.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "lay out netlist")
	}
	return padRoot(out.Bytes(), NetlistPad), nil
}

// svgRootRe matches the root element and captures the viewBox size.
var svgRootRe = regexp.MustCompile(`<svg[^>]*viewBox="[-0-9.]+\s+[-0-9.]+\s+([0-9.]+)\s+([0-9.]+)"[^>]*>`)

// padRoot swaps the pt-sized root element for a unitless one whose viewBox
// grows by pad on every side. Output without a usable viewBox is returned
// unchanged.
func padRoot(svg []byte, pad float64) []byte {
	loc := svgRootRe.FindSubmatchIndex(svg)
	if loc == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(svg[loc[2]:loc[3]]), 64)
	h, _ := strconv.ParseFloat(string(svg[loc[4]:loc[5]]), 64)
	if w <= 0 || h <= 0 {
		return svg
	}
	w, h = w+2*pad, h+2*pad
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" class="netlist" viewBox="%s %s %s %s" width="%s" height="%s">`,
		coord(-pad), coord(-pad), coord(w), coord(h), coord(math.Ceil(w)), coord(math.Ceil(h)))

	out := make([]byte, 0, len(svg)+len(root))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}
