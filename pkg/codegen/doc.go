// Package codegen serializes solved designs.
//
// # Circuit source
//
// [Circuit] writes a design as a TSX module with a default export, one
// <chip> for U1 and one <resistor>/<capacitor> per placed part. Parts of a
// multi-part pattern are wrapped in a <group>. Coordinates are the slid
// positions, so the file reproduces the accepted layout exactly:
//
//	src, err := codegen.Circuit(board.Board{PinCount: 3, Applications: apps, Variations: sol.Variations})
//	os.WriteFile(codegen.Filename(3, id), []byte(src), 0o644)
//
// # Diagrams
//
// [DOT] turns a board's netlist into Graphviz source with parts as boxes,
// chip pins as circles and named nets as diamonds. [RenderSVG] renders it
// in-process with [github.com/goccy/go-graphviz]; no dot binary is needed.
//
// [LayoutSVG] draws the collision boxes of a rendered layout, with boxes
// that take part in a collision outlined in red. It is a debugging aid for
// the solver, not a schematic.
package codegen
