// Package pkg provides the core libraries for Pinboard design enumeration.
//
// # Overview
//
// Pinboard enumerates every way to attach passive-component patterns
// (pull-ups, decoupling capacitors, series resistors, dividers) to the pins
// of a chip, then slides the parts of each design until no two footprints
// overlap. The pkg directory is organized into four areas:
//
//  1. Design space - [pattern], [combo], [variant]
//  2. Geometry and search - [geom], [board], [collision], [slide], [solver]
//  3. Output - [codegen], [pipeline], [generate]
//  4. Infrastructure - [cache], [store], [config], [server], [httputil],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow for one design:
//
//	design id
//	    ↓
//	[variant] package (unrank the id into per-pin pattern choices)
//	    ↓
//	[board] package (place parts and render bounding boxes)
//	    ↓
//	[solver] package (walk [slide] offsets until [collision] finds none)
//	    ↓
//	[codegen] package (circuit source, netlist DOT/SVG, layout SVG)
//
// [pipeline] wraps these steps with caching so the CLI, the HTTP server and
// the batch generator behave the same way.
//
// # Quick Start
//
// Solve one design:
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Execute(ctx, pipeline.Options{PinCount: 3, Variant: 91})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Design.Code)
//
// Generate every design for four pins into a directory:
//
//	st, _ := store.NewDirStore("generated-designs")
//	stats, err := generate.NewRunner(r, st, logger).Run(ctx, generate.Options{
//	    PinCount: 4,
//	    Filter:   true,
//	})
//
// # Design Space
//
// [pattern] - The catalog of 1-pin and 2-pin patterns and the parts each
// places relative to its target pin.
//
// [combo] - Lazy indexing of a filtered Cartesian product, with a shared
// per-shape memo.
//
// [variant] - Maps a design id to per-pin choices and pattern applications,
// counts the design space and filters designs a batch run should skip.
//
// # Geometry and Search
//
// [geom] - Elements (components, text, net labels) and their axis-aligned
// bounding boxes.
//
// [board] - Lays out the chip and every part for a given set of slide
// offsets, and derives the netlist.
//
// [collision] - R-tree overlap detection between boxes of different owners.
//
// [slide] - The per-pin offset space and an iterator over it in
// non-decreasing weighted distance.
//
// [solver] - The resumable search for the nearest collision-free layout.
//
// # Infrastructure
//
// [cache] - File, Redis and null caches plus the key scheme for designs.
//
// [store] - Persistence of solved designs in a directory or MongoDB.
//
// [server] - The HTTP API. [httputil] holds its JSON and error helpers.
//
// [observability] - Hooks for metrics and tracing with no-op defaults.
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/solver/...      # Specific package
//	go test -run Example ./pkg/...
package pkg
