package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/codegen"
	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// Export formats.
const (
	formatTSX     = "tsx"
	formatDOT     = "dot"
	formatNetlist = "svg"
	formatLayout  = "layout"
)

// exportFilename returns the default output name for format.
func exportFilename(pins, id int, format string) string {
	switch format {
	case formatTSX:
		return codegen.Filename(pins, id)
	case formatDOT:
		return designLabel(pins, id) + ".dot"
	case formatNetlist:
		return designLabel(pins, id) + ".netlist.svg"
	default:
		return designLabel(pins, id) + ".layout.svg"
	}
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export <pins> <id>",
		Short: "Export a design as circuit source, netlist graph or layout drawing",
		Long: `Export writes one artifact of a design:

  tsx     the circuit source of the solved layout
  dot     the netlist as a Graphviz graph
  svg     the netlist rendered to SVG
  layout  an SVG of the component boxes, collisions in red

Use -o - to write to stdout.`,
		Example: `  pinboard export 3 91 --format svg
  pinboard export 3 91 --format dot -o - | dot -Tpng > p3-v91.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, id, err := parseDesign(args)
			if err != nil {
				return err
			}
			data, err := c.exportData(cmd, pins, id, format, noCache)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if output == "" {
				output = exportFilename(pins, id, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Exported %s", designLabel(pins, id))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTSX, "tsx, dot, svg or layout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the design)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) exportData(cmd *cobra.Command, pins, id int, format string, noCache bool) ([]byte, error) {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}

	switch format {
	case formatDOT:
		apps, err := runner.Planner.Plan(id, pins)
		if err != nil {
			return nil, err
		}
		nl, err := board.BuildNetlist(board.Board{PinCount: pins, Applications: apps})
		if err != nil {
			return nil, err
		}
		return []byte(codegen.DOT(nl)), nil
	case formatNetlist:
		svg, _, err := runner.NetlistSVG(ctx, pins, id)
		return svg, err
	case formatTSX, formatLayout:
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown export format %q", format)
	}

	opts, err := c.solveOpts(pins, id, 0, "")
	if err != nil {
		return nil, err
	}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	d := res.Design

	if format == formatTSX {
		if d.Status != pipeline.StatusSolved {
			return nil, errors.New(errors.ErrCodeNotFound, "%s has no collision-free layout", designLabel(pins, id))
		}
		return []byte(d.Code), nil
	}
	return layoutSVG(d)
}

// layoutSVG draws the solved layout, or the canonical one when the design
// is unsolved.
func layoutSVG(d *pipeline.Design) ([]byte, error) {
	elements, err := board.Render(board.Board{PinCount: d.PinCount, Applications: d.Applications, Variations: d.Variations})
	if err != nil {
		return nil, err
	}
	return codegen.LayoutSVG(elements, collision.DetectElements(elements)), nil
}

