package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/generate"
	"github.com/matzehuels/pinboard/pkg/variant"
)

type generateOptions struct {
	start, end    int
	workers       int
	maxIterations int
	maxComponents int
	weights       string
	noFilter      bool
	refresh       bool
	noCache       bool
	output        string
}

// generateCommand creates the "generate" command for batch runs.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <pins>",
		Short: "Solve a range of designs in parallel and store the results",
		Long: `Generate solves every design id in [start, end) for a pin count, spreading
contiguous id ranges over worker goroutines. Solved designs are written to
the configured store: a directory of .circuit.tsx and .json files, or a
MongoDB collection.`,
		Example: `  pinboard generate 3
  pinboard generate 5 --start 0 --end 400 --workers 8 -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, err := parsePins(args[0])
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, pins, opts)
		},
	}

	cmd.Flags().IntVar(&opts.start, "start", 0, "first design id")
	cmd.Flags().IntVar(&opts.end, "end", 0, "end of the id range, exclusive (default all)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "worker goroutines (default from config, then GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "candidates per design (default from config)")
	cmd.Flags().IntVar(&opts.maxComponents, "max-components", 0, "drop designs with more parts (default from config)")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "slide distance weights d0,d1,d2")
	cmd.Flags().BoolVar(&opts.noFilter, "no-filter", false, "solve designs the filters would drop")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory for the dir store (default from config)")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, pins int, opts generateOptions) error {
	ctx := cmd.Context()
	base, err := c.solveOpts(pins, 0, opts.maxIterations, opts.weights)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	st, err := c.newStore(ctx, opts.output)
	if err != nil {
		return err
	}
	defer st.Close()

	gopts := generate.Options{
		PinCount:      pins,
		Start:         opts.start,
		End:           opts.end,
		Workers:       opts.workers,
		MaxIterations: base.MaxIterations,
		Weights:       base.Weights,
		Filter:        c.Config.Generate.Filter && !opts.noFilter,
		MaxComponents: opts.maxComponents,
		Refresh:       opts.refresh,
	}
	if gopts.Workers == 0 {
		gopts.Workers = c.Config.Generate.Workers
	}
	if gopts.MaxComponents == 0 {
		gopts.MaxComponents = c.Config.Generate.MaxComponents
	}

	total := variant.TotalVariants(pins)
	printInfo("Generating %s designs for %d pins", StyleNumber.Render(fmt.Sprint(total)), pins)

	spinner := newSpinner(ctx, "Generating...")
	gopts.OnProgress = func(done, count int) {
		spinner.SetMessage(fmt.Sprintf("Generating %d/%d...", done, count))
	}
	spinner.Start()
	prog := newProgress(c.Logger)
	stats, err := generate.NewRunner(runner, st, c.Logger).Run(ctx, gopts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d designs", stats.Processed))

	printSuccess("Processed %d designs", stats.Processed)
	printKeyValue("Solved", StyleSuccess.Render(fmt.Sprint(stats.Solved)))
	printKeyValue("Unsolved", fmt.Sprint(stats.Unsolved))
	printKeyValue("Filtered", fmt.Sprint(stats.Filtered))
	if stats.Failed > 0 {
		printKeyValue("Failed", StyleError.Render(fmt.Sprint(stats.Failed)))
	}
	printKeyValue("From cache", fmt.Sprint(stats.Cached))
	printKeyValue("Run", stats.RunID)
	if ds, ok := st.(interface{ Dir() string }); ok {
		printFile(ds.Dir())
	}
	return nil
}
