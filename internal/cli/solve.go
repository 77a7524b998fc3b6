package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/pipeline"
)

type solveOptions struct {
	maxIterations int
	weights       string
	filter        bool
	refresh       bool
	noCache       bool
	output        string
	stdout        bool
}

// solveCommand creates the "solve" command for a single design.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve <pins> <id>",
		Short: "Find a collision-free layout for one design and write its circuit",
		Example: `  pinboard solve 3 91
  pinboard solve 4 120 --weights 8,2,1 -o boards/
  pinboard solve 3 91 --stdout`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, id, err := parseDesign(args)
			if err != nil {
				return err
			}
			return c.runSolve(cmd, pins, id, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "candidates to examine (default from config, negative for no limit)")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "slide distance weights d0,d1,d2")
	cmd.Flags().BoolVar(&opts.filter, "filter", false, "skip designs the batch filters would drop")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "directory for the circuit file")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the circuit instead of writing a file")

	return cmd
}

func (c *CLI) solveOpts(pins, id, maxIterations int, weights string) (pipeline.Options, error) {
	w, err := parseWeights(weights, c.Config.Solver.Weights)
	if err != nil {
		return pipeline.Options{}, err
	}
	if maxIterations == 0 {
		maxIterations = c.Config.Solver.MaxIterations
	}
	return pipeline.Options{
		PinCount:      pins,
		Variant:       id,
		MaxIterations: maxIterations,
		Weights:       w,
		MaxComponents: c.Config.Generate.MaxComponents,
	}, nil
}

func (c *CLI) runSolve(cmd *cobra.Command, pins, id int, opts solveOptions) error {
	ctx := cmd.Context()
	popts, err := c.solveOpts(pins, id, opts.maxIterations, opts.weights)
	if err != nil {
		return err
	}
	popts.Filter = opts.filter
	popts.Refresh = opts.refresh

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	label := designLabel(pins, id)
	spinner := newSpinner(ctx, fmt.Sprintf("Solving %s...", label))
	spinner.Start()
	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Solving %s failed", label))
		return err
	}
	spinner.Stop()

	d := res.Design
	switch d.Status {
	case pipeline.StatusFiltered:
		printWarning("%s filtered", label)
		printDesignStats(d, false)
		return nil
	case pipeline.StatusUnsolved:
		printWarning("%s has no collision-free layout within %d candidates", label, d.Examined)
		printDesignStats(d, res.CacheInfo.DesignHit)
		printNextStep("Watch the search", fmt.Sprintf("pinboard watch %d %d", pins, id))
		return nil
	}

	if opts.stdout {
		fmt.Print(d.Code)
		return nil
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return err
	}
	path := filepath.Join(opts.output, d.Filename)
	if err := os.WriteFile(path, []byte(d.Code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Logger.Debug("wrote circuit", "path", path, "elapsed", prog.elapsed())
	printSuccess("Solved %s", label)
	printDesignStats(d, res.CacheInfo.DesignHit)
	printFile(path)
	return nil
}
