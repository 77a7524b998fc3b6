package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// watchCommand creates the "watch" command, an interactive solver viewer.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		maxIterations int
		weights       string
		delay         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <pins> <id>",
		Short: "Step through the slide search of one design interactively",
		Example: `  pinboard watch 3 17
  pinboard watch 4 200 --delay 20ms`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, id, err := parseDesign(args)
			if err != nil {
				return err
			}
			popts, err := c.solveOpts(pins, id, maxIterations, weights)
			if err != nil {
				return err
			}
			apps, err := variant.Plan(id, pins)
			if err != nil {
				return err
			}

			last := &solver.Progress{}
			s, err := solver.New(solver.Options{
				PinCount:      pins,
				Applications:  apps,
				MaxIterations: popts.MaxIterations,
				Weights:       popts.Weights,
				Renderer:      board.Renderer{},
				Observer:      WatchObserver(last),
				Logger:        c.Logger,
			})
			if err != nil {
				return err
			}
			if err := s.Start(); err != nil {
				return err
			}

			model := NewWatchModel(designLabel(pins, id), apps, s, last, delay)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				s.Stop()
				return err
			}
			return reportWatch(final.(WatchModel), pins, id)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "candidates to examine (default from config, negative for no limit)")
	cmd.Flags().StringVar(&weights, "weights", "", "slide distance weights d0,d1,d2")
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "time between candidates")

	return cmd
}

func reportWatch(m WatchModel, pins, id int) error {
	label := designLabel(pins, id)
	switch m.State {
	case solver.Solved:
		sol := m.Solver.Solution()
		printSuccess("Solved %s at candidate %d (distance %.2f)", label, sol.Index, sol.Distance)
		printNextStep("Write the circuit", fmt.Sprintf("pinboard solve %d %d", pins, id))
	case solver.Failed:
		return m.Err
	default:
		printWarning("%s %s after %d candidates", label, m.State, m.Solver.Examined())
	}
	return nil
}
