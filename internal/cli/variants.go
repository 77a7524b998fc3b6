package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/variant"
)

type variantsOptions struct {
	list          bool
	filter        bool
	maxComponents int
}

// variantsCommand creates the "variants" command that counts the design space.
func (c *CLI) variantsCommand() *cobra.Command {
	var opts variantsOptions

	cmd := &cobra.Command{
		Use:   "variants <pins>",
		Short: "Count (and optionally list) the designs for a pin count",
		Example: `  pinboard variants 3
  pinboard variants 3 --list --filter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, err := parsePins(args[0])
			if err != nil {
				return err
			}
			return c.runVariants(pins, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.list, "list", false, "list every design id with its patterns")
	cmd.Flags().BoolVar(&opts.filter, "filter", false, "mark designs the batch filters would drop")
	cmd.Flags().IntVar(&opts.maxComponents, "max-components", variant.DefaultMaxComponents, "part limit for --filter")

	return cmd
}

func (c *CLI) runVariants(pins int, opts variantsOptions) error {
	total := variant.TotalVariants(pins)
	printKeyValue("Pins", fmt.Sprint(pins))
	printKeyValue("Designs", StyleNumber.Render(fmt.Sprint(total)))
	printKeyValue("Fully populated", fmt.Sprint(variant.FullyPopulated(pins)))
	if !opts.list {
		return nil
	}

	printNewline()
	filters := variant.DefaultFilters(opts.maxComponents)
	for id := 0; id < total; id++ {
		apps, err := variant.Plan(id, pins)
		if err != nil {
			return err
		}
		names := make([]string, len(apps))
		for i, a := range apps {
			names[i] = a.String()
		}
		line := fmt.Sprintf("%5d  %s", id, strings.Join(names, ", "))
		if opts.filter {
			if fr := variant.ApplyFilters(apps, pins, filters...); !fr.Passed {
				fmt.Println(StyleDim.Render(line + "  (" + fr.Reason + ")"))
				continue
			}
		}
		fmt.Println(line)
	}
	return nil
}

// planCommand creates the "plan" command that shows one design's patterns.
func (c *CLI) planCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "plan <pins> <id>",
		Short:   "Show the pattern placements of one design",
		Example: `  pinboard plan 3 91`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, id, err := parseDesign(args)
			if err != nil {
				return err
			}
			return c.runPlan(pins, id, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}

type planOutput struct {
	PinCount       int                   `json:"pin_count"`
	Variant        int                   `json:"variant"`
	Choices        []int                 `json:"choices"`
	Applications   []variant.Application `json:"applications"`
	UsedDimensions [][]int               `json:"used_dimensions"`
}

func (c *CLI) runPlan(pins, id int, asJSON bool) error {
	choices, err := variant.Default.Choices(id, pins)
	if err != nil {
		return err
	}
	apps, err := variant.Resolve(choices)
	if err != nil {
		return err
	}
	dims, err := variant.UsedDimensions(apps, pins)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(planOutput{pins, id, choices, apps, dims})
	}

	fmt.Println(StyleTitle.Render(designLabel(pins, id)))
	printKeyValue("Choices", fmt.Sprint(choices))
	for _, a := range apps {
		printInfo("%s", a)
	}
	for pin, d := range dims {
		if len(d) > 0 {
			printDetail("pin %d slides along %v", pin+1, d)
		}
	}
	return nil
}
