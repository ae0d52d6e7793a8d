package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints the computed
// geometry of a chart without drawing it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [chart.toml]",
		Short: "Print the computed geometry of a chart as JSON",
		Long: `Print the computed geometry of a chart as JSON.

The output holds the content box, bar width and gap, every bar rectangle,
label positions and horizontal lines. It is written to stdout unless
--output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.Frame, "frame", 0, "frame to apply (1-based, 0 for the chart's own values)")

	return cmd
}

// runLayout computes the layout through the pipeline so it shares the
// render cache, then writes the geometry.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	def, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("load definition %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := runner.Execute(ctx, def, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output == "" {
		return bio.WriteLayoutJSON(os.Stdout, result.Layout)
	}
	if err := writeLayoutFile(output, result); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(result.Layout.Bars), result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}

func writeLayoutFile(path string, result *pipeline.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return bio.WriteLayoutJSON(f, result.Layout)
}
