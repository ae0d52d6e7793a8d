package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [chart.toml]",
		Short: "Render a chart definition to SVG, PNG, PDF or JSON",
		Long: `Render a chart definition to SVG, PNG, PDF or JSON.

The definition is a TOML or JSON file with a [chart] table and optional
[[frames]] of values. By default the chart's own values are drawn; --frame N
draws the Nth frame instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results and re-render")
	cmd.Flags().IntVar(&opts.Frame, "frame", 0, "frame to draw (1-based, 0 for the chart's own values)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the measuring font in SVG and PDF output")

	return cmd
}

// runRender loads the definition, executes the pipeline and writes each
// artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d bars...", def.Chart.Size))
	spinner.Start()

	result, err := runner.Execute(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		bars:      len(result.Layout.Bars),
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams groups what writeArtifacts needs to name and report
// output files.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	bars      int
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to
// output verbatim when given; otherwise files are named base.format.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s output", format)
		}
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.bars, p.cacheHit)
	return nil
}
