package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/pipeline"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var frame int

	cmd := &cobra.Command{
		Use:   "preview [chart.toml]",
		Short: "Preview a chart and step through its frames in the terminal",
		Long: `Preview a chart and step through its frames in the terminal.

The chart is plotted once. Moving between frames calls Update on the same
engine, so only bar heights change, exactly as in an animated chart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], frame)
		},
	}

	cmd.Flags().IntVar(&frame, "frame", 0, "frame to start at (1-based, 0 for the chart's own values)")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, frame int) error {
	def, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("load definition %s: %w", input, err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	eng, _, err := runner.Plot(ctx, def, pipeline.Options{Frame: frame})
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	m := NewPreviewModel(def, eng, frame)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
