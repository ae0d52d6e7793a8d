package sink

import (
	"encoding/json"

	"github.com/matzehuels/barchart/pkg/chart"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	config *chart.Config
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONConfig embeds the chart configuration, enabling re-plotting the
// exact same chart from the export.
func WithJSONConfig(c chart.Config) JSONOption {
	return func(r *jsonRenderer) { r.config = &c }
}

type jsonOutput struct {
	Config *chart.Config `json:"config,omitempty"`
	*chart.Layout
}

// RenderJSON exports the layout geometry: content box, bar and gap widths,
// every placed label, reference lines and bars.
func RenderJSON(l *chart.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Config: r.config, Layout: l}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
