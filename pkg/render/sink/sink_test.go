package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/fonts"
	"github.com/matzehuels/barchart/pkg/render"
	"github.com/matzehuels/barchart/pkg/render/scene"
)

func plotScene(t *testing.T) (*scene.Scene, *chart.Layout) {
	t.Helper()
	sc := scene.New()
	cfg := chart.DefaultConfig()
	cfg.Size = 3
	cfg.Width, cfg.Height = 300, 200
	cfg.Title = "Fish & Chips"
	cfg.YLegend = "Count"
	cfg.XLabels = []string{"a", "b", "c"}
	cfg.XLabelsRotation = 45
	cfg.YLabels = []float64{0, 5, 10}
	cfg.Values = []float64{-2, 5, 10}

	l, err := chart.New(fonts.Approximate{}, chart.WithSurface(sc)).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	return sc, l
}

func TestRenderSVG(t *testing.T) {
	sc, _ := plotScene(t)
	out := string(RenderSVG(sc, WithTitle("chart")))

	tests := []struct {
		name string
		want string
	}{
		{"root element", "<svg"},
		{"view box", "viewBox="},
		{"stylesheet", ".bar {"},
		{"background", `class="background"`},
		{"bars", `class="bar"`},
		{"lines", `class="horizontal-line"`},
		{"escaped title", "Fish &amp; Chips"},
		{"rotated y legend", "rotate(-90)"},
		{"rotated x labels", "rotate(-45)"},
		{"document title", "<title>chart</title>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("RenderSVG() missing %q", tt.want)
			}
		})
	}
	if got := strings.Count(out, `class="bar"`); got != 3 {
		t.Errorf("rendered %d bars, want 3", got)
	}
	if strings.Contains(out, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}
}

func TestRenderSVGEmbeddedFont(t *testing.T) {
	sc, _ := plotScene(t)
	if out := RenderSVG(sc, WithEmbeddedFont()); !bytes.Contains(out, []byte("@font-face")) {
		t.Error("RenderSVG(WithEmbeddedFont) has no @font-face rule")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   chart.Rect
		want chart.Rect
	}{
		{"positive", chart.Rect{X: 1, Y: 2, Width: 3, Height: 4}, chart.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		{"negative height", chart.Rect{X: 1, Y: 10, Width: 3, Height: -4}, chart.Rect{X: 1, Y: 6, Width: 3, Height: 4}},
		{"negative width", chart.Rect{X: 5, Y: 0, Width: -2, Height: 1}, chart.Rect{X: 3, Y: 0, Width: 2, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(tt.in); got != tt.want {
				t.Errorf("normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	sc, _ := plotScene(t)

	tests := []struct {
		name          string
		scale         float64
		width, height int
	}{
		{"default scale", 0, 600, 400},
		{"unscaled", 1, 300, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []PNGOption
			if tt.scale > 0 {
				opts = append(opts, WithScale(tt.scale))
			}
			data, err := RenderPNG(sc, opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
			// The top-left corner is background.
			r, g, bl, _ := img.At(0, 0).RGBA()
			if r>>8 != 0xEE || g>>8 != 0xEE || bl>>8 != 0xEE {
				t.Errorf("corner colour = %x %x %x, want ee ee ee", r>>8, g>>8, bl>>8)
			}
		})
	}
}

func TestRenderPNGInvalidScale(t *testing.T) {
	sc, _ := plotScene(t)
	if _, err := RenderPNG(sc, WithScale(-1)); err == nil {
		t.Error("RenderPNG(WithScale(-1)) = nil error, want error")
	}
}

func TestRenderJSON(t *testing.T) {
	_, l := plotScene(t)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Width   float64          `json:"width"`
		Height  float64          `json:"height"`
		Content chart.ContentBox `json:"content"`
		Bars    []chart.Bar      `json:"bars"`
		Config  *chart.Config    `json:"config"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 300 || out.Height != 200 {
		t.Errorf("size = %vx%v, want 300x200", out.Width, out.Height)
	}
	if out.Content != l.Content {
		t.Errorf("Content = %+v, want %+v", out.Content, l.Content)
	}
	if len(out.Bars) != 3 {
		t.Errorf("Bars count = %d, want 3", len(out.Bars))
	}
	if out.Config != nil {
		t.Error("Config included without WithJSONConfig")
	}
}

func TestRenderJSONWithOptions(t *testing.T) {
	_, l := plotScene(t)
	cfg := chart.DefaultConfig()
	cfg.Title = "embedded"

	data, err := RenderJSON(l, WithJSONIndent(), WithJSONConfig(cfg))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  ")) {
		t.Error("output is not indented")
	}
	if !bytes.Contains(data, []byte(`"title": "embedded"`)) {
		t.Error("config not embedded")
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.ConverterAvailable() {
		t.Skip(render.ConverterCommand + " not installed")
	}
	sc, _ := plotScene(t)

	out, err := RenderPDF(sc, WithPDFSVGOptions(WithTitle("chart")))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("RenderPDF() output does not start with %%PDF: %q", out[:min(len(out), 8)])
	}
}

func TestRenderPNGViaRSVG(t *testing.T) {
	if !render.ConverterAvailable() {
		t.Skip(render.ConverterCommand + " not installed")
	}
	sc, _ := plotScene(t)

	out, err := RenderPNG(sc, WithScale(1), WithRSVG())
	if err != nil {
		t.Fatalf("RenderPNG(WithRSVG) error: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}
