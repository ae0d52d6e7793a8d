package styles

import (
	"strings"
	"testing"

	"github.com/matzehuels/barchart/pkg/chart"
)

func TestDefaultCoversEveryClass(t *testing.T) {
	s := Default()
	for _, c := range chart.Classes {
		if _, ok := s[c]; !ok {
			t.Errorf("Default() has no style for %q", c)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Sheet{
		chart.ClassBar:   {Fill: "#FF0000"},
		chart.ClassTitle: {FontSize: 24},
	})

	bar := merged.Get(chart.ClassBar)
	if bar.Fill != "#FF0000" {
		t.Errorf("bar fill = %q, want #FF0000", bar.Fill)
	}
	if bar.Stroke != "#9E9E9E" || bar.StrokeWidth != 2 {
		t.Errorf("bar stroke not kept: %+v", bar)
	}
	if got := merged.Get(chart.ClassTitle).FontSize; got != 24 {
		t.Errorf("title font size = %v, want 24", got)
	}
	if base.Get(chart.ClassBar).Fill != "#BDBDBD" {
		t.Error("Merge modified the receiver")
	}
}

func TestFontSizes(t *testing.T) {
	sizes := Default().Merge(Sheet{chart.ClassTitle: {FontSize: 20}}).FontSizes()
	if sizes[chart.ClassTitle] != 20 {
		t.Errorf("title size = %v, want 20", sizes[chart.ClassTitle])
	}
	if _, ok := sizes[chart.ClassBar]; ok {
		t.Error("FontSizes() includes a non-text class")
	}
}

func TestCSS(t *testing.T) {
	css := Default().CSS(false)

	tests := []struct {
		name string
		want string
	}{
		{"background", ".background { fill: #EEEEEE; }"},
		{"bar", ".bar { fill: #BDBDBD; stroke: #9E9E9E; stroke-width: 2px; }"},
		{"line", ".horizontal-line { fill: none; stroke: #BDBDBD; stroke-width: 2px; }"},
		{"text", ".title { fill: #616161; font-size: 16px; font-family: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(css, tt.want) {
				t.Errorf("CSS() missing %q in:\n%s", tt.want, css)
			}
		})
	}
	if strings.Contains(css, "@font-face") {
		t.Error("CSS(false) embeds a font")
	}
	if !strings.Contains(Default().CSS(true), "@font-face") {
		t.Error("CSS(true) does not embed a font")
	}
}
