// Package styles maps chart classes to their visual appearance.
//
// The layout engine only tags primitives with a [chart.Class]; sinks look
// the class up in a [Sheet] to decide colours, stroke widths and fonts.
package styles

import (
	"fmt"
	"strings"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/fonts"
)

// Style is the appearance of one class. Zero values mean "not set": an
// empty Fill or Stroke is not painted.
type Style struct {
	Fill        string  `toml:"fill" json:"fill,omitempty"`
	Stroke      string  `toml:"stroke" json:"stroke,omitempty"`
	StrokeWidth float64 `toml:"stroke_width" json:"stroke_width,omitempty"`
	Radius      float64 `toml:"radius" json:"radius,omitempty"`
	FontSize    float64 `toml:"font_size" json:"font_size,omitempty"`
	FontFamily  string  `toml:"font_family" json:"font_family,omitempty"`
}

// Sheet holds one style per class.
type Sheet map[chart.Class]Style

const textColor = "#616161"

func textStyle() Style {
	return Style{Fill: textColor, FontSize: fonts.DefaultSize, FontFamily: fonts.FallbackFontFamily}
}

// Default returns the stock stylesheet: a light grey canvas, grey bars with a
// darker rounded outline and dark grey 16px text.
func Default() Sheet {
	return Sheet{
		chart.ClassBackground:     {Fill: "#EEEEEE"},
		chart.ClassBar:            {Fill: "#BDBDBD", Stroke: "#9E9E9E", StrokeWidth: 2, Radius: 2},
		chart.ClassHorizontalLine: {Stroke: "#BDBDBD", StrokeWidth: 2},
		chart.ClassTitle:          textStyle(),
		chart.ClassXLabel:         textStyle(),
		chart.ClassYLabel:         textStyle(),
		chart.ClassXLegend:        textStyle(),
		chart.ClassYLegend:        textStyle(),
	}
}

// Get returns the style for class, or the zero Style.
func (s Sheet) Get(class chart.Class) Style { return s[class] }

// Merge returns a copy of s with the non-zero fields of overrides applied.
func (s Sheet) Merge(overrides Sheet) Sheet {
	out := make(Sheet, len(s))
	for c, st := range s {
		out[c] = st
	}
	for c, o := range overrides {
		st := out[c]
		if o.Fill != "" {
			st.Fill = o.Fill
		}
		if o.Stroke != "" {
			st.Stroke = o.Stroke
		}
		if o.StrokeWidth != 0 {
			st.StrokeWidth = o.StrokeWidth
		}
		if o.Radius != 0 {
			st.Radius = o.Radius
		}
		if o.FontSize != 0 {
			st.FontSize = o.FontSize
		}
		if o.FontFamily != "" {
			st.FontFamily = o.FontFamily
		}
		out[c] = st
	}
	return out
}

// FontSizes returns the font size of every text class, for [fonts.New].
func (s Sheet) FontSizes() map[chart.Class]float64 {
	sizes := make(map[chart.Class]float64)
	for c, st := range s {
		if c.IsText() && st.FontSize > 0 {
			sizes[c] = st.FontSize
		}
	}
	return sizes
}

// CSS renders the sheet as SVG stylesheet rules, one per class in drawing
// order. When embedFont is set the Go Regular font is inlined as a data URL
// so viewers render text with the metrics it was measured with.
func (s Sheet) CSS(embedFont bool) string {
	var b strings.Builder
	if embedFont {
		fmt.Fprintf(&b, "@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	for _, c := range chart.Classes {
		st, ok := s[c]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, ".%s { %s }\n", c, st.declarations(c))
	}
	return b.String()
}

func (st Style) declarations(c chart.Class) string {
	var d []string
	if st.Fill != "" {
		d = append(d, "fill: "+st.Fill)
	} else {
		d = append(d, "fill: none")
	}
	if st.Stroke != "" {
		d = append(d, "stroke: "+st.Stroke)
		if st.StrokeWidth > 0 {
			d = append(d, fmt.Sprintf("stroke-width: %gpx", st.StrokeWidth))
		}
	}
	if c.IsText() {
		if st.FontSize > 0 {
			d = append(d, fmt.Sprintf("font-size: %gpx", st.FontSize))
		}
		if st.FontFamily != "" {
			d = append(d, "font-family: "+st.FontFamily)
		}
	}
	return strings.Join(d, "; ") + ";"
}
