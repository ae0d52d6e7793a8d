package sink

import (
	"bytes"
	"fmt"
	"strconv"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/render/scene"
	"github.com/matzehuels/barchart/pkg/render/styles"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	sheet     styles.Sheet
	embedFont bool
	title     string
}

// WithStyles replaces the default stylesheet.
func WithStyles(s styles.Sheet) SVGOption { return func(r *svgRenderer) { r.sheet = s } }

// WithEmbeddedFont inlines the measuring font so viewers without it installed
// still render text at the measured size.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithTitle sets the document <title>, shown by browsers as a tooltip.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the scene as a standalone SVG document. The viewBox
// matches the scene size so the output scales without distortion.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{sheet: styles.Default()}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := sc.Size()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(w, h, 0, 0, w, h)
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Style("text/css", r.sheet.CSS(r.embedFont))

	for _, p := range sc.Primitives() {
		class := fmt.Sprintf(`class="%s"`, p.Class)
		switch p.Kind {
		case scene.KindRect:
			rect := normalize(p.Rect)
			if radius := r.sheet.Get(p.Class).Radius; radius > 0 {
				canvas.Roundrect(rect.X, rect.Y, rect.Width, rect.Height, radius, radius, class)
			} else {
				canvas.Rect(rect.X, rect.Y, rect.Width, rect.Height, class)
			}
		case scene.KindLine:
			l := p.Line
			canvas.Line(l.X1, l.Y1, l.X2, l.Y2, class)
		case scene.KindText:
			t := p.Text
			if t.Rotation == 0 {
				canvas.Text(t.X, t.Y, t.Content, class)
				continue
			}
			canvas.Text(0, 0, t.Content, class+" "+transform(t))
		}
	}
	canvas.End()
	return buf.Bytes()
}

// transform places rotated text: move the origin to the anchor, then rotate.
func transform(t chart.Text) string {
	return fmt.Sprintf(`transform="translate(%s %s) rotate(%s)"`, num(t.X), num(t.Y), num(t.Rotation))
}

// normalize returns r with a non-negative width and height covering the same
// area. Bars below MinValue have a negative height and hang below the
// baseline.
func normalize(r chart.Rect) chart.Rect {
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	return r
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
