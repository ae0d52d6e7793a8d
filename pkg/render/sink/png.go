package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/fonts"
	"github.com/matzehuels/barchart/pkg/render"
	"github.com/matzehuels/barchart/pkg/render/scene"
	"github.com/matzehuels/barchart/pkg/render/styles"
)

// FaceSource provides font faces for raster output. [fonts.Measurer]
// implements it.
type FaceSource interface {
	Face(class chart.Class, scale float64) font.Face
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	sheet   styles.Sheet
	faces   FaceSource
	scale   float64
	viaSVG  bool
	svgOpts []SVGOption
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGStyles replaces the default stylesheet.
func WithPNGStyles(s styles.Sheet) PNGOption {
	return func(r *pngRenderer) { r.sheet = s }
}

// WithFaces sets where text faces come from. The default is [fonts.Default],
// which matches the fonts used for measuring.
func WithFaces(f FaceSource) PNGOption {
	return func(r *pngRenderer) { r.faces = f }
}

// WithRSVG renders through SVG and rsvg-convert instead of drawing natively.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.viaSVG = true; r.svgOpts = opts }
}

// RenderPNG rasterizes the scene with gg. Coordinates are multiplied by the
// scale and faces are requested at the scaled size so text stays sharp.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{sheet: styles.Default(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}
	if r.viaSVG {
		return render.ToPNG(RenderSVG(sc, r.svgOpts...), r.scale)
	}
	if r.faces == nil {
		r.faces = fonts.Default()
	}

	w, h := sc.Size()
	s := r.scale
	dc := gg.NewContext(int(math.Ceil(w*s)), int(math.Ceil(h*s)))

	faces := make(map[chart.Class]font.Face)
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	for _, p := range sc.Primitives() {
		st := r.sheet.Get(p.Class)
		switch p.Kind {
		case scene.KindRect:
			rect := normalize(p.Rect)
			x, y, rw, rh := rect.X*s, rect.Y*s, rect.Width*s, rect.Height*s
			if st.Radius > 0 {
				dc.DrawRoundedRectangle(x, y, rw, rh, st.Radius*s)
			} else {
				dc.DrawRectangle(x, y, rw, rh)
			}
			paint(dc, st, s)
		case scene.KindLine:
			l := p.Line
			dc.DrawLine(l.X1*s, l.Y1*s, l.X2*s, l.Y2*s)
			paint(dc, st, s)
		case scene.KindText:
			face, ok := faces[p.Class]
			if !ok {
				face = r.faces.Face(p.Class, s)
				faces[p.Class] = face
			}
			drawText(dc, face, st, p.Text, s)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// paint fills and strokes the current path according to st.
func paint(dc *gg.Context, st styles.Style, scale float64) {
	if st.Fill != "" {
		dc.SetHexColor(st.Fill)
		if st.Stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if st.Stroke != "" {
		dc.SetHexColor(st.Stroke)
		dc.SetLineWidth(math.Max(st.StrokeWidth, 1) * scale)
		dc.Stroke()
	}
	dc.ClearPath()
}

func drawText(dc *gg.Context, face font.Face, st styles.Style, t chart.Text, scale float64) {
	if st.Fill == "" {
		return
	}
	dc.SetFontFace(face)
	dc.SetHexColor(st.Fill)
	dc.Push()
	dc.Translate(t.X*scale, t.Y*scale)
	if t.Rotation != 0 {
		dc.Rotate(gg.Radians(t.Rotation))
	}
	dc.DrawString(t.Content, 0, 0)
	dc.Pop()
}
