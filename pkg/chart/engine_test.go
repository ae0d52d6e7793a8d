package chart

import (
	"math"
	"testing"

	errs "github.com/matzehuels/barchart/pkg/errors"
)

type recordedRect struct {
	class Class
	rect  Rect
}

type recordedText struct {
	class Class
	text  Text
}

// recorder is a Surface that keeps every primitive it receives.
type recorder struct {
	width, height float64
	resets        int
	setRects      int
	rects         []recordedRect
	lines         []Line
	texts         []recordedText
}

func (r *recorder) Reset(w, h float64) {
	r.resets++
	r.width, r.height = w, h
	r.rects, r.lines, r.texts = nil, nil, nil
}

func (r *recorder) AddRect(c Class, rect Rect) Handle {
	r.rects = append(r.rects, recordedRect{c, rect})
	return Handle(len(r.rects) - 1)
}

func (r *recorder) AddLine(_ Class, l Line) Handle {
	r.lines = append(r.lines, l)
	return Handle(len(r.lines) - 1)
}

func (r *recorder) AddText(c Class, t Text) Handle {
	r.texts = append(r.texts, recordedText{c, t})
	return Handle(len(r.texts) - 1)
}

func (r *recorder) SetRect(h Handle, rect Rect) {
	r.setRects++
	r.rects[h].rect = rect
}

func (r *recorder) barRects() []Rect {
	var out []Rect
	for _, rr := range r.rects {
		if rr.class == ClassBar {
			out = append(out, rr.rect)
		}
	}
	return out
}

func (r *recorder) textsOf(c Class) []Text {
	var out []Text
	for _, rt := range r.texts {
		if rt.class == c {
			out = append(out, rt.text)
		}
	}
	return out
}

func TestPlotThreeBars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 3
	cfg.Width, cfg.Height = 300, 200
	cfg.MaxValue = Float(3)
	cfg.Values = []float64{1, 2, 3}

	rec := &recorder{}
	l, err := New(fixedMeasurer, WithSurface(rec)).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}

	if want := (ContentBox{X: 10, Y: 10, Width: 280, Height: 180}); l.Content != want {
		t.Errorf("Content = %+v, want %+v", l.Content, want)
	}
	if !approx(l.BarWidth, 224.0/3) {
		t.Errorf("BarWidth = %v, want %v", l.BarWidth, 224.0/3)
	}
	if !approx(l.GapWidth, 28) {
		t.Errorf("GapWidth = %v, want 28", l.GapWidth)
	}

	wantHeights := []float64{60, 120, 180}
	for i, b := range l.Bars {
		if !approx(b.Height, wantHeights[i]) {
			t.Errorf("Bars[%d].Height = %v, want %v", i, b.Height, wantHeights[i])
		}
		if !approx(b.Y+b.Height, 190) {
			t.Errorf("Bars[%d] bottom = %v, want 190", i, b.Y+b.Height)
		}
		if b.Value != cfg.Values[i] {
			t.Errorf("Bars[%d].Value = %v, want %v", i, b.Value, cfg.Values[i])
		}
	}

	bars := rec.barRects()
	if len(bars) != 3 {
		t.Fatalf("surface has %d bars, want 3", len(bars))
	}
	for i, r := range bars {
		if r != l.Bars[i].Rect() {
			t.Errorf("surface bar %d = %+v, want %+v", i, r, l.Bars[i].Rect())
		}
	}
}

func TestPlotPlacesEveryElement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 2
	cfg.Title = "Sales"
	cfg.TitleGap = 5
	cfg.XLegend = "Month"
	cfg.XLegendGap = 4
	cfg.YLegend = "Units"
	cfg.YLegendGap = 6
	cfg.XLabels = []string{"a", "b"}
	cfg.XLabelsGap = 3
	cfg.YLabels = []float64{0, 100}
	cfg.YLabelsGap = 2

	l, err := New(fixedMeasurer).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}

	if want := (ContentBox{X: 58, Y: 31, Width: 532, Height: 320}); l.Content != want {
		t.Fatalf("Content = %+v, want %+v", l.Content, want)
	}

	tests := []struct {
		name     string
		got      Text
		x, y     float64
		rotation float64
	}{
		{"title", l.Title.Text, 280, 26, 0},
		{"x legend", l.XLegend.Text, 304, 390, 0},
		{"y legend", l.YLegend.Text, 26, 211, -90},
		{"first x label", l.XLabels[0].Text, 160.4, 370, 0},
		{"second x label", l.XLabels[1].Text, 479.6, 370, 0},
		{"y label 0", l.YLabels[0].Text, 48, 351 + 16.0/3, 0},
		{"y label 100", l.YLabels[1].Text, 32, 31 + 16.0/3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got.X, tt.x) || !approx(tt.got.Y, tt.y) {
				t.Errorf("position = (%v, %v), want (%v, %v)", tt.got.X, tt.got.Y, tt.x, tt.y)
			}
			if tt.got.Rotation != tt.rotation {
				t.Errorf("rotation = %v, want %v", tt.got.Rotation, tt.rotation)
			}
		})
	}

	wantLines := []Line{{X1: 58, Y1: 351, X2: 590, Y2: 351}, {X1: 58, Y1: 31, X2: 590, Y2: 31}}
	if len(l.Lines) != len(wantLines) {
		t.Fatalf("got %d lines, want %d", len(l.Lines), len(wantLines))
	}
	for i, want := range wantLines {
		if l.Lines[i] != want {
			t.Errorf("Lines[%d] = %+v, want %+v", i, l.Lines[i], want)
		}
	}
}

func TestPlotRotatedXLabels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 1
	cfg.XLabels = []string{"hello"}
	cfg.XLabelsRotation = 90

	l, err := New(fixedMeasurer).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if !approx(l.Footprints.XLabelsHeight, 40) {
		t.Errorf("XLabelsHeight = %v, want 40", l.Footprints.XLabelsHeight)
	}
	lb := l.XLabels[0]
	if lb.Rotation != -90 {
		t.Errorf("Rotation = %v, want -90", lb.Rotation)
	}
	// The rotated box is 16 wide; the pivot shifts right by one text height.
	wantX := l.Content.X + l.BarWidth/2 - 8 + 16
	if !approx(lb.X, wantX) {
		t.Errorf("X = %v, want %v", lb.X, wantX)
	}
	if !approx(lb.Y, l.Content.Bottom()+40) {
		t.Errorf("Y = %v, want %v", lb.Y, l.Content.Bottom()+40)
	}
}

func TestPlotSingleBar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 1
	cfg.Values = []float64{4}

	l, err := New(fixedMeasurer).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if l.GapWidth != 0 {
		t.Errorf("GapWidth = %v, want 0", l.GapWidth)
	}
	if !approx(l.BarWidth, l.Content.Width*0.8) {
		t.Errorf("BarWidth = %v, want %v", l.BarWidth, l.Content.Width*0.8)
	}
	if !approx(l.Bars[0].Height, l.Content.Height) {
		t.Errorf("Height = %v, want full content height %v", l.Bars[0].Height, l.Content.Height)
	}
}

func TestPlotSkipsEmptyLabels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 3
	cfg.XLabels = []string{"a", "", "c", "d"}
	cfg.YLabels = []float64{0, 5, 10}
	cfg.YLabelsMapping = []string{"", "mid", "top"}
	cfg.XLabelsRotation = 0

	rec := &recorder{}
	l, err := New(fixedMeasurer, WithSurface(rec)).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	xs := rec.textsOf(ClassXLabel)
	if len(xs) != 2 {
		t.Fatalf("drew %d x labels, want 2", len(xs))
	}
	// The skipped label keeps its slot: "c" stays centred under bar 2.
	bar := l.Bars[2]
	if want := bar.X + bar.Width/2 - fixedMeasurer.Measure("c", ClassXLabel).Width/2; xs[1].Content != "c" || xs[1].X != want {
		t.Errorf("x label %q at x=%v, want \"c\" at %v", xs[1].Content, xs[1].X, want)
	}
	if got := len(rec.textsOf(ClassYLabel)); got != 2 {
		t.Errorf("drew %d y labels, want 2", got)
	}
	if got := len(l.Lines); got != 3 {
		t.Errorf("got %d lines, want one per y label (3)", got)
	}
}

func TestPlotWithoutHorizontalLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YLabels = []float64{0, 10}
	cfg.ShowHorizontalLines = false

	rec := &recorder{}
	if _, err := New(fixedMeasurer, WithSurface(rec)).Plot(cfg); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if len(rec.lines) != 0 {
		t.Errorf("drew %d lines, want 0", len(rec.lines))
	}
}

func TestYLabelsAreClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxValue = Float(100)
	cfg.YLabels = []float64{-50, 0, 100, 150}

	l, err := New(fixedMeasurer).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	bottom, top := l.Content.Bottom(), l.Content.Y
	wantLineY := []float64{bottom, bottom, top, top}
	for i, want := range wantLineY {
		if !approx(l.Lines[i].Y1, want) {
			t.Errorf("Lines[%d].Y1 = %v, want %v", i, l.Lines[i].Y1, want)
		}
	}
}

func TestBarsAreNotClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 2
	cfg.MaxValue = Float(10)
	cfg.Values = []float64{-5, 20}

	l, err := New(fixedMeasurer).Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	h := l.Content.Height
	if !approx(l.Bars[0].Height, -h/2) {
		t.Errorf("Bars[0].Height = %v, want %v", l.Bars[0].Height, -h/2)
	}
	if !approx(l.Bars[1].Height, 2*h) {
		t.Errorf("Bars[1].Height = %v, want %v", l.Bars[1].Height, 2*h)
	}
	for i, b := range l.Bars {
		if !approx(b.Y+b.Height, l.Content.Bottom()) {
			t.Errorf("Bars[%d] does not rest on the baseline", i)
		}
	}
}

func TestUpdateDerivesMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 2

	e := New(fixedMeasurer)
	l, err := e.Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if l.MaxValue != nil {
		t.Errorf("MaxValue = %v, want nil", *l.MaxValue)
	}
	for i, b := range l.Bars {
		if b.Height != 0 {
			t.Errorf("Bars[%d].Height before Update = %v, want 0", i, b.Height)
		}
	}

	if err := e.Update([]float64{5, 10}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	h := l.Content.Height
	if !approx(l.Bars[0].Height, h/2) || !approx(l.Bars[1].Height, h) {
		t.Errorf("heights = (%v, %v), want (%v, %v)", l.Bars[0].Height, l.Bars[1].Height, h/2, h)
	}

	// A later call rescales against its own maximum.
	if err := e.Update([]float64{20, 10}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !approx(l.Bars[0].Height, h) || !approx(l.Bars[1].Height, h/2) {
		t.Errorf("heights = (%v, %v), want (%v, %v)", l.Bars[0].Height, l.Bars[1].Height, h, h/2)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 3
	cfg.YLabels = []float64{0, 50, 100}

	e := New(fixedMeasurer)
	if _, err := e.Plot(cfg); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	values := []float64{10, 70, 100}
	if err := e.Update(values); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	first := append([]Bar(nil), e.Layout().Bars...)
	if err := e.Update(values); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	for i, b := range e.Layout().Bars {
		if b != first[i] {
			t.Errorf("Bars[%d] = %+v after second Update, want %+v", i, b, first[i])
		}
	}
}

func TestUpdateTouchesOnlyBars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.Title = "Title"
	cfg.XLabels = []string{"a", "b", "c", "d"}
	cfg.YLabels = []float64{0, 10}

	rec := &recorder{}
	e := New(fixedMeasurer, WithSurface(rec))
	l, err := e.Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	texts := append([]recordedText(nil), rec.texts...)
	lines := append([]Line(nil), rec.lines...)
	before := *l
	beforeLabels := append([]Label(nil), l.XLabels...)

	if err := e.Update([]float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if rec.resets != 1 {
		t.Errorf("surface reset %d times, want 1", rec.resets)
	}
	if rec.setRects != 4 {
		t.Errorf("SetRect called %d times, want 4", rec.setRects)
	}
	if len(rec.texts) != len(texts) || len(rec.lines) != len(lines) {
		t.Fatalf("Update added primitives")
	}
	for i := range texts {
		if rec.texts[i] != texts[i] {
			t.Errorf("text %d changed: %+v -> %+v", i, texts[i], rec.texts[i])
		}
	}
	if l.Content != before.Content || l.BarWidth != before.BarWidth || l.GapWidth != before.GapWidth {
		t.Errorf("Update changed resolved geometry")
	}
	for i := range beforeLabels {
		if l.XLabels[i] != beforeLabels[i] {
			t.Errorf("XLabels[%d] changed", i)
		}
	}
	for i, b := range l.Bars {
		if !approx(b.X, BarX(l.Content, l.BarWidth, l.GapWidth, i)) || b.Width != l.BarWidth {
			t.Errorf("Bars[%d] moved horizontally: %+v", i, b)
		}
	}
}

func TestUpdateErrors(t *testing.T) {
	tests := []struct {
		name   string
		plot   bool
		cfg    func() Config
		values []float64
		code   errs.Code
	}{
		{
			name:   "before plot",
			cfg:    DefaultConfig,
			values: make([]float64, DefaultSize),
			code:   errs.ErrCodeNotPlotted,
		},
		{
			name:   "wrong length",
			plot:   true,
			cfg:    DefaultConfig,
			values: []float64{1, 2, 3},
			code:   errs.ErrCodeInvalidValues,
		},
		{
			name: "infinite value",
			plot: true,
			cfg: func() Config {
				c := DefaultConfig()
				c.Size = 2
				return c
			},
			values: []float64{1, math.Inf(1)},
			code:   errs.ErrCodeInvalidValues,
		},
		{
			name: "derived max equals min",
			plot: true,
			cfg: func() Config {
				c := DefaultConfig()
				c.Size = 2
				return c
			},
			values: []float64{0, 0},
			code:   errs.ErrCodeInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(fixedMeasurer)
			if tt.plot {
				if _, err := e.Plot(tt.cfg()); err != nil {
					t.Fatalf("Plot() error: %v", err)
				}
			}
			err := e.Update(tt.values)
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("Update() code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestUpdateErrorLeavesBars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 2
	cfg.Values = []float64{1, 2}

	e := New(fixedMeasurer)
	l, err := e.Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	before := append([]Bar(nil), l.Bars...)
	if err := e.Update([]float64{0, 0}); err == nil {
		t.Fatal("Update() = nil, want error")
	}
	for i := range before {
		if l.Bars[i] != before[i] {
			t.Errorf("Bars[%d] changed by failed Update", i)
		}
	}
}

func TestPlotErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errs.Code
	}{
		{"invalid size", func(c *Config) { c.Size = 0 }, errs.ErrCodeInvalidSize},
		{"margins too wide", func(c *Config) { c.Padding = 350 }, errs.ErrCodeContentOverflow},
		{"margins too tall", func(c *Config) {
			c.Title = "x"
			c.TitleGap = 400
		}, errs.ErrCodeContentOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			_, err := New(fixedMeasurer).Plot(c)
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("Plot() code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestPlotFailureKeepsPreviousLayout(t *testing.T) {
	rec := &recorder{}
	e := New(fixedMeasurer, WithSurface(rec))

	good := DefaultConfig()
	good.Size = 2
	good.Values = []float64{1, 2}
	l, err := e.Plot(good)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}

	bad := DefaultConfig()
	bad.Padding = 1000
	if _, err := e.Plot(bad); err == nil {
		t.Fatal("Plot() = nil, want error")
	}
	if e.Layout() != l {
		t.Error("failed Plot replaced the layout")
	}
	if rec.resets != 1 {
		t.Errorf("surface reset %d times, want 1", rec.resets)
	}
	if err := e.Update([]float64{3, 4}); err != nil {
		t.Errorf("Update() after failed Plot error: %v", err)
	}
}

func TestPlotReplacesPreviousPlot(t *testing.T) {
	rec := &recorder{}
	e := New(fixedMeasurer, WithSurface(rec))

	first := DefaultConfig()
	first.Size = 5
	if _, err := e.Plot(first); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	second := DefaultConfig()
	second.Size = 2
	if _, err := e.Plot(second); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}

	if got := len(rec.barRects()); got != 2 {
		t.Errorf("surface has %d bars, want 2", got)
	}
	if got := rec.rects[0].class; got != ClassBackground {
		t.Errorf("first rect class = %q, want %q", got, ClassBackground)
	}
	if err := e.Update([]float64{1, 2}); err != nil {
		t.Errorf("Update() error: %v", err)
	}
}

func TestPlotCopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 2
	cfg.YLabels = []float64{0, 10}
	cfg.MaxValue = Float(10)

	e := New(fixedMeasurer)
	if _, err := e.Plot(cfg); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	cfg.YLabels[1] = 1000
	*cfg.MaxValue = 1000

	if err := e.Update([]float64{5, 10}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	l := e.Layout()
	if !approx(l.Bars[1].Height, l.Content.Height) {
		t.Errorf("caller mutation leaked into the engine: height = %v", l.Bars[1].Height)
	}
}
