package scene

import (
	"testing"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/fonts"
)

func TestSceneRecordsInOrder(t *testing.T) {
	s := New()
	s.Reset(100, 50)
	bg := s.AddRect(chart.ClassBackground, chart.Rect{Width: 100, Height: 50})
	ln := s.AddLine(chart.ClassHorizontalLine, chart.Line{X1: 0, Y1: 10, X2: 100, Y2: 10})
	tx := s.AddText(chart.ClassTitle, chart.Text{Content: "hi", X: 5, Y: 20})

	if bg != 0 || ln != 1 || tx != 2 {
		t.Errorf("handles = %d, %d, %d, want 0, 1, 2", bg, ln, tx)
	}
	if w, h := s.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %v, %v, want 100, 50", w, h)
	}

	prims := s.Primitives()
	wantKinds := []Kind{KindRect, KindLine, KindText}
	for i, k := range wantKinds {
		if prims[i].Kind != k {
			t.Errorf("prims[%d].Kind = %v, want %v", i, prims[i].Kind, k)
		}
	}
	if prims[2].Text.Content != "hi" {
		t.Errorf("text content = %q, want %q", prims[2].Text.Content, "hi")
	}
}

func TestSceneSetRect(t *testing.T) {
	s := New()
	s.Reset(10, 10)
	h := s.AddRect(chart.ClassBar, chart.Rect{X: 1, Width: 2})
	txt := s.AddText(chart.ClassTitle, chart.Text{Content: "t"})

	s.SetRect(h, chart.Rect{X: 1, Y: 3, Width: 2, Height: 4})
	if got := s.Primitives()[h].Rect; got.Height != 4 || got.Y != 3 {
		t.Errorf("rect after SetRect = %+v", got)
	}

	// Invalid handles are ignored.
	s.SetRect(txt, chart.Rect{Width: 99})
	s.SetRect(chart.Handle(42), chart.Rect{Width: 99})
	s.SetRect(chart.Handle(-1), chart.Rect{Width: 99})
	if got := s.Primitives()[txt]; got.Kind != KindText || got.Rect.Width != 0 {
		t.Errorf("SetRect modified a text primitive: %+v", got)
	}
}

func TestSceneReset(t *testing.T) {
	s := New()
	s.Reset(10, 10)
	s.AddRect(chart.ClassBar, chart.Rect{})
	s.Reset(20, 30)
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
}

func TestSceneWithEngine(t *testing.T) {
	s := New()
	e := chart.New(fonts.Approximate{}, chart.WithSurface(s))

	cfg := chart.DefaultConfig()
	cfg.Size = 3
	cfg.Title = "Scene"
	cfg.YLabels = []float64{0, 10}
	cfg.Values = []float64{2, 4, 6}
	l, err := e.Plot(cfg)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}

	var bars []chart.Rect
	for _, p := range s.Primitives() {
		if p.Class == chart.ClassBar {
			bars = append(bars, p.Rect)
		}
	}
	if len(bars) != 3 {
		t.Fatalf("scene has %d bars, want 3", len(bars))
	}
	for i, b := range bars {
		if b != l.Bars[i].Rect() {
			t.Errorf("bar %d = %+v, want %+v", i, b, l.Bars[i].Rect())
		}
	}

	n := s.Len()
	if err := e.Update([]float64{10, 0, 5}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if s.Len() != n {
		t.Errorf("Update changed primitive count: %d -> %d", n, s.Len())
	}
}
