// Package scene provides a retained [chart.Surface].
//
// A Scene records the primitives produced by the layout engine in drawing
// order. Sinks read it back to produce SVG, PNG or PDF output, and the
// engine patches bar rectangles in place on every Update.
package scene

import (
	"sync"

	"github.com/matzehuels/barchart/pkg/chart"
)

// Kind identifies the shape of a primitive.
type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Primitive is one recorded element. Only the field matching Kind is set.
type Primitive struct {
	Kind  Kind
	Class chart.Class
	Rect  chart.Rect
	Line  chart.Line
	Text  chart.Text
}

// Scene is safe for concurrent use; sinks may read while the owner updates.
type Scene struct {
	mu            sync.RWMutex
	width, height float64
	prims         []Primitive
}

var _ chart.Surface = (*Scene)(nil)

// New returns an empty scene.
func New() *Scene { return &Scene{} }

// Reset implements [chart.Surface].
func (s *Scene) Reset(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.prims = s.prims[:0]
}

// AddRect implements [chart.Surface].
func (s *Scene) AddRect(class chart.Class, r chart.Rect) chart.Handle {
	return s.add(Primitive{Kind: KindRect, Class: class, Rect: r})
}

// AddLine implements [chart.Surface].
func (s *Scene) AddLine(class chart.Class, l chart.Line) chart.Handle {
	return s.add(Primitive{Kind: KindLine, Class: class, Line: l})
}

// AddText implements [chart.Surface].
func (s *Scene) AddText(class chart.Class, t chart.Text) chart.Handle {
	return s.add(Primitive{Kind: KindText, Class: class, Text: t})
}

// SetRect implements [chart.Surface]. Handles that are out of range or do
// not refer to a rectangle are ignored.
func (s *Scene) SetRect(h chart.Handle, r chart.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := int(h)
	if i < 0 || i >= len(s.prims) || s.prims[i].Kind != KindRect {
		return
	}
	s.prims[i].Rect = r
}

func (s *Scene) add(p Primitive) chart.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prims = append(s.prims, p)
	return chart.Handle(len(s.prims) - 1)
}

// Size returns the viewport set by the last Reset.
func (s *Scene) Size() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Primitives returns a copy of every primitive in drawing order.
func (s *Scene) Primitives() []Primitive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Primitive(nil), s.prims...)
}

// Len returns the number of primitives.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prims)
}
