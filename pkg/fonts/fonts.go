// Package fonts measures chart text with real font metrics.
//
// The Go Regular font is compiled into the binary through
// golang.org/x/image/font/gofont, so measurement works without any font
// installed on the host. The same font is embedded into SVG output (see
// [RegularTTFBase64]) so browsers render text with the metrics it was
// measured with.
package fonts

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/barchart/pkg/chart"
)

// DefaultSize is the pixel size used for classes without an explicit size.
const DefaultSize = 16.0

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack used when the embedded font is
// not available to the viewer.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Measurer implements [chart.Measurer] with a TrueType font. It is safe for
// concurrent use.
type Measurer struct {
	font   *truetype.Font
	fontID string
	sizes  map[chart.Class]float64

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses ttf and returns a measurer that renders each class at the size
// given in sizes, or [DefaultSize] when absent.
func New(ttf []byte, sizes map[chart.Class]float64) (*Measurer, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	sum := sha256.Sum256(ttf)
	m := &Measurer{
		font:   f,
		fontID: hex.EncodeToString(sum[:8]),
		sizes:  make(map[chart.Class]float64, len(sizes)),
		faces:  make(map[float64]font.Face),
	}
	for c, s := range sizes {
		m.sizes[c] = s
	}
	return m, nil
}

var (
	dft     *Measurer
	dftOnce sync.Once
)

// Default returns a shared Go Regular measurer at [DefaultSize] for every
// class.
func Default() *Measurer {
	dftOnce.Do(func() {
		m, err := New(goregular.TTF, nil)
		if err != nil {
			panic(err)
		}
		dft = m
	})
	return dft
}

// WithSizes returns a measurer over the same parsed font with different
// per-class sizes. It shares no faces with m.
func (m *Measurer) WithSizes(sizes map[chart.Class]float64) *Measurer {
	n := &Measurer{
		font:   m.font,
		fontID: m.fontID,
		sizes:  make(map[chart.Class]float64, len(sizes)),
		faces:  make(map[float64]font.Face),
	}
	for c, s := range sizes {
		n.sizes[c] = s
	}
	return n
}

// CacheID identifies the font and per-class sizes, so layouts measured with
// different metrics never share a cache entry.
func (m *Measurer) CacheID() string {
	var b strings.Builder
	b.WriteString("ttf:" + m.fontID)
	for _, c := range slices.Sorted(maps.Keys(m.sizes)) {
		fmt.Fprintf(&b, ",%s=%g", c, m.sizes[c])
	}
	return b.String()
}

// Size returns the pixel size used for class.
func (m *Measurer) Size(class chart.Class) float64 {
	if s, ok := m.sizes[class]; ok && s > 0 {
		return s
	}
	return DefaultSize
}

// Measure returns the advance width of text and the ascent plus descent of
// the face, which is what a browser reports as the bounding box of a single
// line of text.
func (m *Measurer) Measure(text string, class chart.Class) chart.Size {
	if text == "" {
		return chart.Size{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(m.Size(class))
	metrics := face.Metrics()
	return chart.Size{
		Width:  toFloat(font.MeasureString(face, text)),
		Height: toFloat(metrics.Ascent + metrics.Descent),
	}
}

// Face returns a new face for class at its size multiplied by scale. Faces
// are not safe for concurrent use, so raster sinks get their own.
func (m *Measurer) Face(class chart.Class, scale float64) font.Face {
	if scale <= 0 {
		scale = 1
	}
	return truetype.NewFace(m.font, &truetype.Options{
		Size:    m.Size(class) * scale,
		Hinting: font.HintingNone,
	})
}

// face returns the cached measuring face for size. Callers hold m.mu.
func (m *Measurer) face(size float64) font.Face {
	f, ok := m.faces[size]
	if !ok {
		// DPI 72 makes one point one pixel.
		f = truetype.NewFace(m.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
		m.faces[size] = f
	}
	return f
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Approximate estimates text size from the rune count. It needs no font data
// and is used where exact metrics do not matter, such as terminal previews.
type Approximate struct {
	// Size is the font size in pixels; zero means DefaultSize.
	Size float64
}

// CacheID identifies the estimate by its font size.
func (a Approximate) CacheID() string {
	size := a.Size
	if size <= 0 {
		size = DefaultSize
	}
	return fmt.Sprintf("approximate:%g", size)
}

// Measure implements [chart.Measurer].
func (a Approximate) Measure(text string, _ chart.Class) chart.Size {
	if text == "" {
		return chart.Size{}
	}
	size := a.Size
	if size <= 0 {
		size = DefaultSize
	}
	return chart.Size{
		Width:  0.55 * size * float64(len([]rune(text))),
		Height: 1.15 * size,
	}
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the embedded Go Regular font as a base64 string
// for use in a CSS data URL. The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
