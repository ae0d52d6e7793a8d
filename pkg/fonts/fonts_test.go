package fonts

import (
	"encoding/base64"
	"math"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/barchart/pkg/chart"
)

func TestMeasure(t *testing.T) {
	m := Default()

	empty := m.Measure("", chart.ClassTitle)
	if empty != (chart.Size{}) {
		t.Errorf("Measure(\"\") = %v, want zero", empty)
	}

	short := m.Measure("ab", chart.ClassXLabel)
	long := m.Measure("abcdef", chart.ClassXLabel)
	if short.Width <= 0 || short.Height <= 0 {
		t.Fatalf("Measure(\"ab\") = %v, want positive size", short)
	}
	if long.Width <= short.Width {
		t.Errorf("longer text should be wider: %v <= %v", long.Width, short.Width)
	}
	if long.Height != short.Height {
		t.Errorf("line height should not depend on content: %v != %v", long.Height, short.Height)
	}
	// Go Regular's ascent plus descent is a little above its em size.
	if short.Height < DefaultSize || short.Height > 1.5*DefaultSize {
		t.Errorf("Height = %v, want between %v and %v", short.Height, DefaultSize, 1.5*DefaultSize)
	}
}

func TestMeasureIsDeterministic(t *testing.T) {
	m := Default()
	first := m.Measure("Deterministic", chart.ClassYLabel)
	for i := 0; i < 10; i++ {
		if got := m.Measure("Deterministic", chart.ClassYLabel); got != first {
			t.Fatalf("Measure() = %v, want %v", got, first)
		}
	}
}

func TestMeasurePerClassSize(t *testing.T) {
	m, err := New(goregular.TTF, map[chart.Class]float64{chart.ClassTitle: 32})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := m.Size(chart.ClassTitle); got != 32 {
		t.Errorf("Size(title) = %v, want 32", got)
	}
	if got := m.Size(chart.ClassXLabel); got != DefaultSize {
		t.Errorf("Size(x-label) = %v, want %v", got, DefaultSize)
	}

	title := m.Measure("Same", chart.ClassTitle)
	label := m.Measure("Same", chart.ClassXLabel)
	if title.Width <= label.Width || title.Height <= label.Height {
		t.Errorf("title %v should be larger than label %v", title, label)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m := Default()
	want := m.Measure("concurrent", chart.ClassBar)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := m.Measure("concurrent", chart.ClassBar); got != want {
				t.Errorf("Measure() = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestNewInvalidFont(t *testing.T) {
	if _, err := New([]byte("not a font"), nil); err == nil {
		t.Error("New() with garbage = nil error, want error")
	}
}

func TestFaceScale(t *testing.T) {
	m := Default()
	one := m.Face(chart.ClassTitle, 1).Metrics().Height
	two := m.Face(chart.ClassTitle, 2).Metrics().Height
	if two <= one {
		t.Errorf("scaled face height %v should exceed %v", two, one)
	}
}

func TestApproximate(t *testing.T) {
	tests := []struct {
		name string
		a    Approximate
		text string
		want chart.Size
	}{
		{"empty", Approximate{}, "", chart.Size{}},
		{"default size", Approximate{}, "abcd", chart.Size{Width: 0.55 * 16 * 4, Height: 1.15 * 16}},
		{"runes not bytes", Approximate{Size: 10}, "äöü", chart.Size{Width: 0.55 * 10 * 3, Height: 1.15 * 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Measure(tt.text, chart.ClassXLabel)
			if math.Abs(got.Width-tt.want.Width) > 1e-9 || math.Abs(got.Height-tt.want.Height) > 1e-9 {
				t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRegularTTFBase64(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(RegularTTFBase64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data) != len(goregular.TTF) {
		t.Errorf("decoded %d bytes, want %d", len(data), len(goregular.TTF))
	}
}

func TestWithSizes(t *testing.T) {
	base := Default()
	big := base.WithSizes(map[chart.Class]float64{chart.ClassTitle: 32})

	if got := big.Size(chart.ClassTitle); got != 32 {
		t.Errorf("Size(title) = %v, want 32", got)
	}
	if got := base.Size(chart.ClassTitle); got != DefaultSize {
		t.Errorf("base Size(title) = %v, want unchanged %v", got, DefaultSize)
	}
	if a, b := base.Measure("Title", chart.ClassTitle), big.Measure("Title", chart.ClassTitle); b.Width <= a.Width {
		t.Errorf("32px width %v should exceed 16px width %v", b.Width, a.Width)
	}
}

func TestCacheID(t *testing.T) {
	base := Default()
	big := base.WithSizes(map[chart.Class]float64{chart.ClassTitle: 32, chart.ClassXLabel: 12})
	same := base.WithSizes(map[chart.Class]float64{chart.ClassXLabel: 12, chart.ClassTitle: 32})

	if base.CacheID() == big.CacheID() {
		t.Errorf("sizes not part of CacheID: %q", big.CacheID())
	}
	if big.CacheID() != same.CacheID() {
		t.Errorf("CacheID depends on map order: %q vs %q", big.CacheID(), same.CacheID())
	}
	if got := (Approximate{}).CacheID(); got == base.CacheID() || got != (Approximate{Size: DefaultSize}).CacheID() {
		t.Errorf("Approximate CacheID = %q", got)
	}
}
