package chart

import (
	"testing"
)

func TestResolveContentBox(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() Config
		fp   Footprints
		want ContentBox
	}{
		{
			name: "padding only",
			cfg: func() Config {
				c := DefaultConfig()
				c.Width, c.Height = 300, 200
				return c
			},
			want: ContentBox{X: 10, Y: 10, Width: 280, Height: 180},
		},
		{
			name: "every margin",
			cfg: func() Config {
				c := DefaultConfig()
				c.TitleGap = 5
				c.XLabelsGap = 3
				c.XLegendGap = 4
				c.YLegendGap = 6
				c.YLabelsGap = 2
				return c
			},
			fp: Footprints{
				TitleHeight:   16,
				XLegendHeight: 16,
				YLegendWidth:  16,
				XLabelsHeight: 16,
				YLabelsWidth:  24,
			},
			want: ContentBox{X: 58, Y: 31, Width: 532, Height: 320},
		},
		{
			name: "no padding",
			cfg: func() Config {
				c := DefaultConfig()
				c.Padding = 0
				return c
			},
			want: ContentBox{X: 0, Y: 0, Width: 600, Height: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveContentBox(tt.cfg(), tt.fp); got != tt.want {
				t.Errorf("ResolveContentBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBarSpacing(t *testing.T) {
	tests := []struct {
		name         string
		width        float64
		gapFraction  float64
		size         int
		wantBarWidth float64
		wantGapWidth float64
	}{
		{"three bars", 280, 0.2, 3, 280 * 0.8 / 3, 280 * 0.2 / 2},
		{"single bar has no gap", 280, 0.2, 1, 280 * 0.8, 0},
		{"no gaps", 100, 0, 4, 25, 0},
		{"two bars", 532, 0.2, 2, 212.8, 106.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bw, gw := BarSpacing(tt.width, tt.gapFraction, tt.size)
			if !approx(bw, tt.wantBarWidth) {
				t.Errorf("barWidth = %v, want %v", bw, tt.wantBarWidth)
			}
			if !approx(gw, tt.wantGapWidth) {
				t.Errorf("gapWidth = %v, want %v", gw, tt.wantGapWidth)
			}
		})
	}
}

func TestBarSpacingFillsContentWidth(t *testing.T) {
	for size := 2; size <= 40; size++ {
		for _, fraction := range []float64{0, 0.1, 0.2, 0.5, 0.95} {
			width := 123.45
			bw, gw := BarSpacing(width, fraction, size)
			total := bw*float64(size) + gw*float64(size-1)
			if !approx(total, width) {
				t.Errorf("size=%d fraction=%v: bars+gaps = %v, want %v", size, fraction, total, width)
			}
		}
	}
}

func TestBarX(t *testing.T) {
	box := ContentBox{X: 10, Y: 10, Width: 280, Height: 180}
	bw, gw := BarSpacing(box.Width, 0.2, 3)

	last := BarX(box, bw, gw, 2)
	if !approx(last+bw, box.Right()) {
		t.Errorf("last bar ends at %v, want content right edge %v", last+bw, box.Right())
	}
	if first := BarX(box, bw, gw, 0); first != box.X {
		t.Errorf("first bar starts at %v, want %v", first, box.X)
	}
}
