package mandelbrot

import (
	"image/color"
	"testing"
)

func TestNewPaletteLength(t *testing.T) {
	tests := []struct {
		name    string
		anchors []color.RGBA
	}{
		{"Two anchors", []color.RGBA{{R: 0, A: 255}, {R: 255, A: 255}}},
		{"Three anchors", []color.RGBA{{A: 255}, {G: 255, A: 255}, {B: 255, A: 255}}},
		{"Default gradient", DefaultAnchors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette := NewPalette(tt.anchors)
			expected := len(tt.anchors) * StepsPerAnchor
			if len(palette) != expected {
				t.Errorf("Expected palette length %d, got %d", expected, len(palette))
			}
		})
	}
}

func TestNewPaletteSegmentStartsAtAnchor(t *testing.T) {
	palette := NewPalette(DefaultAnchors)
	for i, anchor := range DefaultAnchors {
		got := palette[i*StepsPerAnchor]
		if got != anchor {
			t.Errorf("Expected anchor %v at index %d, got %v", anchor, i*StepsPerAnchor, got)
		}
	}
}

func TestPaletteAtWraps(t *testing.T) {
	palette := NewPalette(DefaultAnchors)

	tests := []struct {
		name  string
		index int
		same  int
	}{
		{"Full cycle", len(palette), 0},
		{"Beyond full cycle", len(palette) + 7, 7},
		{"Negative", -1, len(palette) - 1},
		{"Negative cycle", -len(palette), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if palette.At(tt.index) != palette.At(tt.same) {
				t.Errorf("Expected index %d to wrap to %d", tt.index, tt.same)
			}
		})
	}
}

func TestPaletteColorInSet(t *testing.T) {
	palette := NewPalette(DefaultAnchors)
	black := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	// Reaching the orbit length means the pixel never escaped
	if got := palette.Color(1000, 0.5, 1000); got != black {
		t.Errorf("Expected in-set pixel to be black, got %v", got)
	}
}

func TestPaletteColorSmoothIndex(t *testing.T) {
	palette := NewPalette(DefaultAnchors)

	// At the bailout magnitude log2(log2(256)) is exactly 3, so the smooth
	// index lands on (iterations-3)*10
	tests := []struct {
		name        string
		iterations  int
		expectIndex int
	}{
		{"Ten iterations", 10, 70},
		{"Eleven iterations", 11, 80},
		{"Fifty iterations", 50, 470},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := palette.Color(tt.iterations, 256, 1000)
			expected := palette.At(tt.expectIndex)
			if got != expected {
				t.Errorf("Expected color %v at smooth index %d, got %v", expected, tt.expectIndex, got)
			}
		})
	}
}

func TestPaletteColorContinuity(t *testing.T) {
	palette := NewPalette(DefaultAnchors)

	// Adjacent iteration counts with the same escape magnitude must land a
	// fixed, small index distance apart, never a discontinuous jump
	for iterations := 1; iterations < 100; iterations++ {
		a := palette.Color(iterations, 256, 1000)
		b := palette.At((iterations-3)*10 + 10)
		next := palette.Color(iterations+1, 256, 1000)
		if next != b {
			t.Errorf("Expected iteration %d to advance exactly %d palette steps, got %v then %v", iterations, 10, a, next)
		}
	}
}

func TestPaletteColorDomainGuard(t *testing.T) {
	palette := NewPalette(DefaultAnchors)

	tests := []struct {
		name        string
		magnitudeSq float64
	}{
		{"Zero", 0},
		{"Below one", 0.5},
		{"Exactly one", 1},
		{"Clamp point", 2},
	}

	// Everything at or below the clamp point behaves as the clamp point:
	// nu degenerates to the raw iteration count, never to NaN
	expected := palette.Color(7, 2, 1000)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := palette.Color(7, tt.magnitudeSq, 1000)
			if got != expected {
				t.Errorf("Expected guarded color %v for magnitudeSq %g, got %v", expected, tt.magnitudeSq, got)
			}
		})
	}
}
