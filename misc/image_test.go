package misc

import (
	"image/color"
	"testing"
)

func TestLerpFloat64(t *testing.T) {
	tests := []struct {
		name     string
		v1       float64
		v2       float64
		fraction float64
		expected float64
	}{
		{"Start", 2, 10, 0, 2},
		{"End", 2, 10, 1, 10},
		{"Midpoint", 2, 10, 0.5, 6},
		{"Descending", 10, 2, 0.25, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LerpFloat64(tt.v1, tt.v2, tt.fraction); got != tt.expected {
				t.Errorf("Expected %g, got %g", tt.expected, got)
			}
		})
	}
}

func TestLerpUint8(t *testing.T) {
	if got := LerpUint8(0, 255, 0.5); got != 127 {
		t.Errorf("Expected 127, got %d", got)
	}
	if got := LerpUint8(100, 100, 0.75); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
}

func TestLinearInterpolationRGB(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	if got := LinearInterpolationRGB(black, white, 0); got != black {
		t.Errorf("Expected %v, got %v", black, got)
	}

	mid := LinearInterpolationRGB(black, white, 0.5)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Errorf("Expected an even gray, got %v", mid)
	}
	if mid.A != 255 {
		t.Errorf("Expected full opacity, got %d", mid.A)
	}

	// Alpha of the inputs is ignored, the blend is always opaque
	transparent := color.RGBA{R: 40}
	if got := LinearInterpolationRGB(transparent, transparent, 0.5); got.A != 255 {
		t.Errorf("Expected full opacity, got %d", got.A)
	}
}
