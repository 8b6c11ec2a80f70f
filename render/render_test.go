package render

import (
	"image/color"
	"math/big"
	"testing"

	"deepbrot/mandelbrot"
)

func originOrbit(t *testing.T, depth int) mandelbrot.Orbit {
	t.Helper()
	zero := new(big.Float).SetPrec(mandelbrot.CenterPrecision)
	return mandelbrot.NewOrbit(zero, zero, depth)
}

func TestFrameZeroArea(t *testing.T) {
	renderer := NewRenderer(2)
	orbit := originOrbit(t, 50)
	palette := mandelbrot.NewPalette(mandelbrot.DefaultAnchors)

	img, completed := renderer.Frame(orbit, palette, 2, 0, 10, nil)
	if !completed {
		t.Errorf("Expected an empty frame to complete")
	}
	if img.Bounds().Dx() != 0 || img.Bounds().Dy() != 10 {
		t.Errorf("Expected 0x10 bounds, got %v", img.Bounds())
	}
}

func TestFrameCenterInSet(t *testing.T) {
	renderer := NewRenderer(4)
	orbit := originOrbit(t, 200)
	palette := mandelbrot.NewPalette(mandelbrot.DefaultAnchors)

	img, completed := renderer.Frame(orbit, palette, 2, 16, 16, nil)
	if !completed {
		t.Fatalf("Expected the frame to complete")
	}

	// The pixel at (8, 8) maps to the origin, which never escapes
	if got := img.RGBAAt(8, 8); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected the center pixel black, got %v", got)
	}
	// The corner maps to -2+2i, well outside the set
	if got := img.RGBAAt(0, 0); got == (color.RGBA{A: 255}) {
		t.Errorf("Expected the corner pixel colored, got black")
	}
}

func TestFrameResizeKeepsPixelValues(t *testing.T) {
	renderer := NewRenderer(1)
	orbit := originOrbit(t, 100)
	palette := mandelbrot.NewPalette(mandelbrot.DefaultAnchors)

	small, _ := renderer.Frame(orbit, palette, 2, 8, 8, nil)
	large, _ := renderer.Frame(orbit, palette, 2, 16, 16, nil)

	// Doubling the viewport halves the pixel pitch, so (i, j) in the small
	// frame and (2i, 2j) in the large frame sample the same plane point
	for row := 0; row < 8; row++ {
		for column := 0; column < 8; column++ {
			if small.RGBAAt(column, row) != large.RGBAAt(2*column, 2*row) {
				t.Fatalf("Expected pixel (%d, %d) to match (%d, %d) in the doubled frame",
					column, row, 2*column, 2*row)
			}
		}
	}
}

func TestFrameCanceled(t *testing.T) {
	renderer := NewRenderer(2)
	orbit := originOrbit(t, 50)
	palette := mandelbrot.NewPalette(mandelbrot.DefaultAnchors)

	cancel := make(chan struct{})
	close(cancel)

	_, completed := renderer.Frame(orbit, palette, 2, 32, 32, cancel)
	if completed {
		t.Errorf("Expected a canceled frame to report not completed")
	}
}

func TestNewRendererDefaultsWorkerCount(t *testing.T) {
	renderer := NewRenderer(0)
	if renderer.workerCount < 1 {
		t.Errorf("Expected at least one worker, got %d", renderer.workerCount)
	}
}
