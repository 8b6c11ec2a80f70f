package mandelbrot

import (
	"image/color"

	"github.com/BrugadaSyndrome/bslogger"
)

// Settings describes one deep-zoom view: the high-precision center (kept as
// decimal strings so it survives JSON and RPC without losing digits), the
// viewport, the orbit depth and the palette anchors. A zero Settings becomes
// a usable default view of the whole set after Verify.
type Settings struct {
	logger bslogger.Logger

	CenterReal     string
	CenterImag     string
	Depth          int
	Height         int
	PaletteAnchors []color.RGBA
	Radius         float64
	Width          int
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.CenterReal == "" {
		s.CenterReal = "0"
	}
	if s.CenterImag == "" {
		s.CenterImag = "0"
	}
	if s.Depth <= 0 {
		s.Depth = 1000
	}
	if s.Height <= 0 {
		s.Height = 1080
	}
	if s.Radius <= 0 {
		s.Radius = 2
	}
	if s.Width <= 0 {
		s.Width = 1920
	}
	if len(s.PaletteAnchors) < 2 {
		if len(s.PaletteAnchors) == 1 {
			s.logger.Info("A gradient needs at least two anchors. Using the default gradient.")
		}
		s.PaletteAnchors = DefaultAnchors
	}

	return nil
}
