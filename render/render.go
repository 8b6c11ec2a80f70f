// Package render turns a view snapshot into a pixel buffer. Rows are
// independent, so they are spread over a fixed pool of goroutines that share
// nothing but the read-only orbit and palette.
package render

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"deepbrot/mandelbrot"

	"github.com/BrugadaSyndrome/bslogger"
)

type Renderer struct {
	logger      bslogger.Logger
	workerCount int
}

func NewRenderer(workerCount int) Renderer {
	if workerCount < 1 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	return Renderer{
		logger:      bslogger.NewLogger("Renderer", bslogger.Normal, nil),
		workerCount: workerCount,
	}
}

// Frame renders a full viewport against the given orbit and palette. It
// returns the buffer and whether it completed; closing cancel makes workers
// stop at the next row boundary, and the partial buffer is reported as not
// completed so the caller discards it. A zero-area viewport yields an empty
// buffer.
func (r Renderer) Frame(orbit mandelbrot.Orbit, palette mandelbrot.Palette, radius float64, width int, height int, cancel <-chan struct{}) (*image.RGBA, bool) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img, true
	}

	startTime := time.Now()

	rows := make(chan int, height)
	for row := 0; row < height; row++ {
		rows <- row
	}
	close(rows)

	var canceled atomic.Bool
	var wait sync.WaitGroup
	for w := 0; w < r.workerCount; w++ {
		wait.Add(1)
		go func() {
			defer wait.Done()
			for row := range rows {
				select {
				case <-cancel:
					canceled.Store(true)
					return
				default:
				}
				renderRow(img, orbit, palette, radius, width, height, row)
			}
		}()
	}
	wait.Wait()

	if canceled.Load() {
		r.logger.Debugf("Canceled %dx%d frame after %s", width, height, time.Since(startTime))
		return img, false
	}
	r.logger.Debugf("Rendered %dx%d frame in %s", width, height, time.Since(startTime))
	return img, true
}

func renderRow(img *image.RGBA, orbit mandelbrot.Orbit, palette mandelbrot.Palette, radius float64, width int, height int, row int) {
	for column := 0; column < width; column++ {
		delta0 := mandelbrot.PixelOffset(column, row, width, height, radius)
		iterations, magnitudeSq := orbit.Iterate(delta0)
		img.SetRGBA(column, row, palette.Color(iterations, magnitudeSq, len(orbit)))
	}
}
