package main

import (
	"image"

	"deepbrot/mandelbrot"
	"deepbrot/render"
	"deepbrot/view"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// renderedFrame carries a finished pixel buffer back to the event loop,
// tagged with the generation it was scheduled under so stale frames can be
// recognized and dropped. The orbit rides along because radius-only actions
// reuse it for the next frame.
type renderedFrame struct {
	generation uint64
	image      *image.RGBA
	orbit      mandelbrot.Orbit
}

// Viewer is the interactive deep-zoom window. All state lives on the event
// loop goroutine; render goroutines only ever see immutable snapshots and
// report back over the frames channel.
type Viewer struct {
	actions    chan view.Action
	cancel     chan struct{}
	frame      *image.RGBA
	frameImage *ebiten.Image
	frames     chan renderedFrame
	generation uint64
	height     int
	logger     bslogger.Logger
	orbit      mandelbrot.Orbit
	palette    mandelbrot.Palette
	renderer   render.Renderer
	state      view.State
	width      int
}

func newViewer(state view.State, renderWorkers int) *Viewer {
	return &Viewer{
		actions:  make(chan view.Action, 16),
		frames:   make(chan renderedFrame, 1),
		logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		palette:  mandelbrot.NewPalette(mandelbrot.DefaultAnchors),
		renderer: render.NewRenderer(renderWorkers),
		state:    state,
	}
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Window input
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.apply(view.ZoomAt{X: x, Y: y, Width: v.width, Height: v.height})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		v.apply(view.ZoomIn{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		v.apply(view.ZoomOut{})
	}

	// Console input
	for {
		select {
		case action := <-v.actions:
			if _, ok := action.(view.Quit); ok {
				return ebiten.Termination
			}
			v.apply(action)
			continue
		default:
		}
		break
	}

	// Finished frames; anything from a superseded generation is discarded
	for {
		select {
		case frame := <-v.frames:
			if frame.generation != v.generation {
				continue
			}
			v.frame = frame.image
			v.orbit = frame.orbit
			continue
		default:
		}
		break
	}

	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.frame == nil {
		return
	}
	bounds := v.frame.Bounds()
	if v.frameImage == nil || !v.frameImage.Bounds().Eq(bounds) {
		if v.frameImage != nil {
			v.frameImage.Deallocate()
		}
		v.frameImage = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	v.frameImage.WritePixels(v.frame.Pix)
	screen.DrawImage(v.frameImage, nil)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		v.scheduleFrame(v.orbit == nil)
	}
	return outsideWidth, outsideHeight
}

// apply replaces the view state and schedules a fresh frame. The orbit is
// rebuilt only when the action moved the reference point or changed depth;
// the cached orbit is dropped right away so that a radius-only action
// arriving before the rebuilt frame lands cannot render against the old
// reference point.
func (v *Viewer) apply(action view.Action) {
	v.state = view.Apply(v.state, action)
	v.logger.Infof("%s", v.state)
	invalidates := view.InvalidatesOrbit(action)
	if invalidates {
		v.orbit = nil
	}
	v.scheduleFrame(invalidates)
}

// scheduleFrame cancels whatever frame is in flight and starts rendering the
// current state. Only the most recent state's frame is ever being computed.
func (v *Viewer) scheduleFrame(rebuildOrbit bool) {
	if v.width == 0 || v.height == 0 {
		return
	}

	if v.cancel != nil {
		close(v.cancel)
	}
	v.cancel = make(chan struct{})
	v.generation++

	generation := v.generation
	state := v.state
	orbit := v.orbit
	cancel := v.cancel
	width, height := v.width, v.height

	go func() {
		if rebuildOrbit || orbit == nil {
			orbit = mandelbrot.NewOrbit(state.CenterReal, state.CenterImag, state.Depth)
			v.logger.Debugf("Reference orbit of length %d", len(orbit))
		}
		img, completed := v.renderer.Frame(orbit, v.palette, state.Radius, width, height, cancel)
		if !completed {
			return
		}
		frame := renderedFrame{generation: generation, image: img, orbit: orbit}
		for {
			select {
			case v.frames <- frame:
				return
			default:
				// Push out a stale frame nobody has collected yet
				select {
				case <-v.frames:
				default:
				}
			}
		}
	}()
}

func runViewer() {
	logger := bslogger.NewLogger("Viewer", bslogger.Normal, nil)

	state := view.NewState()
	centerRealValue, err := view.ParseCoordinate(centerReal)
	if err != nil {
		logger.Fatalf("centerReal: %s", err)
	}
	centerImagValue, err := view.ParseCoordinate(centerImag)
	if err != nil {
		logger.Fatalf("centerImag: %s", err)
	}
	state = view.Apply(state, view.SetCenter{Real: centerRealValue, Imag: centerImagValue})
	if radius <= 0 {
		logger.Fatalf("radius must be positive, got %g", radius)
	}
	state = view.Apply(state, view.SetRadius{Radius: radius})
	if depth <= 0 {
		logger.Fatalf("depth must be positive, got %d", depth)
	}
	state = view.Apply(state, view.SetDepth{Depth: depth})

	viewer := newViewer(state, renderWorkers)
	go runConsole(viewer.actions)

	ebiten.SetWindowTitle("deepbrot")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(viewer); err != nil {
		logger.Fatalf("Viewer exited: %s", err)
	}
}
