package coordinator

import "math"

// zoomSettings is one leg of a zoom sequence. Every frame divides (or
// multiplies, when zooming back out) the radius by RadiusStep; the frame
// count follows from how many steps separate the two radii. The center is
// fixed for the whole run: moving it would invalidate the shared reference
// orbit.
type zoomSettings struct {
	FrameCount  uint
	RadiusEnd   float64
	RadiusStart float64
	RadiusStep  float64
}

/*
 * Use logarithms to determine the number of frames in a zoom leg
 *
 * i.e.
 * radius_start / radius_step^n = radius_end
 * n = log(radius_start / radius_end) / log(radius_step)
 */
func (zs *zoomSettings) frameCount() uint {
	ratio := zs.RadiusStart / zs.RadiusEnd
	if zs.RadiusEnd > zs.RadiusStart {
		// zooming out
		ratio = zs.RadiusEnd / zs.RadiusStart
	}

	// The epsilon keeps an exact power of the step from rounding up to an
	// extra frame
	count := uint(math.Ceil(math.Log(ratio)/math.Log(zs.RadiusStep) - 1e-9))
	if count == 0 {
		count = 1
	}
	return count
}

func (zs *zoomSettings) Verify() error {
	if zs.RadiusStart <= 0 {
		zs.RadiusStart = 2
	}
	if zs.RadiusEnd <= 0 {
		zs.RadiusEnd = zs.RadiusStart / 1024
	}
	if zs.RadiusStep <= 1 {
		zs.RadiusStep = 2
	}
	return nil
}
