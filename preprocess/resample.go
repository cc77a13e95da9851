package preprocess

import "github.com/jotspot/inktex/encoding/ink"

// DefaultResampleInterval is the arc-length spacing, in device units,
// strokes are resampled to before rendering.
const DefaultResampleInterval = 3.0

// Resample returns points spaced uniformly along the polyline at the given
// arc-length interval. The first and last input points are always kept
// exactly; inputs with fewer than two points come back as copies. A
// non-positive interval falls back to the default.
func Resample(points []ink.Point, interval float64) []ink.Point {
	if len(points) < 2 {
		return append([]ink.Point(nil), points...)
	}
	if interval <= 0 {
		interval = DefaultResampleInterval
	}

	out := make([]ink.Point, 0, len(points))
	out = append(out, points[0])

	prev := points[0]
	need := interval
	for i := 1; i < len(points); i++ {
		cur := points[i]
		seg := ink.Dist(prev, cur)
		for seg > 0 && seg >= need {
			t := need / seg
			prev = ink.Point{
				X: prev.X + (cur.X-prev.X)*t,
				Y: prev.Y + (cur.Y-prev.Y)*t,
			}
			out = append(out, prev)
			seg = ink.Dist(prev, cur)
			need = interval
		}
		need -= seg
		prev = cur
	}

	last := points[len(points)-1]
	if out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// Normalize resamples every stroke to the default spacing, widths untouched.
func Normalize(strokes []ink.Stroke) []ink.Stroke {
	out := make([]ink.Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = ink.Stroke{
			Points: Resample(s.Points, DefaultResampleInterval),
			Width:  s.Width,
		}
	}
	return out
}
