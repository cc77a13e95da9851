package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/jotspot/inktex/encoding/ink"
)

// Rendering conventions for the recognizer: black ink on a white canvas,
// content offset by Pad from the top-left corner.
const (
	// Pad is the margin left around the content bounding box, in device
	// units.
	Pad = 16

	// DefaultStrokeWidth substitutes for strokes that carry no width.
	DefaultStrokeWidth = 2.0

	// flatness is the curve flattening tolerance in device pixels.
	flatness = 0.3

	// capSegments approximates a semicircular cap.
	capSegments = 12
)

var inkColor = image.NewUniform(color.Gray{Y: 0x00})

// Render rasterizes strokes onto a white canvas sized to their bounding box
// plus a Pad margin on every side. Ink is drawn with round caps and joins;
// strokes with more than two points are smoothed with quadratic curves
// through successive midpoints, ending on the true last point. ok is false
// when the strokes contain no points.
func Render(strokes []ink.Stroke) (*image.Gray, bool) {
	box, ok := ink.BoundingBox(strokes)
	if !ok {
		return nil, false
	}

	w := int(math.Ceil(box.Width())) + 2*Pad
	h := int(math.Ceil(box.Height())) + 2*Pad
	canvas := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for _, stroke := range strokes {
		if len(stroke.Points) == 0 {
			continue
		}
		width := stroke.Width
		if width <= 0 {
			width = DefaultStrokeWidth
		}
		pts := translate(stroke.Points, Pad-box.MinX, Pad-box.MinY)
		drawStroke(canvas, pts, width)
	}
	return canvas, true
}

// drawStroke paints one polyline. Every flattened centerline segment becomes
// a round-capped capsule; under a shared winding direction overlapping
// capsules merge into round joins.
func drawStroke(dst *image.Gray, pts []ink.Point, width float64) {
	bounds := dst.Bounds()
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.DrawOp = draw.Src

	r := width / 2
	segs := flattenCenterline(pts)
	if len(segs) == 0 {
		appendCircle(z, pts[0], r)
	}
	for _, s := range segs {
		appendCapsule(z, s.a, s.b, r)
	}

	mask := image.NewAlpha(bounds)
	z.Draw(mask, bounds, image.Opaque, image.Point{})
	draw.DrawMask(dst, bounds, inkColor, image.Point{}, mask, bounds.Min, draw.Over)
}

type segment struct {
	a, b ink.Point
}

// flattenCenterline converts the smoothed centerline to straight segments.
// Two points give one straight segment; longer runs follow quadratic curves
// from each midpoint through the original point to the next midpoint, with
// the final curve ending on the true last point.
func flattenCenterline(pts []ink.Point) []segment {
	if len(pts) < 2 {
		return nil
	}
	if len(pts) == 2 {
		return []segment{{pts[0], pts[1]}}
	}

	var segs []segment
	emit := func(a, b ink.Point) {
		segs = append(segs, segment{a, b})
	}

	cur := pts[0]
	i := 1
	for ; i < len(pts)-2; i++ {
		mid := midpoint(pts[i], pts[i+1])
		flattenQuad(cur, pts[i], mid, emit)
		cur = mid
	}
	flattenQuad(cur, pts[i], pts[i+1], emit)
	return segs
}

func midpoint(a, b ink.Point) ink.Point {
	return ink.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// flattenQuad subdivides the quadratic Bézier (p0, ctrl, p1) into straight
// segments within the flatness tolerance. The deviation bound is
// |P0 - 2*P1 + P2| / 4.
func flattenQuad(p0, ctrl, p1 ink.Point, emit func(a, b ink.Point)) {
	ex := (p0.X - 2*ctrl.X + p1.X) / 4
	ey := (p0.Y - 2*ctrl.Y + p1.Y) / 4
	dev := math.Hypot(ex, ey)

	n := 1
	if dev > flatness {
		n = int(math.Ceil(math.Sqrt(dev / flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := ink.Point{
			X: omt*omt*p0.X + 2*omt*t*ctrl.X + t*t*p1.X,
			Y: omt*omt*p0.Y + 2*omt*t*ctrl.Y + t*t*p1.Y,
		}
		emit(prev, pt)
		prev = pt
	}
}

// appendCapsule outlines a round-capped thick segment from a to b. All
// capsules and dots share one sweep direction so overlaps saturate instead
// of cancelling under the winding rule.
func appendCapsule(z *vector.Rasterizer, a, b ink.Point, r float64) {
	if ink.Dist(a, b) == 0 {
		appendCircle(z, a, r)
		return
	}
	theta := math.Atan2(b.Y-a.Y, b.X-a.X)
	nx := math.Cos(theta + math.Pi/2)
	ny := math.Sin(theta + math.Pi/2)

	z.MoveTo(float32(a.X+nx*r), float32(a.Y+ny*r))
	z.LineTo(float32(b.X+nx*r), float32(b.Y+ny*r))
	appendArc(z, b, r, theta+math.Pi/2, theta-math.Pi/2)
	z.LineTo(float32(a.X-nx*r), float32(a.Y-ny*r))
	appendArc(z, a, r, theta-math.Pi/2, theta-3*math.Pi/2)
	z.ClosePath()
}

// appendCircle outlines a dot, for single-point and zero-length strokes.
func appendCircle(z *vector.Rasterizer, c ink.Point, r float64) {
	z.MoveTo(float32(c.X+r), float32(c.Y))
	appendArc(z, c, r, 0, -2*math.Pi)
	z.ClosePath()
}

// appendArc approximates the circular arc around c from angle a0 to a1 with
// line segments. The arc's start point must already be the pen position.
func appendArc(z *vector.Rasterizer, c ink.Point, r, a0, a1 float64) {
	for i := 1; i <= capSegments; i++ {
		t := a0 + (a1-a0)*float64(i)/float64(capSegments)
		z.LineTo(float32(c.X+r*math.Cos(t)), float32(c.Y+r*math.Sin(t)))
	}
}

func translate(pts []ink.Point, dx, dy float64) []ink.Point {
	out := make([]ink.Point, len(pts))
	for i, p := range pts {
		out[i] = ink.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}
