// Package ink defines the stroke model for handwritten input: points,
// strokes and gestures, with geometry helpers and a binary codec for
// storing captured gestures.
package ink

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a single pen sample in device coordinates. The y axis grows
// downward, matching raster space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen-down path, points in drawing order.
type Stroke struct {
	Points []Point `json:"points"`
	// Width is the nib width in device units. Zero means the renderer
	// default.
	Width float64 `json:"width,omitempty"`
}

// Gesture is a completed drawing: strokes in the order they were made.
// Replay order is significant to recognition.
type Gesture []Stroke

// FromJSON decodes a gesture from its JSON form.
func FromJSON(data []byte) (Gesture, error) {
	var g Gesture
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("ink: %v", err)
	}
	return g, nil
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundingBox returns the bounding box over all points of all strokes.
// ok is false when the strokes contain no points at all.
func BoundingBox(strokes []Stroke) (box Rect, ok bool) {
	box = Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, s := range strokes {
		for _, p := range s.Points {
			ok = true
			box.MinX = math.Min(box.MinX, p.X)
			box.MinY = math.Min(box.MinY, p.Y)
			box.MaxX = math.Max(box.MaxX, p.X)
			box.MaxY = math.Max(box.MaxY, p.Y)
		}
	}
	if !ok {
		return Rect{}, false
	}
	return box, true
}

// PointCount returns the total number of points across all strokes.
func PointCount(strokes []Stroke) int {
	n := 0
	for _, s := range strokes {
		n += len(s.Points)
	}
	return n
}

// PathLength returns the cumulative polyline arc length across all strokes.
func PathLength(strokes []Stroke) float64 {
	var total float64
	for _, s := range strokes {
		for i := 1; i < len(s.Points); i++ {
			total += Dist(s.Points[i-1], s.Points[i])
		}
	}
	return total
}

// Dist is the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
