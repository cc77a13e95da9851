package preprocess

import "github.com/jotspot/inktex/encoding/ink"

// Significance thresholds. Gestures below these are treated as accidental
// marks rather than math.
const (
	// MinBBoxDim rejects gestures whose bounding box is smaller than this
	// in both dimensions, so a thin fraction bar still passes.
	MinBBoxDim = 8.0

	// MinPoints is the minimum total point count.
	MinPoints = 5

	// MinPathLen is the minimum cumulative path length.
	MinPathLen = 15.0
)

// IsMeaningful reports whether a gesture carries enough content to be worth
// running through recognition.
func IsMeaningful(strokes []ink.Stroke) bool {
	if len(strokes) == 0 {
		return false
	}
	box, ok := ink.BoundingBox(strokes)
	if !ok {
		return false
	}
	if box.Width() < MinBBoxDim && box.Height() < MinBBoxDim {
		return false
	}
	if ink.PointCount(strokes) < MinPoints {
		return false
	}
	if ink.PathLength(strokes) < MinPathLen {
		return false
	}
	return true
}
