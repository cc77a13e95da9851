// Package preprocess turns captured ink into the tensors the recognition
// model consumes. Strokes are resampled to uniform spacing, rasterized with
// round caps and joins onto a white canvas, then scaled and encoded as a
// normalized grayscale tensor with a validity mask.
package preprocess

import (
	"github.com/pkg/errors"

	"github.com/jotspot/inktex/encoding/ink"
)

// FromStrokes runs the stroke-to-tensor pipeline. The significance gate is
// not applied here; callers decide with IsMeaningful whether a gesture is
// worth the work.
func FromStrokes(strokes []ink.Stroke) (*Result, error) {
	bitmap, ok := Render(Normalize(strokes))
	if !ok {
		return nil, errors.New("no points to render")
	}
	return ScaleAndEncode(bitmap)
}
