// Package export renders captured ink into portable documents.
package export

import (
	"github.com/jotspot/inktex/encoding/ink"
	"github.com/jotspot/inktex/preprocess"
	"github.com/pkg/errors"
	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"
)

var pageSize = creator.PageSize{445, 594}

const pageMargin = 24.0

// GesturePDF writes gesture to outputPath as a single page pdf,
// scaled and centered to fit inside the page margins.
func GesturePDF(gesture ink.Gesture, outputPath string) error {
	box, ok := ink.BoundingBox(gesture)
	if !ok {
		return errors.New("empty gesture")
	}

	c := creator.New()
	c.SetPageSize(pageSize)
	page := c.NewPage()

	usableW := c.Width() - 2*pageMargin
	usableH := c.Height() - 2*pageMargin

	ratio := 1.0
	if box.Width() > 0 && box.Height() > 0 {
		ratio = usableW / box.Width()
		if r := usableH / box.Height(); r < ratio {
			ratio = r
		}
	}

	originX := pageMargin + (usableW-box.Width()*ratio)/2
	originY := pageMargin + (usableH-box.Height()*ratio)/2

	contentCreator := contentstream.NewContentCreator()
	for _, stroke := range gesture {
		if len(stroke.Points) < 1 {
			continue
		}

		width := stroke.Width
		if width <= 0 {
			width = preprocess.DefaultStrokeWidth
		}

		path := draw.NewPath()
		for _, p := range stroke.Points {
			x := originX + (p.X-box.MinX)*ratio
			y := originY + (p.Y-box.MinY)*ratio
			path = path.AppendPoint(draw.NewPoint(x, c.Height()-y))
		}

		contentCreator.Add_q()
		contentCreator.Add_w(width * ratio)
		contentCreator.Add_RG(0, 0, 0)

		draw.DrawPathWithCreator(path, contentCreator)

		contentCreator.Add_S()
		contentCreator.Add_Q()
	}

	ops := contentCreator.Operations()
	if err := page.AppendContentStream(string(ops.Bytes())); err != nil {
		return err
	}

	return c.WriteToFile(outputPath)
}
