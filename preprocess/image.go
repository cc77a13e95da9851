package preprocess

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/jotspot/inktex/log"
)

// imageInkThreshold separates ink from paper in an imported image: pixels
// darker than this count as ink.
const imageInkThreshold = 128

// DecodeImage reads a PNG, JPEG or WebP image for the image input path.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		log.Trace.Printf("decoded %s image %v", format, img.Bounds().Size())
		return img, nil
	}

	img, werr := webp.Decode(bytes.NewReader(data))
	if werr != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

// FromImage runs an already-rasterized picture of handwriting through the
// same tensor conventions as the stroke pipeline: flatten onto white,
// grayscale, crop to the ink bounding box with the standard margin, then
// scale and encode.
func FromImage(img image.Image) (*Result, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}

	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Point{}, 1.0)
	gray := imaging.Grayscale(flat)

	box, ok := inkBounds(gray, imageInkThreshold)
	if !ok {
		return nil, errors.New("no ink found in image")
	}

	content := imaging.Crop(gray, box)
	canvas := imaging.New(box.Dx()+2*Pad, box.Dy()+2*Pad, color.White)
	canvas = imaging.Paste(canvas, content, image.Pt(Pad, Pad))

	return ScaleAndEncode(canvas)
}

// inkBounds finds the bounding box of pixels darker than threshold.
func inkBounds(img *image.NRGBA, threshold uint8) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4] >= threshold {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// EncodeWebP writes img as lossless WebP, used for pipeline debug dumps.
func EncodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}
