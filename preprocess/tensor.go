package preprocess

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Model input conventions. Height is fixed; width is dynamic in WidthAlign
// steps between MinWidth and MaxWidth. Content is scaled so its height lands
// near TargetContentH and sits at the top-left of the canvas.
const (
	TensorHeight   = 128
	TargetContentH = 64
	WidthAlign     = 64
	MinWidth       = 64
	MaxWidth       = 1024
)

// background is the tensor value of unpainted canvas.
const background = 1.0

// Result is the encoder input: a grayscale tensor in [0,1] (0 ink, 1
// background) plus a validity mask marking padding with 1 and content with
// 0. Both are row-major and are not mutated after construction.
type Result struct {
	Tensor []float32
	Height int
	Width  int

	Mask       []uint8
	MaskHeight int
	MaskWidth  int
}

// ScaleAndEncode scales a rendered bitmap to the model input conventions
// and emits the tensor plus mask.
func ScaleAndEncode(bitmap image.Image) (*Result, error) {
	if bitmap == nil {
		return nil, errors.New("nil bitmap")
	}
	bw := bitmap.Bounds().Dx()
	bh := bitmap.Bounds().Dy()
	if bw == 0 || bh == 0 {
		return nil, errors.Errorf("empty bitmap %dx%d", bw, bh)
	}

	scale := math.Min(float64(TargetContentH)/float64(bh), float64(MaxWidth)/float64(bw))
	scaledW := int(math.Round(float64(bw) * scale))
	scaledH := int(math.Round(float64(bh) * scale))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	destW := clamp(roundUp(scaledW+Pad, WidthAlign), MinWidth, MaxWidth)
	if scaledW > destW {
		scaledW = destW
	}

	scaled := resize.Resize(uint(scaledW), uint(scaledH), bitmap, resize.Bilinear)
	sb := scaled.Bounds()

	tensor := make([]float32, TensorHeight*destW)
	mask := make([]uint8, TensorHeight*destW)
	for y := 0; y < TensorHeight; y++ {
		for x := 0; x < destW; x++ {
			i := y*destW + x
			if y < scaledH && x < scaledW {
				tensor[i] = luma(scaled.At(sb.Min.X+x, sb.Min.Y+y))
			} else {
				tensor[i] = background
				mask[i] = 1
			}
		}
	}

	return &Result{
		Tensor: tensor,
		Height: TensorHeight,
		Width:  destW,

		Mask:       mask,
		MaskHeight: TensorHeight,
		MaskWidth:  destW,
	}, nil
}

// luma converts a color to [0,1] grayscale intensity with ITU-R BT.601
// weights.
func luma(c color.Color) float32 {
	r, g, b, _ := c.RGBA()
	y := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return float32(y / 0xffff)
}

func roundUp(v, m int) int {
	if v%m == 0 {
		return v
	}
	return (v/m + 1) * m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
