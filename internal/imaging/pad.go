package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Offset positions a smaller image inside a larger canvas. Left and Top are
// the fractions of the free horizontal and vertical space placed before the
// image: 0 hugs the left/top edge, 0.5 centers, 1 hugs the right/bottom edge.
type Offset struct {
	Left, Top float64
}

// Common placements.
var (
	BottomRight  = Offset{Left: 1, Top: 1}
	BottomCenter = Offset{Left: 0.5, Top: 1}
)

// Placement returns the top-left pixel at which a w×h image lands on a
// canvasW×canvasH canvas for the given offset.
func (o Offset) Placement(canvasW, canvasH, w, h int) image.Point {
	return image.Pt(
		int(math.Round(float64(canvasW-w)*o.Left)),
		int(math.Round(float64(canvasH-h)*o.Top)),
	)
}

func (o Offset) valid() bool {
	return o.Left >= 0 && o.Left <= 1 && o.Top >= 0 && o.Top <= 1
}

// Pad copies img onto a black width×height canvas at the position selected by
// off. The canvas must be at least as large as img in both axes; resize first
// when it is not.
func Pad(img image.Image, width, height int, off Offset) (*image.NRGBA, error) {
	if !off.valid() {
		return nil, fmt.Errorf("%w: offset (%g,%g) outside [0,1]", ErrInvalidArgument, off.Left, off.Top)
	}

	b := img.Bounds()
	if b.Dx() > width || b.Dy() > height {
		return nil, fmt.Errorf("%w: %dx%d image does not fit a %dx%d canvas",
			ErrInvalidArgument, b.Dx(), b.Dy(), width, height)
	}

	canvas := imaging.New(width, height, color.NRGBA{0, 0, 0, 0xff})
	return imaging.Paste(canvas, img, off.Placement(width, height, b.Dx(), b.Dy())), nil
}
