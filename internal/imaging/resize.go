package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Output limits for a tiled view.
const (
	MaxTileWidth  = 1280
	MaxTileHeight = 720
)

// FitDimensions computes the largest size with the source aspect ratio that
// fits inside maxW×maxH.
//
// The limiting axis is chosen by comparing aspect ratios: a source relatively
// wider than the box is clamped to maxW, anything else to maxH. The derived
// axis is truncated, never rounded up, so both results stay inside the box.
// Each result is at least 1.
//
// Example: a 20×10 source fitted into 5×5 yields 5×2.
func FitDimensions(srcW, srcH, maxW, maxH int) (int, int) {
	aspect := float64(srcW) / float64(srcH)

	var w, h int
	if aspect > float64(maxW)/float64(maxH) {
		w = maxW
		h = int(float64(w) / aspect)
	} else {
		h = maxH
		w = int(float64(h) * aspect)
	}

	return clamp(w, 1, maxW), clamp(h, 1, maxH)
}

// ResizeToFit scales img to fit inside a height×width box while preserving
// its aspect ratio, using box (area-averaging) resampling.
//
// Parameter order follows the row-major convention used throughout the
// pipeline: height first, then width.
func ResizeToFit(img image.Image, height, width int) (*image.NRGBA, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: cannot resize an empty image", ErrInvalidArgument)
	}

	w, h := FitDimensions(bounds.Dx(), bounds.Dy(), width, height)
	if w == bounds.Dx() && h == bounds.Dy() {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, w, h, imaging.Box), nil
}

// Stretch resizes img to exactly width×height with bilinear interpolation,
// ignoring the aspect ratio.
func Stretch(img image.Image, width, height int) (*image.NRGBA, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, width, height, imaging.Linear), nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
