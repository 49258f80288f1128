package chromakey

import (
	"fmt"
	"image"

	"github.com/ironsheep/chromakey-mcp/internal/colorspace"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// GreenBounds is an inclusive HSV box. Hue uses the 0-179 scale.
type GreenBounds struct {
	HueMin, HueMax uint8
	SatMin, SatMax uint8
	ValMin, ValMax uint8
}

// DefaultGreenBounds is the backdrop range used by the pipelines. It is
// deliberately wide on hue (50-169) so that blue-green spill is removed too.
var DefaultGreenBounds = GreenBounds{
	HueMin: 50, HueMax: 169,
	SatMin: 43, SatMax: 255,
	ValMin: 82, ValMax: 255,
}

// Contains reports whether the HSV triple lies inside the bounds.
func (b GreenBounds) Contains(h, s, v uint8) bool {
	return h >= b.HueMin && h <= b.HueMax &&
		s >= b.SatMin && s <= b.SatMax &&
		v >= b.ValMin && v <= b.ValMax
}

// Segment returns a mask that is 255 where img is backdrop and 0 elsewhere.
func Segment(img image.Image, b GreenBounds) *image.Gray {
	src := imaging.Normalize(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	mask := image.NewGray(image.Rect(0, 0, w, h))

	for i, j := 0, 0; i < len(src.Pix); i, j = i+4, j+1 {
		hh, ss, vv := colorspace.HSV8(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		if b.Contains(hh, ss, vv) {
			mask.Pix[j] = 0xff
		}
	}
	return mask
}

// RemoveBackground zeroes every pixel of img selected by mask.
//
// The masked pixels are first extracted into their own image and then
// subtracted from the original with saturating byte arithmetic. Masked pixels
// end up (0,0,0); all others are unchanged because nothing is subtracted from
// them. The subtraction clamps at zero and never wraps.
func RemoveBackground(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	src := imaging.Normalize(img)
	sb, mb := src.Bounds(), mask.Bounds()
	if sb.Dx() != mb.Dx() || sb.Dy() != mb.Dy() {
		return nil, fmt.Errorf("%w: image %dx%d, mask %dx%d",
			imaging.ErrShapeMismatch, sb.Dx(), sb.Dy(), mb.Dx(), mb.Dy())
	}

	backdrop := extract(src, mask)
	out := image.NewNRGBA(sb)
	for i := 0; i < len(src.Pix); i += 4 {
		out.Pix[i] = subSat(src.Pix[i], backdrop.Pix[i])
		out.Pix[i+1] = subSat(src.Pix[i+1], backdrop.Pix[i+1])
		out.Pix[i+2] = subSat(src.Pix[i+2], backdrop.Pix[i+2])
		out.Pix[i+3] = 0xff
	}
	return out, nil
}

// RemoveGreen segments img with DefaultGreenBounds and removes the backdrop.
func RemoveGreen(img image.Image) (*image.NRGBA, error) {
	return RemoveBackground(img, Segment(img, DefaultGreenBounds))
}

// extract keeps the pixels of src where mask is set and blacks out the rest.
func extract(src *image.NRGBA, mask *image.Gray) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i, j := 0, 0; i < len(src.Pix); i, j = i+4, j+1 {
		if mask.Pix[mask.PixOffset(j%src.Rect.Dx()+mask.Rect.Min.X, j/src.Rect.Dx()+mask.Rect.Min.Y)] != 0 {
			copy(out.Pix[i:i+3], src.Pix[i:i+3])
		}
		out.Pix[i+3] = 0xff
	}
	return out
}

func subSat(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
