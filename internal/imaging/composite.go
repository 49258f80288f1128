package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Composite fills the empty parts of fg with bg.
//
// A pixel is empty when its three color channels are all exactly zero; such
// pixels take the bg pixel and every other pixel keeps fg. There is no alpha
// blending, so a genuinely black foreground pixel is also replaced. Pad and
// the chroma-key background removal both mark empty pixels this way.
//
// fg and bg must have identical dimensions. The result is opaque whatever
// the alpha of the inputs.
func Composite(fg, bg image.Image) (*image.NRGBA, error) {
	fb, bb := fg.Bounds(), bg.Bounds()
	if fb.Dx() != bb.Dx() || fb.Dy() != bb.Dy() {
		return nil, fmt.Errorf("%w: foreground %dx%d, background %dx%d",
			ErrShapeMismatch, fb.Dx(), fb.Dy(), bb.Dx(), bb.Dy())
	}

	out := imaging.Clone(fg)
	back := imaging.Clone(bg)

	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 0 && out.Pix[i+1] == 0 && out.Pix[i+2] == 0 {
			copy(out.Pix[i:i+3], back.Pix[i:i+3])
		}
		out.Pix[i+3] = 0xff
	}
	return out, nil
}
