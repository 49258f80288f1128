package colorspace

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// Channels holds the three channels of a converted image, each broadcast to
// a grayscale *image.NRGBA (R == G == B) so they can be tiled next to color
// images. The order is the one reported by Space.ChannelNames.
type Channels struct {
	C1 *image.NRGBA
	C2 *image.NRGBA
	C3 *image.NRGBA
}

// pixelFunc converts one 8-bit RGB pixel into three normalized channels.
type pixelFunc func(r, g, b uint8) (uint8, uint8, uint8)

// Convert converts img into space, splits the result into its channels and
// stretches each channel to 0-255.
func Convert(img image.Image, space Space) (*Channels, error) {
	fn, err := converterFor(space)
	if err != nil {
		return nil, err
	}

	src := imaging.Normalize(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := &Channels{
		C1: image.NewNRGBA(image.Rect(0, 0, w, h)),
		C2: image.NewNRGBA(image.Rect(0, 0, w, h)),
		C3: image.NewNRGBA(image.Rect(0, 0, w, h)),
	}

	for i := 0; i < len(src.Pix); i += 4 {
		c1, c2, c3 := fn(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		setGray(out.C1.Pix[i:i+4], c1)
		setGray(out.C2.Pix[i:i+4], c2)
		setGray(out.C3.Pix[i:i+4], c3)
	}
	return out, nil
}

func converterFor(space Space) (pixelFunc, error) {
	switch space {
	case XYZ:
		return xyzPixel, nil
	case LAB:
		return labPixel, nil
	case YCrCb:
		return ycrcbPixel, nil
	case HSB, HSV:
		return hsvPixel, nil
	}
	return nil, fmt.Errorf("%w: unsupported color space %v", ErrInvalidArgument, space)
}

func xyzPixel(r, g, b uint8) (uint8, uint8, uint8) {
	x, y, z := colorful.LinearRgbToXyz(unit(r), unit(g), unit(b))
	return saturate(x * 255), saturate(y * 255), saturate(z * 255)
}

func labPixel(r, g, b uint8) (uint8, uint8, uint8) {
	l, a, bb := colorful.Color{R: unit(r), G: unit(g), B: unit(b)}.Lab()
	return saturate(l * 255),
		NormalizeLabChroma(saturate(a*100 + 128)),
		NormalizeLabChroma(saturate(bb*100 + 128))
}

func ycrcbPixel(r, g, b uint8) (uint8, uint8, uint8) {
	y, cb, cr := color.RGBToYCbCr(r, g, b)
	return y, cr, cb
}

func hsvPixel(r, g, b uint8) (uint8, uint8, uint8) {
	h, s, v := HSV8(r, g, b)
	return NormalizeHue(h), s, v
}

// HSV8 converts an RGB pixel to 8-bit HSV with hue in degrees/2 (0-179) and
// saturation and value in 0-255.
func HSV8(r, g, b uint8) (h, s, v uint8) {
	hf, sf, vf := colorful.Color{R: unit(r), G: unit(g), B: unit(b)}.Hsv()
	hue := int(math.Round(hf / 2))
	if hue >= 180 {
		hue -= 180
	}
	return uint8(hue), saturate(sf * 255), saturate(vf * 255)
}

// NormalizeLabChroma stretches an a or b value from 1-255 onto 0-255.
// A value of 0 clamps to 0.
func NormalizeLabChroma(v uint8) uint8 {
	return saturate((float64(v) - 1) * 255 / 254)
}

// NormalizeHue stretches a hue from 0-179 onto 0-255.
func NormalizeHue(v uint8) uint8 {
	return saturate(float64(v) * 255 / 179)
}

func unit(v uint8) float64 {
	return float64(v) / 255
}

// saturate rounds to the nearest integer and clamps to the byte range.
func saturate(f float64) uint8 {
	f = math.Round(f)
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

func setGray(px []uint8, v uint8) {
	px[0], px[1], px[2], px[3] = v, v, v, 0xff
}
