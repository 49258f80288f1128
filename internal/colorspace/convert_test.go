package colorspace

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// grayAt returns the single value of a grayscale channel image, failing the
// test if the three color bytes differ.
func grayAt(t *testing.T, img *image.NRGBA, x, y int) uint8 {
	t.Helper()
	px := img.Pix[img.PixOffset(x, y):]
	if px[0] != px[1] || px[1] != px[2] {
		t.Fatalf("pixel (%d,%d) is not gray: (%d,%d,%d)", x, y, px[0], px[1], px[2])
	}
	if px[3] != 255 {
		t.Fatalf("pixel (%d,%d) alpha: got %d, want 255", x, y, px[3])
	}
	return px[0]
}

func TestNormalizeLabChroma(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{128, 128},
		{254, 254},
		{255, 255},
	}

	for _, tt := range tests {
		if got := NormalizeLabChroma(tt.in); got != tt.want {
			t.Errorf("NormalizeLabChroma(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHue(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{60, 85},
		{90, 128},
		{179, 255},
		{180, 255},
	}

	for _, tt := range tests {
		if got := NormalizeHue(tt.in); got != tt.want {
			t.Errorf("NormalizeHue(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_FullRangeIsMonotonic(t *testing.T) {
	var prevLab, prevHue uint8
	for v := 0; v <= 255; v++ {
		lab := NormalizeLabChroma(uint8(v))
		if lab < prevLab {
			t.Fatalf("NormalizeLabChroma not monotonic at %d", v)
		}
		prevLab = lab

		if v <= 179 {
			hue := NormalizeHue(uint8(v))
			if hue < prevHue {
				t.Fatalf("NormalizeHue not monotonic at %d", v)
			}
			prevHue = hue
		}
	}
}

func TestHSV8(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v uint8
	}{
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"yellow", 255, 255, 0, 30, 255, 255},
		{"gray", 128, 128, 128, 0, 0, 128},
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"hue wraps to zero", 255, 0, 1, 0, 255, 255},
		{"dark green", 0, 100, 0, 60, 255, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := HSV8(tt.r, tt.g, tt.b)
			if h != tt.h || s != tt.s || v != tt.v {
				t.Errorf("HSV8(%d,%d,%d): got (%d,%d,%d), want (%d,%d,%d)",
					tt.r, tt.g, tt.b, h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestHSV8_HueRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				h, _, _ := HSV8(uint8(r), uint8(g), uint8(b))
				if h > 179 {
					t.Fatalf("HSV8(%d,%d,%d) hue %d > 179", r, g, b, h)
				}
			}
		}
	}
}

func TestConvert_Dimensions(t *testing.T) {
	img := createInMemoryImage(30, 20, color.NRGBA{10, 120, 230, 255})

	for _, space := range Spaces {
		t.Run(space.String(), func(t *testing.T) {
			ch, err := Convert(img, space)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			for i, c := range []*image.NRGBA{ch.C1, ch.C2, ch.C3} {
				if c.Bounds() != image.Rect(0, 0, 30, 20) {
					t.Errorf("channel %d bounds: got %v, want 30x20", i+1, c.Bounds())
				}
				grayAt(t, c, 29, 19)
			}
		})
	}
}

func TestConvert_KnownColors(t *testing.T) {
	tests := []struct {
		name       string
		space      Space
		c          color.NRGBA
		c1, c2, c3 uint8
	}{
		{"YCrCb white", YCrCb, color.NRGBA{255, 255, 255, 255}, 255, 128, 128},
		{"YCrCb black", YCrCb, color.NRGBA{0, 0, 0, 255}, 0, 128, 128},
		{"YCrCb red", YCrCb, color.NRGBA{255, 0, 0, 255}, 76, 255, 85},
		{"XYZ black", XYZ, color.NRGBA{0, 0, 0, 255}, 0, 0, 0},
		{"LAB black", LAB, color.NRGBA{0, 0, 0, 255}, 0, 128, 128},
		{"HSV green", HSV, color.NRGBA{0, 255, 0, 255}, 85, 255, 255},
		{"HSB blue", HSB, color.NRGBA{0, 0, 255, 255}, 171, 255, 255},
		{"HSV gray", HSV, color.NRGBA{128, 128, 128, 255}, 0, 0, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := Convert(createInMemoryImage(2, 2, tt.c), tt.space)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			c1, c2, c3 := grayAt(t, ch.C1, 1, 1), grayAt(t, ch.C2, 1, 1), grayAt(t, ch.C3, 1, 1)
			if c1 != tt.c1 || c2 != tt.c2 || c3 != tt.c3 {
				t.Errorf("channels: got (%d,%d,%d), want (%d,%d,%d)", c1, c2, c3, tt.c1, tt.c2, tt.c3)
			}
		})
	}
}

func TestConvert_XYZWhite(t *testing.T) {
	ch, err := Convert(createInMemoryImage(1, 1, color.White), XYZ)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// D65 white: X ≈ 0.9505, Y = 1, Z ≈ 1.089 (saturates)
	if x := grayAt(t, ch.C1, 0, 0); x < 240 || x > 244 {
		t.Errorf("X: got %d, want ~242", x)
	}
	if y := grayAt(t, ch.C2, 0, 0); y != 255 {
		t.Errorf("Y: got %d, want 255", y)
	}
	if z := grayAt(t, ch.C3, 0, 0); z != 255 {
		t.Errorf("Z: got %d, want 255", z)
	}
}

func TestConvert_LABWhite(t *testing.T) {
	ch, err := Convert(createInMemoryImage(1, 1, color.White), LAB)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if l := grayAt(t, ch.C1, 0, 0); l < 254 {
		t.Errorf("L: got %d, want 255", l)
	}
	if a := grayAt(t, ch.C2, 0, 0); a != 128 {
		t.Errorf("a: got %d, want 128", a)
	}
	if b := grayAt(t, ch.C3, 0, 0); b != 128 {
		t.Errorf("b: got %d, want 128", b)
	}
}

func TestConvert_LABChromaDirection(t *testing.T) {
	// Red has positive a (reddish) and positive b (yellowish); blue has
	// negative b.
	red, err := Convert(createInMemoryImage(1, 1, color.NRGBA{255, 0, 0, 255}), LAB)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	blue, err := Convert(createInMemoryImage(1, 1, color.NRGBA{0, 0, 255, 255}), LAB)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if a := grayAt(t, red.C2, 0, 0); a <= 128 {
		t.Errorf("red a: got %d, want > 128", a)
	}
	if b := grayAt(t, red.C3, 0, 0); b <= 128 {
		t.Errorf("red b: got %d, want > 128", b)
	}
	if b := grayAt(t, blue.C3, 0, 0); b >= 128 {
		t.Errorf("blue b: got %d, want < 128", b)
	}
}

func TestConvert_DoesNotModifyInput(t *testing.T) {
	img := createInMemoryImage(3, 3, color.NRGBA{1, 2, 3, 255})

	if _, err := Convert(img, LAB); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if img.Pix[0] != 1 || img.Pix[1] != 2 || img.Pix[2] != 3 {
		t.Error("Convert modified its input")
	}
}

func TestConvert_UnknownSpace(t *testing.T) {
	_, err := Convert(createInMemoryImage(1, 1, color.White), Space(42))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Convert error: got %v, want ErrInvalidArgument", err)
	}
}
