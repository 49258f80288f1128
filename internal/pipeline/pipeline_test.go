package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"strings"
	"testing"

	"github.com/ironsheep/chromakey-mcp/internal/chromakey"
	"github.com/ironsheep/chromakey-mcp/internal/colorspace"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

var (
	green  = color.NRGBA{0, 255, 0, 255}
	red    = color.NRGBA{255, 0, 0, 255}
	scenic = color.NRGBA{30, 60, 200, 255}
)

func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), c)
	return img
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// greenscreenPhoto is a 90x90 green backdrop with a red subject standing on
// the bottom edge.
func greenscreenPhoto() *image.NRGBA {
	img := createInMemoryImage(90, 90, green)
	fillRect(img, image.Rect(35, 30, 55, 90), red)
	return img
}

func TestNew_NilLogger(t *testing.T) {
	p := New(nil)
	if p == nil || p.logger == nil {
		t.Fatal("New(nil) should install a discarding logger")
	}
	// must not panic
	p.stage("noop", createInMemoryImage(1, 1, red))
}

func TestDecompose_HSV(t *testing.T) {
	p := New(nil)

	view, err := p.Decompose(createInMemoryImage(50, 50, red), colorspace.HSV)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if view.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("view bounds: got %v, want 100x100", view.Bounds())
	}

	// [original, value; hue, saturation]
	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"original", 10, 10, red},
		{"value", 60, 10, color.NRGBA{255, 255, 255, 255}},
		{"hue", 10, 60, color.NRGBA{0, 0, 0, 255}},
		{"saturation", 60, 60, color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := view.NRGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		space colorspace.Space
		want  [4]string
	}{
		{colorspace.XYZ, [4]string{"original", "X", "Y", "Z"}},
		{colorspace.LAB, [4]string{"original", "L", "a", "b"}},
		{colorspace.YCrCb, [4]string{"original", "Y", "Cr", "Cb"}},
		{colorspace.HSB, [4]string{"original", "B", "H", "S"}},
		{colorspace.HSV, [4]string{"original", "V", "H", "S"}},
	}

	for _, tt := range tests {
		t.Run(tt.space.String(), func(t *testing.T) {
			if got := Layout(tt.space); got != tt.want {
				t.Errorf("Layout: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecompose_LogsLayout(t *testing.T) {
	var logs bytes.Buffer
	p := New(log.New(&logs, "", 0))

	if _, err := p.Decompose(createInMemoryImage(4, 4, red), colorspace.HSV); err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if !strings.Contains(logs.String(), "HSV tiles: original, V, H, S") {
		t.Errorf("expected tile layout in log, got:\n%s", logs.String())
	}
}

func TestDecompose_XYZOrder(t *testing.T) {
	p := New(nil)

	view, err := p.Decompose(createInMemoryImage(20, 10, red), colorspace.XYZ)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if view.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Fatalf("view bounds: got %v, want 40x20", view.Bounds())
	}

	// [original, X; Y, Z] for pure red
	want := []struct {
		x, y int
		v    uint8
	}{
		{25, 5, 105},
		{5, 15, 54},
		{25, 15, 5},
	}
	for _, w := range want {
		if got := view.NRGBAAt(w.x, w.y).R; got != w.v {
			t.Errorf("(%d,%d): got %d, want %d", w.x, w.y, got, w.v)
		}
	}
}

func TestDecompose_CapsSize(t *testing.T) {
	p := New(nil)

	view, err := p.Decompose(createInMemoryImage(960, 540, red), colorspace.LAB)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if view.Bounds().Dx() != imaging.MaxTileWidth || view.Bounds().Dy() != imaging.MaxTileHeight {
		t.Errorf("view size: got %v, want %dx%d", view.Bounds().Size(), imaging.MaxTileWidth, imaging.MaxTileHeight)
	}
}

func TestDecompose_InvalidSpace(t *testing.T) {
	p := New(nil)

	_, err := p.Decompose(createInMemoryImage(4, 4, red), colorspace.Space(99))
	if !errors.Is(err, imaging.ErrInvalidArgument) {
		t.Errorf("Decompose error: got %v, want ErrInvalidArgument", err)
	}
}

func TestComposite(t *testing.T) {
	var logs bytes.Buffer
	p := New(log.New(&logs, "", 0))

	res, err := p.Composite(createInMemoryImage(160, 90, scenic), greenscreenPhoto(), CompositeOptions{})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	for name, tile := range map[string]*image.NRGBA{
		"original":  res.Original,
		"isolated":  res.Isolated,
		"scenic":    res.Scenic,
		"composite": res.Composite,
	} {
		if tile.Bounds() != image.Rect(0, 0, 160, 90) {
			t.Errorf("%s tile: got %v, want 160x90", name, tile.Bounds())
		}
	}
	if res.View.Bounds() != image.Rect(0, 0, 320, 180) {
		t.Errorf("view: got %v, want 320x180", res.View.Bounds())
	}

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}

	tests := []struct {
		name string
		img  *image.NRGBA
		x, y int
		want color.NRGBA
	}{
		// green-screen photo anchored bottom-right at x=70
		{"original padding", res.Original, 0, 0, black},
		{"original backdrop", res.Original, 75, 5, green},
		{"original subject", res.Original, 110, 50, red},

		// whole removed frame centered at x=35 on white
		{"isolated background", res.Isolated, 0, 0, white},
		{"isolated removed backdrop", res.Isolated, 40, 5, white},
		{"isolated subject", res.Isolated, 75, 50, red},

		// 20x60 cropped subject centered at x=70, resting on the bottom
		{"composite scenic", res.Composite, 0, 0, scenic},
		{"composite above subject", res.Composite, 75, 29, scenic},
		{"composite subject top", res.Composite, 70, 30, red},
		{"composite subject bottom", res.Composite, 89, 89, red},
		{"composite right of subject", res.Composite, 90, 89, scenic},

		{"view scenic tile", res.View, 10, 100, scenic},
		{"view composite tile", res.View, 160 + 75, 90 + 50, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.img.NRGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if !strings.Contains(logs.String(), "composite view: 320x180") {
		t.Errorf("expected stage log for the view, got:\n%s", logs.String())
	}
}

func TestComposite_MatchScenicSize(t *testing.T) {
	p := New(nil)

	res, err := p.Composite(createInMemoryImage(160, 90, scenic), greenscreenPhoto(), CompositeOptions{MatchScenicSize: true})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if res.View.Bounds() != image.Rect(0, 0, 160, 90) {
		t.Errorf("view: got %v, want 160x90", res.View.Bounds())
	}
}

func TestComposite_ResizesGreenscreen(t *testing.T) {
	p := New(nil)

	// A tall photo is scaled down to the scenic height.
	gs := createInMemoryImage(100, 400, green)
	fillRect(gs, image.Rect(20, 100, 80, 400), red)

	res, err := p.Composite(createInMemoryImage(200, 100, scenic), gs, CompositeOptions{})
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if res.Composite.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Errorf("composite tile: got %v, want 200x100", res.Composite.Bounds())
	}
	// resized photo is 25x100 anchored bottom-right
	if got := res.Original.NRGBAAt(174, 50); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("original padding: got %v, want black", got)
	}
	if got := res.Original.NRGBAAt(190, 99); got != red {
		t.Errorf("original subject: got %v, want red", got)
	}
}

func TestComposite_AllGreen(t *testing.T) {
	p := New(nil)

	_, err := p.Composite(createInMemoryImage(160, 90, scenic), createInMemoryImage(90, 90, green), CompositeOptions{})
	if !errors.Is(err, chromakey.ErrEmptyForeground) {
		t.Errorf("Composite error: got %v, want ErrEmptyForeground", err)
	}
}

func TestComposite_ReportsProgress(t *testing.T) {
	tests := []struct {
		name        string
		greenscreen *image.NRGBA
		wantSteps   []int
	}{
		{"success", greenscreenPhoto(), []int{1, 2, 3, 4, 5}},
		{"stops at crop", createInMemoryImage(90, 90, green), []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var steps []int
			opts := CompositeOptions{Progress: func(step, total int, desc string) {
				if total != CompositeSteps {
					t.Errorf("step %d total: got %d, want %d", step, total, CompositeSteps)
				}
				if desc == "" {
					t.Errorf("step %d has no description", step)
				}
				steps = append(steps, step)
			}}

			New(nil).Composite(createInMemoryImage(160, 90, scenic), tt.greenscreen, opts)

			if len(steps) != len(tt.wantSteps) {
				t.Fatalf("steps: got %v, want %v", steps, tt.wantSteps)
			}
			for i := range steps {
				if steps[i] != tt.wantSteps[i] {
					t.Errorf("steps: got %v, want %v", steps, tt.wantSteps)
					break
				}
			}
		})
	}
}
