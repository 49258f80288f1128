package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/chromakey-mcp/internal/chromakey"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// CompositeOptions tunes the green-screen task.
type CompositeOptions struct {
	// MatchScenicSize stretches the final 2×2 view to the scenic photo's
	// dimensions instead of leaving it capped at 1280×720.
	MatchScenicSize bool

	// Progress, when set, is called after each of the CompositeSteps steps
	// with the 1-based step number and a short description.
	Progress func(step, total int, desc string)
}

// CompositeSteps is the number of Progress calls a successful Composite makes.
const CompositeSteps = 5

func (o CompositeOptions) report(step int, desc string) {
	if o.Progress != nil {
		o.Progress(step, CompositeSteps, desc)
	}
}

// CompositeResult holds the four tiles and the combined view. Every tile has
// the scenic photo's dimensions.
type CompositeResult struct {
	// Original is the green-screen photo resized to fit the scenic photo and
	// anchored bottom-right.
	Original *image.NRGBA

	// Isolated is the subject on white, centered horizontally and resting on
	// the bottom edge.
	Isolated *image.NRGBA

	// Scenic is the untouched scenic photo.
	Scenic *image.NRGBA

	// Composite is the cropped subject on the scenic photo, centered
	// horizontally and resting on the bottom edge.
	Composite *image.NRGBA

	// View is the 2×2 tiling [Original, Isolated; Scenic, Composite].
	View *image.NRGBA
}

// Composite removes the green backdrop from greenscreen and places the
// subject on scenic.
//
// # Steps
//
//  1. Resize the green-screen photo to fit the scenic photo (aspect kept)
//  2. Pad it to the scenic size, bottom-right, for the first tile
//  3. Remove the backdrop; pad bottom-center and fill the empty pixels white
//  4. Crop the subject to its largest region, pad bottom-center and fill the
//     empty pixels from the scenic photo
//  5. Tile the four images
func (p *Pipeline) Composite(scenic, greenscreen image.Image, opts CompositeOptions) (*CompositeResult, error) {
	bg := imaging.Normalize(scenic)
	w, h := bg.Bounds().Dx(), bg.Bounds().Dy()
	p.stage("scenic", bg)

	subject, err := imaging.ResizeToFit(greenscreen, h, w)
	if err != nil {
		return nil, fmt.Errorf("failed to fit green-screen photo: %w", err)
	}
	p.stage("green-screen resized", subject)
	opts.report(1, "green-screen photo resized")

	original, err := imaging.Pad(subject, w, h, imaging.BottomRight)
	if err != nil {
		return nil, err
	}
	opts.report(2, "original tile padded")

	removed, err := chromakey.RemoveGreen(subject)
	if err != nil {
		return nil, err
	}

	isolated, err := p.place(removed, imaging.Solid(w, h, color.White))
	if err != nil {
		return nil, err
	}
	opts.report(3, "backdrop removed")

	cropped, err := chromakey.CropForeground(subject, removed)
	if err != nil {
		return nil, err
	}
	p.stage("subject cropped", cropped)

	composite, err := p.place(cropped, bg)
	if err != nil {
		return nil, err
	}
	opts.report(4, "subject placed on scenic photo")

	view, err := imaging.Combine(original, isolated, bg, composite)
	if err != nil {
		return nil, fmt.Errorf("failed to tile composite: %w", err)
	}
	if opts.MatchScenicSize {
		if view, err = imaging.Stretch(view, w, h); err != nil {
			return nil, err
		}
	}
	p.stage("composite view", view)
	opts.report(5, "view tiled")

	return &CompositeResult{
		Original:  original,
		Isolated:  isolated,
		Scenic:    bg,
		Composite: composite,
		View:      view,
	}, nil
}

// place pads fg bottom-center onto a canvas the size of bg and fills the
// empty pixels from bg.
func (p *Pipeline) place(fg image.Image, bg *image.NRGBA) (*image.NRGBA, error) {
	padded, err := imaging.Pad(fg, bg.Bounds().Dx(), bg.Bounds().Dy(), imaging.BottomCenter)
	if err != nil {
		return nil, err
	}
	return imaging.Composite(padded, bg)
}
