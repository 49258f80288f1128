package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Combine tiles four images into a 2×2 grid:
//
//	topLeft    | topRight
//	-----------+------------
//	bottomLeft | bottomRight
//
// Images sharing a row must have equal heights and both rows must have equal
// total widths; nothing is resized to make them fit. When the grid exceeds
// MaxTileWidth×MaxTileHeight it is scaled down with ResizeToFit.
func Combine(topLeft, topRight, bottomLeft, bottomRight image.Image) (*image.NRGBA, error) {
	tl, tr := topLeft.Bounds(), topRight.Bounds()
	bl, br := bottomLeft.Bounds(), bottomRight.Bounds()

	if tl.Dy() != tr.Dy() {
		return nil, fmt.Errorf("%w: top row heights %d and %d differ", ErrShapeMismatch, tl.Dy(), tr.Dy())
	}
	if bl.Dy() != br.Dy() {
		return nil, fmt.Errorf("%w: bottom row heights %d and %d differ", ErrShapeMismatch, bl.Dy(), br.Dy())
	}

	topW := tl.Dx() + tr.Dx()
	bottomW := bl.Dx() + br.Dx()
	if topW != bottomW {
		return nil, fmt.Errorf("%w: row widths %d and %d differ", ErrShapeMismatch, topW, bottomW)
	}

	width, height := topW, tl.Dy()+bl.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty tile grid", ErrShapeMismatch)
	}

	grid := imaging.New(width, height, color.NRGBA{0, 0, 0, 0xff})
	grid = imaging.Paste(grid, topLeft, image.Pt(0, 0))
	grid = imaging.Paste(grid, topRight, image.Pt(tl.Dx(), 0))
	grid = imaging.Paste(grid, bottomLeft, image.Pt(0, tl.Dy()))
	grid = imaging.Paste(grid, bottomRight, image.Pt(bl.Dx(), tl.Dy()))

	if width > MaxTileWidth || height > MaxTileHeight {
		return ResizeToFit(grid, MaxTileHeight, MaxTileWidth)
	}
	return grid, nil
}
