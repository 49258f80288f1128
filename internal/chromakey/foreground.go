package chromakey

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// ErrEmptyForeground is returned when the reference image contains no
// non-backdrop pixels.
var ErrEmptyForeground = errors.New("empty foreground")

// region is one external contour: the start pixel its border is traced
// from, the area enclosed by that border and its bounding box.
type region struct {
	start  image.Point
	area   float64
	bounds image.Rectangle
}

// ForegroundBounds returns the bounding box of the non-backdrop region of
// reference whose outer contour encloses the largest area.
//
// # Algorithm
//
//  1. Segment the reference and invert the mask (foreground = not green)
//  2. Flood the backdrop from the image border (4-connected) to find what lies
//     outside every region; backdrop pockets that are not reached are holes
//  3. Label 8-connected components of foreground-plus-holes. Each component
//     owns exactly one outer contour, so blobs nested inside a hole are
//     absorbed by their enclosing region
//  4. Trace each outer contour clockwise through the foreground pixel centers
//     and measure the polygon with the shoelace formula. A one-pixel-wide
//     streak encloses nothing, however long it is
//  5. Pick the largest area; ties go to the region found first in row-major
//     order
func ForegroundBounds(reference image.Image, b GreenBounds) (image.Rectangle, error) {
	mask := Segment(reference, b)
	w, h := mask.Rect.Dx(), mask.Rect.Dy()

	fg := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := mask.Pix[mask.PixOffset(mask.Rect.Min.X, mask.Rect.Min.Y+y):]
		for x := 0; x < w; x++ {
			fg[y*w+x] = row[x] == 0
		}
	}

	regions := findRegions(fillHoles(fg, w, h), w, h)
	if len(regions) == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: no non-green region in %dx%d image", ErrEmptyForeground, w, h)
	}

	best := -1
	for i := range regions {
		regions[i].area = polygonArea(traceBoundary(fg, w, h, regions[i].start))
		if best < 0 || regions[i].area > regions[best].area {
			best = i
		}
	}
	return regions[best].bounds, nil
}

// CropForeground crops payload to the largest non-backdrop region found in
// reference. The two images must have identical dimensions; typically
// reference is the raw green-screen photo and payload the same photo after
// RemoveBackground.
func CropForeground(reference, payload image.Image) (*image.NRGBA, error) {
	rb, pb := reference.Bounds(), payload.Bounds()
	if rb.Dx() != pb.Dx() || rb.Dy() != pb.Dy() {
		return nil, fmt.Errorf("%w: reference %dx%d, payload %dx%d",
			imaging.ErrShapeMismatch, rb.Dx(), rb.Dy(), pb.Dx(), pb.Dy())
	}

	box, err := ForegroundBounds(reference, DefaultGreenBounds)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(payload, box.Add(pb.Min))
}

// fillHoles returns a row-major grid that is true for foreground pixels and
// for backdrop pixels enclosed by foreground.
func fillHoles(fg []bool, w, h int) []bool {
	outside := make([]bool, w*h)
	stack := make([]image.Point, 0, 2*(w+h))
	push := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		if outside[y*w+x] || fg[y*w+x] {
			return
		}
		outside[y*w+x] = true
		stack = append(stack, image.Pt(x, y))
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// 4-connected, the dual of the 8-connected foreground
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	filled := make([]bool, w*h)
	for i := range filled {
		filled[i] = !outside[i]
	}
	return filled
}

// findRegions labels 8-connected components of grid in row-major order.
func findRegions(grid []bool, w, h int) []region {
	visited := make([]bool, w*h)
	regions := make([]region, 0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if grid[y*w+x] && !visited[y*w+x] {
				regions = append(regions, floodFill(grid, visited, x, y, w, h))
			}
		}
	}
	return regions
}

func floodFill(grid, visited []bool, startX, startY, w, h int) region {
	minX, minY, maxX, maxY := startX, startY, startX, startY
	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		i := p.Y*w + p.X
		if visited[i] || !grid[i] {
			continue
		}
		visited[i] = true

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		for _, n := range neighbors {
			stack = append(stack, p.Add(n))
		}
	}

	return region{
		start:  image.Pt(startX, startY),
		bounds: image.Rect(minX, minY, maxX+1, maxY+1),
	}
}

// neighbors lists the 8-neighborhood clockwise (y grows downward), starting
// west.
var neighbors = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func neighborIndex(d image.Point) int {
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return 0
}

// traceBoundary follows the outer border of the 8-connected foreground
// component containing start, clockwise, using Moore-neighbor tracing. start
// must be the component's top-most, left-most pixel so that its west
// neighbor is background. The returned path ends back at start.
func traceBoundary(fg []bool, w, h int, start image.Point) []image.Point {
	inside := func(p image.Point) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h && fg[p.Y*w+p.X]
	}

	contour := []image.Point{start}
	cur, back := start, 0
	var first image.Point

	// each border pixel is entered at most four times
	for steps := 0; steps < 4*len(fg)+8; steps++ {
		dir := -1
		for k := 1; k <= 8; k++ {
			if d := (back + k) % 8; inside(cur.Add(neighbors[d])) {
				dir = d
				break
			}
		}
		if dir < 0 {
			break // isolated pixel
		}
		next := cur.Add(neighbors[dir])

		if cur == start {
			if len(contour) == 1 {
				first = next
			} else if next == first {
				break
			}
		}

		// the last background pixel examined becomes the new backtrack
		prev := cur.Add(neighbors[(dir+7)%8])
		back = neighborIndex(prev.Sub(next))
		cur = next
		contour = append(contour, cur)
	}
	return contour
}

// polygonArea returns the area enclosed by a closed pixel path, measured
// through the pixel centers with the shoelace formula.
func polygonArea(path []image.Point) float64 {
	sum := 0
	for i, p := range path {
		q := path[(i+1)%len(path)]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}
