package pipeline

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/chromakey-mcp/internal/colorspace"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// Layout returns the labels of the four Decompose tiles in row-major order.
//
// The order is [original, c1, c2, c3] except for the hue-based spaces, which
// use [original, value, hue, saturation] so the brightness channel sits next
// to the photo.
func Layout(space colorspace.Space) [4]string {
	n := space.ChannelNames()
	if space.IsHueBased() {
		return [4]string{"original", n[2], n[0], n[1]}
	}
	return [4]string{"original", n[0], n[1], n[2]}
}

// Decompose converts img into space and tiles the original with its three
// channels in the order given by Layout.
func (p *Pipeline) Decompose(img image.Image, space colorspace.Space) (*image.NRGBA, error) {
	src := imaging.Normalize(img)
	p.stage("decompose input", src)

	ch, err := colorspace.Convert(src, space)
	if err != nil {
		return nil, err
	}

	tiles := [4]image.Image{src, ch.C1, ch.C2, ch.C3}
	if space.IsHueBased() {
		tiles = [4]image.Image{src, ch.C3, ch.C1, ch.C2}
	}

	view, err := imaging.Combine(tiles[0], tiles[1], tiles[2], tiles[3])
	if err != nil {
		return nil, fmt.Errorf("failed to tile %s channels: %w", space, err)
	}

	layout := Layout(space)
	p.logger.Printf("%s tiles: %s", space, strings.Join(layout[:], ", "))
	p.stage("decompose view", view)
	return view, nil
}
