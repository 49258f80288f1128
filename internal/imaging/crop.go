package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ImageResult carries a pipeline output encoded for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	OutputPath  string `json:"output_path,omitempty"`
}

// EncodeImage renders img as a base64 PNG result.
func EncodeImage(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts region r from img. The region must be non-empty and lie
// inside the image bounds.
func Crop(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !r.In(bounds) {
		return nil, fmt.Errorf("%w: crop region %v outside image bounds %v", ErrInvalidArgument, r, bounds)
	}
	if r.Empty() {
		return nil, fmt.Errorf("%w: empty crop region %v", ErrInvalidArgument, r)
	}

	return imaging.Crop(img, r), nil
}
