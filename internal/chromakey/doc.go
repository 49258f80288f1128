// Package chromakey separates a subject from a green-screen backdrop.
//
// Segmentation works in 8-bit HSV (hue 0-179, saturation and value 0-255):
// a pixel is backdrop when all three channels fall inside GreenBounds. The
// resulting mask drives two operations:
//
//   - RemoveBackground zeroes backdrop pixels, leaving the subject on black
//   - ForegroundBounds / CropForeground locate the largest non-backdrop
//     region and crop to its bounding box
//
// Black (0,0,0) is the "nothing here" marker understood by
// imaging.Composite, so a subject pixel that is already pure black will be
// treated as background when composited. This is a known limitation of the
// zero-pixel convention, not alpha compositing.
package chromakey
