// Package imaging provides the geometric and I/O building blocks of the
// chroma-key pipelines: loading and saving, aspect-preserving resize,
// padding onto a canvas, zero-pixel compositing and 2×2 tiling.
//
// # Buffers
//
// Every operation returns a fresh *image.NRGBA with bounds at the origin and
// alpha fixed at 255. Inputs are never modified. Use Normalize to bring an
// arbitrary decoded image into this form.
//
// # Coordinate System
//
// (0,0) is the top-left corner, X grows rightward and Y downward. Sizes are
// passed as width/height pairs except ResizeToFit, which takes height first.
//
// # Empty Pixels
//
// Pure black (0,0,0) means "no foreground here". Pad fills its canvas with
// it and Composite replaces it with the background. A genuinely black
// foreground pixel cannot be told apart from an empty one.
//
// # Error Handling
//
// Errors wrap one of ErrInvalidArgument, ErrShapeMismatch, ErrFileNotFound or
// ErrDecode; test them with errors.Is.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are pure.
package imaging
