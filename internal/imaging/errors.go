package imaging

import "errors"

// Error kinds shared by the pipeline packages. Callers classify failures with
// errors.Is; every error returned by this module wraps one of these.
var (
	// ErrInvalidArgument reports an out-of-range parameter: an unknown color
	// space selector, a non-positive target size, an offset outside [0,1].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrShapeMismatch reports images whose dimensions cannot be combined
	// without an implicit resize.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrFileNotFound reports a missing input file.
	ErrFileNotFound = errors.New("file not found")

	// ErrDecode reports an input file that is not a supported image.
	ErrDecode = errors.New("decode error")
)
