// Package pipeline wires the color space, chroma-key and imaging stages into
// the two end-to-end tasks:
//
//   - Decompose: show an image next to its three channels in another color space
//   - Composite: lift a subject off a green screen and place it on a scenic photo
//
// Both return a single 2×2 view no larger than 1280×720 (unless
// CompositeOptions.MatchScenicSize asks for the scenic photo's size).
// Runs are independent and share no state, so a Pipeline may be used from
// several goroutines.
package pipeline
