// Package colorspace splits an image into the channels of an alternate color
// space and renders each channel as a grayscale image.
//
// Supported spaces are CIE XYZ, CIE L*a*b*, YCrCb and HSB (an alias of HSV).
// Every conversion produces 8-bit channels in the conventional machine-vision
// encoding:
//
//   - XYZ: sRGB/D65 matrix applied to the gamma-encoded values, scaled to 0-255
//   - LAB: L scaled to 0-255, a and b offset by 128
//   - YCrCb: full-range BT.601 with chroma offset 128
//   - HSV: hue in degrees/2 (0-179), saturation and value 0-255
//
// Channels that do not already cover 0-255 are stretched so each grayscale
// tile uses the full range: a and b of LAB map 1-255 onto 0-255 and HSV hue
// maps 0-179 onto 0-255.
package colorspace
