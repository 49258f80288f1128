package colorspace

import (
	"fmt"
	"strings"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// ErrInvalidArgument is returned for unrecognized color space selectors.
var ErrInvalidArgument = imaging.ErrInvalidArgument

// Space identifies a target color space.
type Space int

const (
	XYZ Space = iota + 1
	LAB
	YCrCb
	HSB
	HSV
)

// Spaces lists every supported space in command-line order.
var Spaces = []Space{XYZ, LAB, YCrCb, HSB, HSV}

func (s Space) String() string {
	switch s {
	case XYZ:
		return "XYZ"
	case LAB:
		return "LAB"
	case YCrCb:
		return "YCRCB"
	case HSB:
		return "HSB"
	case HSV:
		return "HSV"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// Flag returns the command-line spelling, e.g. "-YCRCB".
func (s Space) Flag() string {
	return "-" + s.String()
}

// Flags lists the command-line spelling of every space in Spaces.
func Flags() []string {
	flags := make([]string, len(Spaces))
	for i, s := range Spaces {
		flags[i] = s.Flag()
	}
	return flags
}

// ChannelNames returns the channel labels in the order Convert emits them.
func (s Space) ChannelNames() [3]string {
	switch s {
	case XYZ:
		return [3]string{"X", "Y", "Z"}
	case LAB:
		return [3]string{"L", "a", "b"}
	case YCrCb:
		return [3]string{"Y", "Cr", "Cb"}
	case HSB:
		return [3]string{"H", "S", "B"}
	case HSV:
		return [3]string{"H", "S", "V"}
	}
	return [3]string{}
}

// IsHueBased reports whether the first channel is hue.
func (s Space) IsHueBased() bool {
	return s == HSB || s == HSV
}

// Parse maps a selector such as "-lab" or "YCrCb" to a Space. Matching is
// case-insensitive and the leading dash is optional.
func Parse(selector string) (Space, error) {
	name := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(selector), "-"))
	for _, s := range Spaces {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown color space %q (want one of %s)",
		ErrInvalidArgument, selector, strings.Join(Flags(), ", "))
}

// IsFlag reports whether arg is a recognized color space flag. Unlike Parse
// it requires the leading dash, which is how the command line tells a flag
// from a file name.
func IsFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := Parse(arg)
	return err == nil
}
