package treemap

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHexColor is returned by ParseHex when the input is not a
// 7-character #rrggbb string.
var ErrInvalidHexColor = errors.New("invalid hex color")

// RGB is a colour with 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r" bson:"r"`
	G uint8 `json:"g" bson:"g"`
	B uint8 `json:"b" bson:"b"`
}

// Hex formats the colour as a 7-character HTML hex string "#rrggbb".
// The channels are packed into the low 24 bits, a marker bit is OR-ed in to
// force a fixed-width render, and the marker's leading digit is dropped.
func (c RGB) Hex() string {
	packed := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
	return "#" + strconv.FormatInt(packed&0xffffff|0x1000000, 16)[1:]
}

// ParseHex parses a "#rrggbb" string into an RGB colour.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// FromHSB derives a colour from hue, saturation and brightness. Hue is a
// fraction that wraps around the colour wheel (1.2 and 0.2 are the same
// hue); saturation and brightness are in [0,1].
func FromHSB(hue, saturation, brightness float64) RGB {
	hue -= math.Floor(hue)
	r, g, b := colorful.Hsv(hue*360, saturation, brightness).RGB255()
	return RGB{R: r, G: g, B: b}
}
