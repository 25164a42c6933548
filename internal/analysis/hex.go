package analysis

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color triple. Channels are plain ints so that values read from an
// unchecked pixel buffer can be carried around and rejected at encoding time.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// rgbFromColor converts any color.Color to its 8-bit RGB triple.
func rgbFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: int(n.R), G: int(n.G), B: int(n.B)}
}

// ToHex encodes a color as "#rrggbb".
//
// The three channel values are concatenated as bytes in R, G, B order and
// rendered as six lowercase hex digits. Any channel outside [0,255] yields a
// *ChannelRangeError.
func ToHex(c RGB) (string, error) {
	b := make([]byte, 3)
	for i, ch := range []struct {
		name  string
		value int
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if ch.value < 0 || ch.value > 255 {
			return "", &ChannelRangeError{Channel: ch.name, Value: ch.value}
		}
		b[i] = byte(ch.value)
	}
	return "#" + hex.EncodeToString(b), nil
}

// ToHexList encodes every color in order. It stops at the first invalid color.
func ToHexList(colors []RGB) ([]string, error) {
	out := make([]string, 0, len(colors))
	for i, c := range colors {
		h, err := ToHex(c)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// ParseHex decodes a "#rrggbb" string. Hex digits may be upper or lower case.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex color %q: want #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorInfo is a color in the representations the tool server reports.
type ColorInfo struct {
	Hex string   `json:"hex"`
	RGB RGB      `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// Describe returns hex, RGB and HSL forms of c.
func Describe(c RGB) (*ColorInfo, error) {
	h, err := ToHex(c)
	if err != nil {
		return nil, err
	}
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	hue, sat, light := cf.Hsl()
	if math.IsNaN(hue) {
		hue = 0
	}
	return &ColorInfo{
		Hex: h,
		RGB: c,
		HSL: HSLColor{
			H: int(math.Round(hue)) % 360,
			S: int(math.Round(sat * 100)),
			L: int(math.Round(light * 100)),
		},
	}, nil
}
