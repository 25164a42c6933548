package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of color channels every PixelImage carries (R, G, B).
const Channels = 3

// ErrInvalidImage reports an image with zero width or height, or with a pixel
// that does not carry exactly three channels.
var ErrInvalidImage = errors.New("invalid image")

// PixelImage is an immutable height x width x 3 buffer of integer channel values.
//
// Pixels are stored row-major: the channels of pixel (x, y) start at
// Pix[(y*Width+x)*3]. Values are nominally in [0,255]; nothing in this package
// rejects values outside that range, so the hex encoder is the place where an
// out-of-range channel surfaces as an error.
//
// PixelImage implements image.Image so it can be handed straight to resamplers
// and quantizers. At clamps each channel into [0,255] and reports an opaque color.
type PixelImage struct {
	Width  int
	Height int
	Pix    []int
}

// New returns a black PixelImage of the given size. Zero dimensions are allowed;
// negative dimensions are clamped to zero.
func New(width, height int) *PixelImage {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelImage{
		Width:  width,
		Height: height,
		Pix:    make([]int, width*height*Channels),
	}
}

// FromArray builds a PixelImage from a [row][column][channel] array.
//
// Every row must have the same length and every pixel exactly three channels;
// otherwise the returned error wraps ErrInvalidImage. An empty array yields a
// 0x0 image.
func FromArray(rows [][][]int) (*PixelImage, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	img := New(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidImage, y, len(row), width)
		}
		for x, px := range row {
			if len(px) != Channels {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d channels, want %d", ErrInvalidImage, x, y, len(px), Channels)
			}
			copy(img.Pix[(y*width+x)*Channels:], px)
		}
	}
	return img, nil
}

// FromImage converts any decoded image into a PixelImage, discarding alpha.
//
// Channel values are the 8-bit non-premultiplied components, so a
// semi-transparent pixel keeps its color rather than being darkened.
func FromImage(src image.Image) *PixelImage {
	b := src.Bounds()
	img := New(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			img.Pix[i] = int(c.R)
			img.Pix[i+1] = int(c.G)
			img.Pix[i+2] = int(c.B)
			i += Channels
		}
	}
	return img
}

// Empty reports whether the image has zero area.
func (p *PixelImage) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

// Pixel returns the raw channel values at (x, y).
func (p *PixelImage) Pixel(x, y int) (r, g, b int) {
	i := (y*p.Width + x) * Channels
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// Set writes the channel values at (x, y). It exists for building images;
// analysis code never calls it.
func (p *PixelImage) Set(x, y, r, g, b int) {
	i := (y*p.Width + x) * Channels
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
}

// ColorModel implements image.Image.
func (p *PixelImage) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *PixelImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At implements image.Image.
func (p *PixelImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return color.RGBA{}
	}
	r, g, b := p.Pixel(x, y)
	return color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255}
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
