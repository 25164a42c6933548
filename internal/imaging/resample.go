package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension bounds both sides of the image handed to the quantizer.
const DefaultMaxDimension = 100

// Resampler shrinks an image so that neither side exceeds maxDim pixels while
// keeping the aspect ratio. Images that already fit are returned as a copy at
// their original size; they are never upscaled. The source is not modified.
type Resampler interface {
	Downsample(img image.Image, maxDim int) image.Image
}

// BoxResampler downsamples with a box filter. Each output pixel is the average
// of the source pixels it covers, which keeps the color balance of the image
// but introduces blended colors along edges.
type BoxResampler struct{}

// Downsample implements Resampler using imaging.Fit.
func (BoxResampler) Downsample(img image.Image, maxDim int) image.Image {
	return imaging.Fit(img, maxDim, maxDim, imaging.Box)
}

// NearestResampler downsamples by nearest-neighbor sampling. Output pixels are
// always colors present in the source.
type NearestResampler struct{}

// Downsample implements Resampler using bild's transform.Resize.
func (NearestResampler) Downsample(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(img)
	}
	return transform.Resize(img, w, h, transform.NearestNeighbor)
}

// FitSize returns the largest size with the same aspect ratio as width x height
// whose sides do not exceed maxDim. Sizes that already fit are returned
// unchanged. A non-zero side never shrinks below one pixel.
func FitSize(width, height, maxDim int) (int, int) {
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		h := height * maxDim / width
		if h < 1 && height > 0 {
			h = 1
		}
		return maxDim, h
	}
	w := width * maxDim / height
	if w < 1 && width > 0 {
		w = 1
	}
	return w, maxDim
}

// Resampler names accepted by ResamplerByName.
const (
	ResamplerBox     = "box"
	ResamplerNearest = "nearest"
)

// ResamplerByName returns the resampler registered under name. An empty name
// selects the box resampler.
func ResamplerByName(name string) (Resampler, error) {
	switch name {
	case "", ResamplerBox:
		return BoxResampler{}, nil
	case ResamplerNearest:
		return NearestResampler{}, nil
	default:
		return nil, fmt.Errorf("unknown resampler: %s", name)
	}
}
