package analysis

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// DominantColorCounts extracts the dominant colors of an image and reports how
// many pixels of the downsampled image were assigned to each.
//
// Parameters:
//   - img: The source image. It is never modified.
//   - paletteSize: Maximum number of palette colors. Must be positive. Values
//     above 256 are capped at 256, the largest indexable palette.
//   - opts: Resampler, quantizer, dithering and logging overrides.
//
// Returns:
//   - []ColorCount: Palette colors ordered by assigned pixel count, most
//     frequent first. Palette entries no pixel was assigned to are omitted.
//     Equal counts keep palette order.
//   - error: Wraps ErrInvalidPaletteSize or ErrInvalidImage on bad input, or
//     the failure reported by a FallibleQuantizer.
//
// # Algorithm
//
//  1. Downsample so neither side exceeds the max dimension (100 by default),
//     keeping aspect ratio. This bounds the cost of quantizing.
//  2. Ask the quantizer for at most paletteSize colors.
//  3. Assign every downsampled pixel to its nearest palette color.
//  4. Count assignments per palette index and rank.
func DominantColorCounts(img *imaging.PixelImage, paletteSize int, opts ...Option) ([]ColorCount, error) {
	o := buildOptions(opts)

	if paletteSize <= 0 {
		return nil, fmt.Errorf("%w: palette size %d must be positive", ErrInvalidPaletteSize, paletteSize)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if img.Empty() {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if paletteSize > maxPaletteEntries {
		paletteSize = maxPaletteEntries
	}

	small := o.resampler.Downsample(img, o.maxDimension)
	bounds := small.Bounds()
	o.logger.Printf("downsampled %dx%d to %dx%d", img.Width, img.Height, bounds.Dx(), bounds.Dy())

	palette, err := quantizePalette(o.quantizer, paletteSize, small)
	if err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, errors.New("quantizer returned an empty palette")
	}
	if len(palette) > paletteSize {
		palette = palette[:paletteSize]
	}
	o.logger.Printf("quantized to %d palette colors", len(palette))

	paletted := image.NewPaletted(bounds, palette)
	var drawer draw.Drawer = draw.Src
	if o.dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(paletted, bounds, small, bounds.Min)

	return rankPalette(paletted), nil
}

// quantizePalette asks q for at most size colors, surfacing search failures of
// a FallibleQuantizer.
func quantizePalette(q Quantizer, size int, m image.Image) (color.Palette, error) {
	p := make(color.Palette, 0, size)
	if fq, ok := q.(FallibleQuantizer); ok {
		out, err := fq.QuantizeErr(p, m)
		if err != nil {
			return nil, fmt.Errorf("quantization failed: %w", err)
		}
		return out, nil
	}
	return q.Quantize(p, m), nil
}

// rankPalette counts how many pixels use each palette index and orders the
// used entries by that count.
func rankPalette(p *image.Paletted) []ColorCount {
	hits := make([]int, len(p.Palette))
	b := p.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := p.Pix[p.PixOffset(b.Min.X, y):p.PixOffset(b.Max.X, y)]
		for _, idx := range row {
			hits[idx]++
		}
	}

	ranked := make([]ColorCount, 0, len(hits))
	for i, n := range hits {
		if n == 0 {
			continue
		}
		ranked = append(ranked, ColorCount{Color: rgbFromColor(p.Palette[i]), Count: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// DominantColors returns up to paletteSize dominant colors of img, most
// dominant first. See DominantColorCounts for the algorithm and errors.
func DominantColors(img *imaging.PixelImage, paletteSize int, opts ...Option) ([]RGB, error) {
	counts, err := DominantColorCounts(img, paletteSize, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]RGB, len(counts))
	for i, cc := range counts {
		out[i] = cc.Color
	}
	return out, nil
}
