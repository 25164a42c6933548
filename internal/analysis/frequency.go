package analysis

import (
	"fmt"
	"sort"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// ColorCount pairs a color with the number of pixels that have it.
type ColorCount struct {
	Color RGB `json:"rgb"`
	Count int `json:"count"`
}

// CountColors tallies every distinct pixel color and returns them ranked by
// count, most frequent first.
//
// Pixels are visited in row-major order. Colors with equal counts keep the
// order in which they were first seen, so the result is reproducible for a
// given image. A nil or empty image yields an empty list.
func CountColors(img *imaging.PixelImage) []ColorCount {
	if img == nil || img.Empty() {
		return []ColorCount{}
	}

	index := make(map[RGB]int)
	var counts []ColorCount
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.Pixel(x, y)
			c := RGB{R: r, G: g, B: b}
			i, ok := index[c]
			if !ok {
				i = len(counts)
				index[c] = i
				counts = append(counts, ColorCount{Color: c})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// CountTopColors returns the k most frequent exact pixel colors.
//
// The result has min(k, distinct colors) entries ordered as CountColors
// orders them. k == 0 yields an empty list; negative k is rejected with
// ErrInvalidPaletteSize.
func CountTopColors(img *imaging.PixelImage, k int) ([]RGB, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: top color count %d is negative", ErrInvalidPaletteSize, k)
	}

	counts := CountColors(img)
	if len(counts) > k {
		counts = counts[:k]
	}

	out := make([]RGB, len(counts))
	for i, cc := range counts {
		out[i] = cc.Color
	}
	return out, nil
}
