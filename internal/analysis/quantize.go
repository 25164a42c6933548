package analysis

import (
	"fmt"
	"image"
	"image/color"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Quantizer picks a reduced palette for an image. It has the same method set
// as image/draw.Quantizer: Quantize appends up to cap(p)-len(p) colors to p
// and returns the result.
type Quantizer interface {
	Quantize(p color.Palette, m image.Image) color.Palette
}

// FallibleQuantizer is a Quantizer whose palette search can fail.
// DominantColorCounts calls QuantizeErr when a quantizer provides it and
// returns the failure instead of reporting an empty palette.
type FallibleQuantizer interface {
	Quantizer
	QuantizeErr(p color.Palette, m image.Image) (color.Palette, error)
}

// distinctColors collects the opaque colors of m in row-major first-seen order.
// It gives up and returns false once more than limit colors have been seen.
func distinctColors(m image.Image, limit int) ([]color.RGBA, bool) {
	b := m.Bounds()
	seen := make(map[color.RGBA]struct{}, limit+1)
	var out []color.RGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := opaque(m.At(x, y))
			if _, ok := seen[c]; ok {
				continue
			}
			if len(out) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, true
}

func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

// appendExact appends the image's own colors to p when they fit in the
// remaining palette capacity. Quantizing such an image is lossless.
func appendExact(p color.Palette, m image.Image) (color.Palette, bool) {
	colors, ok := distinctColors(m, cap(p)-len(p))
	if !ok {
		return p, false
	}
	for _, c := range colors {
		p = append(p, c)
	}
	return p, true
}

// MedianCutQuantizer splits the color space into boxes along the widest
// channel at the weighted median until the palette is full, and uses the mean
// color of each box. It is deterministic.
type MedianCutQuantizer struct{}

// Quantize implements Quantizer.
func (MedianCutQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	if out, ok := appendExact(p, m); ok {
		return out
	}
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	return q.Quantize(p, m)
}

// KMeansQuantizer clusters pixel colors with k-means in RGB space and uses the
// cluster centers as the palette. Initial centers are chosen at random, so two
// runs over the same image may return slightly different palettes.
type KMeansQuantizer struct{}

// Quantize implements Quantizer. Clustering failures leave p unchanged; use
// QuantizeErr to see them.
func (q KMeansQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	out, _ := q.QuantizeErr(p, m)
	return out
}

// QuantizeErr implements FallibleQuantizer.
func (KMeansQuantizer) QuantizeErr(p color.Palette, m image.Image) (color.Palette, error) {
	if out, ok := appendExact(p, m); ok {
		return out, nil
	}

	b := m.Bounds()
	dataset := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := opaque(m.At(x, y))
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}

	k := cap(p) - len(p)
	if k > len(dataset) {
		k = len(dataset)
	}
	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return p, fmt.Errorf("k-means partition into %d clusters: %w", k, err)
	}
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		r, g, bl := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped().RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: bl, A: 255})
	}
	return p, nil
}

// WeightedQuantizer uses the weighted dominant-color search from
// cenkalti/dominantcolor, which favors colors covering large areas.
type WeightedQuantizer struct{}

// Quantize implements Quantizer.
func (WeightedQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	if out, ok := appendExact(p, m); ok {
		return out
	}
	for _, c := range dominantcolor.FindWeight(m, cap(p)-len(p)) {
		if len(p) == cap(p) {
			break
		}
		p = append(p, opaque(c.RGBA))
	}
	return p
}

// ProminentQuantizer runs the k-means++ search from EdlinOrg/prominentcolor
// without cropping or background masks. Clusters come back largest first.
type ProminentQuantizer struct{}

// Quantize implements Quantizer. Search failures leave p unchanged; use
// QuantizeErr to see them.
func (q ProminentQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	out, _ := q.QuantizeErr(p, m)
	return out
}

// QuantizeErr implements FallibleQuantizer.
func (ProminentQuantizer) QuantizeErr(p color.Palette, m image.Image) (color.Palette, error) {
	if out, ok := appendExact(p, m); ok {
		return out, nil
	}
	items, err := prominentcolor.KmeansWithAll(cap(p)-len(p), m, prominentcolor.ArgumentNoCropping,
		uint(prominentcolor.DefaultSize), []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return p, fmt.Errorf("prominent color search: %w", err)
	}
	for _, it := range items {
		if len(p) == cap(p) {
			break
		}
		p = append(p, color.RGBA{R: uint8(it.Color.R), G: uint8(it.Color.G), B: uint8(it.Color.B), A: 255})
	}
	return p, nil
}

// Quantizer names accepted by QuantizerByName.
const (
	QuantizerMedianCut = "median-cut"
	QuantizerKMeans    = "kmeans"
	QuantizerWeighted  = "weighted"
	QuantizerProminent = "prominent"
)

// QuantizerByName returns the quantizer registered under name. An empty name
// selects median cut.
func QuantizerByName(name string) (Quantizer, error) {
	switch name {
	case "", QuantizerMedianCut:
		return MedianCutQuantizer{}, nil
	case QuantizerKMeans:
		return KMeansQuantizer{}, nil
	case QuantizerWeighted:
		return WeightedQuantizer{}, nil
	case QuantizerProminent:
		return ProminentQuantizer{}, nil
	default:
		return nil, fmt.Errorf("unknown quantizer: %s", name)
	}
}
