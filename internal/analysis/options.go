package analysis

import (
	"io"
	"log"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// DefaultTopColors is the number of colors reported when the caller does not ask
// for a specific count.
const DefaultTopColors = 5

// maxPaletteEntries is the largest palette an image.Paletted can index.
const maxPaletteEntries = 256

type options struct {
	resampler    imaging.Resampler
	quantizer    Quantizer
	maxDimension int
	dither       bool
	logger       *log.Logger
}

// Option configures dominant color extraction and Analyze.
type Option func(*options)

// WithResampler sets the resampler used to shrink the image before quantizing.
func WithResampler(r imaging.Resampler) Option {
	return func(o *options) {
		if r != nil {
			o.resampler = r
		}
	}
}

// WithQuantizer sets the palette quantizer.
func WithQuantizer(q Quantizer) Option {
	return func(o *options) {
		if q != nil {
			o.quantizer = q
		}
	}
}

// WithMaxDimension bounds the longer side of the image handed to the quantizer.
// Non-positive values keep the default of imaging.DefaultMaxDimension.
func WithMaxDimension(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDimension = n
		}
	}
}

// WithDither maps pixels to the palette with Floyd-Steinberg error diffusion
// instead of plain nearest-color assignment.
func WithDither(on bool) Option {
	return func(o *options) {
		o.dither = on
	}
}

// WithLogger receives debug traces of each extraction step.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		resampler:    imaging.BoxResampler{},
		quantizer:    MedianCutQuantizer{},
		maxDimension: imaging.DefaultMaxDimension,
		logger:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
