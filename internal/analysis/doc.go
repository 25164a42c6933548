// Package analysis ranks the colors of an image in two ways.
//
// Exact frequency (CountTopColors) counts every literal RGB triple and returns
// the most common ones. Dominant colors (DominantColors) shrink the image,
// reduce it to a small palette with a Quantizer, and rank palette entries by
// how many pixels were assigned to them. Analyze runs both and hex-encodes the
// results.
//
// # Ordering
//
// Both rankings are by descending count. Exact colors with equal counts keep
// the order in which they were first seen in a row-major scan. Palette colors
// with equal counts keep palette order.
//
// # Quantizers
//
// MedianCutQuantizer is the default and is deterministic. KMeansQuantizer,
// WeightedQuantizer and ProminentQuantizer are available through WithQuantizer
// or QuantizerByName ("kmeans", "weighted", "prominent"). Any
// image/draw.Quantizer also satisfies Quantizer. Quantizers that can fail
// implement FallibleQuantizer so the cause reaches the caller.
//
// # Errors
//
// Invalid input is reported by wrapping ErrInvalidImage, ErrInvalidPaletteSize
// or ErrChannelRange. Analyze wraps failures in *StageError.
package analysis
