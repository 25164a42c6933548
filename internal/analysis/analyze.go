package analysis

import (
	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// Result holds both color rankings of an image as "#rrggbb" strings, most
// frequent first.
type Result struct {
	// Exact lists the most frequent literal pixel colors.
	Exact []string `json:"exact"`

	// Dominant lists the most used palette colors after quantization.
	Dominant []string `json:"dominant"`
}

// Analyzer runs exact frequency counting and dominant color extraction with a
// fixed set of options. An Analyzer holds no per-call state and is safe for
// concurrent use as long as each call gets its own image.
type Analyzer struct {
	opts []Option
}

// NewAnalyzer returns an Analyzer that applies opts to every dominant color
// extraction.
func NewAnalyzer(opts ...Option) *Analyzer {
	return &Analyzer{opts: opts}
}

// TopColors returns the k most frequent exact colors of img as hex strings.
func (a *Analyzer) TopColors(img *imaging.PixelImage, k int) ([]string, error) {
	if img == nil {
		return nil, &StageError{Stage: StageExactFrequency, Err: ErrInvalidImage}
	}
	colors, err := CountTopColors(img, k)
	if err != nil {
		return nil, &StageError{Stage: StageExactFrequency, Err: err}
	}
	hexes, err := ToHexList(colors)
	if err != nil {
		return nil, &StageError{Stage: StageExactFrequency, Err: err}
	}
	return hexes, nil
}

// Dominant returns up to k dominant palette colors of img as hex strings.
func (a *Analyzer) Dominant(img *imaging.PixelImage, k int) ([]string, error) {
	colors, err := DominantColors(img, k, a.opts...)
	if err != nil {
		return nil, &StageError{Stage: StagePaletteQuantization, Err: err}
	}
	hexes, err := ToHexList(colors)
	if err != nil {
		return nil, &StageError{Stage: StagePaletteQuantization, Err: err}
	}
	return hexes, nil
}

// Analyze computes both rankings of img with k colors each.
//
// Exact frequency runs first. Any failure is returned as a *StageError naming
// the stage that produced it; the underlying error stays reachable with
// errors.Is and errors.As. Calling Analyze twice on the same image returns the
// same result as long as the quantizer is deterministic.
func (a *Analyzer) Analyze(img *imaging.PixelImage, k int) (*Result, error) {
	exact, err := a.TopColors(img, k)
	if err != nil {
		return nil, err
	}
	dominant, err := a.Dominant(img, k)
	if err != nil {
		return nil, err
	}
	return &Result{Exact: exact, Dominant: dominant}, nil
}

// Analyze is shorthand for NewAnalyzer(opts...).Analyze(img, k).
func Analyze(img *imaging.PixelImage, k int, opts ...Option) (*Result, error) {
	return NewAnalyzer(opts...).Analyze(img, k)
}
