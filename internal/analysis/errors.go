package analysis

import (
	"errors"
	"fmt"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

var (
	// ErrInvalidImage reports a zero-area image or one whose pixels do not
	// carry exactly three channels. It is the same value as imaging.ErrInvalidImage.
	ErrInvalidImage = imaging.ErrInvalidImage

	// ErrInvalidPaletteSize reports a non-positive palette size or a negative
	// top-K count.
	ErrInvalidPaletteSize = errors.New("invalid palette size")

	// ErrChannelRange reports a channel value outside [0,255] during hex encoding.
	ErrChannelRange = errors.New("channel value out of range")
)

// ChannelRangeError describes the channel that could not be hex-encoded.
// It matches ErrChannelRange under errors.Is.
type ChannelRangeError struct {
	Channel string // "red", "green" or "blue"
	Value   int
}

func (e *ChannelRangeError) Error() string {
	return fmt.Sprintf("%s channel value %d outside [0,255]", e.Channel, e.Value)
}

// Is makes errors.Is(err, ErrChannelRange) hold for any *ChannelRangeError.
func (e *ChannelRangeError) Is(target error) bool {
	return target == ErrChannelRange
}

// Stages reported by StageError.
const (
	StageExactFrequency      = "exact-frequency"
	StagePaletteQuantization = "palette-quantization"
)

// StageError annotates a failure from Analyze with the stage that produced it.
// The wrapped error is still reachable through errors.Is and errors.As.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
