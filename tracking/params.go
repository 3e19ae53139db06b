package tracking

import (
	"fmt"
	"time"
)

// Params configures calibration and the capture loop.
type Params struct {
	// Columns is the number of buckets per profile.
	Columns int

	// Bucketing picks the pixel-to-bucket strategy. FrameWidth is only read
	// by Geometric.
	Bucketing  Bucketing
	FrameWidth int

	// CalibrationSamples is how many empty-scene frames measure noise.
	CalibrationSamples int

	// NoiseFloor is the lowest threshold calibration may produce.
	NoiseFloor byte

	// WindowWidth is the width positions are rescaled to.
	WindowWidth int

	// CaptureRetries is how many failed captures in a row the loop absorbs
	// before giving up. Zero aborts on the first failure.
	CaptureRetries int

	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration
}

// DefaultParams returns 64 cyclic columns over a 1280 pixel frame.
func DefaultParams() Params {
	return Params{
		Columns:            64,
		Bucketing:          Cyclic,
		FrameWidth:         1280,
		CalibrationSamples: 3,
		NoiseFloor:         10,
		WindowWidth:        500,
		CaptureRetries:     0,
		RetryBackoff:       100 * time.Millisecond,
	}
}

// Validate checks the parameters are consistent.
func (p Params) Validate() error {
	if p.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", p.Columns)
	}
	if !p.Bucketing.Valid() {
		return fmt.Errorf("unknown bucketing %q", p.Bucketing)
	}
	if p.Bucketing == Geometric && p.FrameWidth < p.Columns {
		return fmt.Errorf("frame width %d is narrower than %d columns", p.FrameWidth, p.Columns)
	}
	if p.CalibrationSamples < 0 {
		return fmt.Errorf("calibration samples must be non-negative, got %d", p.CalibrationSamples)
	}
	if p.WindowWidth <= 0 {
		return fmt.Errorf("window width must be positive, got %d", p.WindowWidth)
	}
	if p.CaptureRetries < 0 {
		return fmt.Errorf("capture retries must be non-negative, got %d", p.CaptureRetries)
	}
	if p.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff must be non-negative, got %v", p.RetryBackoff)
	}
	return nil
}

func (p Params) averager() func(frame []byte, top, bottom Profile) error {
	if p.Bucketing == Geometric {
		width := p.FrameWidth
		return func(frame []byte, top, bottom Profile) error {
			return ComputeColumnAveragesGeometric(frame, width, top, bottom)
		}
	}
	return ComputeColumnAverages
}

// ColumnAverages fills top and bottom from frame with the configured
// bucketing.
func (p Params) ColumnAverages(frame []byte, top, bottom Profile) error {
	return p.averager()(frame, top, bottom)
}
