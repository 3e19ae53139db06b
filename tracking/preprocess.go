package tracking

import (
	"errors"
	"fmt"
)

// ErrFrameLayout is returned when a frame does not divide evenly into two
// halves of whole column buckets. It means the configured resolution does
// not match what the camera delivers.
var ErrFrameLayout = errors.New("tracking: frame does not fit the column layout")

// Profile holds one intensity value per column bucket of a frame half.
type Profile []byte

// NewProfile allocates a zeroed profile with n columns.
func NewProfile(n int) Profile {
	return make(Profile, n)
}

// Bucketing selects how pixels are assigned to column buckets.
type Bucketing string

const (
	// Cyclic assigns the k-th pixel of a half to bucket k mod N, ignoring
	// row boundaries. It is the default.
	Cyclic Bucketing = "cyclic"

	// Geometric assigns a pixel in column x to bucket x*N/width.
	Geometric Bucketing = "geometric"
)

// Valid reports whether b names a known strategy.
func (b Bucketing) Valid() bool {
	return b == Cyclic || b == Geometric
}

// Gray approximates luminance with 30/60/10 weights. Each channel is divided
// by 10 before weighting, in byte arithmetic, so the result is truncated
// twice. The weights sum to 10 and the result never exceeds 250.
func Gray(r, g, b byte) byte {
	return r/10*3 + g/10*6 + b/10*1
}

// ComputeColumnAverages fills top and bottom with the per-bucket average
// gray value of the first and second half of frame, using cyclic bucketing.
func ComputeColumnAverages(frame []byte, top, bottom Profile) error {
	half, err := splitHalves(frame, top, bottom)
	if err != nil {
		return err
	}
	if half%(3*len(top)) != 0 {
		return fmt.Errorf("%w: half of %d bytes is not divisible into %d RGB buckets",
			ErrFrameLayout, half, len(top))
	}
	averageCyclic(frame[:half], top)
	averageCyclic(frame[half:], bottom)
	return nil
}

// ComputeColumnAveragesGeometric is ComputeColumnAverages with buckets taken
// from each pixel's x coordinate in a frame that is width pixels wide.
func ComputeColumnAveragesGeometric(frame []byte, width int, top, bottom Profile) error {
	half, err := splitHalves(frame, top, bottom)
	if err != nil {
		return err
	}
	if width < len(top) {
		return fmt.Errorf("%w: width %d is narrower than %d buckets", ErrFrameLayout, width, len(top))
	}
	if half%(3*width) != 0 {
		return fmt.Errorf("%w: half of %d bytes is not whole rows of %d pixels",
			ErrFrameLayout, half, width)
	}
	averageGeometric(frame[:half], width, top)
	averageGeometric(frame[half:], width, bottom)
	return nil
}

func splitHalves(frame []byte, top, bottom Profile) (int, error) {
	if len(top) == 0 || len(top) != len(bottom) {
		return 0, fmt.Errorf("%w: profiles have %d and %d columns", ErrFrameLayout, len(top), len(bottom))
	}
	if len(frame) == 0 || len(frame)%2 != 0 {
		return 0, fmt.Errorf("%w: frame of %d bytes has no even split", ErrFrameLayout, len(frame))
	}
	return len(frame) / 2, nil
}

func averageCyclic(half []byte, out Profile) {
	n := len(out)
	perBucket := float64(len(half) / 3 / n)

	sums := make([]float64, n)
	bucket := 0
	for i := 0; i+2 < len(half); i += 3 {
		sums[bucket] += float64(Gray(half[i], half[i+1], half[i+2])) / perBucket
		bucket++
		if bucket == n {
			bucket = 0
		}
	}
	// Each sum is a whole multiple of 1/perBucket; half a step absorbs the
	// float drift that would otherwise truncate exact integers one level low.
	nudge := 0.5 / perBucket
	for i, s := range sums {
		out[i] = byte(s + nudge)
	}
}

func averageGeometric(half []byte, width int, out Profile) {
	n := len(out)
	sums := make([]int, n)
	counts := make([]int, n)
	for p := 0; p*3+2 < len(half); p++ {
		b := (p % width) * n / width
		i := p * 3
		sums[b] += int(Gray(half[i], half[i+1], half[i+2]))
		counts[b]++
	}
	for i := range out {
		out[i] = byte(sums[i] / counts[i])
	}
}
