package tracking

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/jtestard/campong/internal/monitoring"
)

// Capturer yields RGB24 frames. camera.Device satisfies it.
type Capturer interface {
	Capture() ([]byte, error)
}

// Background is the empty-scene profile of one frame half and the average
// distance below which a live profile counts as unchanged.
type Background struct {
	Profile   Profile
	Threshold byte
}

// Calibration is the outcome of sampling the empty scene.
type Calibration struct {
	Top    Background
	Bottom Background

	// Samples holds the average distance of each noise frame.
	Samples []byte

	// Mean and StdDev summarise Samples for diagnostics. StdDev is zero
	// with fewer than two samples.
	Mean   float64
	StdDev float64
}

// Half returns the background for the top (0) or bottom (1) half.
func (c *Calibration) Half(i int) Background {
	if i == 0 {
		return c.Top
	}
	return c.Bottom
}

// Distance returns the column-wise absolute difference between two profiles.
// It panics if their lengths differ.
func Distance(background, live Profile) Profile {
	if len(background) != len(live) {
		panic(fmt.Sprintf("tracking: distance between profiles of %d and %d columns", len(background), len(live)))
	}
	d := make(Profile, len(live))
	for i := range live {
		if live[i] > background[i] {
			d[i] = live[i] - background[i]
		} else {
			d[i] = background[i] - live[i]
		}
	}
	return d
}

// AverageDistance is the integer mean of a distance profile.
func AverageDistance(d Profile) byte {
	if len(d) == 0 {
		return 0
	}
	sum := 0
	for _, v := range d {
		sum += int(v)
	}
	return byte(sum / len(d))
}

// Calibrate captures the empty scene. The first frame becomes the
// background; the next p.CalibrationSamples frames measure how far an empty
// scene drifts from it. Any capture error aborts calibration.
func Calibrate(ctx context.Context, src Capturer, p Params) (*Calibration, error) {
	averages := p.averager()
	n := p.Columns

	frame, err := src.Capture()
	if err != nil {
		return nil, fmt.Errorf("failed to capture background frame: %w", err)
	}
	c := &Calibration{
		Top:    Background{Profile: NewProfile(n)},
		Bottom: Background{Profile: NewProfile(n)},
	}
	if err := averages(frame, c.Top.Profile, c.Bottom.Profile); err != nil {
		return nil, fmt.Errorf("failed to process background frame: %w", err)
	}

	top, bottom := NewProfile(n), NewProfile(n)
	total := 0
	for i := 0; i < p.CalibrationSamples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := src.Capture()
		if err != nil {
			return nil, fmt.Errorf("failed to capture noise sample %d: %w", i+1, err)
		}
		if err := averages(frame, top, bottom); err != nil {
			return nil, fmt.Errorf("failed to process noise sample %d: %w", i+1, err)
		}
		t := int(AverageDistance(Distance(c.Top.Profile, top)))
		b := int(AverageDistance(Distance(c.Bottom.Profile, bottom)))
		sample := byte((t + b) / 2)
		c.Samples = append(c.Samples, sample)
		total += int(sample)
	}

	threshold := p.NoiseFloor
	if len(c.Samples) > 0 {
		if avg := byte(total / len(c.Samples)); avg > threshold {
			threshold = avg
		}
		xs := make([]float64, len(c.Samples))
		for i, s := range c.Samples {
			xs[i] = float64(s)
		}
		if len(xs) > 1 {
			c.Mean, c.StdDev = stat.MeanStdDev(xs, nil)
		} else {
			c.Mean = stat.Mean(xs, nil)
		}
	}
	c.Top.Threshold = threshold
	c.Bottom.Threshold = threshold

	monitoring.Logf("calibrated background: threshold=%d samples=%v mean=%.2f stddev=%.2f",
		threshold, c.Samples, c.Mean, c.StdDev)
	return c, nil
}
