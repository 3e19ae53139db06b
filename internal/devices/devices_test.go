package devices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/internal/config"
	"github.com/jtestard/campong/internal/timeutil"
)

func TestOpenSynthetic(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Source = config.SourceSynthetic

	dev, err := Open(cfg)
	require.NoError(t, err)
	defer dev.Close()

	s, ok := dev.(*camera.Synthetic)
	require.True(t, ok)
	assert.True(t, s.Pace)
}

func TestTriangle(t *testing.T) {
	got := make([]int, 0, 8)
	for n := 0; n < 8; n++ {
		got = append(got, triangle(n, 4))
	}
	assert.Equal(t, []int{0, 2, 4, 2, 0, 2, 4, 2}, got)
}

// row returns the gray levels of frame row y.
func row(frame []byte, f camera.Format, y int) []byte {
	out := make([]byte, f.Width)
	for x := range out {
		out[x] = frame[(y*f.Width+x)*3]
	}
	return out
}

func TestSweepMarkersMoveOpposite(t *testing.T) {
	f := camera.Format{IntervalNumerator: 1, IntervalDenominator: 30, Width: 32, Height: 2, PixelFormat: "MJPG"}
	s := camera.NewSynthetic(f, SyntheticBase)

	SweepMarkers(s, f, 0)
	frame, err := s.Capture()
	require.NoError(t, err)
	top, bottom := row(frame, f, 0), row(frame, f, 1)
	assert.Equal(t, byte(255), top[0])
	assert.Equal(t, byte(255), top[1])
	assert.Equal(t, byte(SyntheticBase), top[2])
	assert.Equal(t, byte(255), bottom[30])
	assert.Equal(t, byte(SyntheticBase), bottom[0])

	SweepMarkers(s, f, SweepPeriod/2)
	frame, err = s.Capture()
	require.NoError(t, err)
	top, bottom = row(frame, f, 0), row(frame, f, 1)
	assert.Equal(t, byte(255), top[30])
	assert.Equal(t, byte(255), bottom[0])
}

func TestSweepStopsOnCancel(t *testing.T) {
	f := camera.DefaultFormat()
	s := camera.NewSynthetic(f, SyntheticBase)
	clock := timeutil.NewMockClock(time.Unix(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Sweep(ctx, s, f, clock)
	assert.Empty(t, clock.Sleeps())
}
