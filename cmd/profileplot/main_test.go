package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/internal/config"
	"github.com/jtestard/campong/tracking"
)

func TestPlotProfilesWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.png")
	bg := tracking.Background{Profile: tracking.Profile{40, 40, 40, 40}, Threshold: 10}
	live := tracking.Profile{40, 200, 210, 40}

	require.NoError(t, plotProfiles(path, "top", bg, live))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestRunWritesBothHalves(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Source = config.SourceSynthetic
	cfg.Camera.Format = camera.Format{IntervalNumerator: 1, IntervalDenominator: 30, Width: 64, Height: 4, PixelFormat: "MJPG"}
	cfg.Tracking.Columns = 16
	require.NoError(t, cfg.Validate())

	dev := camera.NewSynthetic(cfg.Camera.Format, 40)
	dir := t.TempDir()
	require.NoError(t, run(context.Background(), cfg, dev, dir, 8))

	for _, name := range []string{"top_profile.png", "bottom_profile.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.Equal(t, 5, dev.Frames(), "background, three noise samples and one live frame")
}

func TestRunFailsWhenCaptureFails(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Format = camera.Format{IntervalNumerator: 1, IntervalDenominator: 30, Width: 64, Height: 4, PixelFormat: "MJPG"}
	cfg.Tracking.Columns = 16

	dev := camera.NewSynthetic(cfg.Camera.Format, 40)
	dev.FailNext(camera.ErrCaptureFailed)
	err := run(context.Background(), cfg, dev, t.TempDir(), -1)
	assert.ErrorIs(t, err, camera.ErrCaptureFailed)
}
