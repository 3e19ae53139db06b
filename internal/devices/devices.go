// Package devices opens the camera named by the configuration.
package devices

import (
	"context"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/camera/gocvcam"
	"github.com/jtestard/campong/internal/config"
	"github.com/jtestard/campong/internal/monitoring"
	"github.com/jtestard/campong/internal/timeutil"
)

// SyntheticBase is the gray level of the empty synthetic scene.
const SyntheticBase = 40

// Open opens and configures the camera selected by cfg.
func Open(cfg *config.Config) (camera.Device, error) {
	if cfg.Camera.Source == config.SourceSynthetic {
		s := camera.NewSynthetic(cfg.Camera.Format, SyntheticBase)
		s.Pace = true
		monitoring.Logf("using synthetic camera %dx%d", cfg.Camera.Format.Width, cfg.Camera.Format.Height)
		return s, nil
	}

	d, err := gocvcam.Open(cfg.Camera.Device)
	if err != nil {
		return nil, err
	}
	if err := d.Configure(cfg.Camera.Format); err != nil {
		d.Close()
		return nil, err
	}
	monitoring.Logf("opened camera %s at %dx%d %.0f fps", cfg.Camera.Device,
		cfg.Camera.Format.Width, cfg.Camera.Format.Height, cfg.Camera.Format.FPS())
	return d, nil
}

// SweepPeriod is the number of frames a synthetic marker takes to cross the
// frame and come back.
const SweepPeriod = 240

// SweepMarkers places the synthetic markers for frame n. The two markers
// sweep the frame in opposite directions.
func SweepMarkers(s *camera.Synthetic, f camera.Format, n int) {
	width := f.Width / 16
	if width < 1 {
		width = 1
	}
	span := f.Width - width
	pos := triangle(n, SweepPeriod)
	s.SetMarker(camera.Top, &camera.Marker{X: span * pos / SweepPeriod, Width: width, Level: 255})
	s.SetMarker(camera.Bottom, &camera.Marker{X: span - span*pos/SweepPeriod, Width: width, Level: 255})
}

// triangle folds n into [0, period] going up then down every period frames.
func triangle(n, period int) int {
	half := period / 2
	n %= period
	if n <= half {
		return n * 2
	}
	return (period - n) * 2
}

// Sweep moves the synthetic markers once per frame interval until ctx is
// done.
func Sweep(ctx context.Context, s *camera.Synthetic, f camera.Format, clock timeutil.Clock) {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	for n := 0; ctx.Err() == nil; n++ {
		SweepMarkers(s, f, n)
		clock.Sleep(f.Interval())
	}
}
