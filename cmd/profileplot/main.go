// Command profileplot calibrates the camera, captures one frame and plots
// each half's column profiles, for tuning the tracker.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/internal/config"
	"github.com/jtestard/campong/internal/devices"
	"github.com/jtestard/campong/internal/monitoring"
	"github.com/jtestard/campong/tracking"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	outDir := flag.String("out", "profiles", "Directory to write the PNG plots to")
	marker := flag.Int("marker", -1, "With -camera=synthetic, show a marker at this frame column after calibration")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Debug {
		monitoring.SetDebugLogger(log.Printf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dev, err := devices.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open camera: %v", err)
	}
	defer dev.Close()

	if err := run(ctx, cfg, dev, *outDir, *marker); err != nil {
		log.Fatalf("profileplot: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, dev camera.Device, outDir string, marker int) error {
	params, err := cfg.TrackingParams()
	if err != nil {
		return err
	}

	monitoring.Logf("calibrating with %d samples, keep the view empty", params.CalibrationSamples)
	calib, err := tracking.Calibrate(ctx, dev, params)
	if err != nil {
		return err
	}

	if s, ok := dev.(*camera.Synthetic); ok && marker >= 0 {
		width := cfg.Camera.Format.Width / 16
		s.SetMarker(camera.Top, &camera.Marker{X: marker, Width: width, Level: 255})
		s.SetMarker(camera.Bottom, &camera.Marker{X: marker, Width: width, Level: 255})
	}

	frame, err := dev.Capture()
	if err != nil {
		return fmt.Errorf("failed to capture live frame: %w", err)
	}
	top, bottom := tracking.NewProfile(params.Columns), tracking.NewProfile(params.Columns)
	if err := params.ColumnAverages(frame, top, bottom); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	for i, live := range []tracking.Profile{top, bottom} {
		half := camera.Half(i)
		bg := calib.Half(i)
		if x, ok := tracking.Locate(bg, live, params.WindowWidth); ok {
			monitoring.Logf("%s: controller at x=%d", half, x)
		} else {
			monitoring.Logf("%s: no controller above threshold %d", half, bg.Threshold)
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s_profile.png", half))
		title := fmt.Sprintf("%s half, %d columns, %s bucketing", half, params.Columns, params.Bucketing)
		if err := plotProfiles(path, title, bg, live); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", path)
	}
	return nil
}
