package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/internal/monitoring"
	"github.com/jtestard/campong/internal/timeutil"
)

var (
	// ErrTrackerRunning is returned when the device has already been handed
	// to the capture loop.
	ErrTrackerRunning = errors.New("tracking: tracker already running")

	// ErrNotCalibrated is returned when the loop is started without a
	// background.
	ErrNotCalibrated = errors.New("tracking: tracker not calibrated")
)

// Publisher receives the latest controller position of one player.
type Publisher interface {
	Store(x uint32)
}

// Tracker owns the camera device. It calibrates once, then runs the capture
// loop that publishes positions for each half that has a publisher.
type Tracker struct {
	params  Params
	clock   timeutil.Clock
	outputs [2]Publisher

	mu      sync.Mutex
	dev     camera.Device
	calib   *Calibration
	running bool

	frames atomic.Int64
	found  [2]atomic.Int64
}

// NewTracker creates a tracker reading from dev. A nil publisher leaves that
// half untracked.
func NewTracker(dev camera.Device, p Params, top, bottom Publisher, clock timeutil.Clock) *Tracker {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Tracker{
		params:  p,
		clock:   clock,
		outputs: [2]Publisher{top, bottom},
		dev:     dev,
	}
}

// Calibrate captures the background. It may be repeated until Start.
func (t *Tracker) Calibrate(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrackerRunning
	}
	c, err := Calibrate(ctx, t.dev, t.params)
	if err != nil {
		return err
	}
	t.calib = c
	return nil
}

// Calibration returns the current background, or nil before Calibrate.
func (t *Tracker) Calibration() *Calibration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calib
}

// Start hands the device to a new capture goroutine. The returned channel
// receives the loop's terminal error, then closes. The device is closed when
// the loop ends.
func (t *Tracker) Start(ctx context.Context) <-chan error {
	errc := make(chan error, 1)

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		errc <- ErrTrackerRunning
		close(errc)
		return errc
	}
	if t.calib == nil {
		t.mu.Unlock()
		errc <- ErrNotCalibrated
		close(errc)
		return errc
	}
	t.running = true
	dev, calib := t.dev, t.calib
	t.mu.Unlock()

	go func() {
		defer close(errc)
		err := t.run(ctx, dev, calib)
		if cerr := dev.Close(); cerr != nil {
			monitoring.Logf("failed to close camera: %v", cerr)
		}
		errc <- err
	}()
	return errc
}

// Run is the capture loop on the calling goroutine. It returns when ctx is
// done or when capture fails beyond the retry budget. While it runs the
// tracker refuses Calibrate and Start. It does not close the device, so the
// tracker may be calibrated and run again afterwards.
func (t *Tracker) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrTrackerRunning
	}
	if t.calib == nil {
		t.mu.Unlock()
		return ErrNotCalibrated
	}
	t.running = true
	dev, calib := t.dev, t.calib
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()
	return t.run(ctx, dev, calib)
}

// Stats returns the number of frames processed and positions found per half.
func (t *Tracker) Stats() (frames int64, top, bottom int64) {
	return t.frames.Load(), t.found[0].Load(), t.found[1].Load()
}

func (t *Tracker) run(ctx context.Context, dev camera.Device, calib *Calibration) error {
	averages := t.params.averager()
	profiles := [2]Profile{NewProfile(t.params.Columns), NewProfile(t.params.Columns)}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := t.capture(ctx, dev)
		if err != nil {
			return err
		}
		if err := averages(frame, profiles[0], profiles[1]); err != nil {
			return fmt.Errorf("failed to process frame: %w", err)
		}
		n := t.frames.Add(1)

		for half, out := range t.outputs {
			if out == nil {
				continue
			}
			x, ok := Locate(calib.Half(half), profiles[half], t.params.WindowWidth)
			if !ok {
				continue
			}
			t.found[half].Add(1)
			out.Store(x)
			monitoring.Debugf("frame %d: %s controller at x=%d", n, camera.Half(half), x)
		}
	}
}

func (t *Tracker) capture(ctx context.Context, dev camera.Device) ([]byte, error) {
	var err error
	for attempt := 0; attempt <= t.params.CaptureRetries; attempt++ {
		if attempt > 0 {
			monitoring.Logf("capture failed (attempt %d of %d): %v", attempt, t.params.CaptureRetries+1, err)
			t.clock.Sleep(t.params.RetryBackoff * time.Duration(attempt))
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
		}
		var frame []byte
		if frame, err = dev.Capture(); err == nil {
			return frame, nil
		}
	}
	return nil, fmt.Errorf("failed to capture frame after %d attempts: %w", t.params.CaptureRetries+1, err)
}
