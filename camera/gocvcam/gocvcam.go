// Package gocvcam backs camera.Device with an OpenCV video capture.
package gocvcam

import (
	"fmt"
	"math"
	"sync"

	"gocv.io/x/gocv"

	"github.com/jtestard/campong/camera"
)

// Device is an opened capture device. It is not safe for concurrent Capture
// calls; the tracker owns it from a single goroutine.
type Device struct {
	path    string
	capture *gocv.VideoCapture
	format  camera.Format

	mu  sync.Mutex
	bgr gocv.Mat
	rgb gocv.Mat
}

// Open opens the device at path, e.g. "/dev/video0". Call Configure before
// Capture.
func Open(path string) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %s is not opened", path)
	}
	return &Device{
		path:    path,
		capture: capture,
		bgr:     gocv.NewMat(),
		rgb:     gocv.NewMat(),
	}, nil
}

// Configure requests the format and verifies the device accepted the
// resolution. Frame rate and FOURCC are best effort: many drivers report
// them inaccurately.
func (d *Device) Configure(f camera.Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	d.capture.Set(gocv.VideoCaptureFOURCC, d.capture.ToCodec(f.PixelFormat))
	d.capture.Set(gocv.VideoCaptureFrameWidth, float64(f.Width))
	d.capture.Set(gocv.VideoCaptureFrameHeight, float64(f.Height))
	d.capture.Set(gocv.VideoCaptureFPS, f.FPS())

	w := int(math.Round(d.capture.Get(gocv.VideoCaptureFrameWidth)))
	h := int(math.Round(d.capture.Get(gocv.VideoCaptureFrameHeight)))
	if w != f.Width || h != f.Height {
		return fmt.Errorf("%w: %s gave %dx%d, requested %dx%d",
			camera.ErrUnsupportedFormat, d.path, w, h, f.Width, f.Height)
	}
	d.format = f
	return nil
}

// Capture reads one frame and returns it as packed RGB24.
func (d *Device) Capture() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ok := d.capture.Read(&d.bgr); !ok || d.bgr.Empty() {
		return nil, fmt.Errorf("%w: no frame from %s", camera.ErrCaptureFailed, d.path)
	}
	if d.bgr.Cols() != d.format.Width || d.bgr.Rows() != d.format.Height {
		return nil, fmt.Errorf("%w: %s frame is %dx%d, configured %dx%d", camera.ErrCaptureFailed,
			d.path, d.bgr.Cols(), d.bgr.Rows(), d.format.Width, d.format.Height)
	}
	gocv.CvtColor(d.bgr, &d.rgb, gocv.ColorBGRToRGB)
	return d.rgb.ToBytes(), nil
}

// Close releases the device and its buffers.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bgr.Close()
	d.rgb.Close()
	return d.capture.Close()
}
