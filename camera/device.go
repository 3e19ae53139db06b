// Package camera describes the video source the tracker reads from.
//
// Frames are packed RGB24, three bytes per pixel, row-major. The real device
// lives in camera/gocvcam so that this package (and everything that only
// needs the interface) builds without OpenCV.
package camera

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnsupportedFormat is returned when a device refuses the requested
	// resolution, frame rate or pixel format.
	ErrUnsupportedFormat = errors.New("camera: unsupported format")

	// ErrCaptureFailed is returned when a device yields no frame.
	ErrCaptureFailed = errors.New("camera: capture failed")
)

// Device produces one frame per Capture call. Capture blocks until the device
// has a frame, so the device's frame rate paces its caller.
type Device interface {
	Capture() ([]byte, error)
	Close() error
}

// Format is the capture configuration requested from a device.
type Format struct {
	// IntervalNumerator/IntervalDenominator is the frame interval in
	// seconds, 1/30 for 30 fps.
	IntervalNumerator   uint32 `json:"interval_numerator"`
	IntervalDenominator uint32 `json:"interval_denominator"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// PixelFormat is the FOURCC the device captures in, e.g. "MJPG" or
	// "YUYV". Frames handed to the tracker are always RGB24 regardless.
	PixelFormat string `json:"pixel_format"`
}

// DefaultFormat is 1280x720 at 30 fps.
func DefaultFormat() Format {
	return Format{
		IntervalNumerator:   1,
		IntervalDenominator: 30,
		Width:               1280,
		Height:              720,
		PixelFormat:         "MJPG",
	}
}

// FrameLen is the number of bytes in one RGB24 frame.
func (f Format) FrameLen() int {
	return f.Width * f.Height * 3
}

// FPS returns the nominal frame rate.
func (f Format) FPS() float64 {
	if f.IntervalNumerator == 0 {
		return 0
	}
	return float64(f.IntervalDenominator) / float64(f.IntervalNumerator)
}

// Interval returns the nominal time between frames.
func (f Format) Interval() time.Duration {
	if f.IntervalDenominator == 0 {
		return 0
	}
	return time.Duration(f.IntervalNumerator) * time.Second / time.Duration(f.IntervalDenominator)
}

// Validate checks the format is usable by the tracker.
func (f Format) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrUnsupportedFormat, f.Width, f.Height)
	}
	if f.Height%2 != 0 {
		return fmt.Errorf("%w: height %d cannot be split into two halves", ErrUnsupportedFormat, f.Height)
	}
	if f.IntervalNumerator == 0 || f.IntervalDenominator == 0 {
		return fmt.Errorf("%w: frame interval %d/%d", ErrUnsupportedFormat, f.IntervalNumerator, f.IntervalDenominator)
	}
	if len(f.PixelFormat) != 4 {
		return fmt.Errorf("%w: pixel format %q is not a FOURCC", ErrUnsupportedFormat, f.PixelFormat)
	}
	return nil
}
