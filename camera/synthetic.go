package camera

import (
	"fmt"
	"sync"
	"time"
)

// Half selects the top or bottom half of a frame.
type Half int

const (
	Top Half = iota
	Bottom
)

func (h Half) String() string {
	switch h {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Half(%d)", int(h))
	}
}

// Marker is a bright vertical band painted into one half of a synthetic
// frame, standing in for a controller held in front of the camera.
type Marker struct {
	// X and Width are in frame pixels.
	X, Width int
	// Level is the gray value of the band.
	Level byte
}

// Synthetic is a Device that renders a flat gray scene with optional markers.
// It is used by dev mode and tests to drive the tracker without hardware.
type Synthetic struct {
	format Format
	base   byte

	// Pace makes Capture sleep for one frame interval, emulating a real
	// device's frame rate.
	Pace bool

	mu       sync.Mutex
	markers  [2]*Marker
	noise    byte
	frames   int
	failures []error
	closed   bool
}

// NewSynthetic creates a synthetic device rendering frames in format f with
// the given background gray level.
func NewSynthetic(f Format, base byte) *Synthetic {
	return &Synthetic{format: f, base: base}
}

// SetMarker places (or with nil, removes) the marker for one half.
func (s *Synthetic) SetMarker(h Half, m *Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m != nil {
		c := *m
		m = &c
	}
	s.markers[h] = m
}

// SetNoise makes alternate frames brighten every pixel by n levels.
func (s *Synthetic) SetNoise(n byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noise = n
}

// FailNext queues errors to be returned, in order, by the next Capture calls.
func (s *Synthetic) FailNext(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, errs...)
}

// Frames returns how many frames have been captured successfully.
func (s *Synthetic) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Capture renders the next frame.
func (s *Synthetic) Capture() ([]byte, error) {
	if s.Pace {
		time.Sleep(s.format.Interval())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("%w: device closed", ErrCaptureFailed)
	}
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return nil, err
	}

	level := s.base
	if s.noise > 0 && s.frames%2 == 1 {
		level = saturate(int(level) + int(s.noise))
	}

	w, h := s.format.Width, s.format.Height
	frame := make([]byte, s.format.FrameLen())
	for y := 0; y < h; y++ {
		half := Top
		if y >= h/2 {
			half = Bottom
		}
		m := s.markers[half]
		for x := 0; x < w; x++ {
			v := level
			if m != nil && x >= m.X && x < m.X+m.Width {
				v = m.Level
			}
			i := (y*w + x) * 3
			frame[i], frame[i+1], frame[i+2] = v, v, v
		}
	}
	s.frames++
	return frame, nil
}

// Close makes subsequent captures fail.
func (s *Synthetic) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func saturate(v int) byte {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}
