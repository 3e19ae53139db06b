// Package config loads the game's tuning from an optional JSON file and
// command line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/pong"
	"github.com/jtestard/campong/tracking"
)

// Camera sources.
const (
	SourceGoCV      = "gocv"
	SourceSynthetic = "synthetic"
)

// Input modes.
const (
	InputCamera = "camera"
	InputCursor = "cursor"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is the root configuration. Every section has usable defaults, see
// Default.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Camera    CameraConfig    `json:"camera"`
	Tracking  TrackingConfig  `json:"tracking"`
	Phases    PhasesConfig    `json:"phases"`
	Physics   pong.Physics    `json:"physics"`
	Telemetry TelemetryConfig `json:"telemetry"`

	// Input is InputCamera or InputCursor.
	Input string `json:"input"`
	Debug bool   `json:"debug"`
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type CameraConfig struct {
	// Source is SourceGoCV or SourceSynthetic.
	Source string        `json:"source"`
	Device string        `json:"device"`
	Format camera.Format `json:"format"`
}

type TrackingConfig struct {
	Columns            int    `json:"columns"`
	Bucketing          string `json:"bucketing"`
	CalibrationSamples int    `json:"calibration_samples"`
	NoiseFloor         int    `json:"noise_floor"`
	CaptureRetries     int    `json:"capture_retries"`
	RetryBackoff       string `json:"retry_backoff"` // duration string like "100ms"
}

type PhasesConfig struct {
	Countdown     int    `json:"countdown"`
	CountdownStep string `json:"countdown_step"` // duration string like "1s"
	ReadTimeout   string `json:"read_timeout"`   // duration string like "5s"
}

type TelemetryConfig struct {
	// Listen is the websocket address. Empty disables telemetry.
	Listen string `json:"listen"`
}

// Default returns the standard configuration: a 500x600 window fed by
// /dev/video0 at 1280x720.
func Default() *Config {
	tp := tracking.DefaultParams()
	timing := pong.DefaultTiming()
	return &Config{
		Window: WindowConfig{Width: tp.WindowWidth, Height: 600, Title: "campong"},
		Camera: CameraConfig{
			Source: SourceGoCV,
			Device: "/dev/video0",
			Format: camera.DefaultFormat(),
		},
		Tracking: TrackingConfig{
			Columns:            tp.Columns,
			Bucketing:          string(tp.Bucketing),
			CalibrationSamples: tp.CalibrationSamples,
			NoiseFloor:         int(tp.NoiseFloor),
			CaptureRetries:     tp.CaptureRetries,
			RetryBackoff:       tp.RetryBackoff.String(),
		},
		Phases: PhasesConfig{
			Countdown:     timing.Countdown,
			CountdownStep: timing.CountdownStep.String(),
			ReadTimeout:   timing.ReadTimeout.String(),
		},
		Physics: pong.DefaultPhysics(),
		Input:   InputCamera,
	}
}

// Load reads a JSON config from path. The file must have a .json extension
// and be under 1MB. Fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Width < pong.PaddleWidth || c.Window.Height < 2*pong.PaddleHeight {
		return fmt.Errorf("window %dx%d cannot fit the paddles", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Source {
	case SourceGoCV, SourceSynthetic:
	default:
		return fmt.Errorf("unknown camera source %q", c.Camera.Source)
	}
	switch c.Input {
	case InputCamera, InputCursor:
	default:
		return fmt.Errorf("unknown input %q", c.Input)
	}
	if err := c.Camera.Format.Validate(); err != nil {
		return err
	}
	if c.Tracking.NoiseFloor < 0 || c.Tracking.NoiseFloor > 255 {
		return fmt.Errorf("noise_floor must be between 0 and 255, got %d", c.Tracking.NoiseFloor)
	}
	tp, err := c.TrackingParams()
	if err != nil {
		return err
	}
	if err := tp.Validate(); err != nil {
		return err
	}
	timing, err := c.Timing()
	if err != nil {
		return err
	}
	if timing.Countdown < 0 {
		return fmt.Errorf("countdown must be non-negative, got %d", timing.Countdown)
	}
	if timing.CountdownStep < 0 || timing.ReadTimeout < 0 {
		return fmt.Errorf("phase durations must be non-negative")
	}
	return c.Physics.Validate()
}

// TrackingParams maps the tracking section onto tracking.Params. Profiles
// are located in window coordinates.
func (c *Config) TrackingParams() (tracking.Params, error) {
	backoff, err := parseDuration("retry_backoff", c.Tracking.RetryBackoff)
	if err != nil {
		return tracking.Params{}, err
	}
	return tracking.Params{
		Columns:            c.Tracking.Columns,
		Bucketing:          tracking.Bucketing(c.Tracking.Bucketing),
		FrameWidth:         c.Camera.Format.Width,
		CalibrationSamples: c.Tracking.CalibrationSamples,
		NoiseFloor:         byte(c.Tracking.NoiseFloor),
		WindowWidth:        c.Window.Width,
		CaptureRetries:     c.Tracking.CaptureRetries,
		RetryBackoff:       backoff,
	}, nil
}

// Timing maps the phases section onto pong.Timing. Cursor input needs no
// background, so it never counts down.
func (c *Config) Timing() (pong.Timing, error) {
	step, err := parseDuration("countdown_step", c.Phases.CountdownStep)
	if err != nil {
		return pong.Timing{}, err
	}
	timeout, err := parseDuration("read_timeout", c.Phases.ReadTimeout)
	if err != nil {
		return pong.Timing{}, err
	}
	t := pong.Timing{
		Countdown:     c.Phases.Countdown,
		CountdownStep: step,
		ReadTimeout:   timeout,
	}
	if c.Input == InputCursor {
		t.Countdown = 0
	}
	return t, nil
}

// Field returns the playing area.
func (c *Config) Field() pong.Field {
	return pong.Field{Width: float64(c.Window.Width), Height: float64(c.Window.Height)}
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, s, err)
	}
	return d, nil
}
