package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtestard/campong/pong"
	"github.com/jtestard/campong/tracking"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	tp, err := cfg.TrackingParams()
	require.NoError(t, err)
	if diff := cmp.Diff(tracking.DefaultParams(), tp); diff != "" {
		t.Errorf("TrackingParams() mismatch (-want +got):\n%s", diff)
	}

	timing, err := cfg.Timing()
	require.NoError(t, err)
	assert.Equal(t, pong.DefaultTiming(), timing)
	assert.Equal(t, pong.Field{Width: 500, Height: 600}, cfg.Field())
}

func TestLoadKeepsOmittedDefaults(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{
  "window": {"width": 640},
  "tracking": {"bucketing": "geometric", "retry_backoff": "250ms", "capture_retries": 2},
  "phases": {"read_timeout": "10s"},
  "physics": {"max_velocity": 8}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 8.0, cfg.Physics.MaxVelocity)
	assert.Equal(t, 5.0, cfg.Physics.MinVelocity)

	tp, err := cfg.TrackingParams()
	require.NoError(t, err)
	assert.Equal(t, tracking.Geometric, tp.Bucketing)
	assert.Equal(t, 250*time.Millisecond, tp.RetryBackoff)
	assert.Equal(t, 2, tp.CaptureRetries)
	assert.Equal(t, 640, tp.WindowWidth)
	assert.Equal(t, 1280, tp.FrameWidth)
	assert.Equal(t, 64, tp.Columns)

	timing, err := cfg.Timing()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timing.ReadTimeout)
	assert.Equal(t, 3, timing.Countdown)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"wrong extension", "tuning.yaml", `{}`, ".json extension"},
		{"bad json", "tuning.json", `{"window":`, "parse config JSON"},
		{"bad duration", "tuning.json", `{"phases": {"read_timeout": "soon"}}`, "read_timeout"},
		{"bad bucketing", "tuning.json", `{"tracking": {"bucketing": "spiral"}}`, "bucketing"},
		{"zero columns", "tuning.json", `{"tracking": {"columns": 0}}`, "columns"},
		{"velocity range", "tuning.json", `{"physics": {"min_velocity": 12}}`, "velocity"},
		{"window", "tuning.json", `{"window": {"width": -1}}`, "window"},
		{"camera source", "tuning.json", `{"camera": {"source": "v4l"}}`, "camera source"},
		{"noise floor", "tuning.json", `{"tracking": {"noise_floor": 300}}`, "noise_floor"},
		{"input", "tuning.json", `{"input": "joystick"}`, "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTooLarge(t *testing.T) {
	body := `{"input": "camera", "pad": "` + strings.Repeat("x", maxFileSize) + `"}`
	_, err := Load(writeConfig(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestCursorInputSkipsCountdown(t *testing.T) {
	cfg := Default()
	cfg.Input = InputCursor
	timing, err := cfg.Timing()
	require.NoError(t, err)
	assert.Zero(t, timing.Countdown)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"window": {"width": 640, "height": 480}, "telemetry": {"listen": ":9000"}}`)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-height", "700", "-camera", "synthetic", "-input", "cursor"}))

	cfg, err := flags.Load()
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width, "unset flags keep the file value")
	assert.Equal(t, 700, cfg.Window.Height)
	assert.Equal(t, ":9000", cfg.Telemetry.Listen)
	assert.Equal(t, SourceSynthetic, cfg.Camera.Source)
	assert.Equal(t, InputCursor, cfg.Input)
}

func TestFlagsWithoutFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-telemetry", "127.0.0.1:8080", "-debug"}))

	cfg, err := flags.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Telemetry.Listen)
	assert.True(t, cfg.Debug)
	assert.Equal(t, SourceGoCV, cfg.Camera.Source)
}

func TestFlagsValidate(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-width", "10"}))

	_, err := flags.Load()
	assert.Error(t, err)
}
