package config

import "flag"

// Flags are the command line overrides. Only flags given on the command line
// replace values from the config file.
type Flags struct {
	fs *flag.FlagSet

	Config    *string
	Camera    *string
	Device    *string
	Input     *string
	Width     *int
	Height    *int
	Telemetry *string
	Debug     *bool
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	def := Default()
	return &Flags{
		fs:        fs,
		Config:    fs.String("config", "", "Path to a JSON tuning file"),
		Camera:    fs.String("camera", def.Camera.Source, "Camera source: gocv or synthetic"),
		Device:    fs.String("device", def.Camera.Device, "Camera device path or index"),
		Input:     fs.String("input", def.Input, "Paddle input: camera or cursor"),
		Width:     fs.Int("width", def.Window.Width, "Window width"),
		Height:    fs.Int("height", def.Window.Height, "Window height"),
		Telemetry: fs.String("telemetry", def.Telemetry.Listen, "Telemetry websocket listen address, empty to disable"),
		Debug:     fs.Bool("debug", def.Debug, "Enable debug logging"),
	}
}

// Load builds the configuration: defaults, then the -config file, then any
// flags set explicitly. fs must have been parsed.
func (f *Flags) Load() (*Config, error) {
	cfg := Default()
	if *f.Config != "" {
		var err error
		if cfg, err = Load(*f.Config); err != nil {
			return nil, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "camera":
			cfg.Camera.Source = *f.Camera
		case "device":
			cfg.Camera.Device = *f.Device
		case "input":
			cfg.Input = *f.Input
		case "width":
			cfg.Window.Width = *f.Width
		case "height":
			cfg.Window.Height = *f.Height
		case "telemetry":
			cfg.Telemetry.Listen = *f.Telemetry
		case "debug":
			cfg.Debug = *f.Debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
