package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jtestard/campong/tracking"
)

var (
	backgroundColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	liveColor       = color.RGBA{R: 86, G: 156, B: 235, A: 255}
	distanceColor   = color.RGBA{R: 235, G: 87, B: 87, A: 255}
	thresholdColor  = color.RGBA{R: 120, G: 226, B: 160, A: 255}
)

func profileXYs(p tracking.Profile) plotter.XYs {
	pts := make(plotter.XYs, len(p))
	for i, v := range p {
		pts[i] = plotter.XY{X: float64(i), Y: float64(v)}
	}
	return pts
}

// plotProfiles writes one half's background, live and distance profiles
// against the detection threshold to a PNG at path.
func plotProfiles(path, title string, bg tracking.Background, live tracking.Profile) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "gray level"
	p.Y.Min = 0
	p.Y.Max = 255

	distance := tracking.Distance(bg.Profile, live)
	threshold := make(tracking.Profile, len(live))
	for i := range threshold {
		threshold[i] = bg.Threshold
	}

	series := []struct {
		name  string
		data  tracking.Profile
		color color.Color
	}{
		{"background", bg.Profile, backgroundColor},
		{"live", live, liveColor},
		{"distance", distance, distanceColor},
		{"threshold", threshold, thresholdColor},
	}
	for _, s := range series {
		line, err := plotter.NewLine(profileXYs(s.data))
		if err != nil {
			return fmt.Errorf("failed to create %s line: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
