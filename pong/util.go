package pong

import (
	"image/color"
	"math"
)

// Position is a set of coordinates in 2-D plan
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Field is the playing area in window pixels. Paddle 0 guards the top edge,
// paddle 1 the bottom edge; the ball bounces off the left and right edges.
type Field struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center position of the field
func (f Field) Center() Position {
	return Position{
		X: f.Width / 2,
		Y: f.Height / 2,
	}
}

// Rand is the source of bounce jitter. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

var (
	BgColor  = color.Black
	ObjColor = color.RGBA{120, 226, 160, 255}

	// PaddleColors are indexed by player id.
	PaddleColors = [2]color.RGBA{
		{235, 87, 87, 255},
		{86, 156, 235, 255},
	}
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
