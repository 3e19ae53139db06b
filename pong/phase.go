package pong

import (
	"fmt"
	"time"
)

// Phase is the top-level mode of the game loop. The concrete phases are
// CalibratesBackground, ReadsController and PlaysPong.
type Phase interface {
	isPhase()
	String() string
}

// CalibratesBackground waits Countdown seconds for the players to clear the
// camera's view, then captures the background.
type CalibratesBackground struct {
	Countdown int
}

// ReadsController waits for both controllers to show up in front of the
// camera. Since is when the phase began.
type ReadsController struct {
	Since time.Time
}

// PlaysPong runs the ball.
type PlaysPong struct{}

func (CalibratesBackground) isPhase() {}
func (ReadsController) isPhase()      {}
func (PlaysPong) isPhase()            {}

func (p CalibratesBackground) String() string {
	return fmt.Sprintf("calibrates background (%d)", p.Countdown)
}
func (ReadsController) String() string { return "reads controller" }
func (PlaysPong) String() string       { return "plays pong" }

// Next returns the phase following p. Phases only move forward and PlaysPong
// is terminal.
func Next(p Phase, now time.Time) Phase {
	switch p.(type) {
	case CalibratesBackground:
		return ReadsController{Since: now}
	case ReadsController:
		return PlaysPong{}
	case PlaysPong:
		return PlaysPong{}
	default:
		panic(fmt.Sprintf("pong: unknown phase %T", p))
	}
}
