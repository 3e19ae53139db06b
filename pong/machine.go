package pong

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jtestard/campong/internal/monitoring"
	"github.com/jtestard/campong/internal/timeutil"
)

// Controllers is the input side of the game: something that learns the empty
// scene and then keeps the players' position handles up to date.
type Controllers interface {
	// Calibrate captures the background. It runs once, before Start.
	Calibrate(ctx context.Context) error

	// Start begins publishing positions. The channel yields the error that
	// stopped publishing; a nil channel means publishing never fails.
	Start(ctx context.Context) <-chan error
}

// Timing configures how long the pre-game phases last.
type Timing struct {
	// Countdown is the number of CountdownStep intervals before the
	// background is captured.
	Countdown     int
	CountdownStep time.Duration

	// ReadTimeout ends ReadsController even if a controller was never seen.
	ReadTimeout time.Duration
}

// DefaultTiming returns a three second countdown and a five second wait for
// controllers.
func DefaultTiming() Timing {
	return Timing{
		Countdown:     3,
		CountdownStep: time.Second,
		ReadTimeout:   5 * time.Second,
	}
}

// Machine sequences the game: calibration, then controller read, then play.
// Update is driven by the render loop and is not reentrant.
type Machine struct {
	Ball    *Ball
	Paddles [2]*Paddle

	ctx         context.Context
	controllers Controllers
	timing      Timing
	clock       timeutil.Clock
	rng         Rand

	phase      Phase
	deadline   time.Time
	skip       bool
	trackerErr <-chan error
}

// NewMachine creates a machine in CalibratesBackground. ctx bounds the
// controllers' lifetime.
func NewMachine(ctx context.Context, field Field, physics Physics, timing Timing, handles [2]*PositionHandle,
	controllers Controllers, clock timeutil.Clock, rng Rand) *Machine {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Machine{
		Ball: NewBall(field, physics),
		Paddles: [2]*Paddle{
			NewPaddle(0, handles[0], field),
			NewPaddle(1, handles[1], field),
		},
		ctx:         ctx,
		controllers: controllers,
		timing:      timing,
		clock:       clock,
		rng:         rng,
		phase:       CalibratesBackground{Countdown: timing.Countdown},
		deadline:    clock.Now(),
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Score returns the number of points player has won.
func (m *Machine) Score(player int) int {
	return m.Paddles[1-player].Deaths
}

// Skip ends ReadsController on the next Update without waiting for the
// controllers.
func (m *Machine) Skip() {
	m.skip = true
}

// Update advances the current phase by one frame. An error means the game
// cannot continue: calibration failed or the controllers stopped.
func (m *Machine) Update() error {
	switch p := m.phase.(type) {
	case CalibratesBackground:
		return m.calibrate(p)
	case ReadsController:
		if err := m.checkControllers(); err != nil {
			return err
		}
		m.readControllers(p)
		return nil
	case PlaysPong:
		if err := m.checkControllers(); err != nil {
			return err
		}
		m.play()
		return nil
	default:
		return fmt.Errorf("unknown phase %T", p)
	}
}

func (m *Machine) advance() {
	next := Next(m.phase, m.clock.Now())
	monitoring.Logf("phase: %s -> %s", m.phase, next)
	m.phase = next
}

func (m *Machine) calibrate(p CalibratesBackground) error {
	now := m.clock.Now()
	if now.Before(m.deadline) {
		return nil
	}
	if p.Countdown > 0 {
		monitoring.Logf("will take a snapshot of the playfield in %d", p.Countdown)
		m.phase = CalibratesBackground{Countdown: p.Countdown - 1}
		m.deadline = now.Add(m.timing.CountdownStep)
		return nil
	}

	monitoring.Logf("taking a snapshot of the playfield before the game")
	if err := m.controllers.Calibrate(m.ctx); err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}
	m.trackerErr = m.controllers.Start(m.ctx)
	m.advance()
	return nil
}

func (m *Machine) readControllers(p ReadsController) {
	ready := true
	for _, paddle := range m.Paddles {
		ready = ready && paddle.Handle().Seen()
	}
	switch {
	case m.skip:
		monitoring.Logf("controller read skipped")
	case ready:
		monitoring.Logf("both controllers found")
	case m.clock.Since(p.Since) >= m.timing.ReadTimeout:
		monitoring.Logf("controller read timed out after %v", m.timing.ReadTimeout)
	default:
		return
	}
	m.advance()
}

func (m *Machine) play() {
	if player, ok := m.Ball.PlayerScored(); ok {
		m.Paddles[1-player].Deaths++
		monitoring.Logf("player %d scored (%d:%d)", player, m.Score(0), m.Score(1))
		m.Ball.Reset()
	}

	for _, paddle := range m.Paddles {
		m.Ball.BounceFromPaddle(paddle, m.rng)
	}

	m.Ball.Tick(m.rng)
}

func (m *Machine) checkControllers() error {
	if m.trackerErr == nil {
		return nil
	}
	select {
	case err, ok := <-m.trackerErr:
		m.trackerErr = nil
		if !ok || err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("controller tracking stopped: %w", err)
	default:
		return nil
	}
}
