package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	"golang.org/x/image/font"

	"github.com/jtestard/campong/camera"
	"github.com/jtestard/campong/internal/config"
	"github.com/jtestard/campong/internal/devices"
	"github.com/jtestard/campong/internal/monitoring"
	"github.com/jtestard/campong/pong"
	"github.com/jtestard/campong/telemetry"
	"github.com/jtestard/campong/tracking"
)

// errInterrupted ends the game loop after SIGINT.
var errInterrupted = errors.New("interrupted")

// Game is the structure of the game state
type Game struct {
	ctx     context.Context
	cfg     *config.Config
	machine *pong.Machine
	handles [2]*pong.PositionHandle
	hub     *telemetry.Hub

	ballImg *ebiten.Image
	face    font.Face
}

// NewGame creates an initializes a new game
func NewGame(ctx context.Context, cfg *config.Config, controllers pong.Controllers, handles [2]*pong.PositionHandle) (*Game, error) {
	timing, err := cfg.Timing()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g := &Game{
		ctx:     ctx,
		cfg:     cfg,
		handles: handles,
		machine: pong.NewMachine(ctx, cfg.Field(), cfg.Physics, timing, handles, controllers, nil, rng),
	}
	if g.ballImg, err = newBallImage(g.machine.Ball.Radius); err != nil {
		return nil, err
	}
	if g.face, err = newFace(18); err != nil {
		return nil, err
	}
	return g, nil
}

// Update updates the game state
func (g *Game) Update(screen *ebiten.Image) error {
	if g.ctx.Err() != nil {
		return errInterrupted
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.machine.Skip()
	}
	if g.cfg.Input == config.InputCursor {
		g.readCursor()
	}

	if err := g.machine.Update(); err != nil {
		return err
	}
	if g.hub != nil {
		g.hub.Publish(telemetry.NewSnapshot(g.hub.Session(), g.machine))
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	return g.Draw(screen)
}

// readCursor drives both paddles from the mouse.
func (g *Game) readCursor() {
	x, _ := ebiten.CursorPosition()
	if x < 0 {
		x = 0
	}
	if x > g.cfg.Window.Width {
		x = g.cfg.Window.Width
	}
	for _, h := range g.handles {
		h.Store(uint32(x))
	}
}

// Layout sets the screen layout
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// idleControllers stands in for the camera when the mouse drives the paddles.
type idleControllers struct{}

func (idleControllers) Calibrate(context.Context) error     { return nil }
func (idleControllers) Start(context.Context) <-chan error { return nil }

// sweepingControllers tracks a synthetic camera whose markers start moving
// once the background has been captured.
type sweepingControllers struct {
	*tracking.Tracker
	synthetic *camera.Synthetic
	format    camera.Format
}

func (c sweepingControllers) Start(ctx context.Context) <-chan error {
	go devices.Sweep(ctx, c.synthetic, c.format, nil)
	return c.Tracker.Start(ctx)
}

func newControllers(cfg *config.Config, handles [2]*pong.PositionHandle) (pong.Controllers, error) {
	if cfg.Input == config.InputCursor {
		return idleControllers{}, nil
	}

	params, err := cfg.TrackingParams()
	if err != nil {
		return nil, err
	}
	dev, err := devices.Open(cfg)
	if err != nil {
		return nil, err
	}
	tracker := tracking.NewTracker(dev, params, handles[0], handles[1], nil)
	if s, ok := dev.(*camera.Synthetic); ok {
		return sweepingControllers{Tracker: tracker, synthetic: s, format: cfg.Camera.Format}, nil
	}
	return tracker, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	center := uint32(cfg.Window.Width / 2)
	handles := [2]*pong.PositionHandle{pong.NewPositionHandle(center), pong.NewPositionHandle(center)}

	controllers, err := newControllers(cfg, handles)
	if err != nil {
		return err
	}
	g, err := NewGame(ctx, cfg, controllers, handles)
	if err != nil {
		return err
	}

	if cfg.Telemetry.Listen != "" {
		g.hub = telemetry.NewHub()
		fmt.Println("starting telemetry server...")
		go func() {
			if err := g.hub.ListenAndServe(ctx, cfg.Telemetry.Listen); err != nil {
				monitoring.Logf("telemetry server stopped: %v", err)
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetRunnableOnUnfocused(true)

	fmt.Println("starting the game...")
	err = ebiten.RunGame(g)
	if errors.Is(err, errInterrupted) {
		return nil
	}
	return err
}

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	fmt.Println("bootstraping new game...")
	cfg, err := flags.Load()
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(2)
	}
	if cfg.Debug {
		monitoring.SetDebugLogger(log.Printf)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		fmt.Println("game over:", err)
		os.Exit(1)
	}
	cancel()
	fmt.Println("Good game.")
}
