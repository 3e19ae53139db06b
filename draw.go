package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jtestard/campong/pong"
)

func newFace(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// newBallImage rasterises a white disc; Draw tints it with the ball color.
func newBallImage(radius float64) (*ebiten.Image, error) {
	d := int(radius * 2)
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r2 := radius * radius
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx, dy := float64(x)+0.5-radius, float64(y)+0.5-radius
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, color.White)
			}
		}
	}
	return ebiten.NewImageFromImage(img, ebiten.FilterDefault)
}

// Draw updates the game screen elements drawn
func (g *Game) Draw(screen *ebiten.Image) error {
	if err := screen.Fill(pong.BgColor); err != nil {
		return err
	}

	g.drawCaption(screen)
	for _, p := range g.machine.Paddles {
		pos := p.Position()
		ebitenutil.DrawRect(screen, pos.X, pos.Y, p.Width, p.Height, p.Color)
	}
	if _, ok := g.machine.Phase().(pong.PlaysPong); ok {
		if err := g.drawBall(screen); err != nil {
			return err
		}
	}

	return ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f", ebiten.CurrentTPS()))
}

func (g *Game) drawBall(screen *ebiten.Image) error {
	b := g.machine.Ball
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.Center.X-b.Radius, b.Center.Y-b.Radius)
	op.ColorM.Scale(float64(b.Color.R)/255, float64(b.Color.G)/255, float64(b.Color.B)/255, 1)
	return screen.DrawImage(g.ballImg, op)
}

func (g *Game) drawCaption(screen *ebiten.Image) {
	w, h := screen.Size()
	var lines []string
	switch p := g.machine.Phase().(type) {
	case pong.CalibratesBackground:
		lines = []string{"Step out of the camera's view", fmt.Sprintf("Snapshot in %d", p.Countdown)}
	case pong.ReadsController:
		lines = []string{"Hold up your controllers", "SPACE to start anyway"}
	case pong.PlaysPong:
		// scores on the left edge, each next to its own half
		text.Draw(screen, fmt.Sprint(g.machine.Score(0)), g.face, 10, h/2-10, pong.PaddleColors[0])
		text.Draw(screen, fmt.Sprint(g.machine.Score(1)), g.face, 10, h/2+28, pong.PaddleColors[1])
		return
	}
	for i, l := range lines {
		x := (w - font.MeasureString(g.face, l).Ceil()) / 2
		text.Draw(screen, l, g.face, x, h/2+i*28, pong.ObjColor)
	}
}
