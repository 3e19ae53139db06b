package pong

import "image/color"

// Default paddle size in window pixels.
const (
	PaddleWidth  = 50
	PaddleHeight = 10
)

// Paddle is one player's bat. Player 0 sits on the top edge, player 1 on
// the bottom edge; the horizontal position follows the player's controller.
type Paddle struct {
	PlayerID int     `json:"player_id"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`

	// Deaths counts the balls this paddle let through.
	Deaths int `json:"deaths"`

	Color color.RGBA `json:"-"`

	x     *PositionHandle
	field Field
}

// NewPaddle spawns the paddle for player id, reading its position from x.
func NewPaddle(id int, x *PositionHandle, field Field) *Paddle {
	return &Paddle{
		PlayerID: id,
		Width:    PaddleWidth,
		Height:   PaddleHeight,
		Color:    PaddleColors[id%len(PaddleColors)],
		x:        x,
		field:    field,
	}
}

// Position returns the top left corner of the paddle. The paddle is centered
// on the controller but never leaves the field.
func (p *Paddle) Position() Position {
	x := clamp(float64(p.x.Load())-p.Width/2, 0, p.field.Width-p.Width)
	return Position{
		X: x,
		Y: float64(p.PlayerID) * (p.field.Height - p.Height),
	}
}

// Corners returns the paddle's corners, clockwise from the top left.
func (p *Paddle) Corners() [4]Position {
	pos := p.Position()
	return [4]Position{
		pos,
		{X: pos.X + p.Width, Y: pos.Y},
		{X: pos.X + p.Width, Y: pos.Y + p.Height},
		{X: pos.X, Y: pos.Y + p.Height},
	}
}

// Handle returns the position handle the paddle follows.
func (p *Paddle) Handle() *PositionHandle {
	return p.x
}
