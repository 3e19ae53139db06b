package pong

import (
	"image/color"
	"math"
)

// degenerateScale is the smallest direction component Bounce will divide by.
const degenerateScale = 1e-9

// Ball is the ball's position and motion.
type Ball struct {
	// Center of the ball in window pixels.
	Center Position `json:"center"`

	Radius float64 `json:"radius"`

	// Velocity is the distance travelled per tick along Direction.
	Velocity float64 `json:"velocity"`

	// Acceleration is banked by bounces and converted into velocity over
	// the following ticks.
	Acceleration float64 `json:"acceleration"`

	// Direction has its dominant component at ±1 after any bounce; it is
	// not unit length.
	Direction Position `json:"direction"`

	Color color.RGBA `json:"-"`

	field   Field
	physics Physics
}

// NewBall creates a ball in its default state.
func NewBall(field Field, p Physics) *Ball {
	b := &Ball{field: field, physics: p}
	b.Reset()
	return b
}

// Reset puts the ball back in the middle of the field at base speed.
func (b *Ball) Reset() {
	b.Center = b.field.Center()
	b.Radius = b.physics.BallRadius
	b.Velocity = b.physics.BaseVelocity
	b.Acceleration = 0
	b.Direction = b.physics.BaseDirection
	b.Color = ObjColor
}

// Tick advances the ball by one frame: wall bounce, then acceleration, then
// movement.
func (b *Ball) Tick(rng Rand) {
	b.BounceFromWall(rng)

	p := &b.physics
	if b.Acceleration < 1 {
		b.Acceleration = 0
		b.Velocity = clamp(b.Velocity*p.VelocityDecrement, p.MinVelocity, p.MaxVelocity)
	} else {
		gain := b.Acceleration * p.AccelerationIncrement
		b.Velocity = clamp(b.Velocity+gain, p.MinVelocity, p.MaxVelocity)
		b.Acceleration = clamp(b.Acceleration-gain, p.MinAcceleration, p.MaxAcceleration)
	}

	b.Center.X += b.Velocity * b.Direction.X
	b.Center.Y += b.Velocity * b.Direction.Y
}

// BounceFromWall reflects the ball off the left or right edge when its
// leading edge has reached it. A ball already heading back into the field is
// left alone.
func (b *Ball) BounceFromWall(rng Rand) bool {
	hitLeft := b.Center.X-b.Radius <= 0 && b.Direction.X < 0
	hitRight := b.Center.X+b.Radius >= b.field.Width && b.Direction.X > 0
	if !hitLeft && !hitRight {
		return false
	}
	b.Bounce(Position{X: -1, Y: 1}, b.physics.WallBounceAcceleration, rng)
	return true
}

// BounceFromPaddle bounces the ball off p if they touch. Only a ball moving
// toward the paddle's edge of the field can bounce: up for paddle 0, down for
// paddle 1. Hitting a corner reverses both axes, hitting the face reverses
// the vertical axis only.
func (b *Ball) BounceFromPaddle(p *Paddle, rng Rand) bool {
	top := p.PlayerID == 0
	if top && b.Direction.Y >= 0 || !top && b.Direction.Y <= 0 {
		return false
	}

	r2 := b.Radius * b.Radius
	for _, c := range p.Corners() {
		dx, dy := b.Center.X-c.X, b.Center.Y-c.Y
		if dx*dx+dy*dy <= r2 {
			b.hit(p, Position{X: -1, Y: -1}, rng)
			return true
		}
	}

	pos := p.Position()
	if top {
		face := pos.Y + p.Height
		if b.Center.Y-b.Radius > face || b.Center.Y < pos.Y {
			return false
		}
	} else {
		face := pos.Y
		if b.Center.Y+b.Radius < face || b.Center.Y > pos.Y+p.Height {
			return false
		}
	}

	if b.Center.X+b.Radius >= pos.X && b.Center.X-b.Radius <= pos.X+p.Width {
		b.hit(p, Position{X: 1, Y: -1}, rng)
		return true
	}
	return false
}

func (b *Ball) hit(p *Paddle, t Position, rng Rand) {
	b.Bounce(t, b.physics.PaddleBounceAcceleration, rng)
	b.Color = p.Color
}

// Bounce multiplies the direction by t componentwise, adds the same random
// jitter to both components and rescales so the larger component is ±1.
// bonus is added to the acceleration.
func (b *Ball) Bounce(t Position, bonus float64, rng Rand) {
	p := &b.physics
	b.Acceleration = clamp(b.Acceleration+bonus, p.MinAcceleration, p.MaxAcceleration)

	jitter := (rng.Float64()*2 - 1) * p.RandomBounceBound
	x := b.Direction.X*t.X + jitter
	y := b.Direction.Y*t.Y + jitter

	if scale := math.Max(math.Abs(x), math.Abs(y)); scale >= degenerateScale {
		b.Direction = Position{X: x / scale, Y: y / scale}
		return
	}

	// The jitter cancelled the direction out; bounce without it.
	x, y = b.Direction.X*t.X, b.Direction.Y*t.Y
	if scale := math.Max(math.Abs(x), math.Abs(y)); scale >= degenerateScale {
		b.Direction = Position{X: x / scale, Y: y / scale}
	}
}

// PlayerScored reports which player scored: 0 once the ball reaches the
// bottom edge, 1 once it reaches the top edge.
func (b *Ball) PlayerScored() (int, bool) {
	switch {
	case b.Center.Y+b.Radius >= b.field.Height:
		return 0, true
	case b.Center.Y-b.Radius <= 0:
		return 1, true
	default:
		return 0, false
	}
}
