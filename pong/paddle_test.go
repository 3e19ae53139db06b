package pong

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaddlePosition(t *testing.T) {
	h := NewPositionHandle(250)
	top := NewPaddle(0, h, testField)
	bottom := NewPaddle(1, h, testField)

	assert.Equal(t, Position{X: 225, Y: 0}, top.Position())
	assert.Equal(t, Position{X: 225, Y: 590}, bottom.Position())
	assert.Equal(t, PaddleColors[0], top.Color)
	assert.Equal(t, PaddleColors[1], bottom.Color)
}

func TestPaddlePositionClamped(t *testing.T) {
	h := NewPositionHandle(0)
	p := NewPaddle(0, h, testField)
	assert.Equal(t, 0.0, p.Position().X)

	h.Store(500)
	assert.Equal(t, 450.0, p.Position().X)

	h.Store(10000)
	assert.Equal(t, 450.0, p.Position().X)
}

func TestPaddleCorners(t *testing.T) {
	p := NewPaddle(1, NewPositionHandle(250), testField)
	assert.Equal(t, [4]Position{
		{X: 225, Y: 590}, {X: 275, Y: 590}, {X: 275, Y: 600}, {X: 225, Y: 600},
	}, p.Corners())
}

func TestPositionHandle(t *testing.T) {
	h := NewPositionHandle(250)
	assert.Equal(t, uint32(250), h.Load())
	assert.False(t, h.Seen(), "the initial value is not a sighting")

	h.Store(40)
	assert.Equal(t, uint32(40), h.Load())
	assert.True(t, h.Seen())
}

func TestPositionHandleConcurrentAccess(t *testing.T) {
	h := NewPositionHandle(0)
	p := NewPaddle(0, h, testField)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < 1000; i++ {
			h.Store(i % 500)
		}
	}()
	for i := 0; i < 1000; i++ {
		x := p.Position().X
		if x < 0 || x > testField.Width-p.Width {
			t.Fatalf("paddle left the field: %v", x)
		}
	}
	wg.Wait()
}

func TestBounceFromPaddle(t *testing.T) {
	tests := []struct {
		name    string
		player  int
		center  Position
		dir     Position
		want    Position
		bounced bool
	}{
		{"bottom face", 1, Position{X: 250, Y: 577}, Position{X: 0.3, Y: 1}, Position{X: 0.3, Y: -1}, true},
		{"bottom corner", 1, Position{X: 220, Y: 585}, Position{X: 0.5, Y: 1}, Position{X: -0.5, Y: -1}, true},
		{"bottom ignores a ball moving away", 1, Position{X: 250, Y: 577}, Position{X: 0.3, Y: -1}, Position{X: 0.3, Y: -1}, false},
		{"bottom not reached yet", 1, Position{X: 250, Y: 500}, Position{X: 0.3, Y: 1}, Position{X: 0.3, Y: 1}, false},
		{"bottom beside the paddle", 1, Position{X: 100, Y: 580}, Position{X: 0.3, Y: 1}, Position{X: 0.3, Y: 1}, false},
		{"bottom past the far edge", 1, Position{X: 250, Y: 601}, Position{X: 0.3, Y: 1}, Position{X: 0.3, Y: 1}, false},
		{"top face", 0, Position{X: 250, Y: 20}, Position{X: 0.2, Y: -1}, Position{X: 0.2, Y: 1}, true},
		{"top corner", 0, Position{X: 280, Y: 15}, Position{X: -1, Y: -0.5}, Position{X: 1, Y: 0.5}, true},
		{"top ignores a ball moving away", 0, Position{X: 250, Y: 20}, Position{X: 0.2, Y: 1}, Position{X: 0.2, Y: 1}, false},
		{"top ignores a level ball", 0, Position{X: 250, Y: 20}, Position{X: 1, Y: 0}, Position{X: 1, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPhysics()
			b := NewBall(testField, p)
			b.Center, b.Direction = tt.center, tt.dir
			paddle := NewPaddle(tt.player, NewPositionHandle(250), testField)

			assert.Equal(t, tt.bounced, b.BounceFromPaddle(paddle, noJitter))
			assert.InDelta(t, tt.want.X, b.Direction.X, 1e-9)
			assert.InDelta(t, tt.want.Y, b.Direction.Y, 1e-9)
			if tt.bounced {
				assert.Equal(t, p.PaddleBounceAcceleration, b.Acceleration)
				assert.Equal(t, paddle.Color, b.Color)
			} else {
				assert.Zero(t, b.Acceleration)
				assert.Equal(t, ObjColor, b.Color)
			}
		})
	}
}
