package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhysicsValidate(t *testing.T) {
	assert.NoError(t, DefaultPhysics().Validate())

	tests := []struct {
		name   string
		mutate func(*Physics)
	}{
		{"velocity range inverted", func(p *Physics) { p.MinVelocity = 20 }},
		{"acceleration range inverted", func(p *Physics) { p.MaxAcceleration = -1 }},
		{"base velocity too fast", func(p *Physics) { p.BaseVelocity = 100 }},
		{"ball cannot rest", func(p *Physics) { p.MinAcceleration = 1 }},
		{"zero increment", func(p *Physics) { p.AccelerationIncrement = 0 }},
		{"increment above one", func(p *Physics) { p.AccelerationIncrement = 1.5 }},
		{"zero decrement", func(p *Physics) { p.VelocityDecrement = 0 }},
		{"negative jitter", func(p *Physics) { p.RandomBounceBound = -0.1 }},
		{"no ball", func(p *Physics) { p.BallRadius = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPhysics()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
