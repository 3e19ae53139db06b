package pong

import "fmt"

// Physics holds the ball's tuning constants.
type Physics struct {
	MinVelocity float64 `json:"min_velocity"`
	MaxVelocity float64 `json:"max_velocity"`

	MinAcceleration float64 `json:"min_acceleration"`
	MaxAcceleration float64 `json:"max_acceleration"`

	// AccelerationIncrement is the fraction of acceleration converted into
	// velocity each tick.
	AccelerationIncrement float64 `json:"acceleration_increment"`

	// VelocityDecrement multiplies velocity each tick once acceleration is
	// spent.
	VelocityDecrement float64 `json:"velocity_decrement"`

	WallBounceAcceleration   float64 `json:"wall_bounce_acceleration"`
	PaddleBounceAcceleration float64 `json:"paddle_bounce_acceleration"`

	// RandomBounceBound limits the jitter added to a bounced direction.
	RandomBounceBound float64 `json:"random_bounce_bound"`

	// Ball defaults, restored after every score.
	BallRadius    float64  `json:"ball_radius"`
	BaseVelocity  float64  `json:"base_velocity"`
	BaseDirection Position `json:"base_direction"`
}

// DefaultPhysics returns the standard tuning.
func DefaultPhysics() Physics {
	return Physics{
		MinVelocity:              5,
		MaxVelocity:              9,
		MinAcceleration:          0,
		MaxAcceleration:          10,
		AccelerationIncrement:    0.1,
		VelocityDecrement:        0.99,
		WallBounceAcceleration:   0.5,
		PaddleBounceAcceleration: 3,
		RandomBounceBound:        0.2,
		BallRadius:               15,
		BaseVelocity:             5,
		BaseDirection:            Position{X: 1, Y: 0.15},
	}
}

// Validate checks the bounds are ordered and the defaults lie within them.
func (p Physics) Validate() error {
	if p.MinVelocity > p.MaxVelocity {
		return fmt.Errorf("min velocity %v exceeds max velocity %v", p.MinVelocity, p.MaxVelocity)
	}
	if p.MinAcceleration > p.MaxAcceleration {
		return fmt.Errorf("min acceleration %v exceeds max acceleration %v", p.MinAcceleration, p.MaxAcceleration)
	}
	if p.BaseVelocity < p.MinVelocity || p.BaseVelocity > p.MaxVelocity {
		return fmt.Errorf("base velocity %v outside [%v, %v]", p.BaseVelocity, p.MinVelocity, p.MaxVelocity)
	}
	if p.MinAcceleration > 0 {
		return fmt.Errorf("min acceleration %v must allow a resting ball", p.MinAcceleration)
	}
	if p.AccelerationIncrement <= 0 || p.AccelerationIncrement > 1 {
		return fmt.Errorf("acceleration increment %v outside (0, 1]", p.AccelerationIncrement)
	}
	if p.VelocityDecrement <= 0 {
		return fmt.Errorf("velocity decrement must be positive, got %v", p.VelocityDecrement)
	}
	if p.RandomBounceBound < 0 {
		return fmt.Errorf("random bounce bound must be non-negative, got %v", p.RandomBounceBound)
	}
	if p.BallRadius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %v", p.BallRadius)
	}
	return nil
}
