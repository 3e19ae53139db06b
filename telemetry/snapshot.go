package telemetry

import "github.com/jtestard/campong/pong"

// Snapshot is the game state sent to spectators after every update.
type Snapshot struct {
	Session string         `json:"session"`
	Phase   string         `json:"phase"`
	Ball    BallState      `json:"ball"`
	Paddles [2]PaddleState `json:"paddles"`
}

type BallState struct {
	Center    pong.Position `json:"center"`
	Direction pong.Position `json:"direction"`
	Velocity  float64       `json:"velocity"`
	Radius    float64       `json:"radius"`
}

type PaddleState struct {
	Player   int           `json:"player"`
	Position pong.Position `json:"position"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Score    int           `json:"score"`
}

// NewSnapshot captures m. It must be called from the goroutine driving
// m.Update.
func NewSnapshot(session string, m *pong.Machine) Snapshot {
	s := Snapshot{
		Session: session,
		Phase:   m.Phase().String(),
		Ball: BallState{
			Center:    m.Ball.Center,
			Direction: m.Ball.Direction,
			Velocity:  m.Ball.Velocity,
			Radius:    m.Ball.Radius,
		},
	}
	for i, p := range m.Paddles {
		s.Paddles[i] = PaddleState{
			Player:   p.PlayerID,
			Position: p.Position(),
			Width:    p.Width,
			Height:   p.Height,
			Score:    m.Score(p.PlayerID),
		}
	}
	return s
}
