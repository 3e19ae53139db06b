package pong

import "sync/atomic"

// PositionHandle is one player's controller position in window pixels. The
// tracker (or the cursor fallback) stores to it and the paddle loads from it;
// the last store wins.
type PositionHandle struct {
	x    atomic.Uint32
	seen atomic.Bool
}

// NewPositionHandle creates a handle holding x, usually the window center.
func NewPositionHandle(x uint32) *PositionHandle {
	h := &PositionHandle{}
	h.x.Store(x)
	return h
}

// Store publishes a new position.
func (h *PositionHandle) Store(x uint32) {
	h.x.Store(x)
	h.seen.Store(true)
}

// Load returns the latest position.
func (h *PositionHandle) Load() uint32 {
	return h.x.Load()
}

// Seen reports whether any position has been stored since creation.
func (h *PositionHandle) Seen() bool {
	return h.seen.Load()
}
