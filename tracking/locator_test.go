package tracking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func zeroBackground(n int, threshold byte) Background {
	return Background{Profile: NewProfile(n), Threshold: threshold}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		live   Profile
		want   uint32
		wantOK bool
	}{
		{"single streak", Profile{0, 0, 50, 60, 50, 0, 0, 0}, 300, true},
		{"equal ratings keep the earlier streak", Profile{0, 40, 40, 0, 0, 40, 40, 0}, 100, true},
		{"stronger later streak wins", Profile{0, 40, 0, 0, 0, 50, 50, 0}, 500, true},
		{"streak open at the last column", Profile{0, 0, 0, 0, 0, 0, 90, 90}, 600, true},
		{"midpoint rounds toward the start", Profile{0, 0, 90, 90, 90, 90, 0, 0}, 300, true},
		{"uniform change has no streak", Profile{30, 30, 30, 30, 30, 30, 30, 30}, 0, false},
		{"below threshold", Profile{0, 0, 0, 0, 0, 0, 0, 70}, 0, false},
	}
	bg := zeroBackground(8, 10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(bg, tt.live, 800)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateRescaleTruncates(t *testing.T) {
	x, ok := Locate(zeroBackground(3, 1), Profile{0, 90, 0}, 500)
	assert.True(t, ok)
	assert.Equal(t, uint32(166), x)
}

func TestLocateBelowThresholdNeverFound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bg := Background{Profile: Profile(repeat(100, 32)), Threshold: 10}
	for i := 0; i < 500; i++ {
		live := NewProfile(32)
		for c := range live {
			// distances stay under 10, so their average does too
			live[c] = byte(100 + rng.Intn(19) - 9)
		}
		_, ok := Locate(bg, live, 1280)
		if ok {
			t.Fatalf("located a controller in %v", live)
		}
	}
}

func TestLocateStaysInWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bg := zeroBackground(64, 10)
	const width = 500
	for i := 0; i < 500; i++ {
		live := NewProfile(64)
		rng.Read(live)
		if x, ok := Locate(bg, live, width); ok && x > width {
			t.Fatalf("position %d outside window of %d", x, width)
		}
	}
}
