package tunnel

import (
	"math"

	"github.com/vovakirdan/cat-tunnel/internal/config"
)

// NormalizeAngle wraps an angle in degrees into [-180, 180] by whole turns.
// Values already in range are returned unchanged. Angles above the range stop
// at the first value <= 180 and angles below it at the first value >= -180,
// so 540 maps to 180 and -540 to -180.
func NormalizeAngle(a float64) float64 {
	switch {
	case a > 180:
		return a - 360*math.Ceil((a-180)/360)
	case a < -180:
		return a + 360*math.Ceil((-180-a)/360)
	}
	return a
}

// CollisionDetector decides whether any tile supports the cat.
type CollisionDetector struct {
	cfg config.TunnelCollision
}

// NewCollisionDetector creates a detector with the given thresholds.
func NewCollisionDetector(cfg config.TunnelCollision) CollisionDetector {
	return CollisionDetector{cfg: cfg}
}

// Supported reports whether an alive block is under the cat: close to the
// cat along the tunnel axis, near the bottom after rotation, and with the cat
// inside the height band just above the tile surface.
func (c CollisionDetector) Supported(blocks []*Block, rotation, avatarZ float64) bool {
	if avatarZ < c.cfg.BandLow || avatarZ > c.cfg.BandHigh {
		return false
	}
	for _, b := range blocks {
		if !b.Alive {
			continue
		}
		if math.Abs(b.Depth) >= c.cfg.SupportDepth {
			continue
		}
		if math.Abs(NormalizeAngle(b.Angle+rotation)) >= c.cfg.SupportAngle {
			continue
		}
		return true
	}
	return false
}
