package tunnel

import (
	"math"

	"github.com/vovakirdan/cat-tunnel/internal/config"
	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Avatar is the cat's vertical motion state.
type Avatar struct {
	Position float64 // Height of the body
	Velocity float64
	Grounded bool // True only on a frame where support was found and kept

	physics config.TunnelPhysics
	wobble  float64 // Paw animation phase in [0, 1)
}

// NewAvatar creates an avatar at the configured start height.
func NewAvatar(physics config.TunnelPhysics) Avatar {
	return Avatar{
		Position: physics.StartHeight,
		physics:  physics,
	}
}

// Integrate advances the avatar by one frame. A jump replaces the velocity
// with the impulse and skips gravity for that frame; support stops the cat in
// place; otherwise gravity accelerates it.
func (a *Avatar) Integrate(supported, jumpPressed bool, elapsed float64) {
	switch {
	case supported && jumpPressed:
		a.Velocity = a.physics.JumpImpulse
		a.Grounded = false
	case supported:
		a.Velocity = 0
		a.Grounded = true
	default:
		a.Velocity += a.physics.Gravity * elapsed
		a.Grounded = false
	}
	a.Position += a.Velocity * elapsed
}

// Dead reports whether the cat has fallen out of the tunnel.
func (a *Avatar) Dead() bool {
	return a.Position < a.physics.DeathHeight
}

// Wobble advances the paw animation and returns the offset applied to every
// paw's base position.
func (a *Avatar) Wobble(elapsed float64) vec.Vec3 {
	a.wobble += elapsed / 10
	a.wobble -= math.Floor(a.wobble)
	s := 0.5 * math.Sin(a.wobble*20*2*math.Pi)
	return vec.V3(s, s, 0)
}
