package movement

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body holds the simulated state of a single character. It is mutated once per frame by a Simulator
// and may be overwritten between frames, for example when teleporting.
type Body struct {
	// Position is the position of the character's feet.
	Position mgl64.Vec3
	// VerticalVelocity is the velocity of the character along the Y axis. It never drops below the
	// MaxFallSpeed of the config it is simulated with.
	VerticalVelocity float64

	// Inertia is the horizontal velocity, on the XZ plane, that is carried while airborne without
	// horizontal control. It is only meaningful if HasInertia is set.
	Inertia    mgl64.Vec2
	HasInertia bool

	// Grounded is true if the character was snapped to walkable ground in the last frame.
	Grounded bool
	// TimeInAir is the time since the character last stood on ground. It is zero while grounded.
	TimeInAir float64
	// JumpCooldown is the time until the character may jump again.
	JumpCooldown float64

	Phase Phase
	// JetpackTimer is the remaining time of the jetpack fade-out while in PhaseJetpackTransition.
	JetpackTimer float64
	// JumpHeldLast is whether jump was held in the previous frame.
	JumpHeldLast bool

	// GroundDistance is the distance between the feet and the ground below, as measured by the last
	// ground probe. It is zero while grounded.
	GroundDistance float64
}

// JetpackActive returns true if the jetpack is producing full thrust.
func (b *Body) JetpackActive() bool {
	return b.Phase == PhaseJetpackActive
}

// FunctionallyGrounded returns true if the body is on the ground, or has been off the ground for no
// longer than the air time threshold of the config. Brief losses of ground contact therefore do not
// affect control or the reported movement state.
func (b *Body) FunctionallyGrounded(cfg Config) bool {
	return b.Grounded || b.TimeInAir <= cfg.AirTimeThreshold
}

// Velocity returns the horizontal inertia and vertical velocity of the body as a single vector.
func (b *Body) Velocity() mgl64.Vec3 {
	return mgl64.Vec3{b.Inertia[0], b.VerticalVelocity, b.Inertia[1]}
}

// ClearInertia removes any horizontal velocity carried by the body.
func (b *Body) ClearInertia() {
	b.Inertia = mgl64.Vec2{}
	b.HasInertia = false
}

// Reset places the body at the position given, clearing all motion. The body is left airborne so that
// the next frame finds the ground below it.
func (b *Body) Reset(pos mgl64.Vec3) {
	*b = Body{
		Position:     pos,
		Phase:        PhaseAirborne,
		JumpHeldLast: b.JumpHeldLast,
	}
}
