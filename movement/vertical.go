package movement

import (
	"math"

	"github.com/oomph-ac/charsim/game"
)

// vertical runs the phase machine of the body and integrates its vertical motion, snapping the body
// to the ground when it reaches it.
func (s *stepper) vertical() {
	b, cfg, dt := s.body, s.cfg, s.dt
	prevY := b.Position[1]

	b.JumpCooldown = math.Max(0, b.JumpCooldown-dt)
	pressed := s.intent.JumpHeld && !b.JumpHeldLast
	held := s.intent.JumpHeld && b.JumpHeldLast

	switch {
	case b.Phase == PhaseGrounded && pressed && b.JumpCooldown <= 0:
		b.VerticalVelocity = cfg.JumpImpulse
		b.Grounded = false
		b.JumpCooldown = cfg.JumpCooldown
		s.setPhase(PhaseAirborne)
	case (b.Phase == PhaseAirborne || b.Phase == PhaseJetpackTransition) && held && b.TimeInAir > cfg.AirTimeThreshold:
		s.setPhase(PhaseJetpackActive)
		b.JetpackTimer = 0
		b.ClearInertia()
	case b.Phase == PhaseJetpackActive && !s.intent.JumpHeld:
		s.setPhase(PhaseJetpackTransition)
		b.JetpackTimer = cfg.JetpackTransitionDuration
	}

	switch b.Phase {
	case PhaseJetpackActive:
		b.VerticalVelocity += cfg.JetpackThrust * dt
	case PhaseJetpackTransition:
		b.VerticalVelocity += cfg.JetpackThrust * (b.JetpackTimer / cfg.JetpackTransitionDuration) * dt
		b.JetpackTimer -= dt
		if b.JetpackTimer <= 0 {
			b.JetpackTimer = 0
			s.setPhase(PhaseAirborne)
		}
	}

	b.VerticalVelocity += cfg.Gravity * dt
	b.VerticalVelocity = math.Max(b.VerticalVelocity, cfg.MaxFallSpeed)
	b.Position[1] += b.VerticalVelocity * dt

	if b.VerticalVelocity > 0 {
		s.clampCeiling(prevY)
	}
	if cfg.MaxHeight > 0 && b.Position[1] > cfg.MaxHeight {
		b.Position[1] = cfg.MaxHeight
		b.VerticalVelocity = math.Min(b.VerticalVelocity, 0)
	}
	s.settle(prevY)
}

// clampCeiling stops the body if its head moved into a ceiling in the current frame.
func (s *stepper) clampCeiling(prevY float64) {
	b := s.body
	start := b.Position
	start[1] = prevY

	res := s.sim.ceiling(start, b.Position[1]-prevY)
	if !res.Hit || res.Point[1] >= b.Position[1]+s.cfg.Height {
		return
	}
	b.Position[1] = math.Max(res.Point[1]-s.cfg.Height, prevY)
	b.VerticalVelocity = 0
	s.result.HitCeiling = true
	s.debugf("ceiling hit at %.4f", res.Point[1])
}

// settle probes the ground below the body and snaps the body to it if the body reached walkable ground.
func (s *stepper) settle(prevY float64) {
	b := s.body
	ground := s.sim.ground(b.Position[0], b.Position[2], s.sim.groundOrigin(prevY, b.Position[1]))
	s.result.Ground = ground

	b.GroundDistance = b.Position[1] - ground.Height
	if ground.Found && b.GroundDistance <= 0 && s.cfg.Walkable(ground.Normal) {
		b.Position[1] = ground.Height
		b.VerticalVelocity = 0
		b.Grounded = true
		b.TimeInAir = 0
		b.JetpackTimer = 0
		b.GroundDistance = 0
		b.ClearInertia()
		s.setPhase(PhaseGrounded)
		return
	}

	if ground.Found && b.GroundDistance <= 0 {
		s.slideDown(ground)
	}
	b.Grounded = false
	b.TimeInAir += s.dt
	if b.Phase == PhaseGrounded {
		s.setPhase(PhaseAirborne)
	}
}

// slideDown moves a body that fell into unwalkable ground downhill along it, by the horizontal distance
// at which the ground is level with the feet. The move is probed from the height of the ground so that
// it slides along obstructions downhill instead of passing through them. The body stays airborne while
// on steep ground.
func (s *stepper) slideDown(ground GroundInfo) {
	b, n := s.body, ground.Normal
	downhill, ok := game.FlatNormal(n)
	if !ok || n[1] <= 0 {
		return
	}
	depth := ground.Height - b.Position[1]
	shift := downhill.Mul(depth * n[1] / math.Hypot(n[0], n[2]))

	level := b.Position
	level[1] = ground.Height
	if wall, hit := s.obstructionFrom(level, shift); hit {
		shift = Slide(shift, wall)
		s.result.Collided = true
	}
	b.Position = b.Position.Add(shift)
	b.GroundDistance = 0
	s.result.Steep = true
}
