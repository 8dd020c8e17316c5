package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/surface"
)

// MirrorInput is the state of a tracked (VR) body together with the movement planned for a frame. The
// caller owns the state and passes it in each frame, feeding back the MirrorOutput of the last frame.
type MirrorInput struct {
	Position mgl64.Vec3
	// Velocity is the velocity of the body. Only the Y component is used, horizontal motion comes from
	// PlannedMove and Inertia.
	Velocity mgl64.Vec3
	// PlannedMove is the horizontal displacement planned for the frame, in world space.
	PlannedMove mgl64.Vec3
	Dt          float64

	Grounded               bool
	AirTime                float64
	JetpackActive          bool
	JetpackTransitionTimer float64

	JumpHeld     bool
	JumpHeldLast bool
	JumpCooldown float64

	Inertia    mgl64.Vec2
	HasInertia bool

	// Run marks the planned movement as running, which only affects the reported label.
	Run bool
}

// MirrorOutput is the state of a tracked body after a frame.
type MirrorOutput struct {
	Position mgl64.Vec3
	// Velocity holds the horizontal velocity applied in the frame and the vertical velocity of the body.
	Velocity mgl64.Vec3

	Grounded               bool
	AirTime                float64
	JetpackActive          bool
	JetpackTransitionTimer float64

	JumpHeldLast bool
	JumpCooldown float64

	Inertia    mgl64.Vec2
	HasInertia bool

	Label          Label
	GroundDistance float64
}

// Mirror simulates a single frame of a tracked body. It runs exactly the same simulation as desktop
// characters, only probing the ground from a safe height. Given the same state and planned movement,
// the resulting state is identical to that of a desktop character.
func Mirror(cfg Config, surfaces surface.Set, in MirrorInput) MirrorOutput {
	body := in.Body()
	sim := Simulator{Config: cfg, Surfaces: surfaces, Policy: ProbePolicySafeHigh}
	res := sim.Simulate(&body, Intent{
		Move:     in.PlannedMove,
		Active:   game.Vec3HzDistSqr(in.PlannedMove) > game.Epsilon*game.Epsilon,
		Run:      in.Run,
		JumpHeld: in.JumpHeld,
	}, in.Dt)

	out := MirrorFromBody(body)
	out.Label = res.Label
	if res.Outcome == StepOutcomeNormal {
		out.Velocity[0] = res.Horizontal[0] / res.Dt
		out.Velocity[2] = res.Horizontal[2] / res.Dt
	} else {
		out.Velocity = in.Velocity
	}
	return out
}

// Body converts the input into the body it describes. The phase of the body is derived from the flags:
// grounded bodies are in PhaseGrounded even if JetpackActive is set, as landing always ends the jetpack.
func (in MirrorInput) Body() Body {
	b := Body{
		Position:         in.Position,
		VerticalVelocity: in.Velocity[1],
		Inertia:          in.Inertia,
		HasInertia:       in.HasInertia,
		Grounded:         in.Grounded,
		TimeInAir:        in.AirTime,
		JumpCooldown:     in.JumpCooldown,
		JetpackTimer:     in.JetpackTransitionTimer,
		JumpHeldLast:     in.JumpHeldLast,
	}
	switch {
	case in.Grounded:
		b.Phase = PhaseGrounded
		b.TimeInAir = 0
		b.JetpackTimer = 0
	case in.JetpackActive:
		b.Phase = PhaseJetpackActive
		b.JetpackTimer = 0
	case in.JetpackTransitionTimer > 0:
		b.Phase = PhaseJetpackTransition
	default:
		b.Phase = PhaseAirborne
	}
	return b
}

// MirrorFromBody returns the mirror state of the body passed.
func MirrorFromBody(b Body) MirrorOutput {
	return MirrorOutput{
		Position:               b.Position,
		Velocity:               b.Velocity(),
		Grounded:               b.Grounded,
		AirTime:                b.TimeInAir,
		JetpackActive:          b.Phase == PhaseJetpackActive,
		JetpackTransitionTimer: b.JetpackTimer,
		JumpHeldLast:           b.JumpHeldLast,
		JumpCooldown:           b.JumpCooldown,
		Inertia:                b.Inertia,
		HasInertia:             b.HasInertia,
		GroundDistance:         b.GroundDistance,
	}
}

// Next returns the input of the following frame, carrying over the state of the output.
func (out MirrorOutput) Next(plannedMove mgl64.Vec3, dt float64, jumpHeld, run bool) MirrorInput {
	return MirrorInput{
		Position:               out.Position,
		Velocity:               out.Velocity,
		PlannedMove:            plannedMove,
		Dt:                     dt,
		Grounded:               out.Grounded,
		AirTime:                out.AirTime,
		JetpackActive:          out.JetpackActive,
		JetpackTransitionTimer: out.JetpackTransitionTimer,
		JumpHeld:               jumpHeld,
		JumpHeldLast:           out.JumpHeldLast,
		JumpCooldown:           out.JumpCooldown,
		Inertia:                out.Inertia,
		HasInertia:             out.HasInertia,
		Run:                    run,
	}
}

// Body returns the body described by the output.
func (out MirrorOutput) Body() Body {
	b := out.Next(mgl64.Vec3{}, 0, false, false).Body()
	b.GroundDistance = out.GroundDistance
	return b
}
