package movement

import (
	"math"

	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/surface"
)

// ProbePolicy defines where ground probes start.
type ProbePolicy uint8

const (
	// ProbePolicyMidBody starts ground probes at the middle of the body, at the higher of the positions
	// of the body before and after vertical movement. This is the policy of desktop characters.
	ProbePolicyMidBody ProbePolicy = iota
	// ProbePolicySafeHigh starts ground probes at a fixed, safe height above the body. This is the policy
	// of tracked (VR) bodies, whose feet may end up below the ground for a frame.
	ProbePolicySafeHigh
)

func (p ProbePolicy) String() string {
	if p == ProbePolicySafeHigh {
		return "safe_high"
	}
	return "mid_body"
}

// Simulator advances bodies through frames against a set of static surfaces. A Simulator holds no
// per-body state, so a single Simulator may be shared by any number of bodies, as long as Simulate is
// not called concurrently for the same body.
type Simulator struct {
	Config   Config
	Surfaces surface.Set
	Policy   ProbePolicy

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Simulate advances the body by a single frame of dt seconds, moving it as the intent describes. Frames
// with a zero, negative or non-finite dt are skipped and leave the body untouched. Longer frames than
// the MaxFrameDelta of the config are clamped.
func (s *Simulator) Simulate(body *Body, intent Intent, dt float64) Result {
	if body == nil {
		return Result{Outcome: StepOutcomeSkipped}
	}
	if !(dt > 0) || !game.IsFinite(dt) {
		return Result{Outcome: StepOutcomeSkipped, Label: LabelFor(s.Config, body, intent)}
	}
	if s.Config.MaxFrameDelta > 0 {
		dt = math.Min(dt, s.Config.MaxFrameDelta)
	}

	st := &stepper{
		sim:    s,
		cfg:    s.Config,
		body:   body,
		intent: intent,
		dt:     dt,
	}
	st.result.Dt = dt
	st.result.Planned = game.Flatten(intent.Move)

	start := body.Position
	st.vertical()
	st.horizontal()
	body.JumpHeldLast = intent.JumpHeld

	st.result.Displacement = body.Position.Sub(start)
	st.result.Label = LabelFor(s.Config, body, intent)
	return st.result
}

// Step is a convenience function that simulates a single frame of the body with a new Simulator.
func Step(cfg Config, surfaces surface.Set, body *Body, intent Intent, dt float64, policy ProbePolicy) Result {
	sim := Simulator{Config: cfg, Surfaces: surfaces, Policy: policy}
	return sim.Simulate(body, intent, dt)
}

// Place moves the body onto the ground below (or above) its position, probing from a safe height. The
// body is left airborne if no walkable ground is found. It is used to spawn characters.
func (s *Simulator) Place(body *Body) GroundInfo {
	origin := math.Max(body.Position[1]+s.Config.SafeProbeHeight, s.Config.SafeProbeFloor)
	ground := s.ground(body.Position[0], body.Position[2], origin)

	body.Reset(body.Position)
	if ground.Found && s.Config.Walkable(ground.Normal) {
		body.Position[1] = ground.Height
		body.Grounded = true
		body.Phase = PhaseGrounded
		return ground
	}
	if ground.Found {
		body.GroundDistance = body.Position[1] - ground.Height
	} else {
		body.GroundDistance = body.Position[1] - NoGroundHeight
	}
	return ground
}

// stepper holds the state of a single frame of simulation.
type stepper struct {
	sim    *Simulator
	cfg    Config
	body   *Body
	intent Intent
	dt     float64

	result Result
}

func (s *stepper) debugf(format string, args ...any) {
	if s.sim.Debugf != nil {
		s.sim.Debugf(format, args...)
	}
}
