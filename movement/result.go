package movement

import "github.com/go-gl/mathgl/mgl64"

// Label is the movement state of a character as exposed to animation.
type Label uint8

const (
	LabelIdle Label = iota
	LabelWalk
	LabelRun
	LabelJetpack
)

func (l Label) String() string {
	switch l {
	case LabelIdle:
		return "idle"
	case LabelWalk:
		return "walk"
	case LabelRun:
		return "run"
	case LabelJetpack:
		return "jetpack"
	default:
		return "unknown"
	}
}

// LabelFor returns the movement state of a body that moved with the intent given.
func LabelFor(cfg Config, b *Body, intent Intent) Label {
	switch {
	case b.Phase == PhaseJetpackActive || b.Phase == PhaseJetpackTransition:
		return LabelJetpack
	case !b.FunctionallyGrounded(cfg) || !intent.Active:
		return LabelIdle
	case intent.Run:
		return LabelRun
	default:
		return LabelWalk
	}
}

// StepOutcome describes which path the simulator took for a frame.
type StepOutcome uint8

const (
	StepOutcomeNormal StepOutcome = iota
	// StepOutcomeSkipped is returned for frames with a zero, negative or non-finite delta time.
	StepOutcomeSkipped
)

// GroundInfo holds the result of a ground probe.
type GroundInfo struct {
	// Height is the height of the ground below the probe, or NoGroundHeight if nothing was found.
	Height float64
	Normal mgl64.Vec3
	Found  bool
}

// CollisionResult holds the result of a ceiling or forward probe.
type CollisionResult struct {
	Hit      bool
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	// Walkable is true if the normal of the surface hit is no steeper than the maximum slope.
	Walkable bool
}

// Result captures the outcome of a single frame.
type Result struct {
	// Dt is the delta time that was simulated, after clamping.
	Dt float64
	// Planned is the horizontal displacement the character intended to make.
	Planned mgl64.Vec3
	// Horizontal is the horizontal displacement that was applied after collisions.
	Horizontal mgl64.Vec3
	// Displacement is the total change in position over the frame.
	Displacement mgl64.Vec3

	Ground GroundInfo

	// Controlled is true if the character had horizontal control in the frame.
	Controlled bool
	// CarriedInertia is true if the horizontal displacement came from inertia.
	CarriedInertia bool
	// Blocked is true if the look-ahead check found unwalkable terrain or a cliff ahead.
	Blocked bool
	// Collided is true if the forward probe hit an obstruction that changed the displacement.
	Collided bool
	// Steep is true if the body fell into unwalkable ground and was moved downhill along it.
	Steep bool
	// HitCeiling is true if the character's head was stopped by a ceiling.
	HitCeiling bool

	Transitions []Transition
	Label       Label
	Outcome     StepOutcome
}
