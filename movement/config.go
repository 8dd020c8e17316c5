package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/oerror"
)

// Config holds the tuning of a character. A Config is read-only for the lifetime of a controller;
// replacing it is a configuration operation and never happens during a frame.
type Config struct {
	// WalkSpeed and RunSpeed are horizontal speeds in meters per second.
	WalkSpeed float64
	RunSpeed  float64
	// JumpImpulse is the vertical velocity set when jumping.
	JumpImpulse float64
	// Gravity is the vertical acceleration, negative for a downward pull.
	Gravity float64
	// MaxFallSpeed is the lowest (most negative) vertical velocity allowed.
	MaxFallSpeed float64
	// JumpCooldown is the time after a jump during which another jump is not possible.
	JumpCooldown float64
	// JetpackThrust is the upward acceleration of the jetpack. It must exceed the magnitude of Gravity
	// for the jetpack to produce lift.
	JetpackThrust float64
	// JetpackTransitionDuration is the time over which jetpack thrust fades out after release.
	JetpackTransitionDuration float64
	// AirTimeThreshold is the time a character may spend off the ground while still being treated as
	// grounded for control and the reported movement state. It is also the air time after which holding
	// jump engages the jetpack.
	AirTimeThreshold float64
	// MaxSlopeAngle is the steepest walkable slope, in degrees.
	MaxSlopeAngle float64
	// MaxStepHeight is the largest change in ground height that is walkable regardless of slope.
	MaxStepHeight float64
	// ForwardProbeDistance bounds the probe for obstructions in the direction of movement.
	ForwardProbeDistance float64
	// CeilingProbeDistance bounds the upward probe from the center of the body.
	CeilingProbeDistance float64
	// Height is the height of the character's body.
	Height float64
	// TurnRate is the rate at which the character turns towards its movement direction.
	TurnRate float64
	// MaxHeight caps the height of the character's feet. Zero disables the cap.
	MaxHeight float64
	// MaxFrameDelta is the largest frame time simulated in a single step. Longer frames are clamped.
	MaxFrameDelta float64

	// EyeHeight is the height of the first-person camera above the feet.
	EyeHeight float64
	// CameraTargetHeight, CameraTargetSide and CameraTargetForward make up the offset of the
	// third-person camera target, local to the character's orientation.
	CameraTargetHeight  float64
	CameraTargetSide    float64
	CameraTargetForward float64

	// SafeProbeHeight and SafeProbeFloor place the origin of ground probes for tracked (VR) bodies at
	// max(feet+SafeProbeHeight, SafeProbeFloor).
	SafeProbeHeight float64
	SafeProbeFloor  float64
}

// DefaultConfig returns the default tuning of a character.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:                 DefaultWalkSpeed,
		RunSpeed:                  DefaultRunSpeed,
		JumpImpulse:               DefaultJumpImpulse,
		Gravity:                   DefaultGravity,
		MaxFallSpeed:              DefaultMaxFallSpeed,
		JumpCooldown:              DefaultJumpCooldown,
		JetpackThrust:             DefaultJetpackThrust,
		JetpackTransitionDuration: DefaultJetpackTransitionDuration,
		AirTimeThreshold:          DefaultAirTimeThreshold,
		MaxSlopeAngle:             DefaultMaxSlopeAngle,
		MaxStepHeight:             DefaultMaxStepHeight,
		ForwardProbeDistance:      DefaultForwardProbeDistance,
		CeilingProbeDistance:      DefaultCeilingProbeDistance,
		Height:                    DefaultHeight,
		TurnRate:                  DefaultTurnRate,
		MaxFrameDelta:             DefaultMaxFrameDelta,
		EyeHeight:                 DefaultEyeHeight,
		CameraTargetHeight:        DefaultCameraTargetHeight,
		CameraTargetSide:          DefaultCameraTargetSide,
		SafeProbeHeight:           DefaultSafeProbeHeight,
		SafeProbeFloor:            DefaultSafeProbeFloor,
	}
}

// Validate returns an error if the config cannot drive a character.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"WalkSpeed", c.WalkSpeed}, {"RunSpeed", c.RunSpeed}, {"JumpImpulse", c.JumpImpulse},
		{"Gravity", c.Gravity}, {"MaxFallSpeed", c.MaxFallSpeed}, {"JumpCooldown", c.JumpCooldown},
		{"JetpackThrust", c.JetpackThrust}, {"JetpackTransitionDuration", c.JetpackTransitionDuration},
		{"AirTimeThreshold", c.AirTimeThreshold}, {"MaxSlopeAngle", c.MaxSlopeAngle},
		{"MaxStepHeight", c.MaxStepHeight}, {"ForwardProbeDistance", c.ForwardProbeDistance},
		{"CeilingProbeDistance", c.CeilingProbeDistance}, {"Height", c.Height}, {"TurnRate", c.TurnRate},
		{"MaxHeight", c.MaxHeight}, {"MaxFrameDelta", c.MaxFrameDelta}, {"EyeHeight", c.EyeHeight},
		{"CameraTargetHeight", c.CameraTargetHeight}, {"CameraTargetSide", c.CameraTargetSide},
		{"CameraTargetForward", c.CameraTargetForward}, {"SafeProbeHeight", c.SafeProbeHeight},
		{"SafeProbeFloor", c.SafeProbeFloor},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return oerror.New("movement: %s must be finite, got %v", f.name, f.val)
		}
	}

	switch {
	case c.WalkSpeed < 0 || c.RunSpeed < 0:
		return oerror.New("movement: speeds must not be negative (walk %v, run %v)", c.WalkSpeed, c.RunSpeed)
	case c.JumpImpulse < 0:
		return oerror.New("movement: JumpImpulse must not be negative, got %v", c.JumpImpulse)
	case c.Gravity >= 0:
		return oerror.New("movement: Gravity must be negative, got %v", c.Gravity)
	case c.MaxFallSpeed >= 0:
		return oerror.New("movement: MaxFallSpeed must be negative, got %v", c.MaxFallSpeed)
	case c.JumpCooldown < 0:
		return oerror.New("movement: JumpCooldown must not be negative, got %v", c.JumpCooldown)
	case c.JetpackThrust < 0:
		return oerror.New("movement: JetpackThrust must not be negative, got %v", c.JetpackThrust)
	case c.JetpackTransitionDuration <= 0:
		return oerror.New("movement: JetpackTransitionDuration must be positive, got %v", c.JetpackTransitionDuration)
	case c.AirTimeThreshold < 0:
		return oerror.New("movement: AirTimeThreshold must not be negative, got %v", c.AirTimeThreshold)
	case c.MaxSlopeAngle <= 0 || c.MaxSlopeAngle > 90:
		return oerror.New("movement: MaxSlopeAngle must be in (0, 90], got %v", c.MaxSlopeAngle)
	case c.MaxStepHeight < 0:
		return oerror.New("movement: MaxStepHeight must not be negative, got %v", c.MaxStepHeight)
	case c.ForwardProbeDistance <= 0 || c.CeilingProbeDistance <= 0:
		return oerror.New("movement: probe distances must be positive (forward %v, ceiling %v)", c.ForwardProbeDistance, c.CeilingProbeDistance)
	case c.Height <= 0:
		return oerror.New("movement: Height must be positive, got %v", c.Height)
	case c.TurnRate <= 0:
		return oerror.New("movement: TurnRate must be positive, got %v", c.TurnRate)
	case c.MaxHeight < 0:
		return oerror.New("movement: MaxHeight must not be negative, got %v", c.MaxHeight)
	case c.MaxFrameDelta <= 0:
		return oerror.New("movement: MaxFrameDelta must be positive, got %v", c.MaxFrameDelta)
	case c.SafeProbeHeight <= 0:
		return oerror.New("movement: SafeProbeHeight must be positive, got %v", c.SafeProbeHeight)
	}
	return nil
}

// HasLift reports whether the jetpack is strong enough to overcome gravity.
func (c Config) HasLift() bool {
	return c.JetpackThrust > -c.Gravity
}

// CameraTargetOffset returns the third-person camera target offset local to the character.
func (c Config) CameraTargetOffset() mgl64.Vec3 {
	return mgl64.Vec3{c.CameraTargetSide, c.CameraTargetHeight, -c.CameraTargetForward}
}

// Scene is a scene specific override of a Config. Zero fields leave the base config unchanged.
type Scene struct {
	JumpImpulse   float64
	Gravity       float64
	JetpackThrust float64
	WalkSpeed     float64
	RunSpeed      float64
	// MaxHeight caps the height of the character in the scene, usually around twice the height of the
	// highest terrain peak.
	MaxHeight float64
}

// WithScene returns the config with the overrides of the scene applied. An error is returned if the
// resulting config is not valid.
func (c Config) WithScene(s Scene) (Config, error) {
	override := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	override(&c.JumpImpulse, s.JumpImpulse)
	override(&c.Gravity, s.Gravity)
	override(&c.JetpackThrust, s.JetpackThrust)
	override(&c.WalkSpeed, s.WalkSpeed)
	override(&c.RunSpeed, s.RunSpeed)
	override(&c.MaxHeight, s.MaxHeight)
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
