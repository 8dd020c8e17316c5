package movement

const (
	DefaultWalkSpeed                 = 4.0
	DefaultRunSpeed                  = 8.0
	DefaultJumpImpulse               = 8.0
	DefaultGravity                   = -20.0
	DefaultMaxFallSpeed              = -40.0
	DefaultJumpCooldown              = 0.3
	DefaultJetpackThrust             = 35.0
	DefaultJetpackTransitionDuration = 0.5
	// DefaultAirTimeThreshold is the hysteresis window during which a character that lost ground contact
	// is still treated as grounded for control and animation.
	DefaultAirTimeThreshold     = 0.4
	DefaultMaxSlopeAngle        = 60.0
	DefaultMaxStepHeight        = 0.3
	DefaultForwardProbeDistance = 0.6
	DefaultCeilingProbeDistance = 1.1
	DefaultHeight               = 1.8
	DefaultTurnRate             = 10.0
	DefaultMaxFrameDelta        = 0.1
	DefaultEyeHeight            = 1.6
	DefaultCameraTargetHeight   = 1.5
	DefaultCameraTargetSide     = 0.5
	DefaultSafeProbeHeight      = 10.0
	DefaultSafeProbeFloor       = 100.0

	// NoGroundHeight is the ground height reported when nothing is below the character.
	NoGroundHeight = -1e9
	// groundProbeDistance bounds the downward ground probe. It is large enough to be unbounded in practice.
	groundProbeDistance = 1e4
)
