package controller

import (
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/movement"
	"github.com/oomph-ac/charsim/surface"
	"github.com/oomph-ac/charsim/utils"
	"github.com/sirupsen/logrus"
)

// DefaultHistorySize is the number of phase changes a controller remembers by default.
const DefaultHistorySize = 32

// State is the full state of a controlled character.
type State struct {
	movement.Body
	// Orientation is the facing of the character. It only ever rotates about the up axis.
	Orientation mgl64.Quat
	CameraMode  CameraMode
}

// PhaseChange is a phase transition that happened in a frame of a controller.
type PhaseChange struct {
	Frame uint64
	movement.Transition
}

// Opts holds the optional settings of a controller.
type Opts struct {
	// Log receives warnings and debug traces. A nil logger discards everything.
	Log *logrus.Logger
	// Rig is the camera tracking the character, if any.
	Rig        Rig
	CameraMode CameraMode
	// Yaw is the initial facing of the character.
	Yaw float64
	// HistorySize is the number of phase changes remembered. Zero uses DefaultHistorySize.
	HistorySize int
}

// Controller turns per-frame device input into the motion of a single character over a set of static
// surfaces. A Controller is not safe for concurrent use.
type Controller struct {
	log *logrus.Logger
	cfg movement.Config
	sim movement.Simulator

	state State
	rig   Rig

	frame   uint64
	last    movement.Result
	history *utils.Ring[PhaseChange]
}

// New creates a controller for a character spawned at the position passed. The character is placed on
// the ground below the spawn position, or left to fall if there is none. An error is returned if the
// config is not valid.
func New(cfg movement.Config, surfaces surface.Set, spawn mgl64.Vec3, opts Opts) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
		opts.Log.SetOutput(io.Discard)
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}

	c := &Controller{
		log:     opts.Log,
		rig:     opts.Rig,
		history: utils.NewRing[PhaseChange](opts.HistorySize),
	}
	c.sim = movement.Simulator{Surfaces: surfaces, Debugf: c.log.Debugf}
	c.setConfig(cfg)

	c.state.Orientation = game.YawRotation(opts.Yaw)
	c.state.CameraMode = opts.CameraMode
	c.Teleport(spawn)
	return c, nil
}

// Update advances the character by a single frame of dt seconds. Frames with a zero, negative or
// non-finite dt leave the character untouched.
func (c *Controller) Update(in Input, dt float64) movement.Result {
	if !(dt > 0) || !game.IsFinite(dt) {
		return movement.Result{Outcome: movement.StepOutcomeSkipped, Label: c.last.Label}
	}
	dt = math.Min(dt, c.cfg.MaxFrameDelta)
	c.frame++

	offset, magnitude, active := in.Direction()
	intent := movement.Intent{Active: active, Run: in.Run, JumpHeld: in.Jump}
	if active {
		speed := c.cfg.WalkSpeed
		if in.Run {
			speed = c.cfg.RunSpeed
		}
		intent.Move = game.YawDirection(in.CameraYaw + offset).Mul(speed * magnitude * dt)
	}

	res := c.sim.Simulate(&c.state.Body, intent, dt)
	if res.Controlled {
		c.state.Orientation = turn(c.state.Orientation, in.CameraYaw+offset, c.cfg.TurnRate, dt)
	}
	c.follow(res.Displacement)

	debug := c.log.IsLevelEnabled(logrus.DebugLevel)
	for _, tr := range res.Transitions {
		c.history.Push(PhaseChange{Frame: c.frame, Transition: tr})
		if debug {
			c.log.Debugf("phase %s -> %s %s", tr.From, tr.To, utils.OrderedMapToString(c.Debug()))
		}
	}
	c.last = res
	return res
}

// Teleport moves the character to the position passed between frames, clearing all motion. The
// character is placed on the ground below the position, if any.
func (c *Controller) Teleport(pos mgl64.Vec3) {
	c.state.Body = movement.Body{Position: pos, JumpHeldLast: c.state.JumpHeldLast}
	ground := c.sim.Place(&c.state.Body)
	c.last = movement.Result{Ground: ground, Label: movement.LabelIdle}
	if !ground.Found {
		c.log.Warnf("no ground below %v, character will fall", pos)
	}
	c.history.Clear()
	c.follow(mgl64.Vec3{})
}

// SetSurfaces replaces the surfaces the character collides with.
func (c *Controller) SetSurfaces(surfaces surface.Set) {
	c.sim.Surfaces = surfaces
}

// SetConfig replaces the config of the character. The state of the character is kept.
func (c *Controller) SetConfig(cfg movement.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.setConfig(cfg)
	return nil
}

func (c *Controller) setConfig(cfg movement.Config) {
	if !cfg.HasLift() {
		c.log.Warnf("jetpack thrust %.2f does not overcome gravity %.2f", cfg.JetpackThrust, cfg.Gravity)
	}
	c.cfg = cfg
	c.sim.Config = cfg
}

// SetCameraMode switches the perspective of the camera.
func (c *Controller) SetCameraMode(mode CameraMode) {
	c.state.CameraMode = mode
	c.follow(mgl64.Vec3{})
}

// MovementState returns the movement state of the character as exposed to animation.
func (c *Controller) MovementState() movement.Label {
	return c.last.Label
}

// Grounded returns true if the character is standing on walkable ground.
func (c *Controller) Grounded() bool {
	return c.state.Grounded
}

// JetpackActive returns true if the jetpack of the character is producing full thrust.
func (c *Controller) JetpackActive() bool {
	return c.state.JetpackActive()
}

// GroundDistance returns the distance between the feet of the character and the ground below.
func (c *Controller) GroundDistance() float64 {
	return c.state.GroundDistance
}

// Position returns the position of the feet of the character.
func (c *Controller) Position() mgl64.Vec3 {
	return c.state.Position
}

// Orientation returns the facing of the character.
func (c *Controller) Orientation() mgl64.Quat {
	return c.state.Orientation
}

// State returns a copy of the state of the character.
func (c *Controller) State() State {
	return c.state
}

// Config returns the config of the character.
func (c *Controller) Config() movement.Config {
	return c.cfg
}

// LastResult returns the result of the last frame.
func (c *Controller) LastResult() movement.Result {
	return c.last
}

// Transitions returns the most recent phase changes of the character, oldest first.
func (c *Controller) Transitions() []PhaseChange {
	return c.history.Slice()
}

// Hash returns a fingerprint of the simulated state of the character.
func (c *Controller) Hash() uint64 {
	return c.state.Body.Hash()
}

// Frame returns the number of frames simulated.
func (c *Controller) Frame() uint64 {
	return c.frame
}
