package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/movement"
	"github.com/oomph-ac/charsim/surface"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func scene() surface.Set {
	return surface.NewSet(
		surface.NewPlane(mgl64.Vec3{}, 100, 100),
		surface.NewBox(mgl64.Vec3{-4, 0, -6}, mgl64.Vec3{-2, 0.25, -3}),
		surface.NewBox(mgl64.Vec3{6, 0, -20}, mgl64.Vec3{7, 3, 20}),
	)
}

func newController(t *testing.T, opts Opts) *Controller {
	t.Helper()
	c, err := New(movement.DefaultConfig(), scene(), mgl64.Vec3{0, 5, 0}, opts)
	require.NoError(t, err)
	return c
}

func TestDirection(t *testing.T) {
	for _, tc := range []struct {
		in     Input
		offset float64
	}{
		{Input{Forward: true}, 0},
		{Input{Back: true}, math.Pi},
		{Input{Left: true}, math.Pi / 2},
		{Input{Right: true}, -math.Pi / 2},
		{Input{Forward: true, Left: true}, math.Pi / 4},
		{Input{Forward: true, Right: true}, -math.Pi / 4},
		{Input{Back: true, Left: true}, 3 * math.Pi / 4},
		{Input{Back: true, Right: true}, -3 * math.Pi / 4},
		{Input{Forward: true, Back: true, Left: true}, math.Pi / 2},
	} {
		offset, magnitude, ok := tc.in.Direction()
		require.True(t, ok, "%+v", tc.in)
		assert.InDelta(t, tc.offset, offset, 1e-12, "%+v", tc.in)
		assert.Equal(t, 1.0, magnitude)
	}

	_, _, ok := Input{Forward: true, Back: true}.Direction()
	assert.False(t, ok, "opposing keys cancel")
	_, _, ok = Input{Left: true, Right: true}.Direction()
	assert.False(t, ok, "opposing keys cancel")
	_, _, ok = Input{}.Direction()
	assert.False(t, ok)
}

func TestStickDirection(t *testing.T) {
	offset, magnitude, ok := Input{UseStick: true, Stick: mgl64.Vec2{-0.3, 0.3}, Forward: true}.Direction()
	require.True(t, ok)
	assert.InDelta(t, math.Pi/4, offset, 1e-12)
	assert.InDelta(t, math.Hypot(0.3, 0.3), magnitude, 1e-12)

	_, magnitude, ok = Input{UseStick: true, Stick: mgl64.Vec2{3, 4}}.Direction()
	require.True(t, ok)
	assert.Equal(t, 1.0, magnitude, "magnitude is clamped")

	offset, _, ok = Input{UseStick: true, Stick: mgl64.Vec2{0, -1}}.Direction()
	require.True(t, ok)
	assert.Equal(t, math.Pi, offset, "straight back is reported as +Pi")

	_, _, ok = Input{UseStick: true, Stick: mgl64.Vec2{1e-4, 0}, Forward: true}.Direction()
	assert.False(t, ok, "keys are ignored while using the stick")
}

func TestSpawnPlacesOnGround(t *testing.T) {
	c := newController(t, Opts{})
	assert.True(t, c.Grounded())
	assert.Zero(t, c.Position().Y())
	assert.Zero(t, c.GroundDistance())
	assert.Equal(t, movement.LabelIdle, c.MovementState())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := movement.DefaultConfig()
	cfg.Gravity = 1
	_, err := New(cfg, scene(), mgl64.Vec3{}, Opts{})
	assert.Error(t, err)
}

func TestWeakJetpackWarns(t *testing.T) {
	log, hook := test.NewNullLogger()
	cfg := movement.DefaultConfig()
	cfg.JetpackThrust = 10

	_, err := New(cfg, scene(), mgl64.Vec3{}, Opts{Log: log})
	require.NoError(t, err)
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.WarnLevel, hook.AllEntries()[0].Level)
}

func TestMovementStates(t *testing.T) {
	c := newController(t, Opts{})

	c.Update(Input{Forward: true}, frame)
	assert.Equal(t, movement.LabelWalk, c.MovementState())
	assert.InDelta(t, -movement.DefaultWalkSpeed*frame, c.Position().Z(), 1e-12)

	c.Update(Input{Forward: true, Run: true}, frame)
	assert.Equal(t, movement.LabelRun, c.MovementState())

	c.Update(Input{}, frame)
	assert.Equal(t, movement.LabelIdle, c.MovementState())
}

func TestCameraRelativeMovement(t *testing.T) {
	c := newController(t, Opts{})
	c.Update(Input{Forward: true, CameraYaw: math.Pi / 2}, frame)

	assert.InDelta(t, -movement.DefaultWalkSpeed*frame, c.Position().X(), 1e-12)
	assert.InDelta(t, 0, c.Position().Z(), 1e-12)
}

func TestFacingTurnsTowardsMovement(t *testing.T) {
	c := newController(t, Opts{})

	c.Update(Input{Left: true}, frame)
	assert.InDelta(t, math.Pi/2*movement.DefaultTurnRate*frame, game.QuatYaw(c.Orientation()), 1e-9)

	for range 120 {
		c.Update(Input{Left: true}, frame)
	}
	assert.InDelta(t, math.Pi/2, game.QuatYaw(c.Orientation()), 1e-6)

	for range 240 {
		c.Update(Input{Back: true}, frame)
	}
	assert.InDelta(t, math.Pi, math.Abs(game.QuatYaw(c.Orientation())), 1e-6)
}

func TestFacingHeldWithoutInput(t *testing.T) {
	c := newController(t, Opts{Yaw: 1})
	for range 30 {
		c.Update(Input{}, frame)
	}
	assert.InDelta(t, 1, game.QuatYaw(c.Orientation()), 1e-9)
}

func TestJetpackSequence(t *testing.T) {
	c := newController(t, Opts{})

	for range 90 {
		c.Update(Input{Jump: true}, frame)
	}
	assert.True(t, c.JetpackActive())
	assert.Equal(t, movement.LabelJetpack, c.MovementState())

	c.Update(Input{}, frame)
	assert.False(t, c.JetpackActive())
	assert.Equal(t, movement.LabelJetpack, c.MovementState(), "the fade out still reports the jetpack")
	for i := 0; !c.Grounded(); i++ {
		require.Less(t, i, 3600)
		c.Update(Input{}, frame)
	}

	var phases []movement.Phase
	var last uint64
	for _, change := range c.Transitions() {
		require.GreaterOrEqual(t, change.Frame, last)
		last = change.Frame
		phases = append(phases, change.To)
	}
	assert.Equal(t, []movement.Phase{
		movement.PhaseAirborne,
		movement.PhaseJetpackActive,
		movement.PhaseJetpackTransition,
		movement.PhaseAirborne,
		movement.PhaseGrounded,
	}, phases)
}

func TestHistoryIsBounded(t *testing.T) {
	c := newController(t, Opts{HistorySize: 2})
	for range 3 {
		c.Update(Input{Jump: true}, frame)
		for !c.Grounded() {
			c.Update(Input{}, frame)
		}
		for range 30 {
			c.Update(Input{}, frame)
		}
	}
	changes := c.Transitions()
	require.Len(t, changes, 2)
	assert.Equal(t, movement.PhaseAirborne, changes[0].To)
	assert.Equal(t, movement.PhaseGrounded, changes[1].To)
}

func TestThirdPersonRig(t *testing.T) {
	rig := NewOrbitRig(mgl64.Vec3{0, 3, 5}, mgl64.Vec3{})
	c := newController(t, Opts{Rig: rig})
	offset := c.Config().CameraTargetOffset()
	assert.Equal(t, offset, rig.Target())
	distance := rig.Distance()

	for range 60 {
		c.Update(Input{Forward: true}, frame)
	}
	assert.InDelta(t, distance, rig.Distance(), 1e-9)
	assert.InDelta(t, 5-movement.DefaultWalkSpeed, rig.Position().Z(), 1e-9)
	expected := c.Position().Add(c.Orientation().Rotate(offset))
	assert.InDelta(t, 0, rig.Target().Sub(expected).Len(), 1e-12)
}

func TestFirstPersonRig(t *testing.T) {
	rig := NewOrbitRig(mgl64.Vec3{}, mgl64.Vec3{})
	c := newController(t, Opts{Rig: rig, CameraMode: CameraModeFirstPerson})

	c.Update(Input{Right: true}, frame)
	eye := c.Position().Add(mgl64.Vec3{0, c.Config().EyeHeight, 0})
	assert.Equal(t, eye, rig.Position())
	assert.InDelta(t, 1, rig.Distance(), 1e-9)

	c.SetCameraMode(CameraModeThirdPerson)
	assert.Equal(t, CameraModeThirdPerson, c.State().CameraMode)
	assert.Equal(t, eye, rig.Position(), "switching modes does not move the camera")
}

func TestTeleport(t *testing.T) {
	c := newController(t, Opts{})
	c.Update(Input{Jump: true}, frame)
	require.False(t, c.Grounded())

	c.Teleport(mgl64.Vec3{10, 20, 10})
	assert.True(t, c.Grounded())
	assert.Equal(t, mgl64.Vec3{10, 0, 10}, c.Position())
	assert.Zero(t, c.State().VerticalVelocity)
	assert.Empty(t, c.Transitions())

	// Jump was held through the teleport, so holding it does not jump again.
	c.Update(Input{Jump: true}, frame)
	assert.True(t, c.Grounded())
}

func TestSetSurfacesAndConfig(t *testing.T) {
	c := newController(t, Opts{})
	c.SetSurfaces(nil)
	c.Update(Input{}, frame)
	assert.False(t, c.Grounded(), "no surfaces means free fall")

	cfg := c.Config()
	cfg.MaxFallSpeed = 1
	assert.Error(t, c.SetConfig(cfg))
	cfg.MaxFallSpeed = -5
	require.NoError(t, c.SetConfig(cfg))
	assert.Equal(t, -5.0, c.Config().MaxFallSpeed)
}

func TestInvalidFrameIsSkipped(t *testing.T) {
	c := newController(t, Opts{})
	c.Update(Input{Forward: true}, frame)
	hash := c.Hash()

	res := c.Update(Input{Forward: true}, math.NaN())
	assert.Equal(t, movement.StepOutcomeSkipped, res.Outcome)
	assert.Equal(t, hash, c.Hash())
	assert.Equal(t, uint64(1), c.Frame())
}

func TestDebugTelemetry(t *testing.T) {
	c := newController(t, Opts{})
	c.Update(Input{Forward: true}, frame)

	data := c.Debug()
	assert.Equal(t, []string{"frame", "phase", "label", "grounded", "pos", "vy", "airTime", "groundDist", "camera"}, data.Keys())
	phase, _ := data.Get("phase")
	assert.Equal(t, "grounded", phase)
}

// scriptedInput returns the input of frame i of a run that walks, turns the camera, runs, jumps, uses
// the jetpack and switches to a stick.
func scriptedInput(i int) Input {
	in := Input{
		Forward:   i%200 < 150,
		Left:      i%300 > 220,
		Run:       i > 500,
		Jump:      i == 120 || (i >= 300 && i < 420),
		CameraYaw: float64(i) * 0.008,
	}
	if i > 700 {
		in.UseStick = true
		in.Stick = mgl64.Vec2{math.Sin(float64(i) * 0.05), 0.6}
	}
	return in
}

func TestControllerMatchesMirror(t *testing.T) {
	set := scene()
	c, err := New(movement.DefaultConfig(), set, mgl64.Vec3{}, Opts{})
	require.NoError(t, err)
	out := movement.MirrorFromBody(c.State().Body)

	for i := range 1000 {
		in := scriptedInput(i)
		res := c.Update(in, frame)
		out = movement.Mirror(c.Config(), set, out.Next(res.Planned, frame, in.Jump, in.Run))

		mirrored := out.Body()
		require.Equal(t, c.Hash(), mirrored.Hash(), "frame %d", i)
		require.Equal(t, c.MovementState(), out.Label, "frame %d", i)
	}
}

func TestPhaseChangesLoggedAtDebugLevel(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := newController(t, Opts{Log: log})
	c.Update(Input{Jump: true}, frame)
	assert.Empty(t, hook.AllEntries(), "nothing is logged above debug level")

	log.SetLevel(logrus.DebugLevel)
	c.Teleport(mgl64.Vec3{})
	c.Update(Input{}, frame)
	c.Update(Input{Jump: true}, frame)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Contains(t, entry.Message, "phase grounded -> airborne [frame=")
}
