package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns the intent of frame i of a run that walks in a slow circle, jumps, and uses the
// jetpack.
func scripted(i int) Intent {
	in := Intent{
		Active:   i%150 < 120,
		Run:      i > 400,
		JumpHeld: i == 100 || (i >= 200 && i < 320),
	}
	if in.Active {
		speed := DefaultWalkSpeed
		if in.Run {
			speed = DefaultRunSpeed
		}
		in.Move = game.YawDirection(float64(i) * 0.01).Mul(speed * frame)
	}
	return in
}

func TestMirrorMatchesDesktop(t *testing.T) {
	set := surface.NewSet(
		floor(),
		surface.NewBox(mgl64.Vec3{-4, 0, -6}, mgl64.Vec3{-2, 0.25, -3}),
		surface.NewBox(mgl64.Vec3{3, 0, -10}, mgl64.Vec3{3.5, 3, 10}),
	)
	desktop := &Simulator{Config: DefaultConfig(), Surfaces: set}
	b := spawn(t, desktop, mgl64.Vec3{})
	out := MirrorFromBody(*b)

	jetpacked := false
	for i := range 900 {
		in := scripted(i)
		res := desktop.Simulate(b, in, frame)
		out = Mirror(desktop.Config, set, out.Next(in.Move, frame, in.JumpHeld, in.Run))

		mirrored := out.Body()
		require.Equal(t, b.Hash(), mirrored.Hash(), "frame %d: desktop %+v, mirror %+v", i, *b, mirrored)
		require.Equal(t, res.Label, out.Label, "frame %d", i)
		require.Equal(t, b.GroundDistance, out.GroundDistance, "frame %d", i)
		jetpacked = jetpacked || out.JetpackActive
	}
	assert.True(t, jetpacked, "script must exercise the jetpack")
}

func TestMirrorInputPhase(t *testing.T) {
	b := MirrorInput{Grounded: true, JetpackActive: true, AirTime: 1, JetpackTransitionTimer: 0.2}.Body()
	assert.Equal(t, PhaseGrounded, b.Phase)
	assert.Zero(t, b.TimeInAir)
	assert.Zero(t, b.JetpackTimer)

	b = MirrorInput{JetpackActive: true, JetpackTransitionTimer: 0.2}.Body()
	assert.Equal(t, PhaseJetpackActive, b.Phase)

	b = MirrorInput{JetpackTransitionTimer: 0.2}.Body()
	assert.Equal(t, PhaseJetpackTransition, b.Phase)

	b = MirrorInput{}.Body()
	assert.Equal(t, PhaseAirborne, b.Phase)
}

func TestMirrorVelocity(t *testing.T) {
	set := surface.NewSet(floor())
	out := Mirror(DefaultConfig(), set, MirrorInput{
		Grounded:    true,
		PlannedMove: mgl64.Vec3{0, 0, -4 * frame},
		Dt:          frame,
	})
	assert.InDelta(t, -4, out.Velocity.Z(), 1e-9)
	assert.Zero(t, out.Velocity.Y())
	assert.True(t, out.Grounded)
	assert.Equal(t, LabelWalk, out.Label)

	skipped := Mirror(DefaultConfig(), set, MirrorInput{Velocity: mgl64.Vec3{1, 2, 3}})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, skipped.Velocity)
}

func TestMirrorSafeProbeRecoversSunkenFeet(t *testing.T) {
	set := surface.NewSet(floor())
	out := Mirror(DefaultConfig(), set, MirrorInput{
		Position: mgl64.Vec3{0, -1.5, 0},
		AirTime:  1,
		Dt:       frame,
	})
	assert.True(t, out.Grounded, "tracked feet below the floor must be snapped back onto it")
	assert.Zero(t, out.Position.Y())
}
