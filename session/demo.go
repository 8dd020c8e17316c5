package session

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/controller"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/settings"
)

// demoJitter is the largest relative deviation of a demo frame time from the nominal frame time.
const demoJitter = 0.15

// Demo returns a scripted recording of the given length in seconds at a nominal frame rate. The script
// walks and runs around the scene while turning the camera, jumps, holds the jetpack and finishes on a
// virtual stick. Frame times jitter around 1/rate the way a real render loop does, seeded so that the
// same arguments always produce the same recording.
func Demo(s settings.Settings, seconds, rate float64, seed int64) (*Recording, error) {
	if !(seconds > 0) || !(rate > 0) || math.IsInf(seconds, 0) || math.IsInf(rate, 0) {
		return nil, oerror.New("demo length and frame rate must be positive, got %vs at %vHz", seconds, rate)
	}
	rec := NewRecording("demo", s)
	rnd := rand.New(rand.NewSource(seed))

	nominal := 1 / rate
	for t := 0.0; t < seconds; {
		dt := nominal * (1 + demoJitter*(rnd.Float64()*2-1))
		rec.Record(demoInput(t, seconds), dt)
		t += dt
	}
	return rec, nil
}

// demoInput returns the scripted input at time t of a demo lasting the total time passed. The script is
// split into phases relative to the total so that shorter demos still cover all of them.
func demoInput(t, total float64) controller.Input {
	p := t / total
	in := controller.Input{
		CameraYaw: t * 0.4,
		Forward:   true,
	}
	switch {
	case p < 0.15:
		// Walk.
	case p < 0.3:
		in.Run = true
		in.Left = math.Mod(t, 2) < 0.5
	case p < 0.35:
		in.Jump = math.Mod(t, 1) < 0.1
	case p < 0.38:
		// Settle on the ground before the jetpack.
	case p < 0.55:
		// Hold jump through the jump and into the jetpack, then release.
		in.Jump = p < 0.5
		in.Run = true
	case p < 0.7:
		in.Forward = false
	default:
		in.UseStick = true
		in.Stick = mgl64.Vec2{math.Sin(t * 1.3), 0.5 + 0.5*math.Cos(t*0.7)}
		in.Run = p > 0.85
	}
	return in
}
