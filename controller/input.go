package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

// stickDeadzone is the stick magnitude below which the stick is considered centered.
const stickDeadzone = 1e-3

// Input is the device input of a single frame. Keyboards, virtual joysticks and VR thumbsticks all
// translate to an Input before reaching the controller.
type Input struct {
	Forward, Back, Left, Right bool

	// Stick is a continuous direction, with X to the right and Y forward. It is only used if UseStick
	// is set, in which case the direction keys are ignored.
	Stick    mgl64.Vec2
	UseStick bool

	// Jump is held to jump and, once airborne for long enough, to use the jetpack.
	Jump bool
	Run  bool

	// CameraYaw is the yaw of the camera in radians. Movement is relative to the camera.
	CameraYaw float64
}

// Direction returns the offset of the movement direction relative to the camera in radians, with
// positive offsets turning left, and the magnitude of the movement. ok is false if no direction is
// pressed, including when opposing keys cancel out.
func (in Input) Direction() (offset, magnitude float64, ok bool) {
	var x, y float64
	if in.UseStick {
		x, y = in.Stick[0], in.Stick[1]
		magnitude = math.Min(1, math.Hypot(x, y))
		if magnitude < stickDeadzone || math.IsNaN(magnitude) {
			return 0, 0, false
		}
	} else {
		x, y = axis(in.Right, in.Left), axis(in.Forward, in.Back)
		if x == 0 && y == 0 {
			return 0, 0, false
		}
		magnitude = 1
	}
	return game.WrapAngle(math.Atan2(-x, y)), magnitude, true
}

func axis(pos, neg bool) float64 {
	var v float64
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
