package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

// turn rotates the orientation towards the yaw passed by spherical interpolation, covering a fraction
// of min(1, rate*dt) of the remaining rotation. The shortest arc is always taken.
func turn(orientation mgl64.Quat, yaw, rate, dt float64) mgl64.Quat {
	target := game.YawRotation(yaw)
	if orientation.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	t := math.Min(1, rate*dt)
	if t >= 1 {
		return target
	}
	return mgl64.QuatSlerp(orientation, target, t).Normalize()
}
