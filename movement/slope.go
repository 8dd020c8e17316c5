package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

// Walkable returns true if a surface with the normal passed is no steeper than maxSlope degrees.
func Walkable(n mgl64.Vec3, maxSlope float64) bool {
	return n.Dot(game.Up) >= math.Cos(mgl64.DegToRad(maxSlope))
}

// Walkable returns true if a surface with the normal passed is walkable with the config.
func (c Config) Walkable(n mgl64.Vec3) bool {
	return Walkable(n, c.MaxSlopeAngle)
}

// LookAhead probes the ground at the position a grounded body is about to move to and decides whether
// it may move there. No ground at all is a cliff and is never walkable. Changes in height up to the
// maximum step height are always walkable, while larger changes are only walkable if the ground ahead
// is no steeper than the maximum slope.
func (s *Simulator) LookAhead(next mgl64.Vec3, current GroundInfo) (bool, GroundInfo) {
	ahead := s.GroundBelow(next)
	if !ahead.Found {
		return false, ahead
	}
	if math.Abs(ahead.Height-current.Height) <= s.Config.MaxStepHeight {
		return true, ahead
	}
	return s.Config.Walkable(ahead.Normal), ahead
}
