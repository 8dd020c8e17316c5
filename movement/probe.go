package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

var down = mgl64.Vec3{0, -1, 0}

// ground probes straight down from (x, originY, z). The height of the ground is evaluated on the plane
// of the triangle hit, so it does not depend on originY.
func (s *Simulator) ground(x, z, originY float64) GroundInfo {
	hit, ok := s.Surfaces.CastRay(mgl64.Vec3{x, originY, z}, down, groundProbeDistance)
	if !ok {
		return GroundInfo{Height: NoGroundHeight}
	}
	return GroundInfo{
		Height: hit.HeightAt(x, z),
		Normal: hit.Normal,
		Found:  true,
	}
}

// groundOrigin returns the height at which ground probes of a body with its feet at feetY start. prevY
// is the height of the feet before the body moved vertically in the current frame.
func (s *Simulator) groundOrigin(prevY, feetY float64) float64 {
	if s.Policy == ProbePolicySafeHigh {
		return math.Max(feetY+s.Config.SafeProbeHeight, s.Config.SafeProbeFloor)
	}
	return math.Max(prevY, feetY) + s.Config.Height/2
}

// GroundBelow probes the ground below the position passed using the probe policy of the simulator.
func (s *Simulator) GroundBelow(pos mgl64.Vec3) GroundInfo {
	return s.ground(pos[0], pos[2], s.groundOrigin(pos[1], pos[1]))
}

// cast casts a bounded ray and classifies the surface hit.
func (s *Simulator) cast(origin, dir mgl64.Vec3, maxDistance float64) CollisionResult {
	hit, ok := s.Surfaces.CastRay(origin, dir, maxDistance)
	if !ok {
		return CollisionResult{}
	}
	return CollisionResult{
		Hit:      true,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.Distance,
		Walkable: s.Config.Walkable(hit.Normal),
	}
}

// center returns the center of a body with its feet at the position passed.
func (s *Simulator) center(feet mgl64.Vec3) mgl64.Vec3 {
	return feet.Add(mgl64.Vec3{0, s.Config.Height / 2, 0})
}

// ceiling probes straight up from the center of the body at the start of the frame. rise is the
// distance the body moved up in the frame.
func (s *Simulator) ceiling(feet mgl64.Vec3, rise float64) CollisionResult {
	dist := math.Max(s.Config.CeilingProbeDistance, s.Config.Height/2+rise)
	return s.cast(s.center(feet), game.Up, dist)
}

// forward probes from the center of the body in the horizontal direction passed, bounded to
// max(ForwardProbeDistance, reach) so that a long frame never moves past an obstruction unprobed.
func (s *Simulator) forward(feet, dir mgl64.Vec3, reach float64) CollisionResult {
	return s.cast(s.center(feet), dir, math.Max(s.Config.ForwardProbeDistance, reach))
}
