package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

// Slide removes the component of the displacement d that moves into the surface with unit normal n.
// Displacements moving away from or along the surface are returned unchanged. The result never moves
// into the surface and is never longer than d.
func Slide(d, n mgl64.Vec3) mgl64.Vec3 {
	dot := d.Dot(n)
	if dot >= 0 {
		return d
	}
	return d.Sub(n.Mul(dot))
}

// horizontal moves the body horizontally, either under control of the intent or by carrying its
// inertia.
func (s *stepper) horizontal() {
	b, dt := s.body, s.dt
	move := s.result.Planned
	hasInput := s.intent.Active && game.Vec3HzDistSqr(move) > game.Epsilon*game.Epsilon

	var disp mgl64.Vec3
	switch {
	case hasInput && (b.FunctionallyGrounded(s.cfg) || b.Phase == PhaseJetpackActive):
		s.result.Controlled = true
		disp = s.resolve(move)
		if !b.Grounded {
			b.Inertia = mgl64.Vec2{move[0] / dt, move[2] / dt}
			b.HasInertia = true
		}
	case !b.Grounded && b.Phase != PhaseJetpackActive && b.HasInertia:
		s.result.CarriedInertia = true
		move = mgl64.Vec3{b.Inertia[0] * dt, 0, b.Inertia[1] * dt}
		disp = move
		if n, hit := s.obstruction(move); hit {
			disp = Slide(move, n)
			b.Inertia = mgl64.Vec2{disp[0] / dt, disp[2] / dt}
			s.result.Collided = true
		}
	default:
		return
	}
	s.result.Horizontal = disp
	b.Position = b.Position.Add(disp)
}

// resolve resolves a controlled displacement against the terrain ahead and obstructions in the way.
// The obstruction found by the forward probe is applied last, so it has the final say over the result
// of the terrain check: a wall always slides the displacement, even where the terrain ahead is
// walkable. A displacement rejected by the terrain is never pushed further by a wall.
func (s *stepper) resolve(move mgl64.Vec3) mgl64.Vec3 {
	disp := move
	if s.body.Grounded {
		if ok, ahead := s.sim.LookAhead(s.body.Position.Add(move), s.result.Ground); !ok {
			disp = Slide(move, s.terrainNormal(move, ahead))
			s.result.Blocked = true
			s.debugf("blocked by terrain ahead (found %v, height %.4f)", ahead.Found, ahead.Height)
		}
	}
	if n, hit := s.obstruction(move); hit {
		disp = Slide(disp, n)
		s.result.Collided = true
	}
	return disp
}

// terrainNormal returns the plane that unwalkable terrain ahead is treated as. The flattened normal of
// the terrain is used if it faces against the movement. Otherwise, including when there is no ground
// ahead at all, the plane faces straight back along the movement, rejecting it completely.
func (s *stepper) terrainNormal(move mgl64.Vec3, ahead GroundInfo) mgl64.Vec3 {
	back, _ := game.SafeNormalize(move.Mul(-1))
	if !ahead.Found {
		return back
	}
	if n, ok := game.FlatNormal(ahead.Normal); ok && n.Dot(move) < 0 {
		return n
	}
	return back
}

// obstruction probes for an obstruction in the direction of the displacement and returns the plane to
// slide along if one is in the way. Unwalkable surfaces are flattened so that sliding along them stays
// horizontal.
func (s *stepper) obstruction(move mgl64.Vec3) (mgl64.Vec3, bool) {
	return s.obstructionFrom(s.body.Position, move)
}

// obstructionFrom is obstruction for a body with its feet at the position passed.
func (s *stepper) obstructionFrom(feet, move mgl64.Vec3) (mgl64.Vec3, bool) {
	flat := game.Flatten(move)
	dir, ok := game.SafeNormalize(flat)
	if !ok {
		return mgl64.Vec3{}, false
	}
	res := s.sim.forward(feet, dir, flat.Len())
	if !res.Hit {
		return mgl64.Vec3{}, false
	}
	n := res.Normal
	if !res.Walkable {
		if n, ok = game.FlatNormal(n); !ok {
			n = dir.Mul(-1)
		}
	}
	if move.Dot(n) >= 0 {
		return mgl64.Vec3{}, false
	}
	return n, true
}
