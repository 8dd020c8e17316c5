package surface

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
)

// Triangle is a single world space triangle with a precomputed unit normal.
type Triangle struct {
	V0, V1, V2 mgl64.Vec3
	Normal     mgl64.Vec3
}

// NewTriangle returns a triangle from three vertices. False is returned if the triangle has no area.
func NewTriangle(v0, v1, v2 mgl64.Vec3) (Triangle, bool) {
	n, ok := game.SafeNormalize(v1.Sub(v0).Cross(v2.Sub(v0)))
	if !ok {
		return Triangle{}, false
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: n}, true
}

// BBox returns the bounding box of the triangle.
func (t Triangle) BBox() cube.BBox {
	lo := game.MinVec3(game.MinVec3(t.V0, t.V1), t.V2)
	hi := game.MaxVec3(game.MaxVec3(t.V0, t.V1), t.V2)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// Centroid returns the average of the three vertices of the triangle.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}

// edgeSlack widens triangles by a tiny barycentric margin so that rays through a shared edge cannot slip
// between the two triangles due to rounding.
const edgeSlack = 1e-12

// Intersect intersects a ray with the triangle from either side and returns the distance along the
// ray. The direction must be a unit vector.
func (t Triangle) Intersect(origin, direction mgl64.Vec3) (float64, bool) {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)

	p := direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(t.V0)
	u := s.Dot(p) * inv
	if u < -edgeSlack || u > 1+edgeSlack {
		return 0, false
	}
	q := s.Cross(e1)
	v := direction.Dot(q) * inv
	if v < -edgeSlack || u+v > 1+edgeSlack {
		return 0, false
	}
	dist := e2.Dot(q) * inv
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
