package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is the nearest intersection of a ray with static geometry.
type Hit struct {
	// Point is the world space position of the intersection.
	Point mgl64.Vec3
	// Normal is the world space unit normal of the surface that was hit. It always faces back towards
	// the origin of the ray.
	Normal mgl64.Vec3
	// Distance is the distance along the ray from its origin to Point.
	Distance float64

	// Surface is the index of the surface in the Set that was hit.
	Surface int
	// Triangle is the index of the triangle within the surface that was hit.
	Triangle int

	// anchor is a vertex of the triangle hit, used to evaluate the plane of the triangle.
	anchor mgl64.Vec3
}

// HeightAt evaluates the height of the plane of the triangle hit at the horizontal position passed. The
// result does not depend on where the ray started, so two probes from different heights that hit the
// same triangle report exactly the same height. Planes that are (almost) vertical fall back to the
// height of the hit point.
func (h Hit) HeightAt(x, z float64) float64 {
	n := h.Normal
	if math.Abs(n[1]) < 1e-9 {
		return h.Point[1]
	}
	return h.anchor[1] - (n[0]*(x-h.anchor[0])+n[2]*(z-h.anchor[2]))/n[1]
}

// Surface is an opaque, static collision geometry that can only be queried using ray casts.
type Surface interface {
	// Raycast returns the nearest hit of the ray with the surface within maxDistance. The direction
	// passed is always a unit vector. Ties at equal distance must resolve to the lowest triangle index.
	Raycast(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool)
}

// Set is an ordered list of surfaces that are queried together. An empty Set never reports a hit.
type Set []Surface

// NewSet returns a Set of the non-nil surfaces passed, keeping their order.
func NewSet(surfaces ...Surface) Set {
	s := make(Set, 0, len(surfaces))
	for _, srf := range surfaces {
		if srf != nil {
			s = append(s, srf)
		}
	}
	return s
}

// CastRay casts a ray against every surface in the set and returns the globally nearest hit within
// maxDistance. When two surfaces report a hit at the same distance, the surface with the lowest index
// wins. A zero-length direction or a non-positive distance never hits anything.
func (s Set) CastRay(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool) {
	if len(s) == 0 || !(maxDistance > 0) {
		return Hit{}, false
	}
	l := direction.Len()
	if l < 1e-12 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Hit{}, false
	}
	direction = direction.Mul(1 / l)

	var (
		best  Hit
		found bool
	)
	for i, srf := range s {
		hit, ok := srf.Raycast(origin, direction, maxDistance)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			hit.Surface = i
			best, found = hit, true
		}
	}
	return best, found
}
