package surface

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/oerror"
)

const (
	leafTriangles = 4
	maxTreeDepth  = 24
	boundsPadding = 1e-6
)

// node is a node in the bounding volume hierarchy of a Mesh.
type node struct {
	bounds      cube.BBox
	left, right *node
	// triangles holds indices into the triangles of the mesh. It is only set for leaf nodes.
	triangles []int
}

// Mesh is a static triangle mesh in world space, accelerated by a bounding volume hierarchy. A Mesh is
// never modified after it is built and may be queried from multiple goroutines.
type Mesh struct {
	triangles []Triangle
	root      *node
}

// NewMesh builds a mesh from vertices and triangle indices. If indices is nil, every three consecutive
// vertices form a triangle. The transform passed is applied to all vertices to bring them into world
// space, so that triangle normals are world space normals as well. Triangles without area are dropped.
func NewMesh(vertices []mgl64.Vec3, indices []int, transform mgl64.Mat4) (*Mesh, error) {
	if indices == nil {
		if len(vertices)%3 != 0 {
			return nil, oerror.New("surface: %d vertices do not form whole triangles", len(vertices))
		}
		indices = make([]int, len(vertices))
		for i := range indices {
			indices[i] = i
		}
	}
	if len(indices)%3 != 0 {
		return nil, oerror.New("surface: %d indices do not form whole triangles", len(indices))
	}

	world := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		if !game.IsFinite(v[0]) || !game.IsFinite(v[1]) || !game.IsFinite(v[2]) {
			return nil, oerror.New("surface: vertex %d is not finite", i)
		}
		world[i] = mgl64.TransformCoordinate(v, transform)
	}

	triangles := make([]Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(world) {
				return nil, oerror.New("surface: index %d out of range of %d vertices", idx, len(world))
			}
		}
		if tri, ok := NewTriangle(world[i0], world[i1], world[i2]); ok {
			triangles = append(triangles, tri)
		}
	}
	return NewMeshFromTriangles(triangles), nil
}

// NewMeshFromTriangles builds a mesh from world space triangles.
func NewMeshFromTriangles(triangles []Triangle) *Mesh {
	m := &Mesh{triangles: triangles}
	if len(triangles) == 0 {
		return m
	}
	indices := make([]int, len(triangles))
	for i := range indices {
		indices[i] = i
	}
	m.root = m.build(indices, 0)
	return m
}

// Triangles returns the triangles of the mesh. The slice returned must not be modified.
func (m *Mesh) Triangles() []Triangle {
	return m.triangles
}

// Bounds returns the bounding box of the whole mesh and false if the mesh has no triangles.
func (m *Mesh) Bounds() (cube.BBox, bool) {
	if m.root == nil {
		return cube.BBox{}, false
	}
	return m.root.bounds.Grow(-boundsPadding), true
}

// Raycast returns the nearest triangle hit by the ray within maxDistance. Equal distances resolve to the
// lowest triangle index. The normal of the hit is flipped to face the origin of the ray.
func (m *Mesh) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool) {
	if m.root == nil {
		return Hit{}, false
	}
	end := origin.Add(direction.Mul(maxDistance))

	best, bestTri := math.Inf(1), -1
	m.traverse(m.root, origin, end, func(idx int) {
		dist, ok := m.triangles[idx].Intersect(origin, direction)
		if !ok || dist > maxDistance {
			return
		}
		if dist < best || (dist == best && idx < bestTri) {
			best, bestTri = dist, idx
		}
	})
	if bestTri == -1 {
		return Hit{}, false
	}

	tri := m.triangles[bestTri]
	normal := tri.Normal
	if normal.Dot(direction) > 0 {
		normal = normal.Mul(-1)
	}
	return Hit{
		Point:    origin.Add(direction.Mul(best)),
		Normal:   normal,
		Distance: best,
		Triangle: bestTri,
		anchor:   tri.V0,
	}, true
}

// traverse calls f for every triangle in a leaf whose bounds the segment from start to end touches.
func (m *Mesh) traverse(n *node, start, end mgl64.Vec3, f func(idx int)) {
	if n == nil {
		return
	}
	if !n.bounds.Vec3Within(start) {
		if _, ok := trace.BBoxIntercept(n.bounds, start, end); !ok {
			return
		}
	}
	if n.triangles != nil {
		for _, idx := range n.triangles {
			f(idx)
		}
		return
	}
	m.traverse(n.left, start, end, f)
	m.traverse(n.right, start, end, f)
}

func (m *Mesh) build(indices []int, depth int) *node {
	n := &node{bounds: m.boundsOf(indices)}
	if len(indices) <= leafTriangles || depth >= maxTreeDepth {
		n.triangles = indices
		return n
	}

	size := n.bounds.Max().Sub(n.bounds.Min())
	axis := 0
	if size[1] > size[axis] {
		axis = 1
	}
	if size[2] > size[axis] {
		axis = 2
	}

	mid := m.partition(indices, axis)
	if mid == 0 || mid == len(indices) {
		n.triangles = indices
		return n
	}
	n.left = m.build(indices[:mid], depth+1)
	n.right = m.build(indices[mid:], depth+1)
	return n
}

// boundsOf returns the padded bounds of the triangles passed. Padding keeps flat geometry, such as a
// floor, from producing boxes without volume that a segment could slip past.
func (m *Mesh) boundsOf(indices []int) cube.BBox {
	bb := m.triangles[indices[0]].BBox()
	for _, idx := range indices[1:] {
		tb := m.triangles[idx].BBox()
		lo := game.MinVec3(bb.Min(), tb.Min())
		hi := game.MaxVec3(bb.Max(), tb.Max())
		bb = cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	}
	return bb.Grow(boundsPadding)
}

// partition splits indices around the mean centroid on the axis passed and returns the split index.
func (m *Mesh) partition(indices []int, axis int) int {
	center := 0.0
	for _, idx := range indices {
		center += m.triangles[idx].Centroid()[axis]
	}
	center /= float64(len(indices))

	left, right := 0, len(indices)-1
	for left <= right {
		if m.triangles[indices[left]].Centroid()[axis] < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}
