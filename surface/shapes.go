package surface

import (
	"github.com/go-gl/mathgl/mgl64"
)

// NewPlane returns a horizontal rectangle at the height of center, extending halfX and halfZ from it.
func NewPlane(center mgl64.Vec3, halfX, halfZ float64) *Mesh {
	x0, x1 := center[0]-halfX, center[0]+halfX
	z0, z1 := center[2]-halfZ, center[2]+halfZ
	y := center[1]
	return quads([][4]mgl64.Vec3{{
		{x0, y, z0}, {x0, y, z1}, {x1, y, z1}, {x1, y, z0},
	}})
}

// NewBox returns the closed surface of an axis aligned box.
func NewBox(min, max mgl64.Vec3) *Mesh {
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]
	return quads([][4]mgl64.Vec3{
		{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}, // top
		{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, // bottom
		{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}, // -x
		{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}, // +x
		{{x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}}, // -z
		{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, // +z
	})
}

// NewRamp returns a wedge that starts at origin and rises by height over length along +X. The ramp is
// width wide along +Z. Its sides and high end are closed so that nothing can walk underneath it; the
// wedge is open at the bottom.
func NewRamp(origin mgl64.Vec3, length, width, height float64) *Mesh {
	x0, x1 := origin[0], origin[0]+length
	z0, z1 := origin[2], origin[2]+width
	y0, y1 := origin[1], origin[1]+height
	triangles := triangulate([][4]mgl64.Vec3{
		{{x0, y0, z0}, {x0, y0, z1}, {x1, y1, z1}, {x1, y1, z0}}, // incline
		{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}, // high end
	})
	for _, z := range []float64{z0, z1} {
		if tri, ok := NewTriangle(mgl64.Vec3{x0, y0, z}, mgl64.Vec3{x1, y0, z}, mgl64.Vec3{x1, y1, z}); ok {
			triangles = append(triangles, tri)
		}
	}
	return NewMeshFromTriangles(triangles)
}

// NewHeightfield returns a square grid of cells by cells quads of cellSize, with its minimum corner at
// origin. The height of each grid point is origin's height plus the result of the height function.
func NewHeightfield(origin mgl64.Vec3, cells int, cellSize float64, height func(x, z float64) float64) *Mesh {
	if cells <= 0 || cellSize <= 0 {
		return NewMeshFromTriangles(nil)
	}
	point := func(i, j int) mgl64.Vec3 {
		x := origin[0] + float64(i)*cellSize
		z := origin[2] + float64(j)*cellSize
		return mgl64.Vec3{x, origin[1] + height(x, z), z}
	}

	faces := make([][4]mgl64.Vec3, 0, cells*cells)
	for i := range cells {
		for j := range cells {
			faces = append(faces, [4]mgl64.Vec3{point(i, j), point(i, j+1), point(i+1, j+1), point(i+1, j)})
		}
	}
	return quads(faces)
}

// quads returns a mesh of quads given as four vertices in winding order.
func quads(faces [][4]mgl64.Vec3) *Mesh {
	return NewMeshFromTriangles(triangulate(faces))
}

func triangulate(faces [][4]mgl64.Vec3) []Triangle {
	triangles := make([]Triangle, 0, len(faces)*2)
	for _, f := range faces {
		if tri, ok := NewTriangle(f[0], f[1], f[2]); ok {
			triangles = append(triangles, tri)
		}
		if tri, ok := NewTriangle(f[0], f[2], f[3]); ok {
			triangles = append(triangles, tri)
		}
	}
	return triangles
}
