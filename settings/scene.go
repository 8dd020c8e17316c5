package settings

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/surface"
)

// Surfaces builds the collision surfaces of the scene: the terrain first, followed by the obstacles and
// ramps in the order they are listed.
func (s Settings) Surfaces() (surface.Set, error) {
	terrain, err := s.Terrain.mesh()
	if err != nil {
		return nil, err
	}
	surfaces := []surface.Surface{terrain}

	for i, o := range s.Obstacles {
		lo, err := vec3("Obstacles.Min", o.Min)
		if err != nil {
			return nil, err
		}
		hi, err := vec3("Obstacles.Max", o.Max)
		if err != nil {
			return nil, err
		}
		if lo[0] >= hi[0] || lo[1] >= hi[1] || lo[2] >= hi[2] {
			return nil, oerror.New("settings: obstacle %d has an empty volume (%v to %v)", i, lo, hi)
		}
		surfaces = append(surfaces, surface.NewBox(lo, hi))
	}
	for i, r := range s.Ramps {
		origin, err := vec3("Ramps.Origin", r.Origin)
		if err != nil {
			return nil, err
		}
		if r.Length <= 0 || r.Width <= 0 {
			return nil, oerror.New("settings: ramp %d must have a positive length and width", i)
		}
		surfaces = append(surfaces, surface.NewRamp(origin, r.Length, r.Width, r.Height))
	}
	return surface.NewSet(surfaces...), nil
}

func (t Terrain) mesh() (*surface.Mesh, error) {
	if t.Size <= 0 || t.Cells <= 0 {
		return nil, oerror.New("settings: terrain must have a positive size and cell count (size %v, cells %d)", t.Size, t.Cells)
	}
	if t.Amplitude != 0 && t.Wavelength <= 0 {
		return nil, oerror.New("settings: hilly terrain needs a positive wavelength, got %v", t.Wavelength)
	}
	origin := mgl64.Vec3{-t.Size / 2, 0, -t.Size / 2}
	return surface.NewHeightfield(origin, t.Cells, t.Size/float64(t.Cells), t.Height), nil
}

// Height returns the height of the terrain at the position passed, before triangulation.
func (t Terrain) Height(x, z float64) float64 {
	if t.Amplitude == 0 {
		return 0
	}
	k := 2 * math.Pi / t.Wavelength
	return t.Amplitude * math.Sin(k*x) * math.Cos(k*z)
}
