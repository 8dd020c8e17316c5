package settings

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	set, err := s.Surfaces()
	require.NoError(t, err)
	assert.Len(t, set, 1+len(s.Obstacles)+len(s.Ramps))

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.MaxHeight)
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, SaveDefault(path), name)
		assert.Error(t, SaveDefault(path), "%s: saving over an existing file", name)

		s, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, DefaultSettings(), s, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Movement.Gravity = 3
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, Save(path, s))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSurfacesValidation(t *testing.T) {
	s := DefaultSettings()
	s.Obstacles = []Obstacle{{Min: []float64{0, 0}, Max: []float64{1, 1, 1}}}
	_, err := s.Surfaces()
	assert.Error(t, err)

	s = DefaultSettings()
	s.Obstacles = []Obstacle{{Min: []float64{0, 0, 0}, Max: []float64{1, 0, 1}}}
	_, err = s.Surfaces()
	assert.Error(t, err)

	s = DefaultSettings()
	s.Terrain.Cells = 0
	_, err = s.Surfaces()
	assert.Error(t, err)

	s = DefaultSettings()
	s.Spawn = nil
	assert.Error(t, s.Validate())
}

func TestTerrainMatchesHeightFunction(t *testing.T) {
	s := DefaultSettings()
	set, err := s.Surfaces()
	require.NoError(t, err)

	// Grid points lie exactly on the height function.
	cell := s.Terrain.Size / float64(s.Terrain.Cells)
	for _, p := range [][2]float64{{cell * 3, cell * 5}, {-cell * 7, cell * 2}} {
		hit, ok := set[:1].CastRay(mgl64.Vec3{p[0], 50, p[1]}, mgl64.Vec3{0, -1, 0}, 100)
		require.True(t, ok)
		assert.InDelta(t, s.Terrain.Height(p[0], p[1]), hit.Point.Y(), 1e-9)
	}
}
