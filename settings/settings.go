package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/charsim/movement"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains the tuning of the character and the scene it moves in.
type Settings struct {
	Movement movement.Config
	// Scene overrides parts of Movement for the scene.
	Scene movement.Scene
	// Spawn is the position the character spawns at.
	Spawn []float64

	Terrain   Terrain
	Obstacles []Obstacle
	Ramps     []Ramp
}

// Terrain describes the rolling ground of the scene as a square heightfield centered on the origin.
type Terrain struct {
	// Size is the length of the sides of the terrain.
	Size float64
	// Cells is the number of cells along each side.
	Cells int
	// Amplitude is the height of the hills. Zero makes the terrain flat.
	Amplitude  float64
	Wavelength float64
}

// Obstacle is an axis aligned box in the scene.
type Obstacle struct {
	Min []float64
	Max []float64
}

// Ramp is an inclined rectangle in the scene, rising along +X.
type Ramp struct {
	Origin []float64
	Length float64
	Width  float64
	Height float64
}

// DefaultSettings returns the default settings: a hilly terrain with a few obstacles.
func DefaultSettings() Settings {
	return Settings{
		Movement: movement.DefaultConfig(),
		Scene:    movement.Scene{MaxHeight: 60},
		Spawn:    []float64{0, 0, 0},
		Terrain: Terrain{
			Size:       128,
			Cells:      64,
			Amplitude:  1.5,
			Wavelength: 32,
		},
		Obstacles: []Obstacle{
			{Min: []float64{4, -2, -12}, Max: []float64{10, 0.25, -6}},
			{Min: []float64{-14, -2, -14}, Max: []float64{-12, 4, 14}},
		},
		Ramps: []Ramp{
			{Origin: []float64{12, 0, 4}, Length: 8, Width: 4, Height: 3},
		},
	}
}

// Config returns the movement config with the scene overrides applied.
func (s Settings) Config() (movement.Config, error) {
	return s.Movement.WithScene(s.Scene)
}

// SpawnPosition returns the spawn position of the character.
func (s Settings) SpawnPosition() (mgl64.Vec3, error) {
	return vec3("Spawn", s.Spawn)
}

// Validate returns an error if the settings cannot be used to run a character.
func (s Settings) Validate() error {
	if _, err := s.Config(); err != nil {
		return err
	}
	if _, err := s.SpawnPosition(); err != nil {
		return err
	}
	_, err := s.Surfaces()
	return err
}

// SaveDefault will create and save the default settings file. If the file already exists, it will
// return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	return Save(path, DefaultSettings())
}

// Save writes the settings to the file passed. Files with a .yaml or .yml extension are written as
// YAML, any other file as TOML.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist
// or the settings are not valid.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	var s Settings
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func vec3(name string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, oerror.New("settings: %s must have 3 components, got %d", name, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
