package controller

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/movement"
)

// Debug returns the state of the character as ordered key/value pairs, for display in debug overlays
// and logs.
func (c *Controller) Debug() *orderedmap.OrderedMap[string, any] {
	s := &c.state
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("frame", c.frame)
	data.Set("phase", s.Phase.String())
	data.Set("label", c.last.Label.String())
	data.Set("grounded", s.Grounded)
	data.Set("pos", game.RoundVec64(s.Position, 3))
	data.Set("vy", game.Round64(s.VerticalVelocity, 3))
	data.Set("airTime", game.Round64(s.TimeInAir, 3))
	data.Set("groundDist", game.Round64(s.GroundDistance, 3))
	if s.HasInertia {
		data.Set("inertia", s.Inertia)
	}
	if s.Phase == movement.PhaseJetpackTransition {
		data.Set("jetpackTimer", game.Round64(s.JetpackTimer, 3))
	}
	data.Set("camera", s.CameraMode.String())
	return data
}
