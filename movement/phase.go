package movement

import (
	"github.com/oomph-ac/charsim/assert"
)

// Phase is the phase of the vertical state machine of a Body.
type Phase uint8

const (
	PhaseGrounded Phase = iota
	PhaseAirborne
	PhaseJetpackActive
	PhaseJetpackTransition
	phaseCount
)

// phaseTable holds the allowed phase transitions. Any transition not found in the table is a
// programming error.
var phaseTable = [phaseCount][phaseCount]bool{
	PhaseGrounded:          {PhaseAirborne: true},
	PhaseAirborne:          {PhaseGrounded: true, PhaseJetpackActive: true},
	PhaseJetpackActive:     {PhaseGrounded: true, PhaseJetpackTransition: true},
	PhaseJetpackTransition: {PhaseGrounded: true, PhaseAirborne: true, PhaseJetpackActive: true},
}

// CanTransition returns true if a body may move from one phase to the other.
func CanTransition(from, to Phase) bool {
	if from >= phaseCount || to >= phaseCount {
		return false
	}
	return phaseTable[from][to]
}

func (p Phase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseAirborne:
		return "airborne"
	case PhaseJetpackActive:
		return "jetpack_active"
	case PhaseJetpackTransition:
		return "jetpack_transition"
	default:
		return "unknown"
	}
}

// Transition is a change of phase that happened during a frame.
type Transition struct {
	From, To Phase
}

// setPhase moves the body to a new phase, panicking if the transition is not allowed. Setting the
// current phase again is a no-op and is not reported as a transition.
func (s *stepper) setPhase(to Phase) {
	from := s.body.Phase
	if from == to {
		return
	}
	assert.IsTrue(CanTransition(from, to), "movement: illegal phase transition %s -> %s", from, to)
	s.body.Phase = to
	s.result.Transitions = append(s.result.Transitions, Transition{From: from, To: to})
}
