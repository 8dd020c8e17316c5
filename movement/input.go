package movement

import "github.com/go-gl/mathgl/mgl64"

// Intent is the movement a character wants to make in a single frame, after device input has been
// translated into world space.
type Intent struct {
	// Move is the planned horizontal displacement for the frame. The Y component is ignored.
	Move mgl64.Vec3
	// Active is true if a movement direction is being pressed.
	Active bool
	// Run is true if the character is running. It only affects the reported movement state, as the
	// speed is already part of Move.
	Run bool
	// JumpHeld is true if jump is held in this frame.
	JumpHeld bool
}
