package controller

import "github.com/go-gl/mathgl/mgl64"

// CameraMode is the perspective of the camera following a character.
type CameraMode uint8

const (
	CameraModeThirdPerson CameraMode = iota
	CameraModeFirstPerson
)

func (m CameraMode) String() string {
	if m == CameraModeFirstPerson {
		return "first_person"
	}
	return "third_person"
}

// Rig is a camera that tracks a character.
type Rig interface {
	Position() mgl64.Vec3
	SetPosition(pos mgl64.Vec3)
	SetTarget(target mgl64.Vec3)
}

// OrbitRig is a Rig that orbits a target point at a free distance, like orbit controls do. Moving the
// rig and its target by the same delta keeps the distance between them.
type OrbitRig struct {
	pos, target mgl64.Vec3
}

// NewOrbitRig returns an OrbitRig at the position passed, looking at target.
func NewOrbitRig(pos, target mgl64.Vec3) *OrbitRig {
	return &OrbitRig{pos: pos, target: target}
}

func (r *OrbitRig) Position() mgl64.Vec3 {
	return r.pos
}

func (r *OrbitRig) SetPosition(pos mgl64.Vec3) {
	r.pos = pos
}

func (r *OrbitRig) SetTarget(target mgl64.Vec3) {
	r.target = target
}

// Target returns the point the rig looks at.
func (r *OrbitRig) Target() mgl64.Vec3 {
	return r.target
}

// Distance returns the distance between the rig and its target.
func (r *OrbitRig) Distance() float64 {
	return r.target.Sub(r.pos).Len()
}

// follow moves the rig along with the character. In third person the camera keeps its offset from the
// character and looks at the target offset rotated by the orientation of the character. In first
// person the camera sits at the eyes and looks along the orientation.
func (c *Controller) follow(delta mgl64.Vec3) {
	if c.rig == nil {
		return
	}
	pos, orientation := c.state.Position, c.state.Orientation
	switch c.state.CameraMode {
	case CameraModeFirstPerson:
		eye := pos.Add(mgl64.Vec3{0, c.cfg.EyeHeight, 0})
		c.rig.SetPosition(eye)
		c.rig.SetTarget(eye.Add(orientation.Rotate(mgl64.Vec3{0, 0, -1})))
	default:
		c.rig.SetPosition(c.rig.Position().Add(delta))
		c.rig.SetTarget(pos.Add(orientation.Rotate(c.cfg.CameraTargetOffset())))
	}
}
