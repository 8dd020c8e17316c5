package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length under which a vector is treated as having no direction.
const Epsilon = 1e-9

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// SafeNormalize normalizes the vector passed. If the vector is too short to carry a direction, a zero
// vector and false are returned instead of a vector of NaNs.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Flatten returns the vector projected onto the ground (XZ) plane.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// FlatNormal flattens a surface normal onto the ground plane and renormalizes it. The second return
// value is false if the normal points (almost) straight up or down.
func FlatNormal(n mgl64.Vec3) (mgl64.Vec3, bool) {
	return SafeNormalize(Flatten(n))
}

// ProjectOnPlane removes the component of v along the unit normal n.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// YawDirection returns the horizontal unit direction for a yaw in radians. A yaw of zero faces -Z.
func YawDirection(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

// YawRotation returns the rotation about the up axis for the yaw passed.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up)
}

// QuatYaw extracts the yaw of a rotation by rotating the forward axis.
func QuatYaw(q mgl64.Quat) float64 {
	f := q.Rotate(mgl64.Vec3{0, 0, -1})
	return math.Atan2(-f[0], -f[2])
}

// WrapAngle wraps an angle in radians into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ApproxEq determines whether two floating point numbers are within eps of each other.
func ApproxEq(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl64.Vec3) float64 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// MinVec3 returns the component-wise minimum of two vectors.
func MinVec3(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// MaxVec3 returns the component-wise maximum of two vectors.
func MaxVec3(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
