package kinematic

// This package includes 3D vector and orientation math along with the
// big four kinematic equations used for jump arcs.

import (
	"math"
)

const (
	Gravity float64 = -9.8
)

// Vector3 is a point or direction in world space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Basis is a 3x3 orientation matrix stored as its three column vectors.
// The columns follow the engine convention: X is right, Y is up, and
// -Z is the facing direction.
type Basis struct {
	X Vector3 `json:"x"`
	Y Vector3 `json:"y"`
	Z Vector3 `json:"z"`
}

// IdentityBasis returns the unrotated orientation.
func IdentityBasis() Basis {
	return Basis{
		X: Vector3{X: 1},
		Y: Vector3{Y: 1},
		Z: Vector3{Z: 1},
	}
}

// Forward returns the facing direction, the negated Z column.
func (b Basis) Forward() Vector3 {
	return b.Z.Neg()
}

// RotatedY returns the basis rotated by angle radians around the
// world Y axis.
func (b Basis) RotatedY(angle float64) Basis {
	sin, cos := math.Sincos(angle)
	rotate := func(v Vector3) Vector3 {
		return Vector3{
			X: v.X*cos + v.Z*sin,
			Y: v.Y,
			Z: -v.X*sin + v.Z*cos,
		}
	}
	return Basis{
		X: rotate(b.X),
		Y: rotate(b.Y),
		Z: rotate(b.Z),
	}
}

// Displacement returns the displacement of an object given its initial velocity, time, and acceleration.
func Displacement(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity*time + 0.5*acceleration*math.Pow(time, 2)
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity + acceleration*time
}
