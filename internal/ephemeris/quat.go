package ephemeris

import (
	"math"

	"github.com/golang/geo/r3"
)

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z)
// angles in radians.
func QuatFromEuler(e r3.Vector) Quat {
	cx, sx := math.Cos(e.X*0.5), math.Sin(e.X*0.5)
	cy, sy := math.Cos(e.Y*0.5), math.Sin(e.Y*0.5)
	cz, sz := math.Cos(e.Z*0.5), math.Sin(e.Z*0.5)

	return Quat{
		W: cx*cy*cz + sx*sy*sz,
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
	}
}

// Dot returns the four-dimensional dot product.
func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. A near-zero quaternion becomes
// the identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.Dot(q))
	if n < 1e-12 {
		return QuatIdentity()
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Slerp interpolates along the shorter arc between q and o.
func (q Quat) Slerp(o Quat, t float64) Quat {
	dot := q.Dot(o)
	if dot < 0 {
		o = Quat{X: -o.X, Y: -o.Y, Z: -o.Z, W: -o.W}
		dot = -dot
	}

	// nearly parallel: fall back to normalised lerp
	if dot > 0.9995 {
		return Quat{
			X: q.X + t*(o.X-q.X),
			Y: q.Y + t*(o.Y-q.Y),
			Z: q.Z + t*(o.Z-q.Z),
			W: q.W + t*(o.W-q.W),
		}.Normalize()
	}

	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta, sinTheta0 := math.Sin(theta), math.Sin(theta0)

	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + o.X*s1,
		Y: q.Y*s0 + o.Y*s1,
		Z: q.Z*s0 + o.Z*s1,
		W: q.W*s0 + o.W*s1,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v r3.Vector) r3.Vector {
	u := r3.Vector{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}
