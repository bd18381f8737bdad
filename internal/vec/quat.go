package vec

import "math"

// DegToRad converts degrees to radians.
const DegToRad = math.Pi / 180

// Quat is a rotation quaternion (W is the scalar part).
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat is the rotation that does nothing.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// AngleAxis builds the rotation of angle radians around axis.
func AngleAxis(angle float64, axis Vec3) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Mul returns q * o, i.e. the rotation o followed by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate returns the conjugate, which is the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse. A zero quaternion yields identity.
func (q Quat) Inverse() Quat {
	n := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n == 0 {
		return IdentityQuat()
	}
	c := q.Conjugate()
	return Quat{W: c.W / n, X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Normalize scales q to unit length.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuat()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ApproxEqual compares two rotations, treating q and -q as equal.
func (q Quat) ApproxEqual(o Quat, eps float64) bool {
	same := math.Abs(q.W-o.W) < eps && math.Abs(q.X-o.X) < eps &&
		math.Abs(q.Y-o.Y) < eps && math.Abs(q.Z-o.Z) < eps
	flipped := math.Abs(q.W+o.W) < eps && math.Abs(q.X+o.X) < eps &&
		math.Abs(q.Y+o.Y) < eps && math.Abs(q.Z+o.Z) < eps
	return same || flipped
}
