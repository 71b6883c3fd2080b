package model

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Precision limits used when comparing placements.
const (
	LinearPrecision  = 1e-7  // mm
	AngularPrecision = 1e-12 // radians
)

// Vector is a 3D coordinate in mm.
type Vector struct {
	r3.Vec
}

// Vec builds a Vector from its components.
func Vec(x, y, z float64) Vector {
	return Vector{r3.Vec{X: x, Y: y, Z: z}}
}

func (v Vector) Add(o Vector) Vector   { return Vector{r3.Add(v.Vec, o.Vec)} }
func (v Vector) Sub(o Vector) Vector   { return Vector{r3.Sub(v.Vec, o.Vec)} }
func (v Vector) Scale(f float64) Vector { return Vector{r3.Scale(f, v.Vec)} }
func (v Vector) Dot(o Vector) float64  { return r3.Dot(v.Vec, o.Vec) }
func (v Vector) Cross(o Vector) Vector { return Vector{r3.Cross(v.Vec, o.Vec)} }
func (v Vector) Length() float64       { return r3.Norm(v.Vec) }

// Unit returns the normalized vector, or the zero vector if v has no length.
func (v Vector) Unit() Vector {
	if v.Length() < LinearPrecision {
		return Vector{}
	}
	return Vector{r3.Unit(v.Vec)}
}

// Rotation is a unit quaternion. The zero value is not valid; use
// IdentityRotation.
type Rotation struct {
	Q quat.Number `json:"q"`
}

// IdentityRotation returns the rotation that leaves vectors unchanged.
func IdentityRotation() Rotation {
	return Rotation{Q: quat.Number{Real: 1}}
}

// RotationFromAxisAngle builds a rotation of angle radians around axis.
func RotationFromAxisAngle(axis Vector, angle float64) Rotation {
	a := axis.Unit()
	if a.Length() == 0 {
		return IdentityRotation()
	}
	s := math.Sin(angle / 2)
	return Rotation{Q: quat.Number{
		Real: math.Cos(angle / 2),
		Imag: a.X * s,
		Jmag: a.Y * s,
		Kmag: a.Z * s,
	}}
}

// NewRotationFromEuler builds a rotation from yaw (Z), pitch (Y') and roll
// (X'') angles in degrees.
func NewRotationFromEuler(yaw, pitch, roll float64) Rotation {
	qz := RotationFromAxisAngle(Vec(0, 0, 1), yaw*math.Pi/180)
	qy := RotationFromAxisAngle(Vec(0, 1, 0), pitch*math.Pi/180)
	qx := RotationFromAxisAngle(Vec(1, 0, 0), roll*math.Pi/180)
	return qz.Multiply(qy).Multiply(qx)
}

// ToEuler returns yaw, pitch and roll in degrees.
func (r Rotation) ToEuler() (yaw, pitch, roll float64) {
	q := r.normalized().Q
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	sinp := 2 * (w*y - z*x)
	if sinp > 1 {
		sinp = 1
	} else if sinp < -1 {
		sinp = -1
	}
	pitch = math.Asin(sinp)
	yaw = math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	roll = math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	const deg = 180 / math.Pi
	return yaw * deg, pitch * deg, roll * deg
}

// Multiply returns r followed by o in the local frame (r * o).
func (r Rotation) Multiply(o Rotation) Rotation {
	return Rotation{Q: quat.Mul(r.Q, o.Q)}.normalized()
}

// Inverse returns the opposite rotation.
func (r Rotation) Inverse() Rotation {
	return Rotation{Q: quat.Conj(r.normalized().Q)}
}

// Apply rotates v.
func (r Rotation) Apply(v Vector) Vector {
	q := r.normalized().Q
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	res := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return Vec(res.Imag, res.Jmag, res.Kmag)
}

// Components returns the quaternion as (x, y, z, w). A zero quaternion
// reads as the identity.
func (r Rotation) Components() [4]float64 {
	if r.Q == (quat.Number{}) {
		return [4]float64{0, 0, 0, 1}
	}
	return [4]float64{r.Q.Imag, r.Q.Jmag, r.Q.Kmag, r.Q.Real}
}

// Negated returns the same rotation expressed by -q.
func (r Rotation) Negated() Rotation {
	return Rotation{Q: quat.Scale(-1, r.Q)}
}

func (r Rotation) normalized() Rotation {
	n := quat.Abs(r.Q)
	if n == 0 {
		return IdentityRotation()
	}
	return Rotation{Q: quat.Scale(1/n, r.Q)}
}

// RotationBetween returns the shortest rotation turning direction from into
// direction to.
func RotationBetween(from, to Vector) Rotation {
	f := from.Unit()
	t := to.Unit()
	d := f.Dot(t)
	if d > 1-1e-12 {
		return IdentityRotation()
	}
	if d < -1+1e-12 {
		axis := f.Cross(Vec(1, 0, 0))
		if axis.Length() < 1e-9 {
			axis = f.Cross(Vec(0, 1, 0))
		}
		return RotationFromAxisAngle(axis, math.Pi)
	}
	return RotationFromAxisAngle(f.Cross(t), math.Acos(d))
}

// Placement is a position plus orientation.
type Placement struct {
	Base     Vector   `json:"base"`
	Rotation Rotation `json:"rotation"`
}

// IdentityPlacement returns a placement at the origin with no rotation.
func IdentityPlacement() Placement {
	return Placement{Rotation: IdentityRotation()}
}

// NewPlacement builds a placement from a position and yaw/pitch/roll in degrees.
func NewPlacement(base Vector, yaw, pitch, roll float64) Placement {
	return Placement{Base: base, Rotation: NewRotationFromEuler(yaw, pitch, roll)}
}

// Multiply composes p with o, o expressed in p's local frame.
func (p Placement) Multiply(o Placement) Placement {
	return Placement{
		Base:     p.Base.Add(p.Rotation.Apply(o.Base)),
		Rotation: p.Rotation.Multiply(o.Rotation),
	}
}

// MultVec maps a local point into global coordinates.
func (p Placement) MultVec(v Vector) Vector {
	return p.Base.Add(p.Rotation.Apply(v))
}

// Inverse returns the placement undoing p.
func (p Placement) Inverse() Placement {
	inv := p.Rotation.Inverse()
	return Placement{
		Base:     inv.Apply(p.Base).Scale(-1),
		Rotation: inv,
	}
}

// PlacementsFuzzyEqual reports whether two placements are the same within
// LinearPrecision for the origin and AngularPrecision for the rotation.
// q and -q are treated as the same rotation.
func PlacementsFuzzyEqual(a, b Placement) bool {
	posEq := a.Base.Sub(b.Base).Length() < LinearPrecision

	q1 := a.Rotation.Components()
	q2 := b.Rotation.Components()
	if q1[0]*q2[0]+q1[1]*q2[1]+q1[2]*q2[2]+q1[3]*q2[3] < 0 {
		for i := range q2 {
			q2[i] = -q2[i]
		}
	}
	var diff float64
	for i := range q1 {
		diff += math.Abs(q1[i] - q2[i])
	}
	return posEq && diff < AngularPrecision
}
