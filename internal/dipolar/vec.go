package dipolar

import "math"

// Vec3 represents a real 3-vector: positions and separation vectors in the
// lab frame, in cm.
type Vec3 struct {
	X, Y, Z Real
}

func (a Vec3) Add(b Vec3) Vec3   { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3   { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec3) Scale(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product between two 3D vectors.
func (a Vec3) Dot(b Vec3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// CVec3 represents a complex 3-vector: field amplitudes and dipole moments.
type CVec3 struct {
	X, Y, Z complex128
}

func (a CVec3) Add(b CVec3) CVec3        { return CVec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (v CVec3) Scale(s complex128) CVec3 { return CVec3{v.X * s, v.Y * s, v.Z * s} }
func (v CVec3) Conj() CVec3              { return CVec3{conj(v.X), conj(v.Y), conj(v.Z)} }

// NormSq returns |v|² = Σ|v_i|².
func (v CVec3) NormSq() Real {
	return absSq(v.X) + absSq(v.Y) + absSq(v.Z)
}

// ImagDotConj returns Σᵢ Im(aᵢ·conj(bᵢ)), the imaginary part of the
// component-wise overlap used by the cross-section formulas.
func ImagDotConj(a, b CVec3) Real {
	return imag(a.X*conj(b.X)) + imag(a.Y*conj(b.Y)) + imag(a.Z*conj(b.Z))
}

func conj(z complex128) complex128 { return complex(real(z), -imag(z)) }

func absSq(z complex128) Real { return real(z)*real(z) + imag(z)*imag(z) }
