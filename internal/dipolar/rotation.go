package dipolar

import "math"

// Axis names a principal lab axis for rotation operators.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// RotationAbout returns the active rotation operator by a signed angle
// (radians) about the given axis. Entries are real; the complex tensor type
// keeps the later algebra uniform.
func RotationAbout(axis Axis, angle Real) CMat3 {
	c := complex(math.Cos(angle), 0)
	s := complex(math.Sin(angle), 0)
	R := I3()
	switch axis {
	case AxisX:
		R.M[1][1], R.M[1][2] = c, -s
		R.M[2][1], R.M[2][2] = s, c
	case AxisY:
		R.M[0][0], R.M[0][2] = c, s
		R.M[2][0], R.M[2][2] = -s, c
	case AxisZ:
		R.M[0][0], R.M[0][1] = c, -s
		R.M[1][0], R.M[1][1] = s, c
	}
	return R
}

// RotateTensor expresses a principal-frame tensor in the lab frame:
// α_lab = R(−φ)·α·R(φ) about the given axis.
func RotateTensor(alpha CMat3, axis Axis, angle Real) CMat3 {
	return RotationAbout(axis, -angle).Mul(alpha).Mul(RotationAbout(axis, angle))
}

// Orientation describes a dipole axis in the lab frame: either a single
// in-plane (azimuthal) angle, or a (polar, azimuthal) pair for dipoles tipped
// out of the focal plane.
type Orientation struct {
	Azimuth  Real
	Polar    Real
	hasPolar bool
}

// InPlane returns an orientation at azimuthal angle phi within the focal plane.
func InPlane(phi Real) Orientation { return Orientation{Azimuth: phi} }

// Tipped returns an out-of-plane orientation at polar angle theta from the
// optical axis and azimuthal angle phi.
func Tipped(theta, phi Real) Orientation {
	return Orientation{Polar: theta, Azimuth: phi, hasPolar: true}
}

// OutOfPlane reports whether the orientation carries a polar angle.
func (o Orientation) OutOfPlane() bool { return o.hasPolar }

// RotateTensor carries an x-sparse principal-frame polarizability into the
// lab frame. In-plane orientations rotate about z only. Out-of-plane
// orientations first bring the x-oriented principal axis onto z (a −π/2
// rotation about y), then apply the polar rotation about y and the azimuthal
// rotation about z.
func (o Orientation) RotateTensor(alpha CMat3) CMat3 {
	if o.hasPolar {
		alpha = RotateTensor(alpha, AxisY, -math.Pi/2)
		alpha = RotateTensor(alpha, AxisY, o.Polar)
	}
	return RotateTensor(alpha, AxisZ, o.Azimuth)
}

// DriveField returns the plane-wave drive amplitude vector aligned with the
// orientation: an x-polarized field of the given amplitude rotated in plane,
// or a z-polarized field tipped by the polar angle first.
func (o Orientation) DriveField(amp Real) CVec3 {
	var e CVec3
	if o.hasPolar {
		e = RotationAbout(AxisY, o.Polar).MulVec(CVec3{Z: complex(amp, 0)})
	} else {
		e = CVec3{X: complex(amp, 0)}
	}
	return RotationAbout(AxisZ, o.Azimuth).MulVec(e)
}
