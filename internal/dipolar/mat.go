package dipolar

import (
	"fmt"
	"math"
)

// CMat3 is a complex 3×3 tensor (row-major): polarizabilities, Green tensors
// and rotation operators all live here.
type CMat3 struct {
	M [3][3]complex128
}

func I3() CMat3 {
	return CMat3{M: [3][3]complex128{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Diag builds a diagonal tensor from its principal components.
func Diag(a11, a22, a33 complex128) CMat3 {
	return CMat3{M: [3][3]complex128{
		{a11, 0, 0},
		{0, a22, 0},
		{0, 0, a33},
	}}
}

func (A CMat3) Mul(B CMat3) CMat3 {
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := complex(0, 0)
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

func (A CMat3) Add(B CMat3) CMat3 {
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[r][c] + B.M[r][c]
		}
	}
	return R
}

func (A CMat3) Sub(B CMat3) CMat3 {
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[r][c] - B.M[r][c]
		}
	}
	return R
}

func (A CMat3) Scale(s complex128) CMat3 {
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = s * A.M[r][c]
		}
	}
	return R
}

func (A CMat3) Transpose() CMat3 {
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}

func (A CMat3) MulVec(v CVec3) CVec3 {
	return CVec3{
		A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}

// Det returns the determinant.
func (A CMat3) Det() complex128 {
	m := &A.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// relative determinant threshold below which a tensor is treated as singular
const singularRelTol = 1e-12

// Inverse returns A⁻¹ by the adjugate, or an error matching ErrSingular when
// the determinant vanishes (relative to ‖A‖∞³) or is not finite.
func (A CMat3) Inverse() (CMat3, error) {
	det := A.Det()
	n := A.maxRowSum()
	if !isFiniteC(det) || abs(det) <= singularRelTol*n*n*n {
		return CMat3{}, fmt.Errorf("%w (det=%g)", ErrSingular, det)
	}
	m := &A.M
	inv := CMat3{M: [3][3]complex128{
		{m[1][1]*m[2][2] - m[1][2]*m[2][1], m[0][2]*m[2][1] - m[0][1]*m[2][2], m[0][1]*m[1][2] - m[0][2]*m[1][1]},
		{m[1][2]*m[2][0] - m[1][0]*m[2][2], m[0][0]*m[2][2] - m[0][2]*m[2][0], m[0][2]*m[1][0] - m[0][0]*m[1][2]},
		{m[1][0]*m[2][1] - m[1][1]*m[2][0], m[0][1]*m[2][0] - m[0][0]*m[2][1], m[0][0]*m[1][1] - m[0][1]*m[1][0]},
	}}
	return inv.Scale(1 / det), nil
}

func (A CMat3) maxRowSum() Real {
	maxv := 0.0
	for r := 0; r < 3; r++ {
		sum := 0.0
		for c := 0; c < 3; c++ {
			sum += abs(A.M[r][c])
		}
		if sum > maxv {
			maxv = sum
		}
	}
	return maxv
}

func abs(z complex128) Real { return math.Hypot(real(z), imag(z)) }
