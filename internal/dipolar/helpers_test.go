package dipolar

import "math"

// relative error against b, falling back to absolute near zero
func relErr(a, b Real) Real {
	d := math.Abs(a - b)
	if m := math.Abs(b); m > 1 {
		return d / m
	}
	return d
}

func relErrC(a, b complex128) Real {
	d := abs(a - b)
	if m := abs(b); m > 1e-30 {
		return d / m
	}
	return d
}

func matsClose(A, B CMat3, tol Real) bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if abs(A.M[r][c]-B.M[r][c]) > tol {
				return false
			}
		}
	}
	return true
}

func matNorm(A CMat3) Real {
	s := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			s += absSq(A.M[r][c])
		}
	}
	return math.Sqrt(s)
}
