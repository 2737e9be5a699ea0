package dipolar

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrSingular is the sentinel matched (via errors.Is) by every failure caused
// by a singular or non-finite 3×3 inversion, whether of a polarizability
// tensor or of the coupling matrix.
var ErrSingular = errors.New("dipolar: singular tensor")

// DomainError reports a parameter outside its physical domain, e.g. a
// non-positive semi-axis or a zero separation vector.
type DomainError struct {
	Param string
	Value Real
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("dipolar: %s out of domain: %g", e.Param, e.Value)
}

// SingularCouplingError reports that the coupling matrix M = I − α₀Gα₁G is
// singular or ill-conditioned, which happens near a coupled resonance. The
// core does not mask or retry this; recovery belongs to the caller.
type SingularCouplingError struct {
	Det complex128 // determinant of the coupling matrix
}

func (e *SingularCouplingError) Error() string {
	return fmt.Sprintf("dipolar: coupling matrix is singular (det=%g)", e.Det)
}

func (e *SingularCouplingError) Unwrap() error { return ErrSingular }

// BroadcastError reports batched inputs whose lengths cannot broadcast
// against the common sample axis: every slice must have length 1 or the
// shared batch length.
type BroadcastError struct {
	Name string // which input
	Len  int    // its length
	Want int    // the batch length it failed against
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("dipolar: %s has length %d, cannot broadcast against batch of %d", e.Name, e.Len, e.Want)
}

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func isFiniteC(z complex128) bool {
	return !cmplx.IsInf(z) && !cmplx.IsNaN(z)
}
