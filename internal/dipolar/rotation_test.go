package dipolar

import (
	"math"
	"testing"
)

func TestRotationAbout_IsOrthonormal(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		R := RotationAbout(axis, math.Pi/7)
		P := R.Transpose().Mul(R)
		if !matsClose(P, I3(), 1e-14) {
			t.Fatalf("R^T R != I about %s", axis)
		}
	}
}

func TestRotationAbout_ActiveConvention(t *testing.T) {
	// 90° about z carries x̂ onto ŷ.
	o := RotationAbout(AxisZ, math.Pi/2).MulVec(CVec3{X: 1})
	if abs(o.X) > 1e-14 || abs(o.Y-1) > 1e-14 || abs(o.Z) > 1e-14 {
		t.Fatalf("active z-rotation failed: %+v", o)
	}
	// 90° about y carries ẑ onto x̂.
	o = RotationAbout(AxisY, math.Pi/2).MulVec(CVec3{Z: 1})
	if abs(o.X-1) > 1e-14 || abs(o.Y) > 1e-14 || abs(o.Z) > 1e-14 {
		t.Fatalf("active y-rotation failed: %+v", o)
	}
}

func TestRotateTensor_RoundTrip(t *testing.T) {
	A := CMat3{M: [3][3]complex128{
		{1 + 2i, 0.3, -0.7i},
		{0.1 - 0.4i, 2, 0.9},
		{-1.1, 0.2 + 0.2i, 3i},
	}}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		B := RotateTensor(RotateTensor(A, axis, 0.83), axis, -0.83)
		if !matsClose(A, B, 1e-13) {
			t.Fatalf("round trip about %s failed", axis)
		}
	}
}

func TestRotateTensor_SparseDipole(t *testing.T) {
	// An xx-sparse tensor conjugated by the z-rotation picks up the
	// cos²/sin² diagonal and symmetric off-diagonal projections.
	phi := math.Pi / 6
	c, s := math.Cos(phi), math.Sin(phi)
	A := RotateTensor(Diag(1, 0, 0), AxisZ, phi)
	if relErrC(A.M[0][0], complex(c*c, 0)) > 1e-14 {
		t.Fatalf("M00 = %g, want cos² = %g", A.M[0][0], c*c)
	}
	if relErrC(A.M[1][1], complex(s*s, 0)) > 1e-14 {
		t.Fatalf("M11 = %g, want sin² = %g", A.M[1][1], s*s)
	}
	if relErrC(A.M[0][1], A.M[1][0]) > 1e-14 {
		t.Fatalf("off-diagonal not symmetric: %g vs %g", A.M[0][1], A.M[1][0])
	}
	if math.Abs(abs(A.M[0][1])-c*s) > 1e-14 {
		t.Fatalf("|M01| = %g, want |cos·sin| = %g", abs(A.M[0][1]), c*s)
	}
}

func TestOrientation_DriveField(t *testing.T) {
	amp := 2.5
	e := InPlane(0).DriveField(amp)
	if abs(e.X-complex(amp, 0)) > 1e-14 || abs(e.Y) > 1e-14 || abs(e.Z) > 1e-14 {
		t.Fatalf("in-plane phi=0: %+v", e)
	}
	e = InPlane(math.Pi / 2).DriveField(amp)
	if abs(e.X) > 1e-14 || abs(e.Y-complex(amp, 0)) > 1e-14 {
		t.Fatalf("in-plane phi=π/2: %+v", e)
	}
	// Zero polar angle leaves the field on the optical axis.
	e = Tipped(0, 0).DriveField(amp)
	if abs(e.Z-complex(amp, 0)) > 1e-14 || abs(e.X) > 1e-14 {
		t.Fatalf("tipped theta=0: %+v", e)
	}
	// Tipping by π/2 brings it into the plane along x.
	e = Tipped(math.Pi/2, 0).DriveField(amp)
	if abs(e.X-complex(amp, 0)) > 1e-14 || abs(e.Z) > 1e-13 {
		t.Fatalf("tipped theta=π/2: %+v", e)
	}
}

func TestOrientation_OutOfPlaneTensorStaysFinite(t *testing.T) {
	// The polar path pre-rotates the x-sparse tensor onto z before tipping;
	// the trace is preserved through the whole chain.
	alpha := Diag(1.5+0.5i, 0, 0)
	lab := Tipped(0.7, 1.1).RotateTensor(alpha)
	tr := lab.M[0][0] + lab.M[1][1] + lab.M[2][2]
	if relErrC(tr, 1.5+0.5i) > 1e-13 {
		t.Fatalf("trace not preserved: %g", tr)
	}
}
