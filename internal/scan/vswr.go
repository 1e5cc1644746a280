package scan

import (
	"errors"
	"math"
	"math/cmplx"
)

// DefaultReferenceImpedance is the characteristic impedance of amateur radio
// feed lines and analyzers, in ohms.
const DefaultReferenceImpedance = 50.0

// ErrOutOfRange is returned for impedances and ratios that do not describe a
// physically meaningful VSWR.
var ErrOutOfRange = errors.New("value out of range")

// ReflectionCoefficient returns Γ = (Z − Z0) / (Z + Z0).
func ReflectionCoefficient(z complex128, z0 float64) complex128 {
	ref := complex(z0, 0)
	return (z - ref) / (z + ref)
}

// VSWRFromImpedance converts a series impedance R + jX measured against z0
// into VSWR = (1 + |Γ|) / (1 − |Γ|).
//
// Negative resistance, non-finite values and a total reflection (|Γ| >= 1,
// e.g. a pure reactance) are rejected with ErrOutOfRange.
func VSWRFromImpedance(r, x, z0 float64) (float64, error) {
	if !isFinite(r) || !isFinite(x) || !isFinite(z0) || r < 0 || z0 <= 0 {
		return 0, ErrOutOfRange
	}

	rho := cmplx.Abs(ReflectionCoefficient(complex(r, x), z0))
	return VSWRFromReflection(rho)
}

// VSWRFromReflection converts the magnitude of the reflection coefficient
// into VSWR.
func VSWRFromReflection(rho float64) (float64, error) {
	if !isFinite(rho) || rho < 0 || rho >= 1 {
		return 0, ErrOutOfRange
	}
	return (1 + rho) / (1 - rho), nil
}

// ValidVSWR reports whether v can be plotted as a standing wave ratio.
func ValidVSWR(v float64) bool {
	return isFinite(v) && v >= 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
