// Package hostmath binds the transcendental intrinsics constant folding
// cannot reduce exactly (SQRT, SIN, LOG, ...) to the host's own math
// library, the same role the teacher's VM gives callIntrinsic's by-name
// dispatch — except here "unavailable" is an ordinary, non-fatal lookup
// failure rather than a VM panic: folding a transcendental call is always
// optional, never required for compilation to proceed.
package hostmath

import (
	"math"
	"math/cmplx"

	"fconst/internal/bignum"
	"fconst/internal/numeric"
)

// ScalarFunc evaluates a real-valued host intrinsic at the given mantissa
// precision (the calling REAL kind's PrecisionBits).
type ScalarFunc func(args []bignum.BigFloat, prec int) (bignum.BigFloat, bool)

// ComplexFunc evaluates a complex-valued host intrinsic.
type ComplexFunc func(args []numeric.ComplexValue, prec int) (numeric.ComplexValue, bool)

// Handle is the host intrinsic library a folding Context consults. Lookup
// keys on name, result kind, and argument kinds because Fortran overloads
// many intrinsic names across REAL/COMPLEX and across kinds (SIN(REAL(4))
// and SIN(REAL(8)) are different host calls even though folding treats them
// uniformly otherwise).
type Handle interface {
	Lookup(name string, resultKind int, argKinds ...int) (ScalarFunc, bool)
	LookupComplex(name string, resultKind int, argKinds ...int) (ComplexFunc, bool)
}

// NopHandle always reports every intrinsic unavailable. internal/fold's
// NewContext falls back to it when given no Handle, and the CLI uses it when
// `.foldcheck.toml` sets `host_math = false`, so folding stops at the last
// exactly-representable step rather than approximating through a host
// library.
type NopHandle struct{}

func (NopHandle) Lookup(name string, resultKind int, argKinds ...int) (ScalarFunc, bool) {
	return nil, false
}

func (NopHandle) LookupComplex(name string, resultKind int, argKinds ...int) (ComplexFunc, bool) {
	return nil, false
}

// StdMathHandle binds intrinsic names to Go's math/math.cmplx packages.
// Kind is ignored beyond selecting precision: the same math.Sin backs every
// REAL kind, bridged through bignum.FloatToFloat64/FloatFromFloat64.
type StdMathHandle struct{}

func unary(f func(float64) float64) ScalarFunc {
	return func(args []bignum.BigFloat, prec int) (bignum.BigFloat, bool) {
		if len(args) != 1 {
			return bignum.BigFloat{}, false
		}
		x := bignum.FloatToFloat64(args[0])
		return bignum.FloatFromFloat64(f(x), prec)
	}
}

func binary(f func(a, b float64) float64) ScalarFunc {
	return func(args []bignum.BigFloat, prec int) (bignum.BigFloat, bool) {
		if len(args) != 2 {
			return bignum.BigFloat{}, false
		}
		a := bignum.FloatToFloat64(args[0])
		b := bignum.FloatToFloat64(args[1])
		return bignum.FloatFromFloat64(f(a, b), prec)
	}
}

var realTable = map[string]ScalarFunc{
	"acos":      unary(math.Acos),
	"asin":      unary(math.Asin),
	"atan":      unary(math.Atan),
	"atan2":     binary(math.Atan2),
	"cos":       unary(math.Cos),
	"cosh":      unary(math.Cosh),
	"sin":       unary(math.Sin),
	"sinh":      unary(math.Sinh),
	"tan":       unary(math.Tan),
	"tanh":      unary(math.Tanh),
	"exp":       unary(math.Exp),
	"log":       unary(math.Log),
	"log10":     unary(math.Log10),
	"sqrt":      unary(math.Sqrt),
	"hypot":     binary(math.Hypot),
	"erf":       unary(math.Erf),
	"erfc":      unary(math.Erfc),
	"gamma":     unary(math.Gamma),
	"bessel_j0": unary(math.J0),
	"bessel_j1": unary(math.J1),
	"bessel_y0": unary(math.Y0),
	"bessel_y1": unary(math.Y1),
}

func (StdMathHandle) Lookup(name string, resultKind int, argKinds ...int) (ScalarFunc, bool) {
	f, ok := realTable[name]
	return f, ok
}

func complexUnary(f func(complex128) complex128) ComplexFunc {
	return func(args []numeric.ComplexValue, prec int) (numeric.ComplexValue, bool) {
		if len(args) != 1 {
			return numeric.ComplexValue{}, false
		}
		re := bignum.FloatToFloat64(args[0].Re)
		im := bignum.FloatToFloat64(args[0].Im)
		out := f(complex(re, im))
		outRe, ok1 := bignum.FloatFromFloat64(real(out), prec)
		outIm, ok2 := bignum.FloatFromFloat64(imag(out), prec)
		if !ok1 || !ok2 {
			return numeric.ComplexValue{}, false
		}
		return numeric.ComplexValue{Re: outRe, Im: outIm}, true
	}
}

var complexTable = map[string]ComplexFunc{
	"sin":  complexUnary(cmplx.Sin),
	"cos":  complexUnary(cmplx.Cos),
	"exp":  complexUnary(cmplx.Exp),
	"log":  complexUnary(cmplx.Log),
	"sqrt": complexUnary(cmplx.Sqrt),
	"tan":  complexUnary(cmplx.Tan),
}

func (StdMathHandle) LookupComplex(name string, resultKind int, argKinds ...int) (ComplexFunc, bool) {
	f, ok := complexTable[name]
	return f, ok
}
