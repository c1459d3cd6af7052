package intersection

import "math"

// polynomialEpsilon is the magnitude under which a polynomial coefficient or
// discriminant is treated as zero
const polynomialEpsilon = 1e-9

func isZero(x float64) bool {
	return x > -polynomialEpsilon && x < polynomialEpsilon
}

// SolveQuadratic returns the real roots of a*x² + b*x + c = 0 in ascending order.
// A double root is reported once.
func SolveQuadratic(a, b, c float64) ([2]float64, int) {
	var roots [2]float64
	if isZero(a) {
		if isZero(b) {
			return roots, 0
		}
		roots[0] = -c / b
		return roots, 1
	}

	p := b / (2 * a)
	q := c / a
	discriminant := p*p - q

	switch {
	case isZero(discriminant):
		roots[0] = -p
		return roots, 1
	case discriminant < 0:
		return roots, 0
	}

	sqrtD := math.Sqrt(discriminant)
	roots[0] = -sqrtD - p
	roots[1] = sqrtD - p
	return roots, 2
}

// SolveCubic returns the real roots of a*x³ + b*x² + c*x + d = 0 in ascending order
func SolveCubic(a, b, c, d float64) ([3]float64, int) {
	var roots [3]float64
	if isZero(a) {
		quadratic, n := SolveQuadratic(b, c, d)
		copy(roots[:], quadratic[:n])
		return roots, n
	}

	// normal form x³ + Ax² + Bx + C = 0
	A := b / a
	B := c / a
	C := d / a

	// substitute x = y - A/3 to eliminate the quadric term: y³ + 3py + 2q = 0
	sqA := A * A
	p := (-sqA/3 + B) / 3
	q := (2.0/27.0*A*sqA - A*B/3 + C) / 2

	cbP := p * p * p
	discriminant := q*q + cbP

	n := 0
	switch {
	case isZero(discriminant):
		if isZero(q) {
			roots[0] = 0
			n = 1
		} else {
			u := math.Cbrt(-q)
			roots[0] = 2 * u
			roots[1] = -u
			n = 2
		}
	case discriminant < 0:
		// casus irreducibilis: three real roots
		phi := math.Acos(clamp(-q/math.Sqrt(-cbP), -1, 1)) / 3
		t := 2 * math.Sqrt(-p)
		roots[0] = t * math.Cos(phi)
		roots[1] = -t * math.Cos(phi+math.Pi/3)
		roots[2] = -t * math.Cos(phi-math.Pi/3)
		n = 3
	default:
		sqrtD := math.Sqrt(discriminant)
		roots[0] = math.Cbrt(sqrtD-q) - math.Cbrt(sqrtD+q)
		n = 1
	}

	sub := A / 3
	for i := 0; i < n; i++ {
		roots[i] -= sub
	}
	sortRoots(roots[:n])
	return roots, n
}

// SolveQuartic returns the real roots of a*x⁴ + b*x³ + c*x² + d*x + e = 0 in
// ascending order. Roots found through Ferrari's resolvent cubic are polished
// with Newton steps on the original polynomial.
func SolveQuartic(a, b, c, d, e float64) ([4]float64, int) {
	var roots [4]float64
	if isZero(a) {
		cubic, n := SolveCubic(b, c, d, e)
		copy(roots[:], cubic[:n])
		return roots, n
	}

	// normal form x⁴ + Ax³ + Bx² + Cx + D = 0
	A := b / a
	B := c / a
	C := d / a
	D := e / a

	// substitute x = y - A/4 to eliminate the cubic term: y⁴ + py² + qy + r = 0
	sqA := A * A
	p := -3.0/8.0*sqA + B
	q := sqA*A/8 - A*B/2 + C
	r := -3.0/256.0*sqA*sqA + sqA*B/16 - A*C/4 + D

	n := 0
	if isZero(r) {
		// no absolute term: y(y³ + py + q) = 0
		cubic, m := SolveCubic(1, 0, p, q)
		copy(roots[:], cubic[:m])
		roots[m] = 0
		n = m + 1
	} else {
		// one real root of the resolvent cubic
		cubic, m := SolveCubic(1, -p/2, -r, r*p/2-q*q/8)
		if m == 0 {
			return roots, 0
		}
		z := cubic[m-1]

		u := z*z - r
		v := 2*z - p
		switch {
		case isZero(u):
			u = 0
		case u > 0:
			u = math.Sqrt(u)
		default:
			return roots, 0
		}
		switch {
		case isZero(v):
			v = 0
		case v > 0:
			v = math.Sqrt(v)
		default:
			return roots, 0
		}

		sign := 1.0
		if q < 0 {
			sign = -1
		}

		first, m1 := SolveQuadratic(1, sign*v, z-u)
		copy(roots[:], first[:m1])
		second, m2 := SolveQuadratic(1, -sign*v, z+u)
		copy(roots[m1:], second[:m2])
		n = m1 + m2
	}

	sub := A / 4
	for i := 0; i < n; i++ {
		roots[i] = polishQuartic(a, b, c, d, e, roots[i]-sub)
	}
	sortRoots(roots[:n])
	return roots, n
}

// polishQuartic refines a root estimate with a few Newton iterations, keeping
// the estimate when the derivative vanishes
func polishQuartic(a, b, c, d, e, x float64) float64 {
	for i := 0; i < 4; i++ {
		f := (((a*x+b)*x+c)*x+d)*x + e
		df := ((4*a*x+3*b)*x+2*c)*x + d
		if isZero(df) {
			break
		}
		next := x - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		x = next
	}
	return x
}

func sortRoots(roots []float64) {
	for i := 1; i < len(roots); i++ {
		for j := i; j > 0 && roots[j] < roots[j-1]; j-- {
			roots[j], roots[j-1] = roots[j-1], roots[j]
		}
	}
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}
