package svgscan

import (
	"fmt"
	"math"
)

// Matrix is an affine transformation, with coefficients
// in the order of the SVG matrix(a b c d e f) function:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transformation.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

func (a Matrix) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", a.A, a.B, a.C, a.D, a.E, a.F)
}

// IsIdentity returns true if `a` is exactly the identity.
func (a Matrix) IsIdentity() bool { return a == Identity }

// Mult returns a*b: `b` is applied first, in the local
// coordinate system of `a`.
func (a Matrix) Mult(b Matrix) Matrix {
	return Matrix{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// PostMult returns b*a: `b` is applied after `a`, in the parent space.
func (a Matrix) PostMult(b Matrix) Matrix { return b.Mult(a) }

// Transform applies the matrix to the point (x, y).
func (a Matrix) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformVector applies the linear part of the matrix only.
func (a Matrix) TransformVector(x, y float64) (float64, float64) {
	return a.A*x + a.C*y, a.B*x + a.D*y
}

// TransformPoint is a convenience wrapper around Transform.
func (a Matrix) TransformPoint(p Point) Point {
	x, y := a.Transform(float64(p.X), float64(p.Y))
	return Point{float32(x), float32(y)}
}

// Translate pre-multiplies by a translation.
func (a Matrix) Translate(x, y float64) Matrix {
	return a.Mult(Matrix{1, 0, 0, 1, x, y})
}

// Scale pre-multiplies by a scaling.
func (a Matrix) Scale(x, y float64) Matrix {
	return a.Mult(Matrix{x, 0, 0, y, 0, 0})
}

// Rotate pre-multiplies by a rotation of `theta` radians.
func (a Matrix) Rotate(theta float64) Matrix {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix{c, s, -s, c, 0, 0})
}

// RotateAround rotates by `theta` radians around (cx, cy).
func (a Matrix) RotateAround(theta, cx, cy float64) Matrix {
	return a.Translate(cx, cy).Rotate(theta).Translate(-cx, -cy)
}

// SkewX pre-multiplies by a skew along the x axis, of `theta` radians.
func (a Matrix) SkewX(theta float64) Matrix {
	return a.Mult(Matrix{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY pre-multiplies by a skew along the y axis, of `theta` radians.
func (a Matrix) SkewY(theta float64) Matrix {
	return a.Mult(Matrix{1, math.Tan(theta), 0, 1, 0, 0})
}

// PostTranslate translates in the parent space.
func (a Matrix) PostTranslate(x, y float64) Matrix {
	a.E += x
	a.F += y
	return a
}

// PostScale scales in the parent space.
func (a Matrix) PostScale(x, y float64) Matrix {
	return Matrix{a.A * x, a.B * y, a.C * x, a.D * y, a.E * x, a.F * y}
}

// PostRotate rotates in the parent space.
func (a Matrix) PostRotate(theta float64) Matrix {
	return Identity.Rotate(theta).Mult(a)
}

// Determinant returns AD - BC.
func (a Matrix) Determinant() float64 { return a.A*a.D - a.B*a.C }

// Invert returns the inverse matrix. A singular
// matrix is returned unchanged, with ok set to false.
func (a Matrix) Invert() (Matrix, bool) {
	det := a.Determinant()
	if det == 0 {
		return a, false
	}
	inv := Matrix{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
	}
	inv.E = -(inv.A*a.E + inv.C*a.F)
	inv.F = -(inv.B*a.E + inv.D*a.F)
	return inv, true
}

// Overlay returns `other` if `a` is the identity, `a` otherwise.
func (a Matrix) Overlay(other Matrix) Matrix {
	if a.IsIdentity() {
		return other
	}
	return a
}
