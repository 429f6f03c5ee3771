package svgpath

import (
	"math"

	"github.com/benoitkugler/svgtree/svgscan"
)

// compute the exact bounding box of a path, needed when using
// paint servers with objectBoundingBox units

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of the cubic, taken as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// roots of at^2 + bt + c, possibly degenerated to a line
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type extent struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (e *extent) add(x, y float64) {
	if !e.set {
		*e = extent{x, y, x, y, true}
		return
	}
	e.minX = math.Min(e.minX, x)
	e.minY = math.Min(e.minY, y)
	e.maxX = math.Max(e.maxX, x)
	e.maxY = math.Max(e.maxY, y)
}

// addCubic adds the extrema of the curve (p0, p1, p2, p3), for t in ]0, 1[
func (e *extent) addCubic(p0, p1, p2, p3 svgscan.Point) {
	x0, x1, x2, x3 := float64(p0.X), float64(p1.X), float64(p2.X), float64(p3.X)
	y0, y1, y2, y3 := float64(p0.Y), float64(p1.Y), float64(p2.Y), float64(p3.Y)
	aX, bX, cX := cubicDerivative(x0, x1, x2, x3)
	aY, bY, cY := cubicDerivative(y0, y1, y2, y3)
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		// filter invalid value
		if !(0 < t && t < 1) {
			continue
		}
		e.add(bezierSpline(x0, x1, x2, x3, t), bezierSpline(y0, y1, y2, y3, t))
	}
}

// ExactBounds returns the tightest box enclosing the path,
// taking curve extrema into account. Unlike Bounds, it does not
// include the origin for paths in negative coordinates.
func (p *Path) ExactBounds() svgscan.Rect {
	var (
		e   extent
		pos svgscan.Point
	)
	for _, op := range p.Operations {
		switch op := op.(type) {
		case CubicTo:
			e.addCubic(pos, op[0], op[1], op[2])
		}
		pos = op.End()
		e.add(float64(pos.X), float64(pos.Y))
	}
	return svgscan.Rect{
		X: float32(e.minX),
		Y: float32(e.minY),
		W: float32(e.maxX - e.minX),
		H: float32(e.maxY - e.minY),
	}
}
