package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxArcSegment is the maximum angle, in radians, spanned by one cubic
// segment when approximating an arc.
const maxArcSegment = math.Pi/2 + 0.001

// ArcTo adds an elliptical arc from the current point to (x, y).
// `rotation` is the rotation of the ellipse x axis, in degrees.
//
// The arc is approximated by cubic curves, each spanning at most a quarter turn.
// Radii too small to reach the end point are scaled up. A zero radius,
// or an arc ending on the current point, degrades to a straight line.
func (p *Path) ArcTo(rel bool, rx, ry, rotation float32, largeArc, sweep bool, x, y float32) {
	end := p.abs(rel, x, y)
	if end == p.pos || rx == 0 || ry == 0 {
		p.LineTo(false, end.X, end.Y)
		return
	}

	ra, rb := math.Abs(float64(rx)), math.Abs(float64(ry))
	px, py := float64(p.pos.X), float64(p.pos.Y)
	ex, ey := float64(end.X), float64(end.Y)
	sinTh, cosTh := math.Sincos(float64(rotation) * math.Pi / 180)

	// scale the radii up if needed
	dx, dy := (px-ex)/2, (py-ey)/2
	dx1 := cosTh*dx + sinTh*dy
	dy1 := -sinTh*dx + cosTh*dy
	if check := dx1*dx1/(ra*ra) + dy1*dy1/(rb*rb); check > 1 {
		s := math.Sqrt(check)
		ra, rb = ra*s, rb*s
	}

	// map the ellipse to the unit circle
	a00, a01 := cosTh/ra, sinTh/ra
	a10, a11 := -sinTh/rb, cosTh/rb
	x0, y0 := a00*px+a01*py, a10*px+a11*py
	x1, y1 := a00*ex+a01*ey, a10*ex+a11*ey

	d := (x1-x0)*(x1-x0) + (y1-y0)*(y1-y0)
	sfactorSq := 1/d - 0.25
	if sfactorSq < 0 {
		sfactorSq = 0
	}
	sfactor := math.Sqrt(sfactorSq)
	if sweep == largeArc {
		sfactor = -sfactor
	}
	xc := 0.5*(x0+x1) - sfactor*(y1-y0)
	yc := 0.5*(y0+y1) + sfactor*(x1-x0)

	th0 := math.Atan2(y0-yc, x0-xc)
	th1 := math.Atan2(y1-yc, x1-xc)
	thArc := th1 - th0
	if thArc < 0 && sweep {
		thArc += 2 * math.Pi
	} else if thArc > 0 && !sweep {
		thArc -= 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(thArc / maxArcSegment)))

	// back from the unit circle
	b00, b01 := cosTh*ra, -sinTh*rb
	b10, b11 := sinTh*ra, cosTh*rb
	for i := 0; i < segs; i++ {
		th2 := th0 + float64(i)*thArc/float64(segs)
		th3 := th0 + float64(i+1)*thArc/float64(segs)
		half := 0.5 * (th3 - th2)
		sinQuarter := math.Sin(half * 0.5)
		t := (8. / 3.) * sinQuarter * sinQuarter / math.Sin(half)

		c1x, c1y := xc+math.Cos(th2)-t*math.Sin(th2), yc+math.Sin(th2)+t*math.Cos(th2)
		e3x, e3y := xc+math.Cos(th3), yc+math.Sin(th3)
		c2x, c2y := e3x+t*math.Sin(th3), e3y-t*math.Cos(th3)

		p.CubicTo(false,
			float32(b00*c1x+b01*c1y), float32(b10*c1x+b11*c1y),
			float32(b00*c2x+b01*c2y), float32(b10*c2x+b11*c2y),
			float32(b00*e3x+b01*e3y), float32(b10*e3x+b11*e3y),
		)
	}
	p.last = cmdArc
}

// Rect returns the path of a rectangle, with corners rounded by (rx, ry).
// Radii are expected to be already clamped to half the width and height.
func Rect(x, y, w, h, rx, ry float32) *Path {
	var p Path
	if rx == 0 && ry == 0 {
		p.MoveTo(false, x, y)
		p.HLineTo(false, x+w)
		p.VLineTo(false, y+h)
		p.HLineTo(false, x)
		p.Close()
		return &p
	}

	p.MoveTo(false, x+rx, y)
	p.HLineTo(false, x+w-rx)
	p.ArcTo(false, rx, ry, 0, false, true, x+w, y+ry)
	p.VLineTo(false, y+h-ry)
	p.ArcTo(false, rx, ry, 0, false, true, x+w-rx, y+h)
	p.HLineTo(false, x+rx)
	p.ArcTo(false, rx, ry, 0, false, true, x, y+h-ry)
	p.VLineTo(false, y+ry)
	p.ArcTo(false, rx, ry, 0, false, true, x+rx, y)
	return &p
}

// Ellipse returns the path of an ellipse, made of four arcs,
// starting at the rightmost point.
func Ellipse(cx, cy, rx, ry float32) *Path {
	var p Path
	p.MoveTo(false, cx+rx, cy)
	p.ArcTo(false, rx, ry, 0, false, true, cx, cy+ry)
	p.ArcTo(false, rx, ry, 0, false, true, cx-rx, cy)
	p.ArcTo(false, rx, ry, 0, false, true, cx, cy-ry)
	p.ArcTo(false, rx, ry, 0, false, true, cx+rx, cy)
	return &p
}

// Circle returns the path of a circle.
func Circle(cx, cy, r float32) *Path { return Ellipse(cx, cy, r, r) }

// Line returns the path of a single segment.
func Line(x1, y1, x2, y2 float32) *Path {
	var p Path
	p.MoveTo(false, x1, y1)
	p.LineTo(false, x2, y2)
	return &p
}
