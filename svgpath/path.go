// Implements an abstract representation of
// svg paths, which can then be consumed
// by painting driver.
//
// Quadratic curves and elliptical arcs are converted to cubic
// Bézier curves while building, so that a Path only contains
// MoveTo, LineTo, CubicTo and Close operations.
package svgpath

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgtree/svgscan"
)

// Command identifies the kind of an Operation, and records
// the last command used while building a Path.
type Command uint8

// Human readable path constants
const (
	CmdMove Command = iota
	CmdLine
	CmdCurve
	CmdClose
	// only recorded while building, to drive the reflection rules
	cmdQuadratic
	cmdArc
)

func (c Command) String() string {
	switch c {
	case CmdMove:
		return "M"
	case CmdLine:
		return "L"
	case CmdCurve:
		return "C"
	case CmdClose:
		return "Z"
	case cmdQuadratic:
		return "Q"
	case cmdArc:
		return "A"
	}
	return fmt.Sprintf("<command %d>", uint8(c))
}

// Operation groups the different path commands
type Operation interface {
	Command() Command
	// End returns the current point after the operation.
	End() svgscan.Point
}

type MoveTo svgscan.Point

type LineTo svgscan.Point

// CubicTo stores the two control points and the end point.
type CubicTo [3]svgscan.Point

// Close stores the start point of the closed subpath.
type Close svgscan.Point

func (MoveTo) Command() Command  { return CmdMove }
func (LineTo) Command() Command  { return CmdLine }
func (CubicTo) Command() Command { return CmdCurve }
func (Close) Command() Command   { return CmdClose }

func (op MoveTo) End() svgscan.Point  { return svgscan.Point(op) }
func (op LineTo) End() svgscan.Point  { return svgscan.Point(op) }
func (op CubicTo) End() svgscan.Point { return op[2] }
func (op Close) End() svgscan.Point   { return svgscan.Point(op) }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
//
// The zero value is an empty path, ready to use.
type Path struct {
	Operations []Operation

	pos, start, lastCtrl svgscan.Point
	last                 Command

	// running bounds of the end points, valid when hasBounds is true
	minX, minY, maxX, maxY float32
	hasBounds              bool
}

// IsEmpty returns true if no operation has been added.
func (p *Path) IsEmpty() bool { return len(p.Operations) == 0 }

// CurrentPoint returns the position of the cursor.
func (p *Path) CurrentPoint() svgscan.Point { return p.pos }

// Clear removes all operations and resets the cursor.
func (p *Path) Clear() {
	*p = Path{Operations: p.Operations[:0]}
}

// Bounds returns the box enclosing the end points of the
// operations (control points are ignored). An empty path
// has a zero box.
//
// The running box starts with a maximum corner at the origin, so
// a path lying entirely in negative coordinates extends to (0, 0).
// This is the legacy running box, reproduced as is; use ExactBounds
// for a tight box.
func (p *Path) Bounds() svgscan.Rect {
	if !p.hasBounds {
		return svgscan.Rect{}
	}
	return svgscan.Rect{X: p.minX, Y: p.minY, W: p.maxX - p.minX, H: p.maxY - p.minY}
}

func (p *Path) updateBounds() {
	if !p.hasBounds {
		p.minX, p.minY, p.maxX, p.maxY = math.MaxFloat32, math.MaxFloat32, 0, 0
		p.hasBounds = true
	}
	if p.pos.X < p.minX {
		p.minX = p.pos.X
	}
	if p.pos.Y < p.minY {
		p.minY = p.pos.Y
	}
	if p.pos.X > p.maxX {
		p.maxX = p.pos.X
	}
	if p.pos.Y > p.maxY {
		p.maxY = p.pos.Y
	}
}

func (p *Path) push(op Operation) {
	p.Operations = append(p.Operations, op)
	p.pos = op.End()
	p.last = op.Command()
	p.updateBounds()
}

func (p *Path) abs(rel bool, x, y float32) svgscan.Point {
	if rel {
		return svgscan.Point{X: p.pos.X + x, Y: p.pos.Y + y}
	}
	return svgscan.Point{X: x, Y: y}
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(rel bool, x, y float32) {
	p.push(MoveTo(p.abs(rel, x, y)))
	p.start = p.pos
}

// LineTo adds a straight segment.
func (p *Path) LineTo(rel bool, x, y float32) {
	p.push(LineTo(p.abs(rel, x, y)))
}

// HLineTo adds an horizontal segment.
func (p *Path) HLineTo(rel bool, x float32) {
	if rel {
		x += p.pos.X
	}
	p.push(LineTo{X: x, Y: p.pos.Y})
}

// VLineTo adds a vertical segment.
func (p *Path) VLineTo(rel bool, y float32) {
	if rel {
		y += p.pos.Y
	}
	p.push(LineTo{X: p.pos.X, Y: y})
}

// CubicTo adds a cubic Bézier curve, with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(rel bool, x1, y1, x2, y2, x, y float32) {
	c1, c2, end := p.abs(rel, x1, y1), p.abs(rel, x2, y2), p.abs(rel, x, y)
	p.push(CubicTo{c1, c2, end})
	p.lastCtrl = c2
}

// reflect returns the reflection of the last control point
// if the previous command was `cmd`, or the current point.
func (p *Path) reflect(cmd Command) svgscan.Point {
	if p.last == cmd {
		return svgscan.Point{X: 2*p.pos.X - p.lastCtrl.X, Y: 2*p.pos.Y - p.lastCtrl.Y}
	}
	return p.pos
}

// SmoothCubicTo adds a cubic curve whose first control point is the reflection
// of the second control point of the previous cubic curve.
func (p *Path) SmoothCubicTo(rel bool, x2, y2, x, y float32) {
	c1 := p.reflect(CmdCurve)
	c2, end := p.abs(rel, x2, y2), p.abs(rel, x, y)
	p.CubicTo(false, c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
}

// QuadTo adds a quadratic Bézier curve, stored as its cubic equivalent.
func (p *Path) QuadTo(rel bool, x1, y1, x, y float32) {
	q, end := p.abs(rel, x1, y1), p.abs(rel, x, y)
	p.quadTo(q, end)
}

func (p *Path) quadTo(q, end svgscan.Point) {
	const twoThird = 2. / 3
	p0 := p.pos
	c1 := svgscan.Point{X: p0.X + twoThird*(q.X-p0.X), Y: p0.Y + twoThird*(q.Y-p0.Y)}
	c2 := svgscan.Point{X: end.X + twoThird*(q.X-end.X), Y: end.Y + twoThird*(q.Y-end.Y)}
	p.push(CubicTo{c1, c2, end})
	p.lastCtrl = q
	p.last = cmdQuadratic
}

// SmoothQuadTo adds a quadratic curve whose control point is the reflection
// of the control point of the previous quadratic curve.
func (p *Path) SmoothQuadTo(rel bool, x, y float32) {
	q := p.reflect(cmdQuadratic)
	p.quadTo(q, p.abs(rel, x, y))
}

// Close closes the current subpath, moving the cursor
// back to its start.
func (p *Path) Close() {
	p.Operations = append(p.Operations, Close(p.start))
	p.pos = p.start
	p.lastCtrl = p.start
	p.last = CmdClose
}

// LastCommand returns the command of the last operation.
func (p *Path) LastCommand() (Command, bool) {
	if len(p.Operations) == 0 {
		return 0, false
	}
	return p.Operations[len(p.Operations)-1].Command(), true
}

// ToSVGPath returns a string representation of the path
func (p *Path) ToSVGPath() string {
	chunks := make([]string, len(p.Operations))
	for i, op := range p.Operations {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%g,%g", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%g,%g", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%g,%g,%g,%g,%g,%g", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p *Path) String() string {
	return p.ToSVGPath()
}

// Transform returns a copy of the operations, with each point
// mapped through `m`.
func (p *Path) Transform(m svgscan.Matrix) []Operation {
	out := make([]Operation, len(p.Operations))
	for i, op := range p.Operations {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TransformPoint(svgscan.Point(op)))
		case LineTo:
			out[i] = LineTo(m.TransformPoint(svgscan.Point(op)))
		case CubicTo:
			out[i] = CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
		case Close:
			out[i] = Close(m.TransformPoint(svgscan.Point(op)))
		}
	}
	return out
}
