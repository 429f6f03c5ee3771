package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgtree"
)

// vertex is a point of a path where markers may be drawn
type vertex struct {
	at            svgscan.Point
	in, out       float64 // directions of the incoming and outgoing segments
	hasIn, hasOut bool
}

// direction returns the marker orientation at the vertex: the bisector
// of the two segments, or the direction of the only one.
func (v vertex) direction() float64 {
	switch {
	case v.hasIn && v.hasOut:
		x := math.Cos(v.in) + math.Cos(v.out)
		y := math.Sin(v.in) + math.Sin(v.out)
		if x == 0 && y == 0 {
			return v.in
		}
		return math.Atan2(y, x)
	case v.hasIn:
		return v.in
	case v.hasOut:
		return v.out
	}
	return 0
}

func angle(from, to svgscan.Point) (float64, bool) {
	if from == to {
		return 0, false
	}
	return math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X)), true
}

// vertices returns the marker positions of a path, in order.
func vertices(ops []svgpath.Operation) []vertex {
	var (
		out        []vertex
		current    svgscan.Point
		subpath    int // index of the subpath start in out
		subpathOut float64
	)
	// segment connects the last vertex to `end`, with the given tangents
	segment := func(end svgscan.Point, outDir, inDir float64, ok bool) {
		if len(out) == 0 {
			// path without MoveTo: starts at the origin
			out = append(out, vertex{at: current})
		}
		last := &out[len(out)-1]
		if ok && !last.hasOut {
			last.out, last.hasOut = outDir, true
			if len(out)-1 == subpath {
				subpathOut = outDir
			}
		}
		out = append(out, vertex{at: end, in: inDir, hasIn: ok})
		current = end
	}
	for _, op := range ops {
		switch op := op.(type) {
		case svgpath.MoveTo:
			current = svgscan.Point(op)
			subpath = len(out)
			out = append(out, vertex{at: current})
		case svgpath.LineTo:
			end := svgscan.Point(op)
			dir, ok := angle(current, end)
			segment(end, dir, dir, ok)
		case svgpath.CubicTo:
			end := op[2]
			// degenerate control points fall back to the next ones
			outDir, ok := angle(current, op[0])
			if !ok {
				if outDir, ok = angle(current, op[1]); !ok {
					outDir, ok = angle(current, end)
				}
			}
			inDir, okIn := angle(op[1], end)
			if !okIn {
				if inDir, okIn = angle(op[0], end); !okIn {
					inDir, okIn = angle(current, end)
				}
			}
			segment(end, outDir, inDir, ok && okIn)
		case svgpath.Close:
			start := svgscan.Point(op)
			dir, ok := angle(current, start)
			if ok {
				segment(start, dir, dir, ok)
			} else if len(out) != 0 {
				out = append(out, vertex{at: start})
			}
			// the closing vertex continues with the first segment
			if len(out) != 0 && subpath < len(out)-1 && out[subpath].hasOut {
				closing := &out[len(out)-1]
				closing.out, closing.hasOut = subpathOut, true
			}
			current = start
		}
	}
	return out
}

// drawMarkers draws the markers of the shape `ref`, whose
// user space is mapped to the device by `ctm`.
func (dr *drawer) drawMarkers(ref svgtree.Ref, style svgtree.ResolvedStyle, ops []svgpath.Operation, ctm svgscan.Matrix) {
	if style.MarkerStart == 0 && style.MarkerMid == 0 && style.MarkerEnd == 0 {
		return
	}
	vs := vertices(ops)
	if len(vs) == 0 {
		return
	}
	strokeWidth := dr.doc.StrokeWidth(ref)
	for i, v := range vs {
		marker := style.MarkerMid
		if i == 0 {
			marker = style.MarkerStart
		} else if i == len(vs)-1 {
			marker = style.MarkerEnd
		}
		m, ok := dr.doc.Element(marker).(*svgtree.Marker)
		if !ok {
			continue
		}
		angle := m.Angle(v.direction(), i == 0)
		placement := ctm.Mult(dr.doc.MarkerTransform(marker, v.at, angle, strokeWidth))
		for _, child := range dr.doc.Children(marker) {
			dr.draw(child, placement)
		}
	}
}
