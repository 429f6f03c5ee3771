package svgdraw

import (
	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
)

// drawTo sends the operations of `path` to `d`, after applying `m`.
// Every subpath is stopped, closed subpaths with closeLoop set to true.
func drawTo(d Drawer, path []svgpath.Operation, m svgscan.Matrix) {
	var (
		inPath bool
		start  svgscan.Point // of the last closed subpath
	)
	// a segment following a Close starts at the closed subpath origin
	ensureStarted := func() {
		if !inPath {
			d.Start(toFixed(m, start))
			inPath = true
		}
	}
	for _, op := range path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			if inPath {
				d.Stop(false) // implicit end of the current subpath
			}
			d.Start(toFixed(m, svgscan.Point(op)))
			inPath = true
		case svgpath.LineTo:
			ensureStarted()
			d.Line(toFixed(m, svgscan.Point(op)))
		case svgpath.CubicTo:
			ensureStarted()
			d.CubeBezier(toFixed(m, op[0]), toFixed(m, op[1]), toFixed(m, op[2]))
		case svgpath.Close:
			if inPath {
				d.Stop(true)
				inPath = false
			}
			start = svgscan.Point(op)
		}
	}
	if inPath {
		d.Stop(false)
	}
}
