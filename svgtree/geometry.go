package svgtree

import (
	"math"

	"github.com/benoitkugler/svgtree/svgscan"
)

// The geometry of an element depends on the size of its ancestors,
// which is why it is computed on demand from the parent chain.

// parentSize returns the percentage reference of the children of `parent`.
// The document size is used for the root element.
func (d *Document) parentSize(parent Ref) (w, h float32) {
	if parent == 0 {
		return d.ViewportWidth, d.ViewportHeight
	}
	return d.Width(parent), d.Height(parent)
}

func (d *Document) parentBox(parent Ref) svgscan.Rect {
	if parent == 0 {
		return svgscan.Rect{W: d.ViewportWidth, H: d.ViewportHeight}
	}
	return d.BoundingBox(parent)
}

// Width returns the width of `ref`, as used by its children
// to resolve percentages.
func (d *Document) Width(ref Ref) float32 {
	e := d.Element(ref)
	if e == nil {
		return 0
	}
	pw, ph := d.parentSize(e.Header().Parent)
	switch e := e.(type) {
	case *Svg:
		if e.ViewBox.IsSet() {
			return e.ViewBox.W
		}
		return e.Width.Resolve(pw)
	case *Group, *Use:
		return pw
	case *Image:
		return e.Width.Resolve(pw)
	case *Rect:
		return e.Width.Resolve(pw)
	case *Circle:
		return e.R.Resolve((pw + ph) / 2)
	case *Ellipse:
		return e.Rx.Resolve(pw)
	case *Path:
		return e.Data.Bounds().W
	case *Marker:
		if e.ViewBox.IsSet() {
			return e.ViewBox.W
		}
		return e.MarkerWidth.Resolve(pw)
	case *Pattern:
		if e.ViewBox.IsSet() {
			return e.ViewBox.W
		}
		return e.Width.Resolve(pw)
	}
	return 0
}

// Height returns the height of `ref`, as used by its children
// to resolve percentages.
func (d *Document) Height(ref Ref) float32 {
	e := d.Element(ref)
	if e == nil {
		return 0
	}
	pw, ph := d.parentSize(e.Header().Parent)
	switch e := e.(type) {
	case *Svg:
		if e.ViewBox.IsSet() {
			return e.ViewBox.H
		}
		return e.Height.Resolve(ph)
	case *Group, *Use:
		return ph
	case *Image:
		return e.Height.Resolve(ph)
	case *Rect:
		return e.Height.Resolve(ph)
	case *Circle:
		return e.R.Resolve((pw + ph) / 2)
	case *Ellipse:
		return e.Ry.Resolve(ph)
	case *Path:
		return e.Data.Bounds().H
	case *Marker:
		if e.ViewBox.IsSet() {
			return e.ViewBox.H
		}
		return e.MarkerHeight.Resolve(ph)
	case *Pattern:
		if e.ViewBox.IsSet() {
			return e.ViewBox.H
		}
		return e.Height.Resolve(ph)
	}
	return 0
}

// BoundingBox returns the box of `ref` in its user space.
//
// For paths, only the end points of the segments are considered,
// and ellipses report their radii as size: see ObjectBoundingBox
// for the exact geometric box.
func (d *Document) BoundingBox(ref Ref) svgscan.Rect {
	e := d.Element(ref)
	if e == nil {
		return svgscan.Rect{}
	}
	parent := e.Header().Parent
	pw, ph := d.parentSize(parent)
	switch e := e.(type) {
	case *Svg:
		return svgscan.Rect{X: e.ViewBox.X, Y: e.ViewBox.Y, W: d.Width(ref), H: d.Height(ref)}
	case *Marker:
		return svgscan.Rect{X: e.ViewBox.X, Y: e.ViewBox.Y, W: d.Width(ref), H: d.Height(ref)}
	case *Pattern:
		return svgscan.Rect{X: e.ViewBox.X, Y: e.ViewBox.Y, W: d.Width(ref), H: d.Height(ref)}
	case *Group, *Use:
		return d.parentBox(parent)
	case *Image:
		return svgscan.Rect{X: e.X.Resolve(pw), Y: e.Y.Resolve(ph), W: e.Width.Resolve(pw), H: e.Height.Resolve(ph)}
	case *Rect:
		return svgscan.Rect{X: e.X.Resolve(pw), Y: e.Y.Resolve(ph), W: e.Width.Resolve(pw), H: e.Height.Resolve(ph)}
	case *Circle:
		cx, cy, r := e.Cx.Resolve(pw), e.Cy.Resolve(ph), e.R.Resolve((pw+ph)/2)
		return svgscan.Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}
	case *Ellipse:
		cx, cy, rx, ry := e.Cx.Resolve(pw), e.Cy.Resolve(ph), e.Rx.Resolve(pw), e.Ry.Resolve(ph)
		return svgscan.Rect{X: cx - rx, Y: cy - ry, W: rx, H: ry}
	case *Path:
		return e.Data.Bounds()
	}
	return svgscan.Rect{}
}

// ObjectBoundingBox returns the box used by paint servers with
// objectBoundingBox units: the exact extent of curves is used,
// and ellipses span their diameters.
func (d *Document) ObjectBoundingBox(ref Ref) svgscan.Rect {
	switch e := d.Element(ref).(type) {
	case *Path:
		return e.Data.ExactBounds()
	case *Ellipse:
		box := d.BoundingBox(ref)
		box.W, box.H = 2*box.W, 2*box.H
		return box
	case *Use:
		if e.Payload != 0 {
			return d.ObjectBoundingBox(e.Payload)
		}
	}
	return d.BoundingBox(ref)
}

// ViewportTransform returns the matrix mapping the viewBox of
// an <svg> element to its viewport, placed at (x, y).
func (d *Document) ViewportTransform(ref Ref) svgscan.Matrix {
	svg, ok := d.Element(ref).(*Svg)
	if !ok {
		return svgscan.Identity
	}
	pw, ph := d.parentSize(svg.Parent)
	w, h := svg.Width.Resolve(pw), svg.Height.Resolve(ph)
	m := svg.AspectRatio.ViewBoxTransform(w, h, d.BoundingBox(ref))
	return m.PostTranslate(float64(svg.X.Resolve(pw)), float64(svg.Y.Resolve(ph)))
}

// LocalTransform returns the matrix mapping the user space of
// `ref` into the user space of its parent.
// For <svg> it includes the viewport transform, and for <use>
// the (x, y) translation.
func (d *Document) LocalTransform(ref Ref) svgscan.Matrix {
	e := d.Element(ref)
	switch e := e.(type) {
	case *Svg:
		return e.Transform.Mult(d.ViewportTransform(ref))
	case *Use:
		pw, ph := d.parentSize(e.Parent)
		return e.Transform.Translate(float64(e.X.Resolve(pw)), float64(e.Y.Resolve(ph)))
	}
	if m, ok := AsTransformable(e); ok {
		return *m
	}
	return svgscan.Identity
}

// UseOffset returns the translation by the (x, y) attributes
// of the <use> element `ref`, applied to its payload when rendering.
func (d *Document) UseOffset(ref Ref) svgscan.Matrix {
	e, ok := d.Element(ref).(*Use)
	if !ok {
		return svgscan.Identity
	}
	pw, ph := d.parentSize(e.Parent)
	return svgscan.Identity.Translate(float64(e.X.Resolve(pw)), float64(e.Y.Resolve(ph)))
}

// RectRadii returns the corner radii of a <rect>. A missing radius
// copies the other one, and each radius is clamped to half the
// corresponding side.
func (d *Document) RectRadii(ref Ref) (rx, ry float32) {
	r, ok := d.Element(ref).(*Rect)
	if !ok {
		return 0, 0
	}
	pw, ph := d.parentSize(r.Parent)
	return rectRadii(r, pw, ph)
}

func rectRadii(r *Rect, pw, ph float32) (rx, ry float32) {
	rxL, ryL := r.Rx, r.Ry
	if rxL.Value == 0 {
		rxL = ryL
	} else if ryL.Value == 0 {
		ryL = rxL
	}
	rx, ry = rxL.Resolve(pw), ryL.Resolve(ph)
	if w := r.Width.Resolve(pw); rx > w/2 {
		rx = w / 2
	}
	if h := r.Height.Resolve(ph); ry > h/2 {
		ry = h / 2
	}
	return max(rx, 0), max(ry, 0)
}

// StrokeWidth returns the computed stroke width of `ref`.
// Percentages refer to the mean of the parent width and height.
func (d *Document) StrokeWidth(ref Ref) float32 {
	style := d.ComputedStyle(ref)
	pw, ph := d.parentSize(d.Parent(ref))
	return style.StrokeWidth.Resolve((pw + ph) / 2)
}

// DashArray returns the computed dash array and offset of `ref`,
// or nil if the stroke is solid.
// Percentages refer to the parent width.
func (d *Document) DashArray(ref Ref) ([]float32, float32) {
	style := d.ComputedStyle(ref)
	pw, _ := d.parentSize(d.Parent(ref))
	if len(style.StrokeDashArray) == 0 {
		return nil, 0
	}
	out := make([]float32, len(style.StrokeDashArray))
	var total float32
	for i, l := range style.StrokeDashArray {
		out[i] = l.Resolve(pw)
		if out[i] < 0 {
			// negative values disable dashing
			return nil, 0
		}
		total += out[i]
	}
	if total == 0 {
		return nil, 0
	}
	return out, style.StrokeDashOffset.Resolve(pw)
}

// Angle returns the rotation of the marker, in radians, given the
// direction of the path at the vertex. `start` must be true for
// the first vertex of the path.
func (m *Marker) Angle(direction float64, start bool) float64 {
	switch m.Orient.Kind {
	case OrientAuto:
		return direction
	case OrientAutoStartReverse:
		if start {
			return direction + math.Pi
		}
		return direction
	default:
		return m.Orient.Angle
	}
}

// MarkerTransform returns the matrix mapping the content of a marker
// to the user space of the marked shape, for a vertex at `at`.
// `angle` is the rotation returned by Marker.Angle.
func (d *Document) MarkerTransform(ref Ref, at svgscan.Point, angle float64, strokeWidth float32) svgscan.Matrix {
	m, ok := d.Element(ref).(*Marker)
	if !ok {
		return svgscan.Identity
	}
	pw, ph := d.parentSize(m.Parent)
	w, h := m.MarkerWidth.Resolve(pw), m.MarkerHeight.Resolve(ph)
	vb := m.AspectRatio.ViewBoxTransform(w, h, d.BoundingBox(ref))
	// the reference point is expressed in the viewBox coordinates
	refX, refY := vb.Transform(float64(m.RefX.Resolve(pw)), float64(m.RefY.Resolve(ph)))

	out := svgscan.Identity.Translate(float64(at.X), float64(at.Y)).Rotate(angle)
	if m.Units == MarkerStrokeWidth {
		out = out.Scale(float64(strokeWidth), float64(strokeWidth))
	}
	return out.Translate(-refX, -refY).Mult(vb)
}

// ImageTransform returns the matrix placing an image of intrinsic size
// `imgWidth` x `imgHeight` into the viewport of an <image> element.
func (d *Document) ImageTransform(ref Ref, imgWidth, imgHeight float32) svgscan.Matrix {
	img, ok := d.Element(ref).(*Image)
	if !ok {
		return svgscan.Identity
	}
	box := d.BoundingBox(ref)
	if box.W == 0 && box.H == 0 {
		// auto sizing
		box.W, box.H = imgWidth, imgHeight
	}
	m := img.AspectRatio.ViewBoxTransform(box.W, box.H, svgscan.Rect{W: imgWidth, H: imgHeight})
	return m.PostTranslate(float64(box.X), float64(box.Y))
}

// serverCoord resolves a paint server coordinate against the
// reference box, along one axis.
func serverCoord(l svgscan.Length, units Units, origin, size float32) float32 {
	if units == ObjectBoundingBox {
		switch l.Unit {
		case svgscan.None, svgscan.Percentage:
			return origin + l.Value*size
		}
	}
	return l.Resolve(size) + origin
}

// serverLength is the same as serverCoord for a distance.
func serverLength(l svgscan.Length, units Units, size float32) float32 {
	return serverCoord(l, units, 0, size)
}

// referenceBox returns the box used by the server `owner` painting `caller`.
func (d *Document) referenceBox(units Units, owner, caller Ref) svgscan.Rect {
	if units == ObjectBoundingBox {
		return d.ObjectBoundingBox(caller)
	}
	box := d.parentBox(d.Parent(owner))
	// user space coordinates are not shifted
	box.X, box.Y = 0, 0
	return box
}

// LinearCoords are the resolved coordinates of a linear gradient.
type LinearCoords struct {
	X1, Y1, X2, Y2 float32
}

// RadialCoords are the resolved coordinates of a radial gradient.
type RadialCoords struct {
	Cx, Cy, R, Fx, Fy, Fr float32
}

// EffectiveRadius returns Fr when it is not zero, R otherwise.
func (r RadialCoords) EffectiveRadius() float32 {
	if r.Fr != 0 {
		return r.Fr
	}
	return r.R
}

// LinearGradientCoords resolves the coordinates of the gradient `ref`
// used to paint `caller`.
func (d *Document) LinearGradientCoords(ref, caller Ref) LinearCoords {
	g, ok := d.Element(ref).(*LinearGradient)
	if !ok {
		return LinearCoords{X2: 1}
	}
	box := d.referenceBox(g.Units, ref, caller)
	return LinearCoords{
		X1: serverCoord(g.X1, g.Units, box.X, box.W),
		Y1: serverCoord(g.Y1, g.Units, box.Y, box.H),
		X2: serverCoord(g.X2, g.Units, box.X, box.W),
		Y2: serverCoord(g.Y2, g.Units, box.Y, box.H),
	}
}

// RadialGradientCoords resolves the coordinates of the gradient `ref`
// used to paint `caller`. Radii refer to the mean of the box dimensions.
func (d *Document) RadialGradientCoords(ref, caller Ref) RadialCoords {
	g, ok := d.Element(ref).(*RadialGradient)
	if !ok {
		return RadialCoords{Cx: .5, Cy: .5, R: .5, Fx: .5, Fy: .5}
	}
	box := d.referenceBox(g.Units, ref, caller)
	diag := (box.W + box.H) / 2
	out := RadialCoords{
		Cx: serverCoord(g.Cx, g.Units, box.X, box.W),
		Cy: serverCoord(g.Cy, g.Units, box.Y, box.H),
		R:  serverLength(g.R, g.Units, diag),
		Fr: serverLength(g.Fr, g.Units, diag),
	}
	out.Fx, out.Fy = out.Cx, out.Cy
	if g.HasFx {
		out.Fx = serverCoord(g.Fx, g.Units, box.X, box.W)
	}
	if g.HasFy {
		out.Fy = serverCoord(g.Fy, g.Units, box.Y, box.H)
	}
	return out
}

// GradientStops returns the stops of the gradient `ref`, inherited
// through its 'href' attribute when it has none.
func (d *Document) GradientStops(ref Ref) []Stop {
	seen := map[Ref]bool{}
	for ref != 0 && !seen[ref] {
		seen[ref] = true
		g, ok := AsGradient(d.Element(ref))
		if !ok {
			return nil
		}
		if len(g.Stops) != 0 {
			return g.Stops
		}
		ref = g.Template
	}
	return nil
}

// PatternTile is the resolved geometry of a pattern.
type PatternTile struct {
	X, Y, Width, Height float32
	ViewBox             svgscan.Rect
	// Content maps the pattern content into the tile.
	Content svgscan.Matrix
}

// PatternTile resolves the tile of the pattern `ref` used to paint `caller`.
func (d *Document) PatternTile(ref, caller Ref) PatternTile {
	p, ok := d.Element(ref).(*Pattern)
	if !ok {
		return PatternTile{Content: svgscan.Identity}
	}
	box := d.referenceBox(p.Units, ref, caller)
	out := PatternTile{
		X:       serverCoord(p.X, p.Units, box.X, box.W),
		Y:       serverCoord(p.Y, p.Units, box.Y, box.H),
		Width:   serverLength(p.Width, p.Units, box.W),
		Height:  serverLength(p.Height, p.Units, box.H),
		ViewBox: p.ViewBox,
		Content: svgscan.Identity,
	}
	switch {
	case p.ViewBox.IsSet():
		out.Content = p.AspectRatio.ViewBoxTransform(out.Width, out.Height, p.ViewBox)
	case p.ContentUnits == ObjectBoundingBox:
		objBox := d.ObjectBoundingBox(caller)
		out.Content = svgscan.Identity.Scale(float64(objBox.W), float64(objBox.H))
	}
	return out
}
