// Package svgdraw walks a resolved document and sends its
// shapes to a painting driver, such as the rasterizer of svgraster.
// Transforms, paints, opacities and stroke options are resolved here,
// so that drivers do not need any SVG knowledge.
package svgdraw

import (
	"image"
	_ "image/jpeg" // decoders for <image> elements
	_ "image/png"
	"math"

	"github.com/npillmayer/schuko/tracing"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgtree"
)

// tracer traces with key 'svgtree.draw'.
func tracer() tracing.Trace {
	return tracing.Select("svgtree.draw")
}

// Options parametrizes Draw.
type Options struct {
	// Transform maps the user space of the root element (that is,
	// after its viewport transform) to the device.
	// The zero value is replaced by the identity.
	Transform svgscan.Matrix
	// Opacity is applied to every element, in [0, 1].
	// The zero value is replaced by 1.
	Opacity float64
}

type drawer struct {
	doc     *svgtree.Document
	driver  Driver
	opacity float64
	// markers being drawn, to break reference loops
	markers map[svgtree.Ref]bool
}

// Draw renders the document into the driver `d`.
// Elements with 'display: none' are skipped with their subtree, and
// hidden elements are not painted. Group opacities are multiplied into
// the paint opacities of the shapes.
func Draw(doc *svgtree.Document, d Driver, opts Options) {
	if opts.Transform == (svgscan.Matrix{}) {
		opts.Transform = svgscan.Identity
	}
	if opts.Opacity == 0 {
		opts.Opacity = 1
	}
	dr := drawer{doc: doc, driver: d, opacity: opts.Opacity, markers: make(map[svgtree.Ref]bool)}
	dr.draw(doc.Root, opts.Transform)
}

// Size returns the size of the root viewport, in pixels.
// When the root size can't be resolved, the viewBox size is used.
func Size(doc *svgtree.Document) (w, h float32) {
	svg, ok := doc.Element(doc.Root).(*svgtree.Svg)
	if !ok {
		return 0, 0
	}
	w, h = svg.Width.Resolve(doc.ViewportWidth), svg.Height.Resolve(doc.ViewportHeight)
	if w <= 0 {
		w = svg.ViewBox.W
	}
	if h <= 0 {
		h = svg.ViewBox.H
	}
	return w, h
}

// draw renders `ref`, whose parent user space is mapped to the device by `ctm`.
func (dr *drawer) draw(ref svgtree.Ref, ctm svgscan.Matrix) {
	doc := dr.doc
	e := doc.Element(ref)
	if e == nil {
		return
	}
	style := doc.ComputedStyle(ref)
	if style.Display == svgtree.DisplayNone {
		return
	}
	switch e := e.(type) {
	case *svgtree.Svg, *svgtree.Group:
		ctm = ctm.Mult(doc.LocalTransform(ref))
		for _, child := range doc.Children(ref) {
			dr.draw(child, ctm)
		}
	case *svgtree.Use:
		// the payload carries the transform of the use, but not its position
		dr.draw(e.Payload, ctm.Mult(dr.doc.UseOffset(ref)))
	case *svgtree.Image:
		if style.Visibility == svgtree.Visible {
			dr.drawImage(ref, e, ctm.Mult(e.Transform))
		}
	case *svgtree.Rect, *svgtree.Circle, *svgtree.Ellipse, *svgtree.Path:
		ctm = ctm.Mult(doc.LocalTransform(ref))
		ops := dr.outline(ref)
		if style.Visibility == svgtree.Visible {
			dr.drawPath(ref, style, ops, ctm)
		}
		dr.drawMarkersOnce(ref, style, ops, ctm)
	default:
		// markers and paint servers are only drawn through references
	}
}

// outline returns the path operations of a shape, in its user space.
func (dr *drawer) outline(ref svgtree.Ref) []svgpath.Operation {
	doc := dr.doc
	box := doc.BoundingBox(ref)
	switch e := doc.Element(ref).(type) {
	case *svgtree.Path:
		switch e.Shape {
		case svgtree.ShapeRect, svgtree.ShapeCircle, svgtree.ShapeEllipse:
			return closed(e.Data.Operations)
		}
		return e.Data.Operations
	case *svgtree.Rect:
		if box.W <= 0 || box.H <= 0 {
			return nil
		}
		rx, ry := doc.RectRadii(ref)
		return closed(svgpath.Rect(box.X, box.Y, box.W, box.H, rx, ry).Operations)
	case *svgtree.Circle:
		r := box.W / 2
		if r <= 0 {
			return nil
		}
		return closed(svgpath.Circle(box.X+r, box.Y+r, r).Operations)
	case *svgtree.Ellipse:
		// the box size holds the radii
		if box.W <= 0 || box.H <= 0 {
			return nil
		}
		return closed(svgpath.Ellipse(box.X+box.W, box.Y+box.H, box.W, box.H).Operations)
	}
	return nil
}

// closed terminates the single subpath of a basic shape, so
// that its stroke has joins instead of caps at the start point.
func closed(ops []svgpath.Operation) []svgpath.Operation {
	if len(ops) == 0 {
		return ops
	}
	if _, ok := ops[len(ops)-1].(svgpath.Close); ok {
		return ops
	}
	start, ok := ops[0].(svgpath.MoveTo)
	if !ok {
		return ops
	}
	out := make([]svgpath.Operation, len(ops), len(ops)+1)
	copy(out, ops)
	return append(out, svgpath.Close(start))
}

// scaleFactor returns the mean scaling of `m`, used for
// stroke widths and dashes
func scaleFactor(m svgscan.Matrix) float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

func (dr *drawer) drawPath(ref svgtree.Ref, style svgtree.ResolvedStyle, ops []svgpath.Operation, ctm svgscan.Matrix) {
	if len(ops) == 0 {
		return
	}
	opacity := dr.opacity * float64(dr.doc.EffectiveOpacity(ref)) / 255

	fill, fillAlpha := resolvePaint(dr.doc, style.Fill, ref, ctm)
	stroke, strokeAlpha := resolvePaint(dr.doc, style.Stroke, ref, ctm)
	strokeWidth := float64(dr.doc.StrokeWidth(ref)) * scaleFactor(ctm)
	if strokeWidth <= 0 {
		stroke = nil
	}

	filler, stroker := dr.driver.SetupDrawers(fill != nil, stroke != nil)
	if fill != nil && filler != nil {
		filler.Clear()
		filler.SetWinding(style.FillRule == svgtree.NonZero)
		drawTo(filler, ops, ctm)
		filler.SetColor(fill, fillAlpha*float64(style.FillOpacity)/255*opacity)
		filler.Draw()
	}

	if stroke != nil && stroker != nil {
		stroker.Clear()
		stroker.SetStrokeOptions(dr.strokeOptions(ref, style, strokeWidth, scaleFactor(ctm)))
		drawTo(stroker, ops, ctm)
		stroker.SetColor(stroke, strokeAlpha*float64(style.StrokeOpacity)/255*opacity)
		stroker.Draw()
	}
}

var (
	joinModes = [...]JoinMode{
		svgtree.MiterJoin:     Miter,
		svgtree.MiterClipJoin: MiterClip,
		svgtree.RoundJoin:     Round,
		svgtree.BevelJoin:     Bevel,
		svgtree.ArcsJoin:      Arc,
	}
	capModes = [...]CapMode{
		svgtree.ButtCap:   ButtCap,
		svgtree.RoundCap:  RoundCap,
		svgtree.SquareCap: SquareCap,
	}
)

func (dr *drawer) strokeOptions(ref svgtree.Ref, style svgtree.ResolvedStyle, width, scale float64) StrokeOptions {
	out := StrokeOptions{
		LineWidth:  fToFixed(width),
		MiterLimit: fToFixed(float64(style.StrokeMiterLimit)),
	}
	if int(style.StrokeLineJoin) < len(joinModes) {
		out.LineJoin = joinModes[style.StrokeLineJoin]
	}
	if int(style.StrokeLineCap) < len(capModes) {
		out.LineCap = capModes[style.StrokeLineCap]
	}
	dashes, offset := dr.doc.DashArray(ref)
	if len(dashes) != 0 {
		out.Dash.Dash = make([]float64, len(dashes))
		for i, d := range dashes {
			out.Dash.Dash[i] = float64(d) * scale
		}
		out.Dash.DashOffset = float64(offset) * scale
	}
	return out
}

// drawMarkersOnce guards against markers drawing themselves
func (dr *drawer) drawMarkersOnce(ref svgtree.Ref, style svgtree.ResolvedStyle, ops []svgpath.Operation, ctm svgscan.Matrix) {
	for _, m := range [3]svgtree.Ref{style.MarkerStart, style.MarkerMid, style.MarkerEnd} {
		if dr.markers[m] {
			tracer().Debugf("recursive marker reference")
			return
		}
	}
	active := [3]svgtree.Ref{style.MarkerStart, style.MarkerMid, style.MarkerEnd}
	for _, m := range active {
		if m != 0 {
			dr.markers[m] = true
		}
	}
	dr.drawMarkers(ref, style, ops, ctm)
	for _, m := range active {
		delete(dr.markers, m)
	}
}

func (dr *drawer) drawImage(ref svgtree.Ref, e *svgtree.Image, ctm svgscan.Matrix) {
	imgDrawer, ok := dr.driver.(ImageDrawer)
	if !ok || e.Href == "" {
		return
	}
	r, err := dr.doc.OpenResource(e.Href)
	if err != nil {
		tracer().Infof("can't open image %.32s: %s", e.Href, err)
		return
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		tracer().Infof("can't decode image %.32s: %s", e.Href, err)
		return
	}
	size := img.Bounds().Size()
	m := dr.doc.ImageTransform(ref, float32(size.X), float32(size.Y))
	// pixel space starts at the image bounds origin
	min := img.Bounds().Min
	m = m.Translate(-float64(min.X), -float64(min.Y))
	opacity := dr.opacity * float64(dr.doc.EffectiveOpacity(ref)) / 255
	imgDrawer.DrawImage(img, ctm.Mult(m), opacity)
}
