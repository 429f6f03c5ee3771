package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgtree"
)

// Pattern is the paint of a path: either PlainColor or Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is an opaque color. Transparency is
// carried by the opacity argument of Drawer.SetColor.
type PlainColor color.RGBA

func (PlainColor) isPattern() {}

// RGBA implements color.Color.
func (c PlainColor) RGBA() (r, g, b, a uint32) { return color.RGBA(c).RGBA() }

// GradStop represents a stop of a gradient, with
// an opaque color.
type GradStop struct {
	StopColor color.RGBA
	Offset    float64
	Opacity   float64 // in [0, 1]
}

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// Gradient holds a description of an SVG 2.0 gradient.
// Its points are expressed in a gradient space mapped
// to the device by Matrix.
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Matrix    svgscan.Matrix
	Spread    SpreadMethod
}

func (Gradient) isPattern() {}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// opaque splits a color into its opaque version and its opacity
func opaque(c svgscan.Color) (color.RGBA, float64) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}, float64(c.A) / 0xFF
}

// resolvePaint returns the pattern painting `caller` with `p`, whose user space
// is mapped to the device by `ctm`. The returned opacity, in [0, 1], comes from
// the color alpha channel. A nil pattern means nothing should be painted.
func resolvePaint(doc *svgtree.Document, p svgtree.Paint, caller svgtree.Ref, ctm svgscan.Matrix) (Pattern, float64) {
	switch p.Kind {
	case svgtree.ColorPaint:
		c, alpha := opaque(p.Color)
		return PlainColor(c), alpha
	case svgtree.ServerPaint:
		return resolveServer(doc, p, caller, ctm)
	}
	return nil, 0
}

func resolveServer(doc *svgtree.Document, p svgtree.Paint, caller svgtree.Ref, ctm svgscan.Matrix) (Pattern, float64) {
	fallback := func() (Pattern, float64) {
		if p.HasFallback {
			return resolvePaint(doc, svgtree.Paint{Kind: svgtree.ColorPaint, Color: p.Color}, caller, ctm)
		}
		return nil, 0
	}

	server := doc.Element(p.Server)
	if leaf, ok := server.(*svgtree.ColorLeaf); ok {
		c, alpha := opaque(leaf.Color)
		return PlainColor(c), alpha
	}
	g, ok := svgtree.AsGradient(server)
	if !ok {
		// patterns require an offscreen rendering
		tracer().Debugf("unsupported paint server %s", server.Kind())
		return fallback()
	}

	stops := doc.GradientStops(p.Server)
	switch len(stops) {
	case 0:
		return nil, 0
	case 1:
		c, alpha := opaque(stops[0].Color)
		return PlainColor(c), alpha
	}

	var matrix svgscan.Matrix
	if g.Units == svgtree.ObjectBoundingBox {
		box := doc.ObjectBoundingBox(caller)
		if box.W == 0 || box.H == 0 {
			return fallback()
		}
		// the gradient transform applies in the bounding box space
		toBox := svgscan.Identity.Translate(float64(box.X), float64(box.Y)).Scale(float64(box.W), float64(box.H))
		fromBox, _ := toBox.Invert()
		matrix = toBox.Mult(gradientTransform(server)).Mult(fromBox)
	} else {
		matrix = gradientTransform(server)
	}

	out := Gradient{Matrix: ctm.Mult(matrix), Spread: SpreadMethod(g.Spread)}
	out.Stops = make([]GradStop, len(stops))
	for i, stop := range stops {
		c, alpha := opaque(stop.Color)
		out.Stops[i] = GradStop{StopColor: c, Offset: float64(stop.Offset), Opacity: alpha}
	}
	switch server.(type) {
	case *svgtree.LinearGradient:
		c := doc.LinearGradientCoords(p.Server, caller)
		out.Direction = Linear{float64(c.X1), float64(c.Y1), float64(c.X2), float64(c.Y2)}
	case *svgtree.RadialGradient:
		c := doc.RadialGradientCoords(p.Server, caller)
		out.Direction = Radial{
			float64(c.Cx), float64(c.Cy), float64(c.Fx), float64(c.Fy),
			float64(c.R), float64(c.Fr),
		}
	}
	return out, 1
}

func gradientTransform(server svgtree.Element) svgscan.Matrix {
	if m, ok := svgtree.AsTransformable(server); ok {
		return *m
	}
	return svgscan.Identity
}
