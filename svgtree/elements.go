package svgtree

import (
	"strings"

	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgxml"
)

// elementFunc builds the element for a start tag. The returned
// element is not yet added to the document.
type elementFunc func(b *builder, attrs []svgxml.Attr) Element

var elementFuncs = map[string]elementFunc{
	"svg":            svgF,
	"g":              gF,
	"use":            useF,
	"image":          imageF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        ellipseF,
	"path":           pathF,
	"line":           lineF,
	"polyline":       polylineF,
	"polygon":        polygonF,
	"marker":         markerF,
	"pattern":        patternF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
	"solidColor":     solidColorF,
}

// elementFlags is the flag enabling each element
var elementFlags = map[string]Flags{
	"svg":            LoadSvg,
	"g":              LoadG,
	"use":            LoadUse,
	"image":          LoadImage,
	"rect":           LoadRect,
	"circle":         LoadCircle,
	"ellipse":        LoadEllipse,
	"path":           LoadPath,
	"line":           LoadLine,
	"polyline":       LoadPolyline,
	"polygon":        LoadPolygon,
	"marker":         LoadMarker,
	"pattern":        LoadPattern,
	"linearGradient": LoadLinearGradient,
	"radialGradient": LoadRadialGradient,
	"solidColor":     LoadSolidColor,
}

// styleDecls calls `fn` for each 'name:value' declaration of
// a 'style' attribute.
func styleDecls(style string, fn func(name, value string)) {
	for _, decl := range strings.Split(style, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		fn(name, v)
	}
}

// parseAttrs handles the id, the transform and the presentation
// attributes of `e`, and hands the other ones to `geometry`.
// The 'style' attribute is applied after all the others.
func (b *builder) parseAttrs(e Element, attrs []svgxml.Attr, geometry func(name, value string)) {
	style, _ := AsStylable(e)
	if b.opts.Flags&LoadStyle == 0 {
		style = nil
	}
	var (
		inline    string
		hasInline bool
	)
	for _, attr := range attrs {
		switch {
		case attr.Name == "id":
			e.Header().ID = attr.Value
		case attr.Name == "style":
			inline, hasInline = attr.Value, true
		case attr.Name == "transform" && !IsPaintServer(e):
			if m, ok := AsTransformable(e); ok {
				b.transform(attr.Name, attr.Value, m)
			}
		case style != nil && b.parsePresentation(style, attr.Name, attr.Value):
		case geometry != nil:
			geometry(attr.Name, attr.Value)
		}
	}
	if hasInline && style != nil {
		b.parseStyleAttribute(style, inline)
	}
}

// length reports whether `value` is valid, in which case it is stored in `dst`.
func (b *builder) length(name, value string, dst *svgscan.Length) bool {
	l, err := svgscan.ParseLength(value)
	if err != nil {
		b.warn(ExpectedLength, name, value, err)
		return false
	}
	*dst = l
	return true
}

func (b *builder) number(name, value string, dst *float32) {
	v, err := svgscan.ParseNumber(value)
	if err != nil {
		b.warn(ExpectedNumber, name, value, err)
		return
	}
	*dst = v
}

// transform resets `dst` to the identity on error
func (b *builder) transform(name, value string, dst *svgscan.Matrix) {
	m, err := svgscan.ParseTransform(value)
	if err != nil {
		b.warn(ExpectedNumber, name, value, err)
		m = svgscan.Identity
	}
	*dst = m
}

func (b *builder) viewBox(name, value string, dst *svgscan.Rect) {
	vb, err := svgscan.ParseViewBox(value)
	if err != nil {
		b.warn(ExpectedNumber, name, value, err)
		return
	}
	*dst = vb
}

func (b *builder) aspectRatio(name, value string, dst *svgscan.PreserveAspectRatio) {
	ar, err := svgscan.ParsePreserveAspectRatio(value)
	if err != nil {
		b.warn(UnrecognizedEnumeratedValue, name, value, err)
		return
	}
	*dst = ar
}

func enumValue[E ~uint8](b *builder, names []string, name, value string, dst *E) {
	v, ok := parseEnum[E](names, strings.TrimSpace(value))
	if !ok {
		b.warn(UnrecognizedEnumeratedValue, name, value, errKeyword)
		return
	}
	*dst = v
}

func svgF(b *builder, attrs []svgxml.Attr) Element {
	e := newSvg()
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x":
			b.length(name, value, &e.X)
		case "y":
			b.length(name, value, &e.Y)
		case "width":
			b.length(name, value, &e.Width)
		case "height":
			b.length(name, value, &e.Height)
		case "viewBox":
			b.viewBox(name, value, &e.ViewBox)
		case "preserveAspectRatio":
			b.aspectRatio(name, value, &e.AspectRatio)
		}
	})
	return e
}

func gF(b *builder, attrs []svgxml.Attr) Element {
	e := &Group{Transform: svgscan.Identity}
	b.parseAttrs(e, attrs, nil)
	return e
}

func useF(b *builder, attrs []svgxml.Attr) Element {
	e := &Use{Transform: svgscan.Identity}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x":
			b.length(name, value, &e.X)
		case "y":
			b.length(name, value, &e.Y)
		case "width":
			b.length(name, value, &e.Width)
		case "height":
			b.length(name, value, &e.Height)
		case "href":
			e.Href = value
		}
	})
	return e
}

func imageF(b *builder, attrs []svgxml.Attr) Element {
	e := &Image{Transform: svgscan.Identity, AspectRatio: svgscan.DefaultAspectRatio}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x":
			b.length(name, value, &e.X)
		case "y":
			b.length(name, value, &e.Y)
		case "width":
			b.length(name, value, &e.Width)
		case "height":
			b.length(name, value, &e.Height)
		case "href":
			e.Href = strings.TrimSpace(value)
		case "preserveAspectRatio":
			b.aspectRatio(name, value, &e.AspectRatio)
		}
	})
	if e.Href != "" {
		b.doc.Resources = append(b.doc.Resources, ExternalResource{Href: e.Href, Kind: ImageResource})
	}
	return e
}

// toPath wraps a converted shape, keeping its header, style and transform.
func (b *builder) toPath(shape Shape, node Node, style *Style, m svgscan.Matrix, data *svgpath.Path) *Path {
	out := &Path{Node: node, Style: *style, Transform: m, Shape: shape, Data: *data}
	b.moveIRI(style, &out.Style)
	return out
}

func rectF(b *builder, attrs []svgxml.Attr) Element {
	e := &Rect{Transform: svgscan.Identity}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x":
			b.length(name, value, &e.X)
		case "y":
			b.length(name, value, &e.Y)
		case "width":
			b.length(name, value, &e.Width)
		case "height":
			b.length(name, value, &e.Height)
		case "rx":
			b.length(name, value, &e.Rx)
		case "ry":
			b.length(name, value, &e.Ry)
		}
	})
	if b.opts.Flags&ConvertRectToPath == 0 {
		return e
	}
	pw, ph := b.doc.parentSize(b.parent)
	x, y := e.X.Resolve(pw), e.Y.Resolve(ph)
	w, h := e.Width.Resolve(pw), e.Height.Resolve(ph)
	data := new(svgpath.Path)
	if w > 0 && h > 0 {
		rx, ry := rectRadii(e, pw, ph)
		data = svgpath.Rect(x, y, w, h, rx, ry)
	}
	return b.toPath(ShapeRect, e.Node, &e.Style, e.Transform, data)
}

func circleF(b *builder, attrs []svgxml.Attr) Element {
	e := &Circle{Transform: svgscan.Identity}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "cx":
			b.length(name, value, &e.Cx)
		case "cy":
			b.length(name, value, &e.Cy)
		case "r":
			b.length(name, value, &e.R)
		}
	})
	if b.opts.Flags&ConvertCircleToPath == 0 {
		return e
	}
	pw, ph := b.doc.parentSize(b.parent)
	data := new(svgpath.Path)
	if r := e.R.Resolve((pw + ph) / 2); r > 0 {
		data = svgpath.Circle(e.Cx.Resolve(pw), e.Cy.Resolve(ph), r)
	}
	return b.toPath(ShapeCircle, e.Node, &e.Style, e.Transform, data)
}

func ellipseF(b *builder, attrs []svgxml.Attr) Element {
	e := &Ellipse{Transform: svgscan.Identity}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "cx":
			b.length(name, value, &e.Cx)
		case "cy":
			b.length(name, value, &e.Cy)
		case "rx":
			b.length(name, value, &e.Rx)
		case "ry":
			b.length(name, value, &e.Ry)
		}
	})
	if b.opts.Flags&ConvertEllipseToPath == 0 {
		return e
	}
	pw, ph := b.doc.parentSize(b.parent)
	data := new(svgpath.Path)
	if rx, ry := e.Rx.Resolve(pw), e.Ry.Resolve(ph); rx > 0 && ry > 0 {
		data = svgpath.Ellipse(e.Cx.Resolve(pw), e.Cy.Resolve(ph), rx, ry)
	}
	return b.toPath(ShapeEllipse, e.Node, &e.Style, e.Transform, data)
}

func pathF(b *builder, attrs []svgxml.Attr) Element {
	e := &Path{Transform: svgscan.Identity, Shape: ShapePath}
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "d":
			// the path read before an error is kept
			data, err := svgpath.ParseD(value)
			if err != nil {
				b.warn(ExpectedNumber, name, value, err)
			}
			e.Data = *data
		case "pathLength":
			b.number(name, value, &e.PathLength)
		}
	})
	return e
}

func lineF(b *builder, attrs []svgxml.Attr) Element {
	e := &Path{Transform: svgscan.Identity, Shape: ShapeLine}
	var x1, y1, x2, y2 svgscan.Length
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x1":
			b.length(name, value, &x1)
		case "y1":
			b.length(name, value, &y1)
		case "x2":
			b.length(name, value, &x2)
		case "y2":
			b.length(name, value, &y2)
		}
	})
	pw, ph := b.doc.parentSize(b.parent)
	e.Data = *svgpath.Line(x1.Resolve(pw), y1.Resolve(ph), x2.Resolve(pw), y2.Resolve(ph))
	return e
}

func pointsF(shape Shape, close bool) elementFunc {
	return func(b *builder, attrs []svgxml.Attr) Element {
		e := &Path{Transform: svgscan.Identity, Shape: shape}
		b.parseAttrs(e, attrs, func(name, value string) {
			if name != "points" {
				return
			}
			data, err := svgpath.ParsePoints(value, close)
			if err != nil {
				b.warn(ExpectedNumber, name, value, err)
			}
			e.Data = *data
		})
		return e
	}
}

var (
	polylineF = pointsF(ShapePolyline, false)
	polygonF  = pointsF(ShapePolygon, true)
)

func parseOrient(s string) (Orient, error) {
	switch strings.TrimSpace(s) {
	case "auto":
		return Orient{Kind: OrientAuto}, nil
	case "auto-start-reverse":
		return Orient{Kind: OrientAutoStartReverse}, nil
	}
	a, err := svgscan.ParseAngle(s)
	return Orient{Angle: a}, err
}

func markerF(b *builder, attrs []svgxml.Attr) Element {
	e := newMarker()
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "refX":
			b.length(name, value, &e.RefX)
		case "refY":
			b.length(name, value, &e.RefY)
		case "markerWidth":
			b.length(name, value, &e.MarkerWidth)
		case "markerHeight":
			b.length(name, value, &e.MarkerHeight)
		case "markerUnits":
			enumValue(b, markerUnitsNames, name, value, &e.Units)
		case "orient":
			o, err := parseOrient(value)
			if err != nil {
				b.warn(ExpectedNumber, name, value, err)
				return
			}
			e.Orient = o
		case "viewBox":
			b.viewBox(name, value, &e.ViewBox)
		case "preserveAspectRatio":
			b.aspectRatio(name, value, &e.AspectRatio)
		}
	})
	return e
}

func patternF(b *builder, attrs []svgxml.Attr) Element {
	e := newPattern()
	b.parseAttrs(e, attrs, func(name, value string) {
		switch name {
		case "x":
			b.length(name, value, &e.X)
		case "y":
			b.length(name, value, &e.Y)
		case "width":
			b.length(name, value, &e.Width)
		case "height":
			b.length(name, value, &e.Height)
		case "patternUnits":
			enumValue(b, unitsNames, name, value, &e.Units)
		case "patternContentUnits":
			enumValue(b, unitsNames, name, value, &e.ContentUnits)
		case "patternTransform":
			b.transform(name, value, &e.Transform)
		case "viewBox":
			b.viewBox(name, value, &e.ViewBox)
		case "preserveAspectRatio":
			b.aspectRatio(name, value, &e.AspectRatio)
		}
	})
	return e
}

// gradientAttr handles the attributes shared by gradients,
// returning false for the other ones.
func (b *builder) gradientAttr(g *Gradient, m *svgscan.Matrix, name, value string) bool {
	switch name {
	case "gradientUnits":
		enumValue(b, unitsNames, name, value, &g.Units)
	case "gradientTransform":
		b.transform(name, value, m)
	case "spreadMethod":
		enumValue(b, spreadMethodNames, name, value, &g.Spread)
	case "href":
		g.Href = value
		if id, ok := parseHref(value); ok {
			b.queueIRI(id, &g.Template, isGradient)
		}
	default:
		return false
	}
	return true
}

func linearGradientF(b *builder, attrs []svgxml.Attr) Element {
	e := newLinearGradient()
	b.parseAttrs(e, attrs, func(name, value string) {
		if b.gradientAttr(&e.Gradient, &e.Transform, name, value) {
			return
		}
		switch name {
		case "x1":
			b.length(name, value, &e.X1)
		case "y1":
			b.length(name, value, &e.Y1)
		case "x2":
			b.length(name, value, &e.X2)
		case "y2":
			b.length(name, value, &e.Y2)
		}
	})
	return e
}

func radialGradientF(b *builder, attrs []svgxml.Attr) Element {
	e := newRadialGradient()
	b.parseAttrs(e, attrs, func(name, value string) {
		if b.gradientAttr(&e.Gradient, &e.Transform, name, value) {
			return
		}
		switch name {
		case "cx":
			b.length(name, value, &e.Cx)
		case "cy":
			b.length(name, value, &e.Cy)
		case "r":
			b.length(name, value, &e.R)
		case "fx":
			if b.length(name, value, &e.Fx) {
				e.HasFx = true
			}
		case "fy":
			if b.length(name, value, &e.Fy) {
				e.HasFy = true
			}
		case "fr":
			b.length(name, value, &e.Fr)
		}
	})
	return e
}

// colorWithOpacity parses the color and opacity pairs of
// <stop> and <solidColor> elements. The opacity is merged
// into the alpha channel once every attribute is read.
type colorWithOpacity struct {
	color   svgscan.Color
	opacity float32
	seen    bool
}

func (c *colorWithOpacity) parse(b *builder, colorAttr, opacityAttr, name, value string) {
	switch name {
	case colorAttr:
		col, err := svgscan.ParseColor(value)
		if err != nil {
			b.warn(UnrecognizedEnumeratedValue, name, value, err)
			return
		}
		c.color, c.seen = col, true
	case opacityAttr:
		op, err := parseOpacity(value)
		if err != nil {
			b.warn(ExpectedNumber, name, value, err)
			return
		}
		c.opacity, c.seen = op, true
	}
}

func (c *colorWithOpacity) merged() svgscan.Color {
	out := c.color
	out.A = uint8(float32(out.A)*c.opacity/255 + 0.5)
	return out
}

func solidColorF(b *builder, attrs []svgxml.Attr) Element {
	e := &ColorLeaf{}
	c := colorWithOpacity{color: svgscan.Black, opacity: 255}
	for _, attr := range attrs {
		switch attr.Name {
		case "id":
			e.ID = attr.Value
		case "style":
			styleDecls(attr.Value, func(name, value string) {
				c.parse(b, "solid-color", "solid-opacity", name, value)
			})
		default:
			c.parse(b, "solid-color", "solid-opacity", attr.Name, attr.Value)
		}
	}
	e.Color = c.merged()
	return e
}

// parseStop returns false if no stop attribute is found.
func (b *builder) parseStop(attrs []svgxml.Attr) (Stop, bool) {
	var (
		out       Stop
		hasOffset bool
	)
	c := colorWithOpacity{color: svgscan.Black, opacity: 255}
	for _, attr := range attrs {
		switch attr.Name {
		case "offset":
			l, err := svgscan.ParseLength(attr.Value)
			if err != nil {
				b.warn(ExpectedNumber, attr.Name, attr.Value, err)
				continue
			}
			out.Offset, hasOffset = min(max(l.Value, 0), 1), true
		case "style":
			styleDecls(attr.Value, func(name, value string) {
				c.parse(b, "stop-color", "stop-opacity", name, value)
			})
		default:
			c.parse(b, "stop-color", "stop-opacity", attr.Name, attr.Value)
		}
	}
	if !hasOffset && !c.seen {
		return Stop{}, false
	}
	out.Color = c.merged()
	return out, true
}
