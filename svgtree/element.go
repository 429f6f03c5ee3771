package svgtree

import (
	"fmt"

	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
)

// Ref is a stable handle to an element of a Document.
// The zero value means "no element".
type Ref uint32

// Kind is the variant tag of an element.
type Kind uint8

const (
	KindSvg Kind = iota + 1
	KindGroup
	KindUse
	KindImage
	KindRect
	KindCircle
	KindEllipse
	KindPath
	KindMarker
	KindPattern
	KindLinearGradient
	KindRadialGradient
	KindColorLeaf
)

func (k Kind) String() string {
	switch k {
	case KindSvg:
		return "svg"
	case KindGroup:
		return "g"
	case KindUse:
		return "use"
	case KindImage:
		return "image"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindPath:
		return "path"
	case KindMarker:
		return "marker"
	case KindPattern:
		return "pattern"
	case KindLinearGradient:
		return "linearGradient"
	case KindRadialGradient:
		return "radialGradient"
	case KindColorLeaf:
		return "solidColor"
	default:
		return fmt.Sprintf("<kind %d>", uint8(k))
	}
}

// Node is the header shared by every element.
type Node struct {
	ID string
	// Self is the handle of the element in its Document.
	Self Ref
	// Parent is 0 for the root element only.
	// Elements of the defs table keep the element enclosing
	// the <defs> as parent.
	Parent Ref
}

// Element is one of the pointer types *Svg, *Group, *Use, *Image, *Rect,
// *Circle, *Ellipse, *Path, *Marker, *Pattern, *LinearGradient,
// *RadialGradient or *ColorLeaf.
type Element interface {
	Kind() Kind
	Header() *Node
}

func (n *Node) Header() *Node { return n }

// Svg is an <svg> element, either the root or a nested viewport.
type Svg struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Children  []Ref

	X, Y, Width, Height svgscan.Length
	// ViewBox is not set if its height is zero.
	ViewBox     svgscan.Rect
	AspectRatio svgscan.PreserveAspectRatio
}

type Group struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Children  []Ref
}

// Use is a <use> element. After resolution, Payload is the
// root of a private deep copy of the referenced element, or 0.
type Use struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	X, Y, Width, Height svgscan.Length
	Href                string

	Payload Ref
}

// Image is an <image> element. The bytes behind Href are
// not loaded: see Document.OpenResource.
type Image struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	X, Y, Width, Height svgscan.Length
	Href                string
	AspectRatio         svgscan.PreserveAspectRatio
}

type Rect struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	X, Y, Width, Height, Rx, Ry svgscan.Length
}

type Circle struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	Cx, Cy, R svgscan.Length
}

type Ellipse struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	Cx, Cy, Rx, Ry svgscan.Length
}

// Shape records the element a Path was built from.
type Shape uint8

const (
	ShapePath Shape = iota
	ShapeLine
	ShapePolyline
	ShapePolygon
	ShapeRect
	ShapeCircle
	ShapeEllipse
)

func (s Shape) String() string {
	switch s {
	case ShapePath:
		return "path"
	case ShapeLine:
		return "line"
	case ShapePolyline:
		return "polyline"
	case ShapePolygon:
		return "polygon"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeEllipse:
		return "ellipse"
	default:
		return fmt.Sprintf("<shape %d>", uint8(s))
	}
}

// Path is a <path>, <line>, <polyline> or <polygon> element, or
// a basic shape converted to a path.
type Path struct {
	Node
	Style     Style
	Transform svgscan.Matrix

	Shape      Shape
	Data       svgpath.Path
	PathLength float32
}

// OrientKind selects how a marker is rotated.
type OrientKind uint8

const (
	OrientAngle OrientKind = iota
	OrientAuto
	OrientAutoStartReverse
)

// Orient is the value of the 'orient' attribute of a marker.
type Orient struct {
	Kind  OrientKind
	Angle float64 // in radians, for OrientAngle
}

// Marker is a <marker> element, drawn at the vertices of the
// shapes referencing it.
type Marker struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Children  []Ref

	RefX, RefY                svgscan.Length
	MarkerWidth, MarkerHeight svgscan.Length
	Units                     MarkerUnits
	Orient                    Orient
	ViewBox                   svgscan.Rect
	AspectRatio               svgscan.PreserveAspectRatio
}

// Pattern is a <pattern> paint server. Transform stores
// the 'patternTransform' attribute.
type Pattern struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Children  []Ref

	X, Y, Width, Height svgscan.Length
	Units               Units
	ContentUnits        Units
	ViewBox             svgscan.Rect
	AspectRatio         svgscan.PreserveAspectRatio
}

// Stop is a gradient stop. 'stop-opacity' is merged into the alpha channel.
type Stop struct {
	Offset float32 // in [0, 1]
	Color  svgscan.Color
}

// Gradient groups the attributes shared by linear and radial gradients.
// Transform stores the 'gradientTransform' attribute.
type Gradient struct {
	Spread SpreadMethod
	Units  Units
	Stops  []Stop

	// Href names an other gradient providing the stops when Stops is empty.
	Href     string
	Template Ref
}

type LinearGradient struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Gradient

	X1, Y1, X2, Y2 svgscan.Length
}

// RadialGradient is a <radialGradient> element. When HasFx (HasFy) is false,
// the focal point uses the center coordinate.
type RadialGradient struct {
	Node
	Style     Style
	Transform svgscan.Matrix
	Gradient

	Cx, Cy, R, Fx, Fy, Fr svgscan.Length
	HasFx, HasFy          bool
}

// ColorLeaf is a <solidColor> paint server.
type ColorLeaf struct {
	Node
	Color svgscan.Color
}

func (*Svg) Kind() Kind            { return KindSvg }
func (*Group) Kind() Kind          { return KindGroup }
func (*Use) Kind() Kind            { return KindUse }
func (*Image) Kind() Kind          { return KindImage }
func (*Rect) Kind() Kind           { return KindRect }
func (*Circle) Kind() Kind         { return KindCircle }
func (*Ellipse) Kind() Kind        { return KindEllipse }
func (*Path) Kind() Kind           { return KindPath }
func (*Marker) Kind() Kind         { return KindMarker }
func (*Pattern) Kind() Kind        { return KindPattern }
func (*LinearGradient) Kind() Kind { return KindLinearGradient }
func (*RadialGradient) Kind() Kind { return KindRadialGradient }
func (*ColorLeaf) Kind() Kind      { return KindColorLeaf }

// default values of the element attributes

func newSvg() *Svg {
	return &Svg{
		Transform:   svgscan.Identity,
		Width:       svgscan.Percent(100),
		Height:      svgscan.Percent(100),
		AspectRatio: svgscan.DefaultAspectRatio,
	}
}

func newMarker() *Marker {
	return &Marker{
		Transform:    svgscan.Identity,
		MarkerWidth:  svgscan.Length{Value: 3},
		MarkerHeight: svgscan.Length{Value: 3},
		Units:        MarkerStrokeWidth,
		AspectRatio:  svgscan.DefaultAspectRatio,
	}
}

func newPattern() *Pattern {
	return &Pattern{
		Transform:    svgscan.Identity,
		Units:        ObjectBoundingBox,
		ContentUnits: UserSpaceOnUse,
		AspectRatio:  svgscan.DefaultAspectRatio,
	}
}

func newLinearGradient() *LinearGradient {
	return &LinearGradient{
		Transform: svgscan.Identity,
		X2:        svgscan.Percent(100),
	}
}

func newRadialGradient() *RadialGradient {
	return &RadialGradient{
		Transform: svgscan.Identity,
		Cx:        svgscan.Percent(50),
		Cy:        svgscan.Percent(50),
		R:         svgscan.Percent(50),
	}
}

// clone returns a deep copy of `e`, with the same header.
// Children and Payload references are copied as is.
func clone(e Element) Element {
	switch e := e.(type) {
	case *Svg:
		out := *e
		out.Style = e.Style.Clone()
		out.Children = append([]Ref(nil), e.Children...)
		return &out
	case *Group:
		out := *e
		out.Style = e.Style.Clone()
		out.Children = append([]Ref(nil), e.Children...)
		return &out
	case *Use:
		out := *e
		out.Style = e.Style.Clone()
		return &out
	case *Image:
		out := *e
		out.Style = e.Style.Clone()
		return &out
	case *Rect:
		out := *e
		out.Style = e.Style.Clone()
		return &out
	case *Circle:
		out := *e
		out.Style = e.Style.Clone()
		return &out
	case *Ellipse:
		out := *e
		out.Style = e.Style.Clone()
		return &out
	case *Path:
		out := *e
		out.Style = e.Style.Clone()
		out.Data.Operations = append([]svgpath.Operation(nil), e.Data.Operations...)
		return &out
	case *Marker:
		out := *e
		out.Style = e.Style.Clone()
		out.Children = append([]Ref(nil), e.Children...)
		return &out
	case *Pattern:
		out := *e
		out.Style = e.Style.Clone()
		out.Children = append([]Ref(nil), e.Children...)
		return &out
	case *LinearGradient:
		out := *e
		out.Style = e.Style.Clone()
		out.Stops = append([]Stop(nil), e.Stops...)
		return &out
	case *RadialGradient:
		out := *e
		out.Style = e.Style.Clone()
		out.Stops = append([]Stop(nil), e.Stops...)
		return &out
	case *ColorLeaf:
		out := *e
		return &out
	default:
		panic(fmt.Sprintf("unexpected element type %T", e))
	}
}
