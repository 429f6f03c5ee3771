package svgtree

import "github.com/benoitkugler/svgtree/svgscan"

// AsStylable returns the style of `e`, or false
// if the element does not support styling.
func AsStylable(e Element) (*Style, bool) {
	switch e := e.(type) {
	case *Svg:
		return &e.Style, true
	case *Group:
		return &e.Style, true
	case *Use:
		return &e.Style, true
	case *Image:
		return &e.Style, true
	case *Rect:
		return &e.Style, true
	case *Circle:
		return &e.Style, true
	case *Ellipse:
		return &e.Style, true
	case *Path:
		return &e.Style, true
	case *Marker:
		return &e.Style, true
	case *Pattern:
		return &e.Style, true
	case *LinearGradient:
		return &e.Style, true
	case *RadialGradient:
		return &e.Style, true
	default:
		return nil, false
	}
}

// AsTransformable returns the transform attribute of `e`, or false
// if the element has none.
func AsTransformable(e Element) (*svgscan.Matrix, bool) {
	switch e := e.(type) {
	case *Svg:
		return &e.Transform, true
	case *Group:
		return &e.Transform, true
	case *Use:
		return &e.Transform, true
	case *Image:
		return &e.Transform, true
	case *Rect:
		return &e.Transform, true
	case *Circle:
		return &e.Transform, true
	case *Ellipse:
		return &e.Transform, true
	case *Path:
		return &e.Transform, true
	case *Marker:
		return &e.Transform, true
	case *Pattern:
		return &e.Transform, true
	case *LinearGradient:
		return &e.Transform, true
	case *RadialGradient:
		return &e.Transform, true
	default:
		return nil, false
	}
}

// AsContainer returns the children list of `e`, or false if
// `e` can't have children.
func AsContainer(e Element) (*[]Ref, bool) {
	switch e := e.(type) {
	case *Svg:
		return &e.Children, true
	case *Group:
		return &e.Children, true
	case *Marker:
		return &e.Children, true
	case *Pattern:
		return &e.Children, true
	default:
		return nil, false
	}
}

// AsGradient returns the attributes shared by gradients.
func AsGradient(e Element) (*Gradient, bool) {
	switch e := e.(type) {
	case *LinearGradient:
		return &e.Gradient, true
	case *RadialGradient:
		return &e.Gradient, true
	default:
		return nil, false
	}
}

// IsPaintServer returns true for the elements only rendered
// through a paint reference.
func IsPaintServer(e Element) bool {
	switch e.(type) {
	case *LinearGradient, *RadialGradient, *Pattern, *ColorLeaf:
		return true
	}
	return false
}

func isContainer(e Element) bool {
	_, ok := AsContainer(e)
	return ok
}

func isGradient(e Element) bool {
	_, ok := AsGradient(e)
	return ok
}

func isMarker(e Element) bool {
	_, ok := e.(*Marker)
	return ok
}
