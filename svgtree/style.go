package svgtree

import (
	"github.com/benoitkugler/svgtree/svgscan"
)

// PaintKind is the kind of a fill or stroke.
type PaintKind uint8

const (
	// NoPaint disables filling or stroking.
	NoPaint PaintKind = iota
	// ColorPaint uses the plain Color.
	ColorPaint
	// ServerPaint references a paint server element:
	// a gradient, a pattern or a solidColor.
	ServerPaint
)

// Paint is the value of the 'fill' and 'stroke' properties.
type Paint struct {
	Kind  PaintKind
	Color svgscan.Color
	// Server is resolved after the whole document is parsed, and
	// stays 0 if the reference is unknown.
	Server Ref
	// HasFallback is true when a fallback color follows the reference,
	// as in 'url(#grad) red'. The fallback is then stored in Color.
	HasFallback bool
}

// Effective returns the paint to use once references are resolved:
// an unresolved server falls back to Color if available,
// or to NoPaint.
func (p Paint) Effective() Paint {
	if p.Kind == ServerPaint && p.Server == 0 {
		if p.HasFallback {
			return Paint{Kind: ColorPaint, Color: p.Color}
		}
		return Paint{}
	}
	return p
}

// Property identifies one property of a Style.
type Property uint64

const (
	PropFill Property = 1 << iota
	PropFillRule
	PropFillOpacity

	PropStroke
	PropStrokeOpacity
	PropStrokeWidth
	PropStrokeMiterLimit
	PropStrokeDashArray
	PropStrokeDashOffset
	PropStrokeLineCap
	PropStrokeLineJoin

	PropFontFamily
	PropFontSize
	PropFontSizeAdjust
	PropFontWeight
	PropFontStyle
	PropFontVariant
	PropFontStretch

	PropColorInterpolation
	PropColorInterpolationFilters
	PropColorRendering
	PropShapeRendering
	PropTextRendering
	PropImageRendering

	PropCursor
	PropDisplay
	PropVisibility
	PropOverflow
	PropOpacity

	PropMarkerStart
	PropMarkerMid
	PropMarkerEnd

	propEnd
)

// Style stores the presentation properties of an element.
// Each property is either unset, or explicitly set, as reported by IsSet;
// an unset field holds its zero value.
//
// Opacities are stored in the [0, 255] range.
type Style struct {
	set Property

	Fill        Paint
	FillRule    FillRule
	FillOpacity float32

	Stroke           Paint
	StrokeOpacity    float32
	StrokeWidth      svgscan.Length
	StrokeMiterLimit float32
	StrokeDashArray  []svgscan.Length
	StrokeDashOffset svgscan.Length
	StrokeLineCap    LineCap
	StrokeLineJoin   LineJoin

	FontFamily     []string
	FontSize       svgscan.Length
	FontSizeAdjust float32
	FontWeight     FontWeight
	FontStyle      FontStyle
	FontVariant    FontVariant
	FontStretch    FontStretch

	ColorInterpolation        ColorInterpolation
	ColorInterpolationFilters ColorInterpolation
	ColorRendering            ColorRendering
	ShapeRendering            ShapeRendering
	TextRendering             TextRendering
	ImageRendering            ImageRendering

	Cursor     Cursor
	Display    Display
	Visibility Visibility
	Overflow   Overflow
	Opacity    float32

	MarkerStart, MarkerMid, MarkerEnd Ref
}

// IsSet returns true if all the properties in `p` are explicitly set.
func (s *Style) IsSet(p Property) bool { return s.set&p == p }

// Set marks the properties `p` as explicitly set.
// The field values must be assigned by the caller.
func (s *Style) Set(p Property) { s.set |= p }

// Unset resets the properties `p` to their unset state.
func (s *Style) Unset(p Property) {
	s.set &^= p
	var zero Style
	for bit := Property(1); bit < propEnd; bit <<= 1 {
		if p&bit != 0 {
			copyProperty(s, &zero, bit)
		}
	}
}

// Clone returns a deep copy of the style.
func (s *Style) Clone() Style {
	out := *s
	out.StrokeDashArray = append([]svgscan.Length(nil), s.StrokeDashArray...)
	out.FontFamily = append([]string(nil), s.FontFamily...)
	return out
}

// nonInherited are the properties an element never takes
// from its ancestors. Opacity composes instead, see Document.EffectiveOpacity.
const nonInherited = PropOpacity

// Overlay fills the unset properties of `s` with the
// ones of `parent`. Explicit properties are never overwritten.
func (s *Style) Overlay(parent *Style) { s.overlay(parent, 0) }

// Inherit is like Overlay, but skips the properties which
// are not inherited from an ancestor, such as 'opacity'.
func (s *Style) Inherit(ancestor *Style) { s.overlay(ancestor, nonInherited) }

func (s *Style) overlay(parent *Style, skip Property) {
	missing := parent.set &^ s.set &^ skip
	if missing == 0 {
		return
	}
	for bit := Property(1); bit < propEnd; bit <<= 1 {
		if missing&bit != 0 {
			copyProperty(s, parent, bit)
		}
	}
	s.set |= missing
}

// copyProperty copies the field(s) for the property `p` (a single bit)
func copyProperty(dst, src *Style, p Property) {
	switch p {
	case PropFill:
		dst.Fill = src.Fill
	case PropFillRule:
		dst.FillRule = src.FillRule
	case PropFillOpacity:
		dst.FillOpacity = src.FillOpacity
	case PropStroke:
		dst.Stroke = src.Stroke
	case PropStrokeOpacity:
		dst.StrokeOpacity = src.StrokeOpacity
	case PropStrokeWidth:
		dst.StrokeWidth = src.StrokeWidth
	case PropStrokeMiterLimit:
		dst.StrokeMiterLimit = src.StrokeMiterLimit
	case PropStrokeDashArray:
		dst.StrokeDashArray = append([]svgscan.Length(nil), src.StrokeDashArray...)
	case PropStrokeDashOffset:
		dst.StrokeDashOffset = src.StrokeDashOffset
	case PropStrokeLineCap:
		dst.StrokeLineCap = src.StrokeLineCap
	case PropStrokeLineJoin:
		dst.StrokeLineJoin = src.StrokeLineJoin
	case PropFontFamily:
		dst.FontFamily = append([]string(nil), src.FontFamily...)
	case PropFontSize:
		dst.FontSize = src.FontSize
	case PropFontSizeAdjust:
		dst.FontSizeAdjust = src.FontSizeAdjust
	case PropFontWeight:
		dst.FontWeight = src.FontWeight
	case PropFontStyle:
		dst.FontStyle = src.FontStyle
	case PropFontVariant:
		dst.FontVariant = src.FontVariant
	case PropFontStretch:
		dst.FontStretch = src.FontStretch
	case PropColorInterpolation:
		dst.ColorInterpolation = src.ColorInterpolation
	case PropColorInterpolationFilters:
		dst.ColorInterpolationFilters = src.ColorInterpolationFilters
	case PropColorRendering:
		dst.ColorRendering = src.ColorRendering
	case PropShapeRendering:
		dst.ShapeRendering = src.ShapeRendering
	case PropTextRendering:
		dst.TextRendering = src.TextRendering
	case PropImageRendering:
		dst.ImageRendering = src.ImageRendering
	case PropCursor:
		dst.Cursor = src.Cursor
	case PropDisplay:
		dst.Display = src.Display
	case PropVisibility:
		dst.Visibility = src.Visibility
	case PropOverflow:
		dst.Overflow = src.Overflow
	case PropOpacity:
		dst.Opacity = src.Opacity
	case PropMarkerStart:
		dst.MarkerStart = src.MarkerStart
	case PropMarkerMid:
		dst.MarkerMid = src.MarkerMid
	case PropMarkerEnd:
		dst.MarkerEnd = src.MarkerEnd
	}
}

// ResolvedStyle is a Style where every property has a value.
type ResolvedStyle struct {
	Fill        Paint
	FillRule    FillRule
	FillOpacity float32

	Stroke           Paint
	StrokeOpacity    float32
	StrokeWidth      svgscan.Length
	StrokeMiterLimit float32
	StrokeDashArray  []svgscan.Length
	StrokeDashOffset svgscan.Length
	StrokeLineCap    LineCap
	StrokeLineJoin   LineJoin

	FontFamily     []string
	FontSize       svgscan.Length // Value is -1 if never set
	FontSizeAdjust float32
	FontWeight     FontWeight
	FontStyle      FontStyle
	FontVariant    FontVariant
	FontStretch    FontStretch

	ColorInterpolation        ColorInterpolation
	ColorInterpolationFilters ColorInterpolation
	ColorRendering            ColorRendering
	ShapeRendering            ShapeRendering
	TextRendering             TextRendering
	ImageRendering            ImageRendering

	Cursor     Cursor
	Display    Display
	Visibility Visibility
	Overflow   Overflow
	Opacity    float32

	MarkerStart, MarkerMid, MarkerEnd Ref
}

// defaultStyle holds the initial values, used for the unset properties.
var defaultStyle = Style{
	Fill:        Paint{Kind: ColorPaint, Color: svgscan.Black},
	FillRule:    NonZero,
	FillOpacity: 255,

	Stroke:           Paint{Kind: NoPaint},
	StrokeOpacity:    255,
	StrokeWidth:      svgscan.Length{Value: 1},
	StrokeMiterLimit: 4,
	StrokeLineCap:    ButtCap,
	StrokeLineJoin:   MiterJoin,

	FontSize:    svgscan.Length{Value: -1},
	FontWeight:  FontWeightNormal,
	FontStyle:   FontStyleNormal,
	FontVariant: FontVariantNormal,
	FontStretch: FontStretchNormal,

	ColorInterpolation:        ColorInterpolationSRGB,
	ColorInterpolationFilters: ColorInterpolationLinearRGB,

	Cursor:     CursorAuto,
	Display:    DisplayInline,
	Visibility: Visible,
	Overflow:   OverflowVisible,
	Opacity:    255,

	set: propEnd - 1,
}

// Resolve applies the default values to the unset properties.
// The returned style does not share memory with `s`.
func (s *Style) Resolve() ResolvedStyle {
	full := s.Clone()
	full.Overlay(&defaultStyle)
	return ResolvedStyle{
		Fill:        full.Fill.Effective(),
		FillRule:    full.FillRule,
		FillOpacity: full.FillOpacity,

		Stroke:           full.Stroke.Effective(),
		StrokeOpacity:    full.StrokeOpacity,
		StrokeWidth:      full.StrokeWidth,
		StrokeMiterLimit: full.StrokeMiterLimit,
		StrokeDashArray:  full.StrokeDashArray,
		StrokeDashOffset: full.StrokeDashOffset,
		StrokeLineCap:    full.StrokeLineCap,
		StrokeLineJoin:   full.StrokeLineJoin,

		FontFamily:     full.FontFamily,
		FontSize:       full.FontSize,
		FontSizeAdjust: full.FontSizeAdjust,
		FontWeight:     full.FontWeight,
		FontStyle:      full.FontStyle,
		FontVariant:    full.FontVariant,
		FontStretch:    full.FontStretch,

		ColorInterpolation:        full.ColorInterpolation,
		ColorInterpolationFilters: full.ColorInterpolationFilters,
		ColorRendering:            full.ColorRendering,
		ShapeRendering:            full.ShapeRendering,
		TextRendering:             full.TextRendering,
		ImageRendering:            full.ImageRendering,

		Cursor:     full.Cursor,
		Display:    full.Display,
		Visibility: full.Visibility,
		Overflow:   full.Overflow,
		Opacity:    full.Opacity,

		MarkerStart: full.MarkerStart,
		MarkerMid:   full.MarkerMid,
		MarkerEnd:   full.MarkerEnd,
	}
}
