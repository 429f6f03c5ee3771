package svgtree

import (
	"fmt"
	"strings"
)

// keywords tables, indexed by the enum values

var (
	fillRuleNames    = []string{"nonzero", "evenodd"}
	lineCapNames     = []string{"butt", "round", "square"}
	lineJoinNames    = []string{"miter", "miter-clip", "round", "bevel", "arcs"}
	fontStyleNames   = []string{"normal", "italic", "oblique"}
	fontVariantNames = []string{"normal", "small-caps"}
	fontStretchNames = []string{
		"normal", "wider", "narrower", "ultra-condensed", "extra-condensed", "condensed",
		"semi-condensed", "semi-expanded", "expanded", "extra-expanded", "ultra-expanded",
	}
	fontWeightNames = []string{
		"normal", "bold", "bolder", "lighter",
		"100", "200", "300", "400", "500", "600", "700", "800", "900",
	}
	cursorNames = []string{
		"auto", "crosshair", "default", "pointer", "move", "e-resize", "nw-resize",
		"n-resize", "se-resize", "sw-resize", "s-resize", "w-resize", "text", "wait", "help",
	}
	displayNames = []string{
		"inline", "block", "list-item", "run-in", "compact", "marker", "table", "inline-table",
		"table-row-group", "table-header-group", "table-footer-group", "table-row",
		"table-column-group", "table-column", "table-cell", "table-caption", "none",
	}
	visibilityNames         = []string{"visible", "hidden", "collapse"}
	overflowNames           = []string{"visible", "hidden", "scroll", "auto"}
	colorInterpolationNames = []string{"auto", "sRGB", "linearRGB"}
	colorRenderingNames     = []string{"auto", "optimizeSpeed", "optimizeQuality"}
	shapeRenderingNames     = []string{"auto", "optimizeSpeed", "crispEdges", "geometricPrecision"}
	textRenderingNames      = []string{"auto", "optimizeSpeed", "optimizeLegibility", "geometricPrecision"}
	imageRenderingNames     = []string{"auto", "optimizeSpeed", "optimizeQuality"}
	spreadMethodNames       = []string{"pad", "reflect", "repeat"}
	unitsNames              = []string{"objectBoundingBox", "userSpaceOnUse"}
	markerUnitsNames        = []string{"strokeWidth", "userSpaceOnUse"}
)

// parseEnum matches `s` against `names`, ignoring ASCII case.
func parseEnum[E ~uint8](names []string, s string) (E, bool) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return E(i), true
		}
	}
	return 0, false
}

func enumString(names []string, v uint8, kind string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("<%s %d>", kind, v)
}

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (v FillRule) String() string { return enumString(fillRuleNames, uint8(v), "FillRule") }

type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

func (v LineCap) String() string { return enumString(lineCapNames, uint8(v), "LineCap") }

type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	MiterClipJoin
	RoundJoin
	BevelJoin
	ArcsJoin
)

func (v LineJoin) String() string { return enumString(lineJoinNames, uint8(v), "LineJoin") }

type FontStyle uint8

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

func (v FontStyle) String() string { return enumString(fontStyleNames, uint8(v), "FontStyle") }

type FontVariant uint8

const (
	FontVariantNormal FontVariant = iota
	FontVariantSmallCaps
)

func (v FontVariant) String() string { return enumString(fontVariantNames, uint8(v), "FontVariant") }

type FontStretch uint8

const (
	FontStretchNormal FontStretch = iota
	FontStretchWider
	FontStretchNarrower
	FontStretchUltraCondensed
	FontStretchExtraCondensed
	FontStretchCondensed
	FontStretchSemiCondensed
	FontStretchSemiExpanded
	FontStretchExpanded
	FontStretchExtraExpanded
	FontStretchUltraExpanded
)

func (v FontStretch) String() string { return enumString(fontStretchNames, uint8(v), "FontStretch") }

type FontWeight uint8

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
	FontWeightBolder
	FontWeightLighter
	FontWeight100
	FontWeight200
	FontWeight300
	FontWeight400
	FontWeight500
	FontWeight600
	FontWeight700
	FontWeight800
	FontWeight900
)

func (v FontWeight) String() string { return enumString(fontWeightNames, uint8(v), "FontWeight") }

type Cursor uint8

const (
	CursorAuto Cursor = iota
	CursorCrosshair
	CursorDefault
	CursorPointer
	CursorMove
	CursorEResize
	CursorNWResize
	CursorNResize
	CursorSEResize
	CursorSWResize
	CursorSResize
	CursorWResize
	CursorText
	CursorWait
	CursorHelp
)

func (v Cursor) String() string { return enumString(cursorNames, uint8(v), "Cursor") }

type Display uint8

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayListItem
	DisplayRunIn
	DisplayCompact
	DisplayMarker
	DisplayTable
	DisplayInlineTable
	DisplayTableRowGroup
	DisplayTableHeaderGroup
	DisplayTableFooterGroup
	DisplayTableRow
	DisplayTableColumnGroup
	DisplayTableColumn
	DisplayTableCell
	DisplayTableCaption
	DisplayNone
)

func (v Display) String() string { return enumString(displayNames, uint8(v), "Display") }

type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	Collapse
)

func (v Visibility) String() string { return enumString(visibilityNames, uint8(v), "Visibility") }

type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

func (v Overflow) String() string { return enumString(overflowNames, uint8(v), "Overflow") }

// ColorInterpolation is used by both 'color-interpolation'
// and 'color-interpolation-filters'.
type ColorInterpolation uint8

const (
	ColorInterpolationAuto ColorInterpolation = iota
	ColorInterpolationSRGB
	ColorInterpolationLinearRGB
)

func (v ColorInterpolation) String() string {
	return enumString(colorInterpolationNames, uint8(v), "ColorInterpolation")
}

type ColorRendering uint8

const (
	ColorRenderingAuto ColorRendering = iota
	ColorRenderingOptimizeSpeed
	ColorRenderingOptimizeQuality
)

func (v ColorRendering) String() string {
	return enumString(colorRenderingNames, uint8(v), "ColorRendering")
}

type ShapeRendering uint8

const (
	ShapeRenderingAuto ShapeRendering = iota
	ShapeRenderingOptimizeSpeed
	ShapeRenderingCrispEdges
	ShapeRenderingGeometricPrecision
)

func (v ShapeRendering) String() string {
	return enumString(shapeRenderingNames, uint8(v), "ShapeRendering")
}

type TextRendering uint8

const (
	TextRenderingAuto TextRendering = iota
	TextRenderingOptimizeSpeed
	TextRenderingOptimizeLegibility
	TextRenderingGeometricPrecision
)

func (v TextRendering) String() string {
	return enumString(textRenderingNames, uint8(v), "TextRendering")
}

type ImageRendering uint8

const (
	ImageRenderingAuto ImageRendering = iota
	ImageRenderingOptimizeSpeed
	ImageRenderingOptimizeQuality
)

func (v ImageRendering) String() string {
	return enumString(imageRenderingNames, uint8(v), "ImageRendering")
}

// SpreadMethod indicates what happens outside the bounds of a gradient.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

func (v SpreadMethod) String() string { return enumString(spreadMethodNames, uint8(v), "SpreadMethod") }

// Units is the coordinate system of paint servers attributes.
type Units uint8

const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

func (v Units) String() string { return enumString(unitsNames, uint8(v), "Units") }

// MarkerUnits is the coordinate system of the marker size.
type MarkerUnits uint8

const (
	MarkerStrokeWidth MarkerUnits = iota
	MarkerUserSpaceOnUse
)

func (v MarkerUnits) String() string { return enumString(markerUnitsNames, uint8(v), "MarkerUnits") }
