package svgtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtree/svgscan"
)

var (
	red  = svgscan.Color{R: 255, A: 255}
	blue = svgscan.Color{B: 255, A: 255}
)

func TestCascadePrecedence(t *testing.T) {
	doc := parse(t, `<svg>
		<g fill-opacity="50.196%">
			<rect id="inherits"/>
			<rect id="explicit" fill-opacity="0.25098"/>
		</g>
	</svg>`)

	inherits := doc.ComputedStyle(doc.FindByID("inherits"))
	explicit := doc.ComputedStyle(doc.FindByID("explicit"))
	assert.InDelta(t, 128, inherits.FillOpacity, 0.01)
	assert.InDelta(t, 64, explicit.FillOpacity, 0.01)

	// defaults apply when nothing is set
	assert.Equal(t, Paint{Kind: ColorPaint, Color: svgscan.Black}, inherits.Fill)
	assert.Equal(t, NoPaint, inherits.Stroke.Kind)
	assert.Equal(t, svgscan.Length{Value: 1}, inherits.StrokeWidth)
	assert.Equal(t, DisplayInline, inherits.Display)
	assert.Equal(t, Visible, inherits.Visibility)
	assert.Equal(t, NonZero, inherits.FillRule)
}

func TestOverlay(t *testing.T) {
	var child, parent Style
	child.Fill = Paint{Kind: ColorPaint, Color: red}
	child.Set(PropFill)
	parent.Fill = Paint{Kind: ColorPaint, Color: blue}
	parent.StrokeDashArray = []svgscan.Length{{Value: 1}, {Value: 2}}
	parent.Set(PropFill | PropStrokeDashArray)

	child.Overlay(&parent)
	assert.Equal(t, red, child.Fill.Color)
	assert.True(t, child.IsSet(PropStrokeDashArray))
	assert.Equal(t, parent.StrokeDashArray, child.StrokeDashArray)

	// no shared memory
	child.StrokeDashArray[0].Value = 5
	assert.Equal(t, float32(1), parent.StrokeDashArray[0].Value)

	child.Unset(PropFill)
	assert.False(t, child.IsSet(PropFill))
	assert.Equal(t, Paint{}, child.Fill)
}

func TestStyleAttribute(t *testing.T) {
	doc := parse(t, `<svg>
		<g fill="red" stroke="blue">
			<rect id="a" fill="green" style="fill: blue; stroke-width:3 ; unknown: 2"/>
			<rect id="b" fill="blue" style="fill:inherit"/>
			<rect id="c" stroke="inherit"/>
		</g>
	</svg>`)

	a := doc.ComputedStyle(doc.FindByID("a"))
	assert.Equal(t, blue, a.Fill.Color)
	assert.Equal(t, svgscan.Length{Value: 3}, a.StrokeWidth)

	b := doc.ComputedStyle(doc.FindByID("b"))
	assert.Equal(t, red, b.Fill.Color)

	c := doc.ComputedStyle(doc.FindByID("c"))
	assert.Equal(t, Paint{Kind: ColorPaint, Color: blue}, c.Stroke)
}

func TestPresentationAttributes(t *testing.T) {
	doc := parse(t, `<svg>
		<rect id="r"
			fill-rule="evenodd" stroke-linecap="round" stroke-linejoin="bevel"
			stroke-miterlimit="10" stroke-dasharray="5 10 15" stroke-dashoffset="2"
			opacity="50%" display="none" visibility="hidden" overflow="hidden"
			cursor="pointer" shape-rendering="crispEdges" color-interpolation="linearRGB"/>
	</svg>`)
	s := doc.ComputedStyle(doc.FindByID("r"))
	assert.Equal(t, EvenOdd, s.FillRule)
	assert.Equal(t, RoundCap, s.StrokeLineCap)
	assert.Equal(t, BevelJoin, s.StrokeLineJoin)
	assert.Equal(t, float32(10), s.StrokeMiterLimit)
	assert.Equal(t, []svgscan.Length{
		{Value: 5}, {Value: 10}, {Value: 15},
		{Value: 5}, {Value: 10}, {Value: 15},
	}, s.StrokeDashArray)
	assert.Equal(t, svgscan.Length{Value: 2}, s.StrokeDashOffset)
	assert.InDelta(t, 127.5, s.Opacity, 1e-4)
	assert.Equal(t, DisplayNone, s.Display)
	assert.Equal(t, Hidden, s.Visibility)
	assert.Equal(t, OverflowHidden, s.Overflow)
	assert.Equal(t, CursorPointer, s.Cursor)
	assert.Equal(t, ShapeRenderingCrispEdges, s.ShapeRendering)
	assert.Equal(t, ColorInterpolationLinearRGB, s.ColorInterpolation)
}

func TestFont(t *testing.T) {
	doc := parse(t, `<svg>
		<g font="italic bold 12px/30px Georgia, 'Times New Roman', serif">
			<rect id="shorthand"/>
			<rect id="longhand" font-size="large" font-weight="300" font-family="Arial"/>
		</g>
	</svg>`)

	s := doc.ComputedStyle(doc.FindByID("shorthand"))
	expected := ResolvedStyle{
		FontStyle:   FontStyleItalic,
		FontWeight:  FontWeightBold,
		FontSize:    svgscan.Length{Value: 12, Unit: svgscan.Px},
		FontFamily:  []string{"Georgia", "Times New Roman", "serif"},
		FontVariant: FontVariantNormal,
		FontStretch: FontStretchNormal,
	}
	got := ResolvedStyle{
		FontStyle: s.FontStyle, FontWeight: s.FontWeight, FontSize: s.FontSize,
		FontFamily: s.FontFamily, FontVariant: s.FontVariant, FontStretch: s.FontStretch,
	}
	assert.Empty(t, cmp.Diff(expected, got))

	s = doc.ComputedStyle(doc.FindByID("longhand"))
	assert.Equal(t, svgscan.Pixels(18), s.FontSize)
	assert.Equal(t, FontWeight300, s.FontWeight)
	assert.Equal(t, []string{"Arial"}, s.FontFamily)
	assert.Equal(t, FontStyleItalic, s.FontStyle)
}

func TestOpacityNotInherited(t *testing.T) {
	doc := parse(t, `<svg><g opacity="0.5"><rect id="r" fill-opacity="0.5"/></g></svg>`)
	r := doc.FindByID("r")
	s := doc.ComputedStyle(r)
	assert.InDelta(t, 255, s.Opacity, 1e-4)
	assert.InDelta(t, 127.5, s.FillOpacity, 1e-4)
	assert.InDelta(t, 127.5, doc.EffectiveOpacity(r), 1e-3)

	var child Style
	child.Inherit(&Style{set: PropOpacity | PropFillOpacity, Opacity: 10, FillOpacity: 20})
	assert.False(t, child.IsSet(PropOpacity))
	assert.True(t, child.IsSet(PropFillOpacity))
}

func TestEffectiveOpacity(t *testing.T) {
	doc := parse(t, `<svg><g opacity="0.5"><g><rect id="r" opacity="0.5"/></g></g></svg>`)
	assert.InDelta(t, 63.75, doc.EffectiveOpacity(doc.FindByID("r")), 1e-3)
	assert.InDelta(t, 255, doc.EffectiveOpacity(doc.Root), 1e-3)
}

func TestMarkerProperties(t *testing.T) {
	doc := parse(t, `<svg>
		<marker id="m"/>
		<g marker="url(#m)">
			<path id="all" d="M0 0 L1 1"/>
			<path id="none" marker-mid="none" d="M0 0 L1 1"/>
			<path id="notMarker" marker-end="url(#all)" d="M0 0 L1 1"/>
		</g>
	</svg>`)
	m := doc.FindByID("m")
	require.NotZero(t, m)

	all := doc.ComputedStyle(doc.FindByID("all"))
	assert.Equal(t, [3]Ref{m, m, m}, [3]Ref{all.MarkerStart, all.MarkerMid, all.MarkerEnd})

	none := doc.ComputedStyle(doc.FindByID("none"))
	assert.Equal(t, [3]Ref{m, 0, m}, [3]Ref{none.MarkerStart, none.MarkerMid, none.MarkerEnd})

	// references must target a marker
	notMarker := doc.ComputedStyle(doc.FindByID("notMarker"))
	assert.Equal(t, Ref(0), notMarker.MarkerEnd)
}
