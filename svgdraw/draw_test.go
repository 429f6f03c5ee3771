package svgdraw

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtree/svgpath"
	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgtree"
)

// recorder stores the operations sent to a Filler or Stroker
type recorder struct {
	ops     []string
	color   Pattern
	opacity float64
	winding bool
	options StrokeOptions
	drawn   bool
}

func pt(p fixed.Point26_6) string {
	return fmt.Sprintf("%g,%g", float64(p.X)/64, float64(p.Y)/64)
}

func (r *recorder) Clear() { r.ops = r.ops[:0] }
func (r *recorder) Start(a fixed.Point26_6) { r.ops = append(r.ops, "M"+pt(a)) }
func (r *recorder) Line(b fixed.Point26_6) { r.ops = append(r.ops, "L"+pt(b)) }
func (r *recorder) SetWinding(nonZero bool) { r.winding = nonZero }
func (r *recorder) Draw() { r.drawn = true }
func (r *recorder) SetStrokeOptions(o StrokeOptions) { r.options = o }

func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.ops = append(r.ops, "C"+pt(b)+" "+pt(c)+" "+pt(d))
}

func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.ops = append(r.ops, "Z")
	} else {
		r.ops = append(r.ops, "S")
	}
}

func (r *recorder) SetColor(color Pattern, opacity float64) {
	r.color, r.opacity = color, opacity
}

func (r *recorder) path() string { return strings.Join(r.ops, " ") }

type drawnImage struct {
	img     image.Image
	m       svgscan.Matrix
	opacity float64
}

type recordingDriver struct {
	fills, strokes []*recorder
	images         []drawnImage
}

func (rd *recordingDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		r := &recorder{}
		rd.fills = append(rd.fills, r)
		f = r
	}
	if willStroke {
		r := &recorder{}
		rd.strokes = append(rd.strokes, r)
		s = r
	}
	return f, s
}

func (rd *recordingDriver) DrawImage(img image.Image, m svgscan.Matrix, opacity float64) {
	rd.images = append(rd.images, drawnImage{img, m, opacity})
}

func render(t *testing.T, source string, opts Options) *recordingDriver {
	t.Helper()
	parseOpts := svgtree.DefaultOptions()
	parseOpts.Width, parseOpts.Height = 100, 100
	doc, err := svgtree.ParseString(source, parseOpts)
	require.NoError(t, err)
	var rd recordingDriver
	Draw(doc, &rd, opts)
	return &rd
}

var (
	red   = PlainColor{R: 0xFF, A: 0xFF}
	blue  = PlainColor{B: 0xFF, A: 0xFF}
	green = PlainColor{G: 0x80, A: 0xFF}
)

func TestFillAndStroke(t *testing.T) {
	rd := render(t, `<svg width="10" height="10">
		<rect x="1" y="2" width="3" height="4" fill="red" stroke="blue" stroke-width="2" stroke-linejoin="round"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 1)
	require.Len(t, rd.strokes, 1)

	fill := rd.fills[0]
	assert.Equal(t, "M1,2 L4,2 L4,6 L1,6 Z", fill.path())
	assert.Equal(t, red, fill.color)
	assert.Equal(t, 1., fill.opacity)
	assert.True(t, fill.winding)
	assert.True(t, fill.drawn)

	stroke := rd.strokes[0]
	assert.Equal(t, fill.path(), stroke.path())
	assert.Equal(t, blue, stroke.color)
	assert.Equal(t, StrokeOptions{
		LineWidth:  fixed.I(2),
		MiterLimit: fixed.I(4),
		LineJoin:   Round,
		LineCap:    ButtCap,
	}, stroke.options)
}

func TestRoundedShapesAreClosed(t *testing.T) {
	rd := render(t, `<svg>
		<circle cx="5" cy="5" r="5"/>
		<rect width="10" height="10" rx="2"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 2)
	for _, f := range rd.fills {
		assert.True(t, strings.HasSuffix(f.path(), " Z"), f.path())
	}
	assert.True(t, strings.HasPrefix(rd.fills[0].path(), "M10,5 C"))
}

func TestVisibility(t *testing.T) {
	rd := render(t, `<svg width="20" height="20">
		<defs><rect id="r" width="2" height="2" fill="blue"/></defs>
		<g display="none"><rect width="5" height="5"/></g>
		<rect width="5" height="5" visibility="hidden"/>
		<rect width="0" height="5"/>
		<use href="#r" x="10" y="10"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 1)
	assert.Equal(t, "M10,10 L12,10 L12,12 L10,12 Z", rd.fills[0].path())
	assert.Equal(t, blue, rd.fills[0].color)
}

func TestOptions(t *testing.T) {
	rd := render(t, `<svg>
		<g opacity="0.5">
			<rect width="1" height="1" fill-rule="evenodd" fill-opacity="0.5" stroke="red" stroke-dasharray="1 2" stroke-dashoffset="1"/>
		</g>
	</svg>`, Options{Transform: svgscan.Identity.Scale(2, 2), Opacity: 0.5})
	require.Len(t, rd.fills, 1)
	require.Len(t, rd.strokes, 1)

	fill := rd.fills[0]
	assert.Equal(t, "M0,0 L2,0 L2,2 L0,2 Z", fill.path())
	assert.False(t, fill.winding)
	assert.InDelta(t, 0.125, fill.opacity, 0.01)

	stroke := rd.strokes[0]
	assert.InDelta(t, 0.25, stroke.opacity, 0.01)
	assert.Equal(t, fixed.I(2), stroke.options.LineWidth)
	assert.Equal(t, DashOptions{Dash: []float64{2, 4}, DashOffset: 2}, stroke.options.Dash)
}

func TestFillRule(t *testing.T) {
	rd := render(t, `<svg>
		<rect width="1" height="1" fill-rule="evenodd"/>
		<rect width="1" height="1"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 2)
	assert.False(t, rd.fills[0].winding)
	assert.True(t, rd.fills[1].winding)
}

func TestUseOffset(t *testing.T) {
	rd := render(t, `<svg>
		<defs>
			<rect id="scaled" width="1" height="1" transform="scale(2)"/>
			<g id="g" opacity="0.5"><rect width="1" height="1"/></g>
		</defs>
		<use href="#scaled" x="10" y="0" transform="translate(5,0)"/>
		<use href="#g"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 2)
	// x is applied before the transform of the clone
	assert.Equal(t, "M10,0 L12,0 L12,2 L10,2 Z", rd.fills[0].path())
	// the group opacity is applied once
	assert.InDelta(t, 0.5, rd.fills[1].opacity, 0.01)
}

func TestGradientPaint(t *testing.T) {
	rd := render(t, `<svg>
		<linearGradient id="g">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue" stop-opacity="0.5"/>
		</linearGradient>
		<linearGradient id="single"><stop stop-color="blue"/></linearGradient>
		<linearGradient id="empty"/>
		<rect x="10" y="20" width="30" height="40" fill="url(#g)"/>
		<rect width="1" height="1" fill="url(#single)"/>
		<rect width="1" height="1" fill="url(#empty) red"/>
	</svg>`, Options{})
	// the empty gradient disables the fill
	require.Len(t, rd.fills, 2)

	grad, ok := rd.fills[0].color.(Gradient)
	require.True(t, ok)
	assert.Equal(t, Linear{10, 20, 40, 20}, grad.Direction)
	assert.Equal(t, PadSpread, grad.Spread)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, grad.Stops[0].StopColor)
	assert.Equal(t, 1., grad.Stops[0].Opacity)
	assert.Equal(t, color.RGBA{B: 0xFF, A: 0xFF}, grad.Stops[1].StopColor)
	assert.InDelta(t, 0.5, grad.Stops[1].Opacity, 0.01)
	x, y := grad.Matrix.Transform(10, 20)
	assert.InDelta(t, 10, x, 1e-6)
	assert.InDelta(t, 20, y, 1e-6)

	assert.Equal(t, blue, rd.fills[1].color)
}

func TestGradientTransformInBox(t *testing.T) {
	rd := render(t, `<svg>
		<radialGradient id="g" gradientTransform="scale(0.5)">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</radialGradient>
		<rect x="10" y="10" width="20" height="20" fill="url(#g)"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 1)
	grad, ok := rd.fills[0].color.(Gradient)
	require.True(t, ok)
	assert.Equal(t, Radial{20, 20, 20, 20, 10, 0}, grad.Direction)
	// the scale is applied in the bounding box space
	x, y := grad.Matrix.Transform(10, 10)
	assert.InDelta(t, 10, x, 1e-6)
	assert.InDelta(t, 10, y, 1e-6)
	x, y = grad.Matrix.Transform(30, 30)
	assert.InDelta(t, 20, x, 1e-6)
	assert.InDelta(t, 20, y, 1e-6)
}

func TestPatternFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "svgtree.draw")
	defer teardown()

	rd := render(t, `<svg>
		<pattern id="p" width="1" height="1"><rect width="1" height="1"/></pattern>
		<rect width="1" height="1" fill="url(#p) red"/>
		<rect width="1" height="1" fill="url(#p)"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 1)
	assert.Equal(t, red, rd.fills[0].color)
}

func TestMarkers(t *testing.T) {
	rd := render(t, `<svg>
		<marker id="m" markerWidth="4" markerHeight="4" markerUnits="userSpaceOnUse" orient="auto">
			<rect width="1" height="1" fill="green"/>
		</marker>
		<path d="M10,10 L20,10 L20,20" fill="none" marker-start="url(#m)" marker-mid="url(#m)" marker-end="url(#m)"/>
	</svg>`, Options{})
	require.Len(t, rd.fills, 3)
	for _, f := range rd.fills {
		assert.Equal(t, green, f.color)
	}
	assert.Equal(t, "M10,10 L11,10 L11,11 L10,11 Z", rd.fills[0].path())
	assert.Equal(t, "M20,20 L20,21 L19,21 L19,20 Z", rd.fills[2].path())
}

func TestRecursiveMarker(t *testing.T) {
	rd := render(t, `<svg>
		<marker id="m" markerUnits="userSpaceOnUse">
			<path d="M0,0 L1,0" stroke="red" marker-end="url(#m)"/>
		</marker>
		<path d="M0,0 L10,0" marker-end="url(#m)"/>
	</svg>`, Options{})
	assert.Len(t, rd.strokes, 1)
}

func TestImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	rd := render(t, fmt.Sprintf(`<svg>
		<image href="%s" x="5" y="5" width="4" height="4" opacity="0.5"/>
		<image href="data:,not-an-image" width="4" height="4"/>
	</svg>`, href), Options{})
	require.Len(t, rd.images, 1)
	img := rd.images[0]
	assert.Equal(t, image.Pt(2, 2), img.img.Bounds().Size())
	assert.InDelta(t, 0.5, img.opacity, 0.01)
	x, y := img.m.Transform(0, 0)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 5, y, 1e-6)
	x, y = img.m.Transform(2, 2)
	assert.InDelta(t, 9, x, 1e-6)
	assert.InDelta(t, 9, y, 1e-6)
}

func TestSize(t *testing.T) {
	doc, err := svgtree.ParseString(`<svg viewBox="0 0 30 20"/>`, svgtree.DefaultOptions())
	require.NoError(t, err)
	w, h := Size(doc)
	assert.Equal(t, float32(30), w)
	assert.Equal(t, float32(20), h)

	doc, err = svgtree.ParseString(`<svg width="40" height="10" viewBox="0 0 30 20"/>`, svgtree.DefaultOptions())
	require.NoError(t, err)
	w, h = Size(doc)
	assert.Equal(t, float32(40), w)
	assert.Equal(t, float32(10), h)
}

func TestDrawTo(t *testing.T) {
	var p svgpath.Path
	p.MoveTo(false, 0, 0)
	p.LineTo(false, 1, 1)
	p.Close()
	p.LineTo(false, 2, 2)
	p.MoveTo(false, 3, 3)
	p.CubicTo(false, 4, 4, 5, 5, 6, 6)

	var r recorder
	drawTo(&r, p.Operations, svgscan.Identity.Translate(1, 0))
	assert.Equal(t, "M1,0 L2,1 Z M1,0 L3,2 S M4,3 C5,4 6,5 7,6 S", r.path())
}

func TestVertices(t *testing.T) {
	p, err := svgpath.ParseD("M0,0 L10,0 L10,10 Z")
	require.NoError(t, err)
	vs := vertices(p.Operations)
	require.Len(t, vs, 4)

	assert.Equal(t, 0., vs[0].direction())
	assert.InDelta(t, math.Pi/4, vs[1].direction(), 1e-9)
	assert.InDelta(t, -3*math.Pi/4, vs[2].out, 1e-9)
	// the closing vertex continues with the first segment
	assert.True(t, vs[3].hasOut)
	assert.Equal(t, 0., vs[3].out)
	assert.Equal(t, svgscan.Point{}, vs[3].at)
}
