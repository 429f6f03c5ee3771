package svgscan

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMatrixComposition(t *testing.T) {
	// translate then scale, in local space: the scaling applies first
	m := Identity.Translate(10, 0).Scale(2, 2)
	x, y := m.Transform(1, 1)
	assert.Equal(t, 12., x)
	assert.Equal(t, 2., y)

	// post translation applies last
	m = Identity.Scale(2, 2).PostTranslate(10, 0)
	x, y = m.Transform(1, 1)
	assert.Equal(t, 12., x)
	assert.Equal(t, 2., y)

	n := Identity.Rotate(math.Pi / 3).Translate(4, 5)
	assert.Empty(t, cmp.Diff(n.Mult(m), m.PostMult(n), approx))

	assert.Empty(t, cmp.Diff(Identity.Scale(3, 4).Mult(m), m.PostScale(3, 4), approx))
	assert.Empty(t, cmp.Diff(Identity.Rotate(1).Mult(m), m.PostRotate(1), approx))
}

func TestMatrixInvert(t *testing.T) {
	m := Identity.Translate(3, -7).Rotate(0.3).Scale(2, 5).SkewX(0.1)
	inv, ok := m.Invert()
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(Identity, m.Mult(inv), approx))

	_, ok = Matrix{}.Invert()
	assert.False(t, ok)
}

func TestMatrixOverlay(t *testing.T) {
	other := Identity.Translate(1, 2)
	assert.Equal(t, other, Identity.Overlay(other))
	own := Identity.Scale(2, 2)
	assert.Equal(t, own, own.Overlay(other))
}

func TestParseTransform(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected Matrix
	}{
		{"", Identity},
		{"matrix(1 2 3 4 5 6)", Matrix{1, 2, 3, 4, 5, 6}},
		{"translate(10)", Matrix{1, 0, 0, 1, 10, 0}},
		{"translate(10, 20)", Matrix{1, 0, 0, 1, 10, 20}},
		{"scale(2)", Matrix{2, 0, 0, 2, 0, 0}},
		{"scale(2 3)", Matrix{2, 0, 0, 3, 0, 0}},
		{"rotate(90)", Identity.Rotate(math.Pi / 2)},
		{"rotate(90 10 10)", Identity.Translate(10, 10).Rotate(math.Pi / 2).Translate(-10, -10)},
		{"skewX(45)", Identity.SkewX(math.Pi / 4)},
		{"skewY(30)", Identity.SkewY(math.Pi / 6)},
		{"translate(10,0) scale(2)", Matrix{2, 0, 0, 2, 10, 0}},
		{"scale(2),translate(10,0)", Matrix{2, 0, 0, 2, 20, 0}},
		{" rotate ( 0 ) ", Identity},
	} {
		got, err := ParseTransform(test.input)
		require.NoError(t, err, test.input)
		assert.Empty(t, cmp.Diff(test.expected, got, approx), test.input)
	}
}

func TestParseTransformInvalid(t *testing.T) {
	for _, input := range []string{
		"translate(1 2 3)",
		"rotate(1 2)",
		"matrix(1 2 3)",
		"scale 2",
		"translate(10) unknown(2)",
		"translate(10",
		"(1)",
	} {
		m, err := ParseTransform(input)
		assert.ErrorIs(t, err, ErrTransform, input)
		assert.Equal(t, Identity, m, input)
	}
}

func TestParsePreserveAspectRatio(t *testing.T) {
	p, err := ParsePreserveAspectRatio("xMinYMax slice")
	require.NoError(t, err)
	assert.Equal(t, PreserveAspectRatio{XMinYMax, true}, p)

	p, err = ParsePreserveAspectRatio("none")
	require.NoError(t, err)
	assert.Equal(t, AlignNone, p.Align)

	p, err = ParsePreserveAspectRatio("defer xMaxYMid meet")
	require.NoError(t, err)
	assert.Equal(t, PreserveAspectRatio{XMaxYMid, false}, p)

	_, err = ParsePreserveAspectRatio("xMidYMid crop")
	assert.ErrorIs(t, err, ErrAspectRatio)
	_, err = ParsePreserveAspectRatio("center")
	assert.ErrorIs(t, err, ErrAspectRatio)
}

func TestViewBoxTransform(t *testing.T) {
	vb := Rect{0, 0, 100, 50}

	// wider box in a square viewport: fit on width, centered vertically
	m := DefaultAspectRatio.ViewBoxTransform(200, 200, vb)
	assert.Empty(t, cmp.Diff(Matrix{2, 0, 0, 2, 0, 50}, m, approx))

	m = PreserveAspectRatio{Align: XMidYMin}.ViewBoxTransform(200, 200, vb)
	assert.Empty(t, cmp.Diff(Matrix{2, 0, 0, 2, 0, 0}, m, approx))

	m = PreserveAspectRatio{Align: XMidYMax}.ViewBoxTransform(200, 200, vb)
	assert.Empty(t, cmp.Diff(Matrix{2, 0, 0, 2, 0, 100}, m, approx))

	// slice: fit on height, centered horizontally
	m = PreserveAspectRatio{Align: XMidYMid, Slice: true}.ViewBoxTransform(200, 200, vb)
	assert.Empty(t, cmp.Diff(Matrix{4, 0, 0, 4, -100, 0}, m, approx))

	m = PreserveAspectRatio{Align: AlignNone}.ViewBoxTransform(200, 200, Rect{10, 10, 100, 50})
	assert.Empty(t, cmp.Diff(Matrix{2, 0, 0, 4, -20, -40}, m, approx))

	assert.Equal(t, Identity, DefaultAspectRatio.ViewBoxTransform(200, 200, Rect{0, 0, -1, -1}))
	assert.Equal(t, Identity, DefaultAspectRatio.ViewBoxTransform(0, 0, vb))
}
