package svgtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtree/svgscan"
)

func TestPaintReferences(t *testing.T) {
	var errs []*ParseError
	doc, err := ParseString(`<svg>
		<defs>
			<linearGradient id="grad"/>
			<marker id="notAServer"/>
		</defs>
		<rect id="missing" fill="url(#missing)"/>
		<rect id="fallback" fill="url(#missing) red"/>
		<rect id="resolved" fill="url(#grad)" stroke="url('#grad')"/>
		<rect id="rejected" fill="url(#notAServer)"/>
	</svg>`, collect(&errs))
	require.NoError(t, err)
	// an unresolved reference is not an error
	assert.Empty(t, errs)

	s := doc.ComputedStyle(doc.FindByID("missing"))
	assert.Equal(t, NoPaint, s.Fill.Kind)

	s = doc.ComputedStyle(doc.FindByID("fallback"))
	assert.Equal(t, Paint{Kind: ColorPaint, Color: red}, s.Fill)

	grad := doc.FindByID("grad")
	s = doc.ComputedStyle(doc.FindByID("resolved"))
	assert.Equal(t, Paint{Kind: ServerPaint, Server: grad}, s.Fill)
	assert.Equal(t, grad, s.Stroke.Server)

	s = doc.ComputedStyle(doc.FindByID("rejected"))
	assert.Equal(t, NoPaint, s.Fill.Kind)
}

func TestDefsPrecedence(t *testing.T) {
	doc := parse(t, `<svg>
		<rect id="dup" fill="url(#dup)"/>
		<defs><linearGradient id="dup"/></defs>
	</svg>`)
	ref := doc.FindByID("dup")
	assert.Equal(t, KindLinearGradient, doc.Element(ref).Kind())

	rect := doc.Element(doc.Children(doc.Root)[0]).(*Rect)
	assert.Equal(t, ref, rect.Style.Fill.Server)
	assert.Zero(t, doc.FindByID("other"))
	assert.Zero(t, doc.FindByID(""))
}

func TestUseIsolation(t *testing.T) {
	doc := parse(t, `<svg>
		<defs><g id="shape"><rect id="r" width="10" height="10"/></g></defs>
		<use id="u1" href="#shape" fill="red"/>
		<use id="u2" xlink:href="#shape" fill="blue"/>
	</svg>`)
	original := doc.FindByID("shape")
	u1 := doc.Element(doc.FindByID("u1")).(*Use)
	u2 := doc.Element(doc.FindByID("u2")).(*Use)
	require.NotZero(t, u1.Payload)
	require.NotZero(t, u2.Payload)
	assert.NotEqual(t, u1.Payload, u2.Payload)
	assert.NotEqual(t, original, u1.Payload)

	// the clone root takes the use id
	assert.Equal(t, "u1", doc.Element(u1.Payload).Header().ID)
	assert.Equal(t, "shape", doc.Element(original).Header().ID)

	rect1 := doc.Children(u1.Payload)[0]
	rect2 := doc.Children(u2.Payload)[0]
	assert.Equal(t, red, doc.ComputedStyle(rect1).Fill.Color)
	assert.Equal(t, blue, doc.ComputedStyle(rect2).Fill.Color)
	assert.Equal(t, svgscan.Black, doc.ComputedStyle(doc.FindByID("r")).Fill.Color)

	// clones do not share memory
	doc.Element(rect1).(*Rect).Width = svgscan.Pixels(99)
	assert.Equal(t, svgscan.Length{Value: 10}, doc.Element(rect2).(*Rect).Width)
	assert.Equal(t, svgscan.Length{Value: 10}, doc.Element(doc.FindByID("r")).(*Rect).Width)

	// payloads are walked after their use
	var ids []string
	doc.Walk(func(ref Ref, _ int) bool {
		ids = append(ids, doc.Element(ref).Header().ID)
		return true
	})
	assert.Equal(t, []string{"", "u1", "u1", "r", "u2", "u2", "r"}, ids)
}

func TestUseCycles(t *testing.T) {
	doc := parse(t, `<svg>
		<defs>
			<g id="a"><use id="ua" href="#b"/></g>
			<g id="b"><use id="ub" href="#a"/></g>
		</defs>
		<use id="self" href="#self"/>
		<g id="parent"><use id="up" href="#parent"/></g>
		<use id="missing" href="#nothing"/>
		<use id="c" href="#a"/>
	</svg>`)

	for _, id := range []string{"ua", "ub", "self", "up", "missing"} {
		use := doc.Element(doc.FindByID(id)).(*Use)
		assert.Zero(t, use.Payload, id)
	}

	c := doc.Element(doc.FindByID("c")).(*Use)
	require.NotZero(t, c.Payload)
	payload := doc.Element(c.Payload)
	assert.Equal(t, KindGroup, payload.Kind())
	assert.Equal(t, "c", payload.Header().ID)
	// the cloned failed use has no payload either
	children := doc.Children(c.Payload)
	require.Len(t, children, 1)
	assert.Zero(t, doc.Element(children[0]).(*Use).Payload)
}

func TestNestedUse(t *testing.T) {
	doc := parse(t, `<svg>
		<defs>
			<rect id="r" width="1" height="1"/>
			<g id="g"><use id="inner" href="#r" x="1"/></g>
		</defs>
		<use id="outer" href="#g" x="10"/>
	</svg>`)
	outer := doc.Element(doc.FindByID("outer")).(*Use)
	require.NotZero(t, outer.Payload)
	innerClone := doc.Element(doc.Children(outer.Payload)[0]).(*Use)
	inner := doc.Element(doc.FindByID("inner")).(*Use)
	require.NotZero(t, inner.Payload)
	require.NotZero(t, innerClone.Payload)
	// the nested payload is copied too
	assert.NotEqual(t, inner.Payload, innerClone.Payload)
	assert.Equal(t, KindRect, doc.Element(innerClone.Payload).Kind())
}

func TestUseTransform(t *testing.T) {
	doc := parse(t, `<svg>
		<defs>
			<rect id="scaled" width="1" height="1" transform="scale(2)"/>
			<rect id="plain" width="1" height="1"/>
		</defs>
		<use id="u1" href="#scaled" transform="translate(5,0)"/>
		<use id="u2" href="#plain" x="20" y="30" transform="translate(5,0)"/>
	</svg>`)
	u1 := doc.Element(doc.FindByID("u1")).(*Use)
	require.NotZero(t, u1.Payload)
	// the transform of the clone wins
	assert.Equal(t, svgscan.Identity.Scale(2, 2), doc.Element(u1.Payload).(*Rect).Transform)

	u2 := doc.Element(doc.FindByID("u2")).(*Use)
	require.NotZero(t, u2.Payload)
	assert.Equal(t, svgscan.Identity.Translate(5, 0), doc.Element(u2.Payload).(*Rect).Transform)
	// x and y are kept apart
	assert.Equal(t, svgscan.Identity.Translate(20, 30), doc.UseOffset(u2.Self))
	assert.Equal(t, svgscan.Identity, doc.UseOffset(u2.Payload))

	// the original is untouched
	assert.Equal(t, svgscan.Identity, doc.Element(doc.FindByID("plain")).(*Rect).Transform)
}

func TestUseOpacity(t *testing.T) {
	doc := parse(t, `<svg>
		<defs><g id="g" opacity="0.5"><rect id="r" width="1" height="1"/></g></defs>
		<g id="direct" opacity="0.5"><rect id="directRect" width="1" height="1"/></g>
		<use id="u" href="#g"/>
	</svg>`)
	use := doc.Element(doc.FindByID("u")).(*Use)
	require.NotZero(t, use.Payload)
	children := doc.Children(use.Payload)
	require.Len(t, children, 1)

	direct := doc.EffectiveOpacity(doc.FindByID("directRect"))
	assert.InDelta(t, 127.5, direct, 1e-3)
	assert.InDelta(t, direct, doc.EffectiveOpacity(children[0]), 1e-3)
	// opacity is not copied into the cloned subtree
	assert.False(t, doc.Element(children[0]).(*Rect).Style.IsSet(PropOpacity))
}

func TestUseSvgSize(t *testing.T) {
	doc := parse(t, `<svg>
		<defs><svg id="inner" width="10" height="10"/></defs>
		<use id="u" href="#inner" width="40"/>
	</svg>`)
	use := doc.Element(doc.FindByID("u")).(*Use)
	require.NotZero(t, use.Payload)
	assert.InDelta(t, 40, doc.Width(use.Payload), 1e-5)
	assert.InDelta(t, 10, doc.Height(use.Payload), 1e-5)
}

func TestGradientTemplate(t *testing.T) {
	doc := parse(t, `<svg><defs>
		<linearGradient id="base">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</linearGradient>
		<linearGradient id="middle" href="#base"/>
		<radialGradient id="derived" xlink:href="#middle"/>
		<radialGradient id="own" href="#base"><stop offset="1" stop-color="red"/></radialGradient>
		<radialGradient id="loop1" href="#loop2"/>
		<radialGradient id="loop2" href="#loop1"/>
	</defs></svg>`)

	base := doc.FindByID("base")
	derived := doc.FindByID("derived")
	g, ok := AsGradient(doc.Element(derived))
	require.True(t, ok)
	assert.Equal(t, doc.FindByID("middle"), g.Template)

	expected := []Stop{{Offset: 0, Color: red}, {Offset: 1, Color: blue}}
	assert.Equal(t, expected, doc.GradientStops(base))
	assert.Equal(t, expected, doc.GradientStops(derived))
	// own stops win
	assert.Equal(t, []Stop{{Offset: 1, Color: red}}, doc.GradientStops(doc.FindByID("own")))
	// cyclic templates end without stops
	assert.Empty(t, doc.GradientStops(doc.FindByID("loop1")))
}
