package svgdraw

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtree/svgscan"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformation matrices are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new subpath at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop closes the subpath to its start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the paint for the current path.
	// `opacity` is in [0, 1].
	SetColor(color Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer

	// SetWinding chooses between the non-zero (true) and the even-odd rule.
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// SetStrokeOptions parametrizes the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the beginning of every path.
	// If the `willXXX` boolean is false, the returned drawer may be nil.
	// When both booleans are true, the exact same draw operations
	// are performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// ImageDrawer is an optional Driver capability, required
// to render <image> elements.
type ImageDrawer interface {
	// DrawImage paints `img`, whose pixel space is mapped
	// to the device by `m`.
	DrawImage(img image.Image, m svgscan.Matrix, opacity float64)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line, in device space
	MiterLimit fixed.Int26_6 // the miter cutoff ratio for the miter joins
	LineJoin   JoinMode
	LineCap    CapMode
	Dash       DashOptions
}

func fToFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(f * 64)) }

// toFixed applies `m` to `p` and converts the result
func toFixed(m svgscan.Matrix, p svgscan.Point) fixed.Point26_6 {
	x, y := m.Transform(float64(p.X), float64(p.Y))
	return fixed.Point26_6{X: fToFixed(x), Y: fToFixed(y)}
}
