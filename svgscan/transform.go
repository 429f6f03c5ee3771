package svgscan

import (
	"errors"
	"math"
	"strings"
)

// ErrTransform is returned for a badly formed transform list.
var ErrTransform = errors.New("invalid transform list")

// ErrAspectRatio is returned for an invalid preserveAspectRatio value.
var ErrAspectRatio = errors.New("invalid preserveAspectRatio")

func degToRad(v float32) float64 { return float64(v) * math.Pi / 180 }

func applyTransformFunction(m Matrix, name string, args []float32) (Matrix, error) {
	ln := len(args)
	switch name {
	case "matrix":
		if ln != 6 {
			return m, ErrTransform
		}
		return m.Mult(Matrix{
			A: float64(args[0]),
			B: float64(args[1]),
			C: float64(args[2]),
			D: float64(args[3]),
			E: float64(args[4]),
			F: float64(args[5]),
		}), nil
	case "translate":
		if ln == 1 {
			return m.Translate(float64(args[0]), 0), nil
		} else if ln == 2 {
			return m.Translate(float64(args[0]), float64(args[1])), nil
		}
	case "scale":
		if ln == 1 {
			return m.Scale(float64(args[0]), float64(args[0])), nil
		} else if ln == 2 {
			return m.Scale(float64(args[0]), float64(args[1])), nil
		}
	case "rotate":
		if ln == 1 {
			return m.Rotate(degToRad(args[0])), nil
		} else if ln == 3 {
			return m.RotateAround(degToRad(args[0]), float64(args[1]), float64(args[2])), nil
		}
	case "skewX":
		if ln == 1 {
			return m.SkewX(degToRad(args[0])), nil
		}
	case "skewY":
		if ln == 1 {
			return m.SkewY(degToRad(args[0])), nil
		}
	}
	return m, ErrTransform
}

// ParseTransform parses a transform list, such as
// "translate(10 20) rotate(45)". Each function is applied
// in the local space of the previous ones.
// On failure, Identity is returned along with ErrTransform.
func ParseTransform(s string) (Matrix, error) {
	sc := NewScanner(s)
	m := Identity
	var args [6]float32
	for {
		sc.SkipSpacesAndComma()
		if sc.Done() {
			return m, nil
		}
		start := sc.pos
		for c := sc.Peek(); ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'); c = sc.Peek() {
			sc.pos++
		}
		name := sc.src[start:sc.pos]
		sc.SkipSpaces()
		if name == "" || sc.Next() != '(' {
			return Identity, ErrTransform
		}
		n := sc.Numbers(args[:])
		sc.SkipSpacesAndComma()
		if sc.Next() != ')' {
			return Identity, ErrTransform
		}
		var err error
		m, err = applyTransformFunction(m, name, args[:n])
		if err != nil {
			return Identity, err
		}
	}
}

// Align is the alignment part of a preserveAspectRatio value.
type Align uint8

const (
	AlignNone Align = iota
	XMinYMin
	XMidYMin
	XMaxYMin
	XMinYMid
	XMidYMid
	XMaxYMid
	XMinYMax
	XMidYMax
	XMaxYMax
)

var alignNames = [...]string{
	AlignNone: "none",
	XMinYMin:  "xMinYMin",
	XMidYMin:  "xMidYMin",
	XMaxYMin:  "xMaxYMin",
	XMinYMid:  "xMinYMid",
	XMidYMid:  "xMidYMid",
	XMaxYMid:  "xMaxYMid",
	XMinYMax:  "xMinYMax",
	XMidYMax:  "xMidYMax",
	XMaxYMax:  "xMaxYMax",
}

func (a Align) String() string {
	if int(a) < len(alignNames) {
		return alignNames[a]
	}
	return "<invalid align>"
}

// fractions of the free space used to offset the content,
// along each axis
func (a Align) factors() (fx, fy float64) {
	if a == AlignNone {
		return 0, 0
	}
	i := int(a) - 1
	return float64(i%3) / 2, float64(i/3) / 2
}

// PreserveAspectRatio controls how a viewBox is fitted into a viewport.
// Slice is false for 'meet' (the default) and true for 'slice'.
type PreserveAspectRatio struct {
	Align Align
	Slice bool
}

// DefaultAspectRatio is 'xMidYMid meet'.
var DefaultAspectRatio = PreserveAspectRatio{Align: XMidYMid}

// ParsePreserveAspectRatio reads an alignment keyword,
// optionally followed by 'meet' or 'slice'.
// The deprecated 'defer' prefix is accepted and ignored.
func ParsePreserveAspectRatio(s string) (PreserveAspectRatio, error) {
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return DefaultAspectRatio, ErrAspectRatio
	}
	out := PreserveAspectRatio{Align: 255}
	for i, name := range alignNames {
		if name == fields[0] {
			out.Align = Align(i)
			break
		}
	}
	if out.Align == 255 {
		return DefaultAspectRatio, ErrAspectRatio
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "meet":
		case "slice":
			out.Slice = true
		default:
			return DefaultAspectRatio, ErrAspectRatio
		}
	}
	return out, nil
}

// ViewBoxTransform returns the transformation mapping the content
// of `viewBox` into a viewport of size `width` x `height`.
// The identity is returned for an unset viewBox or an empty viewport.
func (p PreserveAspectRatio) ViewBoxTransform(width, height float32, viewBox Rect) Matrix {
	if viewBox.H <= 0 || (width <= 0 && height <= 0) {
		return Identity
	}
	w, h := float64(width), float64(height)
	vx, vy, vw, vh := float64(viewBox.X), float64(viewBox.Y), float64(viewBox.W), float64(viewBox.H)
	if p.Align == AlignNone {
		return Identity.Scale(w/vw, h/vh).Translate(-vx, -vy)
	}

	fx, fy := p.Align.factors()
	vbRatio, ratio := vw/vh, w/h
	meet := !p.Slice
	if (vbRatio < ratio && meet) || (vbRatio >= ratio && !meet) {
		// height is the constraining dimension
		s := h / vh
		return Identity.Scale(s, s).Translate(-vx-(vw-w*vh/h)*fx, -vy)
	}
	s := w / vw
	return Identity.Scale(s, s).Translate(-vx, -vy-(vh-h*vw/w)*fy)
}
