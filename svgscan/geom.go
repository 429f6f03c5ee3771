package svgscan

import "math"

// Point is a position in user space.
type Point struct{ X, Y float32 }

// Rect is an axis aligned rectangle. A ViewBox with
// a negative height is considered unset.
type Rect struct{ X, Y, W, H float32 }

// IsSet returns true for a rectangle with a positive height, which is
// the condition required to use it as a viewBox.
func (r Rect) IsSet() bool { return r.H > 0 }

// Union returns the smallest rectangle containing both `r` and `other`.
func (r Rect) Union(other Rect) Rect {
	x0 := min32(r.X, other.X)
	y0 := min32(r.Y, other.Y)
	x1 := max32(r.X+r.W, other.X+other.W)
	y1 := max32(r.Y+r.H, other.Y+other.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ParseViewBox reads the four numbers of a viewBox attribute.
func ParseViewBox(s string) (Rect, error) {
	var vals [4]float32
	if NewScanner(s).Numbers(vals[:]) != 4 {
		return Rect{}, ErrExpectedNumber
	}
	return Rect{vals[0], vals[1], vals[2], vals[3]}, nil
}

func min32(a, b float32) float32 { return float32(math.Min(float64(a), float64(b))) }

func max32(a, b float32) float32 { return float32(math.Max(float64(a), float64(b))) }
