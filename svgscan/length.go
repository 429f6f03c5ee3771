package svgscan

import "fmt"

// Unit is the unit of a Length.
type Unit uint8

const (
	None Unit = iota
	Percentage
	Em
	Ex
	Px
	Pt
	Pc
	In
	Cm
	Mm
)

var unitSuffixes = map[string]Unit{
	"em": Em,
	"ex": Ex,
	"px": Px,
	"pt": Pt,
	"pc": Pc,
	"in": In,
	"cm": Cm,
	"mm": Mm,
}

func (u Unit) String() string {
	switch u {
	case None:
		return ""
	case Percentage:
		return "%"
	}
	for s, v := range unitSuffixes {
		if v == u {
			return s
		}
	}
	return fmt.Sprintf("<unit %d>", uint8(u))
}

// resolution used to convert absolute units
const dpi = 96

// Length is a number with a unit. Percentages are stored
// divided by 100, so that 50% has Value 0.5.
type Length struct {
	Value float32
	Unit  Unit
}

// Pixels returns a length in user units.
func Pixels(v float32) Length { return Length{Value: v, Unit: Px} }

// Percent returns a percentage length; `v` is the literal value, so 50 means 50%.
func Percent(v float32) Length { return Length{Value: v / 100, Unit: Percentage} }

func (l Length) String() string {
	if l.Unit == Percentage {
		return fmt.Sprintf("%g%%", l.Value*100)
	}
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

func convert(u Unit, v float32) float32 {
	switch u {
	case Em:
		return v * 16
	case Ex:
		return v * 7
	case In:
		return v * dpi
	case Pt:
		return v * dpi / 72
	case Pc:
		return v * dpi / 6
	case Cm:
		return v * (dpi / 2.54)
	case Mm:
		return v * (dpi / 2.54) / 10
	default: // None, Px, Percentage
		return v
	}
}

// Pixels converts an absolute length to user units.
// A percentage returns its stored fraction unchanged.
func (l Length) Pixels() float32 { return convert(l.Unit, l.Value) }

// Resolve converts the length to user units, using `ref`
// as the reference dimension for percentages.
func (l Length) Resolve(ref float32) float32 {
	if l.Unit == Percentage {
		return l.Value * ref
	}
	return convert(l.Unit, l.Value)
}
