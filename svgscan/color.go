package svgscan

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrColor is returned for a color which is neither
// a hex value, a functional rgb() value, nor a known name.
var ErrColor = errors.New("invalid color")

// Color is a non premultiplied RGBA color.
type Color struct{ R, G, B, A uint8 }

// Black is the initial fill color.
var Black = Color{0, 0, 0, 0xFF}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func (c Color) String() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// ParseColor parses an SVG color in all forms supported by SVG 1.1:
// #rgb, #rrggbb, rgb(r,g,b) with numbers or percentages, and the
// CSS color keywords. `transparent` and rgba(r,g,b,a) are also accepted.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, ErrColor
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgba(") {
		return parseFunctionalColor(s[5:], true)
	}
	if strings.HasPrefix(lower, "rgb(") {
		return parseFunctionalColor(s[4:], false)
	}
	if lower == "transparent" {
		return Color{}, nil
	}
	if cn, ok := colornames.Map[lower]; ok {
		return Color{cn.R, cn.G, cn.B, cn.A}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrColor, s)
}

func parseHexColor(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("%w: #%s", ErrColor, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrColor, hex)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// channel values are read as lengths, so that 50% is accepted
func colorChannel(l Length) uint8 {
	if l.Unit == Percentage {
		switch {
		case l.Value > 1:
			return 0xFF
		case l.Value < 0:
			return 0
		default:
			return uint8(l.Value * 0xFF)
		}
	}
	switch {
	case l.Value > 0xFF:
		return 0xFF
	case l.Value < 0:
		return 0
	default:
		return uint8(l.Value)
	}
}

func parseFunctionalColor(args string, withAlpha bool) (Color, error) {
	sc := NewScanner(args)
	var channels [3]uint8
	for i := range channels {
		sc.SkipSpacesAndComma()
		l, ok := sc.Length()
		if !ok {
			return Color{}, fmt.Errorf("%w: rgb(%s", ErrColor, args)
		}
		channels[i] = colorChannel(l)
	}
	alpha := uint8(0xFF)
	if withAlpha {
		sc.SkipSpacesAndComma()
		l, ok := sc.Length()
		if !ok {
			return Color{}, fmt.Errorf("%w: rgba(%s", ErrColor, args)
		}
		// alpha is a fraction, or a percentage
		alpha = colorChannel(Length{Value: l.Value, Unit: Percentage})
	}
	sc.SkipSpaces()
	if sc.Next() != ')' {
		return Color{}, fmt.Errorf("%w: missing closing parenthesis", ErrColor)
	}
	return Color{channels[0], channels[1], channels[2], alpha}, nil
}
