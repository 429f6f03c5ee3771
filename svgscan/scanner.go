// Package svgscan implements the primitive grammars shared by SVG attributes:
// numbers, lengths, colors, angles and transform lists, together with
// the affine matrix type they produce.
//
// Scanners work on a cursor over the raw attribute text. A failed scan never
// moves the cursor, so callers can try alternatives or report the remaining text.
package svgscan

import (
	"errors"
	"math"
)

// ErrExpectedNumber and ErrExpectedLength are returned when
// a value could not be read at the cursor.
var (
	ErrExpectedNumber = errors.New("expected number")
	ErrExpectedLength = errors.New("expected length")
)

const (
	maxFractionDigits = 9

	// above this value a float32 has no room left for a fractional part
	exactIntLimit = 1 << 24
)

var pow10 = [maxFractionDigits + 1]uint32{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// Scanner is a cursor over an attribute value.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a scanner positioned at the start of `s`.
func NewScanner(s string) *Scanner { return &Scanner{src: s} }

// Pos returns the byte offset of the cursor.
func (sc *Scanner) Pos() int { return sc.pos }

// Done is true when the whole input has been consumed.
func (sc *Scanner) Done() bool { return sc.pos >= len(sc.src) }

// Rest returns the input remaining after the cursor.
func (sc *Scanner) Rest() string { return sc.src[sc.pos:] }

// Peek returns the byte under the cursor, or 0 at the end of input.
func (sc *Scanner) Peek() byte {
	if sc.pos >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos]
}

// Next returns the byte under the cursor and advances,
// or returns 0 at the end of input.
func (sc *Scanner) Next() byte {
	if sc.pos >= len(sc.src) {
		return 0
	}
	c := sc.src[sc.pos]
	sc.pos++
	return c
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// SkipSpaces advances past white space.
func (sc *Scanner) SkipSpaces() {
	for sc.pos < len(sc.src) && isSpace(sc.src[sc.pos]) {
		sc.pos++
	}
}

// SkipSpacesAndComma advances past any run of white space and commas.
func (sc *Scanner) SkipSpacesAndComma() {
	for sc.pos < len(sc.src) && (isSpace(sc.src[sc.pos]) || sc.src[sc.pos] == ',') {
		sc.pos++
	}
}

// Number reads a number at the cursor: an optional sign, integer digits,
// an optional fraction and an optional exponent.
//
// Precision is bounded the way single precision parsers commonly do it:
// at most 9 fractional digits are kept, and the fraction is dropped
// altogether when the integer part reaches 2^24.
// At least one digit is required; otherwise the cursor is left unchanged.
func (sc *Scanner) Number() (float32, bool) {
	s, i := sc.src, sc.pos
	negative := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		negative = s[i] == '-'
		i++
	}

	var intPart float32
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		intPart = 10*intPart + float32(s[i]-'0')
		digits++
	}
	out := intPart

	if i < len(s) && s[i] == '.' {
		i++
		if intPart >= exactIntLimit {
			for ; i < len(s) && isDigit(s[i]); i++ {
				digits++
			}
		} else {
			var fract uint32
			n := 0
			for ; i < len(s) && isDigit(s[i]); i++ {
				if n < maxFractionDigits {
					fract = 10*fract + uint32(s[i]-'0')
					n++
				}
				digits++
			}
			out += float32(fract) / float32(pow10[n])
		}
	}
	if digits == 0 {
		return 0, false
	}

	// the exponent must be followed by digits, so that 'em' and 'ex' units are preserved
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		expNegative := false
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			expNegative = s[j] == '-'
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			exp := 0
			for ; j < len(s) && isDigit(s[j]); j++ {
				if exp < 1000 {
					exp = 10*exp + int(s[j]-'0')
				}
			}
			if expNegative {
				exp = -exp
			}
			out = float32(float64(out) * math.Pow10(exp))
			i = j
		}
	}

	if negative {
		out = -out
	}
	sc.pos = i
	return out, true
}

// Flag reads a single '0' or '1' character, as used by arc flags,
// which may be written without separators ("a1 1 0 00 10 10").
func (sc *Scanner) Flag() (bool, bool) {
	switch sc.Peek() {
	case '0':
		sc.pos++
		return false, true
	case '1':
		sc.pos++
		return true, true
	}
	return false, false
}

// Numbers reads up to len(dst) numbers, separated by spaces or commas,
// and returns how many were read. The cursor stays after the last
// number successfully read.
func (sc *Scanner) Numbers(dst []float32) int {
	for i := range dst {
		save := sc.pos
		sc.SkipSpacesAndComma()
		v, ok := sc.Number()
		if !ok {
			sc.pos = save
			return i
		}
		dst[i] = v
	}
	return len(dst)
}

// Length reads a number followed by an optional unit.
// White space is allowed between the number and its unit.
func (sc *Scanner) Length() (Length, bool) {
	v, ok := sc.Number()
	if !ok {
		return Length{}, false
	}
	afterNumber := sc.pos
	sc.SkipSpaces()
	rest := sc.Rest()
	if len(rest) >= 1 && rest[0] == '%' {
		sc.pos++
		return Length{Value: v / 100, Unit: Percentage}, true
	}
	if len(rest) >= 2 {
		if u, ok := unitSuffixes[rest[:2]]; ok {
			sc.pos += 2
			return Length{Value: v, Unit: u}, true
		}
	}
	sc.pos = afterNumber
	return Length{Value: v, Unit: None}, true
}

// Lengths reads a list of lengths separated by spaces or commas,
// stopping at the first invalid item.
func (sc *Scanner) Lengths() []Length {
	var out []Length
	for {
		save := sc.pos
		sc.SkipSpacesAndComma()
		l, ok := sc.Length()
		if !ok {
			sc.pos = save
			return out
		}
		out = append(out, l)
	}
}

// ParseNumber parses a whole attribute value as a number.
// Trailing content is ignored, as long as a number was found.
func ParseNumber(s string) (float32, error) {
	sc := NewScanner(s)
	sc.SkipSpaces()
	v, ok := sc.Number()
	if !ok {
		return 0, ErrExpectedNumber
	}
	return v, nil
}

// ParseLength parses a whole attribute value as a length.
func ParseLength(s string) (Length, error) {
	sc := NewScanner(s)
	sc.SkipSpaces()
	l, ok := sc.Length()
	if !ok {
		return Length{}, ErrExpectedLength
	}
	return l, nil
}

// ParseNumbers reads exactly `n` numbers from `s`.
func ParseNumbers(s string, n int) ([]float32, error) {
	out := make([]float32, n)
	if NewScanner(s).Numbers(out) != n {
		return nil, ErrExpectedNumber
	}
	return out, nil
}

// ParseAngle reads a number with an optional deg, grad or rad unit,
// and returns it in radians. Degrees are assumed without unit.
func ParseAngle(s string) (float64, error) {
	sc := NewScanner(s)
	sc.SkipSpaces()
	v, ok := sc.Number()
	if !ok {
		return 0, ErrExpectedNumber
	}
	a := float64(v)
	sc.SkipSpaces()
	switch sc.Rest() {
	case "grad":
		return a * math.Pi / 200, nil
	case "rad":
		return a, nil
	default:
		return a * math.Pi / 180, nil
	}
}
