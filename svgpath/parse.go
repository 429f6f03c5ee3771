package svgpath

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgtree/svgscan"
)

// ErrPathData is returned (wrapped) when the path data is malformed.
// The operations read before the error are kept.
var ErrPathData = errors.New("invalid path data")

// number of arguments of each command
var commandArgs = [256]int8{
	'M': 2, 'm': 2,
	'L': 2, 'l': 2,
	'H': 1, 'h': 1,
	'V': 1, 'v': 1,
	'C': 6, 'c': 6,
	'S': 4, 's': 4,
	'Q': 4, 'q': 4,
	'T': 2, 't': 2,
	'A': 7, 'a': 7,
	'Z': 0, 'z': 0,
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c',
		'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathCursor struct {
	sc   *svgscan.Scanner
	path *Path
	args [7]float32
	// arc flags
	large, sweep bool
}

// readArcArgs reads rx ry rotation large-arc sweep x y, where flags
// may be written without separator.
func (c *pathCursor) readArcArgs() bool {
	if c.sc.Numbers(c.args[:3]) != 3 {
		return false
	}
	c.sc.SkipSpacesAndComma()
	var ok bool
	if c.large, ok = c.sc.Flag(); !ok {
		return false
	}
	c.sc.SkipSpacesAndComma()
	if c.sweep, ok = c.sc.Flag(); !ok {
		return false
	}
	return c.sc.Numbers(c.args[5:7]) == 2
}

func (c *pathCursor) readArgs(cmd byte) bool {
	if cmd == 'A' || cmd == 'a' {
		return c.readArcArgs()
	}
	n := int(commandArgs[cmd])
	return c.sc.Numbers(c.args[:n]) == n
}

func (c *pathCursor) apply(cmd byte) {
	a, p := c.args, c.path
	rel := 'a' <= cmd && cmd <= 'z'
	switch cmd {
	case 'M', 'm':
		p.MoveTo(rel, a[0], a[1])
	case 'L', 'l':
		p.LineTo(rel, a[0], a[1])
	case 'H', 'h':
		p.HLineTo(rel, a[0])
	case 'V', 'v':
		p.VLineTo(rel, a[0])
	case 'C', 'c':
		p.CubicTo(rel, a[0], a[1], a[2], a[3], a[4], a[5])
	case 'S', 's':
		p.SmoothCubicTo(rel, a[0], a[1], a[2], a[3])
	case 'Q', 'q':
		p.QuadTo(rel, a[0], a[1], a[2], a[3])
	case 'T', 't':
		p.SmoothQuadTo(rel, a[0], a[1])
	case 'A', 'a':
		p.ArcTo(rel, a[0], a[1], a[2], c.large, c.sweep, a[5], a[6])
	case 'Z', 'z':
		p.Close()
	}
}

// ParseD parses the content of a 'd' attribute.
// Commands may be repeated implicitly, and a moveto followed by
// extra coordinates is treated as implicit lineto commands.
// Parsing stops at the first malformed command: the path read so far
// is returned, together with an error wrapping ErrPathData.
func ParseD(d string) (*Path, error) {
	c := pathCursor{sc: svgscan.NewScanner(d), path: new(Path)}
	sc := c.sc
	sc.SkipSpaces()
	if sc.Done() {
		return c.path, nil
	}
	if first := sc.Peek(); first != 'M' && first != 'm' {
		return c.path, fmt.Errorf("%w: path must start with a moveto", ErrPathData)
	}

	var cmd byte
	for {
		sc.SkipSpacesAndComma()
		if sc.Done() {
			return c.path, nil
		}
		if next := sc.Peek(); isCommand(next) {
			cmd = sc.Next()
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			// implicit repetition requires arguments
			return c.path, fmt.Errorf("%w: unexpected %q at %d", ErrPathData, next, sc.Pos())
		}

		pos := sc.Pos()
		if !c.readArgs(cmd) {
			return c.path, fmt.Errorf("%w: invalid arguments for %c at %d", ErrPathData, cmd, pos)
		}
		c.apply(cmd)

		// following coordinates pairs are implicit lineto
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
}

// ParsePoints parses the 'points' attribute of polyline and polygon elements.
// The first pair starts the path, each following pair adds a segment.
// When `close` is true, the path is closed (polygon).
//
// A trailing odd coordinate is dropped and reported with ErrPathData.
func ParsePoints(points string, close bool) (*Path, error) {
	sc := svgscan.NewScanner(points)
	p := new(Path)
	var (
		xy  [2]float32
		err error
	)
	for {
		n := sc.Numbers(xy[:])
		if n != 2 {
			sc.SkipSpacesAndComma()
			if n == 1 || !sc.Done() {
				err = fmt.Errorf("%w: invalid points at %d", ErrPathData, sc.Pos())
			}
			break
		}
		if p.IsEmpty() {
			p.MoveTo(false, xy[0], xy[1])
		} else {
			p.LineTo(false, xy[0], xy[1])
		}
	}
	if close && !p.IsEmpty() {
		if last, _ := p.LastCommand(); last != CmdClose {
			p.Close()
		}
	}
	return p, err
}
