// seehuhn.de/go/pathfit - B-spline and Spiro path reconstruction
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pathdata reads and writes path data in the format used by the
// "d" attribute of SVG path elements.
package pathdata

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrSyntax is returned for malformed path data.
	ErrSyntax = errors.New("invalid path data")

	// ErrUnsupported is returned for elliptical arc commands.
	ErrUnsupported = errors.New("unsupported path command")
)

// numArgs gives the number of arguments of each command.
var numArgs = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
	'Z': 0,
}

// Parse converts SVG path data into a path.
//
// All commands except the elliptical arc commands "A" and "a" are
// supported, in absolute and relative form. Errors report the byte offset
// of the problem within s.
func Parse(s string) (*path.Data, error) {
	buf := []byte(s)
	res := &path.Data{}

	i := skipCommaWhitespace(buf)
	if i == len(buf) {
		return res, nil
	}
	if c := buf[i] | 0x20; c != 'm' {
		return nil, syntaxError(i, "path data must start with a moveto command")
	}

	var (
		args     [7]float64
		current  vec.Vec2 // current point
		start    vec.Vec2 // start of the current subpath
		ctrl     vec.Vec2 // last control point, for S/s and T/t
		prev     byte     // previous command, upper case
		cmd      byte
		open     bool // a subpath is in progress
		relative bool
	)
	for {
		i += skipCommaWhitespace(buf[i:])
		if i >= len(buf) {
			break
		}

		if isCommand(buf[i]) {
			cmd = buf[i]
			i++
			i += skipCommaWhitespace(buf[i:])
		} else if c := buf[i] | 0x20; c >= 'a' && c <= 'z' && c != 'e' {
			return nil, syntaxError(i, fmt.Sprintf("unknown command %q", buf[i]))
		} else if cmd|0x20 == 'z' {
			return nil, syntaxError(i, "expected a command")
		}
		relative = cmd >= 'a'
		upper := cmd &^ 0x20
		if upper == 'A' {
			return nil, fmt.Errorf("%w %q at byte %d", ErrUnsupported, cmd, i-1)
		}
		n := numArgs[upper]

		for j := range n {
			x, k := strconv.ParseFloat(buf[i:])
			if k == 0 {
				return nil, syntaxError(i, fmt.Sprintf("command %q needs %d numbers", cmd, n))
			}
			args[j] = x
			i += k
			i += skipCommaWhitespace(buf[i:])
		}

		// points relative to the current point
		pt := func(j int) vec.Vec2 {
			p := vec.Vec2{X: args[j], Y: args[j+1]}
			if relative {
				p = p.Add(current)
			}
			return p
		}

		if upper != 'M' && upper != 'Z' && !open {
			res.MoveTo(current)
			open = true
		}

		switch upper {
		case 'M':
			current = pt(0)
			start = current
			res.MoveTo(current)
			open = true
			// further coordinate pairs are implicit lineto commands
			cmd = 'L' | (cmd & 0x20)
		case 'L':
			current = pt(0)
			res.LineTo(current)
		case 'H':
			if relative {
				current.X += args[0]
			} else {
				current.X = args[0]
			}
			res.LineTo(current)
		case 'V':
			if relative {
				current.Y += args[0]
			} else {
				current.Y = args[0]
			}
			res.LineTo(current)
		case 'C':
			c1, c2, end := pt(0), pt(2), pt(4)
			res.CubeTo(c1, c2, end)
			ctrl, current = c2, end
		case 'S':
			c1 := current
			if prev == 'C' || prev == 'S' {
				c1 = current.Mul(2).Sub(ctrl)
			}
			c2, end := pt(0), pt(2)
			res.CubeTo(c1, c2, end)
			ctrl, current = c2, end
		case 'Q':
			c, end := pt(0), pt(2)
			res.QuadTo(c, end)
			ctrl, current = c, end
		case 'T':
			c := current
			if prev == 'Q' || prev == 'T' {
				c = current.Mul(2).Sub(ctrl)
			}
			end := pt(0)
			res.QuadTo(c, end)
			ctrl, current = c, end
		case 'Z':
			if open {
				res.Close()
				open = false
			}
			current = start
		}
		prev = upper
	}
	return res, nil
}

func isCommand(c byte) bool {
	_, ok := numArgs[c&^0x20]
	return ok
}

func skipCommaWhitespace(buf []byte) int {
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			i++
		default:
			return i
		}
	}
	return i
}

func syntaxError(pos int, msg string) error {
	return fmt.Errorf("%w: %s at byte %d", ErrSyntax, msg, pos)
}
