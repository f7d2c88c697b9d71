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

package pathdata

import (
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Format writes p as SVG path data, using absolute commands.
//
// Coordinates are rounded to prec digits after the decimal point, with
// trailing zeros removed. A negative prec selects the shortest
// representation which reads back as the same number.
func Format(p *path.Data, prec int) string {
	if p == nil {
		return ""
	}

	var b []byte
	appendPoints := func(cmd byte, pts []vec.Vec2) {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, cmd)
		for _, pt := range pts {
			b = append(b, ' ')
			b = appendNumber(b, pt.X, prec)
			b = append(b, ',')
			b = appendNumber(b, pt.Y, prec)
		}
	}

	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			appendPoints('M', pts[:1])
		case path.CmdLineTo:
			appendPoints('L', pts[:1])
		case path.CmdQuadTo:
			appendPoints('Q', pts[:2])
		case path.CmdCubeTo:
			appendPoints('C', pts[:3])
		case path.CmdClose:
			appendPoints('Z', nil)
		}
	}
	return string(b)
}

func appendNumber(b []byte, x float64, prec int) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, x, 'f', prec, 64)
	if strings.IndexByte(string(b[start:]), '.') >= 0 {
		for b[len(b)-1] == '0' {
			b = b[:len(b)-1]
		}
		if b[len(b)-1] == '.' {
			b = b[:len(b)-1]
		}
	}
	if string(b[start:]) == "-0" {
		b = append(b[:start], '0')
	}
	return b
}
