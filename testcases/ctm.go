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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
)

var ctmCases = []TestCase{
	{
		Name:     "scale_2x",
		Skeleton: zigzag(4, 16, 28, 8, 4),
		Width:    64,
		Height:   64,
		Effect:   uniform,
		CTM:      matrix.Scale(2, 2),
	},
	{
		Name:     "rotate_45deg",
		Skeleton: polygon(pt(-12, -12), pt(12, -12), pt(12, 12), pt(-12, 12)),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
		CTM:      matrix.RotateDeg(45).Translate(32, 32),
	},
	{
		Name:     "shear",
		Skeleton: wave(8, 32, 40, 10, 2),
		Width:    64,
		Height:   64,
		Effect:   uniform,
		CTM:      matrix.Matrix{1, 0, 0.5, 1, 0, 0},
	},
	{
		Name:     "flip_y",
		Skeleton: glyphLike(),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
		CTM:      matrix.Matrix{1, 0, 0, -1, 0, 64},
	},
}
