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

import "seehuhn.de/go/geom/matrix"

var precisionCases = []TestCase{
	{
		Name:     "large_offset",
		Skeleton: zigzag(1e6+8, 1e6+32, 1e6+56, 16, 6),
		Width:    64,
		Height:   64,
		Effect:   uniform,
		CTM:      matrix.Identity.Translate(-1e6, -1e6),
	},
	{
		Name:     "tiny",
		Skeleton: zigzag(0.001, 0.002, 0.003, 0.0005, 4),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "nearly_collinear",
		Skeleton: polyline(pt(4, 32), pt(20, 32.00001), pt(36, 31.99999), pt(60, 32)),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "duplicate_node",
		Skeleton: polyline(pt(8, 40), pt(24, 20), pt(24, 20), pt(40, 40), pt(56, 20)),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
}
