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

var subpathCases = []TestCase{
	{
		Name: "two_triangles",
		Skeleton: concat(
			polygon(pt(6, 40), pt(18, 16), pt(30, 40)),
			polygon(pt(34, 40), pt(46, 16), pt(58, 40))),
		Width:  64,
		Height: 64,
		Effect: uniform,
	},
	{
		Name: "ring",
		Skeleton: concat(
			regularPolygon(32, 32, 26, 6),
			regularPolygon(32, 32, 12, 6)),
		Width:  64,
		Height: 64,
		Effect: Spiro{},
	},
	{
		Name: "open_and_closed",
		Skeleton: concat(
			zigzag(6, 16, 58, 6, 8),
			polygon(pt(16, 30), pt(48, 30), pt(48, 58), pt(16, 58))),
		Width:  64,
		Height: 64,
		Effect: uniform,
	},
	{
		Name: "open_and_closed_spiro",
		Skeleton: concat(
			zigzag(6, 16, 58, 6, 8),
			polygon(pt(16, 30), pt(48, 30), pt(48, 58), pt(16, 58))),
		Width:  64,
		Height: 64,
		Effect: Spiro{},
	},
}
