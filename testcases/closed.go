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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var closedCases = []TestCase{
	{
		Name:     "triangle",
		Skeleton: polygon(pt(10, 50), pt(32, 10), pt(54, 50)),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "square",
		Skeleton: polygon(pt(12, 12), pt(52, 12), pt(52, 52), pt(12, 52)),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "square_spiro",
		Skeleton: polygon(pt(12, 12), pt(52, 12), pt(52, 52), pt(12, 52)),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "explicit_close",
		Skeleton: polygon(pt(12, 12), pt(52, 12), pt(32, 52), pt(12, 12)),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "star",
		Skeleton: star(32, 32, 25),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "octagon_spiro",
		Skeleton: regularPolygon(32, 32, 24, 8),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "digon_spiro",
		Skeleton: polygon(pt(12, 32), pt(52, 32)),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "glyph_like",
		Skeleton: glyphLike(),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
}

// regularPolygon builds a closed polygon with n corners on a circle.
func regularPolygon(cx, cy, r float64, n int) *path.Data {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := float64(i) * 2 * math.Pi / float64(n)
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(pts...)
}

// star builds a self-intersecting five-pointed star.
func star(cx, cy, r float64) *path.Data {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(2*i%5)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(pts...)
}

// glyphLike builds the outline of a letter "D", with a straight stem and
// a curved bowl.
func glyphLike() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(14, 8)).
		LineTo(pt(14, 56)).
		LineTo(pt(30, 56)).
		CubeTo(pt(44, 56), pt(52, 46), pt(52, 32)).
		CubeTo(pt(52, 18), pt(44, 8), pt(30, 8)).
		Close()
}
