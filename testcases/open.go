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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit"
)

var openCases = []TestCase{
	{
		Name:     "single_line",
		Skeleton: polyline(pt(8, 32), pt(56, 32)),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "zigzag",
		Skeleton: zigzag(8, 32, 56, 16, 6),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "zigzag_spiro",
		Skeleton: smooth(zigzagPoints(8, 32, 56, 16, 6)...),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "zigzag_weight_zero",
		Skeleton: zigzag(8, 32, 56, 16, 6),
		Width:    64,
		Height:   64,
		Effect:   BSpline{Options: pathfit.BSplineOptions{Weight: 0}},
	},
	{
		Name:     "zigzag_weight_half",
		Skeleton: zigzag(8, 32, 56, 16, 6),
		Width:    64,
		Height:   64,
		Effect:   BSpline{Options: pathfit.BSplineOptions{Weight: 0.5, Gap: pathfit.HandleGap}},
	},
	{
		Name:     "only_selected",
		Skeleton: zigzag(8, 32, 56, 16, 6),
		Width:    64,
		Height:   64,
		Effect: BSpline{Options: pathfit.BSplineOptions{
			Weight:       pathfit.DefaultWeight,
			Gap:          pathfit.HandleGap,
			OnlySelected: true,
			Selected:     []vec.Vec2{pt(24, 16)},
		}},
	},
	{
		Name:     "cubic_wave",
		Skeleton: wave(8, 32, 56, 12, 3),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "cubic_wave_spiro",
		Skeleton: wave(8, 32, 56, 12, 3),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name:     "corners_spiro",
		Skeleton: zigzag(8, 32, 56, 16, 6),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name: "quadratic",
		Skeleton: (&path.Data{}).
			MoveTo(pt(8, 56)).
			QuadTo(pt(32, 8), pt(56, 56)).
			QuadTo(pt(60, 60), pt(60, 32)),
		Width:  64,
		Height: 64,
		Effect: uniform,
	},
	{
		Name: "line_into_curve_spiro",
		Skeleton: (&path.Data{}).
			MoveTo(pt(4, 32)).
			LineTo(pt(20, 32)).
			CubeTo(pt(26, 32), pt(34, 16), pt(40, 16)).
			CubeTo(pt(46, 16), pt(56, 20), pt(60, 40)),
		Width:  64,
		Height: 64,
		Effect: Spiro{},
	},
}

// zigzag builds an open polyline from (x1, cy) to (x2, cy) with n teeth
// of the given amplitude.
func zigzag(x1, cy, x2, amplitude float64, n int) *path.Data {
	return polyline(zigzagPoints(x1, cy, x2, amplitude, n)...)
}

func zigzagPoints(x1, cy, x2, amplitude float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, 0, n+1)
	for i := range n + 1 {
		x := x1 + (x2-x1)*float64(i)/float64(n)
		y := cy
		switch i % 2 {
		case 1:
			y += amplitude
		default:
			if i > 0 && i < n {
				y -= amplitude
			}
		}
		pts = append(pts, pt(x, y))
	}
	return pts
}

// smooth builds an open cubic path through the given points. Every
// interior node gets symmetric handles parallel to the line through its
// neighbours.
func smooth(pts ...vec.Vec2) *path.Data {
	n := len(pts) - 1
	tangent := func(i int) vec.Vec2 {
		switch i {
		case 0:
			return pts[1].Sub(pts[0]).Mul(1.0 / 3)
		case n:
			return pts[n].Sub(pts[n-1]).Mul(1.0 / 3)
		default:
			return pts[i+1].Sub(pts[i-1]).Mul(1.0 / 6)
		}
	}

	p := (&path.Data{}).MoveTo(pts[0])
	for i := range n {
		p = p.CubeTo(pts[i].Add(tangent(i)), pts[i+1].Sub(tangent(i+1)), pts[i+1])
	}
	return p
}

// wave builds n cubic arches between (x1, cy) and (x2, cy), alternating
// above and below the axis.
func wave(x1, cy, x2, amplitude float64, n int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(x1, cy))
	step := (x2 - x1) / float64(n)
	for i := range n {
		a := x1 + step*float64(i)
		h := amplitude
		if i%2 == 1 {
			h = -h
		}
		p = p.CubeTo(pt(a, cy+h), pt(a+step, cy+h), pt(a+step, cy))
	}
	return p
}
