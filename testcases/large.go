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

var largeCases = []TestCase{
	{
		Name:     "many_nodes",
		Skeleton: zigzag(8, 256, 1016, 200, 200),
		Width:    1024,
		Height:   512,
		Effect:   uniform,
	},
	{
		Name:     "spiral_spiro",
		Skeleton: spiral(256, 256, 10, 240, 4, 64),
		Width:    512,
		Height:   512,
		Effect:   Spiro{},
	},
	{
		Name:     "polygon_grid",
		Skeleton: polygonGrid(8, 8, 64),
		Width:    512,
		Height:   512,
		Effect:   uniform,
	},
}

// spiral builds a smooth open path with n nodes on an Archimedean spiral.
func spiral(cx, cy, rMin, rMax, turns float64, n int) *path.Data {
	pts := make([]vec.Vec2, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		angle := t * turns * 2 * math.Pi
		r := rMin + t*(rMax-rMin)
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return smooth(pts...)
}

// polygonGrid builds rows×cols closed hexagons, each in a cell of the
// given size.
func polygonGrid(rows, cols int, cell float64) *path.Data {
	var parts []*path.Data
	for i := range rows {
		for j := range cols {
			cx := (float64(j) + 0.5) * cell
			cy := (float64(i) + 0.5) * cell
			parts = append(parts, regularPolygon(cx, cy, cell*0.4, 6))
		}
	}
	return concat(parts...)
}
