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

package pathfit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// diffPath compares two paths command by command, with coordinates
// compared to within tol.
func diffPath(t *testing.T, want, got *path.Data, tol float64) {
	t.Helper()
	diff(t, want.Cmds, got.Cmds)
	diff(t, flatten(want.Coords), flatten(got.Coords), cmpopts.EquateApprox(0, tol))
}

func flatten(pts []vec.Vec2) []float64 {
	res := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		res = append(res, p.X, p.Y)
	}
	return res
}

// near2 reports whether a and b agree to within tol in both coordinates.
func near2(a, b vec.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// polyline returns the open path through the given points.
func polyline(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p
}

// polygon returns the closed path through the given points.
func polygon(pts ...vec.Vec2) *path.Data {
	return polyline(pts...).Close()
}
