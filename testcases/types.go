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

// Package testcases holds skeleton paths for exercising the curve fitting
// code. The fixtures are shared by the unit tests, the benchmarks and the
// tools in the subdirectories.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit"
)

// TestCase defines a single skeleton together with the effect to apply.
type TestCase struct {
	Name     string        // lowercase a-z, 0-9 and _ only
	Skeleton *path.Data    // nodes and handles, as drawn
	Width    int           // size of the drawing area
	Height   int           // size of the drawing area
	Effect   Effect        // reconstruction to apply
	CTM      matrix.Matrix // applied to the skeleton first (zero-value means no transform)
}

// Effect is a reconstruction which turns a skeleton into a curve.
type Effect interface {
	isEffect()
}

// BSpline reconstructs the handles of the skeleton with the given options
// and then renders the B-spline.
type BSpline struct {
	Options pathfit.BSplineOptions
}

func (BSpline) isEffect() {}

// Spiro replaces the skeleton by a spiro spline through its nodes.
type Spiro struct{}

func (Spiro) isEffect() {}

// Input returns the skeleton of tc, transformed by tc.CTM.
func (tc TestCase) Input() *path.Data {
	if tc.CTM == (matrix.Matrix{}) {
		return tc.Skeleton
	}
	return pathfit.Transform(tc.Skeleton, tc.CTM)
}

// Fitted applies the effect of tc to its input.
func (tc TestCase) Fitted() *path.Data {
	in := tc.Input()
	switch e := tc.Effect.(type) {
	case BSpline:
		return pathfit.RenderBSpline(pathfit.ReconstructBSpline(in, e.Options))
	case Spiro:
		return pathfit.ReconstructSpiro(in)
	default:
		panic("unknown effect")
	}
}

// uniform is the effect used by most fixtures.
var uniform = BSpline{Options: pathfit.DefaultBSplineOptions()}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// polyline builds an open path through the given points.
func polyline(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p
}

// polygon builds a closed path through the given points.
func polygon(pts ...vec.Vec2) *path.Data {
	return polyline(pts...).Close()
}

// concat returns a path holding all subpaths of the arguments.
func concat(paths ...*path.Data) *path.Data {
	res := &path.Data{}
	for _, p := range paths {
		res.Cmds = append(res.Cmds, p.Cmds...)
		res.Coords = append(res.Coords, p.Coords...)
	}
	return res
}
