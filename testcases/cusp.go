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

	"seehuhn.de/go/pathfit"
)

var cuspCases = []TestCase{
	{
		Name:     "retracted_handle",
		Skeleton: retracted(),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "retracted_handle_ignore_cusp",
		Skeleton: retracted(),
		Width:    64,
		Height:   64,
		Effect: BSpline{Options: pathfit.BSplineOptions{
			Weight:     pathfit.DefaultWeight,
			Gap:        pathfit.HandleGap,
			IgnoreCusp: true,
		}},
	},
	{
		Name:     "mixed_lines_curves",
		Skeleton: mixedLinesCurves(),
		Width:    64,
		Height:   64,
		Effect:   uniform,
	},
	{
		Name:     "mixed_lines_curves_spiro",
		Skeleton: mixedLinesCurves(),
		Width:    64,
		Height:   64,
		Effect:   Spiro{},
	},
	{
		Name: "hairpin_spiro",
		Skeleton: (&path.Data{}).
			MoveTo(pt(8, 20)).
			LineTo(pt(56, 20)).
			LineTo(pt(8, 44)),
		Width:  64,
		Height: 64,
		Effect: Spiro{},
	},
}

// retracted builds a skeleton where the middle node has both handles on
// the node itself.
func retracted() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(8, 48)).
		CubeTo(pt(16, 16), pt(32, 16), pt(32, 16)).
		CubeTo(pt(32, 16), pt(48, 16), pt(56, 48))
}

// mixedLinesCurves alternates straight lines and smooth curves.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(6, 50)).
		LineTo(pt(20, 50)).
		CubeTo(pt(28, 50), pt(30, 20), pt(38, 20)).
		LineTo(pt(50, 20)).
		CubeTo(pt(56, 20), pt(58, 30), pt(58, 40))
}
