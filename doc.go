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

// Package pathfit reconstructs smooth curves from user-drawn path
// skeletons.
//
// A skeleton is an ordinary [path.Data] value whose segments are lines or
// cubic Béziers. Two reconstructors are provided:
//
//   - [ReconstructBSpline] places the handles of every segment at a
//     tunable fraction ("weight") along the segment's chord, and
//     [RenderBSpline] evaluates the uniform B-spline that such a skeleton
//     describes.
//   - [ReconstructSpiro] fits a curvature-continuous clothoid spline
//     through the skeleton nodes, using the solver in package spiro.
//
// Node continuity (cusp, smooth, symmetric) is decided by [ClassifyNode].
// All operations return new paths; their arguments are never modified.
//
// [path.Data]: https://pkg.go.dev/seehuhn.de/go/geom/path#Data
package pathfit
