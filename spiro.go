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
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/pathfit/spiro"
)

// ControlPoints returns the typed spiro control points for the nodes of
// sp.
//
// For an open subpath the first point has type [spiro.OpenStart] and the
// last one [spiro.OpenEnd]; interior nodes are tagged by [SpiroTag].
// A closed subpath has one control point per node. The node where the
// subpath closes is tagged [spiro.G2] if it is smooth and [spiro.Corner]
// otherwise.
func ControlPoints(sp Subpath) []spiro.ControlPoint {
	segs := sp.Loop()
	n := len(segs)
	if n == 0 {
		return nil
	}

	var cps []spiro.ControlPoint
	if sp.Closed {
		cps = make([]spiro.ControlPoint, n)
		tag := spiro.Corner
		if ClassifyNode(segs[n-1], segs[0]).IsSmooth() {
			tag = spiro.G2
		}
		cps[0] = spiro.ControlPoint{Pt: segs[0].P0, Type: tag}
		for i := 1; i < n; i++ {
			cps[i] = spiro.ControlPoint{Pt: segs[i].P0, Type: SpiroTag(segs[i-1], segs[i])}
		}
		return cps
	}

	cps = make([]spiro.ControlPoint, 0, n+1)
	cps = append(cps, spiro.ControlPoint{Pt: segs[0].P0, Type: spiro.OpenStart})
	for i := 1; i < n; i++ {
		cps = append(cps, spiro.ControlPoint{Pt: segs[i].P0, Type: SpiroTag(segs[i-1], segs[i])})
	}
	cps = append(cps, spiro.ControlPoint{Pt: segs[n-1].P3, Type: spiro.OpenEnd})
	return cps
}

// ReconstructSpiro replaces every subpath of p by a spiro spline through
// its nodes.
//
// Open subpaths with fewer than three nodes and closed subpaths with fewer
// than two nodes are copied unchanged. If the solver fails for a subpath,
// a warning is logged and the subpath is copied unchanged.
func ReconstructSpiro(p *path.Data) *path.Data {
	subs := Subpaths(p)
	res := make([]Subpath, 0, len(subs))
	for i, sp := range subs {
		cps := ControlPoints(sp)
		if len(cps) < minSpiroPoints(sp.Closed) {
			res = append(res, sp)
			continue
		}

		fitted, err := spiro.Fit(cps)
		if err != nil {
			Logger().Warn("spiro fit failed, keeping skeleton",
				"subpath", i, "points", len(cps), "error", err)
			res = append(res, sp)
			continue
		}
		res = append(res, Subpaths(fitted)...)
	}

	Logger().Debug("spiro reconstructed", "subpaths", len(subs))
	return Build(res)
}

func minSpiroPoints(closed bool) int {
	if closed {
		return 2
	}
	return 3
}
