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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// BSplineOptions controls [ReconstructBSpline].
type BSplineOptions struct {
	// Weight is the fraction of the chord at which handles are placed.
	// 0 gives straight segments, 1/3 a uniform B-spline.
	Weight float64

	// IgnoreCusp leaves handles which are retracted onto their node in
	// place, and keeps straight lines straight.
	IgnoreCusp bool

	// OnlySelected restricts the changes to the handles of nodes listed
	// in Selected. Nodes are matched by position.
	OnlySelected bool
	Selected     []vec.Vec2

	// Gap is added to both coordinates of every moved handle when Weight
	// is non-zero, so that handles never coincide exactly with a node.
	Gap float64
}

// DefaultBSplineOptions returns the options for a uniform B-spline.
func DefaultBSplineOptions() BSplineOptions {
	return BSplineOptions{
		Weight: DefaultWeight,
		Gap:    HandleGap,
	}
}

const (
	// DefaultWeight places handles at the one third points of each chord.
	DefaultWeight = 1.0 / 3

	// HandleGap is the default value of BSplineOptions.Gap.
	HandleGap = 0.0001
)

// ReconstructBSpline recomputes the handles of every segment of p.
//
// Each segment's chord, the straight line between its end points, is the
// control segment of the B-spline. The handles of the segment are placed
// at the fractions Weight and 1-Weight along the chord. Node positions are
// not changed. Every segment of the result is a cubic; the closing segment
// of a closed subpath becomes an explicit cubic.
//
// Paths with at most one segment are returned unchanged.
func ReconstructBSpline(p *path.Data, opts BSplineOptions) *path.Data {
	if SegmentCount(p) <= 1 {
		return clonePath(p)
	}

	subs := Subpaths(p)
	res := make([]Subpath, len(subs))
	for i, sp := range subs {
		loop := sp.Loop()
		segs := make([]Segment, len(loop))
		for j, s := range loop {
			segs[j] = placeHandles(s, opts)
		}
		res[i] = Subpath{Segments: segs, Closed: sp.Closed}
	}

	Logger().Debug("bspline weights applied",
		"subpaths", len(subs),
		"weight", opts.Weight,
		"ignoreCusp", opts.IgnoreCusp,
		"onlySelected", opts.OnlySelected)

	return Build(res)
}

// placeHandles returns the segment s as a cubic with handles placed
// according to opts.
func placeHandles(s Segment, opts BSplineOptions) Segment {
	var gap vec.Vec2
	if opts.Weight != 0 {
		gap = vec.Vec2{X: opts.Gap, Y: opts.Gap}
	}

	isLine := s.Kind == LineKind

	p1 := lerp(s.P0, s.P3, opts.Weight).Add(gap)
	switch {
	case opts.IgnoreCusp && (isLine || near(s.P1, s.P0)):
		p1 = s.P0
	case opts.OnlySelected && !isSelected(s.P0, opts.Selected):
		p1 = s.P1
	}

	p2 := lerp(s.P0, s.P3, 1-opts.Weight).Add(gap)
	switch {
	case opts.IgnoreCusp && (isLine || near(s.P2, s.P3)):
		p2 = s.P3
	case opts.OnlySelected && !isSelected(s.P3, opts.Selected):
		p2 = s.P2
	}

	return CubicSegment(s.P0, p1, p2, s.P3)
}

func isSelected(pt vec.Vec2, sel []vec.Vec2) bool {
	return slices.ContainsFunc(sel, func(q vec.Vec2) bool {
		return nearTol(pt, q, selectionTolerance)
	})
}

// WeightOf returns the weight of the first handle of s, that is the
// position of the handle's projection onto the chord, as a fraction of
// the chord length. Lines and segments with a retracted first handle have
// weight 0.
func WeightOf(s Segment) float64 {
	if s.Kind == LineKind || near(s.P1, s.P0) {
		return 0
	}
	_, t := s.Chord().Nearest(toPoint(s.P1), nearestAccuracy)
	return t
}

// RenderBSpline computes the curve described by a B-spline skeleton.
//
// The handles of every segment are projected onto the segment's chord.
// Each interior node is moved to the midpoint between the projections on
// either side of it, except at cusps, where a handle coincides with the
// node; cusp nodes stay in place. The end points of open subpaths do not
// move. For closed subpaths the start node is treated like any interior
// node, with the last segment as its predecessor.
func RenderBSpline(p *path.Data) *path.Data {
	subs := Subpaths(p)
	res := make([]Subpath, 0, len(subs))
	for _, sp := range subs {
		res = append(res, renderSubpath(sp))
	}
	return Build(res)
}

func renderSubpath(sp Subpath) Subpath {
	segs := sp.Loop()
	n := len(segs)

	a1 := make([]vec.Vec2, n)
	a2 := make([]vec.Vec2, n)
	for i, s := range segs {
		a1[i], a2[i] = projectedHandles(s)
	}

	// nodes[i] is the start of segment i, nodes[n] the end of the last
	// segment.
	nodes := make([]vec.Vec2, n+1)
	for i := range n {
		if i == 0 && !sp.Closed {
			nodes[0] = segs[0].P0
			continue
		}
		prev := (i + n - 1) % n
		nodes[i] = joinNode(segs[prev], segs[i], a2[prev], a1[i])
	}
	if sp.Closed {
		nodes[n] = nodes[0]
	} else {
		nodes[n] = segs[n-1].P3
	}

	out := make([]Segment, n)
	for i := range n {
		out[i] = CubicSegment(nodes[i], a1[i], a2[i], nodes[i+1])
	}
	return Subpath{Segments: out, Closed: sp.Closed}
}

// projectedHandles returns the projections of the handles of s onto its
// chord. A single retracted handle is replaced by the one third point
// of the chord at its end.
func projectedHandles(s Segment) (vec.Vec2, vec.Vec2) {
	if s.Kind == LineKind {
		return s.P0, s.P3
	}

	chord := s.Chord()
	_, t1 := chord.Nearest(toPoint(s.P1), nearestAccuracy)
	_, t2 := chord.Nearest(toPoint(s.P2), nearestAccuracy)
	a1 := fromPoint(chord.Eval(t1))
	a2 := fromPoint(chord.Eval(t2))

	start := near(s.P1, s.P0)
	end := near(s.P2, s.P3)
	if start && !end {
		a1 = lerp(s.P0, s.P3, 1./3)
	}
	if end && !start {
		a2 = lerp(s.P0, s.P3, 2./3)
	}
	return a1, a2
}

// joinNode returns the rendered position of the node between segments in
// and out. h1 and h2 are the projected handles on either side.
func joinNode(in, out Segment, h1, h2 vec.Vec2) vec.Vec2 {
	cuspIn := in.Kind == CubicKind && near(in.P2, in.P3)
	cuspOut := out.Kind == CubicKind && near(out.P1, out.P0)
	if cuspIn || cuspOut {
		return out.P0
	}
	return lerp(h1, h2, 0.5)
}

func clonePath(p *path.Data) *path.Data {
	if p == nil {
		return &path.Data{}
	}
	return &path.Data{
		Cmds:   slices.Clone(p.Cmds),
		Coords: slices.Clone(p.Coords),
	}
}

const (
	// selectionTolerance is used to match selected node positions.
	selectionTolerance = 1e-4

	// nearestAccuracy is passed to the nearest-point searches.
	nearestAccuracy = 1e-9
)
