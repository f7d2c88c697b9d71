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
	"slices"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// SegmentKind distinguishes straight lines from cubic Béziers.
type SegmentKind int

const (
	LineKind SegmentKind = iota + 1
	CubicKind
)

// Segment is one piece of a subpath.
//
// For a line, the handles coincide with the endpoints (P1 == P0 and
// P2 == P3), so that code reading handles does not need to special-case
// lines.
type Segment struct {
	Kind           SegmentKind
	P0, P1, P2, P3 vec.Vec2
}

// LineSegment returns the straight segment from a to b.
func LineSegment(a, b vec.Vec2) Segment {
	return Segment{Kind: LineKind, P0: a, P1: a, P2: b, P3: b}
}

// CubicSegment returns the cubic Bézier segment with the given control
// points.
func CubicSegment(p0, p1, p2, p3 vec.Vec2) Segment {
	return Segment{Kind: CubicKind, P0: p0, P1: p1, P2: p2, P3: p3}
}

// Start returns the initial point of the segment.
func (s Segment) Start() vec.Vec2 { return s.P0 }

// End returns the final point of the segment.
func (s Segment) End() vec.Vec2 { return s.P3 }

// Chord returns the straight line between the segment's endpoints.
// The B-spline reconstructor uses this as the control segment.
func (s Segment) Chord() curve.Line {
	return curve.Line{P0: toPoint(s.P0), P1: toPoint(s.P3)}
}

// Bez returns the segment as a cubic Bézier. Lines are returned with
// handles on the endpoints.
func (s Segment) Bez() curve.CubicBez {
	return curve.CubicBez{
		P0: toPoint(s.P0),
		P1: toPoint(s.P1),
		P2: toPoint(s.P2),
		P3: toPoint(s.P3),
	}
}

// Eval returns the point at parameter t ∈ [0, 1].
func (s Segment) Eval(t float64) vec.Vec2 {
	if s.Kind == LineKind {
		return lerp(s.P0, s.P3, t)
	}
	return fromPoint(s.Bez().Eval(t))
}

// Reverse returns the segment traversed in the opposite direction.
func (s Segment) Reverse() Segment {
	return Segment{Kind: s.Kind, P0: s.P3, P1: s.P2, P2: s.P1, P3: s.P0}
}

// IsDegenerate reports whether all control points coincide within the
// node tolerance.
func (s Segment) IsDegenerate() bool {
	return near(s.P0, s.P3) && near(s.P0, s.P1) && near(s.P0, s.P2)
}

// Length returns the arc length of the segment.
func (s Segment) Length() float64 {
	if s.Kind == LineKind {
		return s.P3.Sub(s.P0).Length()
	}
	return s.Bez().Arclen(arclenAccuracy)
}

// tangents returns the (not normalised) directions of travel at the start
// and at the end of the segment. Vanishing derivatives are skipped, so a
// cubic with a retracted handle still has a well-defined direction.
func (s Segment) tangents() (vec.Vec2, vec.Vec2) {
	if s.Kind == LineKind {
		d := s.P3.Sub(s.P0)
		return d, d
	}
	d0, d1 := s.Bez().Tangents()
	return vec.Vec2{X: d0.X, Y: d0.Y}, vec.Vec2{X: d1.X, Y: d1.Y}
}

// Subpath is a connected sequence of segments.
//
// The closing segment of a closed subpath is implicit: it runs from the
// end of the last segment back to the start of the first one.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

// Start returns the initial point of the subpath.
func (sp Subpath) Start() vec.Vec2 {
	if len(sp.Segments) == 0 {
		return vec.Vec2{}
	}
	return sp.Segments[0].P0
}

// End returns the final point of the last explicit segment.
func (sp Subpath) End() vec.Vec2 {
	if len(sp.Segments) == 0 {
		return vec.Vec2{}
	}
	return sp.Segments[len(sp.Segments)-1].P3
}

// ClosingSegment returns the implicit line which closes the subpath.
func (sp Subpath) ClosingSegment() Segment {
	return LineSegment(sp.End(), sp.Start())
}

// ClosingDegenerate reports whether the subpath is closed and its closing
// segment has zero length. Such a subpath is treated as closed one node
// earlier: the closing segment contributes no node.
func (sp Subpath) ClosingDegenerate() bool {
	return sp.Closed && len(sp.Segments) > 0 && near(sp.End(), sp.Start())
}

// Loop returns the segments which take part in reconstruction: the
// explicit segments, followed by the closing line if the subpath is closed
// and the closing line has non-zero length.
func (sp Subpath) Loop() []Segment {
	segs := slices.Clone(sp.Segments)
	if sp.Closed && len(segs) > 0 && !sp.ClosingDegenerate() {
		segs = append(segs, sp.ClosingSegment())
	}
	return segs
}

// NodeCount returns the number of distinct nodes of the subpath.
func (sp Subpath) NodeCount() int {
	if len(sp.Segments) == 0 {
		return 0
	}
	if sp.Closed {
		return len(sp.Loop())
	}
	return len(sp.Segments) + 1
}

// Subpaths splits p into its subpaths. Quadratic segments are converted to
// cubics, and subpaths without any segment are dropped. Drawing commands
// which follow a Close without a MoveTo start a new subpath at the
// previous start point.
func Subpaths(p *path.Data) []Subpath {
	if p == nil {
		return nil
	}

	var res []Subpath
	var cur Subpath
	var current, start vec.Vec2
	open := false

	flush := func() {
		if len(cur.Segments) > 0 {
			res = append(res, cur)
		}
		cur = Subpath{}
		open = false
	}
	begin := func() {
		if !open {
			cur = Subpath{}
			current = start
			open = true
		}
	}

	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			start = pts[0]
			current = start
			open = true
		case path.CmdLineTo:
			begin()
			cur.Segments = append(cur.Segments, LineSegment(current, pts[0]))
			current = pts[0]
		case path.CmdCubeTo:
			begin()
			cur.Segments = append(cur.Segments, CubicSegment(current, pts[0], pts[1], pts[2]))
			current = pts[2]
		case path.CmdClose:
			if open {
				cur.Closed = true
			}
			flush()
			current = start
		}
	}
	flush()
	return res
}

// Build assembles subpaths into a path.
func Build(subs []Subpath) *path.Data {
	p := &path.Data{}
	for _, sp := range subs {
		if len(sp.Segments) == 0 {
			continue
		}
		p = p.MoveTo(sp.Start())
		for _, s := range sp.Segments {
			switch s.Kind {
			case LineKind:
				p = p.LineTo(s.P3)
			default:
				p = p.CubeTo(s.P1, s.P2, s.P3)
			}
		}
		if sp.Closed {
			p = p.Close()
		}
	}
	return p
}

// NodeCount returns the total number of nodes in all subpaths of p.
// A zero-length closing segment does not count as a separate node.
func NodeCount(p *path.Data) int {
	n := 0
	for _, sp := range Subpaths(p) {
		n += sp.NodeCount()
	}
	return n
}

// SegmentCount returns the number of segments in p, including non-degenerate
// closing segments.
func SegmentCount(p *path.Data) int {
	n := 0
	for _, sp := range Subpaths(p) {
		n += len(sp.Loop())
	}
	return n
}

// Reverse returns the subpath traversed in the opposite direction.
func Reverse(sp Subpath) Subpath {
	n := len(sp.Segments)
	res := Subpath{Segments: make([]Segment, n), Closed: sp.Closed}
	for i, s := range sp.Segments {
		res.Segments[n-1-i] = s.Reverse()
	}
	return res
}

// AppendContinuous appends src to the end of dst. If the end of dst and
// the start of src agree to within tol in both coordinates, the start of
// src is moved onto the end of dst. Otherwise the gap is bridged by a
// straight line. Closed subpaths cannot be extended; in this case dst is
// returned unchanged.
func AppendContinuous(dst, src Subpath, tol float64) Subpath {
	if dst.Closed || src.Closed {
		return dst
	}
	if len(src.Segments) == 0 {
		return dst
	}
	if len(dst.Segments) == 0 {
		return Subpath{Segments: slices.Clone(src.Segments)}
	}

	res := Subpath{Segments: slices.Clone(dst.Segments)}
	end := dst.End()
	first := src.Segments[0]
	if math.Abs(end.X-first.P0.X) <= tol && math.Abs(end.Y-first.P0.Y) <= tol {
		if first.Kind == LineKind {
			first.P1 = end
		}
		first.P0 = end
	} else {
		res.Segments = append(res.Segments, LineSegment(end, first.P0))
	}
	res.Segments = append(res.Segments, first)
	res.Segments = append(res.Segments, src.Segments[1:]...)
	return res
}

// Transform applies the affine map m to every point of p.
func Transform(p *path.Data, m matrix.Matrix) *path.Data {
	subs := Subpaths(p)
	for i := range subs {
		segs := slices.Clone(subs[i].Segments)
		for j := range segs {
			s := &segs[j]
			s.P0 = apply(m, s.P0)
			s.P1 = apply(m, s.P1)
			s.P2 = apply(m, s.P2)
			s.P3 = apply(m, s.P3)
		}
		subs[i].Segments = segs
	}
	return Build(subs)
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

func toPoint(v vec.Vec2) curve.Point {
	return curve.Pt(v.X, v.Y)
}

func fromPoint(p curve.Point) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func near(a, b vec.Vec2) bool {
	return nearTol(a, b, nodeTolerance)
}

func nearTol(a, b vec.Vec2, tol float64) bool {
	return b.Sub(a).Length() <= tol
}

// Numerical tolerances.
const (
	// nodeTolerance decides whether two points are the same node.
	nodeTolerance = 1e-6

	// arclenAccuracy is the accuracy requested for Bézier arc lengths.
	arclenAccuracy = 1e-6
)
