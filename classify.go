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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit/spiro"
)

// NodeType is the continuity class of a node.
type NodeType int

const (
	// NodeNone is used where a node has no neighbour on one side, or where
	// two segments do not meet.
	NodeNone NodeType = iota

	// NodeCusp allows a corner.
	NodeCusp

	// NodeSmooth has collinear handles.
	NodeSmooth

	// NodeSymmetric has collinear handles of equal length.
	NodeSymmetric
)

func (t NodeType) String() string {
	switch t {
	case NodeNone:
		return "none"
	case NodeCusp:
		return "cusp"
	case NodeSmooth:
		return "smooth"
	case NodeSymmetric:
		return "symmetric"
	default:
		return "NodeType(?)"
	}
}

// IsSmooth reports whether the node has a continuous tangent.
func (t NodeType) IsSmooth() bool {
	return t == NodeSmooth || t == NodeSymmetric
}

// IsStraight reports whether the segment is a line, or a cubic whose
// handles lie on the line through its endpoints.
func IsStraight(s Segment) bool {
	if s.Kind == LineKind {
		return true
	}
	chord := s.P3.Sub(s.P0)
	l := chord.Length()
	if l <= nodeTolerance {
		return near(s.P1, s.P0) && near(s.P2, s.P0)
	}
	dist := func(p vec.Vec2) float64 {
		d := p.Sub(s.P0)
		return math.Abs(chord.X*d.Y-chord.Y*d.X) / l
	}
	return dist(s.P1) <= nodeTolerance && dist(s.P2) <= nodeTolerance
}

// ClassifyNode determines the continuity at the node where segment in
// ends and segment out starts.
//
// The result is [NodeNone] if the two segments do not meet. The node is
// smooth if both unit tangents are well defined and point in the same
// direction, and symmetric if in addition both handles have the same
// non-zero length. All other nodes are cusps.
func ClassifyNode(in, out Segment) NodeType {
	if !near(in.P3, out.P0) {
		return NodeNone
	}

	_, t1 := in.tangents()
	t2, _ := out.tangents()
	d1 := unit(t1)
	d2 := unit(t2)
	l1 := d1.Length()
	l2 := d2.Length()
	if l1 <= nodeTolerance || l2 <= nodeTolerance {
		return NodeCusp
	}
	if l1+l2-d1.Add(d2).Length() >= smoothTolerance {
		return NodeCusp
	}

	h1 := in.P3.Sub(in.P2).Length()
	h2 := out.P1.Sub(out.P0).Length()
	if h1 > nodeTolerance && math.Abs(h1-h2) <= nodeTolerance {
		return NodeSymmetric
	}
	return NodeSmooth
}

// SpiroTag returns the spiro control point type for the node between
// segments in and out. A smooth node where exactly one side is straight
// gets a one-sided tag, so that the straight side stays straight.
func SpiroTag(in, out Segment) spiro.Type {
	if !ClassifyNode(in, out).IsSmooth() {
		return spiro.Corner
	}
	inStraight := IsStraight(in)
	outStraight := IsStraight(out)
	switch {
	case inStraight && !outStraight:
		return spiro.Right
	case outStraight && !inStraight:
		return spiro.Left
	default:
		return spiro.G2
	}
}

// Node describes one node of a subpath.
type Node struct {
	Pt   vec.Vec2
	In   vec.Vec2 // incoming handle, Pt if there is none
	Out  vec.Vec2 // outgoing handle, Pt if there is none
	Type NodeType
}

// Nodes lists the nodes of a subpath. The end points of an open subpath
// have type [NodeNone]. A closed subpath with a degenerate closing
// segment has no separate node at its end.
func Nodes(sp Subpath) []Node {
	segs := sp.Loop()
	n := len(segs)
	if n == 0 {
		return nil
	}

	var res []Node
	if sp.Closed {
		res = make([]Node, n)
		for i, s := range segs {
			prev := segs[(i+n-1)%n]
			res[i] = Node{
				Pt:   s.P0,
				In:   prev.P2,
				Out:  s.P1,
				Type: ClassifyNode(prev, s),
			}
		}
		return res
	}

	res = make([]Node, 0, n+1)
	res = append(res, Node{Pt: segs[0].P0, In: segs[0].P0, Out: segs[0].P1})
	for i := 1; i < n; i++ {
		res = append(res, Node{
			Pt:   segs[i].P0,
			In:   segs[i-1].P2,
			Out:  segs[i].P1,
			Type: ClassifyNode(segs[i-1], segs[i]),
		})
	}
	last := segs[n-1]
	res = append(res, Node{Pt: last.P3, In: last.P2, Out: last.P3})
	return res
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// smoothTolerance bounds |d1| + |d2| - |d1 + d2| for unit tangents d1, d2
// at a smooth node.
const smoothTolerance = 1e-3
