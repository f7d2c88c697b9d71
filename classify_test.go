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
	"testing"

	"seehuhn.de/go/pathfit/spiro"
)

func TestIsStraight(t *testing.T) {
	cases := []struct {
		name string
		s    Segment
		want bool
	}{
		{"line", LineSegment(pt(0, 0), pt(5, 5)), true},
		{"collinear cubic", CubicSegment(pt(0, 0), pt(1, 1), pt(4, 4), pt(5, 5)), true},
		{"handle outside the chord", CubicSegment(pt(0, 0), pt(-1, -1), pt(6, 6), pt(5, 5)), true},
		{"curved", CubicSegment(pt(0, 0), pt(0, 1), pt(4, 4), pt(5, 5)), false},
		{"degenerate chord", CubicSegment(pt(1, 1), pt(1, 1), pt(1, 1), pt(1, 1)), true},
		{"loop", CubicSegment(pt(1, 1), pt(2, 3), pt(0, 3), pt(1, 1)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsStraight(c.s); got != c.want {
				t.Errorf("IsStraight = %t, want %t", got, c.want)
			}
		})
	}
}

func TestClassifyNode(t *testing.T) {
	cases := []struct {
		name    string
		in, out Segment
		want    NodeType
	}{
		{
			name: "collinear lines",
			in:   LineSegment(pt(0, 0), pt(1, 0)),
			out:  LineSegment(pt(1, 0), pt(3, 0)),
			want: NodeSmooth,
		},
		{
			name: "corner",
			in:   LineSegment(pt(0, 0), pt(1, 0)),
			out:  LineSegment(pt(1, 0), pt(1, 1)),
			want: NodeCusp,
		},
		{
			name: "reversal",
			in:   LineSegment(pt(0, 0), pt(1, 0)),
			out:  LineSegment(pt(1, 0), pt(0, 0)),
			want: NodeCusp,
		},
		{
			name: "symmetric handles",
			in:   CubicSegment(pt(0, 0), pt(0, 1), pt(1, 2), pt(2, 2)),
			out:  CubicSegment(pt(2, 2), pt(3, 2), pt(4, 1), pt(4, 0)),
			want: NodeSymmetric,
		},
		{
			name: "smooth handles",
			in:   CubicSegment(pt(0, 0), pt(0, 1), pt(1, 2), pt(2, 2)),
			out:  CubicSegment(pt(2, 2), pt(5, 2), pt(4, 1), pt(4, 0)),
			want: NodeSmooth,
		},
		{
			name: "retracted handle uses the next control point",
			in:   CubicSegment(pt(0, 0), pt(0, 1), pt(2, 2), pt(2, 2)),
			out:  LineSegment(pt(2, 2), pt(4, 2)),
			want: NodeCusp,
		},
		{
			name: "disconnected",
			in:   LineSegment(pt(0, 0), pt(1, 0)),
			out:  LineSegment(pt(2, 0), pt(3, 0)),
			want: NodeNone,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyNode(c.in, c.out); got != c.want {
				t.Errorf("ClassifyNode = %s, want %s", got, c.want)
			}
		})
	}
}

func TestSpiroTag(t *testing.T) {
	line := LineSegment(pt(0, 0), pt(2, 0))
	curveOut := CubicSegment(pt(2, 0), pt(3, 0), pt(4, 1), pt(4, 2))
	curveIn := CubicSegment(pt(0, -2), pt(0, -1), pt(1, 0), pt(2, 0))
	lineOut := LineSegment(pt(2, 0), pt(4, 0))
	corner := LineSegment(pt(2, 0), pt(2, 3))

	cases := []struct {
		name    string
		in, out Segment
		want    spiro.Type
	}{
		{"line into curve", line, curveOut, spiro.Right},
		{"curve into line", curveIn, lineOut, spiro.Left},
		{"curve into curve", curveIn, curveOut, spiro.G2},
		{"line into line", line, lineOut, spiro.G2},
		{"corner", line, corner, spiro.Corner},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SpiroTag(c.in, c.out); got != c.want {
				t.Errorf("SpiroTag = %s, want %s", got, c.want)
			}
		})
	}
}

func TestNodes(t *testing.T) {
	open := Subpaths(polyline(pt(0, 0), pt(10, 0), pt(20, 0), pt(20, 10)))[0]
	nodes := Nodes(open)
	want := []NodeType{NodeNone, NodeSmooth, NodeCusp, NodeNone}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Type != want[i] {
			t.Errorf("node %d: got %s, want %s", i, n.Type, want[i])
		}
	}
	if nodes[3].Pt != pt(20, 10) {
		t.Errorf("last node at %v", nodes[3].Pt)
	}

	// A degenerate closing segment must not produce an extra node.
	closed := Subpaths(polygon(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 0)))[0]
	nodes = Nodes(closed)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	for i, n := range nodes {
		if n.Type != NodeCusp {
			t.Errorf("node %d: got %s, want cusp", i, n.Type)
		}
	}
}
