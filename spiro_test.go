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
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/pathfit/spiro"
)

func TestControlPointsOpen(t *testing.T) {
	sp := Subpaths(polyline(pt(0, 0), pt(10, 0), pt(20, 0), pt(20, 10)))[0]
	cps := ControlPoints(sp)
	want := []spiro.ControlPoint{
		{Pt: pt(0, 0), Type: spiro.OpenStart},
		{Pt: pt(10, 0), Type: spiro.G2},
		{Pt: pt(20, 0), Type: spiro.Corner},
		{Pt: pt(20, 10), Type: spiro.OpenEnd},
	}
	diff(t, want, cps)
}

func TestControlPointsClosed(t *testing.T) {
	// an explicit segment back to the start does not add a point
	sp := Subpaths(polygon(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10), pt(0, 0)))[0]
	cps := ControlPoints(sp)
	want := []spiro.ControlPoint{
		{Pt: pt(0, 0), Type: spiro.Corner},
		{Pt: pt(10, 0), Type: spiro.Corner},
		{Pt: pt(10, 10), Type: spiro.Corner},
		{Pt: pt(0, 10), Type: spiro.Corner},
	}
	diff(t, want, cps)

	cps = ControlPoints(Subpaths(circle())[0])
	if len(cps) != 4 {
		t.Fatalf("got %d control points, want 4", len(cps))
	}
	for i, cp := range cps {
		if cp.Type != spiro.G2 {
			t.Errorf("point %d: got type %s, want c", i, cp.Type)
		}
	}
}

func TestReconstructSpiroSingleSegment(t *testing.T) {
	p := (&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(1, 2), pt(3, 2), pt(4, 0))
	diffPath(t, p, ReconstructSpiro(p), 0)
}

func TestReconstructSpiroCorners(t *testing.T) {
	p := polyline(pt(0, 0), pt(10, 0), pt(10, 10))
	diffPath(t, p, ReconstructSpiro(p), 0)
}

func TestReconstructSpiroCircle(t *testing.T) {
	res := ReconstructSpiro(circle())
	subs := Subpaths(res)
	if len(subs) != 1 || !subs[0].Closed {
		t.Fatalf("unexpected result %v", subs)
	}
	if got := NodeCount(res); got < 4 {
		t.Errorf("got %d nodes, want at least 4", got)
	}
	for _, s := range subs[0].Segments {
		if r := s.P3.Length(); math.Abs(r-1) > 1e-6 {
			t.Errorf("node %v has radius %g", s.P3, r)
		}
		if r := s.Eval(0.5).Length(); math.Abs(r-1) > 5e-3 {
			t.Errorf("curve point %v has radius %g", s.Eval(0.5), r)
		}
	}
}

func TestReconstructSpiroSubpaths(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(pt(100, 100)).
		CubeTo(pt(101, 102), pt(103, 102), pt(104, 100)).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(10, 10)).
		LineTo(pt(0, 10)).
		Close()

	res := ReconstructSpiro(p)
	subs := Subpaths(res)
	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}
	if subs[0].Start() != pt(100, 100) || subs[1].Start() != pt(0, 0) {
		t.Errorf("subpaths out of order: %v, %v", subs[0].Start(), subs[1].Start())
	}
	if got := NodeCount(res); got != NodeCount(p) {
		t.Errorf("got %d nodes, want %d", got, NodeCount(p))
	}
}

func TestReconstructSpiroFallback(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := polyline(pt(0, 0), pt(math.Inf(1), 1), pt(2, 0))
	res := ReconstructSpiro(p)
	diff(t, p.Cmds, res.Cmds)
	if !strings.Contains(buf.String(), "spiro fit failed") {
		t.Errorf("no warning logged, got %q", buf.String())
	}
}

func TestReconstructSpiroNotConverged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	// steep zigzag with horizontal tangents at every interior node
	const h = 0.3
	p := (&path.Data{}).
		MoveTo(pt(0, 0)).
		CubeTo(pt(h, 3), pt(1-h, 10), pt(1, 10)).
		CubeTo(pt(1+h, 10), pt(2-h, -10), pt(2, -10)).
		CubeTo(pt(2+h, -10), pt(3-h, 10), pt(3, 10)).
		CubeTo(pt(3+h, 10), pt(4-h, -10), pt(4, -10)).
		CubeTo(pt(4+h, -10), pt(5, -3), pt(5, 0))

	cps := ControlPoints(Subpaths(p)[0])
	for _, cp := range cps[1 : len(cps)-1] {
		if cp.Type != spiro.G2 {
			t.Fatalf("node %v: got type %s, want %s", cp.Pt, cp.Type, spiro.G2)
		}
	}

	res := ReconstructSpiro(p)
	diff(t, p.Cmds, res.Cmds)
	diff(t, p.Coords, res.Coords)
	if !strings.Contains(buf.String(), "did not converge after 10 steps") {
		t.Errorf("no convergence warning logged, got %q", buf.String())
	}
}

// circle returns a closed path of four cubics approximating the unit
// circle.
func circle() *path.Data {
	const k = 0.5522847498
	return (&path.Data{}).
		MoveTo(pt(1, 0)).
		CubeTo(pt(1, k), pt(k, 1), pt(0, 1)).
		CubeTo(pt(-k, 1), pt(-1, k), pt(-1, 0)).
		CubeTo(pt(-1, -k), pt(-k, -1), pt(0, -1)).
		CubeTo(pt(k, -1), pt(1, -k), pt(1, 0)).
		Close()
}
