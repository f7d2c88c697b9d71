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

package pen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit"
)

type recorder struct {
	calls []*path.Data
}

func (r *recorder) Redraw(fitted *path.Data) {
	r.calls = append(r.calls, fitted)
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func assertNear(t *testing.T, want, got vec.Vec2, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x coordinate of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "y coordinate of %v", got)
}

// click places a node at p.
func click(o *Overlay, p vec.Vec2, shift bool) {
	o.Motion(p, shift)
	o.Press(p, shift)
	o.Release(p, shift)
}

func segments(t *testing.T, p *path.Data) []pathfit.Segment {
	t.Helper()
	subs := pathfit.Subpaths(p)
	require.Len(t, subs, 1)
	return subs[0].Segments
}

func TestDrawBSpline(t *testing.T) {
	rec := &recorder{}
	opts := DefaultOptions()
	opts.Renderer = rec
	o := New(opts)
	assert.Equal(t, Stop, o.State())

	o.Start(pt(0, 0), false, nil)
	assert.Equal(t, Point, o.State())

	o.Motion(pt(10, 0), false)
	segs := segments(t, o.Skeleton())
	require.Len(t, segs, 1)
	assertNear(t, pt(10./3, 0), segs[0].P1, 1e-3)
	assertNear(t, pt(20./3, 0), segs[0].P2, 1e-3)
	assert.Empty(t, rec.calls, "motion must not trigger a refit")

	o.Press(pt(10, 0), false)
	assert.Equal(t, Control, o.State())
	assert.Len(t, rec.calls, 1)
	o.Release(pt(10, 0), false)
	assert.Equal(t, Point, o.State())

	// the next segment continues with the weight of the previous one
	o.Motion(pt(10, 10), false)
	segs = segments(t, o.Skeleton())
	require.Len(t, segs, 2)
	assertNear(t, pt(10, 10./3), segs[1].P1, 1e-3)
	o.Press(pt(10, 10), false)
	o.Release(pt(10, 10), false)
	assert.Len(t, rec.calls, 2)

	res, err := o.Finish(false)
	require.NoError(t, err)
	assert.False(t, res.Closed)
	assert.Equal(t, 3, pathfit.NodeCount(res.Skeleton))
	assert.Equal(t, Stop, o.State())

	// the interior node of the fitted curve moves into the corner
	fitted := segments(t, res.Fitted)
	require.Len(t, fitted, 2)
	assertNear(t, pt(0, 0), fitted[0].P0, 1e-9)
	assertNear(t, pt(25./3, 5./3), fitted[0].P3, 1e-3)
	assertNear(t, pt(10, 10), fitted[1].P3, 1e-9)
}

func TestShiftMakesCusp(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), true)

	segs := segments(t, o.Skeleton())
	assert.Equal(t, pt(10, 0), segs[0].P2)

	// the segment after a cusp starts with a retracted handle
	o.Motion(pt(10, 10), false)
	segs = segments(t, o.Skeleton())
	require.Len(t, segs, 2)
	assert.Equal(t, pt(10, 0), segs[1].P1)
}

func TestDragTogglesNode(t *testing.T) {
	rec := &recorder{}
	opts := DefaultOptions()
	opts.Renderer = rec
	o := New(opts)
	o.Start(pt(0, 0), false, nil)
	o.Motion(pt(9, 0), false)
	o.Press(pt(9, 0), false)
	require.Equal(t, Control, o.State())

	o.Drag(pt(9, 1), true)
	segs := segments(t, o.Skeleton())
	assert.Equal(t, pt(9, 0), segs[0].P2)
	assert.Len(t, rec.calls, 2)

	// dragging again without change does not refit
	o.Drag(pt(9, 2), true)
	assert.Len(t, rec.calls, 2)

	o.Drag(pt(9, 3), false)
	segs = segments(t, o.Skeleton())
	assertNear(t, pt(6, 0), segs[0].P2, 1e-3)
}

func TestCancel(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), false)
	o.Motion(pt(20, 5), false)
	require.Len(t, segments(t, o.Skeleton()), 2)

	o.Cancel()
	assert.Equal(t, Stop, o.State())
	assert.Len(t, segments(t, o.Skeleton()), 1)

	// input after cancelling is ignored
	o.Motion(pt(30, 5), false)
	o.Press(pt(30, 5), false)
	assert.Len(t, segments(t, o.Skeleton()), 1)

	res, err := o.Finish(false)
	require.NoError(t, err)
	assert.Equal(t, 2, pathfit.NodeCount(res.Skeleton))
}

func TestUndo(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), false)
	click(o, pt(10, 10), false)
	click(o, pt(20, 10), false)
	require.Len(t, segments(t, o.Skeleton()), 3)

	o.Undo()
	segs := segments(t, o.Skeleton())
	require.Len(t, segs, 2)
	assert.Equal(t, pt(10, 10), segs[1].P3)
	assert.Equal(t, Point, o.State())

	o.Undo()
	o.Undo()
	o.Undo()
	_, err := o.Finish(false)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFinishEmpty(t *testing.T) {
	o := New(DefaultOptions())
	_, err := o.Finish(false)
	assert.ErrorIs(t, err, ErrEmpty)

	o.Start(pt(0, 0), false, nil)
	o.Motion(pt(5, 5), false)
	_, err = o.Finish(false)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestClosePath(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), false)
	click(o, pt(10, 10), false)

	o.Motion(pt(1, 1), false)
	assert.Equal(t, Close, o.State())
	segs := segments(t, o.Skeleton())
	assert.Equal(t, pt(0, 0), segs[len(segs)-1].P3)

	o.Motion(pt(8, 8), false)
	assert.Equal(t, Point, o.State())

	o.Motion(pt(1, -1), false)
	o.Press(pt(1, -1), false)
	assert.Equal(t, Stop, o.State())

	res, err := o.Finish(false)
	require.NoError(t, err)
	assert.True(t, res.Closed)
	assert.Equal(t, 3, pathfit.NodeCount(res.Skeleton))

	sp := pathfit.Subpaths(res.Fitted)[0]
	assert.True(t, sp.Closed)
	assert.InDelta(t, 0, sp.End().Sub(sp.Start()).Length(), 1e-9)
	assert.Equal(t, 3, pathfit.NodeCount(res.Fitted))
}

func TestPressPosition(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	o.Motion(pt(5, 5), false)
	o.Press(pt(20, 0), false)
	o.Release(pt(20, 0), false)

	segs := segments(t, o.Skeleton())
	require.Len(t, segs, 1)
	assert.Equal(t, pt(0, 0), segs[0].P0)
	assert.Equal(t, pt(20, 0), segs[0].P3)
}

func TestUndoClose(t *testing.T) {
	o := New(DefaultOptions())
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), false)
	click(o, pt(10, 10), false)
	click(o, pt(1, -1), false)
	require.Equal(t, Stop, o.State())

	o.Undo()
	assert.Equal(t, Point, o.State())

	click(o, pt(0, 10), false)
	res, err := o.Finish(false)
	require.NoError(t, err)
	assert.False(t, res.Closed)
	assert.Equal(t, 4, pathfit.NodeCount(res.Skeleton))
	segs := segments(t, res.Skeleton)
	assert.Equal(t, pt(0, 10), segs[len(segs)-1].P3)
}

func TestAnchor(t *testing.T) {
	for _, anchor := range []*Anchor{
		{Path: (&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(5, 0))},
		{Path: (&path.Data{}).MoveTo(pt(5, 0)).LineTo(pt(0, 0)), Start: true},
	} {
		o := New(DefaultOptions())
		o.Start(pt(100, 100), false, anchor)
		click(o, pt(5, 5), false)

		res, err := o.Finish(false)
		require.NoError(t, err)
		segs := segments(t, res.Skeleton)
		require.Len(t, segs, 2)
		assert.Equal(t, pt(0, 0), segs[0].P0)
		assert.Equal(t, pt(5, 0), segs[0].P3)
		assert.Equal(t, pt(5, 5), segs[1].P3)

		// the node at the anchor was made smooth
		assertNear(t, pt(5-5./3, 0), segs[0].P2, 1e-3)
	}
}

func TestAnchorShiftCusp(t *testing.T) {
	anchor := &Anchor{Path: (&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(5, 0))}
	o := New(DefaultOptions())
	o.Start(pt(5, 0), true, anchor)
	o.Motion(pt(5, 5), false)
	segs := segments(t, o.Skeleton())
	require.Len(t, segs, 2)
	assert.Equal(t, pt(5, 0), segs[0].P2)
	assert.Equal(t, pt(5, 0), segs[1].P1)
}

func TestSpiroMode(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = Spiro
	o := New(opts)
	o.Start(pt(0, 0), false, nil)
	click(o, pt(10, 0), false)

	// the next handle mirrors the previous one
	o.Motion(pt(20, 5), false)
	segs := segments(t, o.Skeleton())
	require.Len(t, segs, 2)
	mirror := segs[0].P3.Add(segs[0].P3.Sub(segs[0].P2))
	assertNear(t, mirror, segs[1].P1, 1e-3)
	o.Press(pt(20, 5), false)
	o.Release(pt(20, 5), false)

	res, err := o.Finish(false)
	require.NoError(t, err)
	for _, s := range segments(t, res.Fitted) {
		assert.False(t, math.IsNaN(s.P1.X) || math.IsNaN(s.P2.Y))
	}
	fitted := pathfit.Subpaths(res.Fitted)[0]
	assert.Equal(t, pt(0, 0), fitted.Start())
	assert.Equal(t, pt(20, 5), fitted.End())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "close", Close.String())
	assert.Equal(t, "point", Point.String())
}
