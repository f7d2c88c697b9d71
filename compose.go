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
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// LinkedPath refers to a path which takes part in a composition.
type LinkedPath struct {
	Path *path.Data

	// Reversed traverses the path from its end to its start.
	Reversed bool
}

// FillOptions controls [FillBetween].
type FillOptions struct {
	// AutoReverse orders and orients the pieces so that each one starts
	// at the free end closest to the end of the previous piece.
	AutoReverse bool

	// Join concatenates all pieces into a single subpath.
	Join bool

	// Close closes the result. Without Join, every piece is closed.
	Close bool
}

// FillBetween builds a shape from the first subpath of each linked path.
//
// Closed subpaths are skipped if there is more than one linked path.
// When pieces are joined, a piece whose start is within 0.1 units of the
// end of the previous piece is snapped onto it; otherwise a straight line
// bridges the gap. If no piece remains, a copy of fallback is returned.
func FillBetween(fallback *path.Data, linked []LinkedPath, opts FillOptions) *path.Data {
	type piece struct {
		sp       Subpath
		reversed bool
	}
	var pieces []piece
	for _, lp := range linked {
		subs := Subpaths(lp.Path)
		if len(subs) == 0 {
			continue
		}
		if subs[0].Closed && len(linked) > 1 {
			continue
		}
		pieces = append(pieces, piece{sp: subs[0], reversed: lp.Reversed})
	}
	if len(pieces) == 0 {
		return clonePath(fallback)
	}

	ordered := make([]Subpath, 0, len(pieces))
	if !opts.AutoReverse {
		for _, pc := range pieces {
			sp := pc.sp
			if pc.reversed {
				sp = Reverse(sp)
			}
			ordered = append(ordered, sp)
		}
	} else {
		first := pieces[0].sp
		if pieces[0].reversed {
			first = Reverse(first)
		}
		ordered = append(ordered, first)
		current := first.End()
		done := make([]bool, len(pieces))
		done[0] = true
		for range len(pieces) - 1 {
			best := -1
			bestDist := 0.0
			bestRev := false
			for j, pc := range pieces {
				if done[j] {
					continue
				}
				ds := pc.sp.Start().Sub(current).Length()
				de := pc.sp.End().Sub(current).Length()
				if best < 0 || ds < bestDist {
					best, bestDist, bestRev = j, ds, false
				}
				if de < bestDist {
					best, bestDist, bestRev = j, de, true
				}
			}
			done[best] = true
			sp := pieces[best].sp
			if bestRev {
				sp = Reverse(sp)
			}
			ordered = append(ordered, sp)
			current = sp.End()
		}
	}

	var res []Subpath
	for _, sp := range ordered {
		if opts.Join && len(res) > 0 {
			res[0] = AppendContinuous(res[0], sp, fillJoinTolerance)
			continue
		}
		if opts.Close && !opts.Join {
			sp.Closed = true
		}
		res = append(res, sp)
	}
	if opts.Close {
		res[0].Closed = true
	}
	return Build(res)
}

// CloneOriginal returns a copy of src, transformed by m.
func CloneOriginal(src *path.Data, m matrix.Matrix) *path.Data {
	return Transform(src, m)
}

// PowerClip returns the outline used to clip an item with bounding box
// bbox. With inverse set, a rectangle one unit larger than bbox is
// prepended, so that under the even-odd rule the clip selects everything
// outside of clip.
func PowerClip(clip *path.Data, bbox rect.Rect, inverse bool) *path.Data {
	if !inverse {
		return clonePath(clip)
	}
	x0, y0 := bbox.LLx-1, bbox.LLy-1
	x1, y1 := bbox.URx+1, bbox.URy+1
	frame := Subpath{
		Segments: []Segment{
			LineSegment(vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0}),
			LineSegment(vec.Vec2{X: x1, Y: y0}, vec.Vec2{X: x1, Y: y1}),
			LineSegment(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1}),
		},
		Closed: true,
	}
	return Build(append([]Subpath{frame}, Subpaths(clip)...))
}

// Bounds returns the smallest rectangle which contains p.
// The result is the zero rectangle if p has no segments.
func Bounds(p *path.Data) rect.Rect {
	var bb curve.Rect
	first := true
	for _, sp := range Subpaths(p) {
		for _, s := range sp.Loop() {
			var b curve.Rect
			if s.Kind == LineKind {
				b = s.Chord().BoundingBox().Abs()
			} else {
				b = s.Bez().BoundingBox().Abs()
			}
			if first {
				bb = b
				first = false
			} else {
				bb = bb.Union(b)
			}
		}
	}
	return rect.Rect{LLx: bb.MinX(), LLy: bb.MinY(), URx: bb.MaxX(), URy: bb.MaxY()}
}

// fillJoinTolerance is the snap distance used by FillBetween.
const fillJoinTolerance = 0.1
