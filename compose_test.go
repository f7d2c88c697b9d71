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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

func TestFillBetween(t *testing.T) {
	top := polyline(pt(0, 0), pt(10, 0))
	bottom := polyline(pt(10, 10), pt(0, 10))
	bottomRev := polyline(pt(0, 10), pt(10, 10))
	square := polygon(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10))

	cases := []struct {
		name   string
		linked []LinkedPath
		opts   FillOptions
		want   *path.Data
	}{
		{
			name:   "join and close",
			linked: []LinkedPath{{Path: top}, {Path: bottom}},
			opts:   FillOptions{Join: true, Close: true},
			want:   square,
		},
		{
			name:   "reversed flag",
			linked: []LinkedPath{{Path: top}, {Path: bottomRev, Reversed: true}},
			opts:   FillOptions{Join: true, Close: true},
			want:   square,
		},
		{
			name:   "auto reverse",
			linked: []LinkedPath{{Path: top}, {Path: bottomRev}},
			opts:   FillOptions{AutoReverse: true, Join: true, Close: true},
			want:   square,
		},
		{
			name:   "snap",
			linked: []LinkedPath{{Path: top}, {Path: polyline(pt(10.05, 0.05), pt(10, 10))}},
			opts:   FillOptions{Join: true},
			want:   polyline(pt(0, 0), pt(10, 0), pt(10, 10)),
		},
		{
			name:   "separate pieces",
			linked: []LinkedPath{{Path: top}, {Path: bottom}},
			opts:   FillOptions{Close: true},
			want: polygon(pt(0, 0), pt(10, 0)).
				MoveTo(pt(10, 10)).LineTo(pt(0, 10)).Close(),
		},
		{
			name:   "closed paths are skipped",
			linked: []LinkedPath{{Path: top}, {Path: square}},
			opts:   FillOptions{Join: true},
			want:   top,
		},
		{
			name:   "single closed path",
			linked: []LinkedPath{{Path: square}},
			opts:   FillOptions{},
			want:   square,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FillBetween(nil, c.linked, c.opts)
			diffPath(t, c.want, got, 1e-12)
		})
	}
}

func TestFillBetweenEmpty(t *testing.T) {
	fallback := polyline(pt(1, 2), pt(3, 4))
	got := FillBetween(fallback, nil, FillOptions{Close: true})
	diffPath(t, fallback, got, 0)
}

func TestCloneOriginal(t *testing.T) {
	src := polyline(pt(0, 0), pt(1, 1))
	got := CloneOriginal(src, matrix.Identity.Translate(10, 20))
	diffPath(t, polyline(pt(10, 20), pt(11, 21)), got, 1e-12)
}

func TestPowerClip(t *testing.T) {
	clip := polygon(pt(2, 2), pt(8, 2), pt(5, 8))
	bbox := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}

	diffPath(t, clip, PowerClip(clip, bbox, false), 0)

	want := polygon(pt(-1, -1), pt(11, -1), pt(11, 11), pt(-1, 11)).
		MoveTo(pt(2, 2)).LineTo(pt(8, 2)).LineTo(pt(5, 8)).Close()
	diffPath(t, want, PowerClip(clip, bbox, true), 0)
}

func TestBounds(t *testing.T) {
	got := Bounds(circle())
	want := []float64{-1, -1, 1, 1}
	have := []float64{got.LLx, got.LLy, got.URx, got.URy}
	for i := range want {
		if math.Abs(have[i]-want[i]) > 1e-6 {
			t.Errorf("Bounds = %v, want %v", have, want)
			break
		}
	}

	got = Bounds(polyline(pt(3, 5), pt(-2, 1)))
	if got != (rect.Rect{LLx: -2, LLy: 1, URx: 3, URy: 5}) {
		t.Errorf("Bounds = %v", got)
	}
}
