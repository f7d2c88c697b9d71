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

// Package preview renders paths into grayscale images, for checking the
// output of the curve fitting code by eye.
package preview

import (
	"image"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Rasterizer converts paths into per-pixel coverage values.
//
// Paths are given in user space and mapped to device space by CTM.
// Coverage is only computed for device pixels inside Clip.
type Rasterizer struct {
	// CTM maps user space coordinates to device pixels.
	CTM matrix.Matrix

	// Clip is the device space region which receives coverage.
	Clip rect.Rect

	// Flatness is the maximum distance, in device pixels, between a curve
	// and the polygon used to approximate it.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap sets the style for the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join sets the style for corners between segments.
	Join graphics.LineJoinStyle

	// MiterLimit caps the length of miter joins. Must be at least 1.
	MiterLimit float64

	vr  *vector.Rasterizer
	buf *image.Alpha
	row []float32

	// flattened subpaths, in user space
	pts      []vec.Vec2
	offsets  []int
	closed   []bool
	isolated []vec.Vec2
}

// NewRasterizer returns a Rasterizer with the given clip rectangle, an
// identity transformation and a stroke width of one unit.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapRound,
		Join:       graphics.LineJoinRound,
		MiterLimit: defaultMiterLimit,
	}
}

// Fill computes the coverage of the interior of p under the nonzero
// winding rule. Open subpaths are closed implicitly. The emit callback
// receives coverage row by row, left to right, with zero runs at either
// end removed. Its slice argument is only valid during the call.
func (r *Rasterizer) Fill(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	r.begin()
	for i := range r.offsets {
		pts := r.subpath(i)
		if len(pts) < 3 {
			continue
		}
		r.addRing(pts)
	}
	r.finish(emit)
}

// Stroke computes the coverage of the outline of p, using Width, Cap,
// Join and MiterLimit. The emit callback is called as for [Rasterizer.Fill].
func (r *Rasterizer) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	r.begin()
	d := r.Width / 2
	if d <= 0 {
		return
	}

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.isolated {
			r.addCircle(pt, d)
		}
	}

	for i := range r.offsets {
		pts := r.subpath(i)
		closed := r.closed[i]
		n := len(pts) - 1
		if closed {
			n = len(pts)
		}
		for j := range n {
			a, b := pts[j], pts[(j+1)%len(pts)]
			r.addBody(a, b, d)
		}

		for j := range pts {
			if !closed && (j == 0 || j == len(pts)-1) {
				continue
			}
			prev := pts[(j+len(pts)-1)%len(pts)]
			next := pts[(j+1)%len(pts)]
			r.addJoin(prev, pts[j], next, d)
		}

		if !closed {
			r.addCap(pts[1], pts[0], d)
			r.addCap(pts[len(pts)-2], pts[len(pts)-1], d)
		}
	}
	r.finish(emit)
}

// flatten converts p into polygons in user space. Subpaths without any
// extent are collected in r.isolated.
func (r *Rasterizer) flatten(p *path.Data) {
	r.pts = r.pts[:0]
	r.offsets = r.offsets[:0]
	r.closed = r.closed[:0]
	r.isolated = r.isolated[:0]
	if p == nil {
		return
	}

	start := 0
	inSubpath := false
	var first vec.Vec2
	endSubpath := func(closed bool) {
		if !inSubpath {
			return
		}
		pts := r.pts[start:]
		if closed && len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			r.pts = r.pts[:len(r.pts)-1]
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 2 {
			r.isolated = append(r.isolated, first)
			r.pts = r.pts[:start]
		} else {
			r.offsets = append(r.offsets, start)
			r.closed = append(r.closed, closed)
		}
		inSubpath = false
	}
	add := func(_, to vec.Vec2) {
		if to.Sub(r.pts[len(r.pts)-1]).Length() < zeroLengthThreshold {
			return
		}
		r.pts = append(r.pts, to)
	}

	var current vec.Vec2
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			endSubpath(false)
			start = len(r.pts)
			first = pts[0]
			current = pts[0]
			r.pts = append(r.pts, current)
			inSubpath = true
		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			add(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			r.flattenQuadratic(current, pts[0], pts[1], add)
			current = pts[1]
		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			r.flattenCubic(current, pts[0], pts[1], pts[2], add)
			current = pts[2]
		case path.CmdClose:
			endSubpath(true)
			current = first
		}
	}
	endSubpath(false)
}

func (r *Rasterizer) subpath(i int) []vec.Vec2 {
	end := len(r.pts)
	if i+1 < len(r.offsets) {
		end = r.offsets[i+1]
	}
	return r.pts[r.offsets[i]:end]
}

// transformLinear applies the 2×2 linear part of CTM to v.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) toDevice(v vec.Vec2) vec.Vec2 {
	return r.transformLinear(v).Add(vec.Vec2{X: r.CTM[4], Y: r.CTM[5]})
}

// flattenQuadratic approximates a quadratic Bézier curve by line
// segments, calling emit for each of them.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := r.transformLinear(e).Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// calling emit for each of them. The number of segments is chosen using
// Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = min(int(math.Ceil(nf)), maxCurvePieces)
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// addBody adds the rectangle covered by the stroke of the line from a to b.
func (r *Rasterizer) addBody(a, b vec.Vec2, d float64) {
	t := b.Sub(a)
	l := t.Length()
	if l < zeroLengthThreshold {
		return
	}
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d / l)
	r.addPolygon([]vec.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

// addJoin adds the join at vertex p, between the lines from prev to p
// and from p to next.
func (r *Rasterizer) addJoin(prev, p, next vec.Vec2, d float64) {
	t1 := p.Sub(prev)
	t2 := next.Sub(p)
	l1, l2 := t1.Length(), t2.Length()
	if l1 < zeroLengthThreshold || l2 < zeroLengthThreshold {
		return
	}
	t1 = t1.Mul(1 / l1)
	t2 = t2.Mul(1 / l2)
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < collinearityThreshold && t1.Dot(t2) > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addCircle(p, d)
		return
	}

	// outer normals
	sign := 1.0
	if cross > 0 {
		sign = -1
	}
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(sign * d)
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(sign * d)
	o1, o2 := p.Add(n1), p.Add(n2)

	if r.Join == graphics.LineJoinMiter {
		cosTheta := t1.Dot(t2)
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			bis := n1.Add(n2)
			if bl := bis.Length(); bl > zeroLengthThreshold {
				m := p.Add(bis.Mul(d / (sinHalf * bl)))
				r.addPolygon([]vec.Vec2{p, o1, m, o2})
				return
			}
		}
	}
	r.addPolygon([]vec.Vec2{p, o1, o2})
}

// addCap adds the cap at the end point p of the line from q to p.
func (r *Rasterizer) addCap(q, p vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, d)
	case graphics.LineCapSquare:
		t := p.Sub(q)
		l := t.Length()
		if l < zeroLengthThreshold {
			return
		}
		r.addBody(p, p.Add(t.Mul(d/l)), d)
	}
}

// addCircle adds a disk of radius d around c. The number of vertices is
// chosen so that the error stays below Flatness in device space.
func (r *Rasterizer) addCircle(c vec.Vec2, d float64) {
	scale := math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2]))
	rDev := d * scale
	n := minCircleVertices
	if rDev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/rDev)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	n = min(n, maxCurvePieces)

	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := -2 * math.Pi * float64(i) / float64(n)
		pts[i] = c.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(d))
	}
	r.addPolygon(pts)
}

// addPolygon passes a closed polygon to the underlying rasterizer.
// Polygons are normalised to clockwise orientation in user space, so
// that overlapping pieces of a stroke add up instead of cancelling out.
func (r *Rasterizer) addPolygon(pts []vec.Vec2) {
	if area(pts) > 0 {
		pts = slices.Clone(pts)
		slices.Reverse(pts)
	}
	r.addRing(pts)
}

// addRing passes a closed polygon to the underlying rasterizer, keeping
// its orientation.
func (r *Rasterizer) addRing(pts []vec.Vec2) {
	x0, y0 := r.origin()
	dev := r.toDevice(pts[0])
	r.vr.MoveTo(float32(dev.X-x0), float32(dev.Y-y0))
	for _, pt := range pts[1:] {
		dev = r.toDevice(pt)
		r.vr.LineTo(float32(dev.X-x0), float32(dev.Y-y0))
	}
	r.vr.ClosePath()
}

// area returns the signed area of a polygon, positive for counter-clockwise
// orientation.
func area(pts []vec.Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// origin returns the device coordinates of the top left corner of the
// pixel grid covered by Clip.
func (r *Rasterizer) origin() (float64, float64) {
	return math.Floor(r.Clip.LLx), math.Floor(r.Clip.LLy)
}

// gridSize returns the number of pixel columns and rows covered by Clip.
func (r *Rasterizer) gridSize() (int, int) {
	x0, y0 := r.origin()
	w := int(math.Ceil(r.Clip.URx) - x0)
	h := int(math.Ceil(r.Clip.URy) - y0)
	return max(w, 0), max(h, 0)
}

// begin prepares the underlying rasterizer for a new path.
func (r *Rasterizer) begin() {
	w, h := r.gridSize()
	if r.vr == nil {
		r.vr = vector.NewRasterizer(w, h)
	} else {
		r.vr.Reset(w, h)
	}
	r.vr.DrawOp = draw.Src
}

// finish computes the coverage of all polygons added since begin and
// passes the non-empty rows to emit.
func (r *Rasterizer) finish(emit func(y, xMin int, coverage []float32)) {
	w, h := r.gridSize()
	if w == 0 || h == 0 {
		return
	}
	if r.buf == nil || r.buf.Rect.Dx() != w || r.buf.Rect.Dy() != h {
		r.buf = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	r.vr.Draw(r.buf, r.buf.Rect, image.Opaque, image.Point{})

	x0, y0 := r.origin()
	r.row = slices.Grow(r.row[:0], w)[:w]
	for y := range h {
		pix := r.buf.Pix[y*r.buf.Stride : y*r.buf.Stride+w]
		for x, a := range pix {
			r.row[x] = float32(a) / 255
		}
		trimmed, offset := trimZeros(r.row)
		if trimmed != nil {
			emit(int(y0)+y, int(x0)+offset, trimmed)
		}
	}
}

// trimZeros returns the non-zero portion of coverage and its starting offset.
// Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for the rasterizer.
const (
	// zeroLengthThreshold is the minimum length for a polygon edge.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	miterEpsilon = 1e-10

	minCircleVertices = 8

	// maxCurvePieces bounds the number of lines used for a single curve
	// or circle.
	maxCurvePieces = 4096
)
