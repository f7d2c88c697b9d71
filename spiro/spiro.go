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

// Package spiro fits curvature-continuous splines through typed control
// points.
//
// Each segment between two control points is a piece of a polynomial
// spiral: its tangent angle is a quartic polynomial in arc length.
// The four coefficients of every segment are found by Newton iteration
// such that the constraints implied by the control point types hold
// (continuous tangent, continuous curvature and so on). The fitted
// spline is finally converted to cubic Bézier segments.
//
// A spline whose first control point has type [OpenStart] is open.
// All other splines are closed, the segment from the last control point
// back to the first one being part of the curve.
package spiro

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Type describes the constraints at a control point.
type Type byte

// These are the control point types. The values match the characters
// used in the plate file format.
const (
	// Corner allows a discontinuous tangent.
	Corner Type = 'v'

	// G4 requires continuity up to the second derivative of curvature.
	G4 Type = 'o'

	// G2 requires continuous tangent and curvature.
	G2 Type = 'c'

	// Left marks the transition from a curve into a straight line.
	// The tangent is continuous, the curvature is not.
	Left Type = '['

	// Right marks the transition from a straight line into a curve.
	Right Type = ']'

	// OpenStart marks the first point of an open spline.
	OpenStart Type = '{'

	// OpenEnd marks the last point of an open spline.
	OpenEnd Type = '}'
)

func (t Type) String() string {
	return string(rune(t))
}

func (t Type) valid() bool {
	switch t {
	case Corner, G4, G2, Left, Right, OpenStart, OpenEnd:
		return true
	}
	return false
}

// ControlPoint is a point the spline passes through.
type ControlPoint struct {
	Pt   vec.Vec2
	Type Type
}

// Segment is one solved piece of a spline.
//
// Ks holds the curvature polynomial of the segment, normalised to a
// segment of unit length centred at parameter zero.
type Segment struct {
	Start vec.Vec2
	Type  Type
	Ks    [4]float64

	bendTh float64
	segCh  float64
	segTh  float64
}

var (
	// ErrTooFewPoints is returned when a spline has less than two
	// control points.
	ErrTooFewPoints = errors.New("spiro: too few control points")

	// ErrNotFinite is returned when the input contains NaN or infinite
	// coordinates, or when the solver produced non-finite coefficients.
	ErrNotFinite = errors.New("spiro: non-finite value")

	// ErrNotConverged is returned when the Newton iteration has not
	// settled after the maximum number of steps.
	ErrNotConverged = errors.New("spiro: solver did not converge")
)

// Solve fits a spline through the given control points.
//
// The returned slice has one more element than the spline has segments.
// The last element only carries the end point of the spline; for a closed
// spline this is a copy of the first control point.
func Solve(cps []ControlPoint) ([]Segment, error) {
	n := len(cps)
	if n < 2 {
		return nil, ErrTooFewPoints
	}
	for i, cp := range cps {
		if !cp.Type.valid() {
			return nil, fmt.Errorf("spiro: control point %d: invalid type %q", i, byte(cp.Type))
		}
		if !isFinite(cp.Pt.X) || !isFinite(cp.Pt.Y) {
			return nil, fmt.Errorf("control point %d: %w", i, ErrNotFinite)
		}
	}

	segs := setupPath(cps)
	nSeg := len(segs) - 1
	steps, norm := solve(segs, nSeg)

	for i := range nSeg {
		for _, k := range segs[i].Ks {
			if !isFinite(k) {
				return nil, fmt.Errorf("segment %d: %w", i, ErrNotFinite)
			}
		}
	}
	if norm > maxFinalNorm {
		return nil, fmt.Errorf("%w after %d steps (update norm %g)",
			ErrNotConverged, steps, norm)
	}
	return segs, nil
}

// ToPath converts solved segments into a path of lines and cubic Bézier
// curves. Segments without bending become straight lines. The path is
// closed if the spline is closed.
func ToPath(segs []Segment) *path.Data {
	p := &path.Data{}
	if len(segs) < 2 {
		return p
	}
	p = p.MoveTo(segs[0].Start)
	for i := range len(segs) - 1 {
		p = segmentToPath(p, segs[i].Ks, segs[i].Start, segs[i+1].Start, 0)
	}
	if segs[0].Type != OpenStart {
		p = p.Close()
	}
	return p
}

// Fit is a shortcut for [Solve] followed by [ToPath].
func Fit(cps []ControlPoint) (*path.Data, error) {
	segs, err := Solve(cps)
	if err != nil {
		return nil, err
	}
	return ToPath(segs), nil
}

// setupPath allocates the segments and fills in chord lengths, chord
// angles and the bend angles at the control points.
func setupPath(cps []ControlPoint) []Segment {
	n := len(cps)
	nSeg := n
	if cps[0].Type == OpenStart {
		nSeg = n - 1
	}

	segs := make([]Segment, nSeg+1)
	for i := range nSeg + 1 {
		cp := cps[i%n]
		segs[i].Start = cp.Pt
		segs[i].Type = cp.Type
	}

	for i := range nSeg {
		d := segs[i+1].Start.Sub(segs[i].Start)
		segs[i].segCh = math.Hypot(d.X, d.Y)
		segs[i].segTh = math.Atan2(d.Y, d.X)
	}

	last := nSeg - 1
	for i := range nSeg {
		switch segs[i].Type {
		case OpenStart, OpenEnd, Corner:
			segs[i].bendTh = 0
		default:
			segs[i].bendTh = mod2pi(segs[i].segTh - segs[last].segTh)
		}
		last = i
	}
	return segs
}

// segmentToPath appends the curve for one solved segment, from p0 to p1,
// to p. Strongly bent segments are subdivided.
func segmentToPath(p *path.Data, ks [4]float64, p0, p1 vec.Vec2, depth int) *path.Data {
	bend := math.Abs(ks[0]) + math.Abs(.5*ks[1]) + math.Abs(.125*ks[2]) +
		math.Abs((1./48)*ks[3])

	if !(bend > straightBend) {
		return p.LineTo(p1)
	}

	d := p1.Sub(p0)
	segCh := math.Hypot(d.X, d.Y)
	segTh := math.Atan2(d.Y, d.X)

	x, y := integrate(ks)
	ch := math.Hypot(x, y)
	th := math.Atan2(y, x)
	scale := segCh / ch
	rot := segTh - th

	if depth > maxSubdivision || bend < 1 {
		thEven := (1./384)*ks[3] + (1./8)*ks[1] + rot
		thOdd := (1./48)*ks[2] + .5*ks[0]
		s := scale * (1. / 3)
		ul := vec.Vec2{X: s * math.Cos(thEven-thOdd), Y: s * math.Sin(thEven-thOdd)}
		ur := vec.Vec2{X: s * math.Cos(thEven+thOdd), Y: s * math.Sin(thEven+thOdd)}
		return p.CubeTo(p0.Add(ul), p1.Sub(ur), p1)
	}

	// Split at the middle and re-centre the curvature polynomial of the
	// left half.
	var ksub [4]float64
	ksub[0] = .5*ks[0] - .125*ks[1] + (1./64)*ks[2] - (1./768)*ks[3]
	ksub[1] = .25*ks[1] - (1./16)*ks[2] + (1./128)*ks[3]
	ksub[2] = .125*ks[2] - (1./32)*ks[3]
	ksub[3] = (1. / 16) * ks[3]
	thsub := rot - .25*ks[0] + (1./32)*ks[1] - (1./384)*ks[2] + (1./6144)*ks[3]
	cth := .5 * scale * math.Cos(thsub)
	sth := .5 * scale * math.Sin(thsub)
	xs, ys := integrate(ksub)
	mid := vec.Vec2{
		X: p0.X + cth*xs - sth*ys,
		Y: p0.Y + cth*ys + sth*xs,
	}
	p = segmentToPath(p, ksub, p0, mid, depth+1)

	ksub[0] += .25*ks[1] + (1./384)*ks[3]
	ksub[1] += .125 * ks[2]
	ksub[2] += (1. / 16) * ks[3]
	return segmentToPath(p, ksub, mid, p1, depth+1)
}

func mod2pi(th float64) float64 {
	u := th / (2 * math.Pi)
	return 2 * math.Pi * (u - math.Floor(u+0.5))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

const (
	// straightBend is the total bending below which a segment is
	// emitted as a straight line.
	straightBend = 1e-8

	// maxSubdivision limits the recursion depth in segmentToPath.
	maxSubdivision = 5
)
