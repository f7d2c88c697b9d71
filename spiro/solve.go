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

package spiro

import "math"

// integrate returns the end-to-end vector of a unit-length polynomial
// spiral with curvature coefficients ks, integrated over [-1/2, 1/2].
// The tangent angle is θ(s) = k0 s + k1 s²/2 + k2 s³/6 + k3 s⁴/24.
func integrate(ks [4]float64) (x, y float64) {
	const h = 1. / integrationPanels
	for i := range integrationPanels {
		mid := -.5 + (float64(i)+.5)*h
		for j, node := range gaussNodes {
			s := mid + .5*h*node
			th := s * (ks[0] + s*(.5*ks[1]+s*((1./6)*ks[2]+s*(1./24)*ks[3])))
			w := .5 * h * gaussWeights[j]
			x += w * math.Cos(th)
			y += w * math.Sin(th)
		}
	}
	return x, y
}

// computeEnds computes the tangent angle and the first three derivatives
// of curvature at both ends of a segment with chord length segCh,
// relative to the chord direction. Curvature values are scaled to the
// actual segment size. The return value is the chord length of the
// unit-length spiral divided by segCh.
func computeEnds(ks [4]float64, ends *[2][4]float64, segCh float64) float64 {
	x, y := integrate(ks)
	ch := math.Hypot(x, y)
	th := math.Atan2(y, x)
	l := ch / segCh

	thEven := .5*ks[0] + (1./48)*ks[2]
	thOdd := .125*ks[1] + (1./384)*ks[3] - th
	ends[0][0] = thEven - thOdd
	ends[1][0] = thEven + thOdd

	k0Even := l * (ks[0] + .125*ks[2])
	k0Odd := l * (.5*ks[1] + (1./48)*ks[3])
	ends[0][1] = k0Even - k0Odd
	ends[1][1] = k0Even + k0Odd

	l2 := l * l
	k1Even := l2 * (ks[1] + .125*ks[3])
	k1Odd := l2 * .5 * ks[2]
	ends[0][2] = k1Even - k1Odd
	ends[1][2] = k1Even + k1Odd

	l3 := l2 * l
	k2Even := l3 * ks[2]
	k2Odd := l3 * .5 * ks[3]
	ends[0][3] = k2Even - k2Odd
	ends[1][3] = k2Even + k2Odd

	return l
}

// computePartials computes the end values of segment s, together with
// their partial derivatives with respect to the first jinc curvature
// coefficients. The derivatives are found by forward differences.
func computePartials(s *Segment, ends *[2][4]float64, derivs *[4][2][4]float64, jinc int) {
	const recipD = 2e6
	const delta = 1. / recipD

	computeEnds(s.Ks, ends, s.segCh)
	var tryEnds [2][4]float64
	for i := range jinc {
		tryKs := s.Ks
		tryKs[i] += delta
		computeEnds(tryKs, &tryEnds, s.segCh)
		for k := range 2 {
			for j := range 4 {
				derivs[j][k][i] = recipD * (tryEnds[k][j] - ends[k][j])
			}
		}
	}
}

// unknowns returns the number of free curvature coefficients of a segment
// between control points of type ty0 and ty1.
func unknowns(ty0, ty1 Type) int {
	switch {
	case ty0 == G4 || ty1 == G4 || ty0 == Right || ty1 == Left:
		return 4
	case ty0 == G2 && ty1 == G2:
		return 2
	case (ty0 == OpenStart || ty0 == Corner || ty0 == Left) && ty1 == G2,
		ty0 == G2 && (ty1 == OpenEnd || ty1 == Corner || ty1 == Right):
		return 1
	default:
		return 0
	}
}

func countUnknowns(segs []Segment, nSeg int) int {
	n := 0
	for i := range nSeg {
		n += unknowns(segs[i].Type, segs[i+1].Type)
	}
	return n
}

// addConstraint adds one row of the linearised system: the residual x
// goes into v[jj] and y times the partial derivatives into the matrix
// row jj, starting at the column of unknown j.
func addConstraint(m []bandRow, v []float64, derivs *[4][2][4]float64, which, side int, x, y float64, j, jj, jinc, nmat int) {
	if jj < 0 {
		return
	}
	var joff int
	switch {
	case nmat < 6:
		joff = j + 5 - jj
	case nmat == 6:
		joff = 2 + (j+3-jj+nmat)%nmat
	default:
		joff = (j + 5 - jj + nmat) % nmat
	}
	v[jj] += x
	for k := range jinc {
		m[jj].a[joff+k] += y * derivs[which][side][k]
	}
}

// iterate performs one Newton step and returns the squared norm of the
// update.
func iterate(segs []Segment, m []bandRow, perm []int, v []float64, nSeg int) float64 {
	cyclic := segs[0].Type != OpenStart && segs[0].Type != Corner
	nmat := countUnknowns(segs, nSeg)

	for i := range nmat {
		v[i] = 0
		m[i] = bandRow{}
	}

	j := 0
	var jj int
	switch segs[0].Type {
	case G4:
		jj = nmat - 2
	case G2:
		jj = nmat - 1
	default:
		jj = 0
	}

	for i := range nSeg {
		ty0 := segs[i].Type
		ty1 := segs[i+1].Type
		jinc := unknowns(ty0, ty1)
		th := segs[i].bendTh

		var ends [2][4]float64
		var derivs [4][2][4]float64
		jthl, jk0l, jk1l, jk2l := -1, -1, -1, -1
		jthr, jk0r, jk1r, jk2r := -1, -1, -1, -1

		computePartials(&segs[i], &ends, &derivs, jinc)

		// constraints crossing the left end
		if ty0 == G4 || ty0 == G2 || ty0 == Left || ty0 == Right {
			jthl = jj
			jj++
			jj %= nmat
			jk0l = jj
			jj++
		}
		if ty0 == G4 {
			jj %= nmat
			jk1l = jj
			jj++
			jk2l = jj
			jj++
		}

		// constraints on the left end
		if (ty0 == Left || ty0 == Corner || ty0 == OpenStart || ty0 == G2) && jinc == 4 {
			if ty0 != G2 {
				jk1l = jj
				jj++
			}
			jk2l = jj
			jj++
		}

		// constraints on the right end
		if (ty1 == Right || ty1 == Corner || ty1 == OpenEnd || ty1 == G2) && jinc == 4 {
			if ty1 != G2 {
				jk1r = jj
				jj++
			}
			jk2r = jj
			jj++
		}

		// constraints crossing the right end
		if ty1 == G4 || ty1 == G2 || ty1 == Left || ty1 == Right {
			jthr = jj
			jk0r = (jj + 1) % nmat
		}
		if ty1 == G4 {
			jk1r = (jj + 2) % nmat
			jk2r = (jj + 3) % nmat
		}

		addConstraint(m, v, &derivs, 0, 0, th-ends[0][0], 1, j, jthl, jinc, nmat)
		addConstraint(m, v, &derivs, 1, 0, ends[0][1], -1, j, jk0l, jinc, nmat)
		addConstraint(m, v, &derivs, 2, 0, ends[0][2], -1, j, jk1l, jinc, nmat)
		addConstraint(m, v, &derivs, 3, 0, ends[0][3], -1, j, jk2l, jinc, nmat)
		addConstraint(m, v, &derivs, 0, 1, -ends[1][0], 1, j, jthr, jinc, nmat)
		addConstraint(m, v, &derivs, 1, 1, -ends[1][1], 1, j, jk0r, jinc, nmat)
		addConstraint(m, v, &derivs, 2, 1, -ends[1][2], 1, j, jk1r, jinc, nmat)
		addConstraint(m, v, &derivs, 3, 1, -ends[1][3], 1, j, jk2r, jinc, nmat)
		if jthl >= 0 {
			v[jthl] = mod2pi(v[jthl])
		}
		if jthr >= 0 {
			v[jthr] = mod2pi(v[jthr])
		}
		j += jinc
	}

	// A cyclic system is solved three times over, and the middle copy of
	// the solution is used.
	nInvert := nmat
	j = 0
	if cyclic {
		copy(m[nmat:2*nmat], m[:nmat])
		copy(m[2*nmat:3*nmat], m[:nmat])
		copy(v[nmat:2*nmat], v[:nmat])
		copy(v[2*nmat:3*nmat], v[:nmat])
		nInvert = 3 * nmat
		j = nmat
	}
	bandDecompose(m, perm, nInvert)
	bandSolve(m, perm, v, nInvert)

	norm := 0.
	for i := range nSeg {
		jinc := unknowns(segs[i].Type, segs[i+1].Type)
		for k := range jinc {
			dk := v[j]
			j++
			segs[i].Ks[k] += dk
			norm += dk * dk
		}
		segs[i].Ks[0] = 2 * mod2pi(segs[i].Ks[0]/2)
	}
	return norm
}

// solve runs the Newton iteration. It returns the number of steps taken
// and the squared norm of the last update.
func solve(segs []Segment, nSeg int) (int, float64) {
	nmat := countUnknowns(segs, nSeg)
	if nmat == 0 {
		return 0, 0
	}
	nAlloc := nmat
	if segs[0].Type != OpenStart && segs[0].Type != Corner {
		nAlloc *= 3
	}
	nAlloc = max(nAlloc, 5)
	m := make([]bandRow, nAlloc)
	v := make([]float64, nAlloc)
	perm := make([]int, nAlloc)

	norm := 0.
	for i := range maxIterations {
		norm = iterate(segs, m, perm, v, nSeg)
		if norm < convergedNorm || math.IsNaN(norm) {
			return i + 1, norm
		}
	}
	return maxIterations, norm
}

const (
	maxIterations = 10
	convergedNorm = 1e-12

	// maxFinalNorm bounds the last update of a solution which ran out of
	// iterations.
	maxFinalNorm = 1e-6

	integrationPanels = 16
)

// Five point Gauss-Legendre rule on [-1, 1].
var (
	gaussNodes = [5]float64{
		-0.9061798459386640,
		-0.5384693101056831,
		0,
		0.5384693101056831,
		0.9061798459386640,
	}
	gaussWeights = [5]float64{
		0.2369268850561891,
		0.4786286704993665,
		0.5688888888888889,
		0.4786286704993665,
		0.2369268850561891,
	}
)
