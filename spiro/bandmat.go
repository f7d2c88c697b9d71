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

// bandRow is one row of a band matrix with five sub- and five
// super-diagonals. Before decomposition, a[5] is the diagonal element.
// After decomposition, al holds the multipliers of the lower factor.
type bandRow struct {
	a  [11]float64
	al [5]float64
}

// bandDecompose computes the LU decomposition of the first n rows of m,
// using partial pivoting. The row permutation is stored in perm.
// m must have at least five rows.
func bandDecompose(m []bandRow, perm []int, n int) {
	// Shift the top rows left, so that every row starts at its first
	// non-zero column.
	for i := range 5 {
		j := 0
		for ; j < i+6; j++ {
			m[i].a[j] = m[i].a[j+5-i]
		}
		for ; j < 11; j++ {
			m[i].a[j] = 0
		}
	}

	l := 5
	for k := range n {
		pivot := k
		pivotVal := m[k].a[0]

		l = min(l+1, n)
		for j := k + 1; j < l; j++ {
			if math.Abs(m[j].a[0]) > math.Abs(pivotVal) {
				pivotVal = m[j].a[0]
				pivot = j
			}
		}

		perm[k] = pivot
		if pivot != k {
			m[k].a, m[pivot].a = m[pivot].a, m[k].a
		}

		if math.Abs(pivotVal) < minPivot {
			pivotVal = minPivot
		}
		scale := 1 / pivotVal
		for i := k + 1; i < l; i++ {
			x := m[i].a[0] * scale
			m[k].al[i-k-1] = x
			for j := 1; j < 11; j++ {
				m[i].a[j-1] = m[i].a[j] - x*m[k].a[j]
			}
			m[i].a[10] = 0
		}
	}
}

// bandSolve solves the system decomposed by bandDecompose. The right hand
// side v is overwritten by the solution.
func bandSolve(m []bandRow, perm []int, v []float64, n int) {
	l := 5
	for k := range n {
		if i := perm[k]; i != k {
			v[k], v[i] = v[i], v[k]
		}
		if l < n {
			l++
		}
		for i := k + 1; i < l; i++ {
			v[i] -= m[k].al[i-k-1] * v[k]
		}
	}

	l = 1
	for i := n - 1; i >= 0; i-- {
		x := v[i]
		for k := 1; k < l; k++ {
			x -= m[i].a[k] * v[k+i]
		}
		v[i] = x / m[i].a[0]
		if l < 11 {
			l++
		}
	}
}

// minPivot replaces pivots which are zero or nearly so.
const minPivot = 1e-12
