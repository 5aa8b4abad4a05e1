package polykit

import "github.com/jonathanmweiss/ranalg/numkit"

// sylvesterMatrix builds the (da+db) x (da+db) Sylvester matrix of a and b
// with respect to their shared main variable: the first db rows hold
// successive shifts of a's coefficients, the remaining da rows hold shifts
// of b's. Determinant of this matrix is the resultant. Grounded on the
// classical Sylvester-matrix construction used by carl's resultant-based
// elimination step (real_roots multivariate substitution).
func sylvesterMatrix(a, b UPolyM) [][]MPoly {
	da, db := a.Degree(), b.Degree()
	n := da + db
	zero := NewMPolyConstant(numkit.ZeroR)
	m := make([][]MPoly, n)
	for i := range m {
		m[i] = make([]MPoly, n)
		for j := range m[i] {
			m[i][j] = zero
		}
	}
	// rows 0..db-1: shifts of a (degree da, da+1 coefficients)
	for i := 0; i < db; i++ {
		for k := 0; k <= da; k++ {
			m[i][i+k] = a.Coeffs[da-k]
		}
	}
	// rows db..db+da-1: shifts of b (degree db, db+1 coefficients)
	for i := 0; i < da; i++ {
		for k := 0; k <= db; k++ {
			m[db+i][i+k] = b.Coeffs[db-k]
		}
	}
	return m
}

func findPivot(m [][]MPoly, k, n int) (int, int, bool) {
	if !m[k][k].IsZero() {
		return k, k, true
	}
	for i := k; i < n; i++ {
		for j := k; j < n; j++ {
			if !m[i][j].IsZero() {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// bareissDeterminant computes the exact determinant of a square matrix of
// MPoly entries via fraction-free (Bareiss) Gaussian elimination, valid over
// any integral domain. Every intermediate division is exact by construction
// of the algorithm; a non-zero remainder indicates an internal invariant
// violation, not a user error.
func bareissDeterminant(m [][]MPoly) MPoly {
	n := len(m)
	if n == 0 {
		return NewMPolyConstant(numkit.OneR)
	}
	sign := numkit.OneR
	prev := NewMPolyConstant(numkit.OneR)
	for k := 0; k < n-1; k++ {
		if m[k][k].IsZero() {
			pi, pj, ok := findPivot(m, k, n)
			if !ok {
				return NewMPolyConstant(numkit.ZeroR)
			}
			if pi != k {
				m[pi], m[k] = m[k], m[pi]
				sign = sign.Neg()
			}
			if pj != k {
				for r := 0; r < n; r++ {
					m[r][pj], m[r][k] = m[r][k], m[r][pj]
				}
				sign = sign.Neg()
			}
		}
		order := DefaultOrder(flattenRow(m, n)...)
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				num := m[i][j].Mul(m[k][k]).Sub(m[i][k].Mul(m[k][j]))
				q, r := DivideBySingle(num, prev, order)
				if !r.IsZero() {
					panic("polykit: Bareiss elimination produced a non-exact division")
				}
				m[i][j] = q
			}
		}
		prev = m[k][k]
	}
	det := m[n-1][n-1]
	if sign.Sign() == numkit.Negative {
		det = det.Neg()
	}
	return det
}

func flattenRow(m [][]MPoly, n int) []MPoly {
	out := make([]MPoly, 0, n*n)
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// Resultant computes Res_x(a, b), the resultant of a and b with respect to
// their common main variable x, as a polynomial in the remaining variables.
// It backs multivariate real-root isolation's iterated-elimination step:
// resultants successively remove the auxiliary variables a multivariate
// constraint's defining polynomials introduce.
func Resultant(a, b UPolyM) MPoly {
	if a.MainVar != b.MainVar {
		panic("polykit: Resultant requires a common main variable")
	}
	if a.IsZero() || b.IsZero() {
		return NewMPolyConstant(numkit.ZeroR)
	}
	if a.Degree() == 0 && b.Degree() == 0 {
		return NewMPolyConstant(numkit.OneR)
	}
	m := sylvesterMatrix(a, b)
	return bareissDeterminant(m)
}

// ResultantWithRational computes the resultant of a UPolyM and a plain
// rational-coefficient UPoly sharing the same main variable.
func ResultantWithRational(a UPolyM, b UPoly) MPoly {
	return Resultant(a, FromUPoly(b))
}
